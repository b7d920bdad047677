package subagent

import "strings"

// Capability describes one competency an agent advertises, such as
// "code_review" or "research". The Tag is the stable identifier used for
// routing; Keywords widen matching to related phrasings.
type Capability struct {
	// Tag is the canonical capability name, e.g. "code_review".
	Tag string

	// Description explains the capability in a sentence. Informational only;
	// it does not participate in matching.
	Description string

	// Keywords are alternate terms that should also match this capability,
	// e.g. "lint", "static analysis".
	Keywords []string
}

// Matches reports whether this capability satisfies a routing constraint.
// The tag matches case-insensitively and exactly; keywords match
// case-insensitively as substrings in either direction, so the constraint
// "review code" matches the keyword "review".
func (c Capability) Matches(constraint string) bool {
	if constraint == "" {
		return false
	}
	if strings.EqualFold(c.Tag, constraint) {
		return true
	}
	lc := strings.ToLower(constraint)
	for _, kw := range c.Keywords {
		lk := strings.ToLower(kw)
		if lk == "" {
			continue
		}
		if strings.Contains(lk, lc) || strings.Contains(lc, lk) {
			return true
		}
	}
	return false
}
