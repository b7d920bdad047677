package subagent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapability_TagMatchesCaseInsensitively(t *testing.T) {
	c := Capability{Tag: "code_review"}

	assert.True(t, c.Matches("code_review"))
	assert.True(t, c.Matches("CODE_REVIEW"))
	assert.False(t, c.Matches("code"))
	assert.False(t, c.Matches("research"))
}

func TestCapability_KeywordSubstringBothDirections(t *testing.T) {
	c := Capability{Tag: "code_review", Keywords: []string{"review", "static analysis"}}

	// constraint contains keyword
	assert.True(t, c.Matches("review code"))
	// keyword contains constraint
	assert.True(t, c.Matches("static"))
	// case-insensitive
	assert.True(t, c.Matches("REVIEW"))
}

func TestCapability_EmptyConstraintNeverMatches(t *testing.T) {
	c := Capability{Tag: "research", Keywords: []string{"search"}}
	assert.False(t, c.Matches(""))
}

func TestCapability_EmptyKeywordIgnored(t *testing.T) {
	c := Capability{Tag: "research", Keywords: []string{""}}
	assert.False(t, c.Matches("anything"))
}
