package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/swarmgate/swarmgate"
)

// TimeInput defines the input for the Time tool.
type TimeInput struct {
	Timezone string `json:"timezone,omitempty" jsonschema:"description=IANA timezone name such as Europe/Berlin (defaults to UTC)"`
	Format   string `json:"format,omitempty" jsonschema:"description=Output format: rfc3339 (default) or unix"`
}

// TimeTool reports the current time, optionally in a given timezone.
// Models have no clock of their own; agents use this for anything
// time-sensitive.
type TimeTool struct {
	// now is replaceable for tests.
	now func() time.Time
}

var _ swarmgate.Tool[TimeInput] = (*TimeTool)(nil)

func (t *TimeTool) Name() string        { return "Time" }
func (t *TimeTool) Description() string { return "Get the current date and time" }

func (t *TimeTool) Execute(_ context.Context, input TimeInput) (*swarmgate.ToolResult, error) {
	clock := time.Now
	if t.now != nil {
		clock = t.now
	}

	loc := time.UTC
	if input.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(input.Timezone)
		if err != nil {
			return swarmgate.ErrorResult(fmt.Sprintf("unknown timezone: %s", input.Timezone)), nil
		}
	}

	now := clock().In(loc)
	switch input.Format {
	case "", "rfc3339":
		return swarmgate.TextResult(now.Format(time.RFC3339)), nil
	case "unix":
		return swarmgate.TextResult(fmt.Sprintf("%d", now.Unix())), nil
	default:
		return swarmgate.ErrorResult(fmt.Sprintf("unknown format: %s", input.Format)), nil
	}
}
