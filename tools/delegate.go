package tools

import (
	"context"
	"fmt"

	"github.com/swarmgate/swarmgate"
	"github.com/swarmgate/swarmgate/subagent"
)

// DelegateInput defines the input for the Delegate tool.
type DelegateInput struct {
	Description string   `json:"description" jsonschema:"required,description=The task for the sub-agents to perform"`
	Constraints []string `json:"constraints,omitempty" jsonschema:"description=Capability constraints restricting which agents run the task"`
	Strategy    string   `json:"strategy,omitempty" jsonschema:"description=Aggregation strategy: first_success all_must_succeed majority_vote or best_effort"`
}

// DelegateTool hands a task off to registered sub-agents, letting an
// LLM-backed orchestrator fan work out through the same delegation path the
// host application uses.
type DelegateTool struct {
	delegator *subagent.Delegator
}

var _ swarmgate.Tool[DelegateInput] = (*DelegateTool)(nil)

// NewDelegateTool creates a Delegate tool over the given delegator.
func NewDelegateTool(delegator *subagent.Delegator) *DelegateTool {
	return &DelegateTool{delegator: delegator}
}

func (t *DelegateTool) Name() string { return "Delegate" }
func (t *DelegateTool) Description() string {
	return "Delegate a task to specialized sub-agents and collect their combined answer"
}

func (t *DelegateTool) Execute(ctx context.Context, input DelegateInput) (*swarmgate.ToolResult, error) {
	if input.Description == "" {
		return swarmgate.ErrorResult("description is required"), nil
	}

	task := subagent.NewTask(input.Description,
		subagent.WithConstraints(input.Constraints...))

	agg, err := t.delegator.DelegateWith(ctx, task, subagent.Strategy(input.Strategy))
	if err != nil {
		return swarmgate.ErrorResult(fmt.Sprintf("delegation failed: %s", err.Error())), nil
	}

	summary := subagent.FormatSummary(agg)
	if agg.CombinedOutput == "" {
		return swarmgate.ErrorResult(summary), nil
	}
	return swarmgate.TextResult(fmt.Sprintf("%s\n\n%s", summary, agg.CombinedOutput)), nil
}
