package subagent

import (
	"context"
	"time"

	"github.com/swarmgate/swarmgate"
)

// SubAgent is a worker capable of processing delegated tasks. Implementations
// must be safe for concurrent Process calls; the delegator may dispatch the
// same agent multiple tasks at once.
//
// Process never returns an error: failures are reported in the AgentResult
// with Succeeded false, so one agent's failure cannot poison a fan-out.
type SubAgent interface {
	// ID uniquely identifies the agent within a Manager.
	ID() string

	// Name is a short human-readable name.
	Name() string

	// Description summarizes what the agent is for.
	Description() string

	// Capabilities advertises what kinds of work the agent handles.
	Capabilities() []Capability

	// Process performs the task and reports the outcome. Implementations
	// should honor ctx cancellation and deadlines.
	Process(ctx context.Context, task *Task) *AgentResult
}

// ProcessFunc is the signature of a FuncAgent's work function.
type ProcessFunc func(ctx context.Context, task *Task) (string, error)

// FuncAgent adapts a plain function into a SubAgent. Useful for fixed
// pipelines and tests where a full LLM-backed agent is overkill.
type FuncAgent struct {
	id           string
	name         string
	description  string
	capabilities []Capability
	fn           ProcessFunc
}

var _ SubAgent = (*FuncAgent)(nil)

// NewFuncAgent creates an agent backed by fn, with a generated ID.
func NewFuncAgent(name string, capabilities []Capability, fn ProcessFunc) *FuncAgent {
	return &FuncAgent{
		id:           swarmgate.GenerateID(swarmgate.PrefixAgent),
		name:         name,
		capabilities: capabilities,
		fn:           fn,
	}
}

// WithFuncDescription sets the agent description and returns the agent,
// allowing chained construction.
func (a *FuncAgent) WithFuncDescription(desc string) *FuncAgent {
	a.description = desc
	return a
}

// ID returns the agent's unique identifier.
func (a *FuncAgent) ID() string { return a.id }

// Name returns the agent's display name.
func (a *FuncAgent) Name() string { return a.name }

// Description returns the agent's description.
func (a *FuncAgent) Description() string { return a.description }

// Capabilities returns the agent's advertised capabilities.
func (a *FuncAgent) Capabilities() []Capability { return a.capabilities }

// Process invokes the wrapped function and maps its return to an AgentResult.
func (a *FuncAgent) Process(ctx context.Context, task *Task) *AgentResult {
	start := time.Now()
	output, err := a.fn(ctx, task)
	result := &AgentResult{
		TaskID:   task.ID,
		AgentID:  a.id,
		Duration: time.Since(start),
	}
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Output = output
	result.Succeeded = true
	return result
}
