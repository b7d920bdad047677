package subagent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/swarmgate/swarmgate"
	"github.com/swarmgate/swarmgate/internal/budget"
)

// DefaultMaxTurns bounds the tool-use loop of an LLMAgent.
const DefaultMaxTurns = 8

// LLMAgent is a SubAgent backed by an LLM Backend and a tool registry. Each
// Process call runs an independent conversation: the agent sends the task to
// the backend, executes any tool calls the model requests, feeds the results
// back, and repeats until the model answers without tools or the turn limit
// is hit.
type LLMAgent struct {
	id           string
	name         string
	description  string
	capabilities []Capability
	backend      swarmgate.Backend
	registry     *swarmgate.ToolRegistry
	systemPrompt string
	maxTurns     int
	maxBudget    decimal.Decimal
	pricing      map[string]budget.ModelPricing
	store        swarmgate.ConversationStore
	logger       *zap.Logger
}

var _ SubAgent = (*LLMAgent)(nil)

// LLMAgentOption configures an LLMAgent.
type LLMAgentOption func(*LLMAgent)

// WithSystemPrompt sets the system prompt for every conversation the agent runs.
func WithSystemPrompt(prompt string) LLMAgentOption {
	return func(a *LLMAgent) { a.systemPrompt = prompt }
}

// WithMaxTurns caps the tool-use loop. Defaults to DefaultMaxTurns.
func WithMaxTurns(n int) LLMAgentOption {
	return func(a *LLMAgent) { a.maxTurns = n }
}

// WithCapabilities sets the capabilities the agent advertises to the Manager.
func WithCapabilities(caps ...Capability) LLMAgentOption {
	return func(a *LLMAgent) { a.capabilities = caps }
}

// WithDescription sets the agent description.
func WithDescription(desc string) LLMAgentOption {
	return func(a *LLMAgent) { a.description = desc }
}

// WithBudget caps spend in USD for a single Process run; each run starts
// with a fresh tracker. Zero means unlimited.
func WithBudget(maxUSD decimal.Decimal) LLMAgentOption {
	return func(a *LLMAgent) { a.maxBudget = maxUSD }
}

// WithSessionStore persists each task's conversation after processing.
func WithSessionStore(store swarmgate.ConversationStore) LLMAgentOption {
	return func(a *LLMAgent) { a.store = store }
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) LLMAgentOption {
	return func(a *LLMAgent) { a.logger = logger }
}

// NewLLMAgent creates an LLM-backed agent with a generated ID.
func NewLLMAgent(name string, backend swarmgate.Backend, registry *swarmgate.ToolRegistry, opts ...LLMAgentOption) *LLMAgent {
	a := &LLMAgent{
		id:       swarmgate.GenerateID(swarmgate.PrefixAgent),
		name:     name,
		backend:  backend,
		registry: registry,
		maxTurns: DefaultMaxTurns,
		pricing:  budget.DefaultPricing,
		logger:   zap.NewNop(),
	}
	for _, fn := range opts {
		fn(a)
	}
	return a
}

// ID returns the agent's unique identifier.
func (a *LLMAgent) ID() string { return a.id }

// Name returns the agent's display name.
func (a *LLMAgent) Name() string { return a.name }

// Description returns the agent's description.
func (a *LLMAgent) Description() string { return a.description }

// Capabilities returns the agent's advertised capabilities.
func (a *LLMAgent) Capabilities() []Capability { return a.capabilities }

// Process runs the task through the backend's tool-use loop. Backend errors,
// budget exhaustion, and hitting the turn limit all come back as failed
// results; Process itself never panics on well-formed input.
func (a *LLMAgent) Process(ctx context.Context, task *Task) *AgentResult {
	start := time.Now()
	result := &AgentResult{
		TaskID:  task.ID,
		AgentID: a.id,
	}

	tracker := budget.NewTracker(a.maxBudget, a.pricing)
	conv := swarmgate.NewConversation(a.systemPrompt)
	conv.AddUser(a.taskPrompt(task))

	defs := a.registry.Definitions()

	for turn := 0; turn < a.maxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			result.Error = err.Error()
			break
		}
		if tracker.Exhausted() {
			result.Error = fmt.Sprintf("budget exhausted after %s USD", tracker.TotalCost())
			break
		}

		comp, err := a.backend.Send(ctx, conv, defs)
		if err != nil {
			result.Error = fmt.Sprintf("backend: %s", err.Error())
			break
		}
		tracker.RecordUsage(comp.Model, comp.Usage.InputTokens, comp.Usage.OutputTokens)

		conv.AddAssistant(comp.Text, comp.ToolCalls...)

		if len(comp.ToolCalls) == 0 {
			result.Output = comp.Text
			result.Succeeded = true
			break
		}

		for _, call := range comp.ToolCalls {
			record := a.executeToolCall(ctx, call)
			result.ToolCalls = append(result.ToolCalls, record)
			conv.AddToolResult(call.ID, call.Name, record.Output, record.IsError)
		}
	}

	if !result.Succeeded && result.Error == "" {
		result.Error = fmt.Sprintf("no final answer after %d turns", a.maxTurns)
	}

	if a.store != nil {
		if err := a.store.Save(ctx, conv); err != nil {
			a.logger.Warn("failed to save conversation",
				zap.String("conversation_id", conv.ID),
				zap.Error(err),
			)
		}
	}

	result.Duration = time.Since(start)
	a.logger.Debug("agent processed task",
		zap.String("agent_id", a.id),
		zap.String("task_id", task.ID),
		zap.Bool("succeeded", result.Succeeded),
		zap.Int("tool_calls", len(result.ToolCalls)),
		zap.Duration("duration", result.Duration),
	)
	return result
}

// executeToolCall runs one requested tool and records the outcome. Unknown
// tools and execution errors become error-flagged records fed back to the
// model rather than aborting the run.
func (a *LLMAgent) executeToolCall(ctx context.Context, call swarmgate.ToolCallRequest) ToolCallRecord {
	record := ToolCallRecord{
		ToolName: call.Name,
		Input:    call.Input,
	}

	res, err := a.registry.Execute(ctx, call.Name, call.Input)
	switch {
	case errors.Is(err, swarmgate.ErrUnknownTool):
		record.Output = fmt.Sprintf("unknown tool: %s", call.Name)
		record.IsError = true
	case err != nil:
		record.Output = err.Error()
		record.IsError = true
	default:
		record.Output = res.Content
		record.IsError = res.IsError
	}

	record.Timestamp = time.Now().UTC()
	return record
}

func (a *LLMAgent) taskPrompt(task *Task) string {
	if len(task.Constraints) > 0 {
		return fmt.Sprintf("Task (priority %s, scope %v): %s",
			task.Priority, task.Constraints, task.Description)
	}
	return fmt.Sprintf("Task (priority %s): %s", task.Priority, task.Description)
}
