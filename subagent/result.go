package subagent

import (
	"encoding/json"
	"time"
)

// ToolCallRecord is one tool invocation an agent made while processing a
// task, kept in invocation order for auditability.
type ToolCallRecord struct {
	// ToolName is the name the tool was invoked under.
	ToolName string `json:"tool_name"`

	// Input is the raw JSON input the agent supplied.
	Input json.RawMessage `json:"input,omitempty"`

	// Output is the textual tool result fed back to the agent.
	Output string `json:"output,omitempty"`

	// IsError marks results that represent a tool failure.
	IsError bool `json:"is_error,omitempty"`

	// Timestamp is when the invocation completed.
	Timestamp time.Time `json:"timestamp"`
}

// AgentResult is the outcome of a single agent processing a single task.
// Agent failures are data, not errors: a failed attempt is an AgentResult
// with Succeeded false and Error set.
type AgentResult struct {
	// TaskID is the task this result answers.
	TaskID string `json:"task_id"`

	// AgentID identifies the agent that produced the result.
	AgentID string `json:"agent_id"`

	// Output is the agent's final answer text. Empty on failure.
	Output string `json:"output,omitempty"`

	// ToolCalls are the tool invocations made, in order.
	ToolCalls []ToolCallRecord `json:"tool_calls,omitempty"`

	// Succeeded reports whether the agent produced a usable answer.
	Succeeded bool `json:"succeeded"`

	// Error describes the failure when Succeeded is false.
	Error string `json:"error,omitempty"`

	// Duration is wall-clock processing time for this agent.
	Duration time.Duration `json:"duration"`
}

// AggregatedResult is the combined outcome of a delegated task across all
// agents it was dispatched to. PerAgent preserves dispatch order regardless
// of completion order.
type AggregatedResult struct {
	// TaskID is the delegated task.
	TaskID string `json:"task_id"`

	// CombinedOutput is the strategy-dependent combination of agent outputs.
	CombinedOutput string `json:"combined_output"`

	// PerAgent holds every agent's result in dispatch order.
	PerAgent []AgentResult `json:"per_agent"`

	// Strategy is the aggregation strategy that produced CombinedOutput.
	Strategy Strategy `json:"strategy"`

	// SuccessCount is the number of agents that succeeded.
	SuccessCount int `json:"success_count"`

	// FailureCount is the number of agents that failed.
	FailureCount int `json:"failure_count"`
}
