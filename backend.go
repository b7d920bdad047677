package swarmgate

import (
	"context"
	"encoding/json"
)

// Role identifies the author of a conversation message.
type Role string

const (
	// RoleUser is a message from the end user or the orchestrator.
	RoleUser Role = "user"
	// RoleAssistant is a model-generated message, possibly carrying tool calls.
	RoleAssistant Role = "assistant"
	// RoleTool is the result of a tool invocation, fed back to the model.
	RoleTool Role = "tool"
)

// ToolCallRequest is the model's request to invoke a named tool.
type ToolCallRequest struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Input json.RawMessage `json:"input"`
}

// Message is a single entry in a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content,omitempty"`

	// ToolCalls holds tool invocations requested by an assistant message.
	ToolCalls []ToolCallRequest `json:"tool_calls,omitempty"`

	// ToolCallID and ToolName identify which request a RoleTool message answers.
	ToolCallID string `json:"tool_call_id,omitempty"`
	ToolName   string `json:"tool_name,omitempty"`
	IsError    bool   `json:"is_error,omitempty"`
}

// Conversation is the message history exchanged with a Backend.
// It is not safe for concurrent mutation; each agent run owns its own.
type Conversation struct {
	ID       string    `json:"id"`
	System   string    `json:"system,omitempty"`
	Messages []Message `json:"messages"`
}

// NewConversation creates an empty conversation with the given system prompt.
func NewConversation(system string) *Conversation {
	return &Conversation{
		ID:     GenerateID(PrefixConv),
		System: system,
	}
}

// AddUser appends a user message.
func (c *Conversation) AddUser(text string) {
	c.Messages = append(c.Messages, Message{Role: RoleUser, Content: text})
}

// AddAssistant appends an assistant message with optional tool calls.
func (c *Conversation) AddAssistant(text string, calls ...ToolCallRequest) {
	c.Messages = append(c.Messages, Message{
		Role:      RoleAssistant,
		Content:   text,
		ToolCalls: calls,
	})
}

// AddToolResult appends the result of a tool invocation.
func (c *Conversation) AddToolResult(callID, toolName, content string, isError bool) {
	c.Messages = append(c.Messages, Message{
		Role:       RoleTool,
		Content:    content,
		ToolCallID: callID,
		ToolName:   toolName,
		IsError:    isError,
	})
}

// Clone returns a deep copy of the conversation.
func (c *Conversation) Clone() *Conversation {
	out := &Conversation{ID: c.ID, System: c.System}
	out.Messages = make([]Message, len(c.Messages))
	copy(out.Messages, c.Messages)
	for i, m := range c.Messages {
		if len(m.ToolCalls) > 0 {
			calls := make([]ToolCallRequest, len(m.ToolCalls))
			copy(calls, m.ToolCalls)
			out.Messages[i].ToolCalls = calls
		}
	}
	return out
}

// Usage holds token counts for a single backend call.
type Usage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}

// Add accumulates another usage sample.
func (u *Usage) Add(other Usage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
}

// Completion is one model response: final text, zero or more requested tool
// calls, and the usage of the call that produced it.
type Completion struct {
	Text      string            `json:"text"`
	ToolCalls []ToolCallRequest `json:"tool_calls,omitempty"`
	Model     string            `json:"model,omitempty"`
	Usage     Usage             `json:"usage"`
}

// Backend produces model completions and tool-call requests. The core treats
// it as an opaque call with its own failure mode: a Send error surfaces as an
// agent-level failure and is never retried by this layer.
type Backend interface {
	Send(ctx context.Context, conv *Conversation, tools []ToolDefinition) (*Completion, error)
}

// ConversationStore persists conversations produced by agent runs.
// Implementations live in the session package.
type ConversationStore interface {
	Save(ctx context.Context, conv *Conversation) error
	Load(ctx context.Context, id string) (*Conversation, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Conversation, error)
}
