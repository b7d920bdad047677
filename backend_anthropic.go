package swarmgate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
	"go.uber.org/zap"
)

// Model and output defaults for the Anthropic backend.
const (
	// DefaultModel is the model used when no model is specified.
	DefaultModel = "claude-opus-4-6"

	// DefaultMaxOutputTokens is the maximum output tokens per response.
	DefaultMaxOutputTokens = 16_384
)

// AnthropicBackend implements Backend over the Anthropic Messages API.
// The zero-config constructor reads ANTHROPIC_API_KEY from the environment.
type AnthropicBackend struct {
	client    *anthropic.Client
	model     anthropic.Model
	maxTokens int64
	logger    *zap.Logger
}

// AnthropicOption configures an AnthropicBackend.
type AnthropicOption func(*AnthropicBackend)

// WithAnthropicModel sets the model for all completions.
func WithAnthropicModel(model anthropic.Model) AnthropicOption {
	return func(b *AnthropicBackend) { b.model = model }
}

// WithAnthropicMaxTokens sets the maximum output tokens per completion.
func WithAnthropicMaxTokens(n int64) AnthropicOption {
	return func(b *AnthropicBackend) { b.maxTokens = n }
}

// WithAnthropicClient replaces the underlying API client (for testing).
func WithAnthropicClient(client *anthropic.Client) AnthropicOption {
	return func(b *AnthropicBackend) { b.client = client }
}

// WithAnthropicLogger sets the structured logger. Defaults to a no-op logger.
func WithAnthropicLogger(logger *zap.Logger) AnthropicOption {
	return func(b *AnthropicBackend) { b.logger = logger }
}

// NewAnthropicBackend creates a Backend over the Anthropic API.
func NewAnthropicBackend(opts ...AnthropicOption) *AnthropicBackend {
	b := &AnthropicBackend{
		model:     DefaultModel,
		maxTokens: DefaultMaxOutputTokens,
		logger:    zap.NewNop(),
	}
	for _, fn := range opts {
		fn(b)
	}
	if b.client == nil {
		client := anthropic.NewClient()
		b.client = &client
	}
	return b
}

var _ Backend = (*AnthropicBackend)(nil)

// Send converts the conversation to API params, performs one non-streaming
// Messages call, and maps the response back to a Completion.
func (b *AnthropicBackend) Send(ctx context.Context, conv *Conversation, tools []ToolDefinition) (*Completion, error) {
	params := anthropic.MessageNewParams{
		Model:     b.model,
		MaxTokens: b.maxTokens,
		Messages:  convertMessages(conv.Messages),
	}

	if conv.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: conv.System}}
	}

	if len(tools) > 0 {
		params.Tools = convertTools(tools)
	}

	b.logger.Debug("anthropic send",
		zap.String("model", string(b.model)),
		zap.Int("messages", len(conv.Messages)),
		zap.Int("tools", len(tools)),
	)

	msg, err := b.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic messages: %w", err)
	}

	comp := &Completion{
		Model: string(msg.Model),
		Usage: Usage{
			InputTokens:  msg.Usage.InputTokens,
			OutputTokens: msg.Usage.OutputTokens,
		},
	}

	for _, block := range msg.Content {
		switch blk := block.AsAny().(type) {
		case anthropic.TextBlock:
			comp.Text += blk.Text
		case anthropic.ToolUseBlock:
			comp.ToolCalls = append(comp.ToolCalls, ToolCallRequest{
				ID:    blk.ID,
				Name:  blk.Name,
				Input: json.RawMessage(blk.Input),
			})
		}
	}

	return comp, nil
}

// convertMessages maps the backend-agnostic conversation onto API params.
// Tool results become user messages carrying tool_result blocks, matching
// the Messages API contract.
func convertMessages(messages []Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleUser:
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		case RoleAssistant:
			var blocks []anthropic.ContentBlockParamUnion
			if m.Content != "" {
				blocks = append(blocks, anthropic.NewTextBlock(m.Content))
			}
			for _, call := range m.ToolCalls {
				blocks = append(blocks, anthropic.NewToolUseBlock(call.ID, call.Input, call.Name))
			}
			if len(blocks) > 0 {
				out = append(out, anthropic.NewAssistantMessage(blocks...))
			}
		case RoleTool:
			out = append(out, anthropic.NewUserMessage(
				anthropic.NewToolResultBlock(m.ToolCallID, m.Content, m.IsError)))
		}
	}
	return out
}

// convertTools maps tool definitions to the API tool format.
func convertTools(tools []ToolDefinition) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(tools))
	for _, def := range tools {
		out = append(out, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        def.Name,
				Description: param.NewOpt(def.Description),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: def.InputSchema,
					Required:   def.Required,
				},
			},
		})
	}
	return out
}
