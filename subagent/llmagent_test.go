package subagent

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swarmgate/swarmgate"
	"github.com/swarmgate/swarmgate/session"
)

// --- Mock backend helpers ---

// scriptedBackend returns canned completions in sequence.
type scriptedBackend struct {
	completions []*swarmgate.Completion
	err         error
	calls       int
	attempts    int
}

func (b *scriptedBackend) Send(_ context.Context, _ *swarmgate.Conversation, _ []swarmgate.ToolDefinition) (*swarmgate.Completion, error) {
	b.attempts++
	if b.err != nil {
		return nil, b.err
	}
	if b.calls >= len(b.completions) {
		return &swarmgate.Completion{Text: "fallback"}, nil
	}
	c := b.completions[b.calls]
	b.calls++
	return c, nil
}

func textCompletion(text string) *swarmgate.Completion {
	return &swarmgate.Completion{Text: text, Model: "claude-sonnet-4-5",
		Usage: swarmgate.Usage{InputTokens: 100, OutputTokens: 50}}
}

func toolCallCompletion(calls ...swarmgate.ToolCallRequest) *swarmgate.Completion {
	return &swarmgate.Completion{ToolCalls: calls, Model: "claude-sonnet-4-5",
		Usage: swarmgate.Usage{InputTokens: 100, OutputTokens: 50}}
}

type countInput struct {
	N int `json:"n" jsonschema:"description=A number"`
}

type countTool struct{ invocations int }

func (t *countTool) Name() string        { return "count" }
func (t *countTool) Description() string { return "Counts invocations" }

func (t *countTool) Execute(_ context.Context, input countInput) (*swarmgate.ToolResult, error) {
	t.invocations++
	return swarmgate.TextResult(fmt.Sprintf("count=%d n=%d", t.invocations, input.N)), nil
}

// --- Tests ---

func TestLLMAgent_DirectAnswer(t *testing.T) {
	backend := &scriptedBackend{completions: []*swarmgate.Completion{textCompletion("the answer")}}
	a := NewLLMAgent("direct", backend, swarmgate.NewToolRegistry())

	res := a.Process(context.Background(), NewTask("simple question"))

	require.True(t, res.Succeeded)
	assert.Equal(t, "the answer", res.Output)
	assert.Empty(t, res.ToolCalls)
	assert.Equal(t, a.ID(), res.AgentID)
}

func TestLLMAgent_ToolLoop(t *testing.T) {
	registry := swarmgate.NewToolRegistry()
	tool := &countTool{}
	swarmgate.RegisterTool(registry, tool)

	backend := &scriptedBackend{completions: []*swarmgate.Completion{
		toolCallCompletion(swarmgate.ToolCallRequest{ID: "c1", Name: "count", Input: []byte(`{"n":7}`)}),
		textCompletion("done after tooling"),
	}}
	a := NewLLMAgent("looper", backend, registry)

	res := a.Process(context.Background(), NewTask("use the tool"))

	require.True(t, res.Succeeded)
	assert.Equal(t, "done after tooling", res.Output)
	require.Len(t, res.ToolCalls, 1)
	assert.Equal(t, "count", res.ToolCalls[0].ToolName)
	assert.Equal(t, "count=1 n=7", res.ToolCalls[0].Output)
	assert.False(t, res.ToolCalls[0].IsError)
	assert.Equal(t, 1, tool.invocations)
}

func TestLLMAgent_UnknownToolFedBackAsError(t *testing.T) {
	backend := &scriptedBackend{completions: []*swarmgate.Completion{
		toolCallCompletion(swarmgate.ToolCallRequest{ID: "c1", Name: "nonexistent"}),
		textCompletion("recovered"),
	}}
	a := NewLLMAgent("recoverer", backend, swarmgate.NewToolRegistry())

	res := a.Process(context.Background(), NewTask("call a missing tool"))

	require.True(t, res.Succeeded)
	require.Len(t, res.ToolCalls, 1)
	assert.True(t, res.ToolCalls[0].IsError)
	assert.Contains(t, res.ToolCalls[0].Output, "unknown tool")
}

func TestLLMAgent_BackendErrorFailsResult(t *testing.T) {
	backend := &scriptedBackend{err: errors.New("api unreachable")}
	a := NewLLMAgent("failing", backend, swarmgate.NewToolRegistry())

	res := a.Process(context.Background(), NewTask("anything"))

	require.False(t, res.Succeeded)
	assert.Contains(t, res.Error, "api unreachable")
	// a single failed call, no retries
	assert.Equal(t, 1, backend.attempts)
}

func TestLLMAgent_MaxTurnsExceeded(t *testing.T) {
	registry := swarmgate.NewToolRegistry()
	swarmgate.RegisterTool(registry, &countTool{})

	// the model keeps asking for tools and never answers
	endless := make([]*swarmgate.Completion, 5)
	for i := range endless {
		endless[i] = toolCallCompletion(swarmgate.ToolCallRequest{ID: fmt.Sprintf("c%d", i), Name: "count"})
	}
	backend := &scriptedBackend{completions: endless}
	a := NewLLMAgent("spinner", backend, registry, WithMaxTurns(3))

	res := a.Process(context.Background(), NewTask("never finishes"))

	require.False(t, res.Succeeded)
	assert.Contains(t, res.Error, "3 turns")
	assert.Len(t, res.ToolCalls, 3)
}

func TestLLMAgent_CancelledContext(t *testing.T) {
	backend := &scriptedBackend{completions: []*swarmgate.Completion{textCompletion("unused")}}
	a := NewLLMAgent("cancelled", backend, swarmgate.NewToolRegistry())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := a.Process(ctx, NewTask("too late"))

	require.False(t, res.Succeeded)
	assert.Contains(t, res.Error, "context canceled")
}

func TestLLMAgent_SavesConversation(t *testing.T) {
	store := session.NewMemoryStore()
	backend := &scriptedBackend{completions: []*swarmgate.Completion{textCompletion("saved")}}
	a := NewLLMAgent("archivist", backend, swarmgate.NewToolRegistry(),
		WithSystemPrompt("keep records"),
		WithSessionStore(store),
	)

	res := a.Process(context.Background(), NewTask("record this"))

	require.True(t, res.Succeeded)
	convs, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, "keep records", convs[0].System)
	// user prompt, assistant answer
	assert.Len(t, convs[0].Messages, 2)
}

func TestLLMAgent_Metadata(t *testing.T) {
	a := NewLLMAgent("meta", &scriptedBackend{}, swarmgate.NewToolRegistry(),
		WithDescription("does meta things"),
		WithCapabilities(Capability{Tag: "research"}),
	)

	assert.Equal(t, "meta", a.Name())
	assert.Equal(t, "does meta things", a.Description())
	require.Len(t, a.Capabilities(), 1)
	assert.Equal(t, "research", a.Capabilities()[0].Tag)
}

// --- FuncAgent ---

func TestFuncAgent_Success(t *testing.T) {
	a := NewFuncAgent("fn", []Capability{{Tag: "math"}},
		func(_ context.Context, task *Task) (string, error) {
			return "answered: " + task.Description, nil
		}).WithFuncDescription("pure function")

	res := a.Process(context.Background(), NewTask("2+2"))

	require.True(t, res.Succeeded)
	assert.Equal(t, "answered: 2+2", res.Output)
	assert.Equal(t, "pure function", a.Description())
}

func TestFuncAgent_Error(t *testing.T) {
	a := NewFuncAgent("fn", nil, func(_ context.Context, _ *Task) (string, error) {
		return "", errors.New("cannot compute")
	})

	res := a.Process(context.Background(), NewTask("impossible"))

	require.False(t, res.Succeeded)
	assert.Equal(t, "cannot compute", res.Error)
}
