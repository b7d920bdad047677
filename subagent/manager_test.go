package subagent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Agent fixtures ---

// staticAgent is a minimal SubAgent with a fixed ID, used where FuncAgent's
// generated IDs would get in the way.
type staticAgent struct {
	id   string
	caps []Capability
	fn   ProcessFunc
}

func (a *staticAgent) ID() string                 { return a.id }
func (a *staticAgent) Name() string               { return a.id }
func (a *staticAgent) Description() string        { return "" }
func (a *staticAgent) Capabilities() []Capability { return a.caps }

func (a *staticAgent) Process(ctx context.Context, task *Task) *AgentResult {
	if a.fn == nil {
		return &AgentResult{TaskID: task.ID, AgentID: a.id, Succeeded: true}
	}
	output, err := a.fn(ctx, task)
	res := &AgentResult{TaskID: task.ID, AgentID: a.id}
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Output = output
	res.Succeeded = true
	return res
}

func capAgent(id string, tags ...string) *staticAgent {
	caps := make([]Capability, len(tags))
	for i, tag := range tags {
		caps[i] = Capability{Tag: tag}
	}
	return &staticAgent{id: id, caps: caps}
}

// --- Tests ---

func TestManager_RegisterAndGet(t *testing.T) {
	m := NewManager()
	require.True(t, m.IsEmpty())

	m.Register(capAgent("a1", "research"))
	assert.Equal(t, 1, m.Len())

	agent, ok := m.Get("a1")
	require.True(t, ok)
	assert.Equal(t, "a1", agent.ID())

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestManager_ReplaceKeepsOrder(t *testing.T) {
	m := NewManager()
	m.Register(capAgent("a1", "research"))
	m.Register(capAgent("a2", "review"))
	m.Register(capAgent("a1", "writing")) // replace

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"a1", "a2"}, m.AgentNames())

	agent, _ := m.Get("a1")
	assert.Equal(t, "writing", agent.Capabilities()[0].Tag)
}

func TestManager_Unregister(t *testing.T) {
	m := NewManager()
	m.Register(capAgent("a1", "research"))
	m.Register(capAgent("a2", "review"))

	m.Unregister("a1")
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, []string{"a2"}, m.AgentNames())

	m.Unregister("a1") // no-op
	assert.Equal(t, 1, m.Len())
}

func TestManager_MatchCapability(t *testing.T) {
	m := NewManager()
	m.Register(capAgent("a1", "research"))
	m.Register(capAgent("a2", "code_review"))
	m.Register(capAgent("a3", "research", "writing"))

	matched := m.MatchCapability([]string{"research"})
	require.Len(t, matched, 2)
	assert.Equal(t, "a1", matched[0].ID())
	assert.Equal(t, "a3", matched[1].ID())
}

func TestManager_EmptyConstraintsBroadcast(t *testing.T) {
	m := NewManager()
	m.Register(capAgent("a1", "research"))
	m.Register(capAgent("a2", "code_review"))
	m.Register(capAgent("a3")) // no capabilities at all

	matched := m.MatchCapability(nil)
	require.Len(t, matched, 3)
	// registration order preserved
	assert.Equal(t, "a1", matched[0].ID())
	assert.Equal(t, "a2", matched[1].ID())
	assert.Equal(t, "a3", matched[2].ID())
}

func TestManager_NoMatch(t *testing.T) {
	m := NewManager()
	m.Register(capAgent("a1", "research"))

	assert.Empty(t, m.MatchCapability([]string{"translation"}))
}

func TestManager_MatchAnyConstraint(t *testing.T) {
	m := NewManager()
	m.Register(capAgent("a1", "research"))

	// one matching constraint out of several is enough
	matched := m.MatchCapability([]string{"translation", "research"})
	assert.Len(t, matched, 1)
}
