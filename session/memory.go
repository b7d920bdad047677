package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/swarmgate/swarmgate"
)

// MemoryStore is an in-memory conversation store backed by a
// sync.RWMutex-protected map. Conversations are deep-copied on save and load
// to prevent external mutation.
type MemoryStore struct {
	mu    sync.RWMutex
	convs map[string]*swarmgate.Conversation
}

var _ swarmgate.ConversationStore = (*MemoryStore)(nil)

// NewMemoryStore creates a new empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		convs: make(map[string]*swarmgate.Conversation),
	}
}

// Save persists a conversation by deep-copying it into the store.
func (m *MemoryStore) Save(_ context.Context, conv *swarmgate.Conversation) error {
	if conv == nil {
		return fmt.Errorf("conversation is nil")
	}
	if conv.ID == "" {
		return fmt.Errorf("conversation has no ID")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.convs[conv.ID] = conv.Clone()
	return nil
}

// Load retrieves a conversation by ID. Returns a deep copy so callers cannot
// mutate store state. Returns an error if the conversation is not found.
func (m *MemoryStore) Load(_ context.Context, id string) (*swarmgate.Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.convs[id]
	if !ok {
		return nil, fmt.Errorf("conversation not found: %s", id)
	}
	return c.Clone(), nil
}

// Delete removes a conversation by ID. Returns an error if not found.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.convs[id]; !ok {
		return fmt.Errorf("conversation not found: %s", id)
	}
	delete(m.convs, id)
	return nil
}

// List returns all conversations in the store as deep copies.
func (m *MemoryStore) List(_ context.Context) ([]*swarmgate.Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*swarmgate.Conversation, 0, len(m.convs))
	for _, c := range m.convs {
		result = append(result, c.Clone())
	}
	return result, nil
}

// Len returns the number of stored conversations.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.convs)
}
