package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swarmgate/swarmgate"
)

func TestMemoryStore_SaveAndLoad(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	conv := swarmgate.NewConversation("sys")
	conv.AddUser("hello")
	require.NoError(t, store.Save(ctx, conv))

	loaded, err := store.Load(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, conv.ID, loaded.ID)
	assert.Equal(t, "sys", loaded.System)
	require.Len(t, loaded.Messages, 1)
}

func TestMemoryStore_SaveIsolatesCaller(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	conv := swarmgate.NewConversation("")
	conv.AddUser("original")
	require.NoError(t, store.Save(ctx, conv))

	// mutations after save must not leak into the store
	conv.AddUser("late addition")

	loaded, err := store.Load(ctx, conv.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Messages, 1)
}

func TestMemoryStore_LoadIsolatesStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	conv := swarmgate.NewConversation("")
	conv.AddUser("original")
	require.NoError(t, store.Save(ctx, conv))

	loaded, err := store.Load(ctx, conv.ID)
	require.NoError(t, err)
	loaded.Messages[0].Content = "mutated"

	again, err := store.Load(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", again.Messages[0].Content)
}

func TestMemoryStore_SaveValidation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, nil))
	assert.Error(t, store.Save(ctx, &swarmgate.Conversation{}))
}

func TestMemoryStore_LoadMissing(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Load(context.Background(), "conv_nope")
	assert.Error(t, err)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	conv := swarmgate.NewConversation("")
	require.NoError(t, store.Save(ctx, conv))
	require.Equal(t, 1, store.Len())

	require.NoError(t, store.Delete(ctx, conv.ID))
	assert.Equal(t, 0, store.Len())
	assert.Error(t, store.Delete(ctx, conv.ID))
}

func TestMemoryStore_List(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Save(ctx, swarmgate.NewConversation("")))
	}

	convs, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, convs, 3)
}
