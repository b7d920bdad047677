// Package session provides conversation persistence backends.
//
// The core treats persistent storage as an external collaborator behind the
// swarmgate.ConversationStore interface; MemoryStore is the in-process
// implementation used by default and in tests.
package session
