package swarmgate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/swarmgate/swarmgate/internal/schema"
)

// Tool is the generic interface for agent tools. The type parameter T defines
// the input struct that will be automatically deserialized from JSON.
type Tool[T any] interface {
	Name() string
	Description() string
	Execute(ctx context.Context, input T) (*ToolResult, error)
}

// ToolResult is the output of a single tool execution. It is produced once
// per invocation and never mutated afterwards.
type ToolResult struct {
	Content string
	IsError bool
}

// TextResult is a convenience constructor for a successful tool result.
func TextResult(text string) *ToolResult {
	return &ToolResult{Content: text}
}

// ErrorResult is a convenience constructor for an error tool result.
func ErrorResult(text string) *ToolResult {
	return &ToolResult{Content: text, IsError: true}
}

// ToolDefinition describes a registered tool: its unique name, a description
// for the LLM backend, and a JSON-Schema-like input schema. Definitions are
// immutable snapshots; re-registering a name produces a new definition.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	InputSchema map[string]any `json:"input_schema"`
	Required    []string       `json:"required,omitempty"`
}

// ExecuteFunc runs a tool with raw JSON input.
type ExecuteFunc func(ctx context.Context, raw json.RawMessage) (*ToolResult, error)

// ToolHandle pairs a tool's definition with its execution function.
type ToolHandle struct {
	def     ToolDefinition
	execute ExecuteFunc
}

// Definition returns the tool's definition snapshot.
func (h *ToolHandle) Definition() ToolDefinition { return h.def }

// Execute runs the tool with the given raw JSON input.
func (h *ToolHandle) Execute(ctx context.Context, raw json.RawMessage) (*ToolResult, error) {
	return h.execute(ctx, raw)
}

// ToolRegistry manages registered tools. It is concurrent-safe: lookups and
// execution may run from any number of goroutines while registration briefly
// takes the write lock. Execution itself happens outside the lock.
type ToolRegistry struct {
	mu    sync.RWMutex
	tools map[string]*ToolHandle
	order []string // preserve registration order
}

// NewToolRegistry creates a new empty ToolRegistry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		tools: make(map[string]*ToolHandle),
	}
}

// RegisterTool registers a generic tool into the registry. The input type T
// is used to auto-generate a JSON Schema. Registering a name that already
// exists replaces the previous entry; the last write wins.
func RegisterTool[T any](r *ToolRegistry, tool Tool[T]) {
	s := schema.Generate[T]()
	handle := &ToolHandle{
		def: ToolDefinition{
			Name:        tool.Name(),
			Description: tool.Description(),
			InputSchema: s.Properties,
			Required:    s.Required,
		},
		execute: func(ctx context.Context, raw json.RawMessage) (*ToolResult, error) {
			var input T
			if len(raw) > 0 {
				if err := json.Unmarshal(raw, &input); err != nil {
					return ErrorResult(fmt.Sprintf("invalid input: %s", err.Error())), nil
				}
			}
			return tool.Execute(ctx, input)
		},
	}
	r.put(handle)
}

// RegisterRaw registers a tool with a pre-built schema and execute function.
// This is used by dynamic tool sources that don't use the generic Tool[T]
// interface. The last write wins on name collisions.
func (r *ToolRegistry) RegisterRaw(def ToolDefinition, execute ExecuteFunc) {
	r.put(&ToolHandle{def: def, execute: execute})
}

func (r *ToolRegistry) put(handle *ToolHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[handle.def.Name]; !exists {
		r.order = append(r.order, handle.def.Name)
	}
	r.tools[handle.def.Name] = handle
}

// Get returns the handle for a registered tool. Absence is not an error at
// this layer; the second return reports whether the tool exists.
func (r *ToolRegistry) Get(name string) (*ToolHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.tools[name]
	return h, ok
}

// Execute runs a tool by name with the given raw JSON input. A missing tool
// fails with ErrUnknownTool; any result the tool itself produces, success
// or error-flagged, is returned as-is. The registry never inspects the
// input against the schema; validation is the tool's own concern.
func (r *ToolRegistry) Execute(ctx context.Context, name string, input json.RawMessage) (*ToolResult, error) {
	r.mu.RLock()
	handle, ok := r.tools[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return handle.execute(ctx, input)
}

// Definitions returns a snapshot of all currently registered tool
// definitions, used to advertise capabilities to the LLM backend.
// Order is unspecified.
func (r *ToolRegistry) Definitions() []ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]ToolDefinition, 0, len(r.tools))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].def)
	}
	return defs
}

// Names returns the names of all registered tools in registration order.
func (r *ToolRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered tools.
func (r *ToolRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// ToolSearchMatch represents a tool found by search.
type ToolSearchMatch struct {
	Name        string
	Description string
}

// Search finds tools whose name or description contains the query (case-insensitive).
func (r *ToolRegistry) Search(query string) []ToolSearchMatch {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(query)
	var matches []ToolSearchMatch
	for _, name := range r.order {
		def := r.tools[name].def
		if strings.Contains(strings.ToLower(def.Name), q) ||
			strings.Contains(strings.ToLower(def.Description), q) {
			matches = append(matches, ToolSearchMatch{
				Name:        def.Name,
				Description: def.Description,
			})
		}
	}
	return matches
}
