package subagent

import (
	"fmt"
	"sync"
	"time"

	"github.com/swarmgate/swarmgate"
)

// Priority ranks tasks relative to each other. It is carried on the task and
// surfaced to agents; the delegator itself does not reorder by priority.
type Priority int

// Task priorities, lowest to highest.
const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
	PriorityCritical
)

// String returns the lowercase name of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

// Task lifecycle states. A task moves Pending -> Running -> Completed or
// Failed; the terminal states never transition again.
const (
	StatusPending   TaskStatus = "pending"
	StatusRunning   TaskStatus = "running"
	StatusCompleted TaskStatus = "completed"
	StatusFailed    TaskStatus = "failed"
)

// IsTerminal reports whether the status is Completed or Failed.
func (s TaskStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Task is a unit of work to delegate. Construct with NewTask; the zero value
// is not usable.
type Task struct {
	// ID uniquely identifies the task.
	ID string

	// Description is the natural-language statement of the work.
	Description string

	// Priority ranks the task. Defaults to PriorityNormal.
	Priority Priority

	// Constraints restricts delegation to agents whose capabilities match
	// at least one entry. Empty means every registered agent is eligible.
	Constraints []string

	// CreatedAt is when the task was constructed.
	CreatedAt time.Time

	mu     sync.Mutex
	status TaskStatus
}

// TaskOption configures a Task at construction.
type TaskOption func(*Task)

// WithPriority sets the task priority.
func WithPriority(p Priority) TaskOption {
	return func(t *Task) { t.Priority = p }
}

// WithConstraints restricts the task to agents matching at least one of the
// given capability constraints.
func WithConstraints(constraints ...string) TaskOption {
	return func(t *Task) { t.Constraints = constraints }
}

// NewTask creates a pending task with a generated ID.
func NewTask(description string, opts ...TaskOption) *Task {
	t := &Task{
		ID:          swarmgate.GenerateID(swarmgate.PrefixTask),
		Description: description,
		Priority:    PriorityNormal,
		CreatedAt:   time.Now().UTC(),
		status:      StatusPending,
	}
	for _, fn := range opts {
		fn(t)
	}
	return t
}

// Status returns the current lifecycle state.
func (t *Task) Status() TaskStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// markRunning moves the task from Pending to Running. It fails if the task
// is already terminal or already running.
func (t *Task) markRunning() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status.IsTerminal() {
		return fmt.Errorf("%w: task %s is %s", ErrTaskAlreadyTerminal, t.ID, t.status)
	}
	if t.status == StatusRunning {
		return fmt.Errorf("task %s is already running", t.ID)
	}
	t.status = StatusRunning
	return nil
}

// markCompleted moves the task to Completed. Terminal states are final.
func (t *Task) markCompleted() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status.IsTerminal() {
		return
	}
	t.status = StatusCompleted
}

// markFailed moves the task to Failed. Terminal states are final.
func (t *Task) markFailed() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status.IsTerminal() {
		return
	}
	t.status = StatusFailed
}
