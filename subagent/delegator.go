package subagent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Structural delegation errors. These abort before any agent is dispatched;
// per-agent failures are never reported this way.
var (
	// ErrEmptyTask means the task description was empty or whitespace.
	ErrEmptyTask = errors.New("subagent: empty task description")

	// ErrNoEligibleAgents means no registered agent matched the task constraints.
	ErrNoEligibleAgents = errors.New("subagent: no eligible agents")

	// ErrTaskAlreadyTerminal means the task was already completed or failed.
	ErrTaskAlreadyTerminal = errors.New("subagent: task already terminal")
)

const timeRound = time.Millisecond

// Defaults applied by Config.applyDefaults.
const (
	// DefaultMaxParallel caps concurrent agent dispatches per delegation.
	DefaultMaxParallel = 4

	// DefaultAgentTimeout bounds a single agent's processing time.
	DefaultAgentTimeout = 120 * time.Second
)

// Config tunes a Delegator. The zero value is usable; unset fields take the
// package defaults.
type Config struct {
	// MaxParallel caps how many agents process the task concurrently.
	// Defaults to DefaultMaxParallel.
	MaxParallel int

	// AgentTimeout bounds each agent's processing time. An agent that
	// exceeds it is recorded as a failed result; other agents are
	// unaffected. Defaults to DefaultAgentTimeout.
	AgentTimeout time.Duration

	// DefaultStrategy is the aggregation strategy used by Delegate.
	// Defaults to BestEffort.
	DefaultStrategy Strategy

	// Logger receives structured delegation events. Defaults to a no-op logger.
	Logger *zap.Logger
}

func (c Config) applyDefaults() Config {
	if c.MaxParallel <= 0 {
		c.MaxParallel = DefaultMaxParallel
	}
	if c.AgentTimeout <= 0 {
		c.AgentTimeout = DefaultAgentTimeout
	}
	if !c.DefaultStrategy.valid() {
		c.DefaultStrategy = BestEffort
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// Delegator routes tasks to eligible agents, runs them with bounded
// parallelism, and aggregates their results. Safe for concurrent use; each
// delegation is independent.
type Delegator struct {
	manager    *Manager
	aggregator *Aggregator
	cfg        Config
}

// NewDelegator creates a Delegator over the given manager.
func NewDelegator(manager *Manager, cfg Config) *Delegator {
	return &Delegator{
		manager:    manager,
		aggregator: NewAggregator(),
		cfg:        cfg.applyDefaults(),
	}
}

// Aggregator exposes the delegator's aggregator for statistics inspection.
func (d *Delegator) Aggregator() *Aggregator {
	return d.aggregator
}

// Delegate fans the task out under the configured default strategy.
func (d *Delegator) Delegate(ctx context.Context, task *Task) (*AggregatedResult, error) {
	return d.DelegateWith(ctx, task, d.cfg.DefaultStrategy)
}

// DelegateWith fans the task out to every eligible agent, waits for all of
// them, and combines their results under the given strategy.
//
// Validation failures (empty task, no eligible agents, terminal task) return
// an error before any agent runs and leave the task status unchanged. Once
// dispatch begins, agent failures and timeouts become failed AgentResults;
// the returned error is then always nil.
func (d *Delegator) DelegateWith(ctx context.Context, task *Task, strategy Strategy) (*AggregatedResult, error) {
	if task == nil || strings.TrimSpace(task.Description) == "" {
		return nil, ErrEmptyTask
	}
	if task.Status().IsTerminal() {
		return nil, fmt.Errorf("%w: task %s is %s", ErrTaskAlreadyTerminal, task.ID, task.Status())
	}
	if !strategy.valid() {
		strategy = d.cfg.DefaultStrategy
	}

	// Structural failures abort before dispatch and leave the task pending.
	agents := d.manager.MatchCapability(task.Constraints)
	if len(agents) == 0 {
		return nil, fmt.Errorf("%w: task %s constraints %v", ErrNoEligibleAgents, task.ID, task.Constraints)
	}

	if err := task.markRunning(); err != nil {
		return nil, err
	}

	d.cfg.Logger.Info("delegating task",
		zap.String("task_id", task.ID),
		zap.Int("agents", len(agents)),
		zap.String("strategy", strategy.String()),
		zap.Int("max_parallel", d.cfg.MaxParallel),
	)

	// Results land at their dispatch index, so the aggregate preserves
	// dispatch order no matter which agent finishes first.
	results := make([]AgentResult, len(agents))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.cfg.MaxParallel)

	for i, agent := range agents {
		i, agent := i, agent
		g.Go(func() error {
			results[i] = d.runAgent(gctx, agent, task)
			return nil
		})
	}
	g.Wait() // workers never return errors; failures live in results

	agg := d.aggregator.Combine(task.ID, results, strategy)

	if strategy.verdict(agg.SuccessCount, len(results)) {
		task.markCompleted()
	} else {
		task.markFailed()
	}

	d.cfg.Logger.Info("task aggregated",
		zap.String("task_id", task.ID),
		zap.Int("succeeded", agg.SuccessCount),
		zap.Int("failed", agg.FailureCount),
		zap.String("status", string(task.Status())),
	)

	return agg, nil
}

// runAgent executes one agent under the per-agent timeout, converting
// timeouts and panics into failed results so the fan-out always completes.
func (d *Delegator) runAgent(ctx context.Context, agent SubAgent, task *Task) AgentResult {
	actx, cancel := context.WithTimeout(ctx, d.cfg.AgentTimeout)
	defer cancel()

	start := time.Now()
	done := make(chan *AgentResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				d.cfg.Logger.Error("agent panicked",
					zap.String("agent_id", agent.ID()),
					zap.Any("panic", r),
				)
				done <- &AgentResult{
					TaskID:   task.ID,
					AgentID:  agent.ID(),
					Error:    fmt.Sprintf("agent panicked: %v", r),
					Duration: time.Since(start),
				}
			}
		}()
		done <- agent.Process(actx, task)
	}()

	select {
	case result := <-done:
		if result == nil {
			return AgentResult{
				TaskID:   task.ID,
				AgentID:  agent.ID(),
				Error:    "agent returned no result",
				Duration: time.Since(start),
			}
		}
		return *result
	case <-actx.Done():
		// The parent context cancelling also trips actx; don't report a
		// timeout that never elapsed.
		errMsg := fmt.Sprintf("agent timed out after %s", d.cfg.AgentTimeout)
		if errors.Is(ctx.Err(), context.Canceled) {
			errMsg = "delegation cancelled"
		}
		d.cfg.Logger.Warn("agent did not finish",
			zap.String("agent_id", agent.ID()),
			zap.String("task_id", task.ID),
			zap.String("reason", errMsg),
		)
		return AgentResult{
			TaskID:   task.ID,
			AgentID:  agent.ID(),
			Error:    errMsg,
			Duration: time.Since(start),
		}
	}
}
