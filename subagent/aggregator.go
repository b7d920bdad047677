package subagent

import (
	"fmt"
	"strings"
	"sync"
)

// Strategy selects how per-agent results combine into one outcome.
type Strategy string

// Aggregation strategies.
const (
	// FirstSuccess takes the first successful result in dispatch order.
	FirstSuccess Strategy = "first_success"

	// AllMustSucceed requires every agent to succeed; one failure fails the task.
	AllMustSucceed Strategy = "all_must_succeed"

	// MajorityVote succeeds when more than half of the agents succeed.
	MajorityVote Strategy = "majority_vote"

	// BestEffort succeeds when at least one agent succeeds. The default.
	BestEffort Strategy = "best_effort"
)

// String returns the strategy name.
func (s Strategy) String() string { return string(s) }

// valid reports whether s is a known strategy.
func (s Strategy) valid() bool {
	switch s {
	case FirstSuccess, AllMustSucceed, MajorityVote, BestEffort:
		return true
	}
	return false
}

// verdict reports whether a task with the given success count out of total
// dispatched agents is considered successful under this strategy.
func (s Strategy) verdict(successes, total int) bool {
	switch s {
	case AllMustSucceed:
		return total > 0 && successes == total
	case MajorityVote:
		return successes*2 > total
	default: // FirstSuccess, BestEffort
		return successes > 0
	}
}

// OutputDelimiter separates agent outputs in a combined best-effort result.
const OutputDelimiter = "\n\n---\n\n"

// Aggregator combines per-agent results under a strategy and keeps
// cumulative statistics across delegations. Safe for concurrent use.
type Aggregator struct {
	mu    sync.Mutex
	stats AggregatorStats
}

// AggregatorStats are cumulative counters across all Combine calls.
type AggregatorStats struct {
	// TasksAggregated is the number of Combine calls.
	TasksAggregated int

	// AgentsDispatched is the total number of per-agent results seen.
	AgentsDispatched int

	// AgentsSucceeded is the total number of successful per-agent results.
	AgentsSucceeded int

	// AgentsFailed is the total number of failed per-agent results.
	AgentsFailed int

	// ByStrategy counts Combine calls per strategy.
	ByStrategy map[Strategy]int
}

// NewAggregator creates an Aggregator with zeroed statistics.
func NewAggregator() *Aggregator {
	return &Aggregator{
		stats: AggregatorStats{ByStrategy: make(map[Strategy]int)},
	}
}

// Combine folds per-agent results (in dispatch order) into an aggregated
// result under the given strategy and updates cumulative statistics.
func (a *Aggregator) Combine(taskID string, results []AgentResult, strategy Strategy) *AggregatedResult {
	agg := &AggregatedResult{
		TaskID:   taskID,
		PerAgent: results,
		Strategy: strategy,
	}
	for _, r := range results {
		if r.Succeeded {
			agg.SuccessCount++
		} else {
			agg.FailureCount++
		}
	}

	agg.CombinedOutput = combineOutputs(results, strategy, agg.SuccessCount)

	a.mu.Lock()
	a.stats.TasksAggregated++
	a.stats.AgentsDispatched += len(results)
	a.stats.AgentsSucceeded += agg.SuccessCount
	a.stats.AgentsFailed += agg.FailureCount
	a.stats.ByStrategy[strategy]++
	a.mu.Unlock()

	return agg
}

// Stats returns a snapshot of cumulative aggregation statistics.
func (a *Aggregator) Stats() AggregatorStats {
	a.mu.Lock()
	defer a.mu.Unlock()

	snapshot := a.stats
	snapshot.ByStrategy = make(map[Strategy]int, len(a.stats.ByStrategy))
	for k, v := range a.stats.ByStrategy {
		snapshot.ByStrategy[k] = v
	}
	return snapshot
}

func combineOutputs(results []AgentResult, strategy Strategy, successes int) string {
	switch strategy {
	case FirstSuccess:
		for _, r := range results {
			if r.Succeeded {
				return r.Output
			}
		}
		return ""

	case AllMustSucceed:
		if successes != len(results) || len(results) == 0 {
			return ""
		}
		return joinSuccessful(results)

	case MajorityVote:
		if successes*2 <= len(results) {
			return ""
		}
		return joinSuccessful(results)

	default: // BestEffort
		return joinSuccessful(results)
	}
}

// joinSuccessful concatenates successful outputs in dispatch order,
// separated by OutputDelimiter.
func joinSuccessful(results []AgentResult) string {
	var parts []string
	for _, r := range results {
		if r.Succeeded {
			parts = append(parts, r.Output)
		}
	}
	return strings.Join(parts, OutputDelimiter)
}

// FormatSummary renders a short human-readable summary of an aggregated
// result, suitable for logs and tool output.
func FormatSummary(agg *AggregatedResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "task %s: %d/%d agents succeeded (%s)",
		agg.TaskID, agg.SuccessCount, len(agg.PerAgent), agg.Strategy)
	for _, r := range agg.PerAgent {
		if r.Succeeded {
			fmt.Fprintf(&sb, "\n  %s: ok in %s", r.AgentID, r.Duration.Round(timeRound))
		} else {
			fmt.Fprintf(&sb, "\n  %s: failed (%s)", r.AgentID, r.Error)
		}
	}
	return sb.String()
}
