// Package subagent provides specialized worker agents and the machinery to
// delegate tasks to them: a capability-indexed Manager, a Delegator that
// fans a task out to eligible agents with bounded parallelism, and an
// Aggregator that combines per-agent results under a configurable strategy.
//
// A minimal delegation:
//
//	mgr := subagent.NewManager()
//	mgr.Register(researcher)
//	mgr.Register(reviewer)
//
//	del := subagent.NewDelegator(mgr, subagent.Config{MaxParallel: 2})
//	task := subagent.NewTask("review this diff for races",
//		subagent.WithConstraints("code_review"))
//
//	agg, err := del.Delegate(ctx, task)
package subagent
