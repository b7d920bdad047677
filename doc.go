// Package swarmgate implements the orchestration core of an LLM gateway:
// a tool registry shared by all agents, an abstract LLM backend, and the
// conversation model the two exchange.
//
// The root package holds the primitives; orchestration lives in
// sub-packages:
//
//   - [subagent] provides capability-routed sub-agents, the Manager that
//     owns them, the Delegator that fans tasks out to them in parallel,
//     and the Aggregator that reduces their results.
//   - [tools] provides built-in tools (Glob, Read, Bash, Time, Delegate).
//   - [session] provides conversation store implementations.
//
// # Quick Start
//
//	reg := swarmgate.NewToolRegistry()
//	tools.RegisterAll(reg)
//
//	backend := swarmgate.NewAnthropicBackend()
//	mgr := subagent.NewManager()
//	mgr.Register(subagent.NewLLMAgent("reviewer", backend, reg,
//	    subagent.WithCapabilities(subagent.Capability{Tag: "code_review"})))
//
//	del := subagent.NewDelegator(mgr, subagent.Config{})
//	task := subagent.NewTask("review the diff in ./pr.patch",
//	    subagent.WithConstraints("code_review"))
//	result, err := del.Delegate(ctx, task)
package swarmgate
