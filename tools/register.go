package tools

import (
	"github.com/swarmgate/swarmgate"
	"github.com/swarmgate/swarmgate/subagent"
)

// RegisterAll registers all built-in tools into the provided registry.
func RegisterAll(registry *swarmgate.ToolRegistry) {
	swarmgate.RegisterTool(registry, &ReadTool{})
	swarmgate.RegisterTool(registry, &BashTool{})
	swarmgate.RegisterTool(registry, &GlobTool{})
	swarmgate.RegisterTool(registry, &TimeTool{})
}

// RegisterDelegation registers the Delegate tool, wiring the registry's
// agents to the given delegator.
func RegisterDelegation(registry *swarmgate.ToolRegistry, delegator *subagent.Delegator) {
	swarmgate.RegisterTool(registry, NewDelegateTool(delegator))
}
