package swarmgate

import "errors"

// ErrUnknownTool is returned by ToolRegistry.Execute when no tool is
// registered under the requested name.
var ErrUnknownTool = errors.New("swarmgate: unknown tool")
