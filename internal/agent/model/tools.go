package model

// ToolResult is the uniform envelope every registry tool returns. Tools never
// fail on malformed input; domain failures are reported via Success=false.
type ToolResult struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
	Message string         `json:"message,omitempty"`
}

// ToolInvoker is the registry capability the dispatcher depends on. The second
// return value reports whether a tool with that name is registered.
type ToolInvoker interface {
	Invoke(name string, args map[string]string) (ToolResult, bool)
	Names() []string
}
