package tools

import (
	"context"
	"encoding/json"

	"github.com/luccasparoni/gemini-cli/pkg/api"
)

// ToolKind classifies how a tool is hosted and executed.
type ToolKind int

const (
	// ToolKindFunction is a client-executed tool. Execution is delegated
	// back to the caller rather than performed by an executor here.
	ToolKindFunction ToolKind = iota

	// ToolKindMCP is a tool hosted by an external MCP server. The executor
	// connects to the server, gates execution behind the confirmation
	// policy, and adapts the server's content blocks into output parts.
	ToolKindMCP
)

// ToolExecutor executes tool calls. The MCP implementation lives in
// pkg/tools/mcp.
type ToolExecutor interface {
	// Kind returns the type of tools this executor handles.
	Kind() ToolKind

	// CanExecute checks if this executor can handle the given tool name.
	CanExecute(toolName string) bool

	// Execute runs the tool and returns the result. A non-nil error is
	// reserved for transport-level failures of the outbound call; tool
	// errors and policy denials are reported through ToolResult.IsError.
	Execute(ctx context.Context, call ToolCall) (*ToolResult, error)
}

// ToolCall represents a request to invoke a tool.
type ToolCall struct {
	// ID is the unique call identifier (e.g. api.NewCallID()).
	ID string

	// Name is the tool name.
	Name string

	// Arguments is the JSON-encoded arguments string.
	Arguments string
}

// ToolResult represents the processed output of a tool execution.
type ToolResult struct {
	// CallID matches the originating ToolCall.ID.
	CallID string

	// Parts is the canonical output for the model runtime, in the order
	// the server's content blocks appeared. Empty when Fallback is set.
	Parts []api.Part

	// Display is the human-readable summary for the UI layer.
	Display string

	// Raw is the tool server's response exactly as received.
	Raw json.RawMessage

	// Fallback reports that no content block yielded output and Raw must
	// be passed through to the runtime unchanged.
	Fallback bool

	// IsError indicates that the result reports a failure (either flagged
	// by the server or produced locally, e.g. a cancelled confirmation).
	IsError bool
}

// TextResult builds a locally-produced text-only ToolResult, used for
// routing and policy errors that never reach a tool server.
func TextResult(callID, text string, isError bool) *ToolResult {
	return &ToolResult{
		CallID:  callID,
		Parts:   []api.Part{api.TextPart(text)},
		Display: text,
		IsError: isError,
	}
}
