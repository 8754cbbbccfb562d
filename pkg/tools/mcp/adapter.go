package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/luccasparoni/gemini-cli/pkg/api"
	"github.com/luccasparoni/gemini-cli/pkg/debug"
)

// Caller issues the outbound tool call and returns the raw result JSON
// exactly as received from the server. MCPClient is the production
// implementation; tests substitute scripted callers.
type Caller interface {
	CallTool(ctx context.Context, toolName string, args map[string]any) (json.RawMessage, error)
}

// Invocation describes a single tool call. It is created per call and
// discarded once the response has been processed.
type Invocation struct {
	ServerName string
	ToolName   string
	Params     map[string]any

	// Timeout bounds the outbound call; zero means no per-call timeout.
	Timeout time.Duration

	// Trusted bypasses the confirmation gate unconditionally.
	Trusted bool
}

// Result is the processed outcome of a successful tool invocation.
type Result struct {
	// Parts is the canonical output for the model runtime. Empty when
	// Fallback is set.
	Parts []api.Part

	// Display is the human-readable summary of the same response.
	Display string

	// Raw is the server's response exactly as received.
	Raw json.RawMessage

	// Fallback reports that no content block yielded output; the runtime
	// must consume Raw unchanged instead of Parts.
	Fallback bool

	// IsError mirrors the response envelope's error flag.
	IsError bool
}

// Adapter orchestrates a single server/tool pair: it gates execution
// behind the confirmation policy, performs the outbound call through its
// Caller, and feeds the raw response to the transformer and summarizer.
type Adapter struct {
	serverName string
	toolName   string
	gate       *Gate
	caller     Caller
}

// NewAdapter creates an Adapter. A nil gate gets a fresh, isolated one.
func NewAdapter(serverName, toolName string, gate *Gate, caller Caller) *Adapter {
	if gate == nil {
		gate = NewGate(nil)
	}
	return &Adapter{
		serverName: serverName,
		toolName:   toolName,
		gate:       gate,
		caller:     caller,
	}
}

// ShouldConfirm consults the gate. A nil return means the invocation may
// proceed silently; otherwise the caller must surface the request to the
// user and Resolve it before invoking.
func (a *Adapter) ShouldConfirm(trusted bool) *ConfirmationRequest {
	return a.gate.Decide(a.serverName, a.toolName, trusted)
}

// Invoke performs the outbound call and processes the response. Transport
// failures are returned unmodified; the transformer and summarizer run
// only on a structurally successful raw response. Invoke does not consult
// the gate: confirmation is the caller's responsibility via ShouldConfirm.
func (a *Adapter) Invoke(ctx context.Context, inv Invocation) (*Result, error) {
	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	raw, err := a.caller.CallTool(ctx, a.toolName, inv.Params)
	if err != nil {
		return nil, err
	}

	res := &Result{Raw: raw, Display: Summarize(raw)}

	resp, decodeErr := DecodeResponse(raw)
	if decodeErr != nil {
		// Not the expected envelope shape: no block can yield content, so
		// the whole-response fallback applies.
		debug.Log("transform", "response not decodable, falling back to raw",
			"server", a.serverName, "tool", a.toolName, "error", decodeErr)
		res.Fallback = true
		return res, nil
	}

	res.IsError = resp.IsError
	parts, ok := Transform(a.toolName, a.serverName, resp)
	if !ok {
		debug.Log("transform", "no block yielded content, falling back to raw",
			"server", a.serverName, "tool", a.toolName)
		res.Fallback = true
		return res, nil
	}
	res.Parts = parts
	return res, nil
}
