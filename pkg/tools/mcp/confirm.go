package mcp

import (
	"context"
	"sync"
)

// ConfirmationOutcome is the user's decision on a pending tool execution.
type ConfirmationOutcome string

const (
	// OutcomeProceedOnce allows this invocation only.
	OutcomeProceedOnce ConfirmationOutcome = "proceed_once"

	// OutcomeProceedAlwaysServer allows this and all future invocations of
	// any tool on the same server.
	OutcomeProceedAlwaysServer ConfirmationOutcome = "proceed_always_server"

	// OutcomeProceedAlwaysTool allows this and all future invocations of
	// the same tool on the same server.
	OutcomeProceedAlwaysTool ConfirmationOutcome = "proceed_always_tool"

	// OutcomeCancel denies the invocation.
	OutcomeCancel ConfirmationOutcome = "cancel"
)

// AllowlistStore records server and tool identities approved for
// unprompted execution. Keys are either a bare server name (server scope)
// or "<server>.<tool>" (tool scope). The store is additive only: entries
// are never removed and never expire. Implementations must be safe for
// concurrent use, with Add idempotent so duplicate approvals are harmless.
type AllowlistStore interface {
	Has(key string) bool
	Add(key string)
}

// MemoryAllowlist is an in-memory AllowlistStore. It is the default store
// and holds process-lifetime state only.
type MemoryAllowlist struct {
	mu   sync.RWMutex
	keys map[string]struct{}
}

// NewMemoryAllowlist creates an empty MemoryAllowlist.
func NewMemoryAllowlist() *MemoryAllowlist {
	return &MemoryAllowlist{keys: make(map[string]struct{})}
}

// Has reports whether key has been approved.
func (s *MemoryAllowlist) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.keys[key]
	return ok
}

// Add records an approval. Adding an existing key is a no-op.
func (s *MemoryAllowlist) Add(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[key] = struct{}{}
}

// Len returns the number of recorded approvals.
func (s *MemoryAllowlist) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

// ConfirmationRequest is a pending confirmation surfaced to the caller's
// UI layer. The gate exposes no cancel operation; abandoning a request is
// the caller's concern. Concurrent pending requests for the same server or
// tool are independent: resolving one neither cancels nor satisfies any
// other.
type ConfirmationRequest struct {
	// Kind identifies the confirmation category, always "mcp" here.
	Kind string

	// Title is a short prompt heading for the UI.
	Title string

	// ServerName and ToolName identify the pending invocation.
	ServerName string
	ToolName   string

	// DisplayName is the human-facing tool identity, "<server>.<tool>".
	DisplayName string

	store AllowlistStore
}

// Resolve records the user's decision. ProceedAlwaysServer allow-lists the
// server, ProceedAlwaysTool allow-lists this tool; ProceedOnce and Cancel
// record nothing.
func (r *ConfirmationRequest) Resolve(outcome ConfirmationOutcome) {
	switch outcome {
	case OutcomeProceedAlwaysServer:
		r.store.Add(r.ServerName)
	case OutcomeProceedAlwaysTool:
		r.store.Add(r.ServerName + "." + r.ToolName)
	}
}

// Gate decides whether a tool invocation may proceed without user
// confirmation. Decisions are derived from the trust flag and the shared
// allow-list; the gate itself holds no other state.
type Gate struct {
	store AllowlistStore
}

// NewGate creates a Gate backed by store. A nil store gets a fresh
// MemoryAllowlist, isolating the gate's state.
func NewGate(store AllowlistStore) *Gate {
	if store == nil {
		store = NewMemoryAllowlist()
	}
	return &Gate{store: store}
}

// Decide returns nil when the invocation may proceed silently: the tool is
// trusted, or its server or tool key is already allow-listed. Otherwise it
// returns a pending ConfirmationRequest whose Resolve updates the
// allow-list. Trusted tools never touch the allow-list.
func (g *Gate) Decide(serverName, toolName string, trusted bool) *ConfirmationRequest {
	if trusted {
		return nil
	}
	if g.store.Has(serverName) || g.store.Has(serverName+"."+toolName) {
		return nil
	}
	return &ConfirmationRequest{
		Kind:        "mcp",
		Title:       "Confirm MCP Tool Execution",
		ServerName:  serverName,
		ToolName:    toolName,
		DisplayName: serverName + "." + toolName,
		store:       g.store,
	}
}

// Confirmer prompts the user to decide a pending confirmation. The CLI
// provides a terminal implementation; tests provide scripted ones. An
// error from Confirm is treated by callers as a cancellation.
type Confirmer interface {
	Confirm(ctx context.Context, req *ConfirmationRequest) (ConfirmationOutcome, error)
}
