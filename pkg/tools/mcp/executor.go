package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/luccasparoni/gemini-cli/pkg/api"
	"github.com/luccasparoni/gemini-cli/pkg/observability"
	"github.com/luccasparoni/gemini-cli/pkg/tools"
)

// Executor implements tools.ToolExecutor for MCP server tools. It manages
// connections to multiple MCP servers, discovers their tools, and routes
// each tool call through the confirmation gate and its server's adapter.
type Executor struct {
	mu sync.RWMutex

	// clients maps server name to MCPClient.
	clients map[string]*MCPClient

	// toolToServer maps tool name to the server name that provides it.
	toolToServer map[string]string

	// discovered tracks whether tools have been discovered.
	discovered bool

	gate      *Gate
	confirmer Confirmer
}

// Ensure Executor implements tools.ToolExecutor at compile time.
var _ tools.ToolExecutor = (*Executor)(nil)

// NewExecutor creates an Executor over the given MCP clients. The gate's
// allow-list is shared across all servers; a nil gate gets a fresh one. A
// nil confirmer denies every invocation that the gate does not already
// allow.
func NewExecutor(clients map[string]*MCPClient, gate *Gate, confirmer Confirmer) *Executor {
	if gate == nil {
		gate = NewGate(nil)
	}
	return &Executor{
		clients:      clients,
		toolToServer: make(map[string]string),
		gate:         gate,
		confirmer:    confirmer,
	}
}

// Kind returns tools.ToolKindMCP.
func (e *Executor) Kind() tools.ToolKind {
	return tools.ToolKindMCP
}

// CanExecute returns true if any connected MCP server provides the named
// tool. On the first call, it triggers lazy tool discovery.
func (e *Executor) CanExecute(toolName string) bool {
	e.ensureDiscovered()

	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.toolToServer[toolName]
	return ok
}

// Execute routes the tool call to the correct MCP server, applies the
// confirmation policy, and returns the adapted result. Transport-level
// failures of the outbound call are the only errors returned; everything
// else is reported through the result.
func (e *Executor) Execute(ctx context.Context, call tools.ToolCall) (*tools.ToolResult, error) {
	e.ensureDiscovered()

	e.mu.RLock()
	serverName, ok := e.toolToServer[call.Name]
	if !ok {
		e.mu.RUnlock()
		return tools.TextResult(call.ID,
			fmt.Sprintf("no MCP server provides tool %q", call.Name), true), nil
	}
	client := e.clients[serverName]
	e.mu.RUnlock()

	// Parse the arguments from JSON string to a generic map.
	var args map[string]any
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return tools.TextResult(call.ID,
				fmt.Sprintf("invalid arguments JSON: %v", err), true), nil
		}
	}

	adapter := NewAdapter(serverName, call.Name, e.gate, client)

	if req := adapter.ShouldConfirm(client.Trusted()); req != nil {
		outcome := e.confirm(ctx, req)
		req.Resolve(outcome)
		observability.ConfirmationsTotal.WithLabelValues(serverName, string(outcome)).Inc()
		if outcome == OutcomeCancel {
			return tools.TextResult(call.ID,
				fmt.Sprintf("execution of tool %q on server %q was cancelled", call.Name, serverName), true), nil
		}
	}

	start := time.Now()
	res, err := adapter.Invoke(ctx, Invocation{
		ServerName: serverName,
		ToolName:   call.Name,
		Params:     args,
		Timeout:    client.cfg.Timeout,
		Trusted:    client.Trusted(),
	})
	observability.ToolInvocationDuration.WithLabelValues(serverName, call.Name).Observe(time.Since(start).Seconds())

	if err != nil {
		observability.ToolInvocationsTotal.WithLabelValues(serverName, call.Name, "transport_error").Inc()
		return nil, err
	}

	status := "ok"
	if res.IsError {
		status = "error"
	}
	observability.ToolInvocationsTotal.WithLabelValues(serverName, call.Name, status).Inc()
	if res.Fallback {
		observability.TransformFallbacksTotal.WithLabelValues(serverName, call.Name).Inc()
	}

	return &tools.ToolResult{
		CallID:   call.ID,
		Parts:    res.Parts,
		Display:  res.Display,
		Raw:      res.Raw,
		Fallback: res.Fallback,
		IsError:  res.IsError,
	}, nil
}

// confirm surfaces the pending request to the confirmer. Without a
// confirmer, or when prompting fails, the invocation is cancelled.
func (e *Executor) confirm(ctx context.Context, req *ConfirmationRequest) ConfirmationOutcome {
	if e.confirmer == nil {
		return OutcomeCancel
	}
	outcome, err := e.confirmer.Confirm(ctx, req)
	if err != nil {
		slog.Warn("confirmation prompt failed, cancelling",
			"server", req.ServerName, "tool", req.ToolName, "error", err)
		return OutcomeCancel
	}
	return outcome
}

// DeclaredTools returns all tools discovered from connected MCP servers,
// for merging into the runtime's tool definitions.
func (e *Executor) DeclaredTools() []api.ToolDeclaration {
	e.ensureDiscovered()

	e.mu.RLock()
	defer e.mu.RUnlock()

	var all []api.ToolDeclaration
	for _, client := range e.clients {
		client.mu.Lock()
		all = append(all, client.cachedTools...)
		client.mu.Unlock()
	}
	return all
}

// ServerFor returns the name of the server providing toolName.
func (e *Executor) ServerFor(toolName string) (string, bool) {
	e.ensureDiscovered()

	e.mu.RLock()
	defer e.mu.RUnlock()
	server, ok := e.toolToServer[toolName]
	return server, ok
}

// Close closes all MCP client connections.
func (e *Executor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var lastErr error
	for name, client := range e.clients {
		if err := client.Close(); err != nil {
			slog.Warn("failed to close MCP client", "server", name, "error", err)
			lastErr = err
		}
	}
	return lastErr
}

// ensureDiscovered triggers tool discovery if it hasn't been done yet.
func (e *Executor) ensureDiscovered() {
	e.mu.RLock()
	if e.discovered {
		e.mu.RUnlock()
		return
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	// Double-check after acquiring write lock.
	if e.discovered {
		return
	}

	ctx := context.Background()
	for name, client := range e.clients {
		decls, err := client.DiscoverTools(ctx)
		if err != nil {
			slog.Error("failed to discover tools from MCP server",
				"server", name,
				"error", err,
			)
			continue
		}

		for _, decl := range decls {
			if _, exists := e.toolToServer[decl.Name]; exists {
				slog.Warn("duplicate MCP tool name, using first provider",
					"tool", decl.Name,
					"server", name,
				)
				continue
			}
			e.toolToServer[decl.Name] = name
		}

		slog.Info("discovered MCP tools",
			"server", name,
			"count", len(decls),
		)
	}

	e.discovered = true
}
