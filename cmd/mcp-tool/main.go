// Command mcp-tool connects to the configured MCP servers and lists or
// invokes their tools from the terminal.
//
//	mcp-tool [flags] list
//	mcp-tool [flags] call <tool> [json-arguments]
//
// Flags:
//
//	-config PATH  Config file (default: discovered, see pkg/config)
//	-yes          Approve all tool executions without prompting
//
// Configuration can also come from GEMINI_* environment variables; see
// pkg/config for the full list.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/luccasparoni/gemini-cli/pkg/api"
	"github.com/luccasparoni/gemini-cli/pkg/config"
	"github.com/luccasparoni/gemini-cli/pkg/debug"
	"github.com/luccasparoni/gemini-cli/pkg/tools"
	"github.com/luccasparoni/gemini-cli/pkg/tools/mcp"
)

func main() {
	if err := run(); err != nil {
		slog.Error("mcp-tool failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "config file path")
	yes := flag.Bool("yes", false, "approve all tool executions without prompting")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	debug.Init(cfg.Logging.Debug, cfg.Logging.Level)

	if flag.NArg() == 0 {
		return fmt.Errorf("usage: mcp-tool [flags] list | call <tool> [json-arguments]")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(cfg.MCP.Servers) == 0 {
		return fmt.Errorf("no MCP servers configured")
	}

	clients := make(map[string]*mcp.MCPClient, len(cfg.MCP.Servers))
	for _, sc := range cfg.MCP.Servers {
		client := mcp.NewMCPClient(serverConfig(sc))
		if err := client.Connect(ctx); err != nil {
			return fmt.Errorf("connecting to %q: %w", sc.Name, err)
		}
		clients[sc.Name] = client
	}

	var confirmer mcp.Confirmer = &terminalConfirmer{in: bufio.NewReader(os.Stdin)}
	if *yes {
		confirmer = approveAll{}
	}
	executor := mcp.NewExecutor(clients, nil, confirmer)
	defer executor.Close()

	if cfg.Observability.Metrics.Enabled {
		go serveMetrics(cfg.Observability.Metrics)
	}

	switch cmd := flag.Arg(0); cmd {
	case "list":
		return listTools(executor)
	case "call":
		if flag.NArg() < 2 {
			return fmt.Errorf("usage: mcp-tool call <tool> [json-arguments]")
		}
		return callTool(ctx, executor, cfg, flag.Arg(1), flag.Arg(2))
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// serverConfig converts the loaded YAML server entry into the MCP client's
// configuration.
func serverConfig(sc config.MCPServerConfig) mcp.ServerConfig {
	return mcp.ServerConfig{
		Name:      sc.Name,
		Transport: sc.Transport,
		URL:       sc.URL,
		Headers:   sc.Headers,
		Trust:     sc.Trust,
		Timeout:   sc.Timeout,
		Auth: mcp.AuthConfig{
			Type:         sc.Auth.Type,
			TokenURL:     sc.Auth.TokenURL,
			ClientID:     sc.Auth.ClientID,
			ClientSecret: sc.Auth.ClientSecret,
			Scopes:       sc.Auth.Scopes,
		},
	}
}

func listTools(executor *mcp.Executor) error {
	decls := executor.DeclaredTools()
	if len(decls) == 0 {
		fmt.Println("no tools discovered")
		return nil
	}
	for _, decl := range decls {
		server, _ := executor.ServerFor(decl.Name)
		fmt.Printf("%s\t(%s)\t%s\n", decl.Name, server, decl.Description)
	}
	return nil
}

func callTool(ctx context.Context, executor *mcp.Executor, cfg *config.Config, toolName, args string) error {
	call := tools.ToolCall{
		ID:        api.NewCallID(),
		Name:      toolName,
		Arguments: args,
	}

	filtered := tools.FilterAllowed([]tools.ToolCall{call}, cfg.Tools.Allowed)
	if len(filtered.Rejected) > 0 {
		return fmt.Errorf("%s", filtered.Rejected[0].Display)
	}

	result, err := executor.Execute(ctx, call)
	if err != nil {
		return fmt.Errorf("calling %q: %w", toolName, err)
	}

	if result.Fallback {
		fmt.Println(string(result.Raw))
	} else {
		fmt.Println(result.Display)
	}
	if result.IsError {
		os.Exit(1)
	}
	return nil
}

func serveMetrics(cfg config.MetricsConfig) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.Handler())
	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("metrics endpoint starting", "addr", addr, "path", cfg.Path)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("metrics endpoint failed", "error", err)
	}
}

// terminalConfirmer prompts on stderr and reads the decision from stdin.
type terminalConfirmer struct {
	in *bufio.Reader
}

func (c *terminalConfirmer) Confirm(_ context.Context, req *mcp.ConfirmationRequest) (mcp.ConfirmationOutcome, error) {
	fmt.Fprintf(os.Stderr, "%s\n", req.Title)
	fmt.Fprintf(os.Stderr, "About to run %s. Allow?\n", req.DisplayName)
	fmt.Fprintf(os.Stderr, "  [y] once  [t] always for this tool  [s] always for server %s  [n] cancel: ", req.ServerName)

	line, err := c.in.ReadString('\n')
	if err != nil {
		return mcp.OutcomeCancel, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return mcp.OutcomeProceedOnce, nil
	case "t":
		return mcp.OutcomeProceedAlwaysTool, nil
	case "s":
		return mcp.OutcomeProceedAlwaysServer, nil
	default:
		return mcp.OutcomeCancel, nil
	}
}

// approveAll is the -yes confirmer.
type approveAll struct{}

func (approveAll) Confirm(_ context.Context, _ *mcp.ConfirmationRequest) (mcp.ConfirmationOutcome, error) {
	return mcp.OutcomeProceedOnce, nil
}
