// Package mcp adapts results from external MCP (Model Context Protocol)
// tool servers for an agent runtime. It wraps the official MCP Go SDK
// (github.com/modelcontextprotocol/go-sdk) for connections, discovery, and
// tool calls, and adds the three pieces the runtime needs on top of the
// wire protocol:
//
//   - a confirmation gate with a process-wide, injectable allow-list that
//     decides whether a tool call may proceed without prompting the user
//   - a transformer that turns the server's loosely-typed content blocks
//     (text, media, embedded resources, resource links, legacy JSON-in-text
//     wrappers) into the canonical api.Part sequence for the model
//   - a summarizer that renders the same blocks into a compact
//     human-readable string for the UI
//
// Malformed content never raises: every unrecognized or incomplete block
// degrades to a deterministic placeholder, and a response in which no block
// yields content falls back to the raw response object unchanged. The only
// failure propagated to callers is a transport-level error of the outbound
// call itself.
//
// Configuration is provided via ServerConfig structs, which specify the
// server name, transport type (SSE or streamable-http), URL, trust flag,
// call timeout, and optional authentication.
package mcp
