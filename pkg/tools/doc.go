// Package tools defines the tool executor contract used by the agent
// runtime and the ToolCall/ToolResult types that flow through it. Results
// carry both the canonical output parts for the model and a human-readable
// display summary for the UI, plus the raw server response for the
// compatibility fallback path.
//
// The package also provides allowed-tools filtering for screening a batch
// of tool calls against a configured allow list. This is a static policy
// check, separate from the interactive confirmation gate in pkg/tools/mcp.
//
// This package depends only on pkg/api and has no external dependencies.
package tools
