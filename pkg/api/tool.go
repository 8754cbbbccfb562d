package api

import "encoding/json"

// ToolDeclaration describes a tool discovered from an MCP server, in the
// shape a model runtime consumes when building its tool list.
type ToolDeclaration struct {
	// Name is the protocol-safe tool name.
	Name string `json:"name"`

	// Description is the human/model-readable description from the server.
	Description string `json:"description,omitempty"`

	// Parameters is the raw JSON schema for the tool's arguments.
	// The adapter passes it through without validating calls against it.
	Parameters json.RawMessage `json:"parameters,omitempty"`
}
