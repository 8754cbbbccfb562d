package mcp

import "time"

// Config holds the configuration for all MCP server connections.
type Config struct {
	// Servers is the list of MCP server configurations to connect to.
	Servers []ServerConfig
}

// ServerConfig describes a single MCP server connection.
type ServerConfig struct {
	// Name is the logical name for this server. It identifies the server
	// in allow-list keys, log lines, and response headers.
	Name string `json:"name"`

	// Transport is the transport type to use: "sse" or "streamable-http".
	// If empty, defaults to "streamable-http".
	Transport string `json:"transport"`

	// URL is the MCP server endpoint URL.
	URL string `json:"url"`

	// Headers contains additional HTTP headers to send with requests,
	// typically used for authentication (API keys, bearer tokens, etc.).
	Headers map[string]string `json:"headers,omitempty"`

	// Trust marks every tool on this server as trusted: the confirmation
	// gate is bypassed and the allow-list is never consulted or updated.
	Trust bool `json:"trust,omitempty"`

	// Timeout bounds each outbound tool call. Zero means no per-call
	// timeout beyond the caller's context.
	Timeout time.Duration `json:"timeout,omitempty"`

	// Auth configures dynamic authentication for the connection.
	Auth AuthConfig `json:"auth,omitempty"`
}

// AuthConfig describes dynamic authentication for an MCP server.
type AuthConfig struct {
	// Type selects the auth provider: "" (none) or
	// "oauth_client_credentials".
	Type string `json:"type,omitempty"`

	// TokenURL, ClientID, ClientSecret, and Scopes configure the OAuth 2.0
	// client_credentials grant.
	TokenURL     string   `json:"token_url,omitempty"`
	ClientID     string   `json:"client_id,omitempty"`
	ClientSecret string   `json:"client_secret,omitempty"`
	Scopes       []string `json:"scopes,omitempty"`
}
