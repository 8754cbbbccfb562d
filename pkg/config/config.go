// Package config provides unified configuration for the tool adapter host.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (GEMINI_ prefix)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
package config

import "time"

// Config holds all configuration for the tool adapter host.
type Config struct {
	Logging       LoggingConfig       `yaml:"logging"`
	MCP           MCPConfig           `yaml:"mcp"`
	Tools         ToolsConfig         `yaml:"tools"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// LoggingConfig holds log level and debug category settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // default: "INFO"
	Debug string `yaml:"debug"` // comma-separated debug categories
}

// ToolsConfig holds adapter-level tool policy.
type ToolsConfig struct {
	// Allowed restricts which tools may be called. Empty means all tools
	// are allowed.
	Allowed []string `yaml:"allowed"`
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: false
	Path    string `yaml:"path"`    // default: "/metrics"
	Port    int    `yaml:"port"`    // default: 9090
}

// MCPConfig holds MCP (Model Context Protocol) server settings.
type MCPConfig struct {
	Servers []MCPServerConfig `yaml:"servers"`
}

// MCPServerConfig describes a single MCP server connection.
type MCPServerConfig struct {
	Name      string            `yaml:"name"`
	Transport string            `yaml:"transport"` // "sse" or "streamable-http"
	URL       string            `yaml:"url"`
	Headers   map[string]string `yaml:"headers"`

	// Trust bypasses the execution confirmation prompt for every tool on
	// this server.
	Trust bool `yaml:"trust"`

	// Timeout bounds each outbound tool call; zero means no per-call
	// timeout.
	Timeout time.Duration `yaml:"timeout"`

	Auth MCPAuthConfig `yaml:"auth"`
}

// MCPAuthConfig describes authentication for an MCP server connection.
type MCPAuthConfig struct {
	Type             string   `yaml:"type"` // "" or "oauth_client_credentials"
	TokenURL         string   `yaml:"token_url"`
	ClientID         string   `yaml:"client_id"`
	ClientIDFile     string   `yaml:"client_id_file"`     // _file variant for client_id
	ClientSecret     string   `yaml:"client_secret"`
	ClientSecretFile string   `yaml:"client_secret_file"` // _file variant for client_secret
	Scopes           []string `yaml:"scopes"`
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Logging: LoggingConfig{
			Level: "INFO",
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: false,
				Path:    "/metrics",
				Port:    9090,
			},
		},
	}
}
