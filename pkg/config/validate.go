package config

import (
	"errors"
	"fmt"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	seen := make(map[string]bool, len(c.MCP.Servers))
	for i, srv := range c.MCP.Servers {
		if srv.Name == "" {
			errs = append(errs, fmt.Errorf("mcp.servers[%d].name is required", i))
		} else if seen[srv.Name] {
			errs = append(errs, fmt.Errorf("mcp.servers[%d].name %q is duplicated", i, srv.Name))
		}
		seen[srv.Name] = true

		if srv.URL == "" {
			errs = append(errs, fmt.Errorf("mcp.servers[%d].url is required", i))
		}

		switch srv.Transport {
		case "", "sse", "streamable-http":
			// valid
		default:
			errs = append(errs, fmt.Errorf("mcp.servers[%d].transport must be \"sse\" or \"streamable-http\", got %q", i, srv.Transport))
		}

		if srv.Timeout < 0 {
			errs = append(errs, fmt.Errorf("mcp.servers[%d].timeout must be >= 0, got %s", i, srv.Timeout))
		}

		switch srv.Auth.Type {
		case "":
			// valid
		case "oauth_client_credentials":
			if srv.Auth.TokenURL == "" {
				errs = append(errs, fmt.Errorf("mcp.servers[%d].auth.token_url is required for oauth_client_credentials", i))
			}
			if srv.Auth.ClientID == "" && srv.Auth.ClientIDFile == "" {
				errs = append(errs, fmt.Errorf("mcp.servers[%d].auth.client_id or client_id_file is required for oauth_client_credentials", i))
			}
		default:
			errs = append(errs, fmt.Errorf("mcp.servers[%d].auth.type must be \"\" or \"oauth_client_credentials\", got %q", i, srv.Auth.Type))
		}
	}

	if c.Observability.Metrics.Enabled && c.Observability.Metrics.Port <= 0 {
		errs = append(errs, fmt.Errorf("observability.metrics.port must be > 0 when metrics are enabled, got %d", c.Observability.Metrics.Port))
	}

	return errors.Join(errs...)
}
