// Package config holds runtime settings for the dashboard CLI.
package config

import "time"

// Config fields:
//   - ServerEndpointAddr: base URL of the data service.
//   - APIKey: the key exchanged for an access/refresh token pair.
//   - DatabasePath: sqlite file holding the local session snapshot.
//   - PollInterval: how often the dashboard re-reads counters and probes
//     server reachability.
type Config struct {
	ServerEndpointAddr string
	APIKey             string
	DatabasePath       string
	PollInterval       time.Duration
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
	c.APIKey = "dev-api-key"
	c.DatabasePath = "dashboard.db"
	c.PollInterval = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
