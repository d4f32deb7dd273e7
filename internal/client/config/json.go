package config

import (
	"encoding/json"
	"os"

	"github.com/obelousov/pixelboard/internal/flagx"
	"github.com/obelousov/pixelboard/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. PollInterval
// accepts either a string like "30s" or integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	APIKey             string         `json:"api_key"`
	DatabasePath       string         `json:"database_path"`
	PollInterval       timex.Duration `json:"poll_interval"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// the -c/-config flag. Missing file path means no overlay.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.APIKey != "" {
		cfg.APIKey = jc.APIKey
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.PollInterval.Duration != 0 {
		cfg.PollInterval = jc.PollInterval.Duration
	}
}
