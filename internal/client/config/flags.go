package config

import (
	"flag"
	"os"

	"github.com/obelousov/pixelboard/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the data service
//	-k string   API key
//	-f string   local sqlite database path
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-k", "-f"})

	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "base URL of the data service")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "API key")
	fs.StringVar(&cfg.DatabasePath, "f", cfg.DatabasePath, "local sqlite database path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
