// Package mcp parses MCP command flags and runs the stdio server.
package mcp

import (
	"context"
	"flag"

	mcpservice "github.com/louisbranch/basilisk/internal/mcp/service"
	"github.com/louisbranch/basilisk/internal/platform/config"
)

// Config holds MCP command configuration.
type Config struct {
	StorePath  string `env:"BASILISK_STORE_PATH"    envDefault:"basilisk.db"`
	TuningPath string `env:"BASILISK_TUNING_PATH"`
	Transport  string `env:"BASILISK_MCP_TRANSPORT" envDefault:"stdio"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.StorePath, "store", cfg.StorePath, "path to the session database")
	fs.StringVar(&cfg.TuningPath, "tuning", cfg.TuningPath, "path to a tuning overrides file")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "transport type: stdio")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return mcpservice.Run(ctx, mcpservice.Config{
		StorePath:  cfg.StorePath,
		TuningPath: cfg.TuningPath,
		Transport:  mcpservice.TransportKind(cfg.Transport),
	})
}
