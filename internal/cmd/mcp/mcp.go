// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"
	"time"

	entrypoint "github.com/louisbranch/orbnet/internal/platform/cmd"
	mcpservice "github.com/louisbranch/orbnet/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	Host      string        `env:"ORB_HOST"             envDefault:"localhost"`
	Port      int           `env:"ORB_PORT"             envDefault:"7080"`
	CallerID  string        `env:"ORBNET_CALLER_ID"`
	Transport string        `env:"ORBNET_MCP_TRANSPORT" envDefault:"stdio"`
	HTTPAddr  string        `env:"ORBNET_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	Timeout   time.Duration `env:"ORBNET_FETCH_TIMEOUT" envDefault:"30s"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Host, "host", cfg.Host, "The Orb sensor hostname or IP")
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The Orb sensor Local API port")
	fs.StringVar(&cfg.CallerID, "caller-id", cfg.CallerID, "Polling identity (default: generated per process)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Per-dataset fetch timeout")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP server.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(context.Context) error {
		return mcpservice.Run(ctx, mcpservice.Config{
			Host:      cfg.Host,
			Port:      cfg.Port,
			CallerID:  cfg.CallerID,
			Timeout:   cfg.Timeout,
			Transport: mcpservice.TransportKind(cfg.Transport),
			HTTPAddr:  cfg.HTTPAddr,
		})
	})
}
