// Package recorder parses recorder command flags and launches the archive loop.
package recorder

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/orbnet/internal/orb"
	entrypoint "github.com/louisbranch/orbnet/internal/platform/cmd"
	"github.com/louisbranch/orbnet/internal/services/recorder/app"
)

// Config holds recorder command configuration.
type Config struct {
	Host     string        `env:"ORB_HOST"                 envDefault:"localhost"`
	Port     int           `env:"ORB_PORT"                 envDefault:"7080"`
	CallerID string        `env:"ORBNET_CALLER_ID"`
	DBPath   string        `env:"ORBNET_RECORDER_DB_PATH"  envDefault:"data/orbnet.db"`
	Datasets string        `env:"ORBNET_RECORDER_DATASETS"`
	Interval time.Duration `env:"ORBNET_RECORDER_INTERVAL" envDefault:"60s"`
	Rounds   int           `env:"ORBNET_RECORDER_ROUNDS"`
	Timeout  time.Duration `env:"ORBNET_FETCH_TIMEOUT"     envDefault:"30s"`
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
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "The recorder SQLite database path")
	fs.StringVar(&cfg.Datasets, "datasets", cfg.Datasets, "Comma-separated dataset names (default: all)")
	fs.DurationVar(&cfg.Interval, "interval", cfg.Interval, "Delay between polling rounds")
	fs.IntVar(&cfg.Rounds, "rounds", cfg.Rounds, "Stop after this many rounds (0 runs until interrupted)")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Per-dataset fetch timeout")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// datasetList resolves a comma-separated list of dataset names. An empty
// list selects every dataset.
func datasetList(names string) ([]orb.Dataset, error) {
	if strings.TrimSpace(names) == "" {
		return nil, nil
	}

	var datasets []orb.Dataset
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		dataset, err := orb.ParseDataset(name)
		if err != nil {
			return nil, fmt.Errorf("parse datasets: %w", err)
		}
		datasets = append(datasets, dataset)
	}
	return datasets, nil
}

// Run starts the recorder.
func Run(ctx context.Context, cfg Config) error {
	datasets, err := datasetList(cfg.Datasets)
	if err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceRecorder, func(context.Context) error {
		return app.Run(ctx, app.RuntimeConfig{
			Host:      cfg.Host,
			Port:      cfg.Port,
			DBPath:    cfg.DBPath,
			Datasets:  datasets,
			Interval:  cfg.Interval,
			MaxRounds: cfg.Rounds,
			CallerID:  cfg.CallerID,
			Timeout:   cfg.Timeout,
		})
	})
}
