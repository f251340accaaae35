// Package app runs the recorder's polling and archiving loop. The recorder
// polls a sensor through the same incremental engine the MCP tools use and
// persists every delivered record, giving a sensor with bounded on-device
// retention a durable local history.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/louisbranch/orbnet/internal/orb"
	"github.com/louisbranch/orbnet/internal/poll"
	"github.com/louisbranch/orbnet/internal/services/recorder/storage"
	recordersqlite "github.com/louisbranch/orbnet/internal/services/recorder/storage/sqlite"
)

// defaultRecorderDB locates the archive when no path is configured.
const defaultRecorderDB = "data/orbnet.db"

// RuntimeConfig controls recorder startup and loop behavior.
type RuntimeConfig struct {
	// Host and Port locate the Orb sensor.
	Host string
	Port int
	// DBPath locates the SQLite archive. Defaults to data/orbnet.db.
	DBPath string
	// Datasets selects what to archive. Defaults to every dataset.
	Datasets []orb.Dataset
	// Interval paces polling rounds. Defaults to the poller's interval.
	Interval time.Duration
	// MaxRounds stops after that many rounds. Zero runs until the context
	// ends.
	MaxRounds int
	// CallerID is the polling identity. When empty a fresh identity is
	// generated per run: the first round replays full history and the
	// store's idempotent inserts drop what is already archived.
	CallerID string
	// Timeout caps each dataset request.
	Timeout time.Duration
}

// Run starts the recorder and blocks until the context ends, the round
// limit is reached, or the archive fails.
func Run(ctx context.Context, cfg RuntimeConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = defaultRecorderDB
	}
	if len(cfg.Datasets) == 0 {
		cfg.Datasets = orb.AllDatasets()
	}
	callerID := cfg.CallerID
	if callerID == "" {
		callerID = uuid.NewString()
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create recorder storage dir: %w", err)
		}
	}

	store, err := recordersqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open recorder sqlite store: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			log.Printf("close recorder sqlite store: %v", closeErr)
		}
	}()

	logArchivePosition(ctx, store, cfg.Datasets)

	client := orb.NewClient(orb.Config{
		Host:    cfg.Host,
		Port:    cfg.Port,
		Timeout: cfg.Timeout,
	})
	poller := &poll.Poller{
		Orchestrator: poll.NewOrchestrator(poll.NewCoordinator(client, poll.NewCursorStore())),
		Interval:     cfg.Interval,
		MaxRounds:    cfg.MaxRounds,
	}
	archiver := NewArchiver(store, cfg.Datasets)

	log.Printf("recorder polling %d datasets from %s", len(cfg.Datasets), client.BaseURL())
	err = poller.Run(ctx, callerID, cfg.Datasets, archiver.ArchiveRound)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// logArchivePosition reports where each dataset's archive currently ends.
func logArchivePosition(ctx context.Context, store storage.RecordStore, datasets []orb.Dataset) {
	for _, dataset := range datasets {
		latest, err := store.LatestTimestamp(ctx, dataset)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			log.Printf("recorder: read %s archive position: %v", dataset, err)
			continue
		}
		count, err := store.CountRecords(ctx, dataset)
		if err != nil {
			log.Printf("recorder: count %s archive: %v", dataset, err)
			continue
		}
		log.Printf("recorder: %s archive has %d rows through %s", dataset, count,
			time.UnixMilli(latest).UTC().Format(time.RFC3339))
	}
}

// Archiver persists polling round outcomes to a record store.
type Archiver struct {
	store    storage.RecordStore
	datasets []orb.Dataset
}

// NewArchiver creates an archiver over the store for the given datasets.
func NewArchiver(store storage.RecordStore, datasets []orb.Dataset) *Archiver {
	return &Archiver{store: store, datasets: datasets}
}

// ArchiveRound persists one round's outcomes. Per-dataset fetch failures
// are logged and skipped so one unavailable dataset never stalls the
// archive; a storage failure stops the recorder.
func (a *Archiver) ArchiveRound(ctx context.Context, results map[orb.Dataset]poll.Result) error {
	for _, dataset := range a.datasets {
		result, ok := results[dataset]
		if !ok {
			continue
		}
		if result.Err != nil {
			log.Printf("recorder: fetch %s: %v", dataset, result.Err)
			continue
		}
		if len(result.Records) == 0 {
			continue
		}
		inserted, err := a.store.InsertRecords(ctx, dataset, result.Records)
		if err != nil {
			return fmt.Errorf("archive %s: %w", dataset, err)
		}
		log.Printf("recorder: archived %d new %s records (%d delivered)", inserted, dataset, len(result.Records))
	}
	return nil
}
