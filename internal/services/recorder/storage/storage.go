// Package storage defines persistence contracts for the recorder service.
package storage

import (
	"context"
	"errors"

	"github.com/louisbranch/orbnet/internal/orb"
)

// ErrNotFound indicates the requested dataset has no archived records.
var ErrNotFound = errors.New("record not found")

// RecordStore persists archived dataset records.
//
// Inserts are idempotent on (dataset, timestamp, orb_id): a restarted
// recorder replays full history without duplicating rows.
type RecordStore interface {
	// InsertRecords archives a batch and reports how many rows were new.
	InsertRecords(ctx context.Context, dataset orb.Dataset, records []orb.Record) (int, error)
	// LatestTimestamp returns the newest archived timestamp for a dataset,
	// or ErrNotFound when the dataset has no rows.
	LatestTimestamp(ctx context.Context, dataset orb.Dataset) (int64, error)
	// CountRecords returns the number of archived rows for a dataset.
	CountRecords(ctx context.Context, dataset orb.Dataset) (int, error)
	Close() error
}
