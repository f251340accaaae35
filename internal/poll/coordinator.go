package poll

import (
	"context"

	"github.com/louisbranch/orbnet/internal/orb"
)

// DatasetFetcher retrieves dataset records from a sensor. FetchDataset
// returns all available history; FetchDatasetSince returns only records
// with timestamps strictly greater than since (epoch milliseconds), with
// the sensor applying the filter.
type DatasetFetcher interface {
	FetchDataset(ctx context.Context, callerID string, dataset orb.Dataset) ([]orb.Record, error)
	FetchDatasetSince(ctx context.Context, callerID string, dataset orb.Dataset, since int64) ([]orb.Record, error)
}

var _ DatasetFetcher = (*orb.Client)(nil)

// Coordinator performs incremental fetches for single datasets. It reads
// the caller's cursor to decide between a full-history and an incremental
// request, and advances the cursor after a successful delivery so the next
// fetch picks up where this one ended.
type Coordinator struct {
	fetcher DatasetFetcher
	cursors *CursorStore
}

// NewCoordinator builds a coordinator over the given fetcher and cursor
// store.
func NewCoordinator(fetcher DatasetFetcher, cursors *CursorStore) *Coordinator {
	return &Coordinator{
		fetcher: fetcher,
		cursors: cursors,
	}
}

// Fetch returns the records the caller has not yet seen for the dataset.
// A caller with no cursor entry receives full history; otherwise only
// records after the stored mark are requested. Fetch errors are returned
// as-is with no retry, and the cursor is left untouched on failure. The
// returned records are not filtered further: the remote lower bound is
// trusted, so a misbehaving sensor that returns stale records delivers
// them (the cursor still never regresses).
func (c *Coordinator) Fetch(ctx context.Context, callerID string, dataset orb.Dataset) ([]orb.Record, error) {
	cursor, ok := c.cursors.Get(callerID, dataset)

	var records []orb.Record
	var err error
	if ok {
		records, err = c.fetcher.FetchDatasetSince(ctx, callerID, dataset, cursor)
	} else {
		records, err = c.fetcher.FetchDataset(ctx, callerID, dataset)
	}
	if err != nil {
		return nil, err
	}

	if max, ok := maxTimestamp(records); ok {
		c.cursors.Advance(callerID, dataset, max)
	}
	return records, nil
}

// maxTimestamp returns the largest record timestamp, and false when the
// batch is empty or no record carries one.
func maxTimestamp(records []orb.Record) (int64, bool) {
	var max int64
	found := false
	for _, record := range records {
		ts, ok := record.Timestamp()
		if !ok {
			continue
		}
		if !found || ts > max {
			max = ts
			found = true
		}
	}
	return max, found
}
