package poll

import (
	"context"
	"sync"
	"testing"

	"github.com/louisbranch/orbnet/internal/orb"
)

func TestCoordinator_FirstFetchRequestsFullHistory(t *testing.T) {
	t.Parallel()

	fetcher := newFakeFetcher()
	fetcher.setRecords(orb.DatasetScores1m, recordsAt(100, 200, 300))
	coordinator := NewCoordinator(fetcher, NewCursorStore())

	records, err := coordinator.Fetch(context.Background(), "sess-1", orb.DatasetScores1m)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	call := fetcher.lastCall()
	if call.callerID != "sess-1" || call.dataset != orb.DatasetScores1m {
		t.Fatalf("unexpected call %+v", call)
	}
	if call.since != nil {
		t.Fatalf("expected a full-history request, got since=%d", *call.since)
	}
}

func TestCoordinator_SecondFetchPassesCursor(t *testing.T) {
	t.Parallel()

	fetcher := newFakeFetcher()
	fetcher.setRecords(orb.DatasetScores1m, recordsAt(100, 200, 300))
	cursors := NewCursorStore()
	coordinator := NewCoordinator(fetcher, cursors)

	if _, err := coordinator.Fetch(context.Background(), "sess-1", orb.DatasetScores1m); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if cursor, ok := cursors.Get("sess-1", orb.DatasetScores1m); !ok || cursor != 300 {
		t.Fatalf("expected cursor 300 after first fetch, got %d (ok=%v)", cursor, ok)
	}

	fetcher.setRecords(orb.DatasetScores1m, recordsAt(400))
	if _, err := coordinator.Fetch(context.Background(), "sess-1", orb.DatasetScores1m); err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	call := fetcher.lastCall()
	if call.since == nil || *call.since != 300 {
		t.Fatalf("expected since=300, got %+v", call.since)
	}
	if cursor, _ := cursors.Get("sess-1", orb.DatasetScores1m); cursor != 400 {
		t.Fatalf("expected cursor 400 after second fetch, got %d", cursor)
	}
}

func TestCoordinator_ErrorsPropagateUnchanged(t *testing.T) {
	t.Parallel()

	sentinel := &orb.FetchError{Dataset: orb.DatasetScores1m, Kind: orb.ErrorTimeout}
	fetcher := newFakeFetcher()
	fetcher.setError(orb.DatasetScores1m, sentinel)
	cursors := NewCursorStore()
	coordinator := NewCoordinator(fetcher, cursors)

	records, err := coordinator.Fetch(context.Background(), "sess-1", orb.DatasetScores1m)
	if err != sentinel {
		t.Fatalf("expected the fetcher's error unchanged, got %v", err)
	}
	if records != nil {
		t.Fatalf("expected no records on failure, got %d", len(records))
	}
	if _, ok := cursors.Get("sess-1", orb.DatasetScores1m); ok {
		t.Fatal("expected no cursor after a failed fetch")
	}
}

func TestCoordinator_EmptySuccessKeepsCursor(t *testing.T) {
	t.Parallel()

	t.Run("no prior cursor", func(t *testing.T) {
		fetcher := newFakeFetcher()
		cursors := NewCursorStore()
		coordinator := NewCoordinator(fetcher, cursors)

		records, err := coordinator.Fetch(context.Background(), "sess-1", orb.DatasetScores1m)
		if err != nil {
			t.Fatalf("fetch: %v", err)
		}
		if len(records) != 0 {
			t.Fatalf("expected no records, got %d", len(records))
		}
		if _, ok := cursors.Get("sess-1", orb.DatasetScores1m); ok {
			t.Fatal("expected empty success to create no cursor")
		}
	})

	t.Run("existing cursor", func(t *testing.T) {
		fetcher := newFakeFetcher()
		cursors := NewCursorStore()
		cursors.Advance("sess-1", orb.DatasetScores1m, 300)
		coordinator := NewCoordinator(fetcher, cursors)

		if _, err := coordinator.Fetch(context.Background(), "sess-1", orb.DatasetScores1m); err != nil {
			t.Fatalf("fetch: %v", err)
		}
		if cursor, ok := cursors.Get("sess-1", orb.DatasetScores1m); !ok || cursor != 300 {
			t.Fatalf("expected cursor to stay at 300, got %d (ok=%v)", cursor, ok)
		}
	})
}

func TestCoordinator_StaleRecordsDeliverWithoutRegression(t *testing.T) {
	t.Parallel()

	fetcher := newFakeFetcher()
	cursors := NewCursorStore()
	cursors.Advance("sess-1", orb.DatasetScores1m, 300)
	coordinator := NewCoordinator(fetcher, cursors)

	fetcher.setRecords(orb.DatasetScores1m, recordsAt(250, 100))
	records, err := coordinator.Fetch(context.Background(), "sess-1", orb.DatasetScores1m)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected stale records to be delivered, got %d", len(records))
	}
	if cursor, _ := cursors.Get("sess-1", orb.DatasetScores1m); cursor != 300 {
		t.Fatalf("expected cursor to hold at 300, got %d", cursor)
	}
}

func TestCoordinator_OutOfOrderBatchAdvancesToMax(t *testing.T) {
	t.Parallel()

	fetcher := newFakeFetcher()
	fetcher.setRecords(orb.DatasetScores1m, recordsAt(300, 100, 200))
	cursors := NewCursorStore()
	coordinator := NewCoordinator(fetcher, cursors)

	if _, err := coordinator.Fetch(context.Background(), "sess-1", orb.DatasetScores1m); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if cursor, _ := cursors.Get("sess-1", orb.DatasetScores1m); cursor != 300 {
		t.Fatalf("expected cursor 300 from an out-of-order batch, got %d", cursor)
	}
}

func TestMaxTimestamp(t *testing.T) {
	t.Parallel()

	if _, ok := maxTimestamp(nil); ok {
		t.Fatal("expected no max for an empty batch")
	}
	if _, ok := maxTimestamp([]orb.Record{{"orb_id": "orb-1"}}); ok {
		t.Fatal("expected no max when no record carries a timestamp")
	}
	max, ok := maxTimestamp(recordsAt(200, 500, 100))
	if !ok || max != 500 {
		t.Fatalf("expected max 500, got %d (ok=%v)", max, ok)
	}
}

// fetchCall records the arguments of one fake fetch.
type fetchCall struct {
	callerID string
	dataset  orb.Dataset
	since    *int64
}

type fakeFetcher struct {
	mu      sync.Mutex
	calls   []fetchCall
	records map[orb.Dataset][]orb.Record
	errs    map[orb.Dataset]error
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		records: make(map[orb.Dataset][]orb.Record),
		errs:    make(map[orb.Dataset]error),
	}
}

func (f *fakeFetcher) setRecords(dataset orb.Dataset, records []orb.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[dataset] = records
}

func (f *fakeFetcher) setError(dataset orb.Dataset, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[dataset] = err
}

func (f *fakeFetcher) FetchDataset(_ context.Context, callerID string, dataset orb.Dataset) ([]orb.Record, error) {
	return f.respond(callerID, dataset, nil)
}

func (f *fakeFetcher) FetchDatasetSince(_ context.Context, callerID string, dataset orb.Dataset, since int64) ([]orb.Record, error) {
	bound := since
	return f.respond(callerID, dataset, &bound)
}

func (f *fakeFetcher) respond(callerID string, dataset orb.Dataset, since *int64) ([]orb.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fetchCall{callerID: callerID, dataset: dataset, since: since})
	if err := f.errs[dataset]; err != nil {
		return nil, err
	}
	return f.records[dataset], nil
}

func (f *fakeFetcher) lastCall() fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return fetchCall{}
	}
	return f.calls[len(f.calls)-1]
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// recordsAt builds one record per timestamp.
func recordsAt(timestamps ...int64) []orb.Record {
	records := make([]orb.Record, 0, len(timestamps))
	for _, ts := range timestamps {
		records = append(records, orb.Record{"timestamp": ts})
	}
	return records
}
