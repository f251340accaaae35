package poll

import (
	"sync"

	"github.com/louisbranch/orbnet/internal/orb"
)

// cursorKey identifies one caller's position in one dataset.
type cursorKey struct {
	callerID string
	dataset  orb.Dataset
}

// CursorStore tracks the highest record timestamp delivered to each caller
// for each dataset. Entries are created on first advance and live until an
// explicit reset; there is no automatic expiry.
type CursorStore struct {
	mu      sync.RWMutex
	cursors map[cursorKey]int64
}

// NewCursorStore creates an empty cursor store.
func NewCursorStore() *CursorStore {
	return &CursorStore{
		cursors: make(map[cursorKey]int64),
	}
}

// Get returns the stored high-water mark for the caller and dataset, and
// whether one exists.
func (s *CursorStore) Get(callerID string, dataset orb.Dataset) (int64, bool) {
	if s == nil {
		return 0, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	cursor, ok := s.cursors[cursorKey{callerID: callerID, dataset: dataset}]
	return cursor, ok
}

// Advance raises the stored high-water mark to timestamp. The mark never
// decreases: an advance below the current value is ignored, so concurrent
// advances for the same key settle on the maximum regardless of order.
func (s *CursorStore) Advance(callerID string, dataset orb.Dataset, timestamp int64) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := cursorKey{callerID: callerID, dataset: dataset}
	if current, ok := s.cursors[key]; ok && current >= timestamp {
		return
	}
	s.cursors[key] = timestamp
}

// Reset clears the caller's mark for one dataset. The next fetch for that
// pair is treated as first-ever and requests full history.
func (s *CursorStore) Reset(callerID string, dataset orb.Dataset) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cursors, cursorKey{callerID: callerID, dataset: dataset})
}

// ResetAll clears every mark held for the caller across all datasets.
func (s *CursorStore) ResetAll(callerID string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.cursors {
		if key.callerID == callerID {
			delete(s.cursors, key)
		}
	}
}

// Len returns the number of tracked (caller, dataset) pairs.
func (s *CursorStore) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cursors)
}
