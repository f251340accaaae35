package poll

import (
	"sync"
	"testing"

	"github.com/louisbranch/orbnet/internal/orb"
)

func TestCursorStore_GetAbsent(t *testing.T) {
	t.Parallel()

	store := NewCursorStore()
	if _, ok := store.Get("sess-1", orb.DatasetScores1m); ok {
		t.Fatal("expected no cursor for a fresh store")
	}
}

func TestCursorStore_AdvanceNeverRegresses(t *testing.T) {
	t.Parallel()

	store := NewCursorStore()
	store.Advance("sess-1", orb.DatasetScores1m, 100)
	if cursor, ok := store.Get("sess-1", orb.DatasetScores1m); !ok || cursor != 100 {
		t.Fatalf("expected cursor 100, got %d (ok=%v)", cursor, ok)
	}

	store.Advance("sess-1", orb.DatasetScores1m, 50)
	if cursor, _ := store.Get("sess-1", orb.DatasetScores1m); cursor != 100 {
		t.Fatalf("expected lower advance to be ignored, got %d", cursor)
	}

	store.Advance("sess-1", orb.DatasetScores1m, 200)
	if cursor, _ := store.Get("sess-1", orb.DatasetScores1m); cursor != 200 {
		t.Fatalf("expected cursor 200, got %d", cursor)
	}
}

func TestCursorStore_MaxWinsUnderConcurrentAdvance(t *testing.T) {
	t.Parallel()

	store := NewCursorStore()
	var wg sync.WaitGroup
	for i := 1; i <= 100; i++ {
		wg.Add(1)
		go func(ts int64) {
			defer wg.Done()
			store.Advance("sess-1", orb.DatasetScores1m, ts)
			store.Get("sess-1", orb.DatasetScores1m)
		}(int64(i))
	}
	wg.Wait()

	if cursor, ok := store.Get("sess-1", orb.DatasetScores1m); !ok || cursor != 100 {
		t.Fatalf("expected concurrent advances to settle on 100, got %d (ok=%v)", cursor, ok)
	}
}

func TestCursorStore_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	store := NewCursorStore()
	store.Advance("sess-1", orb.DatasetScores1m, 300)
	store.Advance("sess-1", orb.DatasetSpeedResults, 150)
	store.Advance("sess-2", orb.DatasetScores1m, 50)

	if cursor, _ := store.Get("sess-1", orb.DatasetScores1m); cursor != 300 {
		t.Fatalf("expected sess-1 scores cursor 300, got %d", cursor)
	}
	if cursor, _ := store.Get("sess-1", orb.DatasetSpeedResults); cursor != 150 {
		t.Fatalf("expected sess-1 speed cursor 150, got %d", cursor)
	}
	if cursor, _ := store.Get("sess-2", orb.DatasetScores1m); cursor != 50 {
		t.Fatalf("expected sess-2 scores cursor 50, got %d", cursor)
	}
}

func TestCursorStore_Reset(t *testing.T) {
	t.Parallel()

	store := NewCursorStore()
	store.Advance("sess-1", orb.DatasetScores1m, 300)
	store.Advance("sess-1", orb.DatasetSpeedResults, 150)

	store.Reset("sess-1", orb.DatasetScores1m)

	if _, ok := store.Get("sess-1", orb.DatasetScores1m); ok {
		t.Fatal("expected scores cursor to be cleared")
	}
	if cursor, ok := store.Get("sess-1", orb.DatasetSpeedResults); !ok || cursor != 150 {
		t.Fatalf("expected speed cursor to survive, got %d (ok=%v)", cursor, ok)
	}
}

func TestCursorStore_ResetAll(t *testing.T) {
	t.Parallel()

	store := NewCursorStore()
	store.Advance("sess-1", orb.DatasetScores1m, 300)
	store.Advance("sess-1", orb.DatasetWifiLink1m, 200)
	store.Advance("sess-2", orb.DatasetScores1m, 400)

	store.ResetAll("sess-1")

	if _, ok := store.Get("sess-1", orb.DatasetScores1m); ok {
		t.Fatal("expected sess-1 scores cursor to be cleared")
	}
	if _, ok := store.Get("sess-1", orb.DatasetWifiLink1m); ok {
		t.Fatal("expected sess-1 wifi cursor to be cleared")
	}
	if cursor, ok := store.Get("sess-2", orb.DatasetScores1m); !ok || cursor != 400 {
		t.Fatalf("expected sess-2 cursor to survive, got %d (ok=%v)", cursor, ok)
	}
	if store.Len() != 1 {
		t.Fatalf("expected one remaining entry, got %d", store.Len())
	}
}

func TestCursorStore_NilReceiver(t *testing.T) {
	t.Parallel()

	var store *CursorStore
	if _, ok := store.Get("sess-1", orb.DatasetScores1m); ok {
		t.Fatal("expected no cursor from a nil store")
	}
	store.Advance("sess-1", orb.DatasetScores1m, 100)
	store.Reset("sess-1", orb.DatasetScores1m)
	store.ResetAll("sess-1")
	if store.Len() != 0 {
		t.Fatalf("expected zero length, got %d", store.Len())
	}
}
