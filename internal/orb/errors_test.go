package orb

import (
	"errors"
	"fmt"
	"testing"
)

func TestFetchErrorMessage(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		err := &FetchError{Dataset: DatasetScores1m, Kind: ErrorStatus, Status: 502, Message: "bad gateway"}
		want := "fetch scores_1m: unexpected status 502: bad gateway"
		if err.Error() != want {
			t.Fatalf("expected %q, got %q", want, err.Error())
		}
	})

	t.Run("wrapped cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := &FetchError{Dataset: DatasetSpeedResults, Kind: ErrorTransport, Err: cause}
		want := "fetch speed_results: transport: connection refused"
		if err.Error() != want {
			t.Fatalf("expected %q, got %q", want, err.Error())
		}
	})

	t.Run("nil receiver", func(t *testing.T) {
		var err *FetchError
		if err.Error() != "<nil>" {
			t.Fatalf("expected <nil>, got %q", err.Error())
		}
	})
}

func TestFetchErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("wrap: %w", &FetchError{Dataset: DatasetScores1m, Kind: ErrorTransport, Err: cause})
	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to reach the cause")
	}
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatal("expected errors.As to find the fetch error")
	}
	if fetchErr.Kind != ErrorTransport {
		t.Fatalf("expected transport kind, got %q", fetchErr.Kind)
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(&FetchError{Kind: ErrorTimeout}); got != ErrorTimeout {
		t.Fatalf("expected timeout kind, got %q", got)
	}
	if got := KindOf(errors.New("plain")); got != "" {
		t.Fatalf("expected empty kind, got %q", got)
	}
	if got := KindOf(nil); got != "" {
		t.Fatalf("expected empty kind for nil, got %q", got)
	}
}

func TestIsTimeout(t *testing.T) {
	if !IsTimeout(&FetchError{Kind: ErrorTimeout}) {
		t.Fatal("expected timeout")
	}
	if IsTimeout(&FetchError{Kind: ErrorTransport}) {
		t.Fatal("expected transport error not to be a timeout")
	}
	if IsTimeout(errors.New("plain")) {
		t.Fatal("expected plain error not to be a timeout")
	}
}
