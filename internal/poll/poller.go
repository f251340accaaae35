package poll

import (
	"context"
	"time"

	"github.com/louisbranch/orbnet/internal/orb"
)

// defaultPollInterval paces polling rounds when the caller does not set
// an interval.
const defaultPollInterval = time.Minute

// RoundFunc receives one polling round's outcomes. Returning an error
// stops the poller and surfaces the error from Run.
type RoundFunc func(ctx context.Context, results map[orb.Dataset]Result) error

// Poller repeatedly runs an aggregate fetch on a fixed interval and hands
// each round's outcome map to a callback. Per-dataset fetch errors arrive
// inside the outcome map like any other round; only the callback or the
// context can stop the loop early.
type Poller struct {
	Orchestrator *Orchestrator

	// Interval paces rounds. Defaults to one minute.
	Interval time.Duration

	// MaxRounds stops the poller after that many rounds. Zero means poll
	// until the context ends.
	MaxRounds int
}

// Run polls until the context ends, the round limit is reached, or deliver
// returns an error. The first round runs immediately. Run returns nil when
// the round limit stopped it, the context error on cancellation, and the
// callback's error otherwise.
func (p *Poller) Run(ctx context.Context, callerID string, datasets []orb.Dataset, deliver RoundFunc) error {
	interval := p.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	rounds := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		results := p.Orchestrator.FetchAll(ctx, callerID, datasets)
		if err := deliver(ctx, results); err != nil {
			return err
		}

		rounds++
		if p.MaxRounds > 0 && rounds >= p.MaxRounds {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
