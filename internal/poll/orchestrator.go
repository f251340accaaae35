package poll

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/orbnet/internal/orb"
)

var tracer = otel.Tracer("github.com/louisbranch/orbnet/internal/poll")

// Result is the outcome of one dataset's fetch inside an aggregate call:
// either the delivered records or the error that dataset hit. Records may
// be empty on success when the sensor had nothing new.
type Result struct {
	Dataset orb.Dataset
	Records []orb.Record
	Err     error
}

// AggregateSpec selects the datasets included in an aggregate fetch. The
// base set always contains the one-minute scores, responsiveness, and
// wifi link datasets plus web responsiveness and speed results; the flags
// widen the responsiveness and wifi link families to every granularity.
type AggregateSpec struct {
	AllResponsiveness bool
	AllWifiLink       bool
}

// Datasets returns the selected dataset kinds.
func (s AggregateSpec) Datasets() []orb.Dataset {
	datasets := []orb.Dataset{
		orb.DatasetScores1m,
		orb.DatasetResponsiveness1m,
		orb.DatasetWebResponsiveness,
		orb.DatasetSpeedResults,
		orb.DatasetWifiLink1m,
	}
	if s.AllResponsiveness {
		datasets = append(datasets, orb.DatasetResponsiveness15s, orb.DatasetResponsiveness1s)
	}
	if s.AllWifiLink {
		datasets = append(datasets, orb.DatasetWifiLink15s, orb.DatasetWifiLink1s)
	}
	return datasets
}

// Orchestrator fans incremental fetches out across dataset kinds. Each
// dataset is fetched on its own goroutine so a slow or failing dataset
// never blocks or taints its siblings.
type Orchestrator struct {
	coordinator *Coordinator
}

// NewOrchestrator builds an orchestrator over the coordinator.
func NewOrchestrator(coordinator *Coordinator) *Orchestrator {
	return &Orchestrator{coordinator: coordinator}
}

// FetchAll fetches every requested dataset concurrently and waits for all
// of them. The returned map holds exactly one entry per distinct requested
// dataset, each carrying either records or that dataset's error. FetchAll
// itself never fails: failures only appear inside individual entries.
func (o *Orchestrator) FetchAll(ctx context.Context, callerID string, datasets []orb.Dataset) map[orb.Dataset]Result {
	distinct := make([]orb.Dataset, 0, len(datasets))
	seen := make(map[orb.Dataset]bool, len(datasets))
	for _, dataset := range datasets {
		if seen[dataset] {
			continue
		}
		seen[dataset] = true
		distinct = append(distinct, dataset)
	}

	ctx, span := tracer.Start(ctx, "poll.fetch_all", trace.WithAttributes(
		attribute.Int("orb.datasets", len(distinct)),
	))
	defer span.End()

	outcomes := make([]Result, len(distinct))
	var wg sync.WaitGroup
	for i, dataset := range distinct {
		wg.Add(1)
		go func(i int, dataset orb.Dataset) {
			defer wg.Done()
			fetchCtx, fetchSpan := tracer.Start(ctx, "poll.fetch", trace.WithAttributes(
				attribute.String("orb.dataset", dataset.Key()),
			))
			records, err := o.coordinator.Fetch(fetchCtx, callerID, dataset)
			if err != nil {
				fetchSpan.RecordError(err)
				fetchSpan.SetStatus(codes.Error, err.Error())
			}
			fetchSpan.End()
			outcomes[i] = Result{Dataset: dataset, Records: records, Err: err}
		}(i, dataset)
	}
	wg.Wait()

	results := make(map[orb.Dataset]Result, len(outcomes))
	for _, outcome := range outcomes {
		results[outcome.Dataset] = outcome
	}
	return results
}
