package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/orbnet/internal/orb"
	"github.com/louisbranch/orbnet/internal/poll"
)

// AllDatasetsInput represents the MCP tool input for the aggregate fetch.
type AllDatasetsInput struct {
	IncludeAllResponsiveness bool    `json:"include_all_responsiveness,omitempty" jsonschema:"also fetch the 15-second and 1-second responsiveness buckets (default: false)"`
	IncludeAllWifiLink       bool    `json:"include_all_wifi_link,omitempty" jsonschema:"also fetch the 15-second and 1-second wifi link buckets (default: false)"`
	Host                     string  `json:"host,omitempty" jsonschema:"Orb sensor hostname or IP (default: ORB_HOST env var or localhost)"`
	Port                     int     `json:"port,omitempty" jsonschema:"Local API port (default: ORB_PORT env var or 7080)"`
	CallerID                 string  `json:"caller_id,omitempty" jsonschema:"polling identity; omit to use the server session identity so repeat calls only return new records"`
	TimeoutSeconds           float64 `json:"timeout_seconds,omitempty" jsonschema:"per-dataset request timeout in seconds (default: 30)"`
}

func (in AllDatasetsInput) connectionParams() connectionParams {
	return connectionParams{
		Host:           in.Host,
		Port:           in.Port,
		CallerID:       in.CallerID,
		TimeoutSeconds: in.TimeoutSeconds,
	}
}

// DatasetOutcome is one dataset's entry in the aggregate result: either
// delivered records or that dataset's failure. An empty record list with
// ok=true means the sensor had nothing new, which is not a failure.
type DatasetOutcome struct {
	OK        bool         `json:"ok" jsonschema:"true when the fetch succeeded"`
	Count     int          `json:"count" jsonschema:"number of records delivered"`
	Records   []orb.Record `json:"records,omitempty" jsonschema:"records not previously delivered to this caller"`
	Error     string       `json:"error,omitempty" jsonschema:"failure detail when the fetch failed"`
	ErrorKind string       `json:"error_kind,omitempty" jsonschema:"failure kind: transport, timeout, status, or response"`
}

// AllDatasetsResult represents the MCP tool output for the aggregate fetch.
// The always-included keys are present on every call; the 15-second and
// 1-second entries appear only when their inclusion flag was set.
type AllDatasetsResult struct {
	Scores1m          *DatasetOutcome `json:"scores_1m" jsonschema:"1-minute scores outcome"`
	Responsiveness1m  *DatasetOutcome `json:"responsiveness_1m" jsonschema:"1-minute responsiveness outcome"`
	Responsiveness15s *DatasetOutcome `json:"responsiveness_15s,omitempty" jsonschema:"15-second responsiveness outcome (include_all_responsiveness)"`
	Responsiveness1s  *DatasetOutcome `json:"responsiveness_1s,omitempty" jsonschema:"1-second responsiveness outcome (include_all_responsiveness)"`
	WebResponsiveness *DatasetOutcome `json:"web_responsiveness" jsonschema:"web responsiveness outcome"`
	SpeedResults      *DatasetOutcome `json:"speed_results" jsonschema:"speed test outcome"`
	WifiLink1m        *DatasetOutcome `json:"wifi_link_1m" jsonschema:"1-minute wifi link outcome"`
	WifiLink15s       *DatasetOutcome `json:"wifi_link_15s,omitempty" jsonschema:"15-second wifi link outcome (include_all_wifi_link)"`
	WifiLink1s        *DatasetOutcome `json:"wifi_link_1s,omitempty" jsonschema:"1-second wifi link outcome (include_all_wifi_link)"`
}

// AllDatasetsTool defines the MCP tool schema for the aggregate fetch.
func AllDatasetsTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "get_all_datasets",
		Description: "Retrieve all Orb datasets concurrently: 1-minute scores, responsiveness, " +
			"web responsiveness, speed tests, and wifi link, with optional flags to widen the " +
			"responsiveness and wifi link families to every granularity. Datasets fail " +
			"independently: each key carries either its records or its own error, so one " +
			"unavailable dataset never hides the others. " +
			"The first call returns all available history; repeat calls with the same " +
			"caller_id return only records collected since the last call.",
	}
}

// AllDatasetsHandler fans the aggregate fetch out across the selected
// datasets and assembles the keyed outcome.
func AllDatasetsHandler(engine *Engine) mcp.ToolHandlerFor[AllDatasetsInput, AllDatasetsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AllDatasetsInput) (*mcp.CallToolResult, AllDatasetsResult, error) {
		coordinator, callerID := engine.resolve(input.connectionParams())
		orchestrator := poll.NewOrchestrator(coordinator)
		spec := poll.AggregateSpec{
			AllResponsiveness: input.IncludeAllResponsiveness,
			AllWifiLink:       input.IncludeAllWifiLink,
		}
		results := orchestrator.FetchAll(ctx, callerID, spec.Datasets())

		out := AllDatasetsResult{
			Scores1m:          outcomeFor(results, orb.DatasetScores1m),
			Responsiveness1m:  outcomeFor(results, orb.DatasetResponsiveness1m),
			WebResponsiveness: outcomeFor(results, orb.DatasetWebResponsiveness),
			SpeedResults:      outcomeFor(results, orb.DatasetSpeedResults),
			WifiLink1m:        outcomeFor(results, orb.DatasetWifiLink1m),
		}
		if input.IncludeAllResponsiveness {
			out.Responsiveness15s = outcomeFor(results, orb.DatasetResponsiveness15s)
			out.Responsiveness1s = outcomeFor(results, orb.DatasetResponsiveness1s)
		}
		if input.IncludeAllWifiLink {
			out.WifiLink15s = outcomeFor(results, orb.DatasetWifiLink15s)
			out.WifiLink1s = outcomeFor(results, orb.DatasetWifiLink1s)
		}
		return nil, out, nil
	}
}

func outcomeFor(results map[orb.Dataset]poll.Result, dataset orb.Dataset) *DatasetOutcome {
	result, ok := results[dataset]
	if !ok {
		return &DatasetOutcome{Error: "dataset was not fetched"}
	}
	if result.Err != nil {
		return &DatasetOutcome{
			Error:     result.Err.Error(),
			ErrorKind: string(orb.KindOf(result.Err)),
		}
	}
	records := result.Records
	if records == nil {
		records = []orb.Record{}
	}
	return &DatasetOutcome{
		OK:      true,
		Count:   len(records),
		Records: records,
	}
}
