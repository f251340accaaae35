package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/orbnet/internal/orb"
)

// DatasetInput represents the MCP tool input shared by single-dataset
// fetches without a granularity choice.
type DatasetInput struct {
	Host           string  `json:"host,omitempty" jsonschema:"Orb sensor hostname or IP (default: ORB_HOST env var or localhost)"`
	Port           int     `json:"port,omitempty" jsonschema:"Local API port (default: ORB_PORT env var or 7080)"`
	CallerID       string  `json:"caller_id,omitempty" jsonschema:"polling identity; omit to use the server session identity so repeat calls only return new records"`
	TimeoutSeconds float64 `json:"timeout_seconds,omitempty" jsonschema:"request timeout in seconds (default: 30)"`
}

func (in DatasetInput) connectionParams() connectionParams {
	return connectionParams{
		Host:           in.Host,
		Port:           in.Port,
		CallerID:       in.CallerID,
		TimeoutSeconds: in.TimeoutSeconds,
	}
}

// GranularityDatasetInput represents the MCP tool input for dataset families
// available in 1-second, 15-second, and 1-minute buckets.
type GranularityDatasetInput struct {
	Granularity    string  `json:"granularity,omitempty" jsonschema:"time bucket size: 1s, 15s, or 1m (default: 1m)"`
	Host           string  `json:"host,omitempty" jsonschema:"Orb sensor hostname or IP (default: ORB_HOST env var or localhost)"`
	Port           int     `json:"port,omitempty" jsonschema:"Local API port (default: ORB_PORT env var or 7080)"`
	CallerID       string  `json:"caller_id,omitempty" jsonschema:"polling identity; omit to use the server session identity so repeat calls only return new records"`
	TimeoutSeconds float64 `json:"timeout_seconds,omitempty" jsonschema:"request timeout in seconds (default: 30)"`
}

func (in GranularityDatasetInput) connectionParams() connectionParams {
	return connectionParams{
		Host:           in.Host,
		Port:           in.Port,
		CallerID:       in.CallerID,
		TimeoutSeconds: in.TimeoutSeconds,
	}
}

// DatasetResult represents the MCP tool output for a single dataset fetch.
type DatasetResult struct {
	Dataset string       `json:"dataset" jsonschema:"dataset key that was fetched"`
	Count   int          `json:"count" jsonschema:"number of records delivered"`
	Records []orb.Record `json:"records" jsonschema:"records not previously delivered to this caller; empty when the sensor has nothing new"`
}

func newDatasetResult(dataset orb.Dataset, records []orb.Record) DatasetResult {
	if records == nil {
		records = []orb.Record{}
	}
	return DatasetResult{
		Dataset: dataset.Key(),
		Count:   len(records),
		Records: records,
	}
}

// ScoresTool defines the MCP tool schema for the 1-minute scores dataset.
func ScoresTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "get_scores_1m",
		Description: "Retrieve the 1-minute Scores dataset from an Orb sensor: the overall " +
			"Orb Score (0-100, higher is better) with its Responsiveness, Reliability, and " +
			"Speed component scores plus underlying measures such as lag and transfer speeds. " +
			"90-100 excellent, 80-89 good, 70-79 ok, 50-69 fair, below 50 poor. " +
			"The first call returns all available history; repeat calls with the same " +
			"caller_id return only records collected since the last call.",
	}
}

// ScoresHandler fetches new 1-minute score records.
func ScoresHandler(engine *Engine) mcp.ToolHandlerFor[DatasetInput, DatasetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DatasetInput) (*mcp.CallToolResult, DatasetResult, error) {
		coordinator, callerID := engine.resolve(input.connectionParams())
		records, err := coordinator.Fetch(ctx, callerID, orb.DatasetScores1m)
		if err != nil {
			return nil, DatasetResult{}, err
		}
		return nil, newDatasetResult(orb.DatasetScores1m, records), nil
	}
}

// ResponsivenessTool defines the MCP tool schema for responsiveness datasets.
func ResponsivenessTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "get_responsiveness",
		Description: "Retrieve a Responsiveness dataset from an Orb sensor: lag, round-trip " +
			"latency, jitter, and packet loss, including router-hop measures, in 1-second, " +
			"15-second, or 1-minute buckets. " +
			"The first call returns all available history; repeat calls with the same " +
			"caller_id return only records collected since the last call.",
	}
}

// ResponsivenessHandler fetches new responsiveness records at the requested
// granularity.
func ResponsivenessHandler(engine *Engine) mcp.ToolHandlerFor[GranularityDatasetInput, DatasetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GranularityDatasetInput) (*mcp.CallToolResult, DatasetResult, error) {
		dataset, err := responsivenessDataset(input.Granularity)
		if err != nil {
			return nil, DatasetResult{}, err
		}
		coordinator, callerID := engine.resolve(input.connectionParams())
		records, err := coordinator.Fetch(ctx, callerID, dataset)
		if err != nil {
			return nil, DatasetResult{}, err
		}
		return nil, newDatasetResult(dataset, records), nil
	}
}

// WebResponsivenessTool defines the MCP tool schema for the web
// responsiveness dataset.
func WebResponsivenessTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "get_web_responsiveness",
		Description: "Retrieve the Web Responsiveness dataset from an Orb sensor: Time to " +
			"First Byte and DNS resolver response time for a test URL, measured once per " +
			"minute by default. " +
			"The first call returns all available history; repeat calls with the same " +
			"caller_id return only records collected since the last call.",
	}
}

// WebResponsivenessHandler fetches new web responsiveness records.
func WebResponsivenessHandler(engine *Engine) mcp.ToolHandlerFor[DatasetInput, DatasetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DatasetInput) (*mcp.CallToolResult, DatasetResult, error) {
		coordinator, callerID := engine.resolve(input.connectionParams())
		records, err := coordinator.Fetch(ctx, callerID, orb.DatasetWebResponsiveness)
		if err != nil {
			return nil, DatasetResult{}, err
		}
		return nil, newDatasetResult(orb.DatasetWebResponsiveness, records), nil
	}
}

// SpeedResultsTool defines the MCP tool schema for the speed test dataset.
func SpeedResultsTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "get_speed_results",
		Description: "Retrieve the Speed test results dataset from an Orb sensor: download " +
			"and upload speeds in kbps with the engine and server used, measured once per " +
			"hour by default. " +
			"The first call returns all available history; repeat calls with the same " +
			"caller_id return only records collected since the last call.",
	}
}

// SpeedResultsHandler fetches new speed test records.
func SpeedResultsHandler(engine *Engine) mcp.ToolHandlerFor[DatasetInput, DatasetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DatasetInput) (*mcp.CallToolResult, DatasetResult, error) {
		coordinator, callerID := engine.resolve(input.connectionParams())
		records, err := coordinator.Fetch(ctx, callerID, orb.DatasetSpeedResults)
		if err != nil {
			return nil, DatasetResult{}, err
		}
		return nil, newDatasetResult(orb.DatasetSpeedResults, records), nil
	}
}

// WifiLinkTool defines the MCP tool schema for Wi-Fi link datasets.
func WifiLinkTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "get_wifi_link",
		Description: "Retrieve a Wi-Fi link dataset from an Orb sensor: signal strength, " +
			"link rates, and channel details for the sensor's Wi-Fi interface in 1-second, " +
			"15-second, or 1-minute buckets. Empty on wired connections. " +
			"The first call returns all available history; repeat calls with the same " +
			"caller_id return only records collected since the last call.",
	}
}

// WifiLinkHandler fetches new Wi-Fi link records at the requested
// granularity.
func WifiLinkHandler(engine *Engine) mcp.ToolHandlerFor[GranularityDatasetInput, DatasetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GranularityDatasetInput) (*mcp.CallToolResult, DatasetResult, error) {
		dataset, err := wifiLinkDataset(input.Granularity)
		if err != nil {
			return nil, DatasetResult{}, err
		}
		coordinator, callerID := engine.resolve(input.connectionParams())
		records, err := coordinator.Fetch(ctx, callerID, dataset)
		if err != nil {
			return nil, DatasetResult{}, err
		}
		return nil, newDatasetResult(dataset, records), nil
	}
}

func responsivenessDataset(granularity string) (orb.Dataset, error) {
	if granularity == "" {
		return orb.DatasetResponsiveness1m, nil
	}
	parsed, err := orb.ParseGranularity(granularity)
	if err != nil {
		return 0, fmt.Errorf("get_responsiveness: %w", err)
	}
	return orb.ResponsivenessDataset(parsed), nil
}

func wifiLinkDataset(granularity string) (orb.Dataset, error) {
	if granularity == "" {
		return orb.DatasetWifiLink1m, nil
	}
	parsed, err := orb.ParseGranularity(granularity)
	if err != nil {
		return 0, fmt.Errorf("get_wifi_link: %w", err)
	}
	return orb.WifiLinkDataset(parsed), nil
}
