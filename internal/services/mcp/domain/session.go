package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/orbnet/internal/orb"
	"github.com/louisbranch/orbnet/internal/platform/timeouts"
)

// ClientInfoResult represents the MCP tool output describing the effective
// client configuration.
type ClientInfoResult struct {
	Host           string  `json:"host" jsonschema:"sensor hostname or IP in effect"`
	Port           int     `json:"port" jsonschema:"Local API port in effect"`
	BaseURL        string  `json:"base_url" jsonschema:"full base URL for API requests"`
	CallerID       string  `json:"caller_id" jsonschema:"polling identity tracking this session's delivery position"`
	TimeoutSeconds float64 `json:"timeout_seconds" jsonschema:"request timeout in seconds"`
}

// ClientInfoTool defines the MCP tool schema for inspecting the client
// configuration.
func ClientInfoTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "get_client_info",
		Description: "Get the effective Orb API client configuration: host, port, base URL, " +
			"polling caller_id, and timeout. Makes no request to the sensor; useful for " +
			"verifying which sensor the server is connected to.",
	}
}

// ClientInfoHandler reports the configuration a call with these overrides
// would use.
func ClientInfoHandler(engine *Engine) mcp.ToolHandlerFor[DatasetInput, ClientInfoResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input DatasetInput) (*mcp.CallToolResult, ClientInfoResult, error) {
		cfg, callerID := engine.clientConfig(input.connectionParams())
		host := cfg.Host
		if host == "" {
			host = orb.DefaultHost
		}
		port := cfg.Port
		if port == 0 {
			port = orb.DefaultPort
		}
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = timeouts.DatasetFetch
		}
		return nil, ClientInfoResult{
			Host:           host,
			Port:           port,
			BaseURL:        cfg.BaseURL(),
			CallerID:       callerID,
			TimeoutSeconds: timeout.Seconds(),
		}, nil
	}
}

// ResetPollingInput represents the MCP tool input for clearing polling
// state.
type ResetPollingInput struct {
	Dataset  string `json:"dataset,omitempty" jsonschema:"dataset to reset, by wire name or aggregate key; omit to reset every dataset for the caller"`
	CallerID string `json:"caller_id,omitempty" jsonschema:"polling identity to reset; omit for the server session identity"`
}

// ResetPollingResult represents the MCP tool output after clearing polling
// state.
type ResetPollingResult struct {
	CallerID string   `json:"caller_id" jsonschema:"identity whose polling state was cleared"`
	Datasets []string `json:"datasets" jsonschema:"dataset keys whose next fetch returns full history"`
}

// ResetPollingTool defines the MCP tool schema for clearing polling state.
func ResetPollingTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "reset_polling",
		Description: "Clear the stored polling position so the next fetch returns full " +
			"history again, for one dataset or for every dataset the caller has touched. " +
			"Use this to restart an analysis from the beginning of the sensor's data.",
	}
}

// ResetPollingHandler clears cursor state for the caller.
func ResetPollingHandler(engine *Engine) mcp.ToolHandlerFor[ResetPollingInput, ResetPollingResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ResetPollingInput) (*mcp.CallToolResult, ResetPollingResult, error) {
		callerID := input.CallerID
		if callerID == "" {
			callerID = engine.callerID
		}

		if input.Dataset == "" {
			engine.cursors.ResetAll(callerID)
			keys := make([]string, 0, 9)
			for _, dataset := range orb.AllDatasets() {
				keys = append(keys, dataset.Key())
			}
			return nil, ResetPollingResult{CallerID: callerID, Datasets: keys}, nil
		}

		dataset, err := orb.ParseDataset(input.Dataset)
		if err != nil {
			return nil, ResetPollingResult{}, err
		}
		engine.cursors.Reset(callerID, dataset)
		return nil, ResetPollingResult{CallerID: callerID, Datasets: []string{dataset.Key()}}, nil
	}
}
