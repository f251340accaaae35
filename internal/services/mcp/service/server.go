package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/orbnet/internal/orb"
	"github.com/louisbranch/orbnet/internal/platform/branding"
	"github.com/louisbranch/orbnet/internal/services/mcp/domain"
)

// serverVersion identifies the MCP server version.
const serverVersion = "0.1.0"

// serverName identifies this MCP server to clients.
var serverName = branding.AppName + " MCP"

// serverInstructions tells MCP clients what this server is for and how
// stateful polling behaves across calls.
const serverInstructions = `This server provides real-time network quality data from Orb sensors.

**When to use this server:**
- Monitor network performance metrics (latency, jitter, packet loss)
- Track internet speed test results over time
- Analyze web responsiveness (TTFB, DNS times)
- Get comprehensive network quality scores

**Key Features:**
- Stateful polling: First call returns historical data, subsequent calls
  return only new data
- Multiple time granularities (1s, 15s, 1m) for different analysis needs
- Concurrent data fetching for efficiency

**Common use cases:**
- "Show me my current network quality"
- "Has my internet been stable today?"
- "What was my average latency over the past hour?"
- "Compare speed test results from this morning vs now"`

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP runs MCP over streamable HTTP for remote clients.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	// Host is the Orb sensor hostname or IP. Defaults to localhost.
	Host string
	// Port is the sensor's Local API port. Defaults to 7080.
	Port int
	// CallerID is the session polling identity. When empty a fresh identity
	// is generated per process, so a restarted server starts with full
	// history.
	CallerID string
	// Timeout caps each dataset request. Defaults to 30 seconds.
	Timeout time.Duration
	Transport TransportKind
	// HTTPAddr is the HTTP bind address. Defaults to localhost:8081 for the
	// HTTP transport; the default stays loopback-only because the transport
	// carries no authentication.
	HTTPAddr string
}

// Server hosts the MCP server bound to one Orb sensor endpoint.
type Server struct {
	mcpServer *mcp.Server
	engine    *domain.Engine
	sensor    *orb.Client
}

// New creates a configured MCP server with every dataset tool, prompt, and
// resource registered against a shared polling engine.
func New(cfg Config) *Server {
	callerID := cfg.CallerID
	if callerID == "" {
		callerID = uuid.NewString()
	}
	defaults := orb.Config{
		Host:    cfg.Host,
		Port:    cfg.Port,
		Timeout: cfg.Timeout,
	}
	engine := domain.NewEngine(defaults, callerID)

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{
		Instructions: serverInstructions,
	})

	mcp.AddTool(mcpServer, domain.ScoresTool(), domain.ScoresHandler(engine))
	mcp.AddTool(mcpServer, domain.ResponsivenessTool(), domain.ResponsivenessHandler(engine))
	mcp.AddTool(mcpServer, domain.WebResponsivenessTool(), domain.WebResponsivenessHandler(engine))
	mcp.AddTool(mcpServer, domain.SpeedResultsTool(), domain.SpeedResultsHandler(engine))
	mcp.AddTool(mcpServer, domain.WifiLinkTool(), domain.WifiLinkHandler(engine))
	mcp.AddTool(mcpServer, domain.AllDatasetsTool(), domain.AllDatasetsHandler(engine))
	mcp.AddTool(mcpServer, domain.ClientInfoTool(), domain.ClientInfoHandler(engine))
	mcp.AddTool(mcpServer, domain.ResetPollingTool(), domain.ResetPollingHandler(engine))

	mcpServer.AddPrompt(domain.AnalyzeNetworkQualityPrompt(), domain.AnalyzeNetworkQualityPromptHandler())
	mcpServer.AddPrompt(domain.TroubleshootSlowInternetPrompt(), domain.TroubleshootSlowInternetPromptHandler())

	mcpServer.AddResource(domain.DatasetCatalogResource(), domain.DatasetCatalogResourceHandler())

	return &Server{
		mcpServer: mcpServer,
		engine:    engine,
		sensor:    orb.NewClient(defaults),
	}
}
