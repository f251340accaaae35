package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/orbnet/internal/platform/timeouts"
)

// sensorMonitorInterval is the delay between background sensor probes while
// serving the HTTP transport.
const sensorMonitorInterval = 30 * time.Second

// Run is the service entrypoint for MCP and blocks until context
// cancellation. It is transport-agnostic so startup can choose stdio for
// local tools and HTTP for remote integrations.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	switch cfg.Transport {
	case TransportStdio:
		return runWithTransport(ctx, cfg, &mcp.StdioTransport{})
	case TransportHTTP:
		return runWithHTTPTransport(ctx, cfg)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// runWithTransport creates a server and serves it over the provided
// transport.
func runWithTransport(ctx context.Context, cfg Config, transport mcp.Transport) error {
	server := New(cfg)
	server.probeSensor(ctx)
	return server.serveWithTransport(ctx, transport)
}

// runWithHTTPTransport serves the same MCP server over streamable HTTP. The
// HTTP server owns the listener lifecycle; the MCP SDK owns per-session
// protocol state.
func runWithHTTPTransport(ctx context.Context, cfg Config) error {
	httpAddr := cfg.HTTPAddr
	if httpAddr == "" {
		httpAddr = "localhost:8081"
	}

	server := New(cfg)
	server.probeSensor(ctx)

	monitorCtx, monitorCancel := context.WithCancel(ctx)
	defer monitorCancel()
	go server.monitorSensor(monitorCtx)

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server.mcpServer
	}, nil)
	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	serveErr := make(chan error, 1)
	log.Printf("mcp listening on %s", httpAddr)
	go func() {
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Serve starts the MCP server on stdio and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// serveWithTransport starts the MCP server using the provided transport.
// Context cancellation is the normal shutdown path, not an error.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// probeSensor checks sensor reachability at startup. An unreachable sensor
// is logged but never fatal: the server still serves, and individual tool
// calls report their own fetch failures.
func (s *Server) probeSensor(ctx context.Context) {
	if s == nil || s.sensor == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.sensor.Probe(ctx); err != nil {
		log.Printf("orb sensor at %s is not reachable: %v", s.sensor.BaseURL(), err)
		return
	}
	log.Printf("orb sensor at %s is reachable", s.sensor.BaseURL())
}

// monitorSensor periodically probes the sensor while the HTTP transport is
// serving. Failures are logged but don't terminate the server, so an Orb
// restart degrades tool calls without dropping MCP sessions.
func (s *Server) monitorSensor(ctx context.Context) {
	ticker := time.NewTicker(sensorMonitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s == nil || s.sensor == nil {
				continue
			}
			if err := s.sensor.Probe(ctx); err != nil {
				log.Printf("orb sensor health check failed: %v", err)
			}
		}
	}
}
