package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TestRunUnsupportedTransport ensures Run rejects unknown transport kinds.
func TestRunUnsupportedTransport(t *testing.T) {
	err := Run(context.Background(), Config{Transport: "websocket"})
	if err == nil {
		t.Fatal("expected error for unsupported transport")
	}
	if !strings.Contains(err.Error(), "not supported") {
		t.Errorf("expected 'not supported' in error, got: %v", err)
	}
}

// TestRunWithHTTPTransportStopsOnCancel ensures the HTTP transport shuts
// down cleanly when the context ends.
func TestRunWithHTTPTransportStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	runErr := make(chan error, 1)
	go func() {
		runErr <- Run(ctx, Config{
			Transport: TransportHTTP,
			HTTPAddr:  "127.0.0.1:0",
			Host:      "127.0.0.1",
			Port:      1,
		})
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-runErr:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop after cancel")
	}
}

// TestServeWithTransportNilServer ensures misconfigured servers error
// instead of panicking.
func TestServeWithTransportNilServer(t *testing.T) {
	var nilServer *Server
	if err := nilServer.serveWithTransport(context.Background(), &mcp.StdioTransport{}); err == nil {
		t.Fatal("expected error for nil server")
	}

	emptyServer := &Server{}
	if err := emptyServer.serveWithTransport(context.Background(), &mcp.StdioTransport{}); err == nil {
		t.Fatal("expected error for missing mcp server")
	}
}

// TestServeWithTransportFailure ensures transport errors surface.
func TestServeWithTransportFailure(t *testing.T) {
	server := New(Config{CallerID: "test-session"})

	err := server.serveWithTransport(nil, failingTransport{})
	if err == nil {
		t.Fatal("expected error from failing transport")
	}
	if !strings.Contains(err.Error(), "serve MCP") {
		t.Errorf("expected serve MCP prefix, got: %v", err)
	}
}

// TestMonitorSensorExitsOnCancel ensures monitorSensor returns when the
// context is cancelled.
func TestMonitorSensorExitsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	server := &Server{}

	done := make(chan struct{})
	go func() {
		server.monitorSensor(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("monitorSensor did not exit after context cancellation")
	}
}

type failingTransport struct{}

// Connect returns the configured error for tests.
func (f failingTransport) Connect(context.Context) (mcp.Connection, error) {
	return nil, errors.New("transport failure")
}
