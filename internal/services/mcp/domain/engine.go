package domain

import (
	"time"

	"github.com/louisbranch/orbnet/internal/orb"
	"github.com/louisbranch/orbnet/internal/poll"
)

// ClientFactory builds a dataset fetcher for one sensor endpoint.
type ClientFactory func(cfg orb.Config) poll.DatasetFetcher

// Engine binds the polling engine to the MCP tool surface. It owns the
// process-wide cursor store and the default sensor endpoint, and resolves
// each tool call's host, port, caller, and timeout overrides into a
// coordinator sharing that store.
type Engine struct {
	defaults orb.Config
	callerID string
	cursors  *poll.CursorStore
	factory  ClientFactory
}

// NewEngine creates an engine with an empty cursor store. defaults supplies
// the sensor endpoint used when a tool call has no overrides; callerID is
// the session identity used when a call does not bring its own, so a fresh
// process starts with full history.
func NewEngine(defaults orb.Config, callerID string) *Engine {
	return &Engine{
		defaults: defaults,
		callerID: callerID,
		cursors:  poll.NewCursorStore(),
		factory: func(cfg orb.Config) poll.DatasetFetcher {
			return orb.NewClient(cfg)
		},
	}
}

// DefaultCallerID returns the engine's session identity.
func (e *Engine) DefaultCallerID() string {
	return e.callerID
}

// connectionParams are the sensor overrides shared by every dataset tool.
type connectionParams struct {
	Host           string
	Port           int
	CallerID       string
	TimeoutSeconds float64
}

// clientConfig merges call overrides over the engine defaults and resolves
// the caller identity for this call.
func (e *Engine) clientConfig(params connectionParams) (orb.Config, string) {
	cfg := e.defaults
	if params.Host != "" {
		cfg.Host = params.Host
	}
	if params.Port != 0 {
		cfg.Port = params.Port
	}
	if params.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(params.TimeoutSeconds * float64(time.Second))
	}
	callerID := params.CallerID
	if callerID == "" {
		callerID = e.callerID
	}
	return cfg, callerID
}

// resolve builds a coordinator for this call's sensor endpoint. The
// coordinator shares the engine's cursor store, so overriding host or port
// mid-session keeps the caller's delivery position.
func (e *Engine) resolve(params connectionParams) (*poll.Coordinator, string) {
	cfg, callerID := e.clientConfig(params)
	return poll.NewCoordinator(e.factory(cfg), e.cursors), callerID
}
