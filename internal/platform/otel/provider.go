// Package otel wires OpenTelemetry tracing for orbnet services.
package otel

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Env vars controlling the trace pipeline. Tracing stays off unless an
// OTLP endpoint is configured, so stdio MCP sessions and one-shot recorder
// runs export nothing by default.
const (
	endpointEnv = "ORBNET_OTEL_ENDPOINT"
	enabledEnv  = "ORBNET_OTEL_ENABLED"
)

// noopShutdown satisfies the Setup contract when tracing is off.
func noopShutdown(context.Context) error { return nil }

// Setup initialises OpenTelemetry tracing for the given service. When no
// endpoint is configured, or ORBNET_OTEL_ENABLED is "false", no global
// provider is registered and the returned shutdown function does nothing.
//
// The returned shutdown function flushes pending spans and should be
// deferred by the caller.
func Setup(ctx context.Context, serviceName string) (func(context.Context) error, error) {
	endpoint := os.Getenv(endpointEnv)
	if endpoint == "" || strings.EqualFold(os.Getenv(enabledEnv), "false") {
		return noopShutdown, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return noopShutdown, fmt.Errorf("create otlp exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return noopShutdown, fmt.Errorf("describe service resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return provider.Shutdown, nil
}
