// Package tracing provides OpenTelemetry integration: the application
// tracer and HTTP server middleware.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "vid-catalog"

// GetTracer returns the application tracer for creating spans.
// The tracer is resolved from the currently installed provider on every
// call, so spans reach whichever TracerProvider is registered at request
// time rather than the one present at package initialization.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.GetTracerProvider().Tracer(tracerName)
}

// Setup installs a process-wide SDK TracerProvider and the W3C trace
// context propagator, so server spans carry real trace IDs and the
// X-Trace-Id response header is meaningful. No exporter is attached;
// spans stay in-process. The returned function shuts the provider down.
func Setup() func(context.Context) error {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp.Shutdown
}
