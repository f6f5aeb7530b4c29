// Package otelroute provides OpenTelemetry tracing middleware for route dispatch.
package otelroute

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/BrandonKowalski/routecoordinator/pkg/routecoordinator"
)

// tracerName is the instrumentation scope name for route tracing.
const tracerName = "github.com/BrandonKowalski/routecoordinator"

// Span names.
const (
	SpanExecute  = "routecoordinator.route.execute"
	SpanComplete = "routecoordinator.route.complete"
)

// Tracing returns middleware that wraps Execute in a span and records the
// completion as a child span. Without a configured TracerProvider the global
// noop tracer is used.
func Tracing() routecoordinator.Middleware {
	return TracingWithTracer(otel.Tracer(tracerName))
}

// TracingWithTracer returns tracing middleware using the provided tracer.
func TracingWithTracer(tracer trace.Tracer) routecoordinator.Middleware {
	return func(call *routecoordinator.Call, next routecoordinator.Executor) {
		ctx, span := tracer.Start(call.Context(), SpanExecute,
			trace.WithAttributes(
				attribute.String("route.path", call.Path),
				attribute.String("route.call_id", call.ID),
				attribute.Bool("route.has_params", call.Params != nil),
			),
			trace.WithSpanKind(trace.SpanKindInternal),
		)
		defer span.End()
		call.SetContext(ctx)

		// The completion may fire long after Execute returns, so it gets its own span.
		call.OnComplete(func(data []byte, err error) {
			_, done := tracer.Start(ctx, SpanComplete,
				trace.WithAttributes(
					attribute.String("route.path", call.Path),
					attribute.Int("route.response_bytes", len(data)),
				),
			)
			if err != nil {
				done.RecordError(err)
				done.SetStatus(codes.Error, err.Error())
			} else {
				done.SetStatus(codes.Ok, "")
			}
			done.End()
		})

		next(call)
	}
}
