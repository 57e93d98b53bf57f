package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var (
	apiTracer = otel.Tracer("transfer-sim/internal/interfaces/httpapi")
	inertSpan = trace.SpanFromContext(context.Background())
)

// startSpan opens a span for handler-level work only. Helpers below the
// handler boundary, and requests without a valid parent span (routes
// filtered out of tracing), get an inert span back.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, inertSpan
	}
	if !isHandlerSpan(name) {
		return ctx, inertSpan
	}
	return apiTracer.Start(ctx, name)
}

func isHandlerSpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}
