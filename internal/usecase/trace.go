package usecase

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var (
	usecaseTracer    = otel.Tracer("transfer-sim/internal/usecase")
	usecaseInertSpan = trace.SpanFromContext(context.Background())
)

// startUsecaseSpan opens a child span under a sampled request. Unnamed
// spans and calls with no valid parent reuse an inert span.
func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" || !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, usecaseInertSpan
	}
	return usecaseTracer.Start(ctx, name)
}
