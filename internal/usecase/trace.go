package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	scorerTracer = otel.Tracer("gully-scorer/internal/usecase")
	detachedSpan = trace.SpanFromContext(context.Background())
)

// startUsecaseSpan opens a child span under a traced request. Sweeps and event
// consumers run without a parent and get a no-op span.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if name == "" || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, detachedSpan
	}
	return scorerTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func matchAttr(matchID string) attribute.KeyValue {
	return matchAttr(matchID)
}

func seasonAttr(seasonID string) attribute.KeyValue {
	return seasonAttr(seasonID)
}
