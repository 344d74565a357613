package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var (
	apiTracer   = otel.Tracer("gully-scorer/internal/interfaces/httpapi")
	untraceable = trace.SpanFromContext(context.Background())
)

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !shouldCreateHTTPAPISpan(name) || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, untraceable
	}
	return apiTracer.Start(ctx, name)
}

// shouldCreateHTTPAPISpan keeps spans to handler entry points.
func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix) && len(name) > len(handlerSpanPrefix)
}
