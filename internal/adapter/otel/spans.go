package otel

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "refdata"

// StartLookupSpan starts a span for one lookup against the backing source.
func StartLookupSpan(ctx context.Context, entity string, id uuid.UUID) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "lookup",
		trace.WithAttributes(
			attribute.String("lookup.entity", entity),
			attribute.String("lookup.id", id.String()),
		),
	)
}

// StartListSpan starts a span for a full code-table listing.
func StartListSpan(ctx context.Context, entity string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "list",
		trace.WithAttributes(
			attribute.String("lookup.entity", entity),
		),
	)
}
