// Package service implements business logic on top of ports.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	rdotel "github.com/trbngr/refdata/internal/adapter/otel"
	"github.com/trbngr/refdata/internal/domain/gender"
	"github.com/trbngr/refdata/internal/domain/identifier"
	"github.com/trbngr/refdata/internal/domain/outcome"
	"github.com/trbngr/refdata/internal/port/lookup"
)

// LookupService resolves reference-data reads against a lookup source and
// folds every result into an outcome.
type LookupService struct {
	source  lookup.Lookup
	metrics *rdotel.Metrics
}

// NewLookupService creates a LookupService backed by the given source.
func NewLookupService(source lookup.Lookup) *LookupService {
	return &LookupService{source: source}
}

// SetMetrics attaches metric instruments. Optional; without them the
// service records nothing.
func (s *LookupService) SetMetrics(m *rdotel.Metrics) {
	s.metrics = m
}

// Gender resolves a single gender row by its raw identifier.
//
// The returned error is non-nil only when ctx ended while the lookup was in
// flight; the outcome is then meaningless and must be ignored. Every other
// condition, including a failing source, is reported through the outcome.
func (s *LookupService) Gender(ctx context.Context, raw uuid.UUID) (outcome.Outcome[gender.Gender], error) {
	return resolve(ctx, s, "gender", raw, s.source.GetGender)
}

// Genders returns the full gender code table.
func (s *LookupService) Genders(ctx context.Context) ([]gender.Gender, error) {
	ctx, span := rdotel.StartListSpan(ctx, "gender")
	defer span.End()
	return s.source.ListGenders(ctx)
}

// resolve runs one lookup invocation end to end: validate the raw
// identifier, consult the source at most once, classify what came back.
func resolve[T any](ctx context.Context, s *LookupService, entity string, raw uuid.UUID,
	find func(context.Context, uuid.UUID) (*T, error),
) (outcome.Outcome[T], error) {
	start := time.Now()

	id, ok := identifier.Validate(raw)
	if !ok {
		// Reserved identifier, answered locally without consulting the source.
		out := outcome.Absent[T]()
		s.observe(ctx, entity, out.Tag(), time.Since(start))
		return out, nil
	}

	ctx, span := rdotel.StartLookupSpan(ctx, entity, id)
	defer span.End()

	v, err := find(ctx, id)
	if cerr := ctx.Err(); cerr != nil {
		// The caller is gone. Whatever the source returned is discarded and
		// no outcome is reported.
		var zero outcome.Outcome[T]
		return zero, cerr
	}

	out := outcome.Classify(v, err)
	s.observe(ctx, entity, out.Tag(), time.Since(start))
	return out, nil
}

func (s *LookupService) observe(ctx context.Context, entity string, tag outcome.Tag, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("outcome", tag.String()),
	)
	s.metrics.Lookups.Add(ctx, 1, attrs)
	s.metrics.LookupDuration.Record(ctx, elapsed.Seconds(), attrs)
}
