// Package guarded decorates a lookup source with an in-flight cap and a
// circuit breaker, shielding the backing store from overload and from
// hammering while it is down.
package guarded

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	rdotel "github.com/trbngr/refdata/internal/adapter/otel"
	"github.com/trbngr/refdata/internal/domain"
	"github.com/trbngr/refdata/internal/domain/gender"
	"github.com/trbngr/refdata/internal/port/lookup"
	"github.com/trbngr/refdata/internal/resilience"
)

// Source wraps a lookup source with concurrency and failure guards.
type Source struct {
	next    lookup.Lookup
	sem     *semaphore.Weighted
	breaker *resilience.Breaker
}

// New creates a guarded Source. maxInFlight caps concurrent calls into
// next. The breaker counts only real failures: an absent row is a healthy
// answer and never charges it. A nil breaker leaves only the in-flight cap.
func New(next lookup.Lookup, maxInFlight int, breaker *resilience.Breaker) *Source {
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	return &Source{
		next:    next,
		sem:     semaphore.NewWeighted(int64(maxInFlight)),
		breaker: breaker,
	}
}

// SetMetrics wires breaker open transitions into the given instruments.
// Optional.
func (s *Source) SetMetrics(m *rdotel.Metrics) {
	if m == nil || s.breaker == nil {
		return
	}
	s.breaker.SetOnOpen(func() {
		m.BreakerOpens.Add(context.Background(), 1)
	})
}

// GetGender resolves one row through the guards.
func (s *Source) GetGender(ctx context.Context, id uuid.UUID) (*gender.Gender, error) {
	var row *gender.Gender
	err := s.run(ctx, func() error {
		g, err := s.next.GetGender(ctx, id)
		if err != nil {
			return err
		}
		row = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// ListGenders resolves the whole table through the guards.
func (s *Source) ListGenders(ctx context.Context) ([]gender.Gender, error) {
	var rows []gender.Gender
	err := s.run(ctx, func() error {
		genders, err := s.next.ListGenders(ctx)
		if err != nil {
			return err
		}
		rows = genders
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// run acquires an in-flight slot and executes fn under the breaker.
// Blocks while all slots are busy; returns ctx.Err() if the context ends
// while waiting. Absences pass through without charging the breaker.
func (s *Source) run(ctx context.Context, fn func() error) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.sem.Release(1)

	if s.breaker == nil {
		return fn()
	}

	var notFound error
	err := s.breaker.Execute(func() error {
		if err := fn(); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				notFound = err
				return nil
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return notFound
}
