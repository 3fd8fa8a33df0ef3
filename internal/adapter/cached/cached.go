// Package cached decorates a lookup source with read-through caching of
// rows and of identifiers known to have no row.
package cached

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	rdotel "github.com/trbngr/refdata/internal/adapter/otel"
	"github.com/trbngr/refdata/internal/domain"
	"github.com/trbngr/refdata/internal/domain/gender"
	"github.com/trbngr/refdata/internal/port/cache"
	"github.com/trbngr/refdata/internal/port/lookup"
)

// noneMarker is stored under the key of an identifier known to have no row,
// so repeated misses short-circuit without touching the source. Row values
// are JSON documents, which can never equal the marker.
const noneMarker = "none"

// Keys use dots as separators; JetStream KV rejects colons.
const genderListKey = "gender.all"

func genderKey(id uuid.UUID) string {
	return "gender." + id.String()
}

// Source wraps a lookup source with a cache. Cache failures degrade to the
// wrapped source; they never fail a read on their own.
type Source struct {
	next    lookup.Lookup
	store   cache.Cache
	ttl     time.Duration
	negTTL  time.Duration
	metrics *rdotel.Metrics
}

// New creates a caching Source in front of next. ttl bounds how long rows
// are kept, negTTL how long none-markers are. Absences usually resolve
// sooner than rows change, so negTTL is typically the shorter of the two.
func New(next lookup.Lookup, store cache.Cache, ttl, negTTL time.Duration) *Source {
	return &Source{next: next, store: store, ttl: ttl, negTTL: negTTL}
}

// SetMetrics attaches metric instruments. Optional.
func (s *Source) SetMetrics(m *rdotel.Metrics) {
	s.metrics = m
}

// GetGender serves a gender row from cache when possible, consulting the
// wrapped source on a miss. Both rows and definitive absences are cached;
// source failures are not.
func (s *Source) GetGender(ctx context.Context, id uuid.UUID) (*gender.Gender, error) {
	key := genderKey(id)

	if data, ok := s.cacheGet(ctx, key); ok {
		if string(data) == noneMarker {
			s.hit(ctx, "negative")
			return nil, fmt.Errorf("get gender %s: %w", id, domain.ErrNotFound)
		}
		var g gender.Gender
		if err := json.Unmarshal(data, &g); err == nil {
			s.hit(ctx, "row")
			return &g, nil
		}
		// Corrupt entry: drop it and treat as a miss.
		_ = s.store.Delete(ctx, key)
	}
	s.miss(ctx)

	g, err := s.next.GetGender(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.cacheSet(ctx, key, []byte(noneMarker), s.negTTL)
		}
		return nil, err
	}

	if data, merr := json.Marshal(g); merr == nil {
		s.cacheSet(ctx, key, data, s.ttl)
	}
	return g, nil
}

// ListGenders serves the whole gender table from cache when possible.
func (s *Source) ListGenders(ctx context.Context) ([]gender.Gender, error) {
	if data, ok := s.cacheGet(ctx, genderListKey); ok {
		var genders []gender.Gender
		if err := json.Unmarshal(data, &genders); err == nil {
			s.hit(ctx, "row")
			return genders, nil
		}
		_ = s.store.Delete(ctx, genderListKey)
	}
	s.miss(ctx)

	genders, err := s.next.ListGenders(ctx)
	if err != nil {
		return nil, err
	}

	if data, merr := json.Marshal(genders); merr == nil {
		s.cacheSet(ctx, genderListKey, data, s.ttl)
	}
	return genders, nil
}

// cacheGet reads a key, treating any cache failure as a miss so the source
// of record still answers.
func (s *Source) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	data, ok, err := s.store.Get(ctx, key)
	if err != nil {
		slog.Warn("cache read failed", "key", key, "error", err)
		return nil, false
	}
	return data, ok
}

func (s *Source) cacheSet(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if err := s.store.Set(ctx, key, data, ttl); err != nil {
		slog.Warn("cache write failed", "key", key, "error", err)
	}
}

func (s *Source) hit(ctx context.Context, kind string) {
	if s.metrics == nil {
		return
	}
	s.metrics.CacheHits.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (s *Source) miss(ctx context.Context) {
	if s.metrics == nil {
		return
	}
	s.metrics.CacheMisses.Add(ctx, 1)
}
