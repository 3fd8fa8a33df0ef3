package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "refdata"

// Metrics holds all refdata metric instruments.
type Metrics struct {
	Lookups        metric.Int64Counter
	LookupDuration metric.Float64Histogram
	CacheHits      metric.Int64Counter
	CacheMisses    metric.Int64Counter
	BreakerOpens   metric.Int64Counter
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.Lookups, err = meter.Int64Counter("refdata.lookups",
		metric.WithDescription("Number of lookups resolved, by outcome"))
	if err != nil {
		return nil, err
	}

	m.LookupDuration, err = meter.Float64Histogram("refdata.lookup.duration_seconds",
		metric.WithDescription("Lookup duration in seconds"))
	if err != nil {
		return nil, err
	}

	m.CacheHits, err = meter.Int64Counter("refdata.cache.hits",
		metric.WithDescription("Number of cache hits, by kind"))
	if err != nil {
		return nil, err
	}

	m.CacheMisses, err = meter.Int64Counter("refdata.cache.misses",
		metric.WithDescription("Number of cache misses"))
	if err != nil {
		return nil, err
	}

	m.BreakerOpens, err = meter.Int64Counter("refdata.breaker.opens",
		metric.WithDescription("Number of circuit breaker open transitions"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
