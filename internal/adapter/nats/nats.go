// Package nats maintains the NATS connection and the JetStream KV bucket
// backing the shared cache tier.
package nats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Conn owns the NATS connection and the cache bucket handle.
type Conn struct {
	nc *nats.Conn
	kv jetstream.KeyValue
}

// Connect establishes a connection to NATS and ensures the cache bucket
// exists. ttl governs how long entries live in the bucket.
func Connect(ctx context.Context, url, bucket string, ttl time.Duration) (*Conn, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream init: %w", err)
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket: bucket,
		TTL:    ttl,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream kv bucket %s: %w", bucket, err)
	}

	slog.Info("nats connected", "url", url, "bucket", bucket)
	return &Conn{nc: nc, kv: kv}, nil
}

// KV returns the cache bucket handle.
func (c *Conn) KV() jetstream.KeyValue {
	return c.kv
}

// Close shuts down the NATS connection.
func (c *Conn) Close() error {
	c.nc.Close()
	return nil
}
