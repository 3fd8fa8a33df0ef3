package ristretto_test

import (
	"context"
	"testing"
	"time"

	"github.com/trbngr/refdata/internal/adapter/ristretto"
	"github.com/trbngr/refdata/internal/port/cache"
	"github.com/trbngr/refdata/internal/port/cache/cachetest"
)

var _ cache.Cache = (*ristretto.Cache)(nil)

func TestCacheCompliance(t *testing.T) {
	c, err := ristretto.New(1 << 20)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	cachetest.Run(t, c, c.Wait)
}

func TestCacheTTLExpiry(t *testing.T) {
	c, err := ristretto.New(1 << 20)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "short-lived", []byte("v"), 20*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	c.Wait()

	if _, found, _ := c.Get(ctx, "short-lived"); !found {
		t.Fatal("expected entry before expiry")
	}

	time.Sleep(50 * time.Millisecond)

	if _, found, _ := c.Get(ctx, "short-lived"); found {
		t.Fatal("expected entry to expire")
	}
}
