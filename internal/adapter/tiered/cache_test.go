package tiered_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/trbngr/refdata/internal/adapter/tiered"
)

// memCache is a simple in-memory cache for testing.
type memCache struct {
	data map[string][]byte

	getErr error
	setErr error
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (m *memCache) Get(_ context.Context, key string) (data []byte, ok bool, err error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func TestTiered_L1Hit(t *testing.T) {
	l1 := newMemCache()
	l2 := newMemCache()
	c := tiered.New(l1, l2, 5*time.Minute)
	ctx := context.Background()

	l1.data["gender.all"] = []byte(`[]`)

	val, found, err := c.Get(ctx, "gender.all")
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("expected L1 hit")
	}
	if string(val) != `[]` {
		t.Fatalf("unexpected value %s", val)
	}
}

func TestTiered_L2HitWithBackfill(t *testing.T) {
	l1 := newMemCache()
	l2 := newMemCache()
	c := tiered.New(l1, l2, 5*time.Minute)
	ctx := context.Background()

	l2.data["k"] = []byte("row")

	val, found, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("expected L2 hit")
	}
	if string(val) != "row" {
		t.Fatalf("unexpected value %s", val)
	}

	if got, ok := l1.data["k"]; !ok || string(got) != "row" {
		t.Fatalf("expected L1 backfill, got %q (present=%v)", got, ok)
	}
}

func TestTiered_L1ErrorFallsThrough(t *testing.T) {
	l1 := newMemCache()
	l1.getErr = errors.New("l1 broken")
	l2 := newMemCache()
	l2.data["k"] = []byte("row")
	c := tiered.New(l1, l2, 5*time.Minute)

	val, found, err := c.Get(context.Background(), "k")
	if err != nil {
		t.Fatalf("expected L2 to serve despite L1 error, got %v", err)
	}
	if !found || string(val) != "row" {
		t.Fatalf("expected L2 row, got %q (found=%v)", val, found)
	}
}

func TestTiered_Miss(t *testing.T) {
	c := tiered.New(newMemCache(), newMemCache(), 5*time.Minute)

	_, found, err := c.Get(context.Background(), "missing")
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Fatal("expected miss")
	}
}

func TestTiered_SetBoth(t *testing.T) {
	l1 := newMemCache()
	l2 := newMemCache()
	c := tiered.New(l1, l2, 5*time.Minute)

	if err := c.Set(context.Background(), "k", []byte("row"), time.Minute); err != nil {
		t.Fatal(err)
	}

	if _, ok := l1.data["k"]; !ok {
		t.Fatal("expected k in L1")
	}
	if _, ok := l2.data["k"]; !ok {
		t.Fatal("expected k in L2")
	}
}

func TestTiered_SetL2ErrorKeepsL1(t *testing.T) {
	l1 := newMemCache()
	l2 := newMemCache()
	l2.setErr = errors.New("l2 down")
	c := tiered.New(l1, l2, 5*time.Minute)

	err := c.Set(context.Background(), "k", []byte("row"), time.Minute)
	if err == nil {
		t.Fatal("expected error from L2")
	}
	if _, ok := l1.data["k"]; !ok {
		t.Fatal("expected L1 write to land before L2 failure")
	}
}

func TestTiered_DeleteBoth(t *testing.T) {
	l1 := newMemCache()
	l2 := newMemCache()
	c := tiered.New(l1, l2, 5*time.Minute)

	l1.data["k"] = []byte("row")
	l2.data["k"] = []byte("row")

	if err := c.Delete(context.Background(), "k"); err != nil {
		t.Fatal(err)
	}

	if _, ok := l1.data["k"]; ok {
		t.Fatal("expected k deleted from L1")
	}
	if _, ok := l2.data["k"]; ok {
		t.Fatal("expected k deleted from L2")
	}
}
