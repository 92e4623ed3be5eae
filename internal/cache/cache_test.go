package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/oppbot/oppbot/internal/analyzer"
)

func newTestCache(t *testing.T, ttl time.Duration, maxEntries int) *Cache {
	t.Helper()
	c := New(Options{TTL: ttl, MaxEntries: maxEntries})
	t.Cleanup(func() { c.Close() })
	return c
}

func TestKey(t *testing.T) {
	day := time.Date(2025, 2, 25, 10, 30, 0, 0, time.UTC)

	t.Run("deterministic", func(t *testing.T) {
		k1 := Key("hiring a go developer", day)
		k2 := Key("hiring a go developer", day)
		if k1 != k2 {
			t.Errorf("Key not deterministic: %q != %q", k1, k2)
		}
	})

	t.Run("different text differs", func(t *testing.T) {
		k1 := Key("hiring a go developer", day)
		k2 := Key("grant applications open", day)
		if k1 == k2 {
			t.Errorf("different inputs produced same key: %q", k1)
		}
	})

	t.Run("different day differs", func(t *testing.T) {
		k1 := Key("hiring a go developer", day)
		k2 := Key("hiring a go developer", day.AddDate(0, 0, 1))
		if k1 == k2 {
			t.Errorf("same text on different days produced same key: %q", k1)
		}
	})

	t.Run("time of day ignored", func(t *testing.T) {
		k1 := Key("hiring", day)
		k2 := Key("hiring", day.Add(8*time.Hour))
		if k1 != k2 {
			t.Errorf("time of day changed key: %q != %q", k1, k2)
		}
	})

	t.Run("has prefix", func(t *testing.T) {
		k := Key("test", day)
		if k[:4] != "opp:" {
			t.Errorf("expected opp: prefix, got %q", k[:4])
		}
	})
}

func TestGetSet(t *testing.T) {
	c := newTestCache(t, time.Minute, 100)
	ctx := context.Background()
	key := Key("round-trip", time.Now())

	_, ok := c.Get(ctx, key)
	if ok {
		t.Error("expected cache miss on empty cache")
	}

	val := analyzer.Analysis{Title: "Go developer", Category: analyzer.CategoryJob, PriorityScore: 7.5}
	c.Set(ctx, key, val)

	got, ok := c.Get(ctx, key)
	if !ok {
		t.Fatal("expected cache hit after set")
	}
	if got.Title != "Go developer" || got.PriorityScore != 7.5 {
		t.Errorf("got %+v, want %+v", got, val)
	}
}

func TestExpiration(t *testing.T) {
	c := newTestCache(t, time.Millisecond, 100)
	ctx := context.Background()
	key := Key("expiry", time.Now())

	c.Set(ctx, key, analyzer.Analysis{Title: "temp"})
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get(ctx, key)
	if ok {
		t.Error("expected cache miss after TTL expiry")
	}
}

func TestEviction(t *testing.T) {
	c := newTestCache(t, time.Minute, 3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		key := Key(fmt.Sprintf("item-%d", i), time.Now())
		c.Set(ctx, key, analyzer.Analysis{Title: fmt.Sprintf("v%d", i)})
	}

	count := 0
	c.l1.Range(func(_, _ any) bool {
		count++
		return true
	})
	if count > 3 {
		t.Errorf("expected at most 3 entries after eviction, got %d", count)
	}
}

func TestStats(t *testing.T) {
	c := newTestCache(t, time.Minute, 100)
	ctx := context.Background()
	key := Key("stats", time.Now())

	c.Get(ctx, key)
	_, misses := c.Stats()
	if misses != 1 {
		t.Errorf("misses = %d, want 1", misses)
	}

	c.Set(ctx, key, analyzer.Analysis{Title: "x"})
	c.Get(ctx, key)

	hits, misses := c.Stats()
	if hits != 1 {
		t.Errorf("hits = %d, want 1", hits)
	}
	if misses != 1 {
		t.Errorf("misses = %d, want 1", misses)
	}
}

func TestNilCacheSafe(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("nil cache must miss")
	}
	c.Set(ctx, "k", analyzer.Analysis{})
	if hits, misses := c.Stats(); hits != 0 || misses != 0 {
		t.Errorf("nil cache stats = %d/%d, want 0/0", hits, misses)
	}
	if err := c.Close(); err != nil {
		t.Errorf("nil cache Close: %v", err)
	}
}
