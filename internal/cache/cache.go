// Package cache provides a 2-tier cache for analysis results:
// L1 in-memory + L2 Redis. L1 is fast but lost on restart, L2 survives.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oppbot/oppbot/internal/analyzer"
)

// Cache holds the L1 sync.Map plus an optional L2 Redis client.
type Cache struct {
	l1              sync.Map      // key → *entry
	rdb             *redis.Client // nil if Redis unavailable
	ttl             time.Duration
	maxEntries      int
	cleanupInterval time.Duration

	hits   atomic.Int64
	misses atomic.Int64

	stop chan struct{}
	once sync.Once
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

// Options configures a Cache. Zero values fall back to sane defaults.
type Options struct {
	RedisURL        string // empty disables L2
	TTL             time.Duration
	MaxEntries      int
	CleanupInterval time.Duration
}

// New builds the 2-tier cache. Redis failures only disable L2, never error.
func New(opts Options) *Cache {
	if opts.TTL <= 0 {
		opts.TTL = 15 * time.Minute
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = 1000
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = 5 * time.Minute
	}

	c := &Cache{
		ttl:             opts.TTL,
		maxEntries:      opts.MaxEntries,
		cleanupInterval: opts.CleanupInterval,
		stop:            make(chan struct{}),
	}

	if opts.RedisURL != "" {
		ropts, err := redis.ParseURL(opts.RedisURL)
		if err != nil {
			slog.Warn("cache: invalid redis URL, L2 disabled", slog.Any("error", err))
		} else {
			rdb := redis.NewClient(ropts)
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := rdb.Ping(ctx).Err(); err != nil {
				slog.Warn("cache: redis unreachable, L2 disabled", slog.Any("error", err))
			} else {
				c.rdb = rdb
				slog.Info("cache: L2 redis connected", slog.String("addr", ropts.Addr))
			}
		}
	}

	slog.Info("cache: initialized",
		slog.Duration("ttl", c.ttl),
		slog.Bool("redis", c.rdb != nil),
		slog.Int("max_entries", c.maxEntries))

	go c.cleanupLoop()
	return c
}

// Key builds a deterministic cache key from the opportunity text and the
// analysis date. Same text on a different day gets a different key because
// deadline tiers shift.
func Key(text string, day time.Time) string {
	joined := strings.Join([]string{text, day.UTC().Format("2006-01-02")}, "|")
	hash := sha256.Sum256([]byte(joined))
	return fmt.Sprintf("opp:%x", hash[:12]) // 24-char hex prefix
}

// Get tries L1, then L2. On L2 hit, populates L1.
func (c *Cache) Get(ctx context.Context, key string) (analyzer.Analysis, bool) {
	if c == nil {
		return analyzer.Analysis{}, false
	}

	if val, ok := c.l1.Load(key); ok {
		e := val.(*entry)
		if time.Now().Before(e.expiresAt) {
			var out analyzer.Analysis
			if json.Unmarshal(e.data, &out) == nil {
				slog.Debug("cache: L1 hit", slog.String("key", key))
				c.hits.Add(1)
				return out, true
			}
		}
		c.l1.Delete(key) // expired or corrupt
	}

	if c.rdb != nil {
		data, err := c.rdb.Get(ctx, key).Bytes()
		if err == nil {
			var out analyzer.Analysis
			if json.Unmarshal(data, &out) == nil {
				slog.Debug("cache: L2 hit", slog.String("key", key))
				c.hits.Add(1)
				c.l1.Store(key, &entry{data: data, expiresAt: time.Now().Add(c.ttl)})
				return out, true
			}
		}
	}

	c.misses.Add(1)
	return analyzer.Analysis{}, false
}

// Set stores the analysis in both L1 and L2.
func (c *Cache) Set(ctx context.Context, key string, a analyzer.Analysis) {
	if c == nil {
		return
	}
	data, err := json.Marshal(a)
	if err != nil {
		return
	}

	c.evictIfNeeded()

	c.l1.Store(key, &entry{data: data, expiresAt: time.Now().Add(c.ttl)})

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			slog.Debug("cache: L2 set failed", slog.Any("error", err))
		}
	}
}

// Stats returns current hit/miss counters.
func (c *Cache) Stats() (hits, misses int64) {
	if c == nil {
		return 0, 0
	}
	return c.hits.Load(), c.misses.Load()
}

// Close stops the cleanup goroutine and the L2 connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	c.once.Do(func() { close(c.stop) })
	if c.rdb != nil {
		return c.rdb.Close()
	}
	return nil
}

// evictIfNeeded removes entries when L1 exceeds maxEntries.
// Expired entries go first, then oldest by expiry if still over limit.
func (c *Cache) evictIfNeeded() {
	count := 0
	c.l1.Range(func(_, _ any) bool {
		count++
		return true
	})
	if count < c.maxEntries {
		return
	}

	now := time.Now()
	c.l1.Range(func(key, val any) bool {
		if e, ok := val.(*entry); ok && now.After(e.expiresAt) {
			c.l1.Delete(key)
			count--
		}
		return count >= c.maxEntries
	})
	if count < c.maxEntries {
		return
	}

	// Earlier expiry = older entry, since expiry = createdAt + ttl.
	var oldest struct {
		key any
		at  time.Time
	}
	for count >= c.maxEntries {
		oldest.key = nil
		oldest.at = now.Add(c.ttl + time.Hour)
		c.l1.Range(func(key, val any) bool {
			if e, ok := val.(*entry); ok && e.expiresAt.Before(oldest.at) {
				oldest.key = key
				oldest.at = e.expiresAt
			}
			return true
		})
		if oldest.key == nil {
			break
		}
		c.l1.Delete(oldest.key)
		count--
	}
}

func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now()
			c.l1.Range(func(key, val any) bool {
				if e, ok := val.(*entry); ok && now.After(e.expiresAt) {
					c.l1.Delete(key)
				}
				return true
			})
		}
	}
}
