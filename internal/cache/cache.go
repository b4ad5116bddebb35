// Package cache provides a content-addressed, TTL-bounded response cache for
// LLM text outputs. Entries are keyed by a deterministic fingerprint over every
// input that influences the output, so a one-character change in source text is
// a cache miss, never a stale hit.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

const (
	// DefaultTTL bounds how long a cached LLM result stays authoritative.
	DefaultTTL = time.Hour
	// DefaultCapacity bounds cache memory; oldest entries are evicted first.
	DefaultCapacity = 256
)

// Fingerprint computes a deterministic hash over an operation name and every
// parameter that affects its output.
func Fingerprint(operation string, parts ...string) string {
	h := sha256.New()
	h.Write([]byte(operation))
	for _, p := range parts {
		// Separator prevents ambiguity between ("ab","c") and ("a","bc").
		h.Write([]byte{0})
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

type entry struct {
	payload   any
	createdAt time.Time
	ttl       time.Duration
}

func (e *entry) expired(now time.Time) bool {
	return now.Sub(e.createdAt) > e.ttl
}

// Stats holds cache observability counters.
type Stats struct {
	Size      int   `json:"size"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
}

// Cache is a capacity-bounded in-memory response cache safe for concurrent use.
// Concurrent misses on the same fingerprint may both compute; racing writes are
// safe because the payload is a pure function of the fingerprint
// (last-writer-wins).
type Cache struct {
	mu       sync.Mutex
	entries  map[string]*entry
	capacity int
	nowFunc  func() time.Time

	hits      int64
	misses    int64
	evictions int64
}

// Config holds cache construction parameters.
type Config struct {
	Capacity int
}

// New creates a cache with the given capacity, or DefaultCapacity if zero.
func New(cfg *Config) *Cache {
	capacity := DefaultCapacity
	if cfg != nil && cfg.Capacity > 0 {
		capacity = cfg.Capacity
	}
	return &Cache{
		entries:  make(map[string]*entry),
		capacity: capacity,
		nowFunc:  time.Now,
	}
}

// GetOrCompute returns the cached payload for fingerprint when present and
// fresh, otherwise invokes compute and caches its result. Within a TTL window
// sequential callers invoke compute at most once. A compute error is returned
// uncached.
func (c *Cache) GetOrCompute(fingerprint string, ttl time.Duration, compute func() (any, error)) (any, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c.mu.Lock()
	now := c.nowFunc()
	if e, ok := c.entries[fingerprint]; ok && !e.expired(now) {
		c.hits++
		payload := e.payload
		c.mu.Unlock()
		return payload, nil
	}
	c.misses++
	c.mu.Unlock()

	// Compute outside the lock: LLM calls are slow and concurrent misses on
	// the same fingerprint are allowed to race.
	payload, err := compute()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[fingerprint] = &entry{payload: payload, createdAt: c.nowFunc(), ttl: ttl}
	c.cleanupLocked()
	c.mu.Unlock()

	return payload, nil
}

// Get returns the cached payload when present and fresh.
func (c *Cache) Get(fingerprint string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[fingerprint]
	if !ok || e.expired(c.nowFunc()) {
		c.misses++
		return nil, false
	}
	c.hits++
	return e.payload, true
}

// Set stores a payload unconditionally. Used for validated partial results
// from cancelled calls, which are idempotent by fingerprint.
func (c *Cache) Set(fingerprint string, ttl time.Duration, payload any) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[fingerprint] = &entry{payload: payload, createdAt: c.nowFunc(), ttl: ttl}
	c.cleanupLocked()
}

// Clear removes every entry. Intended for tests.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}

// GetStats returns a snapshot of the cache counters.
func (c *Cache) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Size:      len(c.entries),
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

// cleanupLocked drops expired entries, then evicts oldest-first until the
// cache fits its capacity bound. Caller must hold c.mu.
func (c *Cache) cleanupLocked() {
	now := c.nowFunc()
	for fp, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, fp)
		}
	}

	for len(c.entries) > c.capacity {
		oldestKey := ""
		var oldest time.Time
		for fp, e := range c.entries {
			if oldestKey == "" || e.createdAt.Before(oldest) {
				oldestKey = fp
				oldest = e.createdAt
			}
		}
		delete(c.entries, oldestKey)
		c.evictions++
	}
}
