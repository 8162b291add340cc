// Package cache provides a process-lifetime memo cache for expensive lookups:
// url -> extracted text and lookup key -> resolved identifier. Entries are
// written once and never evicted; a research run is bounded, so growth is too.
package cache

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/singleflight"
)

// ErrNegative is returned by Do when the key has a recorded negative entry,
// i.e. a previous lookup ran and found nothing. It prevents re-fetching known
// misses within a run.
var ErrNegative = eris.New("cache: negative entry")

type entry struct {
	value string
	ok    bool // false marks a negative entry ("looked up, not found")
}

// Cache is a concurrency-safe string cache with single-flight semantics:
// two concurrent computations for the same key collapse into one.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[string]entry)}
}

// Lookup returns the cached value for key. found reports a positive entry;
// seen reports that any entry exists, including a negative one. A caller must
// not re-fetch when seen is true.
func (c *Cache) Lookup(key string) (value string, found bool, seen bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return "", false, false
	}
	return e.value, e.ok, true
}

// Put records a positive entry for key.
func (c *Cache) Put(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, ok: true}
}

// PutNegative records that key was looked up and nothing was found.
func (c *Cache) PutNegative(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{}
}

// Len returns the number of entries, negative entries included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Do returns the cached value for key, computing it at most once across
// concurrent callers. A cache hit never invokes fn. Successful results are
// cached; empty results are cached as negative entries and subsequent calls
// return ErrNegative without computing. Errors from fn are not cached.
func (c *Cache) Do(ctx context.Context, key string, fn func(ctx context.Context) (string, error)) (string, error) {
	if v, found, seen := c.Lookup(key); seen {
		if !found {
			return "", ErrNegative
		}
		return v, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// Re-check under the flight: another caller may have stored the
		// entry between our Lookup and Do.
		if v, found, seen := c.Lookup(key); seen {
			if !found {
				return "", ErrNegative
			}
			return v, nil
		}
		value, err := fn(ctx)
		if err != nil {
			return "", err
		}
		if value == "" {
			c.PutNegative(key)
			return "", ErrNegative
		}
		c.Put(key, value)
		return value, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
