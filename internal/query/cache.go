// Package query is the shared read-side cache every panel goes through.
//
// One process-wide Cache holds one entry per Key. Entries are created on
// first fetch, deduplicate concurrent fetches into a single network call,
// and are marked stale by mutations via Invalidate. Invalidate and SetData
// are the only sanctioned write paths; nothing else may patch another
// panel's cached data.
package query

import (
	"context"
	"sync"
	"time"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Fetcher performs the network read for a key. It must return an error for
// non-2xx responses; an error-shaped body must never come back as data.
type Fetcher func(ctx context.Context) (any, error)

// Result is a point-in-time snapshot of one entry. On error, Data still
// carries the last known good value (if any) so views can keep rendering it.
type Result struct {
	Key       Key
	Status    Status
	Data      any
	Err       error
	FetchedAt time.Time
	Stale     bool
}

type entry struct {
	status    Status
	data      any
	err       error
	fetchedAt time.Time
	stale     bool

	// gen increments on every Invalidate. A fetch records the gen it started
	// under; if an invalidation lands while it is in flight, its result is
	// already stale when it completes.
	gen int

	// inflight is non-nil while a fetch is running and closed on completion;
	// concurrent fetchers for the same key wait on it instead of issuing a
	// second request.
	inflight chan struct{}

	observers    int
	lastObserved time.Time
}

type Cache struct {
	mu      sync.Mutex
	entries map[Key]*entry

	// ttl bounds how long an unobserved entry survives before Sweep drops it.
	ttl time.Duration
	now func() time.Time
}

const defaultTTL = 5 * time.Minute

type CacheOption func(*Cache)

func WithTTL(d time.Duration) CacheOption {
	return func(c *Cache) { c.ttl = d }
}

// WithClock replaces the time source; tests use this to force TTL expiry.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		entries: map[Key]*entry{},
		ttl:     defaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) ensureLocked(k Key) *entry {
	e, ok := c.entries[k]
	if !ok {
		e = &entry{status: StatusIdle}
		c.entries[k] = e
	}
	e.lastObserved = c.now()
	return e
}

// Fetch returns the cached value for k, or runs fn to populate it. Fresh
// successful entries are returned without a network call; stale or errored
// entries refetch. Concurrent callers share one in-flight request.
func (c *Cache) Fetch(ctx context.Context, k Key, fn Fetcher) (any, error) {
	for {
		c.mu.Lock()
		e := c.ensureLocked(k)

		if e.status == StatusSuccess && !e.stale {
			data := e.data
			c.mu.Unlock()
			return data, nil
		}

		if e.inflight != nil {
			done := e.inflight
			c.mu.Unlock()
			select {
			case <-done:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			c.mu.Lock()
			// Re-read the settled state. If an invalidation raced the fetch,
			// loop and refetch rather than serving a stale success.
			if e.status == StatusSuccess && !e.stale {
				data := e.data
				c.mu.Unlock()
				return data, nil
			}
			if e.status == StatusError {
				data, err := e.data, e.err
				c.mu.Unlock()
				return data, err
			}
			c.mu.Unlock()
			continue
		}

		done := make(chan struct{})
		e.inflight = done
		e.status = StatusLoading
		startGen := e.gen
		c.mu.Unlock()

		data, err := fn(ctx)

		c.mu.Lock()
		if err != nil {
			e.status = StatusError
			e.err = err
			// e.data deliberately kept: last known good stays visible.
		} else {
			e.status = StatusSuccess
			e.data = data
			e.err = nil
			e.fetchedAt = c.now()
			e.stale = e.gen != startGen
		}
		e.inflight = nil
		close(done)
		retData, retErr := e.data, e.err
		c.mu.Unlock()
		if err != nil {
			return retData, retErr
		}
		return data, nil
	}
}

// Peek snapshots the entry without fetching. ok is false when the key has
// never been observed.
func (c *Cache) Peek(k Key) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[k]
	if !ok {
		return Result{Key: k}, false
	}
	return Result{
		Key:       k,
		Status:    e.status,
		Data:      e.data,
		Err:       e.err,
		FetchedAt: e.fetchedAt,
		Stale:     e.stale,
	}, true
}

// Invalidate marks entries stale. The next Fetch of each key refetches; the
// caller is not blocked on that refetch (lazy refetch on next observation).
// Keys with no entry yet are a no-op.
func (c *Cache) Invalidate(keys ...Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		e, ok := c.entries[k]
		if !ok {
			continue
		}
		e.stale = true
		e.gen++
	}
}

// SetData installs a known-fresh value (e.g. the record a mutation just got
// back from the server) without a network round trip.
func (c *Cache) SetData(k Key, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.ensureLocked(k)
	e.status = StatusSuccess
	e.data = v
	e.err = nil
	e.stale = false
	e.fetchedAt = c.now()
	e.gen++
}

// Sweep drops entries no subscription observes whose TTL has elapsed.
// Entries with an in-flight fetch are never dropped.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	cutoff := c.now().Add(-c.ttl)
	dropped := 0
	for k, e := range c.entries {
		if e.observers > 0 || e.inflight != nil {
			continue
		}
		if e.lastObserved.Before(cutoff) {
			delete(c.entries, k)
			dropped++
		}
	}
	return dropped
}

// Len reports the number of live entries; used by the debug overlay.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// FetchAs is a typed convenience over Cache.Fetch.
func FetchAs[T any](ctx context.Context, c *Cache, k Key, fn func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.Fetch(ctx, k, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero T
		if v == nil {
			return zero, err
		}
		t, ok := v.(T)
		if !ok {
			return zero, err
		}
		return t, err
	}
	t, _ := v.(T)
	return t, nil
}
