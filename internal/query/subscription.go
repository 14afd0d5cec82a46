package query

import (
	"context"
	"sync"
	"time"
)

// Options configures a Subscription.
type Options struct {
	// Enabled gates execution: a disabled subscription stays idle and issues
	// no requests (tab-gated panels). Flip it with SetEnabled.
	Enabled bool

	// RefetchInterval re-runs the fetch on a timer while the subscription is
	// open and enabled. Zero disables the timer.
	RefetchInterval time.Duration
}

// Subscription is one view's handle on a cached key. Results are delivered
// on Updates until Close; after Close nothing is ever delivered again, so a
// torn-down view cannot be poked by a late response. Close does not abort an
// in-flight request; the cache still settles it for other subscribers.
type Subscription struct {
	cache *Cache
	key   Key
	fetch Fetcher

	interval time.Duration

	mu      sync.Mutex
	enabled bool
	closed  bool

	updates chan Result
	kick    chan struct{}
	done    chan struct{}
}

// Subscribe registers an observer for k. The first fetch runs immediately
// when opts.Enabled is true.
func (c *Cache) Subscribe(k Key, fn Fetcher, opts Options) *Subscription {
	s := &Subscription{
		cache:    c,
		key:      k,
		fetch:    fn,
		interval: opts.RefetchInterval,
		enabled:  opts.Enabled,
		updates:  make(chan Result, 8),
		kick:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}

	c.mu.Lock()
	e := c.ensureLocked(k)
	e.observers++
	c.mu.Unlock()

	go s.loop()
	if opts.Enabled {
		s.poke()
	}
	return s
}

// Updates delivers result snapshots. The channel is never closed while the
// subscription is open; ranging over it should select against application
// shutdown as well.
func (s *Subscription) Updates() <-chan Result { return s.updates }

func (s *Subscription) Key() Key { return s.key }

// Done is closed when the subscription closes; listeners blocked on Updates
// select on it to exit.
func (s *Subscription) Done() <-chan struct{} { return s.done }

// Refetch forces a network fetch now (manual refresh): the entry is
// invalidated first so a fresh cached value does not short-circuit it.
// No-op when disabled/closed.
func (s *Subscription) Refetch() {
	s.mu.Lock()
	if s.closed || !s.enabled {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	s.cache.Invalidate(s.key)
	s.poke()
}

// Observe schedules a fetch pass without forcing staleness: a fresh entry
// is served from cache, a stale one (e.g. just invalidated by a mutation)
// refetches. This is the lazy-refetch trigger a view calls after a mutation
// settles.
func (s *Subscription) Observe() {
	s.mu.Lock()
	if s.closed || !s.enabled {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	s.poke()
}

// poke schedules a fetch pass without forcing staleness; a fresh cache entry
// satisfies it without a network call.
func (s *Subscription) poke() {
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

// SetEnabled flips the activation gate. Enabling triggers an immediate
// fetch; disabling stops the interval timer until re-enabled.
func (s *Subscription) SetEnabled(enabled bool) {
	s.mu.Lock()
	if s.closed || s.enabled == enabled {
		s.mu.Unlock()
		return
	}
	s.enabled = enabled
	s.mu.Unlock()
	if enabled {
		s.poke()
	}
}

// Close tears the subscription down: the interval timer stops and no further
// results are delivered. Idempotent.
func (s *Subscription) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	close(s.done)

	s.cache.mu.Lock()
	if e, ok := s.cache.entries[s.key]; ok && e.observers > 0 {
		e.observers--
	}
	s.cache.mu.Unlock()
}

func (s *Subscription) loop() {
	var tick <-chan time.Time
	var ticker *time.Ticker
	if s.interval > 0 {
		ticker = time.NewTicker(s.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-s.done:
			return
		case <-s.kick:
			if s.active() {
				s.runFetch()
			}
		case <-tick:
			if s.active() {
				s.runFetch()
			}
		}
	}
}

func (s *Subscription) active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled && !s.closed
}

func (s *Subscription) runFetch() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, _ = s.cache.Fetch(ctx, s.key, s.fetch)
	res, _ := s.cache.Peek(s.key)

	// Deliver unless the subscription closed while the fetch was in flight.
	// A full buffer drops the snapshot rather than blocking the loop; the
	// consumer can always Peek the latest state.
	select {
	case <-s.done:
		return
	default:
	}
	select {
	case s.updates <- res:
	default:
	}
}
