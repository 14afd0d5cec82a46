// Package mutate wraps every create/update/delete the panels issue. A
// Command serializes submissions (one in flight, the rest rejected), and on
// success invalidates the query keys it declares before any success callback
// runs, so a dialog closing on success always re-renders against a
// stale-marked cache, never a pre-mutation value.
package mutate

import (
	"context"
	"sync"

	"mineboard/internal/query"
)

type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

type Command[I, R any] struct {
	cache *query.Cache
	run   func(ctx context.Context, input I) (R, error)

	// invalidates derives the affected keys from the input (e.g. the list key
	// plus the record key for an update).
	invalidates func(input I) []query.Key

	onSuccess func(R)
	onError   func(error)

	mu     sync.Mutex
	status Status
	err    error
}

type Option[I, R any] func(*Command[I, R])

// Invalidates declares a fixed key set.
func Invalidates[I, R any](keys ...query.Key) Option[I, R] {
	return func(c *Command[I, R]) {
		c.invalidates = func(I) []query.Key { return keys }
	}
}

// InvalidatesFunc derives the key set per input.
func InvalidatesFunc[I, R any](fn func(input I) []query.Key) Option[I, R] {
	return func(c *Command[I, R]) { c.invalidates = fn }
}

func OnSuccess[I, R any](fn func(R)) Option[I, R] {
	return func(c *Command[I, R]) { c.onSuccess = fn }
}

func OnError[I, R any](fn func(error)) Option[I, R] {
	return func(c *Command[I, R]) { c.onError = fn }
}

func NewCommand[I, R any](cache *query.Cache, run func(ctx context.Context, input I) (R, error), opts ...Option[I, R]) *Command[I, R] {
	c := &Command[I, R]{cache: cache, run: run}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Command[I, R]) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Err returns the failure of the most recent completed Run, if any.
func (c *Command[I, R]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Run executes the mutation. A call while a prior Run is still pending is
// rejected with ErrInFlight and issues no network request; the UI disables
// the submit control on StatusPending, and this guard backs that up.
func (c *Command[I, R]) Run(ctx context.Context, input I) (R, error) {
	var zero R

	c.mu.Lock()
	if c.status == StatusPending {
		c.mu.Unlock()
		return zero, ErrInFlight
	}
	c.status = StatusPending
	c.err = nil
	c.mu.Unlock()

	result, err := c.run(ctx, input)

	if err != nil {
		c.mu.Lock()
		c.status = StatusError
		c.err = err
		c.mu.Unlock()
		if c.onError != nil {
			c.onError(err)
		}
		return zero, err
	}

	// Invalidation happens before the status flip and before onSuccess, so
	// anything the success path re-reads observes the stale marking.
	if c.cache != nil && c.invalidates != nil {
		c.cache.Invalidate(c.invalidates(input)...)
	}

	c.mu.Lock()
	c.status = StatusSuccess
	c.mu.Unlock()
	if c.onSuccess != nil {
		c.onSuccess(result)
	}
	return result, nil
}

// Reset returns a settled command to idle so the owning dialog can reuse it
// for the next open. Pending commands are left alone.
func (c *Command[I, R]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == StatusPending {
		return
	}
	c.status = StatusIdle
	c.err = nil
}
