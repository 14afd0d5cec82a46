package query

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func waitResult(t *testing.T, sub *Subscription) Result {
	t.Helper()
	select {
	case res := <-sub.Updates():
		return res
	case <-time.After(2 * time.Second):
		t.Fatalf("no update delivered")
		return Result{}
	}
}

func TestSubscribe_DisabledStaysIdle(t *testing.T) {
	c := NewCache()
	var calls int32
	sub := c.Subscribe(NewKey("/api/admin/kyc"), func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return nil, nil
	}, Options{Enabled: false})
	defer sub.Close()

	time.Sleep(50 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Fatalf("disabled subscription issued %d requests", got)
	}
	res, _ := c.Peek(sub.Key())
	if res.Status != StatusIdle {
		t.Fatalf("expected idle; got %v", res.Status)
	}
}

func TestSubscribe_EnableTriggersFetch(t *testing.T) {
	c := NewCache()
	var calls int32
	sub := c.Subscribe(NewKey("/api/admin/secrets"), func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return "s", nil
	}, Options{Enabled: false})
	defer sub.Close()

	sub.SetEnabled(true)
	res := waitResult(t, sub)
	if res.Status != StatusSuccess || res.Data != "s" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected 1 call; got %d", got)
	}
}

func TestSubscribe_RefetchForcesNetwork(t *testing.T) {
	c := NewCache()
	var calls int32
	sub := c.Subscribe(NewKey("/api/admin/mining/stats"), func(ctx context.Context) (any, error) {
		return atomic.AddInt32(&calls, 1), nil
	}, Options{Enabled: true})
	defer sub.Close()

	if res := waitResult(t, sub); res.Data != int32(1) {
		t.Fatalf("first result: %+v", res)
	}
	sub.Refetch()
	if res := waitResult(t, sub); res.Data != int32(2) {
		t.Fatalf("expected refetched value; got %+v", res)
	}
}

func TestSubscribe_IntervalRefetchesWhileEnabled(t *testing.T) {
	c := NewCache()
	var calls int32
	sub := c.Subscribe(NewKey("/api/admin/mining/stats"), func(ctx context.Context) (any, error) {
		return atomic.AddInt32(&calls, 1), nil
	}, Options{Enabled: true, RefetchInterval: 20 * time.Millisecond})
	defer sub.Close()

	waitResult(t, sub)
	// The interval re-observes the (fresh) entry; it does not force staleness,
	// so without an invalidation the call count stays put.
	time.Sleep(80 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("interval should reuse fresh cache; got %d calls", got)
	}

	c.Invalidate(sub.Key())
	deadline := time.After(2 * time.Second)
	for atomic.LoadInt32(&calls) < 2 {
		select {
		case <-deadline:
			t.Fatalf("interval never refetched after invalidation")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestSubscribe_CloseStopsDelivery(t *testing.T) {
	c := NewCache()
	release := make(chan struct{})
	sub := c.Subscribe(NewKey("/api/admin/users"), func(ctx context.Context) (any, error) {
		<-release
		return "late", nil
	}, Options{Enabled: true})

	time.Sleep(20 * time.Millisecond)
	sub.Close()
	close(release)
	time.Sleep(50 * time.Millisecond)

	select {
	case res := <-sub.Updates():
		t.Fatalf("update delivered after Close: %+v", res)
	default:
	}

	// The underlying fetch still settled the cache for other subscribers.
	res, ok := c.Peek(sub.Key())
	if !ok || res.Status != StatusSuccess || res.Data != "late" {
		t.Fatalf("expected settled cache entry; got %+v", res)
	}
}

func TestSubscribe_CloseIsIdempotent(t *testing.T) {
	c := NewCache()
	sub := c.Subscribe(NewKey("/api/admin/ads"), func(ctx context.Context) (any, error) {
		return nil, nil
	}, Options{})
	sub.Close()
	sub.Close()
}
