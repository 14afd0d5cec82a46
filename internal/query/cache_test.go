package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestFetch_DeduplicatesConcurrentCallers(t *testing.T) {
	c := NewCache()
	k := NewKey("/api/admin/ads")

	var calls int32
	release := make(chan struct{})
	fn := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return []string{"ad-1"}, nil
	}

	const n = 8
	var wg sync.WaitGroup
	results := make([]any, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Fetch(context.Background(), k, fn)
			if err != nil {
				t.Errorf("fetch %d: %v", i, err)
			}
			results[i] = v
		}(i)
	}

	// Let all goroutines pile onto the in-flight request before releasing.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected 1 network call; got %d", got)
	}
	for i, v := range results {
		vs, ok := v.([]string)
		if !ok || len(vs) != 1 || vs[0] != "ad-1" {
			t.Fatalf("result %d: %#v", i, v)
		}
	}
}

func TestFetch_FreshSuccessSkipsNetwork(t *testing.T) {
	c := NewCache()
	k := NewKey("/api/admin/events")

	var calls int
	fn := func(ctx context.Context) (any, error) {
		calls++
		return calls, nil
	}

	for i := 0; i < 3; i++ {
		if _, err := c.Fetch(context.Background(), k, fn); err != nil {
			t.Fatalf("fetch: %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected 1 call; got %d", calls)
	}
}

func TestInvalidate_NextReadRefetches(t *testing.T) {
	c := NewCache()
	k := NewKey("/api/admin/token-packages")

	var calls int
	fn := func(ctx context.Context) (any, error) {
		calls++
		return calls, nil
	}

	v, _ := c.Fetch(context.Background(), k, fn)
	if v.(int) != 1 {
		t.Fatalf("first fetch: %v", v)
	}

	c.Invalidate(k)

	v, _ = c.Fetch(context.Background(), k, fn)
	if v.(int) != 2 {
		t.Fatalf("expected refetched value after invalidate; got %v", v)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls; got %d", calls)
	}
}

func TestInvalidate_DuringInFlightLeavesEntryStale(t *testing.T) {
	c := NewCache()
	k := NewKey("/api/admin/users")

	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_, _ = c.Fetch(context.Background(), k, func(ctx context.Context) (any, error) {
			close(started)
			<-release
			return "pre-mutation", nil
		})
	}()

	<-started
	c.Invalidate(k)
	close(release)

	// The racing fetch settles, but its result must already be stale.
	deadline := time.After(2 * time.Second)
	for {
		res, ok := c.Peek(k)
		if ok && res.Status == StatusSuccess {
			if !res.Stale {
				t.Fatalf("expected stale result after mid-flight invalidation")
			}
			return
		}
		select {
		case <-deadline:
			t.Fatalf("fetch never settled")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestFetch_ErrorKeepsLastKnownGood(t *testing.T) {
	c := NewCache()
	k := NewKey("/api/admin/ads")

	fail := false
	boom := errors.New("connection refused")
	fn := func(ctx context.Context) (any, error) {
		if fail {
			return nil, boom
		}
		return "good", nil
	}

	if _, err := c.Fetch(context.Background(), k, fn); err != nil {
		t.Fatalf("seed fetch: %v", err)
	}

	fail = true
	c.Invalidate(k)
	v, err := c.Fetch(context.Background(), k, fn)
	if !errors.Is(err, boom) {
		t.Fatalf("expected fetch error; got %v", err)
	}
	if v != "good" {
		t.Fatalf("expected stale data preserved alongside error; got %#v", v)
	}

	res, ok := c.Peek(k)
	if !ok || res.Status != StatusError {
		t.Fatalf("expected error status; got %+v", res)
	}
	if res.Data != "good" {
		t.Fatalf("expected last known good in snapshot; got %#v", res.Data)
	}
}

func TestSetData_InstallsFreshValue(t *testing.T) {
	c := NewCache()
	k := NewKey("/api/admin/branding")

	c.SetData(k, "served")
	var calls int
	v, err := c.Fetch(context.Background(), k, func(ctx context.Context) (any, error) {
		calls++
		return "network", nil
	})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if v != "served" || calls != 0 {
		t.Fatalf("expected SetData value without network; got %v calls=%d", v, calls)
	}
}

func TestSweep_DropsOnlyExpiredUnobserved(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	c := NewCache(WithTTL(time.Minute), WithClock(clock))

	old := NewKey("/api/admin/ads")
	fresh := NewKey("/api/admin/events")
	observed := NewKey("/api/admin/users")

	c.SetData(old, 1)
	c.SetData(fresh, 2)
	sub := c.Subscribe(observed, func(ctx context.Context) (any, error) { return 3, nil }, Options{})
	defer sub.Close()

	now = now.Add(2 * time.Minute)
	c.SetData(fresh, 2) // re-observe

	if dropped := c.Sweep(); dropped != 1 {
		t.Fatalf("expected 1 dropped entry; got %d", dropped)
	}
	if _, ok := c.Peek(old); ok {
		t.Fatalf("expected expired entry gone")
	}
	if _, ok := c.Peek(fresh); !ok {
		t.Fatalf("expected re-observed entry kept")
	}
	if _, ok := c.Peek(observed); !ok {
		t.Fatalf("expected observed entry kept")
	}
}

func TestKey_Identity(t *testing.T) {
	a := NewKey("/api/admin/kyc", "status=pending")
	b := NewKey("/api/admin/kyc", "status=pending")
	d := NewKey("/api/admin/kyc", "status=approved")
	if a != b {
		t.Fatalf("structurally equal keys must be equal")
	}
	if a == d {
		t.Fatalf("different params must differ")
	}
	// Params must not collapse into the path.
	if NewKey("/a", "b/c") == NewKey("/a/b", "c") {
		t.Fatalf("path/param boundary lost")
	}
}
