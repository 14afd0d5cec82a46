package mutate

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"mineboard/internal/api"
	"mineboard/internal/form"
	"mineboard/internal/query"
)

func TestRun_ReentrantSubmitIsRejected(t *testing.T) {
	cache := query.NewCache()
	var calls int32
	release := make(chan struct{})

	cmd := NewCommand(cache, func(ctx context.Context, in string) (string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "ok", nil
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := cmd.Run(context.Background(), "first"); err != nil {
			t.Errorf("first run: %v", err)
		}
	}()

	// Wait until the first submit is pending, then try again.
	deadline := time.After(2 * time.Second)
	for cmd.Status() != StatusPending {
		select {
		case <-deadline:
			t.Fatalf("command never went pending")
		case <-time.After(time.Millisecond):
		}
	}

	if _, err := cmd.Run(context.Background(), "second"); !errors.Is(err, ErrInFlight) {
		t.Fatalf("expected ErrInFlight; got %v", err)
	}

	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected exactly 1 network call; got %d", got)
	}
	if cmd.Status() != StatusSuccess {
		t.Fatalf("expected success; got %v", cmd.Status())
	}
}

func TestRun_InvalidatesBeforeOnSuccess(t *testing.T) {
	cache := query.NewCache()
	listKey := query.NewKey("/api/admin/ads")
	cache.SetData(listKey, []string{"ad-1", "ad-2"})

	var observedStale bool
	cmd := NewCommand(cache,
		func(ctx context.Context, id string) (string, error) { return id, nil },
		Invalidates[string, string](listKey),
		OnSuccess[string, string](func(string) {
			// Anything the success path re-reads must already see the entry
			// marked stale.
			res, _ := cache.Peek(listKey)
			observedStale = res.Stale
		}),
	)

	if _, err := cmd.Run(context.Background(), "ad-1"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !observedStale {
		t.Fatalf("invalidation must be visible before onSuccess fires")
	}
}

func TestRun_DeleteThenListRefetches(t *testing.T) {
	cache := query.NewCache()
	listKey := query.NewKey("/api/admin/events")

	serverRecords := []string{"ev-1", "ev-2"}
	fetches := 0
	fetch := func(ctx context.Context) (any, error) {
		fetches++
		out := make([]string, len(serverRecords))
		copy(out, serverRecords)
		return out, nil
	}

	if _, err := cache.Fetch(context.Background(), listKey, fetch); err != nil {
		t.Fatalf("seed: %v", err)
	}

	del := NewCommand(cache,
		func(ctx context.Context, id string) (struct{}, error) {
			serverRecords = []string{"ev-2"}
			return struct{}{}, nil
		},
		Invalidates[string, struct{}](listKey),
	)
	if _, err := del.Run(context.Background(), "ev-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// No explicit refetch: the next read must still see the post-delete list.
	v, err := cache.Fetch(context.Background(), listKey, fetch)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	got := v.([]string)
	if len(got) != 1 || got[0] != "ev-2" {
		t.Fatalf("expected deleted record gone; got %v", got)
	}
	if fetches != 2 {
		t.Fatalf("expected exactly one refetch; got %d fetches", fetches)
	}
}

func TestRun_ErrorReportsAndKeepsKeys(t *testing.T) {
	cache := query.NewCache()
	listKey := query.NewKey("/api/admin/users")
	cache.SetData(listKey, "cached")

	boom := &api.ServerError{StatusCode: 422, Message: "email already taken"}
	var reported error
	cmd := NewCommand(cache,
		func(ctx context.Context, in string) (string, error) { return "", boom },
		Invalidates[string, string](listKey),
		OnError[string, string](func(err error) { reported = err }),
	)

	if _, err := cmd.Run(context.Background(), "x"); err == nil {
		t.Fatalf("expected error")
	}
	if reported != boom {
		t.Fatalf("onError got %v", reported)
	}
	if cmd.Status() != StatusError {
		t.Fatalf("status = %v", cmd.Status())
	}
	// Failed mutations must not invalidate: the cached list is untouched.
	res, _ := cache.Peek(listKey)
	if res.Stale {
		t.Fatalf("failed mutation must not mark the cache stale")
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"transport", &api.TransportError{Op: "GET", URL: "http://x", Err: errors.New("dial tcp: refused")}, KindTransport},
		{"server", &api.ServerError{StatusCode: 500, Message: "boom"}, KindServer},
		{"validation", &form.ValidationError{Fields: map[string]string{"name": "required"}}, KindValidation},
		{"unknown", errors.New("misc"), KindUnknown},
	}
	for _, tc := range cases {
		if got := Classify(tc.err); got != tc.want {
			t.Errorf("%s: Classify = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestUserMessage_ServerMessageVerbatim(t *testing.T) {
	err := &api.ServerError{StatusCode: 400, Message: "discount too large"}
	if got := UserMessage(err); got != "discount too large" {
		t.Fatalf("got %q", got)
	}
	tr := &api.TransportError{Op: "POST", URL: "http://x", Err: errors.New("dial tcp 10.0.0.1: i/o timeout")}
	if got := UserMessage(tr); got != "network error: the server could not be reached" {
		t.Fatalf("transport message leaked detail: %q", got)
	}
}
