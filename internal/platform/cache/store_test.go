package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := New[string](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "table", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "standings:lg-1", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != "table" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_Expiry(t *testing.T) {
	store := New[int](time.Minute)
	now := time.Date(2024, 9, 1, 19, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "k", 7)
	if v, ok := store.Get(context.Background(), "k"); !ok || v != 7 {
		t.Fatalf("expected cached value, got %d %v", v, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expected expired entry")
	}
	if store.Len() != 0 {
		t.Fatalf("expired entry should be evicted")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	store := New[int](0)
	ctx := context.Background()
	store.Set(ctx, "standings:lg-1", 1)
	store.Set(ctx, "standings:lg-2", 2)
	store.Set(ctx, "overview", 3)

	store.DeletePrefix(ctx, "standings:")

	if store.Len() != 1 {
		t.Fatalf("expected 1 entry left, got %d", store.Len())
	}
	if _, ok := store.Get(ctx, "overview"); !ok {
		t.Fatalf("unrelated key must survive")
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	store := New[int](time.Minute)
	var calls atomic.Int32
	loader := func(context.Context) (int, error) {
		if calls.Add(1) == 1 {
			return 0, errUnexpectedValue
		}
		return 42, nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); !errors.Is(err, errUnexpectedValue) {
		t.Fatalf("expected loader error, got %v", err)
	}
	v, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil || v != 42 {
		t.Fatalf("expected reload after error, got %d %v", v, err)
	}
}

func TestDisabledStore_AlwaysLoads(t *testing.T) {
	store := Disabled[int]()
	var calls atomic.Int32
	loader := func(context.Context) (int, error) {
		return int(calls.Add(1)), nil
	}

	for i := 0; i < 3; i++ {
		if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 loads, got %d", calls.Load())
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")

func TestStore_GetOrLoad_DropsValueLoadedBeforeDelete(t *testing.T) {
	tests := []struct {
		name       string
		invalidate func(store *Store[string])
	}{
		{name: "delete", invalidate: func(store *Store[string]) {
			store.Delete(context.Background(), "standings:lg-1")
		}},
		{name: "delete prefix", invalidate: func(store *Store[string]) {
			store.DeletePrefix(context.Background(), "standings:")
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := New[string](time.Minute)
			started := make(chan struct{})
			release := make(chan struct{})

			done := make(chan string, 1)
			go func() {
				v, _ := store.GetOrLoad(context.Background(), "standings:lg-1", func(context.Context) (string, error) {
					close(started)
					<-release
					return "stale", nil
				})
				done <- v
			}()

			<-started
			tc.invalidate(store)
			close(release)

			if v := <-done; v != "stale" {
				t.Fatalf("expected in-flight caller to get its loaded value, got %q", v)
			}
			if _, ok := store.Get(context.Background(), "standings:lg-1"); ok {
				t.Fatalf("expected value loaded before invalidation not to be cached")
			}

			v, err := store.GetOrLoad(context.Background(), "standings:lg-1", func(context.Context) (string, error) {
				return "fresh", nil
			})
			if err != nil || v != "fresh" {
				t.Fatalf("expected fresh reload, got %q %v", v, err)
			}
			if cached, ok := store.Get(context.Background(), "standings:lg-1"); !ok || cached != "fresh" {
				t.Fatalf("expected fresh value cached, got %q %v", cached, ok)
			}
		})
	}
}
