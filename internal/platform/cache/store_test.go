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

	store := NewStore[string](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "bracket", nil
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
			v, err := store.GetOrLoad(context.Background(), "season:20242025", loader, nil)
			if err != nil {
				errCh <- err
				return
			}
			if v != "bracket" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	var calls atomic.Int32

	failing := func(context.Context) (int, error) {
		calls.Add(1)
		return 0, errors.New("upstream down")
	}
	if _, err := store.GetOrLoad(context.Background(), "k", failing, nil); err == nil {
		t.Fatalf("expected loader error")
	}

	got, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (int, error) {
		calls.Add(1)
		return 7, nil
	}, nil)
	if err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}
	if got != 7 || calls.Load() != 2 {
		t.Fatalf("expected reload after error, got=%d calls=%d", got, calls.Load())
	}
}

func TestStore_ExpiresEntriesAfterTTL(t *testing.T) {
	t.Parallel()

	store := NewStore[string](30 * time.Second)
	now := time.Date(2025, 5, 4, 20, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "standings", "snapshot")
	if _, ok := store.Get(context.Background(), "standings"); !ok {
		t.Fatalf("expected cached value before expiry")
	}

	now = now.Add(31 * time.Second)
	if _, ok := store.Get(context.Background(), "standings"); ok {
		t.Fatalf("expected value to expire")
	}
}

func TestStore_GetOrLoad_KeepRejectsValue(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	var calls atomic.Int32
	loader := func(context.Context) (int, error) {
		return int(calls.Add(1)), nil
	}
	keepEven := func(v int) bool { return v%2 == 0 }

	first, err := store.GetOrLoad(context.Background(), "bracket", loader, keepEven)
	if err != nil || first != 1 {
		t.Fatalf("first load got=%d err=%v", first, err)
	}
	if _, ok := store.Get(context.Background(), "bracket"); ok {
		t.Fatalf("rejected value must not be stored")
	}

	second, err := store.GetOrLoad(context.Background(), "bracket", loader, keepEven)
	if err != nil || second != 2 {
		t.Fatalf("second load got=%d err=%v", second, err)
	}
	third, err := store.GetOrLoad(context.Background(), "bracket", loader, keepEven)
	if err != nil || third != 2 {
		t.Fatalf("expected kept value on third call, got=%d err=%v", third, err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("loader called %d times, want 2", got)
	}
}

func TestStore_GetOrLoad_CancelledCallerDoesNotFailJoinedCallers(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	started := make(chan struct{})
	release := make(chan struct{})
	loaderErr := make(chan error, 1)

	loader := func(ctx context.Context) (string, error) {
		close(started)
		<-release
		loaderErr <- ctx.Err()
		return "bracket", nil
	}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := store.GetOrLoad(firstCtx, "season:20242025", loader, nil)
		firstErr <- err
	}()
	<-started

	secondVal := make(chan string, 1)
	secondErr := make(chan error, 1)
	go func() {
		v, err := store.GetOrLoad(context.Background(), "season:20242025", loader, nil)
		secondVal <- v
		secondErr <- err
	}()

	cancelFirst()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancelled caller to return context.Canceled, got %v", err)
	}

	close(release)
	if err := <-loaderErr; err != nil {
		t.Fatalf("shared load must not see the first caller's cancellation: %v", err)
	}
	if err := <-secondErr; err != nil {
		t.Fatalf("joined caller error: %v", err)
	}
	if v := <-secondVal; v != "bracket" {
		t.Fatalf("unexpected joined value %q", v)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
