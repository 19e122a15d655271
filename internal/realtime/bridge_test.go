package realtime

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

// fakeListener delivers notifications pushed through a channel and fails
// when the channel closes.
type fakeListener struct {
	mu       sync.Mutex
	listened []string
	notify   chan string
}

func (f *fakeListener) Listen(_ context.Context, channel string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listened = append(f.listened, channel)
	return nil
}

func (f *fakeListener) WaitForNotification(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case ch, ok := <-f.notify:
		if !ok {
			return "", context.DeadlineExceeded
		}
		return ch, nil
	}
}

func (f *fakeListener) Close(context.Context) error { return nil }

func (f *fakeListener) channels() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.listened...)
}

func TestBridgeDispatchesToSubscribedTable(t *testing.T) {
	listener := &fakeListener{notify: make(chan string, 4)}
	b := New(func(context.Context) (Listener, error) { return listener, nil }, zap.NewNop())

	fired := make(chan string, 4)
	b.Subscribe("current_stock", func() { fired <- "current_stock" })
	b.Subscribe("deal_data", func() { fired <- "deal_data" })

	b.Start(context.Background())
	defer b.Close()

	listener.notify <- "deal_data_changes"
	select {
	case got := <-fired:
		if got != "deal_data" {
			t.Fatalf("dispatched to %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not dispatched")
	}
}

func TestBridgeListensPerSubscribedTable(t *testing.T) {
	listener := &fakeListener{notify: make(chan string)}
	b := New(func(context.Context) (Listener, error) { return listener, nil }, zap.NewNop())

	b.Subscribe("current_stock", func() {})
	b.Start(context.Background())
	defer b.Close()

	deadline := time.After(2 * time.Second)
	for {
		for _, ch := range listener.channels() {
			if ch == "current_stock_changes" {
				return
			}
		}
		select {
		case <-deadline:
			t.Fatalf("channel never listened, got %v", listener.channels())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestBridgeStaleWhileDisconnected(t *testing.T) {
	listener := &fakeListener{notify: make(chan string, 1)}
	var mu sync.Mutex
	connects := 0
	connect := func(context.Context) (Listener, error) {
		mu.Lock()
		defer mu.Unlock()
		connects++
		return listener, nil
	}

	b := New(connect, zap.NewNop())
	staleTransitions := make(chan bool, 8)
	b.SetStaleHandler(func(v bool) { staleTransitions <- v })

	b.Subscribe("current_stock", func() {})
	b.Start(context.Background())
	defer b.Close()

	// Kill the stream: the bridge must flag stale, then reconnect and clear.
	close(listener.notify)

	sawStale, sawRecovered := false, false
	deadline := time.After(5 * time.Second)
	for !sawStale || !sawRecovered {
		select {
		case v := <-staleTransitions:
			if v {
				sawStale = true
			} else if sawStale {
				sawRecovered = true
			}
		case <-deadline:
			t.Fatalf("stale=%v recovered=%v", sawStale, sawRecovered)
		}
	}
}

func TestUnsubscribeIdempotent(t *testing.T) {
	b := New(nil, zap.NewNop())
	sub := b.Subscribe("current_stock", func() {})
	sub.Unsubscribe()
	sub.Unsubscribe() // second call is a no-op

	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.subs) != 0 {
		t.Fatalf("subscription registry not emptied: %v", b.subs)
	}
}

func TestBridgeDisabledWithoutConnector(t *testing.T) {
	b := New(nil, zap.NewNop())
	b.Start(context.Background())
	b.Close() // must not hang
	if b.Stale() {
		t.Fatal("disabled bridge must not report stale")
	}
}

func TestNextBackoffCapped(t *testing.T) {
	if nextBackoff(0) != time.Second {
		t.Errorf("first delay = %v", nextBackoff(0))
	}
	if nextBackoff(3) != 8*time.Second {
		t.Errorf("fourth delay = %v", nextBackoff(3))
	}
	for _, attempt := range []int{5, 6, 20, 63} {
		if d := nextBackoff(attempt); d != 30*time.Second {
			t.Errorf("attempt %d: delay = %v, want capped 30s", attempt, d)
		}
	}
}
