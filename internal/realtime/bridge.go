package realtime

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const changeSuffix = "_changes"

// Listener is one notification connection. The production implementation
// wraps a dedicated pgx connection; tests script their own.
type Listener interface {
	Listen(ctx context.Context, channel string) error
	WaitForNotification(ctx context.Context) (channel string, err error)
	Close(ctx context.Context) error
}

// ConnectFunc opens a fresh Listener. A nil ConnectFunc disables the
// bridge entirely (simulation mode).
type ConnectFunc func(ctx context.Context) (Listener, error)

// Bridge multiplexes table change notifications onto per-table callbacks.
// It holds a single listener connection, re-established with capped
// exponential backoff; while disconnected the bridge reports itself stale.
type Bridge struct {
	connect ConnectFunc
	log     *zap.Logger
	onStale func(bool)

	mu     sync.Mutex
	subs   map[string]map[int]func()
	nextID int

	resync chan struct{}
	stale  atomic.Bool
	cancel context.CancelFunc
	done   chan struct{}
}

func New(connect ConnectFunc, log *zap.Logger) *Bridge {
	return &Bridge{
		connect: connect,
		log:     log,
		subs:    make(map[string]map[int]func()),
		resync:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

// SetStaleHandler registers a callback invoked on every staleness
// transition. Must be called before Start.
func (b *Bridge) SetStaleHandler(fn func(bool)) { b.onStale = fn }

// Stale reports whether the bridge is currently disconnected from the
// notification channel while subscriptions exist.
func (b *Bridge) Stale() bool { return b.stale.Load() }

// Start runs the listener loop until Close or context cancellation.
func (b *Bridge) Start(ctx context.Context) {
	if b.connect == nil {
		close(b.done)
		return
	}
	ctx, b.cancel = context.WithCancel(ctx)
	go func() {
		defer close(b.done)
		b.run(ctx)
	}()
}

// Close stops the listener loop. Open subscription handles stay safe to
// unsubscribe afterwards.
func (b *Bridge) Close() {
	if b.cancel != nil {
		b.cancel()
	}
	<-b.done
}

// Subscription is one table callback registration.
type Subscription struct {
	bridge *Bridge
	table  string
	id     int
	once   sync.Once
}

// Subscribe registers onChange for every insert/update/delete notification
// on the table's channel. The callback receives no payload: collections
// refresh by refetching.
func (b *Bridge) Subscribe(table string, onChange func()) *Subscription {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	if b.subs[table] == nil {
		b.subs[table] = make(map[int]func())
	}
	b.subs[table][id] = onChange
	b.mu.Unlock()

	b.nudge()
	return &Subscription{bridge: b, table: table, id: id}
}

// Unsubscribe removes the registration. Safe to call more than once and
// safe after the bridge is closed.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		b := s.bridge
		b.mu.Lock()
		if handlers := b.subs[s.table]; handlers != nil {
			delete(handlers, s.id)
			if len(handlers) == 0 {
				delete(b.subs, s.table)
			}
		}
		b.mu.Unlock()
		b.nudge()
	})
}

// nudge asks the listener loop to resynchronize its channel set.
func (b *Bridge) nudge() {
	select {
	case b.resync <- struct{}{}:
	default:
	}
}

func (b *Bridge) channels() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.subs))
	for table := range b.subs {
		out = append(out, table+changeSuffix)
	}
	return out
}

func (b *Bridge) dispatch(channel string) {
	table := strings.TrimSuffix(channel, changeSuffix)
	b.mu.Lock()
	handlers := make([]func(), 0, len(b.subs[table]))
	for _, fn := range b.subs[table] {
		handlers = append(handlers, fn)
	}
	b.mu.Unlock()
	for _, fn := range handlers {
		fn()
	}
}

func (b *Bridge) setStale(v bool) {
	if b.stale.Swap(v) != v && b.onStale != nil {
		b.onStale(v)
	}
}

// errResubscribe signals that the channel set changed and the connection
// should be rebuilt without being treated as a failure.
var errResubscribe = errors.New("resubscribe")

func (b *Bridge) run(ctx context.Context) {
	attempt := 0
	for ctx.Err() == nil {
		listener, err := b.connect(ctx)
		if err != nil {
			b.setStale(true)
			b.log.Error("notification connect failed", zap.Error(err))
			if !sleepCtx(ctx, nextBackoff(attempt)) {
				return
			}
			attempt++
			continue
		}

		if err := b.listenAll(ctx, listener); err != nil {
			listener.Close(context.Background())
			b.setStale(true)
			b.log.Error("listen failed", zap.Error(err))
			if !sleepCtx(ctx, nextBackoff(attempt)) {
				return
			}
			attempt++
			continue
		}

		attempt = 0
		b.setStale(false)
		err = b.pump(ctx, listener)
		listener.Close(context.Background())
		switch {
		case ctx.Err() != nil:
			return
		case errors.Is(err, errResubscribe):
			// Channel set changed: reconnect immediately, not stale.
		default:
			b.setStale(true)
			b.log.Error("notification stream lost", zap.Error(err))
			if !sleepCtx(ctx, nextBackoff(0)) {
				return
			}
		}
	}
}

func (b *Bridge) listenAll(ctx context.Context, l Listener) error {
	for _, channel := range b.channels() {
		if err := l.Listen(ctx, channel); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bridge) pump(ctx context.Context, l Listener) error {
	for {
		waitCtx, cancel := context.WithCancel(ctx)
		resynced := make(chan struct{})
		var hit atomic.Bool
		go func() {
			defer close(resynced)
			select {
			case <-b.resync:
				hit.Store(true)
				cancel()
			case <-waitCtx.Done():
			}
		}()

		channel, err := l.WaitForNotification(waitCtx)
		cancel()
		<-resynced

		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, context.Canceled) {
				return errResubscribe
			}
			return err
		}
		b.dispatch(channel)
		// A nudge that raced a delivered notification still needs a rebuild.
		if hit.Load() {
			return errResubscribe
		}
	}
}

// nextBackoff is the reconnect delay schedule: doubling from one second,
// capped at thirty.
func nextBackoff(attempt int) time.Duration {
	d := time.Second << uint(attempt)
	if attempt > 5 || d > 30*time.Second {
		return 30 * time.Second
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
