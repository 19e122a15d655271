package state

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"kone-backend/internal/gateway"
	"kone-backend/internal/models"
)

// blockingFetcher hands each fetch to the test, which decides when and
// with what data it completes.
type blockingFetcher struct {
	stockCalls chan *stockCall
	dealCalls  chan *dealCall
}

type stockCall struct {
	table   string
	release chan []models.StockRecord
}

type dealCall struct {
	table   string
	release chan []models.DealRecord
}

func newBlockingFetcher() *blockingFetcher {
	return &blockingFetcher{
		stockCalls: make(chan *stockCall, 16),
		dealCalls:  make(chan *dealCall, 16),
	}
}

func (f *blockingFetcher) FetchStock(_ context.Context, table string) ([]models.StockRecord, gateway.Source) {
	c := &stockCall{table: table, release: make(chan []models.StockRecord)}
	f.stockCalls <- c
	return <-c.release, gateway.SourceLive
}

func (f *blockingFetcher) FetchDeals(_ context.Context, table string) ([]models.DealRecord, gateway.Source) {
	c := &dealCall{table: table, release: make(chan []models.DealRecord)}
	f.dealCalls <- c
	return <-c.release, gateway.SourceLive
}

func (f *blockingFetcher) FetchAuditLogs(context.Context, int) []models.AuditLogEntry {
	return []models.AuditLogEntry{}
}

type fakeSheets struct {
	mu            sync.Mutex
	contactCalls  int
	internalCalls int
}

func (f *fakeSheets) FetchContacts(context.Context) []models.ContactRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contactCalls++
	return []models.ContactRecord{{Counterparty: "Daesung FA"}}
}

func (f *fakeSheets) FetchInternalContacts(context.Context) []models.InternalContact {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.internalCalls++
	return []models.InternalContact{}
}

type fakeSub struct {
	mu     sync.Mutex
	tables []string
	closed []string
}

type fakeHandle struct {
	sub   *fakeSub
	table string
}

func (h *fakeHandle) Unsubscribe() {
	h.sub.mu.Lock()
	defer h.sub.mu.Unlock()
	h.sub.closed = append(h.sub.closed, h.table)
}

func (f *fakeSub) Subscribe(table string, _ func()) Unsubscriber {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables = append(f.tables, table)
	return &fakeHandle{sub: f, table: table}
}

func (f *fakeSub) subscribed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.tables...)
}

func await[T any](t *testing.T, ch chan T, what string) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
		panic("unreachable")
	}
}

func TestStartLoadsPrimaryStockAndSubscribes(t *testing.T) {
	fetcher := newBlockingFetcher()
	sub := &fakeSub{}
	store := NewStore(fetcher, &fakeSheets{}, sub, zap.NewNop())

	events := make(chan Event, 16)
	store.SetEventHandler(func(e Event) { events <- e })

	store.Start(context.Background())
	defer store.Close()

	call := await(t, fetcher.stockCalls, "primary stock fetch")
	if call.table != "current_stock" {
		t.Fatalf("primary fetch hit %q", call.table)
	}
	call.release <- []models.StockRecord{{ItemName: "BRG-6204"}}

	e := await(t, events, "stock event")
	if e.Collection != "stock" || e.Tab != TabK1 {
		t.Fatalf("event = %+v", e)
	}

	records, meta := store.Stock(TabK1)
	if meta.Phase != PhaseLoaded || len(records) != 1 {
		t.Fatalf("snapshot: phase=%v n=%d", meta.Phase, len(records))
	}
	if got := sub.subscribed(); len(got) != 1 || got[0] != "current_stock" {
		t.Fatalf("subscriptions = %v", got)
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	fetcher := newBlockingFetcher()
	store := NewStore(fetcher, &fakeSheets{}, &fakeSub{}, zap.NewNop())

	events := make(chan Event, 16)
	store.SetEventHandler(func(e Event) { events <- e })

	store.RefreshStock(TabK1)
	first := await(t, fetcher.stockCalls, "first fetch")
	store.RefreshStock(TabK1)
	second := await(t, fetcher.stockCalls, "second fetch")

	// The newer request completes first and wins.
	second.release <- []models.StockRecord{{ItemName: "newer"}}
	await(t, events, "second completion")

	// The older request completes late and must be discarded.
	first.release <- []models.StockRecord{{ItemName: "older"}}

	select {
	case e := <-events:
		t.Fatalf("stale completion emitted an event: %+v", e)
	case <-time.After(100 * time.Millisecond):
	}

	records, _ := store.Stock(TabK1)
	if len(records) != 1 || records[0].ItemName != "newer" {
		t.Fatalf("stale response overwrote state: %+v", records)
	}
}

func TestActivateLoadsSecondarySourceOnce(t *testing.T) {
	fetcher := newBlockingFetcher()
	sub := &fakeSub{}
	store := NewStore(fetcher, &fakeSheets{}, sub, zap.NewNop())

	store.Activate(ViewStock, TabEcob)
	call := await(t, fetcher.stockCalls, "ecob stock fetch")
	if call.table != "ecob_stock" {
		t.Fatalf("secondary fetch hit %q", call.table)
	}
	call.release <- nil

	// Wait for the collection to leave the loading phase.
	deadline := time.After(2 * time.Second)
	for {
		if _, meta := store.Stock(TabEcob); meta.Phase == PhaseLoaded {
			break
		}
		select {
		case <-deadline:
			t.Fatal("ecob collection never loaded")
		case <-time.After(5 * time.Millisecond):
		}
	}

	// Re-activating must not refetch or resubscribe.
	store.Activate(ViewStock, TabEcob)
	store.Activate(ViewDashboard, TabEcob)
	select {
	case c := <-fetcher.stockCalls:
		t.Fatalf("redundant fetch of %q", c.table)
	case <-time.After(100 * time.Millisecond):
	}
	if got := sub.subscribed(); len(got) != 1 {
		t.Fatalf("expected one ecob_stock subscription, got %v", got)
	}
}

func TestActivateDealsLoadsDealsLazily(t *testing.T) {
	fetcher := newBlockingFetcher()
	store := NewStore(fetcher, &fakeSheets{}, &fakeSub{}, zap.NewNop())

	store.Activate(ViewDeals, TabK1)
	stock := await(t, fetcher.stockCalls, "stock fetch")
	stock.release <- nil
	deals := await(t, fetcher.dealCalls, "deal fetch")
	if deals.table != "deal_data" {
		t.Fatalf("deal fetch hit %q", deals.table)
	}
	deals.release <- nil
}

func TestActivateContactsFetchesSheetOnce(t *testing.T) {
	fetcher := newBlockingFetcher()
	sheets := &fakeSheets{}
	store := NewStore(fetcher, sheets, &fakeSub{}, zap.NewNop())

	events := make(chan Event, 16)
	store.SetEventHandler(func(e Event) { events <- e })

	store.Activate(ViewContacts, TabK1)
	if e := await(t, events, "contacts event"); e.Collection != "contacts" {
		t.Fatalf("event = %+v", e)
	}

	store.Activate(ViewReceivables, TabK1)
	time.Sleep(50 * time.Millisecond)

	sheets.mu.Lock()
	calls := sheets.contactCalls
	sheets.mu.Unlock()
	if calls != 1 {
		t.Fatalf("sheet fetched %d times, want once across both contact views", calls)
	}

	select {
	case c := <-fetcher.stockCalls:
		t.Fatalf("contact views must not fetch stock, hit %q", c.table)
	default:
	}
}

func TestCloseUnsubscribesEverything(t *testing.T) {
	fetcher := newBlockingFetcher()
	sub := &fakeSub{}
	store := NewStore(fetcher, &fakeSheets{}, sub, zap.NewNop())

	store.Start(context.Background())
	call := await(t, fetcher.stockCalls, "primary fetch")
	call.release <- nil

	store.Close()
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if len(sub.closed) != len(sub.tables) {
		t.Fatalf("closed %v of %v", sub.closed, sub.tables)
	}
}
