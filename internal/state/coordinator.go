package state

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"kone-backend/internal/gateway"
	"kone-backend/internal/models"
)

// Data source tabs.
const (
	TabK1   = "k1"
	TabEcob = "ecob"
)

// Dashboard views, mirroring the UI's navigation.
const (
	ViewDashboard   = "dashboard"
	ViewStock       = "stock"
	ViewDeals       = "deals"
	ViewNewItems    = "newitems"
	ViewAssembly    = "assembly"
	ViewContacts    = "contacts"
	ViewReceivables = "receivables"
	ViewTeam        = "team"
	ViewLogs        = "logs"
)

// Phase is the lifecycle of one collection.
type Phase string

const (
	PhaseUnloaded Phase = "unloaded"
	PhaseLoading  Phase = "loading"
	PhaseLoaded   Phase = "loaded"
)

// Meta describes a collection snapshot: lifecycle phase, where the data
// came from, and when it was last applied.
type Meta struct {
	Phase     Phase          `json:"phase"`
	Source    gateway.Source `json:"source"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Event is published on every applied refresh so the stream hub can tell
// UI clients to re-render.
type Event struct {
	Collection string         `json:"collection"`
	Tab        string         `json:"tab,omitempty"`
	Source     gateway.Source `json:"source,omitempty"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Fetcher is the gateway surface the coordinator needs.
type Fetcher interface {
	FetchStock(ctx context.Context, table string) ([]models.StockRecord, gateway.Source)
	FetchDeals(ctx context.Context, table string) ([]models.DealRecord, gateway.Source)
	FetchAuditLogs(ctx context.Context, limit int) []models.AuditLogEntry
}

// ContactFetcher is the spreadsheet surface.
type ContactFetcher interface {
	FetchContacts(ctx context.Context) []models.ContactRecord
	FetchInternalContacts(ctx context.Context) []models.InternalContact
}

// Unsubscriber is an open change subscription handle.
type Unsubscriber interface {
	Unsubscribe()
}

// Subscriber opens per-table change subscriptions.
type Subscriber interface {
	Subscribe(table string, onChange func()) Unsubscriber
}

const auditLogLimit = 500

func stockTable(tab string) string {
	if tab == TabEcob {
		return "ecob_stock"
	}
	return "current_stock"
}

func dealTable(tab string) string {
	if tab == TabEcob {
		return "ecob_deal"
	}
	return "deal_data"
}

type stockState struct {
	phase     Phase
	seq       uint64
	applied   uint64
	data      []models.StockRecord
	source    gateway.Source
	updatedAt time.Time
}

type dealState struct {
	phase     Phase
	seq       uint64
	applied   uint64
	data      []models.DealRecord
	source    gateway.Source
	updatedAt time.Time
}

type listState[T any] struct {
	phase     Phase
	seq       uint64
	applied   uint64
	data      []T
	updatedAt time.Time
}

// Store owns every dashboard collection: slices, loading phases, source
// tags, timestamps and the open-subscription registry. All state is held
// here explicitly; nothing lives at package level.
type Store struct {
	fetcher Fetcher
	sheets  ContactFetcher
	sub     Subscriber
	log     *zap.Logger
	onEvent func(Event)

	mu         sync.Mutex
	ctx        context.Context
	stock      map[string]*stockState
	deals      map[string]*dealState
	contacts   listState[models.ContactRecord]
	internal   listState[models.InternalContact]
	audit      listState[models.AuditLogEntry]
	subs       map[string]Unsubscriber
	activeView string
	activeTab  string
}

func NewStore(fetcher Fetcher, sheets ContactFetcher, sub Subscriber, log *zap.Logger) *Store {
	return &Store{
		fetcher: fetcher,
		sheets:  sheets,
		sub:     sub,
		log:     log,
		stock: map[string]*stockState{
			TabK1:   {phase: PhaseUnloaded},
			TabEcob: {phase: PhaseUnloaded},
		},
		deals: map[string]*dealState{
			TabK1:   {phase: PhaseUnloaded},
			TabEcob: {phase: PhaseUnloaded},
		},
		subs:       make(map[string]Unsubscriber),
		activeView: ViewDashboard,
		activeTab:  TabK1,
	}
}

// SetEventHandler registers the refresh event sink. Must be called before
// Start.
func (s *Store) SetEventHandler(fn func(Event)) { s.onEvent = fn }

func (s *Store) emit(e Event) {
	if s.onEvent != nil {
		s.onEvent(e)
	}
}

// Start loads the primary stock collection and opens its change
// subscription. Everything else loads lazily on first view activation.
func (s *Store) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	s.refreshStock(TabK1)
	s.ensureSubscribed(stockTable(TabK1), func() { s.refreshStock(TabK1) })
}

// Activate records the current view and tab and lazily loads whatever
// that selection needs. Collections already loaded (or loading) and
// subscriptions already open are left alone.
func (s *Store) Activate(view, tab string) {
	if tab != TabEcob {
		tab = TabK1
	}
	s.mu.Lock()
	s.activeView = view
	s.activeTab = tab
	s.mu.Unlock()

	switch view {
	case ViewDashboard, ViewStock, ViewNewItems, ViewAssembly:
		s.ensureStock(tab)
	case ViewDeals:
		s.ensureStock(tab)
		s.ensureDeals(tab)
	case ViewContacts, ViewReceivables:
		s.ensureContacts()
	case ViewTeam:
		s.ensureInternalContacts()
	case ViewLogs:
		s.ensureAuditLogs()
	}
}

// Active returns the current view/tab selection.
func (s *Store) Active() (view, tab string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeView, s.activeTab
}

// Close tears down every open subscription.
func (s *Store) Close() {
	s.mu.Lock()
	subs := s.subs
	s.subs = make(map[string]Unsubscriber)
	s.mu.Unlock()
	for _, sub := range subs {
		sub.Unsubscribe()
	}
}

func (s *Store) ensureSubscribed(table string, onChange func()) {
	if s.sub == nil {
		return
	}
	s.mu.Lock()
	_, open := s.subs[table]
	s.mu.Unlock()
	if open {
		return
	}
	handle := s.sub.Subscribe(table, onChange)
	s.mu.Lock()
	if _, raced := s.subs[table]; raced {
		s.mu.Unlock()
		handle.Unsubscribe()
		return
	}
	s.subs[table] = handle
	s.mu.Unlock()
}

func (s *Store) ensureStock(tab string) {
	s.mu.Lock()
	unloaded := s.stock[tab].phase == PhaseUnloaded
	s.mu.Unlock()
	if unloaded {
		s.refreshStock(tab)
	}
	s.ensureSubscribed(stockTable(tab), func() { s.refreshStock(tab) })
}

func (s *Store) ensureDeals(tab string) {
	s.mu.Lock()
	unloaded := s.deals[tab].phase == PhaseUnloaded
	s.mu.Unlock()
	if unloaded {
		s.refreshDeals(tab)
	}
	s.ensureSubscribed(dealTable(tab), func() { s.refreshDeals(tab) })
}

func (s *Store) ensureContacts() {
	s.mu.Lock()
	unloaded := s.contacts.phase == PhaseUnloaded
	s.mu.Unlock()
	if unloaded {
		s.RefreshContacts()
	}
}

func (s *Store) ensureInternalContacts() {
	s.mu.Lock()
	unloaded := s.internal.phase == PhaseUnloaded
	s.mu.Unlock()
	if unloaded {
		s.RefreshInternalContacts()
	}
}

func (s *Store) ensureAuditLogs() {
	s.mu.Lock()
	unloaded := s.audit.phase == PhaseUnloaded
	s.mu.Unlock()
	if unloaded {
		s.RefreshAuditLogs()
	}
	s.ensureSubscribed("audit_logs", func() { s.RefreshAuditLogs() })
}

// refreshStock starts a fetch for one stock tab. Completions are applied
// in sequence order: a response from an older request than the last one
// applied is discarded.
func (s *Store) refreshStock(tab string) {
	s.mu.Lock()
	st := s.stock[tab]
	st.phase = PhaseLoading
	st.seq++
	seq := st.seq
	ctx := s.fetchCtx()
	s.mu.Unlock()

	go func() {
		records, source := s.fetcher.FetchStock(ctx, stockTable(tab))
		now := time.Now()

		s.mu.Lock()
		if seq <= st.applied {
			s.mu.Unlock()
			s.log.Debug("discarded stale stock response",
				zap.String("tab", tab), zap.Uint64("seq", seq))
			return
		}
		st.applied = seq
		st.data = records
		st.source = source
		st.updatedAt = now
		st.phase = PhaseLoaded
		s.mu.Unlock()

		s.emit(Event{Collection: "stock", Tab: tab, Source: source, UpdatedAt: now})
	}()
}

func (s *Store) refreshDeals(tab string) {
	s.mu.Lock()
	st := s.deals[tab]
	st.phase = PhaseLoading
	st.seq++
	seq := st.seq
	ctx := s.fetchCtx()
	s.mu.Unlock()

	go func() {
		records, source := s.fetcher.FetchDeals(ctx, dealTable(tab))
		now := time.Now()

		s.mu.Lock()
		if seq <= st.applied {
			s.mu.Unlock()
			s.log.Debug("discarded stale deal response",
				zap.String("tab", tab), zap.Uint64("seq", seq))
			return
		}
		st.applied = seq
		st.data = records
		st.source = source
		st.updatedAt = now
		st.phase = PhaseLoaded
		s.mu.Unlock()

		s.emit(Event{Collection: "deals", Tab: tab, Source: source, UpdatedAt: now})
	}()
}

// RefreshStock forces a refetch, e.g. from the manual refresh affordance.
func (s *Store) RefreshStock(tab string) { s.refreshStock(tab) }

// RefreshDeals forces a refetch.
func (s *Store) RefreshDeals(tab string) { s.refreshDeals(tab) }

// RefreshContacts refetches the counterparty sheet.
func (s *Store) RefreshContacts() {
	s.mu.Lock()
	s.contacts.phase = PhaseLoading
	s.contacts.seq++
	seq := s.contacts.seq
	ctx := s.fetchCtx()
	s.mu.Unlock()

	go func() {
		rows := s.sheets.FetchContacts(ctx)
		now := time.Now()
		s.mu.Lock()
		if seq <= s.contacts.applied {
			s.mu.Unlock()
			return
		}
		s.contacts.applied = seq
		s.contacts.data = rows
		s.contacts.updatedAt = now
		s.contacts.phase = PhaseLoaded
		s.mu.Unlock()
		s.emit(Event{Collection: "contacts", UpdatedAt: now})
	}()
}

// RefreshInternalContacts refetches the team directory sheet.
func (s *Store) RefreshInternalContacts() {
	s.mu.Lock()
	s.internal.phase = PhaseLoading
	s.internal.seq++
	seq := s.internal.seq
	ctx := s.fetchCtx()
	s.mu.Unlock()

	go func() {
		rows := s.sheets.FetchInternalContacts(ctx)
		now := time.Now()
		s.mu.Lock()
		if seq <= s.internal.applied {
			s.mu.Unlock()
			return
		}
		s.internal.applied = seq
		s.internal.data = rows
		s.internal.updatedAt = now
		s.internal.phase = PhaseLoaded
		s.mu.Unlock()
		s.emit(Event{Collection: "internal_contacts", UpdatedAt: now})
	}()
}

// RefreshAuditLogs refetches the audit trail.
func (s *Store) RefreshAuditLogs() {
	s.mu.Lock()
	s.audit.phase = PhaseLoading
	s.audit.seq++
	seq := s.audit.seq
	ctx := s.fetchCtx()
	s.mu.Unlock()

	go func() {
		entries := s.fetcher.FetchAuditLogs(ctx, auditLogLimit)
		now := time.Now()
		s.mu.Lock()
		if seq <= s.audit.applied {
			s.mu.Unlock()
			return
		}
		s.audit.applied = seq
		s.audit.data = entries
		s.audit.updatedAt = now
		s.audit.phase = PhaseLoaded
		s.mu.Unlock()
		s.emit(Event{Collection: "audit_logs", UpdatedAt: now})
	}()
}

func (s *Store) fetchCtx() context.Context {
	if s.ctx != nil {
		return s.ctx
	}
	return context.Background()
}

// Stock returns the snapshot for one tab.
func (s *Store) Stock(tab string) ([]models.StockRecord, Meta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stock[tab]
	if st == nil {
		return nil, Meta{Phase: PhaseUnloaded}
	}
	return st.data, Meta{Phase: st.phase, Source: st.source, UpdatedAt: st.updatedAt}
}

// Deals returns the snapshot for one tab.
func (s *Store) Deals(tab string) ([]models.DealRecord, Meta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.deals[tab]
	if st == nil {
		return nil, Meta{Phase: PhaseUnloaded}
	}
	return st.data, Meta{Phase: st.phase, Source: st.source, UpdatedAt: st.updatedAt}
}

// Contacts returns the counterparty sheet snapshot.
func (s *Store) Contacts() ([]models.ContactRecord, Meta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contacts.data, Meta{Phase: s.contacts.phase, UpdatedAt: s.contacts.updatedAt}
}

// InternalContacts returns the team directory snapshot.
func (s *Store) InternalContacts() ([]models.InternalContact, Meta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.internal.data, Meta{Phase: s.internal.phase, UpdatedAt: s.internal.updatedAt}
}

// AuditLogs returns the audit trail snapshot.
func (s *Store) AuditLogs() ([]models.AuditLogEntry, Meta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audit.data, Meta{Phase: s.audit.phase, UpdatedAt: s.audit.updatedAt}
}
