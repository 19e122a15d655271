package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"kone-backend/internal/cache"
	"kone-backend/internal/state"
	"kone-backend/internal/views"
)

type DashboardHandler struct {
	Store    *state.Store
	Catalogs Catalogs
}

func NewDashboardHandler(store *state.Store, catalogs Catalogs) *DashboardHandler {
	return &DashboardHandler{Store: store, Catalogs: catalogs}
}

type dashboardResponse struct {
	Categories []views.CategorySummary `json:"categories"`
	Totals     views.StockTotals       `json:"totals"`
	Meta       state.Meta              `json:"meta"`
}

// GetSummary handles GET /api/dashboard?tab=. The category roll-up is
// cached briefly per tab; the cache key is invalidated on every refresh so
// a hit can never outlive the snapshot it was derived from.
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	tab := queryTab(r)
	h.Store.Activate(state.ViewDashboard, tab)

	key := cache.CategorySummaryKeyFmt + tab
	if data, ok := cache.GetCached(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	stock, meta := h.Store.Stock(tab)
	resp := dashboardResponse{
		Categories: views.SummarizeCategories(h.Catalogs.For(tab), stock),
		Totals:     views.SumStock(stock),
		Meta:       meta,
	}

	body, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Failed to build summary", http.StatusInternalServerError)
		return
	}
	if meta.Phase == state.PhaseLoaded {
		cache.SetCached(r.Context(), key, body, 30*time.Second)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

type outboundResponse struct {
	Period     views.Period            `json:"period"`
	Categories []views.CategoryOutbound `json:"categories"`
}

// GetOutboundChart handles GET /api/dashboard/outbound?tab=&year=&quarter=&month=.
func (h *DashboardHandler) GetOutboundChart(w http.ResponseWriter, r *http.Request) {
	tab := queryTab(r)
	h.Store.Activate(state.ViewDeals, tab)

	period := queryPeriod(r)
	deals, _ := h.Store.Deals(tab)

	resp := outboundResponse{
		Period:     period,
		Categories: views.OutboundByCategory(h.Catalogs.For(tab), deals, period),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
