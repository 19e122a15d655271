package handlers

import (
	"encoding/json"
	"net/http"

	"kone-backend/internal/models"
	"kone-backend/internal/state"
	"kone-backend/internal/views"
)

type DealHandler struct {
	Store    *state.Store
	Catalogs Catalogs
}

func NewDealHandler(store *state.Store, catalogs Catalogs) *DealHandler {
	return &DealHandler{Store: store, Catalogs: catalogs}
}

type dealResponse struct {
	Records []models.DealRecord `json:"records"`
	Totals  views.DealTotals    `json:"totals"`
	Period  views.Period        `json:"period"`
	Meta    state.Meta          `json:"meta"`
}

// List handles GET /api/deals?tab=&search=&categories=&directions=&year=&quarter=&month=&sort=&asc=.
func (h *DealHandler) List(w http.ResponseWriter, r *http.Request) {
	tab := queryTab(r)
	h.Store.Activate(state.ViewDeals, tab)

	q := views.DealQuery{
		Search:     r.URL.Query().Get("search"),
		Categories: queryList(r, "categories"),
		Directions: queryList(r, "directions"),
		Period:     queryPeriod(r),
		SortField:  r.URL.Query().Get("sort"),
		Ascending:  queryBool(r, "asc"),
	}

	deals, meta := h.Store.Deals(tab)
	filtered := views.FilterDeals(h.Catalogs.For(tab), deals, q)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dealResponse{
		Records: filtered,
		Totals:  views.SumDeals(filtered),
		Period:  q.Period,
		Meta:    meta,
	})
}

// Refresh handles POST /api/deals/refresh?tab=.
func (h *DealHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	tab := queryTab(r)
	h.Store.RefreshDeals(tab)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"status": "refreshing", "tab": tab})
}
