package handlers

import (
	"encoding/json"
	"net/http"

	"kone-backend/internal/cache"
	"kone-backend/internal/models"
	"kone-backend/internal/state"
	"kone-backend/internal/views"
)

type StockHandler struct {
	Store    *state.Store
	Catalogs Catalogs
}

func NewStockHandler(store *state.Store, catalogs Catalogs) *StockHandler {
	return &StockHandler{Store: store, Catalogs: catalogs}
}

type stockResponse struct {
	Records []models.StockRecord `json:"records"`
	Totals  views.StockTotals    `json:"totals"`
	Meta    state.Meta           `json:"meta"`
}

// List handles GET /api/stock?tab=&search=&categories=&sort=&asc=.
func (h *StockHandler) List(w http.ResponseWriter, r *http.Request) {
	tab := queryTab(r)
	h.Store.Activate(state.ViewStock, tab)

	q := views.StockQuery{
		Search:     r.URL.Query().Get("search"),
		Categories: queryList(r, "categories"),
		SortField:  r.URL.Query().Get("sort"),
		Ascending:  queryBool(r, "asc"),
	}

	stock, meta := h.Store.Stock(tab)
	filtered := views.FilterStock(h.Catalogs.For(tab), stock, q)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stockResponse{
		Records: filtered,
		Totals:  views.SumStock(filtered),
		Meta:    meta,
	})
}

// Refresh handles POST /api/stock/refresh?tab=. The fetch runs in the
// background; clients learn about the new snapshot over the stream hub.
func (h *StockHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	tab := queryTab(r)
	cache.InvalidateSummaries(r.Context())
	h.Store.RefreshStock(tab)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"status": "refreshing", "tab": tab})
}
