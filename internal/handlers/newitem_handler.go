package handlers

import (
	"encoding/json"
	"net/http"

	"kone-backend/internal/models"
	"kone-backend/internal/state"
	"kone-backend/internal/views"
)

type NewItemHandler struct {
	Store    *state.Store
	Catalogs Catalogs
}

func NewNewItemHandler(store *state.Store, catalogs Catalogs) *NewItemHandler {
	return &NewItemHandler{Store: store, Catalogs: catalogs}
}

type newItemResponse struct {
	Records []models.StockRecord `json:"records"`
	Meta    state.Meta           `json:"meta"`
}

// List handles GET /api/newitems?tab=&search=&categories=&month=&sort=&asc=.
// Month here is the full "YYYY-MM" update window, not the period toggle.
func (h *NewItemHandler) List(w http.ResponseWriter, r *http.Request) {
	tab := queryTab(r)
	h.Store.Activate(state.ViewNewItems, tab)

	q := views.NewItemsQuery{
		Search:     r.URL.Query().Get("search"),
		Categories: queryList(r, "categories"),
		Month:      r.URL.Query().Get("month"),
		SortField:  r.URL.Query().Get("sort"),
		Ascending:  queryBool(r, "asc"),
	}

	stock, meta := h.Store.Stock(tab)
	filtered := views.FilterNewItems(h.Catalogs.For(tab), stock, q)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(newItemResponse{Records: filtered, Meta: meta})
}
