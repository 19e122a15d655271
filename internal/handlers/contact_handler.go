package handlers

import (
	"encoding/json"
	"net/http"

	"kone-backend/internal/models"
	"kone-backend/internal/state"
	"kone-backend/internal/views"
)

type ContactHandler struct {
	Store *state.Store
}

func NewContactHandler(store *state.Store) *ContactHandler {
	return &ContactHandler{Store: store}
}

type contactResponse struct {
	Groups []views.ContactGroup `json:"groups"`
	Meta   state.Meta           `json:"meta"`
}

// List handles GET /api/contacts?search=. Rows group by counterparty;
// identity fields keep the first non-blank value, money fields sum.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	h.Store.Activate(state.ViewContacts, state.TabK1)

	rows, meta := h.Store.Contacts()
	groups := views.FilterContactGroups(views.GroupContacts(rows), r.URL.Query().Get("search"))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(contactResponse{Groups: groups, Meta: meta})
}

type receivablesResponse struct {
	Records []models.ContactRecord  `json:"records"`
	Totals  views.ReceivablesTotals `json:"totals"`
	Meta    state.Meta              `json:"meta"`
}

// Receivables handles GET /api/receivables?search=&payment=all|unpaid|paid.
func (h *ContactHandler) Receivables(w http.ResponseWriter, r *http.Request) {
	h.Store.Activate(state.ViewReceivables, state.TabK1)

	payment := r.URL.Query().Get("payment")
	if payment == "" {
		payment = views.PaymentAll
	}
	q := views.ReceivablesQuery{
		Search:  r.URL.Query().Get("search"),
		Payment: payment,
	}

	rows, meta := h.Store.Contacts()
	filtered := views.FilterReceivables(rows, q)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(receivablesResponse{
		Records: filtered,
		Totals:  views.SumReceivables(filtered),
		Meta:    meta,
	})
}

type teamResponse struct {
	Records []models.InternalContact `json:"records"`
	Meta    state.Meta               `json:"meta"`
}

// Team handles GET /api/team?search=.
func (h *ContactHandler) Team(w http.ResponseWriter, r *http.Request) {
	h.Store.Activate(state.ViewTeam, state.TabK1)

	rows, meta := h.Store.InternalContacts()
	filtered := views.FilterInternalContacts(rows, r.URL.Query().Get("search"))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(teamResponse{Records: filtered, Meta: meta})
}

// Refresh handles POST /api/contacts/refresh. Both sheets re-fetch.
func (h *ContactHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.Store.RefreshContacts()
	h.Store.RefreshInternalContacts()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"status": "refreshing"})
}
