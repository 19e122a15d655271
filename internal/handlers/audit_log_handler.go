package handlers

import (
	"encoding/json"
	"net/http"

	"kone-backend/internal/models"
	"kone-backend/internal/state"
	"kone-backend/internal/views"
)

type AuditLogHandler struct {
	Store *state.Store
}

func NewAuditLogHandler(store *state.Store) *AuditLogHandler {
	return &AuditLogHandler{Store: store}
}

type auditLogResponse struct {
	Entries []models.AuditLogEntry `json:"entries"`
	Tables  []string               `json:"tables"`
	Meta    state.Meta             `json:"meta"`
}

// tabTables maps a source tab to its backing tables, for the tab-scoped
// variant of the audit trail.
func tabTables(tab string) []string {
	if tab == state.TabEcob {
		return []string{"ecob_stock", "ecob_deal"}
	}
	return []string{"current_stock", "deal_data"}
}

// List handles GET /api/logs?search=&tables=&actions=&limit=&tab=. An
// explicit tables selection wins over the tab shortcut.
func (h *AuditLogHandler) List(w http.ResponseWriter, r *http.Request) {
	h.Store.Activate(state.ViewLogs, state.TabK1)

	tables := queryList(r, "tables")
	if len(tables) == 0 && r.URL.Query().Get("tab") != "" {
		tables = tabTables(queryTab(r))
	}
	q := views.LogQuery{
		Search:  r.URL.Query().Get("search"),
		Tables:  tables,
		Actions: queryList(r, "actions"),
		Limit:   queryInt(r, "limit"),
	}

	entries, meta := h.Store.AuditLogs()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(auditLogResponse{
		Entries: views.FilterLogs(entries, q),
		Tables:  views.LogTables(entries),
		Meta:    meta,
	})
}

// Refresh handles POST /api/logs/refresh.
func (h *AuditLogHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.Store.RefreshAuditLogs()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"status": "refreshing"})
}
