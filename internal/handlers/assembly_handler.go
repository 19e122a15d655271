package handlers

import (
	"encoding/json"
	"net/http"

	"kone-backend/internal/state"
	"kone-backend/internal/views"
)

type AssemblyHandler struct {
	Store    *state.Store
	Catalogs Catalogs
}

func NewAssemblyHandler(store *state.Store, catalogs Catalogs) *AssemblyHandler {
	return &AssemblyHandler{Store: store, Catalogs: catalogs}
}

type assemblyResponse struct {
	Assemblies []views.AssemblyStatus `json:"assemblies"`
	Stats      views.AssemblyStats    `json:"stats"`
	Meta       state.Meta             `json:"meta"`
}

// List handles GET /api/assemblies?tab=.
func (h *AssemblyHandler) List(w http.ResponseWriter, r *http.Request) {
	tab := queryTab(r)
	h.Store.Activate(state.ViewAssembly, tab)

	stock, meta := h.Store.Stock(tab)
	statuses := views.AssemblyFeasibility(h.Catalogs.For(tab).Assemblies, stock)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(assemblyResponse{
		Assemblies: statuses,
		Stats:      views.SummarizeAssemblies(statuses),
		Meta:       meta,
	})
}
