package handlers

import (
	"fmt"
	"net/http"
	"time"

	"kone-backend/internal/report"
	"kone-backend/internal/state"
)

type ReportHandler struct {
	Store    *state.Store
	Catalogs Catalogs
}

func NewReportHandler(store *state.Store, catalogs Catalogs) *ReportHandler {
	return &ReportHandler{Store: store, Catalogs: catalogs}
}

// GetStockPDF handles GET /api/reports/stock/pdf?tab=.
func (h *ReportHandler) GetStockPDF(w http.ResponseWriter, r *http.Request) {
	tab := queryTab(r)
	stock, meta := h.Store.Stock(tab)
	if meta.Phase != state.PhaseLoaded {
		http.Error(w, "Stock snapshot not loaded yet", http.StatusConflict)
		return
	}

	data := report.BuildStockReport(tab, string(meta.Source), h.Catalogs.For(tab), stock)
	pdfData, err := report.GenerateStockPDF(data)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to generate PDF: %v", err), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("stock_summary_%s_%s.pdf", tab, time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Write(pdfData)
}

// GetStockCSV handles GET /api/reports/stock/csv?tab=.
func (h *ReportHandler) GetStockCSV(w http.ResponseWriter, r *http.Request) {
	tab := queryTab(r)
	stock, meta := h.Store.Stock(tab)
	if meta.Phase != state.PhaseLoaded {
		http.Error(w, "Stock snapshot not loaded yet", http.StatusConflict)
		return
	}

	csvData, err := report.GenerateStockCSV(stock)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to generate CSV: %v", err), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("stock_%s_%s.csv", tab, time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Write(csvData)
}
