package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"kone-backend/internal/catalog"
	"kone-backend/internal/models"
	"kone-backend/internal/views"
)

// StockReportData holds everything a stock summary report needs.
type StockReportData struct {
	Tab         string
	Source      string
	GeneratedAt time.Time
	Categories  []views.CategorySummary
	Totals      views.StockTotals
	RiskCount   int
}

// BuildStockReport rolls a stock snapshot into report data.
func BuildStockReport(tab, source string, cat *catalog.Catalog, stock []models.StockRecord) *StockReportData {
	summaries := views.SummarizeCategories(cat, stock)
	risk := 0
	for _, s := range summaries {
		risk += s.RiskCount
	}
	return &StockReportData{
		Tab:         tab,
		Source:      source,
		GeneratedAt: time.Now(),
		Categories:  summaries,
		Totals:      views.SumStock(stock),
		RiskCount:   risk,
	}
}

// GenerateStockPDF renders a category summary PDF.
func GenerateStockPDF(data *StockReportData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("Stock Summary - %s", data.Tab), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s (source: %s)",
		data.GeneratedAt.Format("02-Jan-2006 03:04 PM"), data.Source), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Category table
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 8, "Categories", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(70, 7, "Category", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Items", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Amount", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "At Risk", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, c := range data.Categories {
		name := c.Name
		if len(name) > 32 {
			name = name[:29] + "..."
		}
		pdf.CellFormat(70, 6, tr(name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", c.ItemCount), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.0f", c.TotalQty), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.0f", c.TotalAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", c.RiskCount), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(5)

	// Totals
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 8, "Totals", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(63, 8, fmt.Sprintf("Total Qty: %.0f", data.Totals.TotalQty), "1", 0, "C", false, 0, "")
	pdf.CellFormat(63, 8, fmt.Sprintf("Total Amount: %.0f", data.Totals.TotalAmount), "1", 0, "C", false, 0, "")
	pdf.CellFormat(64, 8, fmt.Sprintf("Items At Risk: %d", data.RiskCount), "1", 1, "C", false, 0, "")

	if data.RiskCount > 0 {
		pdf.SetFillColor(255, 200, 200)
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(190, 10, fmt.Sprintf("%d items flagged at risk", data.RiskCount), "1", 1, "C", true, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateStockCSV exports the raw stock snapshot. CSV keeps the Korean
// item names intact where the PDF core fonts cannot.
func GenerateStockCSV(stock []models.StockRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{
		"#", "Item", "Code", "Category", "Unit Price", "Qty", "Amount", "Status", "Updated",
	})

	for i, s := range stock {
		w.Write([]string{
			fmt.Sprintf("%d", i+1),
			s.ItemName,
			s.ItemCode,
			s.Category,
			fmt.Sprintf("%.0f", s.UnitPrice),
			fmt.Sprintf("%.0f", s.CurrentQty),
			fmt.Sprintf("%.0f", s.Amount),
			s.Status,
			s.UpdatedAt,
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
