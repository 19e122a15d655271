package views

import (
	"strings"

	"kone-backend/internal/catalog"
	"kone-backend/internal/models"
)

// CategorySummary is the dashboard roll-up for one canonical category.
type CategorySummary struct {
	Name        string  `json:"name"`
	TotalAmount float64 `json:"total_amount"`
	TotalQty    float64 `json:"total_qty"`
	ItemCount   int     `json:"item_count"`
	RiskCount   int     `json:"risk_count"`
}

// SummarizeCategories aggregates stock by canonical category. The output
// always has exactly one entry per canonical category in canonical order;
// categories with no matching records appear zero-valued. Matching is exact
// trimmed string equality, never fuzzy.
func SummarizeCategories(cat *catalog.Catalog, stock []models.StockRecord) []CategorySummary {
	out := make([]CategorySummary, len(cat.Categories))
	index := make(map[string]int, len(cat.Categories))
	for i, name := range cat.Categories {
		out[i] = CategorySummary{Name: name}
		index[strings.TrimSpace(name)] = i
	}

	for _, rec := range stock {
		i, ok := index[strings.TrimSpace(rec.Category)]
		if !ok {
			continue
		}
		out[i].TotalAmount += rec.Amount
		out[i].TotalQty += rec.CurrentQty
		out[i].ItemCount++
		if strings.Contains(rec.Status, cat.RiskMarker) {
			out[i].RiskCount++
		}
	}
	return out
}
