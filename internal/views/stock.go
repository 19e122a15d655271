package views

import (
	"sort"
	"strings"

	"kone-backend/internal/catalog"
	"kone-backend/internal/models"
)

// StockQuery is the filter/sort state for the stock master view.
type StockQuery struct {
	Search     string
	Categories []string
	SortField  string // empty = canonical category order, then manual item rank
	Ascending  bool
}

// FilterStock applies the stock master pipeline. The default sort is the
// canonical category order with the hand-maintained item rank as tiebreaker.
func FilterStock(cat *catalog.Catalog, stock []models.StockRecord, q StockQuery) []models.StockRecord {
	out := make([]models.StockRecord, 0, len(stock))
	for _, s := range stock {
		if !selectionAllows(q.Categories, s.Category) {
			continue
		}
		if q.Search != "" &&
			!matchesFold(s.ItemName, q.Search) &&
			!matchesFold(s.Category, q.Search) &&
			!matchesFold(s.Key(), q.Search) {
			continue
		}
		out = append(out, s)
	}

	asc := q.Ascending
	if q.SortField == "" {
		asc = true
	}
	sort.SliceStable(out, func(i, j int) bool {
		c := compareStock(cat, out[i], out[j], q.SortField)
		if asc {
			return c < 0
		}
		return c > 0
	})
	return out
}

func compareStock(cat *catalog.Catalog, a, b models.StockRecord, field string) int {
	switch field {
	case "":
		if c := cat.CategoryRank(a.Category) - cat.CategoryRank(b.Category); c != 0 {
			return c
		}
		return cat.ItemRank(a.Key()) - cat.ItemRank(b.Key())
	case "category":
		return cat.CategoryRank(a.Category) - cat.CategoryRank(b.Category)
	case "unit_price":
		return compareFloat(a.UnitPrice, b.UnitPrice)
	case "current_qty":
		return compareFloat(a.CurrentQty, b.CurrentQty)
	case "prior_month_qty":
		return compareFloat(a.PriorMonthQty, b.PriorMonthQty)
	case "amount":
		return compareFloat(a.Amount, b.Amount)
	case "updated_at":
		return strings.Compare(a.UpdatedAt, b.UpdatedAt)
	default:
		return strings.Compare(a.ItemName, b.ItemName)
	}
}

// StockTotals is the footer summary of a filtered stock slice.
type StockTotals struct {
	TotalQty    float64 `json:"total_qty"`
	TotalAmount float64 `json:"total_amount"`
}

func SumStock(stock []models.StockRecord) StockTotals {
	var t StockTotals
	for _, s := range stock {
		t.TotalQty += s.CurrentQty
		t.TotalAmount += s.Amount
	}
	return t
}
