package views

import (
	"sort"
	"strings"

	"kone-backend/internal/catalog"
	"kone-backend/internal/models"
)

// DealQuery is the combinable filter/sort state for the deal history view.
// All filters AND-compose; empty selections are inclusive.
type DealQuery struct {
	Search     string
	Categories []string
	Directions []string
	Period     Period
	SortField  string // empty = submitted_at
	Ascending  bool   // default ordering is descending
}

// FilterDeals applies the deal history filter pipeline and sort. The input
// is never mutated.
func FilterDeals(cat *catalog.Catalog, deals []models.DealRecord, q DealQuery) []models.DealRecord {
	out := make([]models.DealRecord, 0, len(deals))
	for _, d := range deals {
		if !q.Period.Matches(d.When()) {
			continue
		}
		if !selectionAllows(q.Categories, d.Category) {
			continue
		}
		if !selectionAllows(q.Directions, d.Direction) {
			continue
		}
		if q.Search != "" &&
			!matchesFold(d.ItemName, q.Search) &&
			!matchesFold(d.Category, q.Search) &&
			!matchesFold(d.Counterparty, q.Search) &&
			!matchesFold(d.Handler, q.Search) {
			continue
		}
		out = append(out, d)
	}

	field := q.SortField
	if field == "" {
		field = "submitted_at"
	}
	sort.SliceStable(out, func(i, j int) bool {
		c := compareDeals(cat, out[i], out[j], field)
		if q.Ascending {
			return c < 0
		}
		return c > 0
	})
	return out
}

func compareDeals(cat *catalog.Catalog, a, b models.DealRecord, field string) int {
	switch field {
	case "submitted_at":
		return strings.Compare(a.SubmittedAt, b.SubmittedAt)
	case "deal_date":
		return strings.Compare(a.DealDate, b.DealDate)
	case "category":
		return cat.CategoryRank(a.Category) - cat.CategoryRank(b.Category)
	case "quantity":
		return compareFloat(a.Quantity, b.Quantity)
	case "unit_price":
		return compareFloat(a.UnitPrice, b.UnitPrice)
	case "amount":
		return compareFloat(a.Amount, b.Amount)
	case "counterparty":
		return strings.Compare(a.Counterparty, b.Counterparty)
	case "direction":
		return strings.Compare(a.Direction, b.Direction)
	default:
		return strings.Compare(a.ItemName, b.ItemName)
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// DealTotals sums a filtered slice for the footer row: inbound quantity,
// outbound quantity (production counts as outbound) and absolute monetary
// volume.
type DealTotals struct {
	InboundQty  float64 `json:"inbound_qty"`
	OutboundQty float64 `json:"outbound_qty"`
	TotalAmount float64 `json:"total_amount"`
}

func SumDeals(deals []models.DealRecord) DealTotals {
	var t DealTotals
	for _, d := range deals {
		switch d.Direction {
		case models.DirectionInbound:
			t.InboundQty += d.Quantity
		case models.DirectionOutbound, models.DirectionProduction:
			t.OutboundQty += d.Quantity
		}
		t.TotalAmount += abs(d.Amount)
	}
	return t
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
