package views

import (
	"math"

	"kone-backend/internal/catalog"
	"kone-backend/internal/models"
)

// CategoryOutbound is one bar of the outbound-by-category chart.
type CategoryOutbound struct {
	Name        string  `json:"name"`
	TotalAmount float64 `json:"total_amount"`
	TotalQty    float64 `json:"total_qty"`
	DealCount   int     `json:"deal_count"`
}

// OutboundByCategory aggregates outbound and production deals within the
// period into the catalog's canonical category order. Every category
// appears even when it has no deals; unknown categories are ignored.
// Amounts are taken as absolute values.
func OutboundByCategory(cat *catalog.Catalog, deals []models.DealRecord, p Period) []CategoryOutbound {
	out := make([]CategoryOutbound, len(cat.Categories))
	index := make(map[string]int, len(cat.Categories))
	for i, name := range cat.Categories {
		out[i] = CategoryOutbound{Name: name}
		index[name] = i
	}

	for _, d := range deals {
		if d.Direction != models.DirectionOutbound && d.Direction != models.DirectionProduction {
			continue
		}
		if !p.Matches(d.When()) {
			continue
		}
		i, ok := index[d.Category]
		if !ok {
			continue
		}
		out[i].TotalAmount += math.Abs(d.Amount)
		out[i].TotalQty += math.Abs(d.Quantity)
		out[i].DealCount++
	}
	return out
}
