package views

import (
	"kone-backend/internal/catalog"
	"kone-backend/internal/models"
)

// AssemblyComponent is one bill-of-materials line resolved against current
// stock. CurrentStock is nil when the component name does not resolve.
type AssemblyComponent struct {
	Name         string   `json:"name"`
	CurrentStock *float64 `json:"current_stock"`
	Bottleneck   bool     `json:"bottleneck"`
}

// AssemblyStatus is the feasibility result for one set. FeasibleQty is nil
// when feasibility is undefined — any component unresolved, or the set has
// no baseline marker. Undefined is distinct from a feasibility of zero.
type AssemblyStatus struct {
	ID          int                 `json:"id"`
	Components  []AssemblyComponent `json:"components"`
	FeasibleQty *float64            `json:"feasible_qty"`
}

// AssemblyFeasibility resolves every configured set against a stock
// snapshot. Feasible quantity is the minimum resolved component quantity;
// the first component attaining that minimum is the bottleneck.
func AssemblyFeasibility(sets []catalog.AssemblySet, stock []models.StockRecord) []AssemblyStatus {
	byName := make(map[string]float64, len(stock))
	for _, s := range stock {
		byName[s.ItemName] = s.CurrentQty
	}

	out := make([]AssemblyStatus, 0, len(sets))
	for _, set := range sets {
		status := AssemblyStatus{ID: set.ID, Components: make([]AssemblyComponent, len(set.Components))}

		allResolved := true
		for i, name := range set.Components {
			comp := AssemblyComponent{Name: name}
			if qty, ok := byName[name]; ok {
				q := qty
				comp.CurrentStock = &q
			} else {
				allResolved = false
			}
			status.Components[i] = comp
		}

		if set.Baseline != nil && allResolved && len(status.Components) > 0 {
			minIdx := 0
			for i, comp := range status.Components {
				if *comp.CurrentStock < *status.Components[minIdx].CurrentStock {
					minIdx = i
				}
			}
			qty := *status.Components[minIdx].CurrentStock
			status.FeasibleQty = &qty
			status.Components[minIdx].Bottleneck = true
		}

		out = append(out, status)
	}
	return out
}

// AssemblyStats summarizes feasibility across sets for the view header.
type AssemblyStats struct {
	Total     int `json:"total"`
	Buildable int `json:"buildable"`
	Undefined int `json:"undefined"`
}

func SummarizeAssemblies(statuses []AssemblyStatus) AssemblyStats {
	stats := AssemblyStats{Total: len(statuses)}
	for _, s := range statuses {
		switch {
		case s.FeasibleQty == nil:
			stats.Undefined++
		case *s.FeasibleQty > 0:
			stats.Buildable++
		}
	}
	return stats
}
