package views

import (
	"testing"

	"kone-backend/internal/catalog"
	"kone-backend/internal/models"
)

func intPtr(v int) *int { return &v }

func TestAssemblyFeasibility(t *testing.T) {
	stock := []models.StockRecord{
		{ItemName: "frame", CurrentQty: 12},
		{ItemName: "motor", CurrentQty: 5},
		{ItemName: "panel", CurrentQty: 5},
	}
	sets := []catalog.AssemblySet{
		{ID: 1, Baseline: intPtr(1), Components: []string{"frame", "motor", "panel"}},
		{ID: 2, Baseline: intPtr(1), Components: []string{"frame", "missing-part"}},
		{ID: 3, Components: []string{"frame"}},
	}

	got := AssemblyFeasibility(sets, stock)

	full := got[0]
	if full.FeasibleQty == nil || *full.FeasibleQty != 5 {
		t.Fatalf("feasible qty = %v, want 5", full.FeasibleQty)
	}
	// Two components tie at the minimum; the first one is the bottleneck.
	if !full.Components[1].Bottleneck || full.Components[2].Bottleneck {
		t.Errorf("bottleneck must be the first component attaining the minimum: %+v", full.Components)
	}

	unresolved := got[1]
	if unresolved.FeasibleQty != nil {
		t.Errorf("unresolved component must leave feasibility undefined, got %v", *unresolved.FeasibleQty)
	}
	if unresolved.Components[1].CurrentStock != nil {
		t.Errorf("missing component must have nil stock")
	}

	noBaseline := got[2]
	if noBaseline.FeasibleQty != nil {
		t.Errorf("set without baseline must be undefined, got %v", *noBaseline.FeasibleQty)
	}
}

func TestAssemblyZeroIsNotUndefined(t *testing.T) {
	stock := []models.StockRecord{{ItemName: "frame", CurrentQty: 0}}
	sets := []catalog.AssemblySet{{ID: 1, Baseline: intPtr(1), Components: []string{"frame"}}}

	got := AssemblyFeasibility(sets, stock)
	if got[0].FeasibleQty == nil {
		t.Fatal("zero stock is a defined feasibility of 0, not undefined")
	}
	if *got[0].FeasibleQty != 0 {
		t.Fatalf("feasible qty = %v, want 0", *got[0].FeasibleQty)
	}
}

func TestSummarizeAssemblies(t *testing.T) {
	five := 5.0
	zero := 0.0
	stats := SummarizeAssemblies([]AssemblyStatus{
		{FeasibleQty: &five},
		{FeasibleQty: &zero},
		{FeasibleQty: nil},
	})
	if stats.Total != 3 || stats.Buildable != 1 || stats.Undefined != 1 {
		t.Errorf("stats = %+v", stats)
	}
}
