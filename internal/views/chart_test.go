package views

import (
	"testing"

	"kone-backend/internal/models"
)

func TestOutboundByCategory(t *testing.T) {
	cat := testCatalog()
	deals := []models.DealRecord{
		{Category: "Motors", Direction: models.DirectionOutbound, Quantity: 3, Amount: -690000, DealDate: "2026-05-10"},
		{Category: "Motors", Direction: models.DirectionProduction, Quantity: 1, Amount: 230000, DealDate: "2026-05-12"},
		{Category: "Motors", Direction: models.DirectionInbound, Quantity: 10, Amount: 100, DealDate: "2026-05-01"},
		{Category: "Motors", Direction: models.DirectionOutbound, Quantity: 2, Amount: -460000, DealDate: "2026-06-02"},
		{Category: "Unlisted", Direction: models.DirectionOutbound, Quantity: 1, Amount: 1, DealDate: "2026-05-05"},
	}

	got := OutboundByCategory(cat, deals, Period{Year: "2026", Month: 5})
	if len(got) != len(cat.Categories) {
		t.Fatalf("chart length = %d, want one bar per canonical category", len(got))
	}

	motors := got[1]
	if motors.DealCount != 2 {
		t.Errorf("deal count = %d, want outbound+production only inside the window", motors.DealCount)
	}
	if motors.TotalAmount != 920000 {
		t.Errorf("amounts must be summed as absolute values, got %v", motors.TotalAmount)
	}
	if motors.TotalQty != 4 {
		t.Errorf("total qty = %v, want 4", motors.TotalQty)
	}

	// Categories without deals still appear, zero-valued.
	if got[0].Name != "Bearings" || got[0].DealCount != 0 {
		t.Errorf("zero-fill entry = %+v", got[0])
	}
}
