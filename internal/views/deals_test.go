package views

import (
	"testing"

	"kone-backend/internal/models"
)

func dealFixture() []models.DealRecord {
	return []models.DealRecord{
		{ID: "1", ItemName: "BRG-6204", Category: "Bearings", Direction: models.DirectionInbound, Counterparty: "Hanil Parts", Quantity: 50, Amount: 150000, DealDate: "2026-05-02", SubmittedAt: "2026-05-02T10:00:00"},
		{ID: "2", ItemName: "MTR-550W", Category: "Motors", Direction: models.DirectionOutbound, Counterparty: "Daesung FA", Quantity: 3, Amount: -690000, DealDate: "2026-05-10", SubmittedAt: "2026-05-10T11:00:00"},
		{ID: "3", ItemName: "BOLT-M8", Category: "Fasteners", Direction: models.DirectionProduction, Counterparty: "-", Quantity: 200, Amount: 4000, DealDate: "2026-06-01", SubmittedAt: "2026-06-01T09:00:00"},
		{ID: "4", ItemName: "BRG-6204", Category: "Bearings", Direction: models.DirectionOutbound, Counterparty: "Daesung FA", Quantity: 10, Amount: -30000, DealDate: "", SubmittedAt: "2026-05-20T15:00:00"},
	}
}

func TestFilterDealsEmptySelectionsAreInclusive(t *testing.T) {
	cat := testCatalog()
	got := FilterDeals(cat, dealFixture(), DealQuery{Period: Period{Year: "2026"}})
	if len(got) != 4 {
		t.Fatalf("empty selections must filter nothing, got %d of 4", len(got))
	}
}

func TestFilterDealsComposes(t *testing.T) {
	cat := testCatalog()
	q := DealQuery{
		Period:     Period{Year: "2026", Month: 5},
		Categories: []string{"Bearings"},
		Directions: []string{models.DirectionOutbound},
		Search:     "daesung",
	}
	got := FilterDeals(cat, dealFixture(), q)
	if len(got) != 1 || got[0].ID != "4" {
		t.Fatalf("composed filters: got %+v", got)
	}
}

func TestFilterDealsPeriodUsesDealDateWithSubmittedFallback(t *testing.T) {
	cat := testCatalog()
	// Record 4 has no deal date; its submission timestamp (May) must place it.
	got := FilterDeals(cat, dealFixture(), DealQuery{Period: Period{Year: "2026", Month: 5}})
	if len(got) != 3 {
		t.Fatalf("May window: got %d records, want 3", len(got))
	}
	for _, d := range got {
		if d.ID == "3" {
			t.Fatal("June record leaked into the May window")
		}
	}
}

func TestFilterDealsDefaultSortNewestFirst(t *testing.T) {
	cat := testCatalog()
	got := FilterDeals(cat, dealFixture(), DealQuery{Period: Period{Year: "2026"}})
	want := []string{"3", "4", "2", "1"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("default order = %v, want %v", ids(got), want)
		}
	}
}

func TestFilterDealsSortByCategoryCanonical(t *testing.T) {
	cat := testCatalog()
	got := FilterDeals(cat, dealFixture(), DealQuery{
		Period:    Period{Year: "2026"},
		SortField: "category",
		Ascending: true,
	})
	if got[0].Category != "Bearings" || got[len(got)-1].Category != "Fasteners" {
		t.Fatalf("canonical category sort = %v", ids(got))
	}
}

func ids(deals []models.DealRecord) []string {
	out := make([]string, len(deals))
	for i, d := range deals {
		out[i] = d.ID
	}
	return out
}

func TestSumDeals(t *testing.T) {
	got := SumDeals(dealFixture())
	if got.InboundQty != 50 {
		t.Errorf("inbound qty = %v, want 50", got.InboundQty)
	}
	// Production counts toward outbound volume.
	if got.OutboundQty != 213 {
		t.Errorf("outbound qty = %v, want 213", got.OutboundQty)
	}
	if got.TotalAmount != 874000 {
		t.Errorf("total amount = %v, want absolute sum 874000", got.TotalAmount)
	}
}
