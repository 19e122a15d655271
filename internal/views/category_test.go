package views

import (
	"testing"

	"kone-backend/internal/models"
)

func TestSummarizeCategoriesZeroFilled(t *testing.T) {
	cat := testCatalog()
	stock := []models.StockRecord{
		{ItemName: "BRG-6204", Category: "Bearings", CurrentQty: 10, Amount: 30000, Status: "OK"},
		{ItemName: "BRG-6305", Category: "Bearings", CurrentQty: 2, Amount: 9000, Status: "RISK"},
		{ItemName: "UNK-1", Category: "Unlisted", CurrentQty: 99, Amount: 1, Status: "OK"},
	}

	got := SummarizeCategories(cat, stock)
	if len(got) != len(cat.Categories) {
		t.Fatalf("summary length = %d, want one entry per canonical category (%d)", len(got), len(cat.Categories))
	}
	for i, name := range cat.Categories {
		if got[i].Name != name {
			t.Fatalf("entry %d = %q, want canonical order %q", i, got[i].Name, name)
		}
	}

	bearings := got[0]
	if bearings.ItemCount != 2 || bearings.TotalQty != 12 || bearings.TotalAmount != 39000 {
		t.Errorf("bearings rollup = %+v", bearings)
	}
	if bearings.RiskCount != 1 {
		t.Errorf("bearings risk count = %d, want 1", bearings.RiskCount)
	}

	// Motors had no records: present and zero-valued, not omitted.
	if got[1].Name != "Motors" || got[1].ItemCount != 0 || got[1].TotalAmount != 0 {
		t.Errorf("empty category entry = %+v", got[1])
	}
}

func TestSummarizeCategoriesExactMatchOnly(t *testing.T) {
	cat := testCatalog()
	stock := []models.StockRecord{
		{ItemName: "X", Category: "  Motors ", CurrentQty: 1, Amount: 100},
		{ItemName: "Y", Category: "Motor", CurrentQty: 1, Amount: 100},
	}
	got := SummarizeCategories(cat, stock)
	if got[1].ItemCount != 1 {
		t.Errorf("trimmed exact match should count only the whitespace-padded row, got %d", got[1].ItemCount)
	}
}
