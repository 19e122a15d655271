package views

import (
	"testing"

	"kone-backend/internal/catalog"
	"kone-backend/internal/models"
)

func TestNewItemsIsMembershipNotDate(t *testing.T) {
	cat := catalog.New(catalog.Catalog{
		Source:     "k1",
		Categories: []string{"Bearings"},
		RiskMarker: "RISK",
		ItemOrder:  map[string]int{"A": 1, "B": 2},
	})
	stock := []models.StockRecord{
		{ItemName: "A", Category: "Bearings", UpdatedAt: "2026-08-01"},
		{ItemName: "C", Category: "Bearings", UpdatedAt: "2019-01-01"},
	}

	got := NewItems(cat, stock)
	if len(got) != 1 || got[0].ItemName != "C" {
		t.Fatalf("only the unranked item is new, got %+v", got)
	}
}

func TestFilterNewItemsMonthWindow(t *testing.T) {
	cat := catalog.New(catalog.Catalog{
		Source:     "k1",
		Categories: []string{"Bearings"},
		RiskMarker: "RISK",
	})
	stock := []models.StockRecord{
		{ItemName: "in-window", Category: "Bearings", UpdatedAt: "2026-08-14T10:00:00"},
		{ItemName: "out-of-window", Category: "Bearings", UpdatedAt: "2026-07-14T10:00:00"},
		{ItemName: "undated", Category: "Bearings", UpdatedAt: ""},
	}

	got := FilterNewItems(cat, stock, NewItemsQuery{Month: "2026-08"})
	if len(got) != 2 {
		t.Fatalf("month window: got %d records, want 2 (in-window + undated)", len(got))
	}
	for _, s := range got {
		if s.ItemName == "out-of-window" {
			t.Fatal("record outside the month window was kept")
		}
	}
}

func TestFilterNewItemsDefaultSortNewestFirst(t *testing.T) {
	cat := catalog.New(catalog.Catalog{
		Source:     "k1",
		Categories: []string{"Bearings"},
		RiskMarker: "RISK",
	})
	stock := []models.StockRecord{
		{ItemName: "older", Category: "Bearings", UpdatedAt: "2026-08-01"},
		{ItemName: "newer", Category: "Bearings", UpdatedAt: "2026-08-20"},
	}
	got := FilterNewItems(cat, stock, NewItemsQuery{})
	if got[0].ItemName != "newer" {
		t.Fatalf("default sort must be newest first, got %q", got[0].ItemName)
	}
}
