package views

import (
	"kone-backend/internal/catalog"
	"kone-backend/internal/models"
)

func testCatalog() *catalog.Catalog {
	return catalog.New(catalog.Catalog{
		Source:     "k1",
		Categories: []string{"Bearings", "Motors", "Fasteners"},
		RiskMarker: "RISK",
		SafeMarker: "OK",
		ItemOrder: map[string]int{
			"BRG-6204":       1,
			"MTR-550W":       2,
			"BOLT-M8|coated": 3,
		},
	})
}

func stockFixture() []models.StockRecord {
	return []models.StockRecord{
		{UniqueKey: "MTR-550W", ItemName: "MTR-550W", Category: "Motors", CurrentQty: 4, Amount: 920000, Status: "RISK", UpdatedAt: "2026-08-12T09:00:00"},
		{UniqueKey: "BRG-6204", ItemName: "BRG-6204", Category: "Bearings", CurrentQty: 120, Amount: 360000, Status: "OK", UpdatedAt: "2026-08-03T14:00:00"},
		{UniqueKey: "BOLT-M8|coated", ItemName: "BOLT-M8", Memo: "coated", Category: "Fasteners", CurrentQty: 2400, Amount: 48000, Status: "OK", UpdatedAt: "2026-07-30T10:00:00"},
	}
}
