package gateway

import (
	"math/rand"
	"time"

	"kone-backend/internal/models"
)

// FallbackStock is the built-in simulation dataset served when no database
// is configured or the first page already failed. Quantities jitter per
// call so the dashboard visibly moves in demo mode.
func FallbackStock() []models.StockRecord {
	now := time.Now().Format("2006-01-02T15:04:05")
	items := []models.StockRecord{
		{Category: "신천등기구_조립", ItemName: "S-보안등기구-AB [2구]", UnitPrice: 75000, CurrentQty: float64(rand.Intn(20) + 5), PriorMonthQty: 100, RiskThreshold: 30, Status: "🔴 위험", Amount: 1500000},
		{Category: "K1모듈", ItemName: "LEMWA33X80LX3000", UnitPrice: 3400, CurrentQty: float64(rand.Intn(50) + 100), PriorMonthQty: 150, RiskThreshold: 45, Status: "🟢 안전", Amount: 340000},
		{Category: "신천등기구_미조립", ItemName: "방열판-150W [AL6063]", UnitPrice: 11125, CurrentQty: float64(rand.Intn(10)), PriorMonthQty: 80, RiskThreshold: 24, Status: "🔴 위험", Amount: 890000},
		{Category: "하네스", ItemName: "LG-Innotek 5630", UnitPrice: 2240, CurrentQty: float64(2500 + rand.Intn(100)), PriorMonthQty: 2800, RiskThreshold: 500, Status: "🟢 안전", Amount: 5600000},
		{Category: "유니온SMPS", ItemName: "KS-50W-Outdoor", UnitPrice: 20000, CurrentQty: 12, PriorMonthQty: 60, RiskThreshold: 15, Status: "🔴 위험", Amount: 240000},
		{Category: "기타재고", ItemName: "Diecast-AL-200", UnitPrice: 26666.67, CurrentQty: 45, PriorMonthQty: 40, RiskThreshold: 10, Status: "🟡 보류", Amount: 1200000},
	}
	for i := range items {
		items[i].UniqueKey = models.StockKey(items[i].ItemName, items[i].Memo)
		items[i].UpdatedAt = now
	}
	return items
}
