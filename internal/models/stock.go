package models

// StockRecord is one row of the stock master. Identity is UniqueKey,
// derived from the item name plus the memo when a memo is present.
type StockRecord struct {
	UniqueKey     string  `json:"unique_key"`
	Category      string  `json:"category"`
	ItemName      string  `json:"item_name"`
	ItemCode      string  `json:"item_code,omitempty"`
	Memo          string  `json:"memo,omitempty"`
	UnitPrice     float64 `json:"unit_price"`
	CurrentQty    float64 `json:"current_qty"`
	PriorMonthQty float64 `json:"prior_month_qty"`
	RiskThreshold float64 `json:"risk_threshold"`
	Turnover      string  `json:"turnover,omitempty"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
	UpdatedAt     string  `json:"updated_at,omitempty"`
}

// StockKey derives the identity key for a stock row. The backend stores the
// same derivation, so fetched rows normally carry it already; this is the
// fallback for rows that do not.
func StockKey(itemName, memo string) string {
	if memo == "" {
		return itemName
	}
	return itemName + "|" + memo
}

// Key returns the record's identity, deriving it when the backend left the
// column empty.
func (s StockRecord) Key() string {
	if s.UniqueKey != "" {
		return s.UniqueKey
	}
	return StockKey(s.ItemName, s.Memo)
}
