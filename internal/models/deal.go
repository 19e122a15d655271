package models

// Deal directions as stored by the backend. Production is a sub-type that
// only the secondary data source uses; it is treated like outbound in
// aggregate sums.
const (
	DirectionInbound    = "inbound"
	DirectionOutbound   = "outbound"
	DirectionProduction = "production"
)

// DealRecord is one transaction row. Immutable once fetched; the source is
// append-only.
type DealRecord struct {
	ID           string  `json:"id"`
	Category     string  `json:"category"`
	ItemName     string  `json:"item_name"`
	ItemCode     string  `json:"item_code,omitempty"`
	Memo         string  `json:"memo,omitempty"`
	UnitPrice    float64 `json:"unit_price"`
	Counterparty string  `json:"counterparty"`
	Direction    string  `json:"direction"`
	Quantity     float64 `json:"quantity"`
	Amount       float64 `json:"amount"`
	DealDate     string  `json:"deal_date"`
	Handler      string  `json:"handler,omitempty"`
	Note         string  `json:"note,omitempty"`
	SubmittedAt  string  `json:"submitted_at,omitempty"`
	StockBefore  float64 `json:"stock_before"`
	StockAfter   float64 `json:"stock_after"`
}

// When returns the date used for period filtering: the transaction date,
// falling back to the submission timestamp.
func (d DealRecord) When() string {
	if d.DealDate != "" && d.DealDate != "-" {
		return d.DealDate
	}
	return d.SubmittedAt
}
