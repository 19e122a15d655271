package models

// ContactRecord is one row of the spreadsheet-backed receivables sheet.
// Rows repeat per invoice; the contacts and receivables views group them by
// counterparty.
type ContactRecord struct {
	QuoteIssuedAt   string  `json:"quote_issued_at,omitempty"`
	InvoiceIssuedAt string  `json:"invoice_issued_at,omitempty"`
	Counterparty    string  `json:"counterparty"`
	ItemSummary     string  `json:"item_summary,omitempty"`
	SalesTotal      float64 `json:"sales_total"`
	SupplyAmount    float64 `json:"supply_amount"`
	Tax             float64 `json:"tax"`
	ReceivedAmount  float64 `json:"received_amount"`
	Outstanding     float64 `json:"outstanding"`
	DueDate         string  `json:"due_date,omitempty"`
	Handler         string  `json:"handler,omitempty"`
	HandlerPhone    string  `json:"handler_phone,omitempty"`
	HandlerEmail    string  `json:"handler_email,omitempty"`
	InvoiceChecked  bool    `json:"invoice_checked"`
	PaymentChecked  bool    `json:"payment_checked"`
	SendCount       int     `json:"send_count"`
}

// InternalContact is one row of the internal handler sheet. A plain
// reference list, never aggregated.
type InternalContact struct {
	ItemName   string `json:"item_name"`
	Department string `json:"department,omitempty"`
	Handler    string `json:"handler,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
}
