package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"kone-backend/internal/models"
)

// Row is one raw backend row before any typing is applied. The backend is
// loosely typed: numeric columns arrive as numbers or formatted strings,
// string columns may be absent entirely.
type Row map[string]any

// DecodeError reports a row the decoder refused. Malformed rows are dropped
// by callers, not defaulted wholesale.
type DecodeError struct {
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode: field %q: %s", e.Field, e.Reason)
}

// ParseNumber coerces any backend value to a finite float64. Numeric values
// pass through, strings are trimmed and stripped of thousands separators
// before parsing, everything else becomes 0. Total: never errors, never
// returns NaN or Inf.
func ParseNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		clean := strings.TrimSpace(strings.ReplaceAll(n, ",", ""))
		if clean == "" {
			return 0
		}
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			return 0
		}
		return finite(f)
	default:
		return 0
	}
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// str returns the trimmed string value of a column, or the empty string.
func str(row Row, key string) string {
	s, _ := row[key].(string)
	return strings.TrimSpace(s)
}

// strOr is like str with a placeholder for absent values.
func strOr(row Row, key, placeholder string) string {
	if s := str(row, key); s != "" {
		return s
	}
	return placeholder
}

// DecodeStock validates and types one stock row. The display name is the one
// required field; a row without it is malformed and rejected.
func DecodeStock(row Row) (models.StockRecord, error) {
	name := str(row, "item_name")
	if name == "" {
		return models.StockRecord{}, &DecodeError{Field: "item_name", Reason: "missing"}
	}

	rec := models.StockRecord{
		UniqueKey:     str(row, "unique_key"),
		Category:      str(row, "category"),
		ItemName:      name,
		ItemCode:      str(row, "item_code"),
		Memo:          str(row, "memo"),
		UnitPrice:     ParseNumber(row["unit_price"]),
		CurrentQty:    ParseNumber(row["current_qty"]),
		PriorMonthQty: ParseNumber(row["prior_month_qty"]),
		RiskThreshold: ParseNumber(row["risk_threshold"]),
		Turnover:      str(row, "turnover"),
		Status:        strOr(row, "status", "-"),
		Amount:        ParseNumber(row["amount"]),
		UpdatedAt:     str(row, "updated_at"),
	}
	// Some exports carry the total under a different column.
	if rec.Amount == 0 {
		rec.Amount = ParseNumber(row["total_amount"])
	}
	if rec.UniqueKey == "" {
		rec.UniqueKey = models.StockKey(rec.ItemName, rec.Memo)
	}
	return rec, nil
}

// DecodeDeal validates and types one transaction row.
func DecodeDeal(row Row) (models.DealRecord, error) {
	name := str(row, "item_name")
	if name == "" {
		return models.DealRecord{}, &DecodeError{Field: "item_name", Reason: "missing"}
	}

	id := str(row, "id")
	if id == "" {
		// Numeric ids are common; stringify rather than reject.
		if n := ParseNumber(row["id"]); n != 0 {
			id = strconv.FormatInt(int64(n), 10)
		}
	}
	if id == "" {
		return models.DealRecord{}, &DecodeError{Field: "id", Reason: "missing"}
	}

	return models.DealRecord{
		ID:           id,
		Category:     str(row, "category"),
		ItemName:     name,
		ItemCode:     str(row, "item_code"),
		Memo:         str(row, "memo"),
		UnitPrice:    ParseNumber(row["unit_price"]),
		Counterparty: strOr(row, "counterparty", "-"),
		Direction:    strOr(row, "direction", models.DirectionInbound),
		Quantity:     ParseNumber(row["quantity"]),
		Amount:       ParseNumber(row["amount"]),
		DealDate:     strOr(row, "deal_date", "-"),
		Handler:      str(row, "handler"),
		Note:         str(row, "note"),
		SubmittedAt:  str(row, "submitted_at"),
		StockBefore:  ParseNumber(row["stock_before"]),
		StockAfter:   ParseNumber(row["stock_after"]),
	}, nil
}

// DecodeAuditLog types one audit trail row. Table name and action are the
// required fields.
func DecodeAuditLog(row Row) (models.AuditLogEntry, error) {
	table := str(row, "table_name")
	if table == "" {
		return models.AuditLogEntry{}, &DecodeError{Field: "table_name", Reason: "missing"}
	}
	action := str(row, "action")
	if action == "" {
		return models.AuditLogEntry{}, &DecodeError{Field: "action", Reason: "missing"}
	}

	entry := models.AuditLogEntry{
		ID:        int64(ParseNumber(row["id"])),
		TableName: table,
		Action:    action,
		RecordID:  strPtr(row, "record_id"),
		UserID:    strPtr(row, "user_id"),
		UserEmail: strPtr(row, "user_email"),
	}
	if m, ok := row["old_data"].(map[string]any); ok {
		entry.OldData = m
	}
	if m, ok := row["new_data"].(map[string]any); ok {
		entry.NewData = m
	}
	switch t := row["created_at"].(type) {
	case time.Time:
		entry.CreatedAt = t
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			entry.CreatedAt = parsed
		}
	}
	return entry, nil
}

// strPtr returns a pointer to the trimmed column value, or nil when absent.
func strPtr(row Row, key string) *string {
	if s := str(row, key); s != "" {
		return &s
	}
	return nil
}
