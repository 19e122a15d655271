package views

import (
	"kone-backend/internal/catalog"
	"kone-backend/internal/models"
)

// NewItemsQuery filters the new-items view: records whose identity key is
// not in the manual ordering table, restricted to an update month.
type NewItemsQuery struct {
	Search     string
	Categories []string
	Month      string // "YYYY-MM"; empty disables the month window
	SortField  string // empty = updated_at
	Ascending  bool
}

// NewItems classifies records against the manual ordering table. This is a
// static-membership test, not a date heuristic: a record is new iff its key
// is absent from the table.
func NewItems(cat *catalog.Catalog, stock []models.StockRecord) []models.StockRecord {
	out := make([]models.StockRecord, 0)
	for _, s := range stock {
		if !cat.IsKnownItem(s.Key()) {
			out = append(out, s)
		}
	}
	return out
}

// FilterNewItems composes the membership test with the month window and the
// shared search/category/sort pipeline. Records without an update timestamp
// are treated as belonging to the selected month (inclusive fallback).
func FilterNewItems(cat *catalog.Catalog, stock []models.StockRecord, q NewItemsQuery) []models.StockRecord {
	fresh := NewItems(cat, stock)

	windowed := fresh[:0:0]
	for _, s := range fresh {
		if q.Month != "" && s.UpdatedAt != "" {
			if len(s.UpdatedAt) < 7 || s.UpdatedAt[:7] != q.Month {
				continue
			}
		}
		windowed = append(windowed, s)
	}

	field := q.SortField
	if field == "" {
		field = "updated_at"
	}
	return FilterStock(cat, windowed, StockQuery{
		Search:     q.Search,
		Categories: q.Categories,
		SortField:  field,
		Ascending:  q.Ascending,
	})
}
