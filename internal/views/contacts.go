package views

import (
	"sort"
	"strings"

	"kone-backend/internal/models"
)

// ContactGroup is one counterparty after merging its contact rows.
// Non-monetary fields keep the first non-empty value seen in input order;
// monetary fields are summed across the group.
type ContactGroup struct {
	Counterparty   string  `json:"counterparty"`
	ItemSummary    string  `json:"item_summary"`
	Handler        string  `json:"handler"`
	HandlerPhone   string  `json:"handler_phone"`
	HandlerEmail   string  `json:"handler_email"`
	SalesTotal     float64 `json:"sales_total"`
	SupplyAmount   float64 `json:"supply_amount"`
	Tax            float64 `json:"tax"`
	ReceivedAmount float64 `json:"received_amount"`
	Outstanding    float64 `json:"outstanding"`
	RowCount       int     `json:"row_count"`
}

func takeFirst(dst *string, v string) {
	if *dst == "" && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

// GroupContacts merges contact rows by counterparty, preserving first
// appearance order. Rows without a counterparty are dropped.
func GroupContacts(rows []models.ContactRecord) []ContactGroup {
	index := make(map[string]int)
	groups := make([]ContactGroup, 0)

	for _, r := range rows {
		name := strings.TrimSpace(r.Counterparty)
		if name == "" {
			continue
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, ContactGroup{Counterparty: name})
		}
		g := &groups[i]
		takeFirst(&g.ItemSummary, r.ItemSummary)
		takeFirst(&g.Handler, r.Handler)
		takeFirst(&g.HandlerPhone, r.HandlerPhone)
		takeFirst(&g.HandlerEmail, r.HandlerEmail)
		g.SalesTotal += r.SalesTotal
		g.SupplyAmount += r.SupplyAmount
		g.Tax += r.Tax
		g.ReceivedAmount += r.ReceivedAmount
		g.Outstanding += r.Outstanding
		g.RowCount++
	}
	return groups
}

// FilterContactGroups narrows grouped contacts by a case-insensitive
// substring search over counterparty and handler.
func FilterContactGroups(groups []ContactGroup, search string) []ContactGroup {
	search = strings.TrimSpace(search)
	out := make([]ContactGroup, 0, len(groups))
	for _, g := range groups {
		if search != "" &&
			!matchesFold(g.Counterparty, search) &&
			!matchesFold(g.Handler, search) {
			continue
		}
		out = append(out, g)
	}
	return out
}

// Receivables payment states.
const (
	PaymentAll    = "all"
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// ReceivablesQuery filters raw contact rows for the receivables view.
type ReceivablesQuery struct {
	Search  string
	Payment string // all | unpaid | paid; empty means all
}

// FilterReceivables keeps rows matching the payment state and search,
// sorted by due date ascending with undated rows last.
func FilterReceivables(rows []models.ContactRecord, q ReceivablesQuery) []models.ContactRecord {
	out := make([]models.ContactRecord, 0, len(rows))
	for _, r := range rows {
		switch q.Payment {
		case PaymentUnpaid:
			if r.Outstanding <= 0 {
				continue
			}
		case PaymentPaid:
			if r.Outstanding > 0 {
				continue
			}
		}
		if q.Search != "" &&
			!matchesFold(r.Counterparty, q.Search) &&
			!matchesFold(r.ItemSummary, q.Search) &&
			!matchesFold(r.Handler, q.Search) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DueDate, out[j].DueDate
		if a == "" {
			return false
		}
		if b == "" {
			return true
		}
		return a < b
	})
	return out
}

// ReceivablesTotals aggregates the filtered receivables rows.
type ReceivablesTotals struct {
	SalesTotal     float64 `json:"sales_total"`
	ReceivedAmount float64 `json:"received_amount"`
	Outstanding    float64 `json:"outstanding"`
	UnpaidCount    int     `json:"unpaid_count"`
}

func SumReceivables(rows []models.ContactRecord) ReceivablesTotals {
	var t ReceivablesTotals
	for _, r := range rows {
		t.SalesTotal += r.SalesTotal
		t.ReceivedAmount += r.ReceivedAmount
		t.Outstanding += r.Outstanding
		if r.Outstanding > 0 {
			t.UnpaidCount++
		}
	}
	return t
}

// FilterInternalContacts narrows the team contact directory by item name,
// department, or handler.
func FilterInternalContacts(rows []models.InternalContact, search string) []models.InternalContact {
	search = strings.TrimSpace(search)
	if search == "" {
		return rows
	}
	out := make([]models.InternalContact, 0, len(rows))
	for _, r := range rows {
		if matchesFold(r.ItemName, search) ||
			matchesFold(r.Department, search) ||
			matchesFold(r.Handler, search) {
			out = append(out, r)
		}
	}
	return out
}
