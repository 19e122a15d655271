package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"kone-backend/internal/models"
	"kone-backend/internal/normalize"
)

// SheetsClient reads the published spreadsheet exports behind the contact
// views. Both fetches degrade to an empty list: a broken sheet must never
// take a dashboard view down.
type SheetsClient struct {
	client      *resty.Client
	sheetID     string
	internalGID string
	log         *zap.Logger
}

func NewSheetsClient(baseURL, sheetID, internalGID string, log *zap.Logger) *SheetsClient {
	return &SheetsClient{
		client:      resty.New().SetBaseURL(baseURL),
		sheetID:     sheetID,
		internalGID: internalGID,
		log:         log,
	}
}

// The export wraps its JSON in a JS callback.
var gvizWrapper = regexp.MustCompile(`(?s)google\.visualization\.Query\.setResponse\((.*)\);?\s*$`)

type gvizCell struct {
	V any    `json:"v"`
	F string `json:"f"`
}

type gvizTable struct {
	Cols []struct {
		Label string `json:"label"`
	} `json:"cols"`
	Rows []struct {
		C []*gvizCell `json:"c"`
	} `json:"rows"`
}

type gvizResponse struct {
	Table gvizTable `json:"table"`
}

func (s *SheetsClient) fetchTable(ctx context.Context, gid string) (*gvizTable, error) {
	req := s.client.R().SetContext(ctx).
		SetPathParam("id", s.sheetID).
		SetQueryParam("tqx", "out:json")
	if gid != "" {
		req.SetQueryParam("gid", gid)
	}
	resp, err := req.Get("/spreadsheets/d/{id}/gviz/tq")
	if err != nil {
		return nil, fmt.Errorf("fetch sheet: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch sheet: status %d", resp.StatusCode())
	}

	m := gvizWrapper.FindSubmatch(resp.Body())
	if m == nil {
		return nil, fmt.Errorf("response is not a gviz callback")
	}
	var parsed gvizResponse
	if err := json.Unmarshal(m[1], &parsed); err != nil {
		return nil, fmt.Errorf("parse sheet payload: %w", err)
	}
	return &parsed.Table, nil
}

// headerIndex resolves column positions by header label. Labels come from
// the column metadata when the sheet publishes them, otherwise from the
// first data row, which is then consumed.
func headerIndex(t *gvizTable) (map[string]int, [][]*gvizCell) {
	index := make(map[string]int)
	for i, col := range t.Cols {
		if label := strings.TrimSpace(col.Label); label != "" {
			index[label] = i
		}
	}
	rows := make([][]*gvizCell, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, r.C)
	}
	if len(index) > 0 || len(rows) == 0 {
		return index, rows
	}
	for i, cell := range rows[0] {
		if label := strings.TrimSpace(cellString(cell)); label != "" {
			index[label] = i
		}
	}
	return index, rows[1:]
}

func cellString(c *gvizCell) string {
	if c == nil || c.V == nil {
		return ""
	}
	switch v := c.V.(type) {
	case string:
		return v
	case float64:
		if c.F != "" {
			return c.F
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func cellNumber(c *gvizCell) float64 {
	if c == nil || c.V == nil {
		return 0
	}
	return normalize.ParseNumber(c.V)
}

func cellBool(c *gvizCell) bool {
	if c == nil || c.V == nil {
		return false
	}
	if b, ok := c.V.(bool); ok {
		return b
	}
	return strings.EqualFold(cellString(c), "TRUE")
}

type columnSet struct {
	index map[string]int
	cells []*gvizCell
}

func (cs columnSet) at(header string) *gvizCell {
	i, ok := cs.index[header]
	if !ok || i >= len(cs.cells) {
		return nil
	}
	return cs.cells[i]
}

// Contact sheet header labels, as published.
const (
	hdrQuoteIssued   = "견적서발행일"
	hdrInvoiceIssued = "세금계산서발행일"
	hdrCounterparty  = "거래처명"
	hdrItemSummary   = "적요품목"
	hdrSalesTotal    = "매출합계"
	hdrSupplyAmount  = "공급가액"
	hdrTax           = "부가세"
	hdrReceived      = "입금액"
	hdrOutstanding   = "미수잔액"
	hdrDueDate       = "수금예정일"
	hdrHandler       = "담당자"
	hdrHandlerPhone  = "담당자연락처"
	hdrHandlerEmail  = "담당자이메일"
	hdrInvoiceCheck  = "세금계산서확인"
	hdrPaymentCheck  = "입금확인"
	hdrSendCount     = "발송횟수"
)

// Internal contact sheet header labels.
const (
	hdrItemName   = "품목명"
	hdrDepartment = "관리부서"
	hdrPhone      = "연락처"
	hdrEmail      = "이메일"
)

// FetchContacts reads the counterparty ledger sheet. Rows without a
// counterparty name are skipped.
func (s *SheetsClient) FetchContacts(ctx context.Context) []models.ContactRecord {
	table, err := s.fetchTable(ctx, "")
	if err != nil {
		s.log.Error("contact sheet fetch failed", zap.Error(err))
		return []models.ContactRecord{}
	}

	index, rows := headerIndex(table)
	if _, ok := index[hdrCounterparty]; !ok {
		s.log.Error("contact sheet missing expected header", zap.String("header", hdrCounterparty))
		return []models.ContactRecord{}
	}

	out := make([]models.ContactRecord, 0, len(rows))
	for _, cells := range rows {
		cs := columnSet{index: index, cells: cells}
		rec := models.ContactRecord{
			QuoteIssuedAt:   cellString(cs.at(hdrQuoteIssued)),
			InvoiceIssuedAt: cellString(cs.at(hdrInvoiceIssued)),
			Counterparty:    cellString(cs.at(hdrCounterparty)),
			ItemSummary:     cellString(cs.at(hdrItemSummary)),
			SalesTotal:      cellNumber(cs.at(hdrSalesTotal)),
			SupplyAmount:    cellNumber(cs.at(hdrSupplyAmount)),
			Tax:             cellNumber(cs.at(hdrTax)),
			ReceivedAmount:  cellNumber(cs.at(hdrReceived)),
			Outstanding:     cellNumber(cs.at(hdrOutstanding)),
			DueDate:         cellString(cs.at(hdrDueDate)),
			Handler:         cellString(cs.at(hdrHandler)),
			HandlerPhone:    cellString(cs.at(hdrHandlerPhone)),
			HandlerEmail:    cellString(cs.at(hdrHandlerEmail)),
			InvoiceChecked:  cellBool(cs.at(hdrInvoiceCheck)),
			PaymentChecked:  cellBool(cs.at(hdrPaymentCheck)),
			SendCount:       int(cellNumber(cs.at(hdrSendCount))),
		}
		if strings.TrimSpace(rec.Counterparty) == "" {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// FetchInternalContacts reads the team directory sheet. Rows without an
// item name are skipped.
func (s *SheetsClient) FetchInternalContacts(ctx context.Context) []models.InternalContact {
	table, err := s.fetchTable(ctx, s.internalGID)
	if err != nil {
		s.log.Error("internal contact sheet fetch failed", zap.Error(err))
		return []models.InternalContact{}
	}

	index, rows := headerIndex(table)
	if _, ok := index[hdrItemName]; !ok {
		s.log.Error("internal contact sheet missing expected header", zap.String("header", hdrItemName))
		return []models.InternalContact{}
	}

	out := make([]models.InternalContact, 0, len(rows))
	for _, cells := range rows {
		cs := columnSet{index: index, cells: cells}
		rec := models.InternalContact{
			ItemName:   cellString(cs.at(hdrItemName)),
			Department: cellString(cs.at(hdrDepartment)),
			Handler:    cellString(cs.at(hdrHandler)),
			Phone:      cellString(cs.at(hdrPhone)),
			Email:      cellString(cs.at(hdrEmail)),
		}
		if strings.TrimSpace(rec.ItemName) == "" {
			continue
		}
		out = append(out, rec)
	}
	return out
}
