package gateway

import (
	"context"

	"go.uber.org/zap"

	"kone-backend/internal/models"
	"kone-backend/internal/normalize"
)

// Source tags where a collection's data came from, so the UI can show a
// simulation banner when the backend is unreachable.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

const pageSize = 1000

// Pager fetches one page of raw rows from a table. The production
// implementation is backed by the connection pool; tests inject fakes.
type Pager interface {
	Page(ctx context.Context, table, orderBy string, offset, limit int) ([]normalize.Row, error)
}

// Gateway is the single entry point for bulk reads. It never propagates
// transport errors to callers: every fetch returns usable data plus a
// source tag, and failures are logged here.
type Gateway struct {
	pager Pager
	log   *zap.Logger
}

func New(pager Pager, log *zap.Logger) *Gateway {
	if pager == nil {
		log.Warn("database not configured, serving built-in simulation data")
	}
	return &Gateway{pager: pager, log: log}
}

// fetchAll pages through a table until a short page. A page-level error
// aborts pagination; rows accumulated before the error are still returned.
func (g *Gateway) fetchAll(ctx context.Context, table, orderBy string) ([]normalize.Row, bool) {
	if g.pager == nil {
		return nil, false
	}

	var all []normalize.Row
	for offset := 0; ; offset += pageSize {
		page, err := g.pager.Page(ctx, table, orderBy, offset, pageSize)
		if err != nil {
			g.log.Error("page fetch failed",
				zap.String("table", table),
				zap.Int("offset", offset),
				zap.Int("accumulated", len(all)),
				zap.Error(err))
			return all, len(all) > 0
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, true
		}
	}
}

// FetchStock bulk-reads a stock table. When nothing live is available the
// built-in simulation dataset stands in.
func (g *Gateway) FetchStock(ctx context.Context, table string) ([]models.StockRecord, Source) {
	rows, live := g.fetchAll(ctx, table, "")
	if !live {
		return FallbackStock(), SourceFallback
	}

	records := make([]models.StockRecord, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		rec, err := normalize.DecodeStock(row)
		if err != nil {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	if dropped > 0 {
		g.log.Warn("dropped malformed stock rows",
			zap.String("table", table), zap.Int("dropped", dropped))
	}
	return records, SourceLive
}

// FetchDeals bulk-reads a deal table ordered by submission time. There is
// no simulated deal history: failure yields an empty tagged slice.
func (g *Gateway) FetchDeals(ctx context.Context, table string) ([]models.DealRecord, Source) {
	rows, live := g.fetchAll(ctx, table, "submitted_at")
	if !live {
		return []models.DealRecord{}, SourceFallback
	}

	records := make([]models.DealRecord, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		rec, err := normalize.DecodeDeal(row)
		if err != nil {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	if dropped > 0 {
		g.log.Warn("dropped malformed deal rows",
			zap.String("table", table), zap.Int("dropped", dropped))
	}
	return records, SourceLive
}

// FetchAuditLogs reads the most recent entries, newest first. Empty on any
// failure.
func (g *Gateway) FetchAuditLogs(ctx context.Context, limit int) []models.AuditLogEntry {
	if g.pager == nil {
		return []models.AuditLogEntry{}
	}
	rows, err := g.pager.Page(ctx, "audit_logs", "created_at DESC", 0, limit)
	if err != nil {
		g.log.Error("audit log fetch failed", zap.Error(err))
		return []models.AuditLogEntry{}
	}

	entries := make([]models.AuditLogEntry, 0, len(rows))
	for _, row := range rows {
		entry, err := normalize.DecodeAuditLog(row)
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}
