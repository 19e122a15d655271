package gateway

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kone-backend/internal/normalize"
)

// PoolPager reads pages straight from the connection pool, returning each
// row as a column-name-keyed map.
type PoolPager struct {
	pool *pgxpool.Pool
}

// NewPoolPager returns nil for a nil pool so the gateway drops into
// simulation mode instead of dereferencing a dead pool.
func NewPoolPager(pool *pgxpool.Pool) Pager {
	if pool == nil {
		return nil
	}
	return &PoolPager{pool: pool}
}

func (p *PoolPager) Page(ctx context.Context, table, orderBy string, offset, limit int) ([]normalize.Row, error) {
	// Table and order-by values come from internal constants, never from
	// request input; the identifier is still quoted.
	q := "SELECT * FROM " + pgx.Identifier{table}.Sanitize()
	if orderBy != "" {
		q += " ORDER BY " + orderBy
	}
	q += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := p.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var out []normalize.Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		row := make(normalize.Row, len(fields))
		for i, f := range fields {
			row[f.Name] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return out, nil
}
