package realtime

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// PgxConnector opens dedicated notification connections. LISTEN holds the
// connection for its lifetime, so it never comes from the shared pool.
func PgxConnector(connString string) ConnectFunc {
	if connString == "" {
		return nil
	}
	return func(ctx context.Context) (Listener, error) {
		conn, err := pgx.Connect(ctx, connString)
		if err != nil {
			return nil, fmt.Errorf("notification connect: %w", err)
		}
		return &pgxListener{conn: conn}, nil
	}
}

type pgxListener struct {
	conn *pgx.Conn
}

func (p *pgxListener) Listen(ctx context.Context, channel string) error {
	_, err := p.conn.Exec(ctx, "LISTEN "+pgx.Identifier{channel}.Sanitize())
	return err
}

func (p *pgxListener) WaitForNotification(ctx context.Context) (string, error) {
	n, err := p.conn.WaitForNotification(ctx)
	if err != nil {
		return "", err
	}
	return n.Channel, nil
}

func (p *pgxListener) Close(ctx context.Context) error {
	return p.conn.Close(ctx)
}
