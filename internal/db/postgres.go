package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"kone-backend/internal/config"
)

// Connect opens the backend pool. An unconfigured database is not an
// error: the service runs in simulation mode on the built-in fallback
// dataset, so this returns nil and the caller degrades.
func Connect(cfg *config.Config, log *zap.Logger) *pgxpool.Pool {
	if !cfg.DatabaseConfigured() {
		log.Warn("database not configured, running in simulation mode")
		return nil
	}

	pool, err := pgxpool.New(context.Background(), cfg.DSN())
	if err != nil {
		log.Warn("db connect failed, running in simulation mode", zap.Error(err))
		return nil
	}

	return pool
}
