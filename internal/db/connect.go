package db

import (
	"context"
	"time"

	"taskboard/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

const connectAttempts = 5

// Connect opens the pool and waits for the database to answer a ping.
func Connect(ctx context.Context, dsn string) *pgxpool.Pool {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Fatal("invalid DATABASE_URL", "error", err)
	}
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to create database pool", "error", err)
	}

	delay := time.Second
	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = pool.Ping(pingCtx)
		cancel()
		if err == nil {
			break
		}
		if attempt == connectAttempts {
			logger.Fatal("failed to ping database", "error", err, "attempts", attempt)
		}
		logger.Warn("database not ready, retrying", "error", err, "attempt", attempt, "delay", delay)
		time.Sleep(delay)
		delay *= 2
	}

	logger.Info("database connected", "max_conns", cfg.MaxConns)
	return pool
}
