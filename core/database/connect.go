package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/m3rciful/leadbot/core/logger"
	"log/slog"
)

// Connect opens the database connection, configures the pool, and verifies connectivity.
func Connect(cfg Config) (*sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	db, err := sqlx.ConnectContext(ctx, cfg.Driver, cfg.DSN())
	took := time.Since(start)
	if err != nil {
		logger.DB.Error("db connect failed",
			append([]any{slog.String("event", "db.connect")},
				connectAttrs(cfg,
					slog.Duration("duration", logger.RoundMS(took)),
					slog.String("err", err.Error()),
				)...)...,
		)
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if pingErr := db.PingContext(ctx); pingErr != nil {
		logger.DB.Error("db ping failed",
			append([]any{slog.String("event", "db.ping")},
				connectAttrs(cfg, slog.String("err", pingErr.Error()))...)...,
		)
		return nil, fmt.Errorf("db ping: %w", pingErr)
	}

	pool := cfg.MaxConnections
	if cfg.Driver == DriverSQLite {
		// A single writer connection serializes concurrent upserts on the
		// file-backed store.
		pool = 1
	}
	db.SetMaxOpenConns(pool)
	db.SetMaxIdleConns(pool)

	logger.DB.Info("db connected",
		append([]any{slog.String("event", "db.connect")},
			connectAttrs(cfg,
				slog.Int("pool_open", pool),
				slog.Duration("duration", logger.RoundMS(took)),
			)...)...,
	)

	return db, nil
}

func connectAttrs(cfg Config, extra ...any) []any {
	attrs := []any{slog.String("driver", cfg.Driver)}
	if cfg.Driver == DriverSQLite {
		attrs = append(attrs, slog.String("path", cfg.Path))
	} else {
		attrs = append(attrs,
			slog.String("host", cfg.Host),
			slog.String("port", cfg.Port),
			slog.String("db", cfg.Name),
		)
	}
	return append(attrs, extra...)
}

// WaitForDatabase tries to connect until the server is ready or timeout is
// reached. File-backed sqlite needs no readiness loop.
func WaitForDatabase(cfg Config, timeout time.Duration) error {
	if cfg.Driver == DriverSQLite {
		return nil
	}
	start := time.Now()
	var lastErr error
	for {
		db, err := sql.Open(cfg.Driver, cfg.DSN())
		if err == nil {
			if err = db.Ping(); err == nil {
				_ = db.Close()
				return nil
			}
			_ = db.Close()
		}
		lastErr = err
		if time.Since(start) > timeout {
			return fmt.Errorf("timeout reached waiting for database: %w", lastErr)
		}
		time.Sleep(2 * time.Second)
	}
}
