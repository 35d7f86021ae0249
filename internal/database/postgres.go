package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

// NewPostgres opens a pgx pool and waits for the server to accept
// connections, backing off exponentially for up to five attempts.
func NewPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, oops.Code("DB_CONNECT_FAILED").With("operation", "create pool").Wrap(err)
	}

	backoff := retry.WithMaxRetries(5, retry.NewExponential(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Postgres not ready, retrying")
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, oops.Code("DB_CONNECT_FAILED").With("operation", "ping").Wrap(err)
	}
	return pool, nil
}

// MigratePostgres creates the users table when missing.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			college TEXT NOT NULL DEFAULT '',
			gender TEXT NOT NULL DEFAULT '',
			degree TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return oops.Code("DB_MIGRATE_FAILED").Wrap(err)
	}
	return nil
}
