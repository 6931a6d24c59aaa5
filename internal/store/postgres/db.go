package postgres

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Open connects to Postgres and retries the initial ping with exponential
// backoff until maxWait elapses, so the API can start before the database.
func Open(ctx context.Context, dsn string, maxWait time.Duration) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = maxWait
	err = backoff.RetryNotify(
		func() error { return pool.Ping(ctx) },
		backoff.WithContext(b, ctx),
		func(err error, next time.Duration) {
			log.Warn().Err(err).Dur("retry_in", next).Msg("db ping failed")
		},
	)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func MustOpen(ctx context.Context, dsn string) *pgxpool.Pool {
	pool, err := Open(ctx, dsn, 30*time.Second)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect fail")
	}
	return pool
}
