// Package postgres implements a Postgres repository using pgx v5. It is used
// to apply generated DDL to a live database.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Config holds Postgres repository configuration.
type Config struct {
	DSN string // connection string for pgxpool
}

// Repository is a Postgres-backed implementation of storage.Execer.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository and returns a Close function for cleanup.
// The pool is pinged once so a bad DSN fails here rather than on first use.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if cfg.DSN == "" {
		return nil, nil, fmt.Errorf("postgres: DSN is required")
	}
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("pgxpool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("postgres: ping: %w", err)
	}
	close := func() { pool.Close() }
	return &Repository{pool: pool}, close, nil
}

// Exec runs one statement inside its own transaction.
func (r *Repository) Exec(ctx context.Context, sql string) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, sql)
		return err
	})
	if err != nil {
		return describe(err)
	}
	return nil
}

// describe surfaces server-side detail for Postgres errors.
func describe(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Detail != "" {
			return fmt.Errorf("exec: %s: %s (%s): %w", pgErr.Message, pgErr.Detail, pgErr.SQLState(), err)
		}
		return fmt.Errorf("exec: %s (%s): %w", pgErr.Message, pgErr.SQLState(), err)
	}
	return fmt.Errorf("exec: %w", err)
}
