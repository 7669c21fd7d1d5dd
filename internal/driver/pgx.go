//go:build pgx

package driver

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func init() {
	openers["pgxpool"] = openPgxPool
	probers["pgxpool"] = probePostgres
}

// PgxPoolAdapter adapts *pgxpool.Pool to the driver.DB interface
// This file is only compiled when the pgx build tag is present
type PgxPoolAdapter struct {
	pool *pgxpool.Pool
}

// NewPgxPool creates a new adapter from *pgxpool.Pool
func NewPgxPool(pool *pgxpool.Pool) DB {
	return &PgxPoolAdapter{pool: pool}
}

// QueryRow executes a query that returns a single row
func (a *PgxPoolAdapter) QueryRow(ctx context.Context, query string, args ...interface{}) Row {
	return &PgxRow{row: a.pool.QueryRow(ctx, query, args...)}
}

func (a *PgxPoolAdapter) Ping(ctx context.Context) error {
	return a.pool.Ping(ctx)
}

func (a *PgxPoolAdapter) Close() error {
	a.pool.Close()
	return nil
}

// SQLDB returns nil as pgxpool.Pool doesn't provide *sql.DB directly
func (a *PgxPoolAdapter) SQLDB() *sql.DB {
	return nil
}

// PgxRow wraps pgx.Row
type PgxRow struct {
	row pgx.Row
}

// Scan copies the columns in the current row into the values pointed at by dest
func (r *PgxRow) Scan(dest ...interface{}) error {
	return r.row.Scan(dest...)
}

func openPgxPool(ctx context.Context, databaseURL string) (DB, error) {
	pool, err := NewPgxPoolWithConfig(ctx, databaseURL, DefaultPoolConfig())
	if err != nil {
		return nil, err
	}
	return NewPgxPool(pool), nil
}
