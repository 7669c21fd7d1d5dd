package driver

import (
	"context"
	"database/sql"
)

// Querier is the part of a database handle metadata probing needs.
type Querier interface {
	// QueryRow executes a query that returns a single row
	QueryRow(ctx context.Context, sql string, args ...interface{}) Row
}

// DB is a probe-able connection that owns its resources.
type DB interface {
	Querier

	// Ping verifies the connection is alive
	Ping(ctx context.Context) error

	// Close releases the connection or pool
	Close() error

	// SQLDB returns the underlying *sql.DB
	// Returns nil if not available (e.g., for pgx pool)
	SQLDB() *sql.DB
}

// Row represents a single row result
type Row interface {
	// Scan copies the columns in the current row into the values pointed at by dest
	Scan(dest ...interface{}) error
}

// SQLDBAdapter adapts *sql.DB to the DB interface
type SQLDBAdapter struct {
	db *sql.DB
}

// NewSQLDB creates a new adapter from *sql.DB
func NewSQLDB(db *sql.DB) DB {
	return &SQLDBAdapter{db: db}
}

func (a *SQLDBAdapter) QueryRow(ctx context.Context, query string, args ...interface{}) Row {
	return a.db.QueryRowContext(ctx, query, args...)
}

func (a *SQLDBAdapter) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

func (a *SQLDBAdapter) Close() error {
	return a.db.Close()
}

func (a *SQLDBAdapter) SQLDB() *sql.DB {
	return a.db
}
