package driver

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/robustcoffee/mondrian/dialect"
	contextutil "github.com/robustcoffee/mondrian/internal/context"
	"github.com/robustcoffee/mondrian/internal/errors"
	"github.com/robustcoffee/mondrian/internal/logger"
)

const (
	postgresVersionQuery     = "SELECT version()"
	postgresIdentLengthQuery = "SELECT current_setting('max_identifier_length')"
	mysqlVersionQuery        = "SELECT VERSION(), @@SESSION.sql_mode"
	sqliteVersionQuery       = "SELECT sqlite_version()"
	sqlserverVersionQuery    = "SELECT CAST(SERVERPROPERTY('ProductVersion') AS NVARCHAR(128))"
)

type probeFunc func(ctx context.Context, q Querier) (dialect.Metadata, error)

// probers is keyed by database/sql driver name.
var probers = map[string]probeFunc{
	"pgx":       probePostgres,
	"postgres":  probePostgres,
	"mysql":     probeMySQL,
	"sqlite3":   probeSQLite,
	"sqlite":    probeSQLite,
	"sqlserver": probeSQLServer,
	"mssql":     probeSQLServer,
}

// Probe asks the engine behind q what it is. Drivers without a probe
// report ErrUnsupportedOperation.
func Probe(ctx context.Context, q Querier, driverName string) (dialect.Metadata, error) {
	probe, ok := probers[strings.ToLower(driverName)]
	if !ok {
		return dialect.Metadata{}, errors.NewUnsupportedOperationError("metadata probe for driver " + driverName)
	}

	md, err := probe(ctx, q)
	if err != nil {
		return dialect.Metadata{}, errors.MapDriverError(err)
	}
	logger.Debug("probed metadata", "driver", driverName, "product", md.ProductName, "version", md.ProductVersion)
	return md, nil
}

func queryString(ctx context.Context, q Querier, query string) (string, error) {
	var s string
	if err := q.QueryRow(ctx, query).Scan(&s); err != nil {
		return "", err
	}
	return s, nil
}

func probePostgres(ctx context.Context, q Querier) (dialect.Metadata, error) {
	v, err := queryString(ctx, q, postgresVersionQuery)
	if err != nil {
		return dialect.Metadata{}, err
	}

	// "PostgreSQL 16.2 on x86_64-pc-linux-gnu, compiled by ..."
	md := dialect.Metadata{ProductName: "PostgreSQL", IdentifierQuote: `"`}
	if fields := strings.Fields(v); len(fields) >= 2 {
		md.ProductName = fields[0]
		md.ProductVersion = strings.TrimSuffix(fields[1], ",")
	}

	if n, err := queryString(ctx, q, postgresIdentLengthQuery); err == nil {
		md.MaxColumnNameLength, _ = strconv.Atoi(strings.TrimSpace(n))
	}
	return md, nil
}

func probeMySQL(ctx context.Context, q Querier) (dialect.Metadata, error) {
	var v, mode string
	if err := q.QueryRow(ctx, mysqlVersionQuery).Scan(&v, &mode); err != nil {
		return dialect.Metadata{}, err
	}

	md := dialect.Metadata{
		ProductName:         "MySQL",
		ProductVersion:      v,
		IdentifierQuote:     "`",
		MaxColumnNameLength: 64,
	}
	if strings.Contains(strings.ToLower(v), "mariadb") {
		md.ProductName = "MariaDB"
	}
	ApplySQLMode(&md, mode)
	return md, nil
}

// ApplySQLMode sets the MySQL session flags named in a comma separated
// sql_mode value.
func ApplySQLMode(md *dialect.Metadata, mode string) {
	for _, m := range strings.Split(strings.ToUpper(mode), ",") {
		switch strings.TrimSpace(m) {
		case "ANSI_QUOTES":
			md.ANSIQuotes = true
			md.IdentifierQuote = `"`
		case "NO_BACKSLASH_ESCAPES":
			md.NoBackslashEscapes = true
		case "ONLY_FULL_GROUP_BY":
			md.OnlyFullGroupBy = true
		}
	}
}

func probeSQLite(ctx context.Context, q Querier) (dialect.Metadata, error) {
	v, err := queryString(ctx, q, sqliteVersionQuery)
	if err != nil {
		return dialect.Metadata{}, err
	}
	return dialect.Metadata{ProductName: "SQLite", ProductVersion: v, IdentifierQuote: `"`}, nil
}

func probeSQLServer(ctx context.Context, q Querier) (dialect.Metadata, error) {
	v, err := queryString(ctx, q, sqlserverVersionQuery)
	if err != nil {
		return dialect.Metadata{}, err
	}
	return dialect.Metadata{
		ProductName:         "Microsoft SQL Server",
		ProductVersion:      v,
		IdentifierQuote:     "[]",
		MaxColumnNameLength: 128,
	}, nil
}

// Source is a named datasource to probe.
type Source struct {
	Name   string
	Driver string
	DSN    string
}

// Result is the outcome of probing one Source.
type Result struct {
	Source   Source
	Metadata dialect.Metadata
	Err      error
}

// ProbeAll opens and probes every source concurrently. A failing source
// does not stop the others; its error is reported in its Result.
func ProbeAll(ctx context.Context, sources []Source) []Result {
	results := make([]Result, len(sources))

	var g errgroup.Group
	g.SetLimit(4)
	for i, src := range sources {
		g.Go(func() error {
			results[i] = probeSource(ctx, src)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func probeSource(ctx context.Context, src Source) Result {
	res := Result{Source: src}

	db, err := Open(ctx, src.Driver, src.DSN)
	if err != nil {
		res.Err = err
		return res
	}
	defer db.Close()

	ctx, cancel := contextutil.WithProbeTimeout(ctx)
	defer cancel()

	res.Metadata, res.Err = Probe(ctx, db, src.Driver)
	return res
}
