package main

import (
	"os"

	"github.com/robustcoffee/mondrian/cmd/mondrian/cmd"

	// Database drivers available to probe and watch
	_ "github.com/go-sql-driver/mysql"  // MySQL and MariaDB
	_ "github.com/jackc/pgx/v5/stdlib"  // PostgreSQL, as "pgx"
	_ "github.com/lib/pq"               // PostgreSQL, as "postgres"
	_ "github.com/mattn/go-sqlite3"     // SQLite, as "sqlite3"
	_ "github.com/microsoft/go-mssqldb" // SQL Server, as "sqlserver"
	_ "modernc.org/sqlite"              // SQLite without cgo, as "sqlite"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
