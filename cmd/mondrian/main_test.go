package main

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDriversLinked(t *testing.T) {
	drivers := sql.Drivers()
	for _, name := range []string{"mysql", "pgx", "postgres", "sqlite3", "sqlite", "sqlserver"} {
		assert.Contains(t, drivers, name)
	}
}
