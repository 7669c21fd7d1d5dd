//go:build mysql

package driver

import (
	"context"
	"strings"
	"testing"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robustcoffee/mondrian/dialect"
	"github.com/robustcoffee/mondrian/internal/logger"
)

func TestProbe_MySQLLive(t *testing.T) {
	dsn := getTestDatabaseURL("mysql")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL_MYSQL not set, skipping MySQL test")
	}

	ctx := context.Background()
	db, err := Open(ctx, "mysql", dsn)
	require.NoError(t, err)
	defer db.Close()

	md, err := Probe(ctx, db, "mysql")
	require.NoError(t, err)
	assert.Contains(t, []string{"MySQL", "MariaDB"}, md.ProductName)

	d, err := dialect.New(md, dialect.WithLogger(logger.Discard()))
	require.NoError(t, err)

	var buf strings.Builder
	d.QuoteStringLiteral(&buf, `back\slash 'quote'`)

	var got string
	require.NoError(t, db.QueryRow(ctx, "SELECT "+buf.String()).Scan(&got))
	assert.Equal(t, `back\slash 'quote'`, got)
}
