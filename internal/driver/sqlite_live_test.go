package driver

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // registers "sqlite"

	"github.com/robustcoffee/mondrian/dialect"
	"github.com/robustcoffee/mondrian/internal/logger"
)

func openLiveSQLite(t *testing.T) (DB, *dialect.Dialect) {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, "sqlite", "file:"+filepath.Join(t.TempDir(), "probe.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	md, err := Probe(ctx, db, "sqlite")
	require.NoError(t, err)

	d, err := dialect.New(md, dialect.WithLogger(logger.Discard()))
	require.NoError(t, err)
	return db, d
}

func TestLiveSQLite_Probe(t *testing.T) {
	_, d := openLiveSQLite(t)

	assert.Equal(t, dialect.ProductSQLite, d.Product())
	assert.True(t, strings.HasPrefix(d.ProductVersion(), "3."), d.ProductVersion())
	assert.Equal(t, `"`, d.IdentifierQuote())
}

func TestLiveSQLite_InlineTableRuns(t *testing.T) {
	db, d := openLiveSQLite(t)
	ptr := func(s string) *string { return &s }

	inline, err := d.GenerateInline(
		[]string{"id", "label"},
		[]string{"Integer", "String"},
		[][]*string{
			{ptr("1"), ptr("it's")},
			{ptr("2"), nil},
			{ptr("3"), ptr("c")},
		})
	require.NoError(t, err)

	var count, nulls int
	err = db.QueryRow(context.Background(),
		"select count(*), sum(case when "+d.QuoteIdentifier("label")+" is null then 1 else 0 end) from ("+inline+") t").
		Scan(&count, &nulls)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 1, nulls)
}

func TestLiveSQLite_NullOrdering(t *testing.T) {
	db, d := openLiveSQLite(t)
	sqlDB := db.SQLDB()
	require.NotNil(t, sqlDB)

	_, err := sqlDB.Exec(`create table t (v integer)`)
	require.NoError(t, err)
	_, err = sqlDB.Exec(`insert into t (v) values (2), (null), (1)`)
	require.NoError(t, err)

	for _, tt := range []struct {
		ascending, nullsLast bool
		want                 []string
	}{
		{true, true, []string{"1", "2", "NULL"}},
		{true, false, []string{"NULL", "1", "2"}},
		{false, true, []string{"2", "1", "NULL"}},
		{false, false, []string{"NULL", "2", "1"}},
	} {
		rows, err := sqlDB.Query("select v from t order by " + d.GenerateOrderByNulls("v", tt.ascending, tt.nullsLast))
		require.NoError(t, err)

		var got []string
		for rows.Next() {
			var v *string
			require.NoError(t, rows.Scan(&v))
			if v == nil {
				got = append(got, "NULL")
			} else {
				got = append(got, *v)
			}
		}
		require.NoError(t, rows.Err())
		rows.Close()
		assert.Equal(t, tt.want, got)
	}
}

func TestLiveSQLite_Literals(t *testing.T) {
	db, d := openLiveSQLite(t)

	var buf strings.Builder
	buf.WriteString("select ")
	require.NoError(t, d.QuoteDateLiteral(&buf, "2024-03-01 10:15:00"))

	var got string
	require.NoError(t, db.QueryRow(context.Background(), buf.String()).Scan(&got))
	assert.Equal(t, "2024-03-01", got)
}

func TestProbeAll(t *testing.T) {
	results := ProbeAll(context.Background(), []Source{
		{Name: "local", Driver: "sqlite", DSN: "file:" + filepath.Join(t.TempDir(), "a.db")},
		{Name: "missing", Driver: "nope", DSN: "x"},
	})

	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "SQLite", results[0].Metadata.ProductName)
	assert.Error(t, results[1].Err)
	assert.Equal(t, "missing", results[1].Source.Name)
}
