package dialect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robustcoffee/mondrian/internal/logger"
)

func newTestDialect(t *testing.T, md Metadata, opts ...Option) *Dialect {
	t.Helper()
	opts = append([]Option{WithLogger(logger.Discard())}, opts...)
	d, err := New(md, opts...)
	require.NoError(t, err)
	return d
}

func adsMetadata() Metadata {
	return Metadata{ProductName: "Advantage Database Server", ProductVersion: "12.0.0.0"}
}

func TestADSCapabilities(t *testing.T) {
	d := newTestDialect(t, adsMetadata())

	assert.Equal(t, ProductADS, d.Product())
	assert.False(t, d.AllowsAs())
	assert.False(t, d.AllowsFromQuery())
	assert.True(t, d.AllowsJoinOn())
	assert.True(t, d.RequiresGroupByAlias())
	assert.True(t, d.RequiresOrderByAlias())
	assert.True(t, d.RequiresHavingAlias())
	assert.Equal(t, d.RequiresOrderByAlias(), d.AllowsOrderByAlias())
	assert.True(t, d.AllowsRegularExpressionInWhereClause())
	assert.True(t, d.SupportsGroupingSets())
	assert.Equal(t, NullOrderingEmulate, d.NullOrdering())
}

func TestCapabilitiesAreACopy(t *testing.T) {
	d := newTestDialect(t, adsMetadata())

	caps := d.Capabilities()
	caps.AllowsAs = true
	assert.False(t, d.AllowsAs())
	assert.False(t, d.Capabilities().AllowsAs)
}

func TestNew_MetadataDrivenCapabilities(t *testing.T) {
	mysql57 := newTestDialect(t, Metadata{ProductName: "MySQL", ProductVersion: "5.7.44-log"})
	assert.False(t, mysql57.AllowsRegularExpressionInWhereClause())

	mysql8 := newTestDialect(t, Metadata{ProductName: "MySQL", ProductVersion: "8.0.36", OnlyFullGroupBy: true})
	assert.True(t, mysql8.AllowsRegularExpressionInWhereClause())
	assert.False(t, mysql8.AllowsSelectNotInGroupBy())

	pg94 := newTestDialect(t, Metadata{ProductName: "PostgreSQL", ProductVersion: "9.4.26"})
	assert.False(t, pg94.SupportsGroupingSets())

	pg16 := newTestDialect(t, Metadata{ProductName: "PostgreSQL", ProductVersion: "16.2", MaxColumnNameLength: 63})
	assert.True(t, pg16.SupportsGroupingSets())
	assert.Equal(t, 63, pg16.Capabilities().MaxColumnNameLength)

	sqlite := newTestDialect(t, Metadata{ProductName: "SQLite", ProductVersion: "3.22.0"})
	assert.False(t, sqlite.AllowsRegularExpressionInWhereClause())
}

func TestNew_UnknownProductIsGeneric(t *testing.T) {
	d := newTestDialect(t, Metadata{ProductName: "Firebird"})

	assert.Equal(t, ProductUnknown, d.Product())
	assert.Equal(t, `"`, d.IdentifierQuote())
	assert.False(t, d.AllowsRegularExpressionInWhereClause())
}

func TestNew_WithProductOverridesDetection(t *testing.T) {
	d := newTestDialect(t, Metadata{ProductName: "PostgreSQL"}, WithProduct(ProductADS))
	assert.Equal(t, ProductADS, d.Product())
}

func TestNew_RejectsNegativeColumnLength(t *testing.T) {
	_, err := New(Metadata{MaxColumnNameLength: -1}, WithLogger(logger.Discard()))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNew_InstancesHaveDistinctIDs(t *testing.T) {
	a := newTestDialect(t, adsMetadata())
	b := newTestDialect(t, adsMetadata())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestQuoteIdentifier_Fallback(t *testing.T) {
	tests := []struct {
		name     string
		md       Metadata
		wantTok  string
		wantCol  string
		wantQual string
	}{
		{"ads empty quote", adsMetadata(), "'", "'col'", "'sales'.'fact'"},
		{"ads blank quote", Metadata{ProductName: "ADS", IdentifierQuote: "  "}, "'", "'col'", "'sales'.'fact'"},
		{"ads reported quote", Metadata{ProductName: "ADS", IdentifierQuote: `"`}, `"`, `"col"`, `"sales"."fact"`},
		{"mysql default", Metadata{ProductName: "MySQL"}, "`", "`col`", "`sales`.`fact`"},
		{"mysql ansi quotes", Metadata{ProductName: "MySQL", ANSIQuotes: true}, `"`, `"col"`, `"sales"."fact"`},
		{"sql server", Metadata{ProductName: "Microsoft SQL Server"}, "[]", "[col]", "[sales].[fact]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDialect(t, tt.md)
			assert.Equal(t, tt.wantTok, d.IdentifierQuote())
			assert.Equal(t, tt.wantCol, d.QuoteIdentifier("col"))
			assert.Equal(t, tt.wantQual, d.QuoteIdentifier("sales.fact"))
		})
	}
}

func TestQuoteIdentifier_Forms(t *testing.T) {
	d := newTestDialect(t, Metadata{ProductName: "PostgreSQL", IdentifierQuote: `"`})

	assert.Equal(t, `"already"`, d.QuoteIdentifier(`"already"`))
	assert.Equal(t, `"a""b"`, d.QuoteIdentifier(`a"b`))
	assert.Equal(t, `"a.b.c"`, d.QuoteIdentifier("a.b.c"))
	assert.Equal(t, `".x"`, d.QuoteIdentifier(".x"))

	var buf strings.Builder
	d.QuoteIdentifierTo(&buf, "", "sales", "fact")
	assert.Equal(t, `"sales"."fact"`, buf.String())

	mssql := newTestDialect(t, Metadata{ProductName: "Microsoft SQL Server"})
	assert.Equal(t, "[a]]b]", mssql.QuoteIdentifier("a]b"))
}

func TestQuoteResolver(t *testing.T) {
	r := QuoteResolver{Fallback: "'"}
	assert.Equal(t, "'", r.Resolve(""))
	assert.Equal(t, "'", r.Resolve(" "))
	assert.Equal(t, "`", r.Resolve("`"))
}

func TestCaseWhenElseAndToUpper(t *testing.T) {
	d := newTestDialect(t, adsMetadata())
	assert.Equal(t, "CASE WHEN a > 1 THEN 'x' ELSE 'y' END", d.CaseWhenElse("a > 1", "'x'", "'y'"))
	assert.Equal(t, "UPPER(name)", d.ToUpper("name"))
}

func TestCapabilityFlagsListing(t *testing.T) {
	d := newTestDialect(t, adsMetadata())

	flags := d.Capabilities().Flags()
	require.NotEmpty(t, flags)
	assert.Equal(t, "allowsAs", flags[0].Name)
	assert.False(t, flags[0].Value)
}
