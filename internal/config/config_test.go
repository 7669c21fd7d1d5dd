package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/robustcoffee/mondrian/dialect"
	"github.com/robustcoffee/mondrian/internal/errors"
	"github.com/robustcoffee/mondrian/internal/logger"
)

const multiConfig = `
default = "warehouse"

[dialects.warehouse]
product = "ads"

[dialects.reporting]
product = "mysql"
product_version = "8.0.36"
sql_mode = "ANSI_QUOTES,ONLY_FULL_GROUP_BY"
null_ordering = "plain"

[dialects.legacy]
product = "sqlserver"
cast_inline_strings = true
max_column_name_length = 128
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[dialects.only]
product = "postgres"
`))
	require.NoError(t, err)

	assert.Equal(t, "only", cfg.Default)
	assert.Equal(t, []string{"warn", "error"}, cfg.Log)

	dc, err := cfg.Dialect("")
	require.NoError(t, err)
	assert.Equal(t, "postgres", dc.Product)
}

func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("MONDRIAN_TEST_URL", "postgres://app@db/app")
	t.Setenv("MONDRIAN_TEST_VERSION", "16.2")

	cfg, err := Parse([]byte(`
[dialects.pg]
driver = "pgx"
url = 'env("MONDRIAN_TEST_URL")'
product_version = "${MONDRIAN_TEST_VERSION}"
`))
	require.NoError(t, err)
	assert.Equal(t, "postgres://app@db/app", cfg.Dialects["pg"].URL)
	assert.Equal(t, "16.2", cfg.Dialects["pg"].ProductVersion)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no dialects", `log = ["info"]`},
		{"unknown product", "[dialects.a]\nproduct = \"db2\""},
		{"unknown null ordering", "[dialects.a]\nproduct = \"ads\"\nnull_ordering = \"sideways\""},
		{"driver without url", "[dialects.a]\ndriver = \"pgx\""},
		{"neither product nor driver", "[dialects.a]\nidentifier_quote = \"`\""},
		{"undefined default", "default = \"b\"\n[dialects.a]\nproduct = \"ads\""},
		{"unknown key", "[dialects.a]\nproduct = \"ads\"\nquote = \"x\""},
		{"negative length", "[dialects.a]\nproduct = \"ads\"\nmax_column_name_length = -1"},
		{"bad toml", "[dialects.a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrConfig)
		})
	}
}

func TestConfig_Dialect(t *testing.T) {
	cfg, err := Parse([]byte(multiConfig))
	require.NoError(t, err)

	assert.Equal(t, []string{"legacy", "reporting", "warehouse"}, cfg.Names())

	dc, err := cfg.Dialect("")
	require.NoError(t, err)
	assert.Equal(t, "ads", dc.Product)

	_, err = cfg.Dialect("missing")
	assert.ErrorIs(t, err, errors.ErrConfig)
}

func TestLoad_SearchesUpwards(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, DefaultFileName), []byte(`
[dialects.pg]
product = "postgresql"
product_version = "${MONDRIAN_DOTENV_VERSION}"
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("MONDRIAN_DOTENV_VERSION=9.4\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("MONDRIAN_DOTENV_VERSION") })

	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	t.Chdir(sub)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "9.4", cfg.Dialects["pg"].ProductVersion)

	built, err := Build(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	assert.False(t, built["pg"].SupportsGroupingSets())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, errors.ErrConfig)
}

func TestBuild_Static(t *testing.T) {
	cfg, err := Parse([]byte(multiConfig))
	require.NoError(t, err)

	built, err := Build(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	require.Len(t, built, 3)

	ads := built["warehouse"]
	assert.Equal(t, dialect.ProductADS, ads.Product())
	assert.Equal(t, "'", ads.IdentifierQuote())
	assert.Equal(t, dialect.NullOrderingEmulate, ads.NullOrdering())

	mysql := built["reporting"]
	assert.Equal(t, dialect.ProductMySQL, mysql.Product())
	assert.Equal(t, `"t"`, mysql.QuoteIdentifier("t"))
	assert.Equal(t, dialect.NullOrderingPlain, mysql.NullOrdering())
	assert.False(t, mysql.Capabilities().AllowsSelectNotInGroupBy)

	mssql := built["legacy"]
	assert.Equal(t, "[t]", mssql.QuoteIdentifier("t"))
	assert.Equal(t, 128, mssql.Capabilities().MaxColumnNameLength)
}

func TestBuild_ProbesDriver(t *testing.T) {
	cfg, err := Parse([]byte(`
[dialects.local]
driver = "sqlite"
url = "file:` + filepath.ToSlash(filepath.Join(t.TempDir(), "probe.db")) + `"

[dialects.broken]
driver = "no-such-driver"
url = "x"
`))
	require.NoError(t, err)

	built, err := Build(context.Background(), cfg, logger.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")

	require.Contains(t, built, "local")
	assert.NotContains(t, built, "broken")
	assert.Equal(t, dialect.ProductSQLite, built["local"].Product())
}

func TestApply(t *testing.T) {
	reg := dialect.NewRegistry()

	cfg, err := Parse([]byte(multiConfig))
	require.NoError(t, err)
	require.NoError(t, Apply(context.Background(), cfg, reg, logger.Discard()))
	assert.Equal(t, []string{"legacy", "reporting", "warehouse"}, reg.Names())

	broken, err := Parse([]byte("[dialects.x]\ndriver = \"no-such-driver\"\nurl = \"x\""))
	require.NoError(t, err)
	assert.Error(t, Apply(context.Background(), broken, reg, logger.Discard()))
	assert.Equal(t, []string{"legacy", "reporting", "warehouse"}, reg.Names())
}

func TestWatch_Reloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("[dialects.a]\nproduct = \"ads\"\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c *Config) { changes <- c })
	}()

	next := []byte("[dialects.a]\nproduct = \"ads\"\n\n[dialects.b]\nproduct = \"oracle\"\n")
	var got *Config
	require.Eventually(t, func() bool {
		select {
		case got = <-changes:
			return true
		default:
			_ = os.WriteFile(path, next, 0o644)
			return false
		}
	}, 5*time.Second, 150*time.Millisecond)

	assert.Equal(t, []string{"a", "b"}, got.Names())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}
