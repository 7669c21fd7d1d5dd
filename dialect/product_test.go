package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectProduct(t *testing.T) {
	tests := []struct {
		name, version string
		want          DatabaseProduct
	}{
		{"Advantage Database Server", "12.0", ProductADS},
		{"ADS", "", ProductADS},
		{"Oracle", "Oracle Database 19c", ProductOracle},
		{"PostgreSQL", "16.2", ProductPostgreSQL},
		{"MySQL", "8.0.36", ProductMySQL},
		{"MySQL", "10.11.6-MariaDB", ProductMariaDB},
		{"MariaDB", "11.2", ProductMariaDB},
		{"SQLite", "3.45.1", ProductSQLite},
		{"Microsoft SQL Server", "16.0", ProductSQLServer},
		{"mssql", "", ProductSQLServer},
		{"sqlite3", "", ProductSQLite},
		{"Informix", "", ProductUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.version, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectProduct(tt.name, tt.version))
		})
	}
}

func TestParseProduct(t *testing.T) {
	for _, p := range Products() {
		got, err := ParseProduct(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	got, err := ParseProduct("Postgres")
	require.NoError(t, err)
	assert.Equal(t, ProductPostgreSQL, got)

	_, err = ParseProduct("db2")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseVersion(t *testing.T) {
	assert.Equal(t, version{8, 0, 36}, parseVersion("8.0.36-log"))
	assert.Equal(t, version{16, 2, 0}, parseVersion("PostgreSQL 16.2 on x86_64-pc-linux-gnu"))
	assert.Equal(t, version{3, 45, 1}, parseVersion("3.45.1"))
	assert.Equal(t, version{}, parseVersion("unknown"))

	assert.True(t, parseVersion("3.30.0").atLeast(3, 30, 0))
	assert.False(t, parseVersion("3.29.9").atLeast(3, 30, 0))
	assert.True(t, parseVersion("10.0").atLeast(8, 0, 0))
	assert.False(t, version{}.known())
}
