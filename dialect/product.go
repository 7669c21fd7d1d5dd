package dialect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robustcoffee/mondrian/internal/errors"
)

// DatabaseProduct identifies the engine a dialect generates SQL for.
type DatabaseProduct int

const (
	ProductUnknown DatabaseProduct = iota
	ProductADS
	ProductOracle
	ProductPostgreSQL
	ProductMySQL
	ProductMariaDB
	ProductSQLite
	ProductSQLServer
)

var productNames = map[DatabaseProduct]string{
	ProductUnknown:    "generic",
	ProductADS:        "ads",
	ProductOracle:     "oracle",
	ProductPostgreSQL: "postgresql",
	ProductMySQL:      "mysql",
	ProductMariaDB:    "mariadb",
	ProductSQLite:     "sqlite",
	ProductSQLServer:  "sqlserver",
}

// String returns the config name of the product.
func (p DatabaseProduct) String() string {
	if name, ok := productNames[p]; ok {
		return name
	}
	return "unknown"
}

// Products lists every product with a dedicated profile, in declaration order.
func Products() []DatabaseProduct {
	return []DatabaseProduct{
		ProductADS,
		ProductOracle,
		ProductPostgreSQL,
		ProductMySQL,
		ProductMariaDB,
		ProductSQLite,
		ProductSQLServer,
		ProductUnknown,
	}
}

// ParseProduct maps a configured product name to a product.
// Accepted aliases: advantage, postgres, pg, mssql, sqlite3, generic.
func ParseProduct(name string) (DatabaseProduct, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ads", "advantage":
		return ProductADS, nil
	case "oracle":
		return ProductOracle, nil
	case "postgresql", "postgres", "pg":
		return ProductPostgreSQL, nil
	case "mysql":
		return ProductMySQL, nil
	case "mariadb":
		return ProductMariaDB, nil
	case "sqlite", "sqlite3":
		return ProductSQLite, nil
	case "sqlserver", "mssql":
		return ProductSQLServer, nil
	case "generic", "":
		return ProductUnknown, nil
	}
	return ProductUnknown, errors.NewInvalidInputError(fmt.Sprintf("unknown database product %q", name))
}

// DetectProduct identifies a product from the name and version a driver
// reports. Unrecognised engines map to ProductUnknown.
func DetectProduct(productName, productVersion string) DatabaseProduct {
	upper := strings.ToUpper(strings.TrimSpace(productName))
	version := strings.ToUpper(productVersion)

	switch {
	case upper == "ADS" || strings.Contains(upper, "ADVANTAGE"):
		return ProductADS
	case strings.HasPrefix(upper, "ORACLE"):
		return ProductOracle
	case strings.Contains(upper, "POSTGRES"):
		return ProductPostgreSQL
	case strings.Contains(upper, "MARIADB"),
		strings.Contains(upper, "MYSQL") && strings.Contains(version, "MARIADB"):
		return ProductMariaDB
	case strings.Contains(upper, "MYSQL"):
		return ProductMySQL
	case strings.Contains(upper, "SQLITE"):
		return ProductSQLite
	case strings.Contains(upper, "SQL SERVER"), upper == "MSSQL", upper == "SQLSERVER":
		return ProductSQLServer
	}

	if p, err := ParseProduct(productName); err == nil {
		return p
	}
	return ProductUnknown
}

// version holds the leading numeric components of a product version string.
type version [3]int

// parseVersion extracts major.minor.patch from strings such as
// "8.0.36-log", "PostgreSQL 16.2 on x86_64" or "3.45.1".
func parseVersion(s string) version {
	var v version
	start := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if start < 0 {
		return v
	}
	s = s[start:]
	for i := 0; i < len(v); i++ {
		end := 0
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
		}
		if end == 0 {
			break
		}
		v[i], _ = strconv.Atoi(s[:end])
		if end >= len(s) || s[end] != '.' {
			break
		}
		s = s[end+1:]
	}
	return v
}

func (v version) atLeast(major, minor, patch int) bool {
	if v[0] != major {
		return v[0] > major
	}
	if v[1] != minor {
		return v[1] > minor
	}
	return v[2] >= patch
}

func (v version) known() bool {
	return v != version{}
}
