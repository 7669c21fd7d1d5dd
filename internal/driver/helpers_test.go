package driver

import "os"

// getTestDatabaseURL gets test database URL from environment variables
//
//nolint:unused // Used by test files with build tags
func getTestDatabaseURL(provider string) string {
	var envVar string
	switch provider {
	case "postgresql":
		envVar = os.Getenv("TEST_DATABASE_URL_POSTGRESQL")
	case "mysql":
		envVar = os.Getenv("TEST_DATABASE_URL_MYSQL")
	case "sqlserver":
		envVar = os.Getenv("TEST_DATABASE_URL_SQLSERVER")
	}
	if envVar == "" {
		envVar = os.Getenv("TEST_DATABASE_URL")
	}
	return envVar
}
