package driver

import (
	"context"
	"database/sql"
	"net/url"
	"slices"

	"github.com/go-sql-driver/mysql"

	contextutil "github.com/robustcoffee/mondrian/internal/context"
	"github.com/robustcoffee/mondrian/internal/errors"
	"github.com/robustcoffee/mondrian/internal/logger"
)

type openFunc func(ctx context.Context, dsn string) (DB, error)

// openers holds drivers that are not opened through database/sql.
var openers = map[string]openFunc{}

// Open connects to dsn and verifies the connection. The driver must be
// registered with database/sql unless a build tag added a dedicated opener.
func Open(ctx context.Context, driverName, dsn string) (DB, error) {
	logger.Info("opening datasource", "driver", driverName, "target", RedactDSN(driverName, dsn))

	ctx, cancel := contextutil.WithTimeout(ctx)
	defer cancel()

	var db DB
	if open, ok := openers[driverName]; ok {
		var err error
		if db, err = open(ctx, dsn); err != nil {
			return nil, errors.MapDriverError(err)
		}
	} else {
		if !slices.Contains(sql.Drivers(), driverName) {
			return nil, errors.NewUnsupportedOperationError("driver " + driverName + " is not linked into this binary")
		}
		sqlDB, err := sql.Open(driverName, dsn)
		if err != nil {
			return nil, errors.MapDriverError(err)
		}
		db = NewSQLDB(sqlDB)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, errors.MapDriverError(err)
	}
	return db, nil
}

// RedactDSN returns dsn without its password, in a form safe to log.
func RedactDSN(driverName, dsn string) string {
	if driverName == "mysql" {
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return ""
		}
		cfg.Passwd = ""
		return cfg.FormatDSN()
	}

	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		return dsn
	}
	if u.User != nil {
		u.User = url.User(u.User.Username())
	}
	return u.String()
}
