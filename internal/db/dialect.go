package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Backend string

const (
	SQLite   Backend = "sqlite"
	Postgres Backend = "postgres"
	MySQL    Backend = "mysql"
)

// sqliteParams are appended to every SQLite DSN. Cascades and reference
// checks depend on foreign keys being on.
const sqliteParams = "_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

// Dialector maps a connection string onto a GORM dialector.
//
//	sqlite:///camp.db          relative file camp.db
//	sqlite:////var/camp.db     absolute file /var/camp.db
//	camp.db, file:camp.db      plain SQLite paths
//	postgres://user:pw@host/db Postgres (pgx)
//	mysql://user:pw@tcp(host)/db?parseTime=true
func Dialector(uri string) (gorm.Dialector, Backend, error) {
	uri = strings.TrimSpace(uri)
	switch {
	case uri == "":
		return nil, "", fmt.Errorf("empty database uri")
	case strings.HasPrefix(uri, "postgres://"), strings.HasPrefix(uri, "postgresql://"):
		return postgres.Open(uri), Postgres, nil
	case strings.HasPrefix(uri, "mysql://"):
		return mysql.Open(strings.TrimPrefix(uri, "mysql://")), MySQL, nil
	case strings.HasPrefix(uri, "sqlite://"):
		path := strings.TrimPrefix(uri, "sqlite://")
		path = strings.TrimPrefix(path, "/")
		if path == "" {
			return nil, "", fmt.Errorf("sqlite uri %q has no path", uri)
		}
		return sqlite.Open(SQLiteDSN(path)), SQLite, nil
	case strings.Contains(uri, "://"):
		return nil, "", fmt.Errorf("unsupported database uri scheme in %q", uri)
	default:
		return sqlite.Open(SQLiteDSN(uri)), SQLite, nil
	}
}

// SQLiteDSN adds the pragmas the store relies on to path, keeping any query
// parameters already present.
func SQLiteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys=") {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&" + sqliteParams
	}
	return path + "?" + sqliteParams
}
