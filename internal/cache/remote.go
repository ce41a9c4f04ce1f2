package cache

import (
	"database/sql"
	"database/sql/driver"
	"fmt"

	libsql "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/termfx/kyquery/internal/config"
)

// isRemoteDSN reports whether path names a remote libsql/Turso database
// rather than a local file.
func isRemoteDSN(path string) bool {
	return len(path) >= 6 && (path[:6] == "libsql" ||
		(len(path) >= 7 && path[:7] == "http://") ||
		(len(path) >= 8 && path[:8] == "https://"))
}

// openRemote connects to a libsql/Turso-hosted graph cache, authenticating
// with KYQUERY_LIBSQL_AUTH_TOKEN when set.
func openRemote(dsn string) (*sql.DB, *gorm.DB, error) {
	registerDriver() // harmless for remote conns; keeps UDF registration uniform if ever reused locally

	var (
		connector driver.Connector
		err       error
	)
	if token := config.LibsqlAuthToken(); token != "" {
		connector, err = libsql.NewConnector(dsn, libsql.WithAuthToken(token))
	} else {
		connector, err = libsql.NewConnector(dsn)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("creating libsql connector: %w", err)
	}

	db := sql.OpenDB(connector)
	dialector := sqlite.New(sqlite.Config{
		DriverName: "libsql",
		Conn:       db,
		DSN:        dsn,
	})
	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("attaching catalog ORM to remote cache: %w", err)
	}
	return db, gdb, nil
}
