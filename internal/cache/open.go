// Package cache implements the Graph Cache: a persistent, content-addressed
// relational store that maps imported tab-delimited files to graph_N tables,
// tracks import metadata, manages indexes on demand, and exposes a uniform
// query/explain surface to the Translator and Driver.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/termfx/kyquery/internal/literal"
)

// driverName is the name every cache connection registers its UDF-bearing
// sqlite3 driver under. Registration happens once per process; each Open
// call reuses the shared driver if already registered and relies on the
// ConnectHook to wire the Literal Layer's functions onto every new
// connection the pool opens.
const driverName = "sqlite3_kyquery"

var registerOnce sync.Once

func registerDriver() {
	registerOnce.Do(func() {
		sql.Register(driverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return literal.RegisterAll(conn)
			},
		})
	})
}

// defaultPageCacheMB is the default SQLite page cache budget, per §4.2
// "Configuration" (≈4 GiB worth of pages).
const defaultPageCacheMB = 4096

// Cache is an open connection to the persistent graph store: the metadata
// catalog (gorm, FileInfo/GraphInfo) plus the raw *sql.DB used for dynamic
// graph_N tables, bulk import, and query execution.
type Cache struct {
	Path string
	db   *sql.DB
	gdb  *gorm.DB

	mu sync.Mutex // imports are serialized by construction (§5)
}

// Open opens (creating if necessary) the cache file at path, applies
// PRAGMAs, runs catalog migrations, and registers the Literal Layer's
// scalar UDFs on every connection.
func Open(path string, create bool) (*Cache, error) {
	if isRemoteDSN(path) {
		db, gdb, err := openRemote(path)
		if err != nil {
			return nil, err
		}
		c := &Cache{Path: path, db: db, gdb: gdb}
		if err := c.migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply catalog migrations: %w", err)
		}
		return c, nil
	}

	registerDriver()

	if path != ":memory:" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if !create {
				return nil, fmt.Errorf("graph cache %q does not exist (pass create=true to initialize)", path)
			}
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o700); err != nil {
					return nil, fmt.Errorf("failed to create cache directory: %w", err)
				}
			}
			f, err := os.OpenFile(path, os.O_CREATE, 0o600)
			if err != nil {
				return nil, fmt.Errorf("failed to create cache file: %w", err)
			}
			f.Close()
			_ = os.Chmod(path, 0o600)
		}
	}

	dsn := fmt.Sprintf(
		"%s?_busy_timeout=5000&_foreign_keys=ON&_journal_mode=WAL&_synchronous=NORMAL&_temp_store=MEMORY&_cache_size=-%d",
		path, defaultPageCacheMB*1024,
	)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open graph cache: %w", err)
	}

	gdb, err := gorm.Open(sqlite.Dialector{Conn: db}, &gorm.Config{})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to attach catalog ORM: %w", err)
	}

	c := &Cache{Path: path, db: db, gdb: gdb}

	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply catalog migrations: %w", err)
	}
	if err := c.quickCheck(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initial quick_check failed: %w", err)
	}
	return c, nil
}

// quickCheck runs PRAGMA quick_check and returns an error if the database
// file is not structurally sound.
func (c *Cache) quickCheck() error {
	row := c.db.QueryRow("PRAGMA quick_check;")
	var result string
	if err := row.Scan(&result); err != nil {
		return fmt.Errorf("quick_check scan error: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("quick_check failed: %s", result)
	}
	return nil
}

// Close runs a final quick_check and closes the underlying connection.
func (c *Cache) Close() error {
	if err := c.quickCheck(); err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: quick_check failed on close: %v\n", err)
	}
	return c.db.Close()
}

// DB exposes the raw connection for the bulk-import and query-execution
// paths, which need prepared statements and dynamic table names the ORM
// cannot express.
func (c *Cache) DB() *sql.DB { return c.db }

// checkpointWAL truncates the write-ahead log once it exceeds thresholdMB.
func (c *Cache) checkpointWAL(thresholdMB int64) error {
	if c.Path == ":memory:" {
		return nil
	}
	info, err := os.Stat(c.Path + "-wal")
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to stat WAL file: %w", err)
	}
	if info.Size() > thresholdMB*1024*1024 {
		if _, err := execWithRetry(c.db, "PRAGMA wal_checkpoint(TRUNCATE);"); err != nil {
			return fmt.Errorf("failed to checkpoint WAL: %w", err)
		}
	}
	return nil
}
