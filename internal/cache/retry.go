package cache

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const execRetryLimit = 5

// execWithRetry wraps db.Exec with retry logic for "database is locked"
// errors, the same shape as import/index/migration writes can hit when the
// WAL is still being checkpointed by a previous connection.
func execWithRetry(db *sql.DB, query string, args ...any) (sql.Result, error) {
	var res sql.Result
	var err error
	for range execRetryLimit {
		res, err = db.Exec(query, args...)
		if err == nil {
			return res, nil
		}
		if strings.Contains(err.Error(), "database is locked") {
			time.Sleep(500 * time.Millisecond)
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("execWithRetry: database is locked after %d retries: %w", execRetryLimit, err)
}

// execWithRetryTx is execWithRetry's counterpart for a statement run inside
// an already-open transaction.
func execWithRetryTx(tx *sql.Tx, query string, args ...any) (sql.Result, error) {
	var res sql.Result
	var err error
	for range execRetryLimit {
		res, err = tx.Exec(query, args...)
		if err == nil {
			return res, nil
		}
		if strings.Contains(err.Error(), "database is locked") {
			time.Sleep(500 * time.Millisecond)
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("execWithRetryTx: database is locked after %d retries: %w", execRetryLimit, err)
}

// execStmtWithRetry is execWithRetry's counterpart for a prepared statement,
// used by the row-by-row importer's per-row insert.
func execStmtWithRetry(stmt *sql.Stmt, args ...any) (sql.Result, error) {
	var res sql.Result
	var err error
	for range execRetryLimit {
		res, err = stmt.Exec(args...)
		if err == nil {
			return res, nil
		}
		if strings.Contains(err.Error(), "database is locked") {
			time.Sleep(500 * time.Millisecond)
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("execStmtWithRetry: database is locked after %d retries: %w", execRetryLimit, err)
}

// gormWithRetry retries a gorm catalog write on "database is locked", the
// same condition execWithRetry guards the raw graph_N writes against. The
// catalog tables are small, so retrying the whole call (rather than a single
// statement within it) is cheap and simple.
func gormWithRetry(fn func() error) error {
	var err error
	for range execRetryLimit {
		err = fn()
		if err == nil {
			return nil
		}
		if strings.Contains(err.Error(), "database is locked") {
			time.Sleep(500 * time.Millisecond)
			continue
		}
		return err
	}
	return fmt.Errorf("gormWithRetry: database is locked after %d retries: %w", execRetryLimit, err)
}
