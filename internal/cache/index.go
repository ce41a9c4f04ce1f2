package cache

import (
	"fmt"
	"os"
	"strings"

	"github.com/termfx/kyquery/internal/translate"
)

// EnsureIndex creates an index for req if one doesn't already exist, then
// runs ANALYZE so the query planner has fresh statistics for it. Index
// creation failures are fatal (a broken index means the query may return
// wrong results under a different plan); ANALYZE failures are logged at
// verbose level and otherwise ignored, since a stale-but-present index is
// still correct, only possibly slower to use.
func (c *Cache) EnsureIndex(req translate.IndexRequest, verbose bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	name := indexName(req)

	var exists int
	row := c.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type = 'index' AND name = ?`, name,
	)
	if err := row.Scan(&exists); err != nil {
		return fmt.Errorf("checking for existing index %s: %w", name, err)
	}
	if exists > 0 {
		return nil
	}

	sizeBefore, _ := c.fileSize()

	stmt := fmt.Sprintf(
		"CREATE INDEX %s ON %s (%s)",
		quoteIdent(name), quoteIdent(req.Table), quoteIdent(req.Column),
	)
	if _, err := execWithRetry(c.db, stmt); err != nil {
		return fmt.Errorf("creating index %s: %w", name, err)
	}

	if _, err := execWithRetry(c.db, fmt.Sprintf("ANALYZE %s", quoteIdent(req.Table))); err != nil && verbose {
		fmt.Fprintf(os.Stderr, "verbose: ANALYZE %s failed after index creation: %v\n", req.Table, err)
	}

	sizeAfter, _ := c.fileSize()
	if sizeAfter > sizeBefore {
		if err := c.addGraphSize(req.Table, sizeAfter-sizeBefore); err != nil {
			return err
		}
	}
	return nil
}

// indexName deterministically names an index so repeated EnsureIndex calls
// for the same (table, column) pair are idempotent.
func indexName(req translate.IndexRequest) string {
	return fmt.Sprintf("idx_%s_%s", req.Table, req.Column)
}

// EnsureCompositeIndex creates a multi-column covering index over table,
// for the explicit --index modes (quad/triple/node1+label) that name a
// fixed column set rather than relying on the translator's per-query
// auto-detected single-column requests.
func (c *Cache) EnsureCompositeIndex(table string, columns []string, verbose bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	name := fmt.Sprintf("idx_%s_%s", table, strings.Join(columns, "_"))

	var exists int
	row := c.db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'index' AND name = ?`, name)
	if err := row.Scan(&exists); err != nil {
		return fmt.Errorf("checking for existing index %s: %w", name, err)
	}
	if exists > 0 {
		return nil
	}

	sizeBefore, _ := c.fileSize()

	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = quoteIdent(col)
	}
	stmt := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", quoteIdent(name), quoteIdent(table), strings.Join(quoted, ", "))
	if _, err := execWithRetry(c.db, stmt); err != nil {
		return fmt.Errorf("creating composite index %s: %w", name, err)
	}

	if _, err := execWithRetry(c.db, fmt.Sprintf("ANALYZE %s", quoteIdent(table))); err != nil && verbose {
		fmt.Fprintf(os.Stderr, "verbose: ANALYZE %s failed after index creation: %v\n", table, err)
	}

	sizeAfter, _ := c.fileSize()
	if sizeAfter > sizeBefore {
		return c.addGraphSize(table, sizeAfter-sizeBefore)
	}
	return nil
}

func (c *Cache) fileSize() (int64, error) {
	if c.Path == ":memory:" {
		return 0, nil
	}
	st, err := os.Stat(c.Path)
	if err != nil {
		return 0, err
	}
	return st.Size(), nil
}
