package cache

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/termfx/kyquery/internal/tabular"
	"github.com/termfx/kyquery/internal/translate"
	"github.com/termfx/kyquery/internal/util"
	"github.com/termfx/kyquery/models"
)

func filepathAbs(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path for %s: %w", path, err)
	}
	return abs, nil
}

func nowUnixNano() int64 { return time.Now().UnixNano() }

// Ensure maps a tabular input file to a graph_N table, importing it if it
// isn't cached yet or re-importing if the file has changed since. It
// returns the table's handle for the Translator.
//
// Freshness is decided by (size, modtime) only; the content hash is stored
// for diagnostics but never compared, since hashing every input on every
// query would defeat the cache's purpose.
func (c *Cache) Ensure(path string) (translate.GraphHandle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	realPath, err := filepathAbs(path)
	if err != nil {
		return translate.GraphHandle{}, err
	}

	st, err := os.Stat(realPath)
	if err != nil {
		return translate.GraphHandle{}, fmt.Errorf("stat %s: %w", path, err)
	}
	size := st.Size()
	modTime := st.ModTime().UnixNano()

	existing, err := c.lookupFileInfo(realPath)
	if err != nil {
		return translate.GraphHandle{}, err
	}
	if existing != nil && existing.Size == size && existing.ModTime == modTime {
		gi, err := c.lookupGraphInfo(existing.GraphName)
		if err != nil {
			return translate.GraphHandle{}, err
		}
		if gi != nil {
			cols, err := models.UnmarshalHeader(gi.Header)
			if err != nil {
				return translate.GraphHandle{}, fmt.Errorf("decoding cached header for %s: %w", existing.GraphName, err)
			}
			if err := c.touchGraphAccess(existing.GraphName, nowUnixNano()); err != nil {
				return translate.GraphHandle{}, err
			}
			return translate.GraphHandle{TableName: existing.GraphName, Columns: cols}, nil
		}
	}

	if existing != nil {
		if err := c.dropGraph(existing.GraphName); err != nil {
			return translate.GraphHandle{}, err
		}
	}

	return c.importFile(realPath, path, size, modTime)
}

// importFile creates a fresh graph_N table from path's header and loads
// every row, preferring the engine's native bulk-import facility and
// falling back to a row-by-row insert when that isn't available or rejects
// the input.
func (c *Cache) importFile(realPath, displayPath string, size, modTime int64) (translate.GraphHandle, error) {
	rd, err := tabular.NewReader(displayPath)
	if err != nil {
		return translate.GraphHandle{}, err
	}
	defer rd.Close()

	header := rd.Header()
	tableName, err := c.nextGraphName()
	if err != nil {
		return translate.GraphHandle{}, err
	}

	if err := c.createGraphTable(tableName, header); err != nil {
		return translate.GraphHandle{}, err
	}

	ok, err := c.nativeBulkImport(displayPath, tableName, header)
	if err != nil {
		// The sqlite3 CLI may have loaded some rows before failing; the
		// row-by-row import starts again from an empty table.
		if _, derr := execWithRetry(c.db, fmt.Sprintf("DELETE FROM %s", quoteIdent(tableName))); derr != nil {
			return translate.GraphHandle{}, fmt.Errorf("clearing %s after failed bulk import: %w", tableName, derr)
		}
		ok = false
	}
	if !ok {
		if err := c.rowByRowImport(rd, tableName, header); err != nil {
			return translate.GraphHandle{}, err
		}
	}

	hash, err := util.SHA1FileHex(realPath)
	if err != nil {
		return translate.GraphHandle{}, fmt.Errorf("hashing %s: %w", displayPath, err)
	}

	encodedHeader, err := models.MarshalHeader(header)
	if err != nil {
		return translate.GraphHandle{}, fmt.Errorf("encoding header: %w", err)
	}
	if err := c.upsertGraphInfo(models.GraphInfo{
		Name:       tableName,
		Header:     encodedHeader,
		Size:       size,
		LastAccess: nowUnixNano(),
	}); err != nil {
		return translate.GraphHandle{}, err
	}
	if err := c.upsertFileInfo(models.FileInfo{
		Path:      realPath,
		Size:      size,
		ModTime:   modTime,
		Hash:      hash,
		GraphName: tableName,
	}); err != nil {
		return translate.GraphHandle{}, err
	}

	return translate.GraphHandle{TableName: tableName, Columns: header}, nil
}

// createGraphTable defines every header column as TEXT, matching the
// Graph Cache's all-text storage model (§4.2): comparisons and casts are
// the Translator's and the Literal Layer's job, not the schema's.
func (c *Cache) createGraphTable(tableName string, header []string) error {
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = quoteIdent(h) + " TEXT"
	}
	stmt := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(tableName), strings.Join(cols, ", "))
	if _, err := execWithRetry(c.db, stmt); err != nil {
		return fmt.Errorf("creating table %s: %w", tableName, err)
	}
	return nil
}

// rowByRowImport loads every remaining row from rd through a single
// transaction of prepared-statement inserts, preserving input row order.
func (c *Cache) rowByRowImport(rd *tabular.Reader, tableName string, header []string) error {
	placeholders := make([]string, len(header))
	for i := range header {
		placeholders[i] = "?"
	}
	insertSQL := fmt.Sprintf("INSERT INTO %s VALUES (%s)", quoteIdent(tableName), strings.Join(placeholders, ", "))

	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning import transaction: %w", err)
	}
	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("preparing insert for %s: %w", tableName, err)
	}
	defer stmt.Close()

	for {
		row, err := rd.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			tx.Rollback()
			return fmt.Errorf("reading row: %w", err)
		}
		args := make([]any, len(row))
		for i, v := range row {
			args[i] = v
		}
		if _, err := execStmtWithRetry(stmt, args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting row into %s: %w", tableName, err)
		}
	}
	return tx.Commit()
}

// dropGraph removes a stale graph_N table and its catalog rows, used when
// an input file changes and must be reimported under a fresh table.
func (c *Cache) dropGraph(tableName string) error {
	if _, err := execWithRetry(c.db, fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdent(tableName))); err != nil {
		return fmt.Errorf("dropping stale table %s: %w", tableName, err)
	}
	if err := c.deleteFileInfo(tableName); err != nil {
		return err
	}
	return c.deleteGraphInfo(tableName)
}
