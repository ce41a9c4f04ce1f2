package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeEdgeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEnsureImportsFreshFile(t *testing.T) {
	c, err := Open(":memory:", true)
	require.NoError(t, err)
	defer c.Close()

	dir := t.TempDir()
	path := writeEdgeFile(t, dir, "edges.tsv", "id\tnode1\tlabel\tnode2\ne1\tAlice\tloves\tBob\ne2\tBob\tloves\tCarol\n")

	handle, err := c.Ensure(path)
	require.NoError(t, err)
	require.Equal(t, []string{"id", "node1", "label", "node2"}, handle.Columns)

	var count int
	row := c.db.QueryRow("SELECT count(*) FROM " + quoteIdent(handle.TableName))
	require.NoError(t, row.Scan(&count))
	require.Equal(t, 2, count)
}

func TestEnsureIsIdempotentForUnchangedFile(t *testing.T) {
	c, err := Open(":memory:", true)
	require.NoError(t, err)
	defer c.Close()

	dir := t.TempDir()
	path := writeEdgeFile(t, dir, "edges.tsv", "id\tnode1\tlabel\tnode2\ne1\tAlice\tloves\tBob\n")

	first, err := c.Ensure(path)
	require.NoError(t, err)
	second, err := c.Ensure(path)
	require.NoError(t, err)

	require.Equal(t, first.TableName, second.TableName)
}

func TestEnsureReimportsChangedFile(t *testing.T) {
	c, err := Open(":memory:", true)
	require.NoError(t, err)
	defer c.Close()

	dir := t.TempDir()
	path := writeEdgeFile(t, dir, "edges.tsv", "id\tnode1\tlabel\tnode2\ne1\tAlice\tloves\tBob\n")

	first, err := c.Ensure(path)
	require.NoError(t, err)

	// Force a distinct (size, modtime): rewrite with different content and
	// push modtime forward, since some filesystems have coarse resolution.
	require.NoError(t, os.WriteFile(path, []byte("id\tnode1\tlabel\tnode2\ne1\tAlice\tloves\tBob\ne2\tBob\tloves\tCarol\n"), 0o644))
	future := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, future, future))

	second, err := c.Ensure(path)
	require.NoError(t, err)
	require.NotEqual(t, first.TableName, second.TableName)

	var count int
	row := c.db.QueryRow("SELECT count(*) FROM " + quoteIdent(second.TableName))
	require.NoError(t, row.Scan(&count))
	require.Equal(t, 2, count)

	// The stale table should be gone.
	row = c.db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, first.TableName)
	var exists int
	require.NoError(t, row.Scan(&exists))
	require.Equal(t, 0, exists)
}

func TestEnsureHandlesQuotedColumnNames(t *testing.T) {
	c, err := Open(":memory:", true)
	require.NoError(t, err)
	defer c.Close()

	dir := t.TempDir()
	path := writeEdgeFile(t, dir, "qualifiers.tsv", "id\tnode1\tlabel\tnode2\tnode1;salary\ne1\tAlice\tworks\tAcme\t1000\n")

	handle, err := c.Ensure(path)
	require.NoError(t, err)
	require.Contains(t, handle.Columns, "node1;salary")
}
