package cache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/termfx/kyquery/internal/translate"
)

func TestEnsureIndexIsIdempotent(t *testing.T) {
	c, err := Open(":memory:", true)
	require.NoError(t, err)
	defer c.Close()

	dir := t.TempDir()
	path := writeEdgeFile(t, dir, "edges.tsv", "id\tnode1\tlabel\tnode2\ne1\tAlice\tloves\tBob\n")
	handle, err := c.Ensure(path)
	require.NoError(t, err)

	req := translate.IndexRequest{Table: handle.TableName, Column: "node1"}
	require.NoError(t, c.EnsureIndex(req, false))
	require.NoError(t, c.EnsureIndex(req, false)) // second call is a no-op

	var count int
	row := c.db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'index' AND tbl_name = ?`, handle.TableName)
	require.NoError(t, row.Scan(&count))
	require.Equal(t, 1, count)
}

func TestEnsureCompositeIndex(t *testing.T) {
	c, err := Open(":memory:", true)
	require.NoError(t, err)
	defer c.Close()

	dir := t.TempDir()
	path := writeEdgeFile(t, dir, "edges.tsv", "id\tnode1\tlabel\tnode2\ne1\tAlice\tloves\tBob\n")
	handle, err := c.Ensure(path)
	require.NoError(t, err)

	require.NoError(t, c.EnsureCompositeIndex(handle.TableName, []string{"node1", "label"}, false))

	var name string
	row := c.db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'index' AND tbl_name = ?`, handle.TableName)
	require.NoError(t, row.Scan(&name))
	require.Contains(t, name, "node1_label")
}
