package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuggestIndexesFromScan(t *testing.T) {
	c, err := Open(":memory:", true)
	require.NoError(t, err)
	defer c.Close()

	dir := t.TempDir()
	path := writeEdgeFile(t, dir, "edges.tsv", "id\tnode1\tlabel\tnode2\ne1\tAlice\tloves\tBob\n")
	handle, err := c.Ensure(path)
	require.NoError(t, err)

	sql := "SELECT node1 FROM " + handle.TableName + " WHERE node1 = ?"
	reqs, err := c.SuggestIndexes(sql, []any{"Alice"})
	require.NoError(t, err)
	require.NotEmpty(t, reqs)
	require.Equal(t, handle.TableName, reqs[0].Table)
	require.Equal(t, "node1", reqs[0].Column)
}

func TestExplainExpertModeListsSuggestions(t *testing.T) {
	c, err := Open(":memory:", true)
	require.NoError(t, err)
	defer c.Close()

	dir := t.TempDir()
	path := writeEdgeFile(t, dir, "edges.tsv", "id\tnode1\tlabel\tnode2\ne1\tAlice\tloves\tBob\n")
	handle, err := c.Ensure(path)
	require.NoError(t, err)

	sql := "SELECT node1 FROM " + handle.TableName + " WHERE node1 = ?"
	text, err := c.Explain(sql, []any{"Alice"}, "expert")
	require.NoError(t, err)
	require.Contains(t, text, "suggested indexes:")
	require.Contains(t, text, handle.TableName)
}
