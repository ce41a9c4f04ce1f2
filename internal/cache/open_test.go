package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenMemory(t *testing.T) {
	c, err := Open(":memory:", true)
	require.NoError(t, err)
	require.NotNil(t, c)
	defer c.Close()

	require.NoError(t, c.quickCheck())
}

func TestOpenCreatesFileAndDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "graph-cache.db")

	c, err := Open(path, true)
	require.NoError(t, err)
	require.NotNil(t, c)
	defer c.Close()

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestOpenMissingWithoutCreate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "absent.db")

	_, err := Open(path, false)
	require.Error(t, err)
}

func TestIsRemoteDSN(t *testing.T) {
	cases := map[string]bool{
		"libsql://db.turso.io": true,
		"https://db.turso.io":  true,
		"http://127.0.0.1":     true,
		":memory:":             false,
		"/tmp/cache.db":        false,
		"cache.db":             false,
	}
	for dsn, want := range cases {
		require.Equal(t, want, isRemoteDSN(dsn), dsn)
	}
}
