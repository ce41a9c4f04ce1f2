package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSHA1Hex(t *testing.T) {
	require.Equal(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709", SHA1Hex(nil))
	require.Len(t, SHA1Hex([]byte("Hans")), 40)
}

func TestSHA1FileHex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "edges.tsv")
	require.NoError(t, os.WriteFile(path, []byte("id\tnode1\tlabel\tnode2\n"), 0o644))

	h1, err := SHA1FileHex(path)
	require.NoError(t, err)
	require.Len(t, h1, 40)

	h2, err := SHA1FileHex(path)
	require.NoError(t, err)
	require.Equal(t, h1, h2)
}

func TestSHA1FileHexMissingFile(t *testing.T) {
	_, err := SHA1FileHex(filepath.Join(t.TempDir(), "missing.tsv"))
	require.Error(t, err)
}
