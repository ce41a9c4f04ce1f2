package tabular

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterPlainRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.tsv")

	w, err := NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteHeader([]string{"id", "node1", "label", "node2"}))
	require.NoError(t, w.WriteRow([]string{"e11", "Hans", "loves", "Otto\tTrouble"}))
	require.NoError(t, w.Close())

	r, err := NewReader(path)
	require.NoError(t, err)
	require.Equal(t, []string{"id", "node1", "label", "node2"}, r.Header())

	row, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, []string{"e11", "Hans", "loves", "Otto\tTrouble"}, row)
}

func TestWriterGzipRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.tsv.gz")

	w, err := NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteHeader([]string{"id", "node1"}))
	require.NoError(t, w.WriteRow([]string{"e1", "Hans"}))
	require.NoError(t, w.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))

	r, err := NewReader(path)
	require.NoError(t, err)
	require.Equal(t, []string{"id", "node1"}, r.Header())
	row, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, []string{"e1", "Hans"}, row)
}

func TestWriterBz2Rejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.tsv.bz2")

	_, err := NewWriter(path)
	require.Error(t, err)
}

func TestWriterStdoutPath(t *testing.T) {
	old := os.Stdout
	_, wPipe, _ := os.Pipe()
	os.Stdout = wPipe
	defer func() { os.Stdout = old }()

	w, err := NewWriter("-")
	require.NoError(t, err)
	require.NoError(t, w.WriteRow([]string{"a", "b"}))
	require.NoError(t, w.Close())
	wPipe.Close()
}
