package tabular

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"
)

// Reader streams tab-delimited rows from an underlying source, transparently
// decompressing by the source's file extension.
type Reader struct {
	r       *bufio.Scanner
	closers []io.Closer
	header  []string
}

// NewReader opens path for tabular input and reads its header row. The
// header's column names are taken as they are; they are not checked
// against the canonical edge-file columns.
func NewReader(path string) (*Reader, error) {
	src, closers, err := OpenDecompressed(path)
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	r := &Reader{r: scanner, closers: closers}
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			r.Close()
			return nil, fmt.Errorf("reading header of %s: %w", path, err)
		}
		r.Close()
		return nil, fmt.Errorf("%s: empty file, expected a header row", path)
	}
	r.header = splitRow(scanner.Text())
	return r, nil
}

// OpenDecompressed opens path and, by its extension, wraps it in the matching
// decompressor (gzip/bzip2/xz), returning the readable stream plus every
// io.Closer that must be closed (in reverse order) when the caller is done.
// Shared by NewReader and the Graph Cache's bulk-import fast path, which
// uses the decompressed bytes to pre-scan for escape sequences; the bytes
// fed to sqlite3's .import come from a separate decompressor subprocess.
func OpenDecompressed(path string) (io.Reader, []io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening input %s: %w", path, err)
	}
	closers := []io.Closer{f}

	var src io.Reader = f
	switch {
	case strings.HasSuffix(path, ".gz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("opening gzip input: %w", err)
		}
		src = gr
		closers = append(closers, gr)
	case strings.HasSuffix(path, ".bz2"):
		src = bzip2.NewReader(f)
	case strings.HasSuffix(path, ".xz"):
		xr, err := xz.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("opening xz input: %w", err)
		}
		src = xr
	}
	return src, closers, nil
}

// Header returns the column names read from the first row.
func (r *Reader) Header() []string { return r.header }

// Next reads and unescapes the next row, reporting io.EOF when exhausted
// and an arity error if the row's field count doesn't match the header.
func (r *Reader) Next() ([]string, error) {
	if !r.r.Scan() {
		if err := r.r.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	fields := splitRow(r.r.Text())
	if len(fields) != len(r.header) {
		return nil, fmt.Errorf("row has %d fields, header has %d", len(fields), len(r.header))
	}
	return fields, nil
}

func splitRow(line string) []string {
	raw := strings.Split(line, "\t")
	fields := make([]string, len(raw))
	for i, f := range raw {
		fields[i] = UnescapeValue(f)
	}
	return fields
}

// Close closes every wrapped stream.
func (r *Reader) Close() error {
	var firstErr error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
