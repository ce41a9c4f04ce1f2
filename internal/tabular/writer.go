package tabular

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"
)

// Writer streams tab-delimited rows to an underlying sink, applying the
// compression codec implied by the destination's file extension.
type Writer struct {
	w       *bufio.Writer
	closers []io.Closer
}

// NewWriter opens path for tabular output. path == "-" writes to stdout.
// A .gz, .bz2, or .xz suffix wraps the stream in the matching compressor;
// bzip2 has no compressing writer in the pack or stdlib, so a .bz2 output
// path is rejected rather than silently written uncompressed.
func NewWriter(path string) (*Writer, error) {
	var sink io.Writer
	var closers []io.Closer

	if path == "-" {
		sink = os.Stdout
	} else {
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("opening output %s: %w", path, err)
		}
		sink = f
		closers = append(closers, f)
	}

	switch {
	case strings.HasSuffix(path, ".gz"):
		gw := gzip.NewWriter(sink)
		sink = gw
		closers = append(closers, gw)
	case strings.HasSuffix(path, ".bz2"):
		for _, c := range closers {
			c.Close()
		}
		return nil, fmt.Errorf("writing .bz2 output: no bzip2 encoder available")
	case strings.HasSuffix(path, ".xz"):
		xw, err := xz.NewWriter(sink)
		if err != nil {
			for _, c := range closers {
				c.Close()
			}
			return nil, fmt.Errorf("opening xz writer: %w", err)
		}
		sink = xw
		closers = append(closers, xzWriterCloser{xw})
	}

	return &Writer{w: bufio.NewWriter(sink), closers: closers}, nil
}

// WriteHeader writes the column names as one tab-delimited row.
func (w *Writer) WriteHeader(cols []string) error {
	return w.WriteRow(cols)
}

// WriteRow writes one row: values are escaped, joined by tab, and
// terminated by a bare '\n' (Unix line ending, no quoting).
func (w *Writer) WriteRow(values []string) error {
	for i, v := range values {
		if i > 0 {
			if err := w.w.WriteByte('\t'); err != nil {
				return err
			}
		}
		if _, err := w.w.WriteString(EscapeValue(v)); err != nil {
			return err
		}
	}
	return w.w.WriteByte('\n')
}

// Close flushes buffered output and closes every wrapped stream in order,
// compressors innermost-first.
func (w *Writer) Close() error {
	if err := w.w.Flush(); err != nil {
		return err
	}
	for i := len(w.closers) - 1; i >= 0; i-- {
		if err := w.closers[i].Close(); err != nil {
			return err
		}
	}
	return nil
}

// xzWriterCloser adapts *xz.Writer's Close (which only flushes the xz
// footer) to io.Closer for the generic closer chain.
type xzWriterCloser struct{ w *xz.Writer }

func (c xzWriterCloser) Close() error { return c.w.Close() }
