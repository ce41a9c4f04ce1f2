package cache

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/termfx/kyquery/internal/tabular"
)

// nativeBulkImport attempts to load path into tableName using the sqlite3
// CLI's `.import` dot-command, which is an order of magnitude faster than
// prepared-statement inserts for large edge files. It reports (false, nil)
// whenever the fast path isn't usable, and a non-nil error when sqlite3 or
// the decompressor ran and failed; the caller falls back to the row-by-row
// importer in both cases.
//
// Compressed inputs (.gz/.bz2/.xz) still take the fast path: the matching
// decompressor runs as a subprocess piped straight into sqlite3's own stdin,
// following the dot-command script, exactly as original_source's
// import_graph_data_via_import pipes gunzip/bunzip2/unxz into the sqlite3
// CLI rather than decompressing to a temp file first. This is POSIX-only
// (it relies on /dev/stdin), which original_source's implementation is too.
//
// The fast path is skipped for any row containing a backslash escape
// sequence, since sqlite3's .import has no equivalent of this format's
// escaping rules and would silently import the literal backslash sequences
// instead of unescaping them.
func (c *Cache) nativeBulkImport(path, tableName string, header []string) (bool, error) {
	if c.Path == ":memory:" {
		return false, nil
	}
	sqlite3Bin, err := exec.LookPath("sqlite3")
	if err != nil {
		return false, nil
	}
	if containsEscapeSequences(path) {
		return false, nil
	}

	decompBin, decompArgs, compressed := decompressCommand(path)
	if compressed {
		if _, err := exec.LookPath(decompBin); err != nil {
			return false, nil
		}
	}

	importSource := fmt.Sprintf("%q", path)
	if compressed {
		importSource = "/dev/stdin"
	}
	script := fmt.Sprintf(".mode tabs\n.import --skip 1 %s %s\n", importSource, tableName)

	sqliteCmd := exec.Command(sqlite3Bin, c.Path)
	var stderr bytes.Buffer
	sqliteCmd.Stderr = &stderr

	if !compressed {
		sqliteCmd.Stdin = strings.NewReader(script)
		if err := sqliteCmd.Run(); err != nil {
			return false, fmt.Errorf("sqlite3 .import into %s: %w: %s", tableName, err, strings.TrimSpace(stderr.String()))
		}
		return true, nil
	}

	decompCmd := exec.Command(decompBin, decompArgs...)
	decompOut, err := decompCmd.StdoutPipe()
	if err != nil {
		return false, fmt.Errorf("piping %s: %w", decompBin, err)
	}
	var decompErr bytes.Buffer
	decompCmd.Stderr = &decompErr

	sqliteCmd.Stdin = io.MultiReader(strings.NewReader(script), decompOut)

	if err := decompCmd.Start(); err != nil {
		return false, fmt.Errorf("starting %s: %w", decompBin, err)
	}
	runErr := sqliteCmd.Run()
	if runErr != nil {
		// Mirrors sqlproc.terminate() in original_source: if the consumer
		// dies early, don't leave the decompressor writing into a closed pipe.
		_ = decompCmd.Process.Kill()
		_ = decompCmd.Wait()
		return false, fmt.Errorf("sqlite3 .import into %s: %w: %s", tableName, runErr, strings.TrimSpace(stderr.String()))
	}
	if err := decompCmd.Wait(); err != nil {
		return false, fmt.Errorf("%s %s: %w: %s", decompBin, path, err, strings.TrimSpace(decompErr.String()))
	}
	return true, nil
}

// decompressCommand returns the external command that decompresses path to
// stdout, by its extension, mirroring original_source's get_cat_command.
func decompressCommand(path string) (bin string, args []string, ok bool) {
	switch {
	case strings.HasSuffix(path, ".gz"):
		return "gzip", []string{"-dc", path}, true
	case strings.HasSuffix(path, ".bz2"):
		return "bzip2", []string{"-dc", path}, true
	case strings.HasSuffix(path, ".xz"):
		return "xz", []string{"-dc", path}, true
	default:
		return "", nil, false
	}
}

// containsEscapeSequences scans path's decompressed content for any
// backslash byte. It's a coarse check, not a format validator: a single
// backslash anywhere is enough to route the whole file through the
// row-by-row importer instead, since that path does unescape correctly.
func containsEscapeSequences(path string) bool {
	src, closers, err := tabular.OpenDecompressed(path)
	if err != nil {
		return true // can't verify safety, so don't risk the fast path
	}
	defer closeAll(closers)

	r := bufio.NewReader(src)
	buf := make([]byte, 64*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 && bytes.IndexByte(buf[:n], '\\') >= 0 {
			return true
		}
		if err != nil {
			return false
		}
	}
}

func closeAll(closers []io.Closer) {
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i].Close()
	}
}
