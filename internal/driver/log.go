package driver

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
)

// logf writes a leveled diagnostic line to stderr when verbose is set, per
// §4.5's "small leveled logger" design: no external logging framework, just
// a gated Fprintf matching config.Verbosef's idiom.
func logf(verbose bool, format string, args ...any) {
	if !verbose {
		return
	}
	fmt.Fprintf(os.Stderr, "kyquery: "+format+"\n", args...)
}

// logBytes renders a byte count with humanize, for verbose logging of
// graph sizes and WAL checkpoint thresholds.
func logBytes(verbose bool, label string, n int64) {
	logf(verbose, "%s: %s", label, humanize.Bytes(uint64(n)))
}
