package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/termfx/kyquery/internal/model"
)

// PrintUsage writes the flag set's usage text to stderr.
func PrintUsage(fs *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, "\nUsage: kyquery [flags]\n")
	fmt.Fprintf(os.Stderr, "Quick query: kyquery --input edges.tsv --match \"(a)-[:loves]->(b)\" --return \"*\"\n")
	fmt.Fprintf(os.Stderr, "\nFlags:\n")
	fs.PrintDefaults()
}

// PrintFatal reports a top-level error on stderr, unwrapping a CLIError to
// show its code alongside the message.
func PrintFatal(err error) {
	var cliErr model.CLIError
	if errors.As(err, &cliErr) {
		fmt.Fprintf(os.Stderr, "error: %s: %s\n", cliErr.Code, cliErr.Message)
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}

// Verbosef writes a diagnostic line to stderr only when verbose is true,
// following the teacher's plain fmt.Fprintf(os.Stderr, ...) logging idiom.
func Verbosef(verbose bool, format string, args ...any) {
	if !verbose {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
