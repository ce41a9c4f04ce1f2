// Command kyquery runs a single Kypher graph-pattern query against one or
// more tab-delimited input files, caching each import as a SQLite graph_N
// table so repeated queries over the same data skip reimporting it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/termfx/kyquery/internal/config"
	"github.com/termfx/kyquery/internal/driver"
)

func main() {
	cfg, err := config.BuildConfigFromFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "kyquery: %v\n", err)
		os.Exit(2)
	}

	os.Exit(driver.Run(cfg))
}
