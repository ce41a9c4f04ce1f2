// Package driver implements the Query Driver (§4.5): it wires the Graph
// Cache, Kypher Parser, and Translator together, turning a resolved
// model.Config into a streamed result set or an explain report.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/termfx/kyquery/internal/cache"
	"github.com/termfx/kyquery/internal/config"
	"github.com/termfx/kyquery/internal/kyparser/parser"
	"github.com/termfx/kyquery/internal/model"
	"github.com/termfx/kyquery/internal/tabular"
	"github.com/termfx/kyquery/internal/translate"
)

// Run executes cfg end to end and returns the process exit code.
func Run(cfg *model.Config) int {
	ctx, stop := trapSignals(context.Background())
	defer stop()

	config.LoadEnv()
	cachePath := config.ResolveCachePath(cfg.GraphCachePath)
	logf(cfg.Verbose, "opening graph cache at %s", cachePath)

	c, err := cache.Open(cachePath, true)
	if err != nil {
		config.PrintFatal(model.Wrap(model.ECConfig, "failed to open graph cache", err))
		return 1
	}
	defer c.Close()

	graphs, err := ensureInputs(c, cfg)
	if err != nil {
		config.PrintFatal(err)
		return 1
	}

	queryText, err := assembleQuery(cfg)
	if err != nil {
		config.PrintFatal(model.Wrap(model.ECInput, "failed to assemble query", err))
		return 1
	}

	q, err := parser.New(queryText).ParseQuery()
	if err != nil {
		config.PrintFatal(model.Wrap(model.ECParse, "failed to parse query", err))
		return 1
	}

	result, err := translate.Translate(q, graphs, cfg.Params)
	if err != nil {
		config.PrintFatal(model.Wrap(model.ECSemantic, "failed to translate query", err))
		return 1
	}
	logf(cfg.Verbose, "translated SQL: %s", result.SQL)

	if err := ctx.Err(); err != nil {
		config.PrintFatal(model.Wrap(model.ECSignal, "interrupted before execution", err))
		return 130
	}

	if err := ensureIndexes(c, cfg, result); err != nil {
		config.PrintFatal(model.Wrap(model.ECExecution, "failed to prepare indexes", err))
		return 1
	}

	if cfg.Explain != model.ExplainNone {
		text, err := c.Explain(result.SQL, result.Params, string(cfg.Explain))
		if err != nil {
			config.PrintFatal(model.Wrap(model.ECExecution, "failed to explain query", err))
			return 1
		}
		fmt.Print(text)
		return 0
	}

	if err := executeAndStream(ctx, c, cfg, result); err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		if isBrokenPipe(err) {
			return 0
		}
		config.PrintFatal(model.Wrap(model.ECExecution, "failed to execute query", err))
		return 1
	}
	return 0
}

// ensureInputs maps every --input to a graph_N table, keyed by its
// optional graph qualifier; the first input is also keyed by "", the
// default graph that unqualified chains bind to.
func ensureInputs(c *cache.Cache, cfg *model.Config) (map[string]translate.GraphHandle, error) {
	graphs := make(map[string]translate.GraphHandle, len(cfg.Inputs))
	for i, in := range cfg.Inputs {
		handle, err := c.Ensure(in.Path)
		if err != nil {
			return nil, model.Wrap(model.ECImport, fmt.Sprintf("failed to import %s", in.Path), err)
		}
		if i == 0 {
			graphs[""] = handle
		}
		if in.As != "" {
			graphs[in.As] = handle
		}
		logf(cfg.Verbose, "graph %q -> %s (%d columns)", in.As, handle.TableName, len(handle.Columns))
	}
	return graphs, nil
}

// assembleQuery returns cfg.Query verbatim if given, otherwise builds one
// full Kypher query string from the individual clause flags, since the
// parser always expects one assembled statement.
func assembleQuery(cfg *model.Config) (string, error) {
	if strings.TrimSpace(cfg.Query) != "" {
		return cfg.Query, nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "MATCH %s", cfg.Match)
	if cfg.Where != "" {
		fmt.Fprintf(&b, " WHERE %s", cfg.Where)
	}
	if cfg.Return != "" {
		fmt.Fprintf(&b, " RETURN %s", cfg.Return)
	} else {
		b.WriteString(" RETURN *")
	}
	if cfg.OrderBy != "" {
		fmt.Fprintf(&b, " ORDER BY %s", cfg.OrderBy)
	}
	if cfg.Skip != "" {
		fmt.Fprintf(&b, " SKIP %s", cfg.Skip)
	}
	if cfg.Limit != "" {
		fmt.Fprintf(&b, " LIMIT %s", cfg.Limit)
	}
	return b.String(), nil
}

// ensureIndexes creates whatever indexes cfg.IndexMode calls for. IndexAuto
// applies the translator's own per-query candidates; the explicit KGTK-style
// modes instead build one fixed covering index per table regardless of
// what the query referenced.
func ensureIndexes(c *cache.Cache, cfg *model.Config, result *translate.Result) error {
	if cfg.IndexMode == model.IndexNone {
		return nil
	}

	tables := distinctTables(result.Indexes)

	switch cfg.IndexMode {
	case model.IndexAuto:
		for _, req := range result.Indexes {
			if err := c.EnsureIndex(req, cfg.Verbose); err != nil {
				return err
			}
		}
	case model.IndexExpert:
		for _, req := range result.Indexes {
			if err := c.EnsureIndex(req, cfg.Verbose); err != nil {
				return err
			}
		}
		suggestions, err := c.SuggestIndexes(result.SQL, result.Params)
		if err != nil {
			return fmt.Errorf("computing expert index suggestions: %w", err)
		}
		for _, req := range suggestions {
			if err := c.EnsureIndex(req, cfg.Verbose); err != nil {
				return err
			}
		}
	case model.IndexQuad:
		for _, t := range tables {
			if err := c.EnsureCompositeIndex(t, []string{"id", "node1", "label", "node2"}, cfg.Verbose); err != nil {
				return err
			}
		}
	case model.IndexTriple:
		for _, t := range tables {
			if err := c.EnsureCompositeIndex(t, []string{"node1", "label", "node2"}, cfg.Verbose); err != nil {
				return err
			}
		}
	case model.IndexNode1Label:
		for _, t := range tables {
			if err := c.EnsureCompositeIndex(t, []string{"node1", "label"}, cfg.Verbose); err != nil {
				return err
			}
		}
	case model.IndexNode1, model.IndexLabel, model.IndexNode2:
		col := string(cfg.IndexMode)
		for _, t := range tables {
			if err := c.EnsureIndex(translate.IndexRequest{Table: t, Column: col}, cfg.Verbose); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown index mode %q", cfg.IndexMode)
	}
	return nil
}

func distinctTables(reqs []translate.IndexRequest) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range reqs {
		if !seen[r.Table] {
			seen[r.Table] = true
			out = append(out, r.Table)
		}
	}
	return out
}

// executeAndStream runs result.SQL and streams every row to cfg.Out as
// tab-delimited output, respecting cfg.NoHeader.
func executeAndStream(ctx context.Context, c *cache.Cache, cfg *model.Config, result *translate.Result) error {
	rows, err := c.DB().QueryContext(ctx, result.SQL, result.Params...)
	if err != nil {
		return fmt.Errorf("running query: %w", err)
	}
	defer rows.Close()

	w, err := tabular.NewWriter(cfg.Out)
	if err != nil {
		return err
	}
	defer w.Close()

	if !cfg.NoHeader {
		if err := w.WriteHeader(result.Header); err != nil {
			return err
		}
	}

	cols := make([]any, len(result.Header))
	colPtrs := make([]any, len(result.Header))
	for i := range cols {
		colPtrs[i] = &cols[i]
	}

	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := rows.Scan(colPtrs...); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
		row := make([]string, len(cols))
		for i, v := range cols {
			row[i] = stringifyCell(v)
		}
		if err := w.WriteRow(row); err != nil {
			return err
		}
	}
	return rows.Err()
}

// stringifyCell renders one query-result column for tabular output. SQLite
// may hand back int64/float64/[]byte/nil depending on the expression that
// produced the column; NULL becomes the empty string.
func stringifyCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	default:
		return fmt.Sprintf("%v", x)
	}
}

func isBrokenPipe(err error) bool {
	return errors.Is(err, io.ErrClosedPipe) || errors.Is(err, os.ErrClosed) ||
		strings.Contains(err.Error(), "broken pipe") ||
		strings.Contains(err.Error(), "EPIPE")
}
