package cache

import (
	"fmt"
	"strings"

	"github.com/termfx/kyquery/internal/translate"
)

// PlanRow is one row of SQLite's EXPLAIN QUERY PLAN output.
type PlanRow struct {
	ID     int
	Parent int
	Detail string
}

// Explain runs EXPLAIN QUERY PLAN for sql and renders it per mode:
//   - "plan":   the plan's detail lines only.
//   - "full":   the same, prefixed with each row's raw id/parent pair.
//   - "expert": the plan text plus any SCAN-without-index lines called out
//     as candidate indexes the caller could add.
func (c *Cache) Explain(sql string, args []any, mode string) (string, error) {
	rows, err := c.queryPlan(sql, args)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, r := range rows {
		if mode == "full" {
			fmt.Fprintf(&b, "%d|%d|%s\n", r.ID, r.Parent, r.Detail)
		} else {
			fmt.Fprintf(&b, "%s\n", r.Detail)
		}
	}

	if mode == "expert" {
		if suggestions := suggestIndexes(rows); len(suggestions) > 0 {
			b.WriteString("\nsuggested indexes:\n")
			for _, s := range suggestions {
				fmt.Fprintf(&b, "  CREATE INDEX ON %s (%s)\n", s.Table, s.Column)
			}
		}
	}
	return b.String(), nil
}

// SuggestIndexes runs EXPLAIN QUERY PLAN for sql and turns every
// SCAN-without-index line into an IndexRequest the caller can hand to
// EnsureIndex, the same candidates --index expert reports as text via
// Explain. It is the structured counterpart expert-mode index creation
// needs, mirrored from original_source's suggest_indexes/.expert flow.
func (c *Cache) SuggestIndexes(sql string, args []any) ([]translate.IndexRequest, error) {
	rows, err := c.queryPlan(sql, args)
	if err != nil {
		return nil, err
	}
	var out []translate.IndexRequest
	for _, s := range suggestIndexes(rows) {
		out = append(out, translate.IndexRequest{Table: s.Table, Column: s.Column})
	}
	return out, nil
}

func (c *Cache) queryPlan(sql string, args []any) ([]PlanRow, error) {
	rows, err := c.db.Query("EXPLAIN QUERY PLAN "+sql, args...)
	if err != nil {
		return nil, fmt.Errorf("explaining query: %w", err)
	}
	defer rows.Close()

	var out []PlanRow
	for rows.Next() {
		var r PlanRow
		var notUsed int
		if err := rows.Scan(&r.ID, &r.Parent, &notUsed, &r.Detail); err != nil {
			return nil, fmt.Errorf("scanning plan row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// indexSuggestion is one (table, column) pair suggestIndexes proposes.
type indexSuggestion struct {
	Table  string
	Column string
}

// suggestIndexes picks out "SCAN <table>" plan lines, which indicate a
// full table scan with no usable index, and proposes one on the table's
// node1 column as a reasonable default per the auto-indexing heuristic.
func suggestIndexes(rows []PlanRow) []indexSuggestion {
	var out []indexSuggestion
	for _, r := range rows {
		if !strings.HasPrefix(r.Detail, "SCAN ") {
			continue
		}
		table := strings.TrimPrefix(r.Detail, "SCAN ")
		if sp := strings.IndexByte(table, ' '); sp >= 0 {
			table = table[:sp]
		}
		out = append(out, indexSuggestion{Table: table, Column: "node1"})
	}
	return out
}
