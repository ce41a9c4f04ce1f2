package translate

import (
	"fmt"
	"strings"
)

// joinConditions renders every recorded join pair as `alias.col = alias.col`.
func (t *translator) joinConditions() []string {
	conds := make([]string, 0, len(t.joinPairs))
	for _, pair := range t.joinPairs {
		conds = append(conds, fmt.Sprintf("%s.%s = %s.%s",
			quoteIdent(pair[0].alias), quoteIdent(pair[0].column),
			quoteIdent(pair[1].alias), quoteIdent(pair[1].column)))
	}
	return conds
}

// labelConditions renders every recorded label filter: a single value
// becomes `col = 'value'`, multiple choices become `col IN ('a', 'b')`.
func (t *translator) labelConditions() []string {
	conds := make([]string, 0, len(t.labelConds))
	for _, lc := range t.labelConds {
		col := fmt.Sprintf("%s.%s", quoteIdent(lc.alias), quoteIdent(lc.column))
		if len(lc.values) == 1 {
			conds = append(conds, fmt.Sprintf("%s = %s", col, sqlQuoteString(lc.values[0])))
			continue
		}
		quoted := make([]string, len(lc.values))
		for i, v := range lc.values {
			quoted[i] = sqlQuoteString(v)
		}
		conds = append(conds, fmt.Sprintf("%s IN (%s)", col, strings.Join(quoted, ", ")))
	}
	return conds
}

// indexRequests returns one auto-index candidate per (table, column)
// appearing in a join or label equality constraint, deduplicated.
func (t *translator) indexRequests() []IndexRequest {
	seen := make(map[IndexRequest]bool)
	var reqs []IndexRequest

	add := func(alias, column string) {
		table := t.tableForAlias(alias)
		if table == "" {
			return
		}
		req := IndexRequest{Table: table, Column: column}
		if !seen[req] {
			seen[req] = true
			reqs = append(reqs, req)
		}
	}

	for _, pair := range t.joinPairs {
		add(pair[0].alias, pair[0].column)
		add(pair[1].alias, pair[1].column)
	}
	for _, lc := range t.labelConds {
		add(lc.alias, lc.column)
	}
	return reqs
}

func (t *translator) tableForAlias(alias string) string {
	for _, e := range t.edges {
		if e.alias == alias {
			return e.table
		}
	}
	return ""
}
