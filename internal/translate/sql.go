package translate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/termfx/kyquery/internal/kyparser/ast"
)

// resolveOrderBy lowers each ORDER BY item, preferring a textual match
// against a RETURN alias over re-lowering the expression from scratch.
func (t *translator) resolveOrderBy(items []*ast.OrderItem, returnItems []returnItem) (string, error) {
	if len(items) == 0 {
		return "", nil
	}

	aliasSQL := make(map[string]string, len(returnItems))
	for _, ri := range returnItems {
		aliasSQL[ri.label] = ri.sql
	}

	var parts []string
	for _, oi := range items {
		var sqlText string
		if v, ok := oi.Expr.(*ast.Variable); ok {
			if s, ok := aliasSQL[v.Name]; ok {
				sqlText = s
			}
		}
		if sqlText == "" {
			s, err := t.lowerExpr(oi.Expr)
			if err != nil {
				return "", err
			}
			sqlText = s
		}
		if oi.Descending {
			sqlText += " DESC"
		} else {
			sqlText += " ASC"
		}
		parts = append(parts, sqlText)
	}
	return strings.Join(parts, ", "), nil
}

// emitSQL assembles the final SELECT: FROM/JOIN list from the recorded
// edge aliases, WHERE from the combined join/label/predicate parts, then
// GROUP BY, ORDER BY, and LIMIT/OFFSET (Kypher SKIP maps to SQL OFFSET).
func (t *translator) emitSQL(items []returnItem, whereParts, groupBy []string, orderBy string, skip, limit ast.Expression) (string, error) {
	if len(t.edges) == 0 {
		return "", fmt.Errorf("query has no MATCH patterns to select from")
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	cols := make([]string, len(items))
	for i, it := range items {
		cols[i] = it.sql
	}
	sb.WriteString(strings.Join(cols, ", "))

	sb.WriteString(" FROM ")
	from := make([]string, len(t.edges))
	for i, e := range t.edges {
		from[i] = fmt.Sprintf("%s AS %s", quoteIdent(e.table), quoteIdent(e.alias))
	}
	sb.WriteString(strings.Join(from, ", "))

	if len(whereParts) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(whereParts, " AND "))
	}

	if len(groupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(groupBy, ", "))
	}

	if orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(orderBy)
	}

	if limit != nil {
		n, err := literalInt(limit)
		if err != nil {
			return "", fmt.Errorf("LIMIT: %w", err)
		}
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.FormatInt(n, 10))
	}

	if skip != nil {
		n, err := literalInt(skip)
		if err != nil {
			return "", fmt.Errorf("SKIP: %w", err)
		}
		if limit == nil {
			// SQLite requires LIMIT before OFFSET; -1 means unbounded.
			sb.WriteString(" LIMIT -1")
		}
		sb.WriteString(" OFFSET ")
		sb.WriteString(strconv.FormatInt(n, 10))
	}

	return sb.String(), nil
}

// literalInt extracts the integer value of a SKIP/LIMIT expression. Only a
// bare integer literal is accepted; a parameter reference or any other
// expression is an error.
func literalInt(e ast.Expression) (int64, error) {
	switch n := e.(type) {
	case *ast.Literal:
		return strconv.ParseInt(n.Value, 10, 64)
	default:
		return 0, fmt.Errorf("must be an integer literal, got %s", e.String())
	}
}
