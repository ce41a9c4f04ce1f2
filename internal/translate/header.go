package translate

import (
	"fmt"
	"strconv"

	"github.com/termfx/kyquery/internal/kyparser/ast"
)

// returnItem is one resolved RETURN column: its SQL text and header label.
type returnItem struct {
	sql       string
	label     string
	aggregate bool
}

// canonicalColumns lists the columns a bare variable expands to when it
// appears in RETURN * or RETURN <var> without a property access: the full
// edge row for a relationship variable, the endpoint column it was bound
// to for a node variable.
func canonicalColumns(b *varBinding) []string {
	if b.isRel {
		return []string{"id", "node1", "label", "node2"}
	}
	// A node variable is really just one endpoint column of the edge row it
	// was bound from (node1 or node2); there is no separate node table.
	return []string{b.primary.column}
}

// resolveReturn expands RETURN * or a RETURN list into SQL column
// expressions plus the matching result header, de-duplicating repeated
// header names with a ".N" suffix as later occurrences collide.
func (t *translator) resolveReturn(q *ast.Query) ([]returnItem, []string, error) {
	var items []returnItem

	addLabeled := func(sqlText, label string, aggregate bool) {
		items = append(items, returnItem{sql: sqlText, label: label, aggregate: aggregate})
	}

	if q.Star {
		// RETURN * never carries an alias, so every bare variable's header
		// is just its canonical column name (spec.md §4.4 "Result header").
		for _, name := range t.matchOrder() {
			b := t.vars[name]
			for _, col := range canonicalColumns(b) {
				sqlText := fmt.Sprintf("%s.%s", quoteIdent(b.primary.alias), quoteIdent(col))
				addLabeled(sqlText, col, false)
			}
		}
	} else {
		for _, ri := range q.Return {
			switch e := ri.Expr.(type) {
			case *ast.Variable:
				b, ok := t.vars[e.Name]
				if !ok {
					return nil, nil, fmt.Errorf("unknown variable %q in RETURN", e.Name)
				}
				aliased := ri.Alias != ""
				label := ri.Alias
				if !aliased {
					label = e.Name
				}
				cols := canonicalColumns(b)
				if len(cols) == 1 {
					sqlText := fmt.Sprintf("%s.%s", quoteIdent(b.primary.alias), quoteIdent(cols[0]))
					// No alias: the header is the bare canonical column
					// name, not the variable's own name.
					headerLabel := cols[0]
					if aliased {
						headerLabel = label
					}
					addLabeled(sqlText, headerLabel, false)
					continue
				}
				for _, col := range cols {
					sqlText := fmt.Sprintf("%s.%s", quoteIdent(b.primary.alias), quoteIdent(col))
					// A relationship variable's multi-column expansion only
					// gets the var/alias prefix when an explicit alias needs
					// disambiguating; unaliased, each column keeps its own
					// canonical name.
					headerLabel := col
					if aliased {
						headerLabel = label + "." + col
					}
					addLabeled(sqlText, headerLabel, false)
				}
			default:
				sqlText, err := t.lowerExpr(ri.Expr)
				if err != nil {
					return nil, nil, err
				}
				label := ri.Alias
				if label == "" {
					if pa, ok := ri.Expr.(*ast.PropertyAccess); ok {
						label = pa.Property
					} else {
						label = ri.Expr.String()
					}
				}
				agg := false
				if fc, ok := ri.Expr.(*ast.FuncCall); ok {
					agg = isAggregateCall(fc.Name)
				}
				addLabeled(sqlText, label, agg)
			}
		}
	}

	header := make([]string, len(items))
	seen := make(map[string]int)
	for i, it := range items {
		label := it.label
		seen[label]++
		if n := seen[label]; n > 1 {
			label = label + "." + strconv.Itoa(n-1)
		}
		header[i] = label
	}

	return items, header, nil
}

// matchOrder returns MATCH-bound variable names in first-occurrence order,
// for stable RETURN * expansion.
func (t *translator) matchOrder() []string {
	type seen struct {
		name string
		seq  int
	}
	ordered := make([]seen, 0, len(t.vars))
	for name := range t.vars {
		ordered = append(ordered, seen{name: name, seq: t.varSeq[name]})
	}
	// Insertion order is tracked via varSeq (assigned in resolveMatch);
	// a simple stable sort by that sequence number reproduces textual order.
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j-1].seq > ordered[j].seq; j-- {
			ordered[j-1], ordered[j] = ordered[j], ordered[j-1]
		}
	}
	names := make([]string, len(ordered))
	for i, s := range ordered {
		names[i] = s.name
	}
	return names
}
