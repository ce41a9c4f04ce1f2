// Package translate lowers a parsed Kypher AST into a single SQL SELECT
// statement: table aliasing, variable resolution, join emission, label
// filtering, aggregate detection, parameter binding, and result-header
// computation.
package translate

import (
	"fmt"

	"github.com/termfx/kyquery/internal/kyparser/ast"
	"github.com/termfx/kyquery/internal/model"
)

// GraphHandle is the table identity and column schema of one imported
// input, as returned by the Graph Cache's ensure(file) operation.
type GraphHandle struct {
	TableName string
	Columns   []string
}

// IndexRequest is a (table, column) pair the translator wants indexed
// before execution, per the auto-indexing rule in the design.
type IndexRequest struct {
	Table  string
	Column string
}

// Result is everything the Driver needs to run the translated query.
type Result struct {
	SQL     string
	Params  []any
	Header  []string
	Indexes []IndexRequest
}

// Translate lowers q into a Result. graphs maps a graph qualifier ("" for
// the unqualified default) to its table handle; params supplies the bound
// values for every $name reference in the query.
func Translate(q *ast.Query, graphs map[string]GraphHandle, params []model.Param) (*Result, error) {
	t := &translator{
		graphs:     graphs,
		paramsByName: make(map[string]model.Param, len(params)),
		aliasSeq:   make(map[string]int),
	}
	for _, pr := range params {
		t.paramsByName[pr.Name] = pr
	}

	if err := t.resolveMatch(q.Match); err != nil {
		return nil, err
	}

	var whereParts []string
	whereParts = append(whereParts, t.joinConditions()...)
	whereParts = append(whereParts, t.labelConditions()...)

	if q.Where != nil {
		cond, err := t.lowerExpr(q.Where)
		if err != nil {
			return nil, err
		}
		whereParts = append(whereParts, cond)
	}

	returnItems, header, err := t.resolveReturn(q)
	if err != nil {
		return nil, err
	}

	groupBy := aggregateGroupBy(returnItems)

	orderBy, err := t.resolveOrderBy(q.OrderBy, returnItems)
	if err != nil {
		return nil, err
	}

	sql, err := t.emitSQL(returnItems, whereParts, groupBy, orderBy, q.Skip, q.Limit)
	if err != nil {
		return nil, err
	}

	return &Result{
		SQL:     sql,
		Params:  t.boundParams,
		Header:  header,
		Indexes: t.indexRequests(),
	}, nil
}

type translator struct {
	graphs       map[string]GraphHandle
	paramsByName map[string]model.Param
	boundParams  []any

	aliasSeq   map[string]int // graph name -> next alias sequence number
	graphOrder map[string]int

	edges []edgeBinding
	vars  map[string]*varBinding // variable name -> resolved binding
	varSeq map[string]int        // variable name -> first-occurrence order, for RETURN * expansion

	joinPairs  [][2]endpointRef
	labelConds []labelCondition
}

// edgeBinding is one occurrence of a relationship pattern: its table alias,
// backing table, and the labels declared on it.
type edgeBinding struct {
	alias  string
	table  string
	labels []string
}

// endpointRef names a single column of a single edge alias.
type endpointRef struct {
	alias  string
	column string // "node1", "node2", or "id"
}

// varBinding is where a MATCH-bound variable primarily resolves: the
// first occurrence wins for property access and canonical-column
// expansion; later occurrences only contribute join predicates.
type varBinding struct {
	isRel     bool
	primary   endpointRef
	tableCols []string // full column set of the backing table, for property access validation
}

type labelCondition struct {
	alias  string
	column string // "node1", "node2", or "label"
	values []string
}

func (t *translator) nextAlias(graph string) string {
	t.aliasSeq[graph]++
	return fmt.Sprintf("g%d_%d", t.graphSeq(graph), t.aliasSeq[graph])
}

// graphSeq assigns a small stable integer to each distinct graph qualifier
// seen, purely for alias readability (g1_*, g2_*, ...).
func (t *translator) graphSeq(graph string) int {
	if t.graphOrder == nil {
		t.graphOrder = make(map[string]int)
	}
	if n, ok := t.graphOrder[graph]; ok {
		return n
	}
	n := len(t.graphOrder) + 1
	t.graphOrder[graph] = n
	return n
}
