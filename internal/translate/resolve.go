package translate

import (
	"fmt"

	"github.com/termfx/kyquery/internal/kyparser/ast"
)

// resolveMatch walks every clause group's path, allocates a table alias
// per relationship pattern, and builds the join/label/variable-binding
// state the rest of translation consumes.
//
// Every node endpoint either starts a new variable binding or is joined
// back to an earlier occurrence of the same logical node: chain-adjacency
// (the shared node between two consecutive edges) is structural and
// applies regardless of naming; a repeated variable name — whether within
// one chain, across chains in one MATCH, or across MATCH clauses — adds
// an explicit join back to that variable's first occurrence. A reflexive
// pattern (`(a)-[]->(a)`) is the special case where both endpoints of one
// edge share a name.
func (t *translator) resolveMatch(groups []*ast.ClauseGroup) error {
	t.vars = make(map[string]*varBinding)
	t.varSeq = make(map[string]int)
	firstOccurrence := make(map[string]endpointRef)

	bindOccurrence := func(name string, ref endpointRef, tableCols []string) {
		if name == "" {
			return
		}
		if first, ok := firstOccurrence[name]; ok {
			t.joinPairs = append(t.joinPairs, [2]endpointRef{first, ref})
			return
		}
		firstOccurrence[name] = ref
		t.varSeq[name] = len(t.varSeq)
		t.vars[name] = &varBinding{primary: ref, tableCols: tableCols}
	}

	for _, cg := range groups {
		graphName := cg.Graph
		handle, ok := t.graphs[graphName]
		if !ok {
			return fmt.Errorf("unknown graph qualifier %q", graphName)
		}

		path := cg.Path
		var prevRightRef *endpointRef

		for i, rel := range path.Rels {
			alias := t.nextAlias(graphName)
			t.edges = append(t.edges, edgeBinding{alias: alias, table: handle.TableName, labels: rel.Labels})
			if len(rel.Labels) > 0 {
				t.labelConds = append(t.labelConds, labelCondition{alias: alias, column: "label", values: rel.Labels})
			}

			leftNode := path.Nodes[i]
			rightNode := path.Nodes[i+1]

			leftCol, rightCol := "node1", "node2"
			if rel.Direction == ast.DirBackward {
				leftCol, rightCol = "node2", "node1"
			}
			leftRef := endpointRef{alias: alias, column: leftCol}
			rightRef := endpointRef{alias: alias, column: rightCol}

			for _, l := range leftNode.Labels {
				t.labelConds = append(t.labelConds, labelCondition{alias: alias, column: leftCol, values: []string{l}})
			}
			for _, l := range rightNode.Labels {
				t.labelConds = append(t.labelConds, labelCondition{alias: alias, column: rightCol, values: []string{l}})
			}

			if prevRightRef != nil {
				t.joinPairs = append(t.joinPairs, [2]endpointRef{*prevRightRef, leftRef})
			}
			// Bind in textual order (left node, relationship, right node)
			// so varSeq drives RETURN * in the order variables are written.
			bindOccurrence(leftNode.Var, leftRef, handle.Columns)

			if rel.Var != "" {
				if _, exists := t.vars[rel.Var]; !exists {
					t.varSeq[rel.Var] = len(t.varSeq)
					t.vars[rel.Var] = &varBinding{isRel: true, primary: endpointRef{alias: alias, column: "id"}, tableCols: handle.Columns}
				}
			}

			bindOccurrence(rightNode.Var, rightRef, handle.Columns)

			if leftNode.Var != "" && leftNode.Var == rightNode.Var {
				t.joinPairs = append(t.joinPairs, [2]endpointRef{leftRef, rightRef})
			}

			next := rightRef
			prevRightRef = &next
		}
	}

	return nil
}
