package translate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/termfx/kyquery/internal/kyparser/parser"
)

func translateQuery(t *testing.T, query string, graphs map[string]GraphHandle) *Result {
	t.Helper()
	q, err := parser.New(query).ParseQuery()
	require.NoError(t, err)
	res, err := Translate(q, graphs, nil)
	require.NoError(t, err)
	return res
}

func edgeGraph() map[string]GraphHandle {
	return map[string]GraphHandle{
		"": {TableName: "graph_1", Columns: []string{"id", "node1", "label", "node2"}},
	}
}

func TestResolveReturnBareVariablesUseCanonicalColumnNames(t *testing.T) {
	res := translateQuery(t, `MATCH (p)-[:name]->(n) RETURN p, n`, edgeGraph())
	require.Equal(t, []string{"node1", "node2"}, res.Header)
}

func TestResolveReturnStarUsesCanonicalColumnNames(t *testing.T) {
	res := translateQuery(t, `MATCH (p)-[r:name]->(n) RETURN *`, edgeGraph())
	require.Equal(t, []string{"node1", "id", "node1.1", "label", "node2", "node2.1"}, res.Header)
}

func TestResolveReturnRelationshipVariableExpandsUnprefixed(t *testing.T) {
	res := translateQuery(t, `MATCH (p)-[r:name]->(n) RETURN p, n, r, r.label`, edgeGraph())
	require.Equal(t, []string{"node1", "node2", "id", "node1.1", "label", "node2.1", "label.1"}, res.Header)
}

func TestResolveReturnPropertyAccessUsesBarePropertyName(t *testing.T) {
	res := translateQuery(t, `MATCH (p)-[r:name]->(n) RETURN r.label`, edgeGraph())
	require.Equal(t, []string{"label"}, res.Header)
}

func TestResolveReturnExplicitAliasWins(t *testing.T) {
	res := translateQuery(t, `MATCH (p)-[:name]->(n) RETURN p AS who`, edgeGraph())
	require.Equal(t, []string{"who"}, res.Header)
}

func TestResolveReturnAliasedRelationshipVariableDisambiguatesByAlias(t *testing.T) {
	res := translateQuery(t, `MATCH (p)-[r:name]->(n) RETURN r AS rel`, edgeGraph())
	require.Equal(t, []string{"rel.id", "rel.node1", "rel.label", "rel.node2"}, res.Header)
}
