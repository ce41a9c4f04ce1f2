package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/termfx/kyquery/internal/model"
	"github.com/termfx/kyquery/internal/translate"
)

func writeEdgeFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "edges.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunEndToEndQuery(t *testing.T) {
	edges := writeEdgeFile(t, "id\tnode1\tlabel\tnode2\ne1\tAlice\tloves\tBob\ne2\tBob\tloves\tCarol\n")
	cacheDir := t.TempDir()
	out := filepath.Join(t.TempDir(), "out.tsv")

	cfg := &model.Config{
		GraphCachePath: filepath.Join(cacheDir, "cache.db"),
		Inputs:         []model.Input{{Path: edges}},
		Match:          `(a)-[:loves]->(b)`,
		Return:         "a, b",
		Out:            out,
		IndexMode:      model.IndexAuto,
	}

	code := Run(cfg)
	require.Equal(t, 0, code)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Equal(t, "node1\tnode2", lines[0])
	require.Contains(t, string(data), "Alice\tBob")
	require.Contains(t, string(data), "Bob\tCarol")
}

func TestRunExplainMode(t *testing.T) {
	edges := writeEdgeFile(t, "id\tnode1\tlabel\tnode2\ne1\tAlice\tloves\tBob\n")
	cacheDir := t.TempDir()
	out := filepath.Join(t.TempDir(), "out.tsv")

	cfg := &model.Config{
		GraphCachePath: filepath.Join(cacheDir, "cache.db"),
		Inputs:         []model.Input{{Path: edges}},
		Match:          `(a)-[:loves]->(b)`,
		Return:         "a, b",
		Out:            out,
		IndexMode:      model.IndexAuto,
		Explain:        model.ExplainPlan,
	}

	code := Run(cfg)
	require.Equal(t, 0, code)
}

func TestRunIndexExpertModeAppliesSuggestions(t *testing.T) {
	edges := writeEdgeFile(t, "id\tnode1\tlabel\tnode2\ne1\tAlice\tloves\tBob\ne2\tBob\tloves\tCarol\n")
	cacheDir := t.TempDir()
	out := filepath.Join(t.TempDir(), "out.tsv")

	cfg := &model.Config{
		GraphCachePath: filepath.Join(cacheDir, "cache.db"),
		Inputs:         []model.Input{{Path: edges}},
		Match:          `(a)-[:loves]->(b)`,
		Where:          `a.label = 'loves'`,
		Return:         "a, b",
		Out:            out,
		IndexMode:      model.IndexExpert,
	}

	code := Run(cfg)
	require.Equal(t, 0, code)
}

func TestAssembleQueryPrefersFullQuery(t *testing.T) {
	cfg := &model.Config{Query: "MATCH (a) RETURN a"}
	got, err := assembleQuery(cfg)
	require.NoError(t, err)
	require.Equal(t, "MATCH (a) RETURN a", got)
}

func TestAssembleQueryFromClauses(t *testing.T) {
	cfg := &model.Config{
		Match:   "(a)-[:loves]->(b)",
		Where:   "a.label = 'person'",
		Return:  "a, b",
		OrderBy: "a",
		Skip:    "1",
		Limit:   "10",
	}
	got, err := assembleQuery(cfg)
	require.NoError(t, err)
	require.Equal(t,
		`MATCH (a)-[:loves]->(b) WHERE a.label = 'person' RETURN a, b ORDER BY a SKIP 1 LIMIT 10`,
		got,
	)
}

func TestDistinctTables(t *testing.T) {
	reqs := []translate.IndexRequest{
		{Table: "graph_0", Column: "node1"},
		{Table: "graph_0", Column: "label"},
		{Table: "graph_1", Column: "node1"},
	}
	require.Equal(t, []string{"graph_0", "graph_1"}, distinctTables(reqs))
}
