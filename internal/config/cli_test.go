package config

import (
	"flag"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/termfx/kyquery/internal/model"
)

func withSilencedOutput(t *testing.T, fn func()) {
	t.Helper()
	oldStdout, oldStderr := os.Stdout, os.Stderr
	r, w, _ := os.Pipe()
	os.Stdout, os.Stderr = w, w
	fn()
	w.Close()
	os.Stdout, os.Stderr = oldStdout, oldStderr
	io.Copy(io.Discard, r)
	r.Close()
}

func TestBuildConfigFromFlagsHelp(t *testing.T) {
	var cfg *model.Config
	var err error
	withSilencedOutput(t, func() {
		cfg, err = BuildConfigFromFlags([]string{"--help"})
	})
	require.Nil(t, cfg)
	require.Equal(t, flag.ErrHelp, err)
}

func TestBuildConfigFromFlagsNoArgs(t *testing.T) {
	var cfg *model.Config
	var err error
	withSilencedOutput(t, func() {
		cfg, err = BuildConfigFromFlags([]string{})
	})
	require.Nil(t, cfg)
	require.Equal(t, flag.ErrHelp, err)
}

func TestBuildConfigFromFlagsMissingQuery(t *testing.T) {
	_, err := BuildConfigFromFlags([]string{"--verbose"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "--query or --match")
}

func TestBuildConfigFromFlagsQuery(t *testing.T) {
	cfg, err := BuildConfigFromFlags([]string{
		"--query", `MATCH (a)-[:loves]->(b) RETURN *`,
		"--verbose",
		"--no-header",
	})
	require.NoError(t, err)
	require.Equal(t, `MATCH (a)-[:loves]->(b) RETURN *`, cfg.Query)
	require.True(t, cfg.Verbose)
	require.True(t, cfg.NoHeader)
	require.Equal(t, model.IndexAuto, cfg.IndexMode)
	require.Equal(t, "-", cfg.Out)
}

func TestBuildConfigFromFlagsSpecializedClauses(t *testing.T) {
	cfg, err := BuildConfigFromFlags([]string{
		"--match", "(i)-[:loves]->(c)",
		"--where", "i =~ \"H.*\"",
		"--return", "*",
		"--order-by", "c",
		"--skip", "1",
		"--limit", "10",
	})
	require.NoError(t, err)
	require.Equal(t, "(i)-[:loves]->(c)", cfg.Match)
	require.Equal(t, `i =~ "H.*"`, cfg.Where)
	require.Equal(t, "*", cfg.Return)
	require.Equal(t, "c", cfg.OrderBy)
	require.Equal(t, "1", cfg.Skip)
	require.Equal(t, "10", cfg.Limit)
}

func TestBuildConfigFromFlagsParams(t *testing.T) {
	cfg, err := BuildConfigFromFlags([]string{
		"--query", "MATCH (n) RETURN *",
		"--para", "limit=10",
		"--spara", "name=Hans",
		"--lqpara", "label=Hans@de",
	})
	require.NoError(t, err)
	require.Len(t, cfg.Params, 3)

	require.Equal(t, model.Param{Name: "limit", Value: "10", Class: model.ParamRegular}, cfg.Params[0])
	require.Equal(t, model.Param{Name: "name", Value: "Hans", Class: model.ParamString}, cfg.Params[1])
	require.Equal(t, model.Param{Name: "label", Value: "Hans", Lang: "de", Class: model.ParamLangQualified}, cfg.Params[2])
}

func TestBuildConfigFromFlagsInvalidParam(t *testing.T) {
	_, err := BuildConfigFromFlags([]string{
		"--query", "MATCH (n) RETURN *",
		"--para", "noequalssign",
	})
	require.Error(t, err)
}

func TestBuildConfigFromFlagsInvalidIndexMode(t *testing.T) {
	_, err := BuildConfigFromFlags([]string{
		"--query", "MATCH (n) RETURN *",
		"--index", "bogus",
	})
	require.Error(t, err)
}

func TestBuildConfigFromFlagsInvalidExplainMode(t *testing.T) {
	_, err := BuildConfigFromFlags([]string{
		"--query", "MATCH (n) RETURN *",
		"--explain", "bogus",
	})
	require.Error(t, err)
}

func TestParseInputsWithGraphName(t *testing.T) {
	inputs, err := parseInputs([]string{"edges.tsv=g"}, nil)
	require.NoError(t, err)
	require.Equal(t, []model.Input{{Path: "edges.tsv", As: "g"}}, inputs)
}

func TestParseInputsWithoutGraphName(t *testing.T) {
	inputs, err := parseInputs([]string{"edges.tsv"}, nil)
	require.NoError(t, err)
	require.Equal(t, []model.Input{{Path: "edges.tsv", As: ""}}, inputs)
}

func TestParseInputsWithPositionalAsFlag(t *testing.T) {
	inputs, err := parseInputs([]string{"edges.tsv"}, []string{"g"})
	require.NoError(t, err)
	require.Equal(t, []model.Input{{Path: "edges.tsv", As: "g"}}, inputs)
}

func TestParseInputsInlineSuffixWinsOverAsFlag(t *testing.T) {
	inputs, err := parseInputs([]string{"edges.tsv=g"}, []string{"ignored"})
	require.NoError(t, err)
	require.Equal(t, []model.Input{{Path: "edges.tsv", As: "g"}}, inputs)
}
