package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/pflag"

	"github.com/termfx/kyquery/internal/model"
)

// BuildConfigFromFlags parses command-line flags into a Config. Returns
// flag.ErrHelp when --help is set or no flags were given at all, mirroring
// the teacher's "bare invocation shows usage" convention.
func BuildConfigFromFlags(args []string) (*model.Config, error) {
	fs := pflag.NewFlagSet("kyquery", pflag.ContinueOnError)
	fs.Usage = func() { PrintUsage(fs) }

	help := fs.BoolP("help", "h", false, "Show this help message and exit.")

	query := fs.StringP("query", "q", "", "Full Kypher query (MATCH ... WHERE ... RETURN ...).")
	match := fs.String("match", "", "MATCH clause, used with --where/--return/etc instead of --query.")
	where := fs.String("where", "", "WHERE clause.")
	ret := fs.String("return", "", "RETURN clause.")
	orderBy := fs.String("order-by", "", "ORDER BY clause.")
	skip := fs.String("skip", "", "SKIP clause.")
	limit := fs.String("limit", "", "LIMIT clause.")

	para := fs.StringArray("para", nil, "Regular parameter: --para name=value.")
	spara := fs.StringArray("spara", nil, "String parameter: --spara name=value.")
	lqpara := fs.StringArray("lqpara", nil, `Language-qualified string parameter: --lqpara name=value@lang.`)

	input := fs.StringArray("input", nil, "Input file, glob pattern (** supported), or path=name to bind a graph qualifier.")
	as := fs.StringArray("as", nil, "Graph qualifier for the --input at the same position, when not given as path=name.")
	out := fs.StringP("out", "o", "-", `Output path, "-" for standard output.`)
	noHeader := fs.Bool("no-header", false, "Suppress the result header row.")
	indexMode := fs.String("index", string(model.IndexAuto),
		"Index mode: auto, expert, quad, triple, node1+label, node1, label, node2, none.")
	explain := fs.String("explain", "", "Explain mode instead of executing: plan, full, expert.")
	graphCache := fs.String("graph-cache", "", "Graph cache file path (default: resolved temp path).")
	verbose := fs.BoolP("verbose", "v", false, "Enable verbose diagnostic output on stderr.")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *help || len(args) == 0 {
		fs.Usage()
		return nil, flag.ErrHelp
	}

	if *query == "" && *match == "" {
		return nil, fmt.Errorf("one of --query or --match is required")
	}

	params, err := parseParams(*para, *spara, *lqpara)
	if err != nil {
		return nil, fmt.Errorf("parsing parameters: %w", err)
	}

	inputs, err := parseInputs(*input, *as)
	if err != nil {
		return nil, fmt.Errorf("resolving --input: %w", err)
	}

	mode := model.IndexMode(*indexMode)
	switch mode {
	case model.IndexAuto, model.IndexExpert, model.IndexQuad, model.IndexTriple,
		model.IndexNode1Label, model.IndexNode1, model.IndexLabel, model.IndexNode2, model.IndexNone:
	default:
		return nil, fmt.Errorf("invalid --index mode %q", *indexMode)
	}

	explainMode := model.ExplainMode(*explain)
	switch explainMode {
	case model.ExplainNone, model.ExplainPlan, model.ExplainFull, model.ExplainExpert:
	default:
		return nil, fmt.Errorf("invalid --explain mode %q", *explain)
	}

	cfg := &model.Config{
		GraphCachePath: *graphCache,
		Inputs:         inputs,
		Query:          *query,
		Match:          *match,
		Where:          *where,
		Return:         *ret,
		OrderBy:        *orderBy,
		Skip:           *skip,
		Limit:          *limit,
		Params:         params,
		Out:            *out,
		NoHeader:       *noHeader,
		IndexMode:      mode,
		Explain:        explainMode,
		Verbose:        *verbose,
	}
	return cfg, nil
}

// parseParams turns --para/--spara/--lqpara repeated "name=value" flags into
// the Param vector, tagging each with its binding class.
func parseParams(regular, strs, lqs []string) ([]model.Param, error) {
	var params []model.Param

	for _, kv := range regular {
		name, value, err := splitNameValue(kv, "--para")
		if err != nil {
			return nil, err
		}
		params = append(params, model.Param{Name: name, Value: value, Class: model.ParamRegular})
	}
	for _, kv := range strs {
		name, value, err := splitNameValue(kv, "--spara")
		if err != nil {
			return nil, err
		}
		params = append(params, model.Param{Name: name, Value: value, Class: model.ParamString})
	}
	for _, kv := range lqs {
		name, rest, err := splitNameValue(kv, "--lqpara")
		if err != nil {
			return nil, err
		}
		text, lang, ok := cutLast(rest, "@")
		if !ok {
			return nil, fmt.Errorf("--lqpara %q: expected name=value@lang", kv)
		}
		params = append(params, model.Param{Name: name, Value: text, Lang: lang, Class: model.ParamLangQualified})
	}
	return params, nil
}

func splitNameValue(kv, flagName string) (name, value string, err error) {
	idx := strings.IndexByte(kv, '=')
	if idx < 0 {
		return "", "", fmt.Errorf("%s %q: expected name=value", flagName, kv)
	}
	return kv[:idx], kv[idx+1:], nil
}

func cutLast(s, sep string) (before, after string, found bool) {
	idx := strings.LastIndex(s, sep)
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+len(sep):], true
}

// parseInputs expands each --input value as a glob (doublestar, so `**`
// works) and resolves its graph qualifier, either from an inline "=name"
// suffix or from the --as value at the same position — mirroring
// original_source's "--input file --as name" form for callers who don't
// want the "=name" suffix syntax. An inline suffix always wins.
func parseInputs(raw, as []string) ([]model.Input, error) {
	var inputs []model.Input
	for i, spec := range raw {
		pattern := spec
		name := ""
		if idx := strings.IndexByte(spec, '='); idx >= 0 {
			pattern, name = spec[:idx], spec[idx+1:]
		} else if i < len(as) {
			name = as[i]
		}

		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("--input %q: %w", spec, err)
		}
		if len(matches) == 0 {
			matches = []string{pattern}
		}
		for _, path := range matches {
			inputs = append(inputs, model.Input{Path: path, As: name})
		}
	}
	return inputs, nil
}
