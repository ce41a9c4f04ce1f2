package translate

import (
	"fmt"
	"strings"

	"github.com/termfx/kyquery/internal/kyparser/ast"
	"github.com/termfx/kyquery/internal/kyparser/token"
	"github.com/termfx/kyquery/internal/model"
)

// lowerExpr renders an AST expression as SQL text, binding any parameter
// references into t.boundParams in encounter order.
func (t *translator) lowerExpr(e ast.Expression) (string, error) {
	switch n := e.(type) {
	case *ast.Literal:
		return t.lowerLiteral(n)
	case *ast.Variable:
		return t.lowerVariable(n)
	case *ast.ParamRef:
		return t.lowerParam(n)
	case *ast.PropertyAccess:
		return t.lowerPropertyAccess(n)
	case *ast.FuncCall:
		return t.lowerFuncCall(n)
	case *ast.BinaryExpr:
		return t.lowerBinary(n)
	case *ast.UnaryExpr:
		return t.lowerUnary(n)
	case *ast.RegexMatch:
		return t.lowerRegex(n)
	case *ast.InExpr:
		return t.lowerIn(n)
	case *ast.CaseExpr:
		return t.lowerCase(n)
	case *ast.StarExpr:
		return "", fmt.Errorf("'*' is only valid as a bare RETURN item")
	default:
		return "", fmt.Errorf("unsupported expression node %T", e)
	}
}

func (t *translator) lowerLiteral(n *ast.Literal) (string, error) {
	switch n.Kind {
	case token.INT, token.FLOAT:
		return n.Value, nil
	default:
		// STRING, LQSTRING, DATE, GEO literals are stored verbatim
		// (including their syntactic markers) as the column's text value.
		return sqlQuoteString(n.Value), nil
	}
}

func (t *translator) lowerVariable(n *ast.Variable) (string, error) {
	b, ok := t.vars[n.Name]
	if !ok {
		return "", fmt.Errorf("unknown variable %q: must appear in a MATCH clause", n.Name)
	}
	return fmt.Sprintf("%s.%s", quoteIdent(b.primary.alias), quoteIdent(b.primary.column)), nil
}

func (t *translator) lowerParam(n *ast.ParamRef) (string, error) {
	p, ok := t.paramsByName[n.Name]
	if !ok {
		return "", fmt.Errorf("unbound parameter $%s", n.Name)
	}
	var value any
	switch p.Class {
	case model.ParamString:
		value = `"` + p.Value + `"`
	case model.ParamLangQualified:
		value = "'" + p.Value + "'@" + p.Lang
	default:
		value = p.Value
	}
	t.boundParams = append(t.boundParams, value)
	return "?", nil
}

func (t *translator) lowerPropertyAccess(n *ast.PropertyAccess) (string, error) {
	b, ok := t.vars[n.Variable]
	if !ok {
		return "", fmt.Errorf("unknown variable %q in property access", n.Variable)
	}
	// var.label always means the row's own label column, regardless of
	// which endpoint column the variable itself resolved to.
	return fmt.Sprintf("%s.%s", quoteIdent(b.primary.alias), quoteIdent(n.Property)), nil
}

var aggregateNames = map[string]bool{
	"count": true, "sum": true, "avg": true, "min": true, "max": true,
	"group_concat": true, "total": true,
}

func isAggregateCall(name string) bool {
	return aggregateNames[strings.ToLower(name)]
}

func (t *translator) lowerFuncCall(n *ast.FuncCall) (string, error) {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		s, err := t.lowerExpr(a)
		if err != nil {
			return "", err
		}
		args[i] = s
	}
	distinct := ""
	if n.Distinct {
		distinct = "DISTINCT "
	}
	return fmt.Sprintf("%s(%s%s)", n.Name, distinct, strings.Join(args, ", ")), nil
}

func (t *translator) lowerBinary(n *ast.BinaryExpr) (string, error) {
	left, err := t.lowerExpr(n.Left)
	if err != nil {
		return "", err
	}
	right, err := t.lowerExpr(n.Right)
	if err != nil {
		return "", err
	}
	op := strings.ToUpper(n.Operator)
	if op != "AND" && op != "OR" {
		op = n.Operator
	}
	return fmt.Sprintf("(%s %s %s)", left, op, right), nil
}

func (t *translator) lowerUnary(n *ast.UnaryExpr) (string, error) {
	operand, err := t.lowerExpr(n.Operand)
	if err != nil {
		return "", err
	}
	op := strings.ToUpper(n.Operator)
	if op == "NOT" {
		return fmt.Sprintf("(NOT %s)", operand), nil
	}
	return fmt.Sprintf("(%s%s)", n.Operator, operand), nil
}

func (t *translator) lowerRegex(n *ast.RegexMatch) (string, error) {
	value, err := t.lowerExpr(n.Value)
	if err != nil {
		return "", err
	}
	pattern, err := t.lowerExpr(n.Pattern)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("kgtk_regex(%s, %s)", value, pattern), nil
}

func (t *translator) lowerIn(n *ast.InExpr) (string, error) {
	value, err := t.lowerExpr(n.Value)
	if err != nil {
		return "", err
	}
	items := make([]string, len(n.List))
	for i, e := range n.List {
		s, err := t.lowerExpr(e)
		if err != nil {
			return "", err
		}
		items[i] = s
	}
	return fmt.Sprintf("%s IN (%s)", value, strings.Join(items, ", ")), nil
}

func (t *translator) lowerCase(n *ast.CaseExpr) (string, error) {
	var sb strings.Builder
	sb.WriteString("CASE")
	for _, w := range n.Whens {
		cond, err := t.lowerExpr(w.Cond)
		if err != nil {
			return "", err
		}
		then, err := t.lowerExpr(w.Then)
		if err != nil {
			return "", err
		}
		sb.WriteString(fmt.Sprintf(" WHEN %s THEN %s", cond, then))
	}
	if n.Else != nil {
		els, err := t.lowerExpr(n.Else)
		if err != nil {
			return "", err
		}
		sb.WriteString(" ELSE " + els)
	}
	sb.WriteString(" END")
	return sb.String(), nil
}
