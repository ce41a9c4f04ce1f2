// Package ast defines the Abstract Syntax Tree nodes for the Kypher query
// dialect: node/relationship patterns, paths, clause groups, and the
// expression tree shared by WHERE, RETURN, and ORDER BY.
package ast

import (
	"strings"

	"github.com/termfx/kyquery/internal/kyparser/token"
)

// Node is the base interface every AST node satisfies.
type Node interface {
	TokenLiteral() string
	String() string
}

// Expression is any node usable in WHERE/RETURN/ORDER BY position.
type Expression interface {
	Node
	expressionNode()
}

// Direction is the arrow direction of a relationship pattern.
type Direction int

const (
	DirForward Direction = iota
	DirBackward
	DirUndirected
)

// PropertyMap is a pattern's `{prop: expr, ...}` block. A value that is a
// bare identifier not otherwise bound is an implicit capture variable; any
// other expression is a constraint.
type PropertyMap struct {
	Keys   []string
	Values []Expression
}

// NodePattern is `(var? (:label)? ({...})?)`.
type NodePattern struct {
	Token   token.Token
	Var     string // "" if anonymous
	Labels  []string
	Props   *PropertyMap
}

func (n *NodePattern) TokenLiteral() string { return n.Token.Literal }
func (n *NodePattern) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(n.Var)
	for _, l := range n.Labels {
		sb.WriteByte(':')
		sb.WriteString(l)
	}
	sb.WriteByte(')')
	return sb.String()
}

// RelPattern is `[var? (:label (|label)*)? ({...})?]` plus its direction.
type RelPattern struct {
	Token     token.Token
	Var       string
	Labels    []string
	Props     *PropertyMap
	Direction Direction
}

func (r *RelPattern) TokenLiteral() string { return r.Token.Literal }
func (r *RelPattern) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(r.Var)
	for i, l := range r.Labels {
		if i == 0 {
			sb.WriteByte(':')
		} else {
			sb.WriteByte('|')
		}
		sb.WriteString(l)
	}
	sb.WriteByte(']')
	return sb.String()
}

// Path is an alternating sequence of node and relationship patterns:
// Nodes has len(Rels)+1 entries, Rels[i] connects Nodes[i] to Nodes[i+1].
type Path struct {
	Nodes []*NodePattern
	Rels  []*RelPattern
}

func (p *Path) TokenLiteral() string {
	if len(p.Nodes) > 0 {
		return p.Nodes[0].TokenLiteral()
	}
	return ""
}
func (p *Path) String() string {
	var sb strings.Builder
	for i, n := range p.Nodes {
		sb.WriteString(n.String())
		if i < len(p.Rels) {
			r := p.Rels[i]
			switch r.Direction {
			case DirForward:
				sb.WriteString("-" + r.String() + "->")
			case DirBackward:
				sb.WriteString("<-" + r.String() + "-")
			default:
				sb.WriteString("-" + r.String() + "-")
			}
		}
	}
	return sb.String()
}

// ClauseGroup is one comma-separated element of a MATCH clause: an optional
// graph-name qualifier plus the path it binds.
type ClauseGroup struct {
	Graph string // "" means the default (first) input
	Path  *Path
}

func (c *ClauseGroup) TokenLiteral() string { return c.Path.TokenLiteral() }
func (c *ClauseGroup) String() string {
	if c.Graph == "" {
		return c.Path.String()
	}
	return c.Graph + ": " + c.Path.String()
}

// ReturnItem is one `expr (AS alias)?` entry in a RETURN list.
type ReturnItem struct {
	Expr  Expression
	Alias string
}

// OrderItem is one `expr (ASC|DESC)?` entry in an ORDER BY list.
type OrderItem struct {
	Expr       Expression
	Descending bool
}

// Query is the full parsed statement.
type Query struct {
	Match   []*ClauseGroup
	Where   Expression // nil if absent
	Return  []*ReturnItem
	Star    bool // RETURN * : Return is nil, expand all bound variables
	OrderBy []*OrderItem
	Skip    Expression
	Limit   Expression
}

func (q *Query) TokenLiteral() string {
	if len(q.Match) > 0 {
		return q.Match[0].TokenLiteral()
	}
	return ""
}
func (q *Query) String() string {
	var sb strings.Builder
	sb.WriteString("MATCH ")
	for i, c := range q.Match {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.String())
	}
	if q.Where != nil {
		sb.WriteString(" WHERE ")
		sb.WriteString(q.Where.String())
	}
	sb.WriteString(" RETURN ")
	if q.Star {
		sb.WriteString("*")
	}
	return sb.String()
}

// -----------------------------------------------------------------------------
// Expressions
// -----------------------------------------------------------------------------

// Literal is a scalar constant: symbol, string, language-qualified string,
// date, quantity, or geo-coordinate, carried verbatim as written in source.
type Literal struct {
	Token token.Token
	Value string
	Kind  token.Type // token.STRING, token.LQSTRING, token.DATE, token.GEO, token.IDENT (symbol), token.INT, token.FLOAT
}

func (l *Literal) expressionNode()     {}
func (l *Literal) TokenLiteral() string { return l.Token.Literal }
func (l *Literal) String() string       { return l.Value }

// Variable is a reference to a MATCH-bound node or relationship variable.
type Variable struct {
	Token token.Token
	Name  string
}

func (v *Variable) expressionNode()      {}
func (v *Variable) TokenLiteral() string { return v.Token.Literal }
func (v *Variable) String() string       { return v.Name }

// ParamRef is a `$name` reference.
type ParamRef struct {
	Token token.Token
	Name  string
}

func (p *ParamRef) expressionNode()      {}
func (p *ParamRef) TokenLiteral() string { return p.Token.Literal }
func (p *ParamRef) String() string       { return "$" + p.Name }

// PropertyAccess is `var.prop`.
type PropertyAccess struct {
	Token    token.Token
	Variable string
	Property string
}

func (p *PropertyAccess) expressionNode()      {}
func (p *PropertyAccess) TokenLiteral() string { return p.Token.Literal }
func (p *PropertyAccess) String() string       { return p.Variable + "." + p.Property }

// FuncCall is a scalar or aggregate function invocation.
type FuncCall struct {
	Token    token.Token
	Name     string
	Args     []Expression
	Distinct bool // count(DISTINCT x)
}

func (f *FuncCall) expressionNode()      {}
func (f *FuncCall) TokenLiteral() string { return f.Token.Literal }
func (f *FuncCall) String() string {
	var sb strings.Builder
	sb.WriteString(f.Name)
	sb.WriteByte('(')
	if f.Distinct {
		sb.WriteString("DISTINCT ")
	}
	for i, a := range f.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// BinaryExpr covers arithmetic, comparison, and boolean combination.
type BinaryExpr struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (b *BinaryExpr) expressionNode()      {}
func (b *BinaryExpr) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpr) String() string {
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}

// UnaryExpr covers NOT and unary minus.
type UnaryExpr struct {
	Token    token.Token
	Operator string
	Operand  Expression
}

func (u *UnaryExpr) expressionNode()      {}
func (u *UnaryExpr) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryExpr) String() string       { return "(" + u.Operator + " " + u.Operand.String() + ")" }

// RegexMatch is `value =~ pattern`.
type RegexMatch struct {
	Token   token.Token
	Value   Expression
	Pattern Expression
}

func (r *RegexMatch) expressionNode()      {}
func (r *RegexMatch) TokenLiteral() string { return r.Token.Literal }
func (r *RegexMatch) String() string       { return r.Value.String() + " =~ " + r.Pattern.String() }

// InExpr is `expr IN [a, b, ...]`.
type InExpr struct {
	Token token.Token
	Value Expression
	List  []Expression
}

func (i *InExpr) expressionNode()      {}
func (i *InExpr) TokenLiteral() string { return i.Token.Literal }
func (i *InExpr) String() string {
	var parts []string
	for _, e := range i.List {
		parts = append(parts, e.String())
	}
	return i.Value.String() + " IN [" + strings.Join(parts, ", ") + "]"
}

// CaseExpr is a `CASE WHEN ... THEN ... ELSE ... END` expression.
type CaseWhen struct {
	Cond Expression
	Then Expression
}

type CaseExpr struct {
	Token    token.Token
	Whens    []CaseWhen
	Else     Expression // nil if absent
}

func (c *CaseExpr) expressionNode()      {}
func (c *CaseExpr) TokenLiteral() string { return c.Token.Literal }
func (c *CaseExpr) String() string {
	var sb strings.Builder
	sb.WriteString("CASE")
	for _, w := range c.Whens {
		sb.WriteString(" WHEN " + w.Cond.String() + " THEN " + w.Then.String())
	}
	if c.Else != nil {
		sb.WriteString(" ELSE " + c.Else.String())
	}
	sb.WriteString(" END")
	return sb.String()
}

// StarExpr represents the bare `*` RETURN item.
type StarExpr struct {
	Token token.Token
}

func (s *StarExpr) expressionNode()      {}
func (s *StarExpr) TokenLiteral() string { return s.Token.Literal }
func (s *StarExpr) String() string       { return "*" }
