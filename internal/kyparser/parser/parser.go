// Package parser implements a recursive-descent parser for the Kypher
// query dialect, following the grammar informally described for the
// engine: MATCH/WHERE/RETURN/ORDER BY/SKIP/LIMIT over node and
// relationship chain patterns.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/termfx/kyquery/internal/kyparser/ast"
	"github.com/termfx/kyquery/internal/kyparser/lexer"
	"github.com/termfx/kyquery/internal/kyparser/token"
	"github.com/termfx/kyquery/internal/model"
)

// precedence levels for the Pratt expression parser, lowest to highest.
const (
	_ int = iota
	precLowest
	precOr
	precAnd
	precNot
	precCompare // = <> < > <= >= =~ IN
	precAdd     // + -
	precMul     // * / %
	precUnary
	precCall // function call, property access
)

var precedences = map[token.Type]int{
	token.OR:      precOr,
	token.AND:     precAnd,
	token.EQ:      precCompare,
	token.NEQ:     precCompare,
	token.LT:      precCompare,
	token.GT:      precCompare,
	token.LTE:     precCompare,
	token.GTE:     precCompare,
	token.REGEX:   precCompare,
	token.IN:      precCompare,
	token.PLUS:    precAdd,
	token.MINUS:   precAdd,
	token.DASH:    precAdd,
	token.ASTERISK: precMul,
	token.SLASH:   precMul,
	token.PERCENT: precMul,
	token.DOT:     precCall,
	token.LPAREN:  precCall,
}

type prefixParseFn func() ast.Expression
type infixParseFn func(ast.Expression) ast.Expression

// Parser turns a token stream into a *ast.Query.
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errs []*model.ParseError

	prefixFns map[token.Type]prefixParseFn
	infixFns  map[token.Type]infixParseFn
}

// New constructs a Parser over the given Kypher source text.
func New(input string) *Parser {
	p := &Parser{l: lexer.New(input)}

	p.prefixFns = map[token.Type]prefixParseFn{
		token.IDENT:    p.parseIdentOrCall,
		token.PARAM:    p.parseParam,
		token.STRING:   p.parseLiteralTok,
		token.LQSTRING: p.parseLiteralTok,
		token.DATE:     p.parseLiteralTok,
		token.GEO:      p.parseLiteralTok,
		token.INT:      p.parseLiteralTok,
		token.FLOAT:    p.parseLiteralTok,
		token.LPAREN:   p.parseGroupedExpr,
		token.LBRACKET: p.parseListLiteralAsExpr,
		token.MINUS:    p.parsePrefixExpr,
		token.DASH:     p.parsePrefixExpr,
		token.NOT:      p.parsePrefixExpr,
		token.CASE:     p.parseCaseExpr,
		token.ASTERISK: p.parseStarExpr,
	}
	p.infixFns = map[token.Type]infixParseFn{
		token.PLUS:     p.parseInfixExpr,
		token.MINUS:    p.parseInfixExpr,
		token.DASH:     p.parseInfixExpr,
		token.ASTERISK: p.parseInfixExpr,
		token.SLASH:    p.parseInfixExpr,
		token.PERCENT:  p.parseInfixExpr,
		token.EQ:       p.parseInfixExpr,
		token.NEQ:      p.parseInfixExpr,
		token.LT:       p.parseInfixExpr,
		token.GT:       p.parseInfixExpr,
		token.LTE:      p.parseInfixExpr,
		token.GTE:      p.parseInfixExpr,
		token.AND:      p.parseInfixExpr,
		token.OR:       p.parseInfixExpr,
		token.REGEX:    p.parseRegexExpr,
		token.IN:       p.parseInExpr,
		token.DOT:      p.parsePropertyAccess,
	}

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns every parse error accumulated so far. The first entry is
// the one the driver surfaces, per the "first violation" discipline.
func (p *Parser) Errors() []*model.ParseError { return p.errs }

func (p *Parser) pos() model.Pos { return model.Pos{Line: p.curToken.Line, Col: p.curToken.Column} }

func (p *Parser) errorf(expected, format string, args ...any) {
	p.errs = append(p.errs, &model.ParseError{
		Pos:      p.pos(),
		Message:  fmt.Sprintf(format, args...),
		Expected: expected,
	})
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) expect(t token.Type) bool {
	if p.peekIs(t) {
		p.nextToken()
		return true
	}
	p.errorf(t.String(), "unexpected token %q", p.peekToken.Literal)
	return false
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return precLowest
}

// ParseQuery parses a complete "MATCH ... [WHERE ...] RETURN ... [ORDER BY
// ...] [SKIP ...] [LIMIT ...]" statement.
func (p *Parser) ParseQuery() (*ast.Query, error) {
	q := &ast.Query{}

	if !p.curIs(token.MATCH) {
		p.errorf("MATCH", "query must start with MATCH, got %q", p.curToken.Literal)
		return nil, p.errs[0]
	}
	p.nextToken()

	q.Match = p.parseClauseGroupList()

	if p.curIs(token.WHERE) {
		p.nextToken()
		q.Where = p.parseExpression(precLowest)
		p.nextToken()
	}

	if !p.curIs(token.RETURN) {
		p.errorf("RETURN", "expected RETURN, got %q", p.curToken.Literal)
		return q, p.errs[0]
	}
	p.nextToken()

	if p.curIs(token.ASTERISK) {
		q.Star = true
		p.nextToken()
	} else {
		q.Return = p.parseReturnList()
	}

	if p.curIs(token.ORDER) {
		p.nextToken()
		if !p.expect(token.BY) {
			return q, p.errs[0]
		}
		p.nextToken()
		q.OrderBy = p.parseOrderList()
	}

	if p.curIs(token.SKIP_KW) {
		p.nextToken()
		q.Skip = p.parseExpression(precLowest)
		p.nextToken()
	}
	if p.curIs(token.LIMIT) {
		p.nextToken()
		q.Limit = p.parseExpression(precLowest)
		p.nextToken()
	}

	if len(p.errs) > 0 {
		return q, p.errs[0]
	}
	return q, nil
}

// -----------------------------------------------------------------------------
// MATCH clause
// -----------------------------------------------------------------------------

func (p *Parser) parseClauseGroupList() []*ast.ClauseGroup {
	var groups []*ast.ClauseGroup
	groups = append(groups, p.parseClauseGroup())
	for p.curIs(token.COMMA) {
		p.nextToken()
		groups = append(groups, p.parseClauseGroup())
	}
	return groups
}

func (p *Parser) parseClauseGroup() *ast.ClauseGroup {
	cg := &ast.ClauseGroup{}
	if p.curIs(token.IDENT) && p.peekIs(token.COLON) {
		cg.Graph = p.curToken.Literal
		p.nextToken() // consume ident
		p.nextToken() // consume colon
	}
	cg.Path = p.parsePath()
	return cg
}

func (p *Parser) parsePath() *ast.Path {
	path := &ast.Path{}
	path.Nodes = append(path.Nodes, p.parseNodePattern())

	for p.curIs(token.DASH) || p.curIs(token.ARROW_L) {
		rel, dir := p.parseRelPattern()
		rel.Direction = dir
		path.Rels = append(path.Rels, rel)
		path.Nodes = append(path.Nodes, p.parseNodePattern())
	}
	return path
}

func (p *Parser) parseNodePattern() *ast.NodePattern {
	n := &ast.NodePattern{Token: p.curToken}
	if !p.curIs(token.LPAREN) {
		p.errorf("(", "expected node pattern, got %q", p.curToken.Literal)
		return n
	}
	p.nextToken()

	if p.curIs(token.IDENT) {
		n.Var = p.curToken.Literal
		p.nextToken()
	}
	for p.curIs(token.COLON) {
		p.nextToken()
		n.Labels = append(n.Labels, p.curToken.Literal)
		p.nextToken()
	}
	if p.curIs(token.LBRACE) {
		n.Props = p.parsePropertyMap()
	}
	if !p.curIs(token.RPAREN) {
		p.errorf(")", "unterminated node pattern at %q", p.curToken.Literal)
	} else {
		p.nextToken()
	}
	return n
}

func (p *Parser) parseRelPattern() (*ast.RelPattern, ast.Direction) {
	dir := ast.DirUndirected
	leftArrow := p.curIs(token.ARROW_L)
	p.nextToken() // consume leading - or <-

	r := &ast.RelPattern{Token: p.curToken}
	if p.curIs(token.LBRACKET) {
		p.nextToken()
		if p.curIs(token.IDENT) {
			r.Var = p.curToken.Literal
			p.nextToken()
		}
		for p.curIs(token.COLON) || p.curIs(token.PIPE) {
			p.nextToken()
			r.Labels = append(r.Labels, p.curToken.Literal)
			p.nextToken()
		}
		if p.curIs(token.LBRACE) {
			r.Props = p.parsePropertyMap()
		}
		if !p.curIs(token.RBRACKET) {
			p.errorf("]", "unterminated relationship pattern at %q", p.curToken.Literal)
		} else {
			p.nextToken()
		}
	}

	rightArrow := false
	if p.curIs(token.ARROW_R) {
		rightArrow = true
		p.nextToken()
	} else if p.curIs(token.DASH) {
		p.nextToken()
	}

	switch {
	case leftArrow && !rightArrow:
		dir = ast.DirBackward
	case rightArrow && !leftArrow:
		dir = ast.DirForward
	default:
		dir = ast.DirUndirected
	}
	return r, dir
}

func (p *Parser) parsePropertyMap() *ast.PropertyMap {
	pm := &ast.PropertyMap{}
	p.nextToken() // consume {
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		key := p.curToken.Literal
		p.nextToken()
		if !p.curIs(token.COLON) {
			p.errorf(":", "expected ':' in property map, got %q", p.curToken.Literal)
			break
		}
		p.nextToken()
		val := p.parseExpression(precLowest)
		pm.Keys = append(pm.Keys, key)
		pm.Values = append(pm.Values, val)
		p.nextToken()
		if p.curIs(token.COMMA) {
			p.nextToken()
		}
	}
	if p.curIs(token.RBRACE) {
		p.nextToken()
	}
	return pm
}

// -----------------------------------------------------------------------------
// RETURN / ORDER BY
// -----------------------------------------------------------------------------

func (p *Parser) parseReturnList() []*ast.ReturnItem {
	var items []*ast.ReturnItem
	items = append(items, p.parseReturnItem())
	for p.curIs(token.COMMA) {
		p.nextToken()
		items = append(items, p.parseReturnItem())
	}
	return items
}

func (p *Parser) parseReturnItem() *ast.ReturnItem {
	expr := p.parseExpression(precLowest)
	item := &ast.ReturnItem{Expr: expr}
	p.nextToken()
	if p.curIs(token.AS) {
		p.nextToken()
		item.Alias = p.curToken.Literal
		p.nextToken()
	}
	return item
}

func (p *Parser) parseOrderList() []*ast.OrderItem {
	var items []*ast.OrderItem
	items = append(items, p.parseOrderItem())
	for p.curIs(token.COMMA) {
		p.nextToken()
		items = append(items, p.parseOrderItem())
	}
	return items
}

func (p *Parser) parseOrderItem() *ast.OrderItem {
	expr := p.parseExpression(precLowest)
	item := &ast.OrderItem{Expr: expr}
	p.nextToken()
	if p.curIs(token.ASC) {
		p.nextToken()
	} else if p.curIs(token.DESC) {
		item.Descending = true
		p.nextToken()
	}
	return item
}

// -----------------------------------------------------------------------------
// Expressions (Pratt parser)
// -----------------------------------------------------------------------------

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixFns[p.curToken.Type]
	if prefix == nil {
		p.errorf("expression", "no prefix parse function for %q", p.curToken.Literal)
		return nil
	}
	left := prefix()

	for !p.peekIs(token.EOF) && precedence < peekPrecedence(p) {
		infix := p.infixFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func peekPrecedence(p *Parser) int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return precLowest
}

func (p *Parser) parseIdentOrCall() ast.Expression {
	name := p.curToken.Literal
	tok := p.curToken
	if p.peekIs(token.LPAREN) {
		p.nextToken()
		return p.parseCall(tok, name)
	}
	return &ast.Variable{Token: tok, Name: name}
}

func (p *Parser) parseCall(tok token.Token, name string) ast.Expression {
	call := &ast.FuncCall{Token: tok, Name: name}
	p.nextToken() // consume (
	if p.curIs(token.IDENT) && strings.EqualFold(p.curToken.Literal, "DISTINCT") {
		call.Distinct = true
		p.nextToken()
	}
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		call.Args = append(call.Args, p.parseExpression(precLowest))
		p.nextToken()
		if p.curIs(token.COMMA) {
			p.nextToken()
		}
	}
	return call
}

func (p *Parser) parsePropertyAccess(left ast.Expression) ast.Expression {
	v, ok := left.(*ast.Variable)
	if !ok {
		p.errorf("variable", "property access requires a variable on the left, got %q", left.String())
		return left
	}
	tok := p.curToken // the DOT
	p.nextToken()
	prop := p.curToken.Literal
	return &ast.PropertyAccess{Token: tok, Variable: v.Name, Property: prop}
}

func (p *Parser) parseParam() ast.Expression {
	return &ast.ParamRef{Token: p.curToken, Name: p.curToken.Literal}
}

func (p *Parser) parseLiteralTok() ast.Expression {
	return &ast.Literal{Token: p.curToken, Value: p.curToken.Literal, Kind: p.curToken.Type}
}

func (p *Parser) parseStarExpr() ast.Expression {
	return &ast.StarExpr{Token: p.curToken}
}

func (p *Parser) parseGroupedExpr() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(precLowest)
	if !p.expect(token.RPAREN) {
		return expr
	}
	return expr
}

func (p *Parser) parseListLiteralAsExpr() ast.Expression {
	// used only as the RHS of IN; parseInExpr drives this directly, but the
	// prefix slot must exist so a bare `[...]` doesn't error as an
	// unparseable token when reached speculatively.
	tok := p.curToken
	p.nextToken()
	var elems []ast.Expression
	for !p.curIs(token.RBRACKET) && !p.curIs(token.EOF) {
		elems = append(elems, p.parseExpression(precLowest))
		p.nextToken()
		if p.curIs(token.COMMA) {
			p.nextToken()
		}
	}
	return &ast.InExpr{Token: tok, List: elems}
}

func (p *Parser) parsePrefixExpr() ast.Expression {
	tok := p.curToken
	op := p.curToken.Literal
	p.nextToken()
	operand := p.parseExpression(precUnary)
	return &ast.UnaryExpr{Token: tok, Operator: op, Operand: operand}
}

func (p *Parser) parseInfixExpr(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := p.curToken.Literal
	prec := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(prec)
	return &ast.BinaryExpr{Token: tok, Left: left, Operator: op, Right: right}
}

func (p *Parser) parseRegexExpr(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	pattern := p.parseExpression(precCompare)
	return &ast.RegexMatch{Token: tok, Value: left, Pattern: pattern}
}

func (p *Parser) parseInExpr(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken() // consume IN, cur is now [
	if !p.curIs(token.LBRACKET) {
		p.errorf("[", "expected '[' after IN, got %q", p.curToken.Literal)
		return left
	}
	listExpr := p.parseListLiteralAsExpr().(*ast.InExpr)
	listExpr.Token = tok
	listExpr.Value = left
	return listExpr
}

func (p *Parser) parseCaseExpr() ast.Expression {
	tok := p.curToken
	c := &ast.CaseExpr{Token: tok}
	p.nextToken()
	for p.curIs(token.WHEN) {
		p.nextToken()
		cond := p.parseExpression(precLowest)
		p.nextToken()
		if !p.curIs(token.THEN) {
			p.errorf("THEN", "expected THEN, got %q", p.curToken.Literal)
			break
		}
		p.nextToken()
		then := p.parseExpression(precLowest)
		c.Whens = append(c.Whens, ast.CaseWhen{Cond: cond, Then: then})
		p.nextToken()
	}
	if p.curIs(token.ELSE) {
		p.nextToken()
		c.Else = p.parseExpression(precLowest)
		p.nextToken()
	}
	if !p.curIs(token.END) {
		p.errorf("END", "expected END, got %q", p.curToken.Literal)
	}
	return c
}

// parseNumberLiteral converts numeral token text to a float64. Nothing in
// this package calls it; SKIP/LIMIT bounds are converted by the translator's
// own literalInt.
func parseNumberLiteral(lit string) (float64, error) {
	return strconv.ParseFloat(lit, 64)
}
