package parser

import (
	"strconv"
	"strings"

	"github.com/soveckyFonarik/just-db/pkg/ast"
	"github.com/soveckyFonarik/just-db/pkg/token"
)

// Column expressions, literals and conditions.
//
// Grammar:
//
//	column_list  → column_expr ("," column_expr)*
//	column_expr  → function_call | column_ref | literal
//	function_call→ identifier "(" [column_expr ("," column_expr)*] ")"
//	column_ref   → "*" | identifier ["." (identifier | "*")]
//	literal      → ["-"] NUMBER | STRING | TRUE | FALSE | NULL
//	conditions   → condition (AND condition)*
//	condition    → column_expr comparison column_expr
//	comparison   → "=" | "<>" | "!=" | "<" | ">" | "<=" | ">="
//
// The alternatives of column_expr are tried in the order listed, so an
// identifier directly followed by "(" is always a function call.

// parseColumnList parses one or more comma separated column expressions.
func (p *Parser) parseColumnList() ([]ast.ColumnExpr, error) {
	var cols []ast.ColumnExpr
	for {
		col, err := p.parseColumnExpr()
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)

		if !p.match(token.COMMA) {
			return cols, nil
		}
	}
}

// parseColumnExpr parses a column expression, bounded by the nesting limit.
func (p *Parser) parseColumnExpr() (ast.ColumnExpr, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		return nil, p.errorf(ErrMaxDepth, p.maxDepth)
	}

	return firstMatch(p,
		rule[ast.ColumnExpr]{name: "function call", try: (*Parser).tryFuncCall},
		rule[ast.ColumnExpr]{name: "column", try: (*Parser).tryColumnRef},
		rule[ast.ColumnExpr]{name: "literal", try: (*Parser).tryLiteralExpr},
	)
}

// isIdent returns true if the current token can name a column, table or
// function. Data-type keywords double as names, so a column may be called
// date or text.
func (p *Parser) isIdent() bool {
	return p.check(token.IDENT) || p.check(token.QUOTED_IDENT) ||
		(p.tokErr == nil && token.IsDataType(p.token.Type))
}

// parseIdent consumes an identifier. what names it in the error.
func (p *Parser) parseIdent(what string) (string, error) {
	if !p.isIdent() {
		return "", p.unexpected(what)
	}
	name := p.token.Literal
	p.nextToken()
	return name, nil
}

// parseIdentList parses "(" identifier ("," identifier)* ")".
func (p *Parser) parseIdentList(what string) ([]string, error) {
	if _, err := p.expect(token.LPAREN, `"("`); err != nil {
		return nil, err
	}
	var names []string
	for {
		name, err := p.parseIdent(what)
		if err != nil {
			return nil, err
		}
		names = append(names, name)

		if p.match(token.COMMA) {
			continue
		}
		if !p.match(token.RPAREN) {
			return nil, p.unexpected(`","`, `")"`)
		}
		return names, nil
	}
}

// tryFuncCall parses name(args). Unquoted function names are
// case-insensitive and stored in lower case; quoted names are kept as written.
func (p *Parser) tryFuncCall() (ast.ColumnExpr, bool, error) {
	if !p.isIdent() || !p.checkPeek(token.LPAREN) {
		return nil, false, nil
	}
	name := p.token.Literal
	if p.token.Type != token.QUOTED_IDENT {
		name = strings.ToLower(name)
	}
	call := &ast.FuncCall{Name: name}
	p.nextToken() // name
	p.nextToken() // (

	if p.match(token.RPAREN) {
		return call, true, nil
	}
	for {
		arg, err := p.parseColumnExpr()
		if err != nil {
			return nil, true, err
		}
		call.Args = append(call.Args, arg)

		if p.match(token.COMMA) {
			continue
		}
		if !p.match(token.RPAREN) {
			return nil, true, p.unexpected(`","`, `")"`)
		}
		return call, true, nil
	}
}

// tryColumnRef parses *, name, table.name or table.*.
func (p *Parser) tryColumnRef() (ast.ColumnExpr, bool, error) {
	if p.match(token.STAR) {
		return &ast.Star{}, true, nil
	}
	if !p.isIdent() {
		return nil, false, nil
	}
	name := p.token.Literal
	p.nextToken()

	if !p.match(token.DOT) {
		return &ast.ColumnIdent{Name: name}, true, nil
	}
	if p.match(token.STAR) {
		return &ast.Star{Table: name}, true, nil
	}
	col, err := p.parseIdent("column name")
	if err != nil {
		return nil, true, err
	}
	return &ast.ColumnIdent{Table: name, Name: col}, true, nil
}

func (p *Parser) tryLiteralExpr() (ast.ColumnExpr, bool, error) {
	lit, ok, err := p.tryLiteral()
	if !ok || err != nil {
		return nil, ok, err
	}
	return lit, true, nil
}

// parseLiteral parses a literal or fails.
func (p *Parser) parseLiteral() (ast.Literal, error) {
	lit, ok, err := p.tryLiteral()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, p.unexpected("literal")
	}
	return lit, nil
}

// tryLiteral parses a number, string, boolean or NULL.
func (p *Parser) tryLiteral() (ast.Literal, bool, error) {
	switch {
	case p.check(token.MINUS) && p.checkPeek(token.NUMBER):
		p.nextToken()
		lit, err := p.parseNumber(true)
		return lit, true, err
	case p.check(token.NUMBER):
		lit, err := p.parseNumber(false)
		return lit, true, err
	case p.check(token.STRING):
		lit := &ast.StringLiteral{Value: p.token.Literal}
		p.nextToken()
		return lit, true, nil
	case p.match(token.TRUE):
		return &ast.BoolLiteral{Value: true}, true, nil
	case p.match(token.FALSE):
		return &ast.BoolLiteral{Value: false}, true, nil
	case p.match(token.NULL):
		return &ast.NullLiteral{}, true, nil
	}
	return nil, false, nil
}

// parseNumber converts the current NUMBER token. Literals with a fraction or
// an exponent become floats, everything else must fit in an int64.
func (p *Parser) parseNumber(negative bool) (ast.Literal, error) {
	lit := p.token.Literal
	if negative {
		lit = "-" + lit
	}

	if strings.ContainsAny(lit, ".eE") {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return nil, p.errorf(ErrInvalidNumber, lit)
		}
		p.nextToken()
		return &ast.FloatLiteral{Value: f}, nil
	}

	n, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return nil, p.errorf(ErrInvalidNumber, lit)
	}
	p.nextToken()
	return &ast.IntegerLiteral{Value: n}, nil
}

// parseConditions parses conditions joined by AND.
func (p *Parser) parseConditions() ([]ast.Condition, error) {
	var conds []ast.Condition
	for {
		cond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		conds = append(conds, cond)

		if !p.match(token.AND) {
			return conds, nil
		}
	}
}

// comparisonOps maps comparison tokens to operators.
var comparisonOps = map[token.TokenType]ast.Operator{
	token.EQ: ast.OpEqual,
	token.NE: ast.OpNotEqual,
	token.LT: ast.OpLess,
	token.GT: ast.OpGreater,
	token.LE: ast.OpLessEqual,
	token.GE: ast.OpGreaterEqual,
}

// parseCondition parses left op right.
func (p *Parser) parseCondition() (ast.Condition, error) {
	left, err := p.parseColumnExpr()
	if err != nil {
		return ast.Condition{}, err
	}

	op, ok := comparisonOps[p.token.Type]
	if !ok || p.tokErr != nil {
		return ast.Condition{}, p.unexpected("comparison operator")
	}
	p.nextToken()

	right, err := p.parseColumnExpr()
	if err != nil {
		return ast.Condition{}, err
	}
	return ast.Condition{Left: left, Op: op, Right: right}, nil
}
