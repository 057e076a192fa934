package parser

import (
	"strconv"

	"github.com/soveckyFonarik/just-db/pkg/ast"
	"github.com/soveckyFonarik/just-db/pkg/token"
)

// Statement parsing: dispatch on the leading keyword, SELECT.
//
// Grammar:
//
//	statement     → select | insert | update | delete
//	              | create_table | drop_table | alter_table
//	select        → SELECT [DISTINCT|ALL] column_list FROM from_clause
//	                [WHERE conditions]
//	                [GROUP BY column_list]
//	                [HAVING conditions]
//	                [ORDER BY order_list]
//	                [LIMIT NUMBER [OFFSET NUMBER]]
//	order_list    → order_item ("," order_item)*
//	order_item    → column_expr [ASC|DESC]

// statementRules lists the statement kinds in the order they are tried.
var statementRules = []rule[ast.Query]{
	{name: "SELECT", try: leading(token.SELECT, (*Parser).parseSelect)},
	{name: "INSERT INTO", try: leading(token.INSERT, (*Parser).parseInsert)},
	{name: "UPDATE", try: leading(token.UPDATE, (*Parser).parseUpdate)},
	{name: "DELETE FROM", try: leading(token.DELETE, (*Parser).parseDelete)},
	{name: "CREATE TABLE", try: leading(token.CREATE, (*Parser).parseCreateTable)},
	{name: "DROP TABLE", try: leading(token.DROP, (*Parser).parseDropTable)},
	{name: "ALTER TABLE", try: leading(token.ALTER, (*Parser).parseAlterTable)},
}

// leading turns a statement parser into a rule that applies when the current
// token is the statement's leading keyword.
func leading(t token.TokenType, parse func(*Parser) (ast.Query, error)) func(*Parser) (ast.Query, bool, error) {
	return func(p *Parser) (ast.Query, bool, error) {
		if !p.check(t) {
			return nil, false, nil
		}
		q, err := parse(p)
		return q, true, err
	}
}

// parseTerminated parses one statement and its terminating semicolon, and
// returns the semicolon token.
func (p *Parser) parseTerminated() (ast.Query, token.Token, error) {
	start := p.token.Pos
	q, err := firstMatch(p, statementRules...)
	if err != nil {
		return nil, token.Token{}, err
	}
	semi, err := p.expect(token.SEMICOLON, `";"`)
	if err != nil {
		return nil, token.Token{}, err
	}
	p.logger.Debug("parsed statement", "kind", ast.Kind(q), "pos", start.String())
	return q, semi, nil
}

// parseSelect parses a SELECT statement. The current token is SELECT.
func (p *Parser) parseSelect() (ast.Query, error) {
	p.nextToken()
	q := &ast.SelectQuery{}

	if p.match(token.DISTINCT) {
		q.Select.Distinct = true
	} else {
		p.match(token.ALL)
	}

	cols, err := p.parseColumnList()
	if err != nil {
		return nil, err
	}
	q.Select.Columns = cols

	if !p.match(token.FROM) {
		return nil, p.unexpected(`","`, "FROM")
	}
	if q.From, err = p.parseFromClause(); err != nil {
		return nil, err
	}

	if q.Where, err = p.parseOptionalWhere(); err != nil {
		return nil, err
	}

	if p.match(token.GROUP) {
		if err := p.expectKeywords(token.BY); err != nil {
			return nil, err
		}
		cols, err := p.parseColumnList()
		if err != nil {
			return nil, err
		}
		q.GroupBy = &ast.GroupByClause{Columns: cols}
	}

	if p.match(token.HAVING) {
		conds, err := p.parseConditions()
		if err != nil {
			return nil, err
		}
		q.Having = &ast.HavingClause{Conditions: conds}
	}

	if p.match(token.ORDER) {
		if err := p.expectKeywords(token.BY); err != nil {
			return nil, err
		}
		items, err := p.parseOrderByList()
		if err != nil {
			return nil, err
		}
		q.OrderBy = &ast.OrderByClause{Items: items}
	}

	if p.match(token.LIMIT) {
		limit, err := p.parseLimit()
		if err != nil {
			return nil, err
		}
		q.Limit = limit
	}

	return q, nil
}

// parseOrderByList parses ORDER BY items.
func (p *Parser) parseOrderByList() ([]ast.OrderItem, error) {
	var items []ast.OrderItem
	for {
		expr, err := p.parseColumnExpr()
		if err != nil {
			return nil, err
		}
		item := ast.OrderItem{Expr: expr}
		if p.match(token.DESC) {
			item.Desc = true
		} else {
			p.match(token.ASC)
		}
		items = append(items, item)

		if !p.match(token.COMMA) {
			return items, nil
		}
	}
}

// parseLimit parses the operands of LIMIT n [OFFSET m].
func (p *Parser) parseLimit() (*ast.LimitClause, error) {
	count, err := p.parseCount()
	if err != nil {
		return nil, err
	}
	limit := &ast.LimitClause{Count: count}
	if p.match(token.OFFSET) {
		offset, err := p.parseCount()
		if err != nil {
			return nil, err
		}
		limit.Offset = &offset
	}
	return limit, nil
}

// parseCount parses a non-negative integer.
func (p *Parser) parseCount() (int64, error) {
	if !p.check(token.NUMBER) {
		return 0, p.unexpected("integer")
	}
	n, err := strconv.ParseInt(p.token.Literal, 10, 64)
	if err != nil {
		return 0, p.errorf(ErrInvalidNumber, p.token.Literal)
	}
	p.nextToken()
	return n, nil
}
