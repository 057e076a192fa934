package parser

import (
	"fmt"

	"github.com/soveckyFonarik/just-db/pkg/ast"
	"github.com/soveckyFonarik/just-db/pkg/token"
)

// Data manipulation statements.
//
// Grammar:
//
//	insert      → INSERT INTO identifier "(" ident_list ")" VALUES "(" literal_list ")"
//	update      → UPDATE identifier SET assignment ("," assignment)* [WHERE conditions]
//	assignment  → identifier "=" column_expr
//	delete      → DELETE FROM identifier [WHERE conditions]
//
// An INSERT must list as many values as columns.

// parseInsert parses an INSERT statement. The current token is INSERT.
func (p *Parser) parseInsert() (ast.Query, error) {
	p.nextToken()
	if err := p.expectKeywords(token.INTO); err != nil {
		return nil, err
	}

	table, err := p.parseIdent("table name")
	if err != nil {
		return nil, err
	}
	cols, err := p.parseIdentList("column name")
	if err != nil {
		return nil, err
	}

	if err := p.expectKeywords(token.VALUES); err != nil {
		return nil, err
	}
	open := p.token
	values, err := p.parseLiteralList()
	if err != nil {
		return nil, err
	}

	if len(cols) != len(values) {
		return nil, &ParseError{Pos: open.Pos, Message: fmt.Sprintf(ErrArityMismatch, len(cols), len(values))}
	}
	return &ast.InsertQuery{Table: table, Columns: cols, Values: values}, nil
}

// parseLiteralList parses "(" literal ("," literal)* ")".
func (p *Parser) parseLiteralList() ([]ast.Literal, error) {
	if _, err := p.expect(token.LPAREN, `"("`); err != nil {
		return nil, err
	}
	var values []ast.Literal
	for {
		v, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		values = append(values, v)

		if p.match(token.COMMA) {
			continue
		}
		if !p.match(token.RPAREN) {
			return nil, p.unexpected(`","`, `")"`)
		}
		return values, nil
	}
}

// parseUpdate parses an UPDATE statement. The current token is UPDATE.
func (p *Parser) parseUpdate() (ast.Query, error) {
	p.nextToken()
	table, err := p.parseIdent("table name")
	if err != nil {
		return nil, err
	}
	if err := p.expectKeywords(token.SET); err != nil {
		return nil, err
	}

	q := &ast.UpdateQuery{Table: table}
	for {
		col, err := p.parseIdent("column name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.EQ, `"="`); err != nil {
			return nil, err
		}
		val, err := p.parseColumnExpr()
		if err != nil {
			return nil, err
		}
		q.Set.Assignments = append(q.Set.Assignments, ast.Assignment{Column: col, Value: val})

		if !p.match(token.COMMA) {
			break
		}
	}

	if q.Where, err = p.parseOptionalWhere(); err != nil {
		return nil, err
	}
	return q, nil
}

// parseDelete parses a DELETE statement. The current token is DELETE.
func (p *Parser) parseDelete() (ast.Query, error) {
	p.nextToken()
	if err := p.expectKeywords(token.FROM); err != nil {
		return nil, err
	}
	table, err := p.parseIdent("table name")
	if err != nil {
		return nil, err
	}

	q := &ast.DeleteQuery{Table: table}
	if q.Where, err = p.parseOptionalWhere(); err != nil {
		return nil, err
	}
	return q, nil
}

// parseOptionalWhere parses [WHERE conditions].
func (p *Parser) parseOptionalWhere() (*ast.WhereClause, error) {
	if !p.match(token.WHERE) {
		return nil, nil
	}
	conds, err := p.parseConditions()
	if err != nil {
		return nil, err
	}
	return &ast.WhereClause{Conditions: conds}, nil
}
