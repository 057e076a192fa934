package parser

import (
	"github.com/soveckyFonarik/just-db/pkg/ast"
	"github.com/soveckyFonarik/just-db/pkg/token"
)

// FROM clause parsing: table references and joins.
//
// Grammar:
//
//	from_clause  → table_ref ("," table_ref)* join*
//	table_ref    → identifier ["." identifier] [[AS] identifier]
//	join         → join_type JOIN table_ref [ON conditions]
//	join_type    → [INNER] | LEFT [OUTER] | RIGHT [OUTER] | FULL [OUTER] | CROSS
//
// ON is required for every join type except CROSS, which does not take one.

// parseFromClause parses the table list and the joins after it.
func (p *Parser) parseFromClause() (ast.FromClause, error) {
	var from ast.FromClause

	for {
		ref, err := p.parseTableRef()
		if err != nil {
			return ast.FromClause{}, err
		}
		from.Tables = append(from.Tables, ref)

		if !p.match(token.COMMA) {
			break
		}
	}

	for p.isJoinStart() {
		join, err := p.parseJoin()
		if err != nil {
			return ast.FromClause{}, err
		}
		from.Joins = append(from.Joins, join)
	}

	return from, nil
}

// parseTableRef parses a possibly schema-qualified, possibly aliased table.
func (p *Parser) parseTableRef() (ast.TableRef, error) {
	name, err := p.parseIdent("table name")
	if err != nil {
		return ast.TableRef{}, err
	}
	ref := ast.TableRef{Name: name}

	if p.match(token.DOT) {
		if ref.Name, err = p.parseIdent("table name"); err != nil {
			return ast.TableRef{}, err
		}
		ref.Schema = name
	}

	if p.match(token.AS) {
		if ref.Alias, err = p.parseIdent("alias"); err != nil {
			return ast.TableRef{}, err
		}
	} else if p.isIdent() {
		ref.Alias = p.token.Literal
		p.nextToken()
	}

	return ref, nil
}

// isJoinStart returns true if the current token begins a join.
func (p *Parser) isJoinStart() bool {
	switch {
	case p.check(token.JOIN), p.check(token.INNER), p.check(token.LEFT),
		p.check(token.RIGHT), p.check(token.FULL), p.check(token.CROSS):
		return true
	}
	return false
}

// parseJoinKind consumes the join keywords up to and including JOIN.
func (p *Parser) parseJoinKind() (ast.JoinKind, error) {
	var kind ast.JoinKind
	switch {
	case p.match(token.JOIN):
		return ast.JoinInner, nil
	case p.match(token.INNER):
		kind = ast.JoinInner
	case p.match(token.LEFT):
		kind = ast.JoinLeft
		p.match(token.OUTER)
	case p.match(token.RIGHT):
		kind = ast.JoinRight
		p.match(token.OUTER)
	case p.match(token.FULL):
		kind = ast.JoinFull
		p.match(token.OUTER)
	case p.match(token.CROSS):
		kind = ast.JoinCross
	}
	if err := p.expectKeywords(token.JOIN); err != nil {
		return "", err
	}
	return kind, nil
}

// parseJoin parses one join.
func (p *Parser) parseJoin() (ast.Join, error) {
	kind, err := p.parseJoinKind()
	if err != nil {
		return ast.Join{}, err
	}

	ref, err := p.parseTableRef()
	if err != nil {
		return ast.Join{}, err
	}
	join := ast.Join{Kind: kind, Table: ref}

	if kind == ast.JoinCross {
		return join, nil
	}
	if err := p.expectKeywords(token.ON); err != nil {
		return ast.Join{}, err
	}
	if join.On, err = p.parseConditions(); err != nil {
		return ast.Join{}, err
	}
	return join, nil
}
