package parser

import (
	"strconv"

	"github.com/soveckyFonarik/just-db/pkg/ast"
	"github.com/soveckyFonarik/just-db/pkg/token"
)

// Data definition statements.
//
// Grammar:
//
//	create_table → CREATE TABLE identifier "(" element ("," element)* ")"
//	element      → table_constraint | column_def
//	column_def   → identifier data_type column_opt*
//	data_type    → type_keyword ["(" NUMBER ("," NUMBER)* ")"]
//	column_opt   → NOT NULL | NULL | PRIMARY KEY | UNIQUE | DEFAULT literal
//	table_constraint
//	             → [CONSTRAINT identifier]
//	               ( PRIMARY KEY ident_list
//	               | UNIQUE ident_list
//	               | FOREIGN KEY ident_list REFERENCES identifier ident_list )
//	drop_table   → DROP TABLE identifier
//	alter_table  → ALTER TABLE identifier alter_action
//	alter_action → ADD [COLUMN] column_def
//	             | ADD table_constraint
//	             | DROP CONSTRAINT identifier
//	             | DROP [COLUMN] identifier

// parseCreateTable parses CREATE TABLE. The current token is CREATE.
func (p *Parser) parseCreateTable() (ast.Query, error) {
	p.nextToken()
	if err := p.expectKeywords(token.TABLE); err != nil {
		return nil, err
	}
	table, err := p.parseIdent("table name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN, `"("`); err != nil {
		return nil, err
	}

	q := &ast.CreateTableQuery{Table: table}
	for {
		if p.isConstraintStart() {
			c, err := p.parseTableConstraint()
			if err != nil {
				return nil, err
			}
			q.Constraints = append(q.Constraints, c)
		} else {
			col, err := p.parseColumnDef()
			if err != nil {
				return nil, err
			}
			q.Columns = append(q.Columns, col)
		}

		if p.match(token.COMMA) {
			continue
		}
		if !p.match(token.RPAREN) {
			return nil, p.unexpected(`","`, `")"`)
		}
		return q, nil
	}
}

// parseDropTable parses DROP TABLE. The current token is DROP.
func (p *Parser) parseDropTable() (ast.Query, error) {
	p.nextToken()
	if err := p.expectKeywords(token.TABLE); err != nil {
		return nil, err
	}
	table, err := p.parseIdent("table name")
	if err != nil {
		return nil, err
	}
	return &ast.DropTableQuery{Table: table}, nil
}

// parseAlterTable parses ALTER TABLE. The current token is ALTER.
func (p *Parser) parseAlterTable() (ast.Query, error) {
	p.nextToken()
	if err := p.expectKeywords(token.TABLE); err != nil {
		return nil, err
	}
	table, err := p.parseIdent("table name")
	if err != nil {
		return nil, err
	}

	action, err := firstMatch(p,
		rule[ast.AlterAction]{name: "ADD", try: (*Parser).tryAddAction},
		rule[ast.AlterAction]{name: "DROP", try: (*Parser).tryDropAction},
	)
	if err != nil {
		return nil, err
	}
	return &ast.AlterTableQuery{Table: table, Action: action}, nil
}

func (p *Parser) tryAddAction() (ast.AlterAction, bool, error) {
	if !p.match(token.ADD) {
		return nil, false, nil
	}
	if !p.match(token.COLUMN) && p.isConstraintStart() {
		c, err := p.parseTableConstraint()
		if err != nil {
			return nil, true, err
		}
		return &ast.AddConstraint{Constraint: c}, true, nil
	}
	col, err := p.parseColumnDef()
	if err != nil {
		return nil, true, err
	}
	return &ast.AddColumn{Column: col}, true, nil
}

func (p *Parser) tryDropAction() (ast.AlterAction, bool, error) {
	if !p.match(token.DROP) {
		return nil, false, nil
	}
	if p.match(token.CONSTRAINT) {
		name, err := p.parseIdent("constraint name")
		if err != nil {
			return nil, true, err
		}
		return &ast.DropConstraint{Name: name}, true, nil
	}
	p.match(token.COLUMN)
	name, err := p.parseIdent("column name")
	if err != nil {
		return nil, true, err
	}
	return &ast.DropColumn{Name: name}, true, nil
}

// parseColumnDef parses a column name, its type and its options.
func (p *Parser) parseColumnDef() (ast.ColumnDef, error) {
	name, err := p.parseIdent("column name")
	if err != nil {
		return ast.ColumnDef{}, err
	}
	typ, err := p.parseDataType()
	if err != nil {
		return ast.ColumnDef{}, err
	}
	col := ast.ColumnDef{Name: name, Type: typ}

	for {
		switch {
		case p.match(token.NOT):
			if err := p.expectKeywords(token.NULL); err != nil {
				return ast.ColumnDef{}, err
			}
			col.NotNull = true
		case p.match(token.NULL):
			col.NotNull = false
		case p.match(token.PRIMARY):
			if err := p.expectKeywords(token.KEY); err != nil {
				return ast.ColumnDef{}, err
			}
			col.PrimaryKey = true
		case p.match(token.UNIQUE):
			col.Unique = true
		case p.match(token.DEFAULT):
			if col.Default, err = p.parseLiteral(); err != nil {
				return ast.ColumnDef{}, err
			}
		default:
			return col, nil
		}
	}
}

// parseDataType parses a type keyword with optional size parameters.
func (p *Parser) parseDataType() (ast.DataType, error) {
	if !token.IsDataType(p.token.Type) || p.tokErr != nil {
		return ast.DataType{}, p.unexpected("data type")
	}
	typ := ast.DataType{Name: p.token.Type.String()}
	p.nextToken()

	if !p.match(token.LPAREN) {
		return typ, nil
	}
	for {
		if !p.check(token.NUMBER) {
			return ast.DataType{}, p.unexpected("integer")
		}
		n, err := strconv.Atoi(p.token.Literal)
		if err != nil {
			return ast.DataType{}, p.errorf(ErrInvalidNumber, p.token.Literal)
		}
		p.nextToken()
		typ.Params = append(typ.Params, n)

		if p.match(token.COMMA) {
			continue
		}
		if !p.match(token.RPAREN) {
			return ast.DataType{}, p.unexpected(`","`, `")"`)
		}
		return typ, nil
	}
}

// isConstraintStart returns true if the current token begins a table
// constraint.
func (p *Parser) isConstraintStart() bool {
	return p.check(token.CONSTRAINT) || p.check(token.PRIMARY) ||
		p.check(token.UNIQUE) || p.check(token.FOREIGN)
}

// parseTableConstraint parses a named or anonymous table constraint.
func (p *Parser) parseTableConstraint() (ast.TableConstraint, error) {
	var (
		c   ast.TableConstraint
		err error
	)
	if p.match(token.CONSTRAINT) {
		if c.Name, err = p.parseIdent("constraint name"); err != nil {
			return ast.TableConstraint{}, err
		}
	}

	switch {
	case p.match(token.PRIMARY):
		if err := p.expectKeywords(token.KEY); err != nil {
			return ast.TableConstraint{}, err
		}
		c.Kind = ast.ConstraintPrimaryKey
	case p.match(token.UNIQUE):
		c.Kind = ast.ConstraintUnique
	case p.match(token.FOREIGN):
		if err := p.expectKeywords(token.KEY); err != nil {
			return ast.TableConstraint{}, err
		}
		c.Kind = ast.ConstraintForeignKey
	default:
		return ast.TableConstraint{}, p.unexpected("PRIMARY KEY", "UNIQUE", "FOREIGN KEY")
	}

	if c.Columns, err = p.parseIdentList("column name"); err != nil {
		return ast.TableConstraint{}, err
	}
	if c.Kind != ast.ConstraintForeignKey {
		return c, nil
	}

	if err := p.expectKeywords(token.REFERENCES); err != nil {
		return ast.TableConstraint{}, err
	}
	if c.RefTable, err = p.parseIdent("table name"); err != nil {
		return ast.TableConstraint{}, err
	}
	if c.RefColumns, err = p.parseIdentList("column name"); err != nil {
		return ast.TableConstraint{}, err
	}
	return c, nil
}
