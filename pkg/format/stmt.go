package format

import (
	"strconv"

	"github.com/soveckyFonarik/just-db/pkg/ast"
	"github.com/soveckyFonarik/just-db/pkg/token"
)

func (p *Printer) formatQuery(q ast.Query) {
	switch stmt := q.(type) {
	case *ast.SelectQuery:
		p.formatSelect(stmt)
	case *ast.InsertQuery:
		p.formatInsert(stmt)
	case *ast.UpdateQuery:
		p.formatUpdate(stmt)
	case *ast.DeleteQuery:
		p.formatDelete(stmt)
	case *ast.CreateTableQuery:
		p.formatCreateTable(stmt)
	case *ast.DropTableQuery:
		p.kw(token.DROP, token.TABLE)
		p.space()
		p.write(quoteIdent(stmt.Table))
	case *ast.AlterTableQuery:
		p.formatAlterTable(stmt)
	}
	p.write(";")
}

// ---------- SELECT ----------

func (p *Printer) formatSelect(q *ast.SelectQuery) {
	p.kw(token.SELECT)
	if q.Select.Distinct {
		p.space()
		p.kw(token.DISTINCT)
	}
	if p.pretty {
		p.writeln()
		p.indent()
		p.formatItems(len(q.Select.Columns), func(i int) { p.formatExpr(q.Select.Columns[i]) })
		p.dedent()
	} else {
		p.space()
		p.formatItems(len(q.Select.Columns), func(i int) { p.formatExpr(q.Select.Columns[i]) })
	}

	p.br()
	p.kw(token.FROM)
	p.space()
	p.formatList(len(q.From.Tables), false, func(i int) { p.formatTableRef(q.From.Tables[i]) })
	for _, j := range q.From.Joins {
		p.br()
		p.formatJoin(j)
	}

	p.formatWhere(q.Where)

	if q.GroupBy != nil {
		p.section(func() {
			p.formatItems(len(q.GroupBy.Columns), func(i int) { p.formatExpr(q.GroupBy.Columns[i]) })
		}, token.GROUP, token.BY)
	}

	if q.Having != nil {
		p.section(func() { p.formatConditions(q.Having.Conditions, p.pretty) }, token.HAVING)
	}

	if q.OrderBy != nil {
		p.section(func() {
			p.formatItems(len(q.OrderBy.Items), func(i int) {
				item := q.OrderBy.Items[i]
				p.formatExpr(item.Expr)
				if item.Desc {
					p.space()
					p.kw(token.DESC)
				}
			})
		}, token.ORDER, token.BY)
	}

	if q.Limit != nil {
		p.br()
		p.kw(token.LIMIT)
		p.space()
		p.write(strconv.FormatInt(q.Limit.Count, 10))
		if q.Limit.Offset != nil {
			p.space()
			p.kw(token.OFFSET)
			p.space()
			p.write(strconv.FormatInt(*q.Limit.Offset, 10))
		}
	}
}

func (p *Printer) formatTableRef(t ast.TableRef) {
	if t.Schema != "" {
		p.write(quoteIdent(t.Schema))
		p.write(".")
	}
	p.write(quoteIdent(t.Name))
	if t.Alias != "" {
		p.space()
		p.kw(token.AS)
		p.space()
		p.write(quoteIdent(t.Alias))
	}
}

var joinKeywords = map[ast.JoinKind][]token.TokenType{
	ast.JoinInner: {token.INNER, token.JOIN},
	ast.JoinLeft:  {token.LEFT, token.JOIN},
	ast.JoinRight: {token.RIGHT, token.JOIN},
	ast.JoinFull:  {token.FULL, token.JOIN},
	ast.JoinCross: {token.CROSS, token.JOIN},
}

func (p *Printer) formatJoin(j ast.Join) {
	kws, ok := joinKeywords[j.Kind]
	if !ok {
		kws = []token.TokenType{token.JOIN}
	}
	p.kw(kws...)
	p.space()
	p.formatTableRef(j.Table)
	if len(j.On) > 0 {
		p.space()
		p.kw(token.ON)
		p.space()
		p.formatConditions(j.On, false)
	}
}

func (p *Printer) formatWhere(w *ast.WhereClause) {
	if w == nil {
		return
	}
	p.section(func() { p.formatConditions(w.Conditions, p.pretty) }, token.WHERE)
}

// ---------- DML ----------

func (p *Printer) formatInsert(q *ast.InsertQuery) {
	p.kw(token.INSERT, token.INTO)
	p.space()
	p.write(quoteIdent(q.Table))
	p.space()
	p.formatIdentList(q.Columns)
	p.br()
	p.kw(token.VALUES)
	p.write(" (")
	p.formatList(len(q.Values), false, func(i int) { p.formatLiteral(q.Values[i]) })
	p.write(")")
}

func (p *Printer) formatUpdate(q *ast.UpdateQuery) {
	p.kw(token.UPDATE)
	p.space()
	p.write(quoteIdent(q.Table))
	p.section(func() {
		p.formatItems(len(q.Set.Assignments), func(i int) {
			a := q.Set.Assignments[i]
			p.write(quoteIdent(a.Column))
			p.write(" = ")
			p.formatExpr(a.Value)
		})
	}, token.SET)
	p.formatWhere(q.Where)
}

func (p *Printer) formatDelete(q *ast.DeleteQuery) {
	p.kw(token.DELETE, token.FROM)
	p.space()
	p.write(quoteIdent(q.Table))
	p.formatWhere(q.Where)
}

// ---------- DDL ----------

func (p *Printer) formatCreateTable(q *ast.CreateTableQuery) {
	p.kw(token.CREATE, token.TABLE)
	p.space()
	p.write(quoteIdent(q.Table))
	p.write(" (")
	if p.pretty {
		p.writeln()
		p.indent()
	}

	n := len(q.Columns) + len(q.Constraints)
	p.formatItems(n, func(i int) {
		if i < len(q.Columns) {
			p.formatColumnDef(q.Columns[i])
			return
		}
		p.formatConstraint(q.Constraints[i-len(q.Columns)])
	})

	if p.pretty {
		p.dedent()
		p.writeln()
	}
	p.write(")")
}

func (p *Printer) formatAlterTable(q *ast.AlterTableQuery) {
	p.kw(token.ALTER, token.TABLE)
	p.space()
	p.write(quoteIdent(q.Table))
	p.space()

	switch a := q.Action.(type) {
	case *ast.AddColumn:
		p.kw(token.ADD, token.COLUMN)
		p.space()
		p.formatColumnDef(a.Column)
	case *ast.AddConstraint:
		p.kw(token.ADD)
		p.space()
		p.formatConstraint(a.Constraint)
	case *ast.DropColumn:
		p.kw(token.DROP, token.COLUMN)
		p.space()
		p.write(quoteIdent(a.Name))
	case *ast.DropConstraint:
		p.kw(token.DROP, token.CONSTRAINT)
		p.space()
		p.write(quoteIdent(a.Name))
	}
}

func (p *Printer) formatColumnDef(c ast.ColumnDef) {
	p.write(quoteIdent(c.Name))
	p.space()
	p.write(c.Type.Name)
	if len(c.Type.Params) > 0 {
		p.write("(")
		p.formatList(len(c.Type.Params), false, func(i int) { p.write(strconv.Itoa(c.Type.Params[i])) })
		p.write(")")
	}
	if c.NotNull {
		p.space()
		p.kw(token.NOT, token.NULL)
	}
	if c.PrimaryKey {
		p.space()
		p.kw(token.PRIMARY, token.KEY)
	}
	if c.Unique {
		p.space()
		p.kw(token.UNIQUE)
	}
	if c.Default != nil {
		p.space()
		p.kw(token.DEFAULT)
		p.space()
		p.formatLiteral(c.Default)
	}
}

func (p *Printer) formatConstraint(c ast.TableConstraint) {
	if c.Name != "" {
		p.kw(token.CONSTRAINT)
		p.space()
		p.write(quoteIdent(c.Name))
		p.space()
	}
	p.write(string(c.Kind))
	p.space()
	p.formatIdentList(c.Columns)
	if c.Kind == ast.ConstraintForeignKey {
		p.space()
		p.kw(token.REFERENCES)
		p.space()
		p.write(quoteIdent(c.RefTable))
		p.space()
		p.formatIdentList(c.RefColumns)
	}
}

func (p *Printer) formatIdentList(names []string) {
	p.write("(")
	p.formatList(len(names), false, func(i int) { p.write(quoteIdent(names[i])) })
	p.write(")")
}
