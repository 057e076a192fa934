package format

import (
	"github.com/soveckyFonarik/just-db/pkg/ast"
)

// Queries formats every statement, each terminated by a semicolon.
// In pretty mode statements are separated by a blank line.
func Queries(q *ast.Queries, opts ...Option) string {
	p := newPrinter(opts...)
	for i, stmt := range q.Statements {
		if i > 0 {
			p.writeln()
			if p.pretty {
				p.writeln()
			}
		}
		p.formatQuery(stmt)
	}
	return p.String()
}

// Query formats a single statement with its terminating semicolon.
func Query(q ast.Query, opts ...Option) string {
	p := newPrinter(opts...)
	p.formatQuery(q)
	return p.String()
}

// Expr formats a column expression.
func Expr(e ast.ColumnExpr) string {
	p := newPrinter()
	p.formatExpr(e)
	return p.buf.String()
}
