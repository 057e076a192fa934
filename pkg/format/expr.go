package format

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/soveckyFonarik/just-db/pkg/ast"
	"github.com/soveckyFonarik/just-db/pkg/token"
)

func (p *Printer) formatExpr(e ast.ColumnExpr) {
	switch expr := e.(type) {
	case *ast.ColumnIdent:
		if expr.Table != "" {
			p.write(quoteIdent(expr.Table))
			p.write(".")
		}
		p.write(quoteIdent(expr.Name))
	case *ast.Star:
		if expr.Table != "" {
			p.write(quoteIdent(expr.Table))
			p.write(".")
		}
		p.write("*")
	case *ast.FuncCall:
		p.formatFuncCall(expr)
	case ast.Literal:
		p.formatLiteral(expr)
	}
}

func (p *Printer) formatFuncCall(fn *ast.FuncCall) {
	p.write(quoteFuncName(fn.Name))
	p.write("(")
	p.formatList(len(fn.Args), false, func(i int) { p.formatExpr(fn.Args[i]) })
	p.write(")")
}

func (p *Printer) formatLiteral(lit ast.Literal) {
	switch l := lit.(type) {
	case *ast.IntegerLiteral:
		p.write(strconv.FormatInt(l.Value, 10))
	case *ast.FloatLiteral:
		p.write(formatFloat(l.Value))
	case *ast.StringLiteral:
		p.write(quoteString(l.Value))
	case *ast.BoolLiteral:
		if l.Value {
			p.kw(token.TRUE)
		} else {
			p.kw(token.FALSE)
		}
	case *ast.NullLiteral:
		p.kw(token.NULL)
	}
}

func (p *Printer) formatCondition(c ast.Condition) {
	p.formatExpr(c.Left)
	p.space()
	p.write(c.Op.String())
	p.space()
	p.formatExpr(c.Right)
}

// formatConditions prints conditions joined by AND. In pretty mode each
// further condition starts a new line.
func (p *Printer) formatConditions(conds []ast.Condition, multiline bool) {
	for i, c := range conds {
		if i > 0 {
			if multiline {
				p.writeln()
			} else {
				p.space()
			}
			p.kw(token.AND)
			p.space()
		}
		p.formatCondition(c)
	}
}

// formatFloat renders f so that it lexes back as a float literal.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// quoteString renders s as a single-quoted literal with quotes doubled.
func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// quoteIdent returns name as written when it lexes back as the same plain
// identifier, and double-quoted otherwise.
func quoteIdent(name string) string {
	if isPlainIdent(name) && token.LookupIdent(strings.ToLower(name)) == token.IDENT {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// quoteFuncName quotes name unless it is plain and lower case, since the
// parser folds unquoted function names to lower case.
func quoteFuncName(name string) string {
	if name == strings.ToLower(name) {
		return quoteIdent(name)
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func isPlainIdent(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
