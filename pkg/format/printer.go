// Package format renders query trees back into SQL text.
package format

import (
	"strings"

	"github.com/soveckyFonarik/just-db/pkg/token"
)

const indentWidth = 2

// Printer accumulates formatted SQL. In pretty mode clauses start on new
// lines and their bodies are indented.
type Printer struct {
	buf    strings.Builder
	pretty bool
	depth  int
	bol    bool // at beginning of line, indent pending
}

// Option configures the printer.
type Option func(*Printer)

// Pretty puts every clause on its own line and indents clause bodies.
func Pretty() Option {
	return func(p *Printer) { p.pretty = true }
}

func newPrinter(opts ...Option) *Printer {
	p := &Printer{bol: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// String returns the output with exactly one trailing newline.
func (p *Printer) String() string {
	return strings.TrimRight(p.buf.String(), "\n") + "\n"
}

func (p *Printer) write(s string) {
	if s == "" {
		return
	}
	if p.bol {
		p.buf.WriteString(strings.Repeat(" ", p.depth*indentWidth))
		p.bol = false
	}
	p.buf.WriteString(s)
}

func (p *Printer) writeln() {
	p.buf.WriteByte('\n')
	p.bol = true
}

func (p *Printer) space() {
	p.buf.WriteByte(' ')
}

func (p *Printer) indent() { p.depth++ }

func (p *Printer) dedent() { p.depth = max(p.depth-1, 0) }

// br separates two clauses: a line break in pretty mode, a space otherwise.
func (p *Printer) br() {
	if p.pretty {
		p.writeln()
		return
	}
	p.space()
}

// kw prints keywords separated by single spaces.
func (p *Printer) kw(tokens ...token.TokenType) {
	for i, t := range tokens {
		if i > 0 {
			p.space()
		}
		p.write(t.String())
	}
}

// section prints a clause keyword followed by its body. In pretty mode the
// body goes on the following lines, one level deeper.
func (p *Printer) section(body func(), tokens ...token.TokenType) {
	p.br()
	p.kw(tokens...)
	if !p.pretty {
		p.space()
		body()
		return
	}
	p.writeln()
	p.indent()
	body()
	p.dedent()
}

// formatList prints count items separated by commas, breaking the line
// after each comma when multiline is set.
func (p *Printer) formatList(count int, multiline bool, item func(i int)) {
	for i := range count {
		if i > 0 {
			p.write(",")
			if multiline {
				p.writeln()
			} else {
				p.space()
			}
		}
		item(i)
	}
}

// formatItems is formatList with one item per line in pretty mode.
func (p *Printer) formatItems(count int, item func(i int)) {
	p.formatList(count, p.pretty, item)
}
