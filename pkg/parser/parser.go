// Package parser turns SQL text into the query tree defined in package ast.
//
// # Usage
//
//	queries, err := parser.Parse("SELECT a, b FROM t;")
//	if err != nil {
//	    // *parser.ParseError or *parser.LexError
//	}
//
// Input that arrives in chunks is parsed with a Stream, which reports
// Incomplete until a statement's terminating semicolon has been seen.
//
// # Grammar Overview
//
// The parser is a recursive descent parser with two tokens of lookahead:
//
//	queries    → { statement ";" }
//	statement  → select | insert | update | delete
//	           | create_table | drop_table | alter_table
//
// Statements are chosen by their leading keyword. Once a keyword matched,
// the statement is committed: an error inside it fails the whole parse and
// no other statement kind is tried.
//
// See each file for the grammar rules of that section.
package parser

import (
	"fmt"
	"log/slog"

	"github.com/soveckyFonarik/just-db/pkg/ast"
	"github.com/soveckyFonarik/just-db/pkg/token"
)

// DefaultMaxDepth bounds the nesting of function calls.
const DefaultMaxDepth = 64

// Parser parses SQL into an AST.
type Parser struct {
	input    string
	lexer    *Lexer
	token    token.Token // current token
	tokErr   error       // lexer error that produced token
	peek     token.Token // lookahead token
	peekErr  error
	depth    int
	maxDepth int
	final    bool // no more input will follow
	logger   *slog.Logger
}

// Option configures a Parser or a Stream.
type Option func(*Parser)

// WithMaxDepth sets the maximum nesting depth of column expressions.
// Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a parser for a complete input buffer.
func New(input string, opts ...Option) *Parser {
	return newParserAt(input, token.StartOfInput, true, opts...)
}

// newParserAt creates a parser that starts at start. When final is false the
// input may be continued later, and failures caused by the end of the buffer
// match ErrIncomplete.
func newParserAt(input string, start token.Position, final bool, opts ...Option) *Parser {
	p := &Parser{
		input:    input,
		lexer:    newLexerAt(input, start),
		maxDepth: DefaultMaxDepth,
		final:    final,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	// Read two tokens to initialize current and peek
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses every statement in input. Either all statements are returned
// or none: an error anywhere discards the statements before it. Empty input
// yields an empty Queries.
func Parse(input string, opts ...Option) (*ast.Queries, error) {
	return New(input, opts...).ParseQueries()
}

// ParseStatement parses the first statement of input and returns it together
// with the unconsumed remainder of the input.
func ParseStatement(input string, opts ...Option) (ast.Query, string, error) {
	p := New(input, opts...)
	if err := p.skipEmptyStatements(); err != nil {
		return nil, "", err
	}
	q, _, err := p.parseTerminated()
	if err != nil {
		return nil, "", err
	}
	return q, p.Remainder(), nil
}

// ParseQueries parses statements until the end of input.
func (p *Parser) ParseQueries() (*ast.Queries, error) {
	queries := &ast.Queries{}
	for {
		if err := p.skipEmptyStatements(); err != nil {
			return nil, err
		}
		if p.check(token.EOF) {
			return queries, nil
		}
		q, _, err := p.parseTerminated()
		if err != nil {
			p.logger.Debug("parse failed", "error", err, "parsed", len(queries.Statements))
			return nil, err
		}
		queries.Statements = append(queries.Statements, q)
	}
}

// Remainder returns the input that has not been consumed yet.
func (p *Parser) Remainder() string {
	return p.input[p.token.Pos.Offset:]
}

// Comments returns the comments skipped so far.
func (p *Parser) Comments() []*token.Comment {
	return p.lexer.Comments
}

// skipEmptyStatements consumes stray semicolons. It also surfaces a lexer
// error sitting at the current token.
func (p *Parser) skipEmptyStatements() error {
	for p.match(token.SEMICOLON) {
	}
	return p.tokErr
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.token, p.tokErr = p.peek, p.peekErr
	p.peek, p.peekErr = p.lexer.NextToken()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t && p.tokErr == nil
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t token.TokenType) bool {
	return p.peek.Type == t && p.peekErr == nil
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise returns an error
// naming what was expected.
func (p *Parser) expect(t token.TokenType, what string) (token.Token, error) {
	if p.check(t) {
		tok := p.token
		p.nextToken()
		return tok, nil
	}
	return token.Token{}, p.unexpected(what)
}

// expectKeywords consumes a fixed keyword sequence such as GROUP BY.
func (p *Parser) expectKeywords(types ...token.TokenType) error {
	for _, t := range types {
		if _, err := p.expect(t, t.String()); err != nil {
			return err
		}
	}
	return nil
}

// unexpected builds the error for a mismatch at the current token. A lexer
// error at this position takes precedence, since it explains the mismatch.
func (p *Parser) unexpected(expected ...string) error {
	if p.tokErr != nil {
		return p.tokErr
	}
	return &ParseError{
		Pos:      p.token.Pos,
		Expected: expected,
		Found:    p.token.String(),
		atEnd:    p.touchesEnd(p.token),
	}
}

// errorf builds a non-mismatch error at the current token.
func (p *Parser) errorf(format string, args ...any) error {
	return &ParseError{
		Pos:     p.token.Pos,
		Message: fmt.Sprintf(format, args...),
		atEnd:   p.touchesEnd(p.token),
	}
}

// touchesEnd reports whether tok may be cut short by the end of a buffer that
// is still being filled.
func (p *Parser) touchesEnd(tok token.Token) bool {
	if p.final {
		return false
	}
	if tok.Type == token.EOF {
		return true
	}
	return tok.End() >= len(p.input) && extendable(tok.Type)
}

// extendable reports whether more input could turn a token of type t into a
// different token: a longer word or number, a two-character operator, a
// comment opener, or a quoted text continued by a doubled quote.
func extendable(t token.TokenType) bool {
	switch t {
	case token.IDENT, token.QUOTED_IDENT, token.NUMBER, token.STRING,
		token.LT, token.GT, token.MINUS, token.SLASH:
		return true
	}
	return token.IsKeyword(t) || token.IsDataType(t)
}

// ---------- Ordered Choice ----------

// rule is one alternative of an ordered choice. try reports ok=false,
// without consuming anything, when the alternative does not start at the
// current token. Once an alternative has started, its errors are final.
type rule[T any] struct {
	name string
	try  func(p *Parser) (T, bool, error)
}

// firstMatch tries rules in order and returns the result of the first one
// that applies. If none applies, the error lists every alternative.
func firstMatch[T any](p *Parser, rules ...rule[T]) (T, error) {
	var zero T
	expected := make([]string, 0, len(rules))
	for _, r := range rules {
		v, ok, err := r.try(p)
		if err != nil {
			return zero, err
		}
		if ok {
			return v, nil
		}
		expected = append(expected, r.name)
	}
	return zero, p.unexpected(expected...)
}
