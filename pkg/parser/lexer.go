package parser

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/soveckyFonarik/just-db/pkg/token"
)

// eof marks the end of input in Lexer.ch.
const eof rune = -1

// Lexer tokenizes SQL input.
//
// Once NextToken has returned an error, the lexer is finished: every later
// call returns an EOF token and the same error.
type Lexer struct {
	input string
	pos   int  // byte offset of ch
	width int  // byte width of ch
	ch    rune // current char under examination
	line  int  // line of ch (1-based)
	col   int  // column of ch (1-based, in runes)

	trivia bool  // emit WHITESPACE and COMMENT tokens instead of skipping them
	err    error // sticky error

	// Comments collected during lexing
	Comments []*token.Comment
}

// LexerOption configures a Lexer.
type LexerOption func(*Lexer)

// WithTrivia makes the lexer emit whitespace and comment tokens.
func WithTrivia() LexerOption {
	return func(l *Lexer) { l.trivia = true }
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string, opts ...LexerOption) *Lexer {
	return newLexerAt(input, token.StartOfInput, opts...)
}

// newLexerAt creates a lexer that starts scanning at start.Offset, reporting
// positions relative to the whole input.
func newLexerAt(input string, start token.Position, opts ...LexerOption) *Lexer {
	l := &Lexer{
		input: input,
		pos:   start.Offset,
		line:  start.Line,
		col:   start.Column,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.decode()
	return l
}

// decode loads the rune at l.pos into l.ch.
func (l *Lexer) decode() {
	if l.pos >= len(l.input) {
		l.ch, l.width = eof, 0
		return
	}
	l.ch, l.width = utf8.DecodeRuneInString(l.input[l.pos:])
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.ch == eof {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos += l.width
	l.decode()
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() rune {
	return l.peekAt(1)
}

// peekAt returns the character n positions ahead of ch without advancing.
func (l *Lexer) peekAt(n int) rune {
	off := l.pos + l.width
	for i := 1; i < n; i++ {
		if off >= len(l.input) {
			return eof
		}
		_, w := utf8.DecodeRuneInString(l.input[off:])
		off += w
	}
	if off >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[off:])
	return r
}

// currentPos returns the position of ch.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// Offset returns the byte offset of the next unread character.
func (l *Lexer) Offset() int {
	return l.pos
}

// NextToken returns the next token.
func (l *Lexer) NextToken() (token.Token, error) {
	if l.err != nil {
		return token.Token{Type: token.EOF, Pos: l.currentPos()}, l.err
	}

	if l.trivia {
		if tok, ok := l.readTrivia(); ok {
			return tok, l.err
		}
	} else if err := l.skipWhitespaceAndComments(); err != nil {
		return l.fail(err)
	}

	pos := l.currentPos()

	switch l.ch {
	case eof:
		return token.Token{Type: token.EOF, Pos: pos}, nil
	case '*':
		return l.single(token.STAR, pos), nil
	case ',':
		return l.single(token.COMMA, pos), nil
	case ';':
		return l.single(token.SEMICOLON, pos), nil
	case '(':
		return l.single(token.LPAREN, pos), nil
	case ')':
		return l.single(token.RPAREN, pos), nil
	case '.':
		return l.single(token.DOT, pos), nil
	case '=':
		return l.single(token.EQ, pos), nil
	case '+':
		return l.single(token.PLUS, pos), nil
	case '-':
		return l.single(token.MINUS, pos), nil
	case '%':
		return l.single(token.PERCENT, pos), nil
	case '|':
		return l.single(token.CONCAT, pos), nil
	case '/':
		return l.single(token.SLASH, pos), nil
	case '<':
		switch l.peekChar() {
		case '=':
			return l.double(token.LE, pos), nil
		case '>':
			return l.double(token.NE, pos), nil
		default:
			return l.single(token.LT, pos), nil
		}
	case '>':
		if l.peekChar() == '=' {
			return l.double(token.GE, pos), nil
		}
		return l.single(token.GT, pos), nil
	case '!':
		if l.peekChar() == '=' {
			return l.double(token.NE, pos), nil
		}
		return l.fail(invalidChar(pos, l.ch))
	case '\'':
		lit, err := l.readQuoted('\'')
		if err != nil {
			return l.fail(err)
		}
		return l.finish(token.STRING, lit, pos), nil
	case '"':
		lit, err := l.readQuoted('"')
		if err != nil {
			return l.fail(err)
		}
		return l.finish(token.QUOTED_IDENT, lit, pos), nil
	}

	switch {
	case isLetter(l.ch):
		lit := l.readIdentifier()
		return l.finish(token.LookupIdent(strings.ToLower(lit)), lit, pos), nil
	case isDigit(l.ch):
		lit := l.readNumber()
		return l.finish(token.NUMBER, lit, pos), nil
	default:
		return l.fail(invalidChar(pos, l.ch))
	}
}

// fail records err and ends the token stream.
func (l *Lexer) fail(err *LexError) (token.Token, error) {
	l.err = err
	return token.Token{Type: token.EOF, Pos: err.Pos}, err
}

// single consumes a one-character token.
func (l *Lexer) single(t token.TokenType, pos token.Position) token.Token {
	l.readChar()
	return token.Token{Type: t, Literal: t.String(), Pos: pos, Width: l.pos - pos.Offset}
}

// double consumes a two-character operator.
func (l *Lexer) double(t token.TokenType, pos token.Position) token.Token {
	l.readChar()
	l.readChar()
	return token.Token{Type: t, Literal: l.input[pos.Offset:l.pos], Pos: pos, Width: 2}
}

// finish builds a token that ends at the current position.
func (l *Lexer) finish(t token.TokenType, lit string, pos token.Position) token.Token {
	return token.Token{Type: t, Literal: lit, Pos: pos, Width: l.pos - pos.Offset}
}

// readTrivia returns a WHITESPACE or COMMENT token if one starts at ch.
func (l *Lexer) readTrivia() (token.Token, bool) {
	pos := l.currentPos()
	switch {
	case isSpace(l.ch):
		for isSpace(l.ch) {
			l.readChar()
		}
		return l.finish(token.WHITESPACE, l.input[pos.Offset:l.pos], pos), true
	case l.ch == '-' && l.peekChar() == '-':
		c := l.collectLineComment()
		return l.finish(token.COMMENT, c.Text, pos), true
	case l.ch == '/' && l.peekChar() == '*':
		c, err := l.collectBlockComment()
		if err != nil {
			l.err = err
			return token.Token{Type: token.EOF, Pos: pos}, true
		}
		return l.finish(token.COMMENT, c.Text, pos), true
	}
	return token.Token{}, false
}

// skipWhitespaceAndComments skips whitespace and collects comments.
func (l *Lexer) skipWhitespaceAndComments() *LexError {
	for {
		for isSpace(l.ch) {
			l.readChar()
		}

		// Line comment (-- ...)
		if l.ch == '-' && l.peekChar() == '-' {
			l.collectLineComment()
			continue
		}

		// Block comment (/* ... */)
		if l.ch == '/' && l.peekChar() == '*' {
			if _, err := l.collectBlockComment(); err != nil {
				return err
			}
			continue
		}

		return nil
	}
}

// collectLineComment collects a line comment.
func (l *Lexer) collectLineComment() *token.Comment {
	startPos := l.currentPos()

	for l.ch != '\n' && l.ch != eof {
		l.readChar()
	}

	c := &token.Comment{
		Kind: token.LineComment,
		Text: l.input[startPos.Offset:l.pos],
		Span: token.Span{Start: startPos, End: l.currentPos()},
	}
	l.Comments = append(l.Comments, c)
	return c
}

// collectBlockComment collects a block comment.
func (l *Lexer) collectBlockComment() (*token.Comment, *LexError) {
	startPos := l.currentPos()

	l.readChar() // skip '/'
	l.readChar() // skip '*'

	for {
		if l.ch == eof {
			return nil, unterminated(startPos, "unterminated block comment")
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			break
		}
		l.readChar()
	}

	c := &token.Comment{
		Kind: token.BlockComment,
		Text: l.input[startPos.Offset:l.pos],
		Span: token.Span{Start: startPos, End: l.currentPos()},
	}
	l.Comments = append(l.Comments, c)
	return c, nil
}

// readQuoted reads a literal delimited by quote. A doubled quote inside the
// literal stands for the quote itself: 'it''s' -> it's, "a""b" -> a"b.
func (l *Lexer) readQuoted(quote rune) (string, *LexError) {
	start := l.currentPos()
	l.readChar() // skip opening quote

	var result strings.Builder
	for {
		switch {
		case l.ch == eof:
			if quote == '\'' {
				return "", unterminated(start, ErrUnterminatedString)
			}
			return "", unterminated(start, ErrUnterminatedIdent)
		case l.ch == quote && l.peekChar() == quote:
			result.WriteRune(quote)
			l.readChar()
			l.readChar()
		case l.ch == quote:
			l.readChar() // skip closing quote
			return result.String(), nil
		default:
			result.WriteRune(l.ch)
			l.readChar()
		}
	}
}

// readIdentifier reads an unquoted identifier or keyword.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNumber reads a numeric literal (integer, decimal, or scientific).
func (l *Lexer) readNumber() string {
	start := l.pos

	for isDigit(l.ch) {
		l.readChar()
	}

	// Decimal part
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	// Exponent part, only when digits follow (1e10, 1E-5)
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekAt(2))) {
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	return l.input[start:l.pos]
}

// isLetter returns true if ch can start an identifier.
func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

// isDigit returns true if ch is an ASCII digit.
func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// isSpace returns true if ch is whitespace.
func isSpace(ch rune) bool {
	return ch != eof && unicode.IsSpace(ch)
}

// Tokenize returns all tokens from the input, ending with an EOF token.
// On a lexical error the tokens read so far are returned with the error.
func Tokenize(input string, opts ...LexerOption) ([]token.Token, error) {
	l := NewLexer(input, opts...)
	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

// Tokens returns the lazy token sequence of input. The sequence ends before
// EOF, or right after yielding a lexical error. Ranging over it again
// re-lexes input from the start.
func Tokens(input string, opts ...LexerOption) iter.Seq2[token.Token, error] {
	return func(yield func(token.Token, error) bool) {
		l := NewLexer(input, opts...)
		for {
			tok, err := l.NextToken()
			if err != nil {
				yield(tok, err)
				return
			}
			if tok.Type == token.EOF {
				return
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}
