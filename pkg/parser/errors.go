package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/soveckyFonarik/just-db/pkg/token"
)

// ErrIncomplete reports that the input ended before a statement was
// complete. Both *LexError and *ParseError match it with errors.Is when the
// failure happened at the end of the buffer.
var ErrIncomplete = errors.New("incomplete input")

// ParseError represents a grammar mismatch with position information.
type ParseError struct {
	Pos      token.Position
	Expected []string // alternatives that would have been accepted
	Found    string
	Message  string // set instead of Expected/Found for non-mismatch failures

	atEnd bool // the offending token touches the end of the buffer
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Detail())
}

// Detail returns the message without the position prefix.
func (e *ParseError) Detail() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("expected %s, found %s", joinAlternatives(e.Expected), e.Found)
}

// Is reports whether the error happened at the end of the buffer.
func (e *ParseError) Is(target error) bool {
	return target == ErrIncomplete && e.atEnd
}

// LexError represents a lexical analysis error.
type LexError struct {
	Pos          token.Position
	Char         rune // the offending character, zero for unterminated literals
	Unterminated bool
	Message      string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Is reports whether the error is an unterminated literal or comment.
func (e *LexError) Is(target error) bool {
	return target == ErrIncomplete && e.Unterminated
}

// Common error messages
const (
	ErrInvalidCharacter   = "invalid character %q"
	ErrUnterminatedString = "unterminated string literal"
	ErrUnterminatedIdent  = "unterminated quoted identifier"
	ErrInvalidNumber      = "invalid number literal %q"
	ErrMaxDepth           = "expression nesting exceeds maximum depth of %d"
	ErrArityMismatch      = "INSERT lists %d columns but %d values"
	ErrNoStatement        = "unrecognized statement"
)

func invalidChar(pos token.Position, ch rune) *LexError {
	return &LexError{Pos: pos, Char: ch, Message: fmt.Sprintf(ErrInvalidCharacter, ch)}
}

func unterminated(pos token.Position, msg string) *LexError {
	return &LexError{Pos: pos, Unterminated: true, Message: msg}
}

// joinAlternatives renders ["a"] as a, ["a","b"] as a or b and longer lists
// as a, b or c.
func joinAlternatives(alts []string) string {
	switch len(alts) {
	case 0:
		return "nothing"
	case 1:
		return alts[0]
	}
	return strings.Join(alts[:len(alts)-1], ", ") + " or " + alts[len(alts)-1]
}
