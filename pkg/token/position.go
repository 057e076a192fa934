package token

import "fmt"

// Position is a location in SQL source text.
type Position struct {
	Line   int // 1-based
	Column int // 1-based, counted in runes
	Offset int // 0-based byte offset
}

// StartOfInput is the position of the first character of a buffer.
var StartOfInput = Position{Line: 1, Column: 1}

// String formats the position as line:column.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is the half-open range [Start, End) of source text.
type Span struct {
	Start Position
	End   Position
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}
