package parser

import (
	"errors"
	"slices"
	"strings"

	"github.com/soveckyFonarik/just-db/pkg/ast"
	"github.com/soveckyFonarik/just-db/pkg/token"
)

// State is the status of a Stream after a Feed.
type State int

// Stream states.
const (
	// Incomplete means more input is needed: nothing has been committed yet,
	// or the pending statement has not been terminated.
	Incomplete State = iota
	// Complete means every statement fed so far is parsed and nothing but
	// whitespace or comments is pending.
	Complete
	// Failed means the input can not be parsed no matter what follows.
	Failed
)

func (s State) String() string {
	switch s {
	case Incomplete:
		return "incomplete"
	case Complete:
		return "complete"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Outcome is the result of feeding a Stream.
type Outcome struct {
	State State
	// Queries holds every statement committed so far. It is nil when the
	// stream failed.
	Queries *ast.Queries
	// Pending is the unterminated input carried over to the next Feed.
	Pending string
	// Err is set when State is Failed.
	Err error
}

// Stream parses input that arrives in chunks, such as lines typed into a
// shell. Statements are committed as soon as their terminating semicolon is
// seen and are never parsed again; only the pending statement is re-lexed
// when more input arrives.
//
// A Stream is not safe for concurrent use.
type Stream struct {
	buf     strings.Builder
	start   token.Position // where the pending statement begins
	queries []ast.Query
	err     error
	opts    []Option
}

// NewStream creates an empty stream. The options apply to every parse it
// runs.
func NewStream(opts ...Option) *Stream {
	return &Stream{
		start: token.StartOfInput,
		opts:  opts,
	}
}

// Feed appends chunk to the input and parses as far as possible. Once a
// Feed has failed, the stream stays failed.
func (s *Stream) Feed(chunk string) Outcome {
	if s.err != nil {
		return Outcome{State: Failed, Err: s.err}
	}
	s.buf.WriteString(chunk)
	return s.advance(false)
}

// Close ends the input. Whatever is pending must now form complete
// statements; input that was waiting for more text fails instead.
func (s *Stream) Close() (*ast.Queries, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := s.advance(true)
	if out.State == Failed {
		return nil, out.Err
	}
	return out.Queries, nil
}

// Reset discards all input and state.
func (s *Stream) Reset() {
	s.buf.Reset()
	s.start = token.StartOfInput
	s.queries = nil
	s.err = nil
}

// advance parses the pending input, committing each terminated statement.
func (s *Stream) advance(final bool) Outcome {
	input := s.buf.String()
	p := newParserAt(input, s.start, final, s.opts...)

	for {
		for p.check(token.SEMICOLON) {
			s.start = after(p.token)
			p.nextToken()
		}
		if p.check(token.EOF) {
			break
		}

		q, semi, err := p.parseTerminated()
		if err != nil {
			if !final && errors.Is(err, ErrIncomplete) {
				return s.outcome(Incomplete, input)
			}
			p.logger.Debug("stream failed", "error", err, "committed", len(s.queries))
			s.err = err
			return Outcome{State: Failed, Err: err}
		}
		s.queries = append(s.queries, q)
		s.start = after(semi)
	}

	if len(s.queries) == 0 && !final {
		return s.outcome(Incomplete, input)
	}
	return s.outcome(Complete, input)
}

func (s *Stream) outcome(state State, input string) Outcome {
	out := Outcome{
		State:   state,
		Queries: &ast.Queries{Statements: slices.Clone(s.queries)},
	}
	if state == Incomplete {
		out.Pending = input[s.start.Offset:]
	}
	return out
}

// after returns the position just past a single-character token.
func after(tok token.Token) token.Position {
	return token.Position{
		Line:   tok.Pos.Line,
		Column: tok.Pos.Column + 1,
		Offset: tok.End(),
	}
}
