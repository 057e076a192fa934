package parser_test

import (
	"errors"
	"testing"

	"github.com/soveckyFonarik/just-db/pkg/parser"
	"github.com/soveckyFonarik/just-db/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// types lexes input and returns the token types without the final EOF.
func types(t *testing.T, input string, opts ...parser.LexerOption) []token.TokenType {
	t.Helper()
	toks, err := parser.Tokenize(input, opts...)
	require.NoError(t, err)
	require.NotEmpty(t, toks)
	require.Equal(t, token.EOF, toks[len(toks)-1].Type)

	var out []token.TokenType
	for _, tok := range toks[:len(toks)-1] {
		out = append(out, tok.Type)
	}
	return out
}

func TestLexer_Operators(t *testing.T) {
	tests := []struct {
		input string
		want  []token.TokenType
	}{
		{"<>", []token.TokenType{token.NE}},
		{"<= ", []token.TokenType{token.LE}},
		{"< ", []token.TokenType{token.LT}},
		{"<", []token.TokenType{token.LT}},
		{">=", []token.TokenType{token.GE}},
		{"> ", []token.TokenType{token.GT}},
		{"!=", []token.TokenType{token.NE}},
		{"< >", []token.TokenType{token.LT, token.GT}},
		{"**", []token.TokenType{token.STAR, token.STAR}},
		{"a=b", []token.TokenType{token.IDENT, token.EQ, token.IDENT}},
		{"(,);.", []token.TokenType{token.LPAREN, token.COMMA, token.RPAREN, token.SEMICOLON, token.DOT}},
		{"+-/%|", []token.TokenType{token.PLUS, token.MINUS, token.SLASH, token.PERCENT, token.CONCAT}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, types(t, tt.input))
		})
	}
}

func TestLexer_KeywordsAreCaseInsensitive(t *testing.T) {
	for _, input := range []string{"select", "SELECT", "SeLeCt"} {
		toks, err := parser.Tokenize(input)
		require.NoError(t, err)
		assert.Equal(t, token.SELECT, toks[0].Type, input)
		assert.Equal(t, input, toks[0].Literal, "literal keeps the source spelling")
	}

	assert.Equal(t, []token.TokenType{token.IDENT}, types(t, "selectcol1"))
	assert.Equal(t, []token.TokenType{token.VARCHAR, token.LPAREN, token.NUMBER, token.RPAREN}, types(t, "varchar(10)"))
}

func TestLexer_Literals(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		typ     token.TokenType
		literal string
		width   int
	}{
		{"string", "'sdf'", token.STRING, "sdf", 5},
		{"escaped quote", "'it''s'", token.STRING, "it's", 7},
		{"empty string", "''", token.STRING, "", 2},
		{"quoted ident", `"my col"`, token.QUOTED_IDENT, "my col", 8},
		{"escaped ident", `"a""b"`, token.QUOTED_IDENT, `a"b`, 6},
		{"integer", "123", token.NUMBER, "123", 3},
		{"decimal", "45.67", token.NUMBER, "45.67", 5},
		{"exponent", "1e10", token.NUMBER, "1e10", 4},
		{"signed exponent", "1.5E-3", token.NUMBER, "1.5E-3", 6},
		{"identifier", "_col_1", token.IDENT, "_col_1", 6},
		{"unicode identifier", "täble", token.IDENT, "täble", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := parser.Tokenize(tt.input)
			require.NoError(t, err)
			require.Len(t, toks, 2)
			assert.Equal(t, tt.typ, toks[0].Type)
			assert.Equal(t, tt.literal, toks[0].Literal)
			assert.Equal(t, tt.width, toks[0].Width)
			assert.Equal(t, len(tt.input), toks[0].End())
		})
	}
}

func TestLexer_NumberWithoutExponentDigits(t *testing.T) {
	toks, err := parser.Tokenize("1e")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, "1", toks[0].Literal)
	assert.Equal(t, token.IDENT, toks[1].Type)
	assert.Equal(t, "e", toks[1].Literal)
}

func TestLexer_Positions(t *testing.T) {
	toks, err := parser.Tokenize("select\n  a,\tb")
	require.NoError(t, err)
	require.Len(t, toks, 5)

	assert.Equal(t, token.Position{Line: 1, Column: 1, Offset: 0}, toks[0].Pos)
	assert.Equal(t, token.Position{Line: 2, Column: 3, Offset: 9}, toks[1].Pos)
	assert.Equal(t, token.Position{Line: 2, Column: 4, Offset: 10}, toks[2].Pos)
	assert.Equal(t, token.Position{Line: 2, Column: 6, Offset: 12}, toks[3].Pos)
	assert.Equal(t, 13, toks[4].Pos.Offset)
}

func TestLexer_Comments(t *testing.T) {
	l := parser.NewLexer("select -- first\n a /* second */ from t")
	var got []token.TokenType
	for {
		tok, err := l.NextToken()
		require.NoError(t, err)
		if tok.Type == token.EOF {
			break
		}
		got = append(got, tok.Type)
	}

	assert.Equal(t, []token.TokenType{token.SELECT, token.IDENT, token.FROM, token.IDENT}, got)
	require.Len(t, l.Comments, 2)
	assert.Equal(t, token.LineComment, l.Comments[0].Kind)
	assert.Equal(t, "first", l.Comments[0].Body())
	assert.Equal(t, token.BlockComment, l.Comments[1].Kind)
	assert.Equal(t, "/* second */", l.Comments[1].Text)
	assert.Equal(t, len(l.Comments[1].Text), l.Comments[1].Span.Len())
	assert.Equal(t, 1, l.Comments[0].Span.Start.Line)
}

func TestLexer_Trivia(t *testing.T) {
	got := types(t, "a  -- c\nb", parser.WithTrivia())
	assert.Equal(t, []token.TokenType{
		token.IDENT, token.WHITESPACE, token.COMMENT, token.WHITESPACE, token.IDENT,
	}, got)
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		char       rune
		column     int
		incomplete bool
	}{
		{"invalid character", "select #", '#', 8, false},
		{"lone bang", "a ! b", '!', 3, false},
		{"unterminated string", "select 'abc", 0, 8, true},
		{"unterminated ident", `select "abc`, 0, 8, true},
		{"unterminated comment", "select /* abc", 0, 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Tokenize(tt.input)
			require.Error(t, err)

			var lexErr *parser.LexError
			require.True(t, errors.As(err, &lexErr))
			assert.Equal(t, tt.char, lexErr.Char)
			assert.Equal(t, tt.column, lexErr.Pos.Column)
			assert.Equal(t, tt.incomplete, errors.Is(err, parser.ErrIncomplete))
		})
	}
}

func TestLexer_ErrorIsSticky(t *testing.T) {
	l := parser.NewLexer("a # b")
	_, err := l.NextToken()
	require.NoError(t, err)

	_, first := l.NextToken()
	require.Error(t, first)

	tok, second := l.NextToken()
	assert.Equal(t, token.EOF, tok.Type)
	assert.Same(t, first, second)
}

func TestTokens(t *testing.T) {
	var got []string
	for tok, err := range parser.Tokens("select a, b") {
		require.NoError(t, err)
		got = append(got, tok.Literal)
	}
	assert.Equal(t, []string{"select", "a", ",", "b"}, got)

	// Breaking early stops lexing.
	count := 0
	for range parser.Tokens("a b c d") {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)

	// The error is the last element.
	var last error
	n := 0
	for _, err := range parser.Tokens("a ? b") {
		n++
		last = err
	}
	assert.Equal(t, 2, n)
	assert.Error(t, last)
}

func FuzzTokens(f *testing.F) {
	seeds := []string{
		"SELECT * FROM users;",
		"insert into t (a, b) values (1, 'hello');",
		"CREATE TABLE foo (id INTEGER PRIMARY KEY, name VARCHAR(20) NOT NULL);",
		"UPDATE users SET name = 'alice' WHERE id = 1;",
		"DELETE FROM orders WHERE total > 100;",
		"select count(*) from items group by category having count(*) > 5;",
		"ALTER TABLE t ADD CONSTRAINT fk FOREIGN KEY (a) REFERENCES u (b);",
		"",
		"   ",
		"'unclosed string",
		`"unclosed ident`,
		"123abc",
		"--",
		"/*",
		"1.5e10 1e 1e+",
		"'it''s fine'",
		"(((())))",
		"<><=>=!=!",
		"\x00\x01\x02",
		"\xff\xfe",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		// Neither the lexer nor the parser may panic, whatever the input.
		n := 0
		for tok, err := range parser.Tokens(input, parser.WithTrivia()) {
			if err == nil && tok.End() > len(input) {
				t.Fatalf("token %v ends past the input", tok)
			}
			n++
			if n > len(input)+1 {
				t.Fatalf("more tokens than input bytes")
			}
		}
		_, _ = parser.Parse(input)
	})
}
