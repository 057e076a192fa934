// Package token defines the token types for SQL lexing and parsing.
//
// Reserved keywords and data-type keywords are closed sets: an identifier
// spelled like a keyword (in any letter case) always lexes as that keyword.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

//nolint:revive // Token names are intentionally ALL_CAPS for SQL token conventions
const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL
	WHITESPACE
	COMMENT

	// Literals
	IDENT        // col1
	QUOTED_IDENT // "col 1"
	NUMBER       // 123, 45.67, 1e10
	STRING       // 'hello'

	// Symbols and operators
	STAR      // *
	COMMA     // ,
	SEMICOLON // ;
	LPAREN    // (
	RPAREN    // )
	DOT       // .
	EQ        // =
	NE        // <> or !=
	LT        // <
	GT        // >
	LE        // <=
	GE        // >=
	PLUS      // +
	MINUS     // -
	SLASH     // /
	PERCENT   // %
	CONCAT    // |

	// Reserved keywords
	keywordStart
	SELECT
	FROM
	WHERE
	INSERT
	INTO
	VALUES
	UPDATE
	SET
	DELETE
	CREATE
	TABLE
	PRIMARY
	KEY
	FOREIGN
	REFERENCES
	UNIQUE
	DROP
	ALTER
	ADD
	COLUMN
	CONSTRAINT
	INDEX
	JOIN
	INNER
	LEFT
	RIGHT
	FULL
	OUTER
	CROSS
	ON
	GROUP
	BY
	ORDER
	ASC
	DESC
	UNION
	ALL
	DISTINCT
	LIMIT
	OFFSET
	HAVING
	AS
	AND
	OR
	NOT
	NULL
	IS
	IN
	BETWEEN
	LIKE
	EXISTS
	ANY
	CASE
	WHEN
	THEN
	ELSE
	END
	DEFAULT
	TRUE
	FALSE
	keywordEnd

	// Data-type keywords
	dataTypeStart
	INT
	INTEGER
	SMALLINT
	TINYINT
	BIGINT
	FLOAT
	REAL
	DOUBLE
	DECIMAL
	NUMERIC
	VARCHAR
	CHAR
	TEXT
	DATE
	TIME
	TIMESTAMP
	BOOLEAN
	dataTypeEnd
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps token types to their string representations.
var tokenNames = map[TokenType]string{
	EOF:        "EOF",
	ILLEGAL:    "ILLEGAL",
	WHITESPACE: "WHITESPACE",
	COMMENT:    "COMMENT",

	IDENT:        "IDENT",
	QUOTED_IDENT: "QUOTED_IDENT",
	NUMBER:       "NUMBER",
	STRING:       "STRING",

	STAR:      "*",
	COMMA:     ",",
	SEMICOLON: ";",
	LPAREN:    "(",
	RPAREN:    ")",
	DOT:       ".",
	EQ:        "=",
	NE:        "<>",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	PLUS:      "+",
	MINUS:     "-",
	SLASH:     "/",
	PERCENT:   "%",
	CONCAT:    "|",
}

// keywords maps lowercase keyword strings to their token types.
// Filled in init together with the keyword entries of tokenNames.
var keywords = make(map[string]TokenType)

func init() {
	names := map[TokenType]string{
		SELECT: "SELECT", FROM: "FROM", WHERE: "WHERE", INSERT: "INSERT", INTO: "INTO",
		VALUES: "VALUES", UPDATE: "UPDATE", SET: "SET", DELETE: "DELETE", CREATE: "CREATE",
		TABLE: "TABLE", PRIMARY: "PRIMARY", KEY: "KEY", FOREIGN: "FOREIGN",
		REFERENCES: "REFERENCES", UNIQUE: "UNIQUE", DROP: "DROP", ALTER: "ALTER", ADD: "ADD",
		COLUMN: "COLUMN", CONSTRAINT: "CONSTRAINT", INDEX: "INDEX", JOIN: "JOIN",
		INNER: "INNER", LEFT: "LEFT", RIGHT: "RIGHT", FULL: "FULL", OUTER: "OUTER",
		CROSS: "CROSS", ON: "ON", GROUP: "GROUP", BY: "BY", ORDER: "ORDER", ASC: "ASC",
		DESC: "DESC", UNION: "UNION", ALL: "ALL", DISTINCT: "DISTINCT", LIMIT: "LIMIT",
		OFFSET: "OFFSET", HAVING: "HAVING", AS: "AS", AND: "AND", OR: "OR", NOT: "NOT",
		NULL: "NULL", IS: "IS", IN: "IN", BETWEEN: "BETWEEN", LIKE: "LIKE",
		EXISTS: "EXISTS", ANY: "ANY", CASE: "CASE", WHEN: "WHEN", THEN: "THEN",
		ELSE: "ELSE", END: "END", DEFAULT: "DEFAULT", TRUE: "TRUE", FALSE: "FALSE",

		INT: "INT", INTEGER: "INTEGER", SMALLINT: "SMALLINT", TINYINT: "TINYINT",
		BIGINT: "BIGINT", FLOAT: "FLOAT", REAL: "REAL", DOUBLE: "DOUBLE",
		DECIMAL: "DECIMAL", NUMERIC: "NUMERIC", VARCHAR: "VARCHAR", CHAR: "CHAR",
		TEXT: "TEXT", DATE: "DATE", TIME: "TIME", TIMESTAMP: "TIMESTAMP",
		BOOLEAN: "BOOLEAN",
	}
	for t, name := range names {
		tokenNames[t] = name
		keywords[lower(name)] = t
	}
}

// lower is an ASCII-only lowercase, enough for the keyword table.
func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// LookupIdent returns the token type for the given lowercase identifier.
// If the identifier is a keyword or data-type keyword, that type is returned.
// Otherwise, IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a reserved keyword.
func IsKeyword(t TokenType) bool {
	return t > keywordStart && t < keywordEnd
}

// IsDataType returns true if the token type is a data-type keyword.
func IsDataType(t TokenType) bool {
	return t > dataTypeStart && t < dataTypeEnd
}

// IsOperator returns true if the token type is a symbol or operator.
func IsOperator(t TokenType) bool {
	return t >= STAR && t <= CONCAT
}

// IsComparison returns true if the token type is a comparison operator.
func IsComparison(t TokenType) bool {
	return t >= EQ && t <= GE
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
	Width   int // bytes of source text, including quotes
}

// End returns the byte offset just past the token's source text.
func (t Token) End() int {
	return t.Pos.Offset + t.Width
}

// String returns a compact description used in error messages.
func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "end of input"
	case IDENT, NUMBER:
		return fmt.Sprintf("%s %q", t.Type, t.Literal)
	case QUOTED_IDENT:
		return fmt.Sprintf("quoted identifier %q", t.Literal)
	case STRING:
		return fmt.Sprintf("string '%s'", t.Literal)
	case ILLEGAL:
		return fmt.Sprintf("illegal %q", t.Literal)
	}
	if IsKeyword(t.Type) || IsDataType(t.Type) {
		return "keyword " + t.Type.String()
	}
	return fmt.Sprintf("%q", t.Type.String())
}
