package commands

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/soveckyFonarik/just-db/internal/cli/output"
	"github.com/soveckyFonarik/just-db/pkg/parser"
	"github.com/soveckyFonarik/just-db/pkg/token"
	"github.com/spf13/cobra"
)

// tokenRow is the JSON/YAML shape of one token.
type tokenRow struct {
	Type    string `json:"type" yaml:"type"`
	Literal string `json:"literal" yaml:"literal"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
	Offset  int    `json:"offset" yaml:"offset"`
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	var (
		file   string
		trivia bool
	)

	cmd := &cobra.Command{
		Use:   "tokens [query]",
		Short: "Print the tokens of SQL text",
		Long: `Run the lexer over SQL text and print every token with its position.

Whitespace and comments are skipped unless --trivia is set.`,
		Example: `  # Show the tokens of a query
  justdb tokens "select a from t;"

  # Include whitespace and comments
  justdb tokens --trivia -f query.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args, file, trivia)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read SQL from a file")
	cmd.Flags().BoolVar(&trivia, "trivia", false, "Include whitespace and comment tokens")

	return cmd
}

func runTokens(cmd *cobra.Command, args []string, file string, trivia bool) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	input, err := readInput(cmd, args, file)
	if err != nil {
		return err
	}

	var opts []parser.LexerOption
	if trivia {
		opts = append(opts, parser.WithTrivia())
	}
	toks, err := parser.Tokenize(input, opts...)
	if err != nil {
		return err
	}
	// Drop EOF.
	toks = toks[:len(toks)-1]

	rows := make([]tokenRow, len(toks))
	for i, tok := range toks {
		rows[i] = tokenRow{
			Type:    tok.Type.String(),
			Literal: tok.Literal,
			Line:    tok.Pos.Line,
			Column:  tok.Pos.Column,
			Offset:  tok.Pos.Offset,
		}
	}

	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		return r.Encode(rows)
	default:
		tableRows := make([]table.Row, len(toks))
		for i, tok := range toks {
			tableRows[i] = table.Row{i + 1, tok.Type.String(), displayLiteral(tok), tok.Pos.Line, tok.Pos.Column}
		}
		r.Table(table.Row{"#", "Type", "Literal", "Line", "Column"}, tableRows)
		return nil
	}
}

func displayLiteral(tok token.Token) string {
	switch tok.Type {
	case token.WHITESPACE, token.COMMENT, token.STRING, token.QUOTED_IDENT:
		return strconv.Quote(tok.Literal)
	default:
		return tok.Literal
	}
}
