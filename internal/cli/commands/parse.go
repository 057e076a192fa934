package commands

import (
	"github.com/soveckyFonarik/just-db/internal/cli/output"
	"github.com/soveckyFonarik/just-db/pkg/parser"
	"github.com/spf13/cobra"
)

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "parse [query]",
		Short: "Parse SQL and print the query tree",
		Long: `Parse one or more SQL statements and print the resulting query tree.

SQL is read from the arguments, from --file, or from standard input.
Every statement must end with a semicolon.

Use --output to choose the format: auto, text, json, yaml`,
		Example: `  # Print the tree of a single statement
  justdb parse "select a, count(b) from t group by a;"

  # Parse a file and emit JSON
  justdb parse -f schema.sql -o json

  # Read from standard input
  cat queries.sql | justdb parse -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read SQL from a file")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, file string) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	input, err := readInput(cmd, args, file)
	if err != nil {
		return err
	}

	queries, err := parser.Parse(input, cc.ParserOptions()...)
	if err != nil {
		return err
	}
	cc.Logger.Debug("parsed input", "statements", queries.Len())

	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		return r.Encode(describe(queries))
	default:
		if queries.Len() == 0 {
			r.Println(r.Styles().Muted.Render("No statements"))
			return nil
		}
		for i, stmt := range queries.Statements {
			renderStatement(r, i+1, stmt)
		}
		return nil
	}
}
