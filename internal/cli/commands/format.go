package commands

import (
	"strings"

	"github.com/soveckyFonarik/just-db/internal/cli/output"
	"github.com/soveckyFonarik/just-db/pkg/format"
	"github.com/soveckyFonarik/just-db/pkg/parser"
	"github.com/spf13/cobra"
)

// NewFormatCommand creates the fmt command.
func NewFormatCommand() *cobra.Command {
	var (
		file   string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "fmt [query]",
		Short: "Reformat SQL",
		Long: `Parse SQL and print it back in canonical form: upper-case keywords,
one statement per line, identifiers quoted only where needed.

With --pretty (or pretty: true in justdb.yaml) clauses are broken over
several indented lines.`,
		Example: `  # Normalize a statement
  justdb fmt "select a,b from t where x=1;"

  # Pretty-print a file
  justdb fmt --pretty -f query.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, file, pretty)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read SQL from a file")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Break clauses over indented lines")

	return cmd
}

func runFormat(cmd *cobra.Command, args []string, file string, pretty bool) error {
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

	var opts []format.Option
	if pretty || cc.Cfg.Pretty {
		opts = append(opts, format.Pretty())
	}

	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		statements := make([]string, queries.Len())
		for i, stmt := range queries.Statements {
			statements[i] = strings.TrimSuffix(format.Query(stmt, opts...), "\n")
		}
		return r.Encode(map[string][]string{"statements": statements})
	default:
		r.Printf("%s", format.Queries(queries, opts...))
		return nil
	}
}
