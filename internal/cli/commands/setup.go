package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/soveckyFonarik/just-db/internal/cli/output"
	"github.com/soveckyFonarik/just-db/internal/config"
	"github.com/soveckyFonarik/just-db/pkg/parser"
	"github.com/spf13/cobra"
)

// CommandContext holds the common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext builds a CommandContext from the config and logger
// stored in the command context by the root command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ParseMode(cfg.Output)),
	}
}

// ParserOptions returns the parser options implied by the config.
func (c *CommandContext) ParserOptions() []parser.Option {
	return []parser.Option{
		parser.WithMaxDepth(c.Cfg.MaxDepth),
		parser.WithLogger(c.Logger),
	}
}

// readInput returns SQL text from the arguments, the --file flag or standard input.
func readInput(cmd *cobra.Command, args []string, file string) (string, error) {
	switch {
	case len(args) > 0 && file != "":
		return "", fmt.Errorf("pass either a query argument or --file, not both")
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read standard input: %w", err)
		}
		return string(data), nil
	}
}
