package commands

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/soveckyFonarik/just-db/internal/cli/output"
	"github.com/soveckyFonarik/just-db/pkg/parser"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// fileResult is the outcome of checking one file.
type fileResult struct {
	File       string `json:"file" yaml:"file"`
	Statements int    `json:"statements" yaml:"statements"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "check <files...>",
		Short: "Check that SQL files parse",
		Long: `Parse each file and report whether it is valid.

Files are checked concurrently. The command fails if any file does not parse.
With --watch, files are checked again whenever they change.`,
		Example: `  # Check every SQL file in a directory
  justdb check migrations/*.sql

  # Keep checking while editing
  justdb check --watch schema.sql`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, watch)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-check files when they change")

	return cmd
}

func runCheck(cmd *cobra.Command, files []string, watch bool) error {
	cc := NewCommandContext(cmd)
	ctx := cmd.Context()

	results, err := checkFiles(ctx, files, cc.ParserOptions())
	if err != nil {
		return err
	}
	failed, err := reportCheck(cc.Renderer, results)
	if err != nil {
		return err
	}

	if !watch {
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed to parse", failed, len(results))
		}
		return nil
	}

	cc.Renderer.Println(cc.Renderer.Styles().Muted.Render("Watching for changes (Ctrl+C to stop)..."))
	return watchFiles(ctx, files, cc.Logger, func(changed []string) {
		cc.Logger.Info("files changed", "files", changed)
		results, err := checkFiles(ctx, changed, cc.ParserOptions())
		if err != nil {
			return
		}
		if _, err := reportCheck(cc.Renderer, results); err != nil {
			cc.Logger.Error("failed to report results", "error", err)
		}
	})
}

// checkFiles parses every file concurrently. Results keep the order of
// files. It stops early, returning ctx's error, once ctx is done.
func checkFiles(ctx context.Context, files []string, opts []parser.Option) ([]fileResult, error) {
	results := make([]fileResult, len(files))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = checkFile(file, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func checkFile(file string, opts []parser.Option) fileResult {
	result := fileResult{File: file}

	data, err := os.ReadFile(file)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	queries, err := parser.Parse(string(data), opts...)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Statements = queries.Len()
	return result
}

// reportCheck renders results and returns the number of failed files.
func reportCheck(r *output.Renderer, results []fileResult) (int, error) {
	failed := 0
	for _, res := range results {
		if res.Error != "" {
			failed++
		}
	}

	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		return failed, r.Encode(results)
	}

	styles := r.Styles()
	rows := make([]table.Row, len(results))
	for i, res := range results {
		status := styles.StatusSuccess.String()
		detail := ""
		if res.Error != "" {
			status = styles.StatusFailed.String()
			detail = res.Error
		}
		rows[i] = table.Row{status, res.File, res.Statements, detail}
	}
	r.Table(table.Row{"Status", "File", "Statements", "Error"}, rows)

	if failed > 0 {
		r.Error(fmt.Sprintf("%d of %d files failed to parse", failed, len(results)))
	} else {
		r.Success(fmt.Sprintf("%d files parsed", len(results)))
	}
	return failed, nil
}
