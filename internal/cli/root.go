// Package cli provides the command-line interface for justdb.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/soveckyFonarik/just-db/internal/cli/commands"
	"github.com/soveckyFonarik/just-db/internal/config"
	"github.com/soveckyFonarik/just-db/pkg/parser"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "justdb",
		Short: "justdb - SQL lexer, parser and formatter",
		Long: `justdb parses a small SQL dialect into a query tree.

It can print the tokens or the tree of SQL text, reformat it, check files
for syntax errors, and parse statements interactively as they are typed.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipsConfig[cmd.Name()] {
				return nil
			}
			return prepareContext(cmd, cfgFile)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./justdb.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", config.DefaultOutput, "Output format (auto|text|json|yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output (debug logging)")
	rootCmd.PersistentFlags().Int("max-depth", parser.DefaultMaxDepth, "Maximum expression nesting depth")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "Log level (debug|info|warn|error)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(
		commands.NewParseCommand(),
		commands.NewTokensCommand(),
		commands.NewFormatCommand(),
		commands.NewCheckCommand(),
		commands.NewREPLCommand(),
		commands.NewVersionCommand(commands.BuildInfo{Version: Version, GitCommit: GitCommit, BuildDate: BuildDate}),
		NewCompletionCommand(),
	)

	return rootCmd
}

// skipsConfig names the commands that run without loading configuration.
var skipsConfig = map[string]bool{
	"help":                          true,
	"completion":                    true,
	cobra.ShellCompRequestCmd:       true,
	cobra.ShellCompNoDescRequestCmd: true,
}

// prepareContext loads the configuration and stores it, together with a
// logger built from it, in the command context.
func prepareContext(cmd *cobra.Command, cfgFile string) error {
	cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}

	logger := cfg.NewLogger(cmd.ErrOrStderr())
	ctx := context.WithValue(cmd.Context(), config.ConfigKey(), cfg)
	cmd.SetContext(context.WithValue(ctx, config.LoggerKey(), logger))

	if path := config.GetConfigFileUsed(); path != "" {
		logger.Debug("using config file", "path", path)
	}
	return nil
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for justdb.

To load completions:

Bash:
  $ source <(justdb completion bash)

Zsh:
  $ justdb completion zsh > "${fpath[1]}/_justdb"

Fish:
  $ justdb completion fish | source

PowerShell:
  PS> justdb completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			generators := map[string]func(io.Writer) error{
				"bash":       root.GenBashCompletion,
				"zsh":        root.GenZshCompletion,
				"fish":       func(w io.Writer) error { return root.GenFishCompletion(w, true) },
				"powershell": root.GenPowerShellCompletionWithDesc,
			}
			return generators[args[0]](out)
		},
	}
	return cmd
}
