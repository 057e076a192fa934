package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/soveckyFonarik/just-db/internal/cli/output"
	"github.com/soveckyFonarik/just-db/pkg/format"
	"github.com/soveckyFonarik/just-db/pkg/parser"
	"github.com/spf13/cobra"
)

const (
	replPrompt         = "justdb> "
	replContinuePrompt = "    ...> "
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive SQL parser shell",
		Long: `Start an interactive shell that parses SQL as you type.

Statements may span several lines and are parsed when their closing
semicolon is entered. Each statement is printed as a tree, or as
formatted SQL after .mode sql. Type .help for the shell commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}
	return cmd
}

func runREPL(cmd *cobra.Command) error {
	cc := NewCommandContext(cmd)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     cc.Cfg.HistoryPath(),
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	cc.Renderer.Println("justdb SQL shell")
	cc.Renderer.Println("Type .help for commands, .quit to exit")
	cc.Renderer.Println("")

	session := newREPLSession(cc)
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			session.reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			session.finish()
			return nil
		}
		if err != nil {
			return err
		}

		prompt, quit := session.handleLine(line)
		if quit {
			return nil
		}
		rl.SetPrompt(prompt)
	}
}

// replSession feeds input lines into a parser stream and prints each
// statement once it completes.
type replSession struct {
	cc      *CommandContext
	stream  *parser.Stream
	printed int // statements of the current batch already shown
	total   int
	sqlMode bool
}

func newREPLSession(cc *CommandContext) *replSession {
	return &replSession{
		cc:      cc,
		stream:  parser.NewStream(cc.ParserOptions()...),
		sqlMode: cc.Cfg.Pretty,
	}
}

// handleLine processes one line and returns the next prompt.
func (s *replSession) handleLine(line string) (prompt string, quit bool) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, ".") && s.idle() {
		return replPrompt, s.dotCommand(trimmed)
	}

	out := s.stream.Feed(line + "\n")
	switch out.State {
	case parser.Failed:
		s.cc.Renderer.Error(out.Err.Error())
		s.reset()
		return replPrompt, false
	case parser.Complete:
		s.printNew(out)
		return replPrompt, false
	default:
		s.printNew(out)
		if strings.TrimSpace(out.Pending) == "" {
			return replPrompt, false
		}
		return replContinuePrompt, false
	}
}

// idle reports whether no statement text is buffered.
func (s *replSession) idle() bool {
	out := s.stream.Feed("")
	return strings.TrimSpace(out.Pending) == ""
}

func (s *replSession) printNew(out parser.Outcome) {
	r := s.cc.Renderer
	for i := s.printed; i < out.Queries.Len(); i++ {
		stmt := out.Queries.Statements[i]
		s.total++
		if s.sqlMode {
			r.Printf("%s", format.Query(stmt, format.Pretty()))
		} else {
			renderStatement(r, s.total, stmt)
		}
	}
	s.printed = out.Queries.Len()

	// Committed statements are already shown; start the next batch fresh.
	if out.State == parser.Complete {
		s.reset()
	}
}

// finish reports any statement left unterminated at end of input.
func (s *replSession) finish() {
	if s.idle() {
		return
	}
	if _, err := s.stream.Close(); err != nil {
		s.cc.Renderer.Error(err.Error())
	}
}

func (s *replSession) reset() {
	s.stream.Reset()
	s.printed = 0
}

// dotCommand runs a shell command and reports whether to quit.
func (s *replSession) dotCommand(line string) bool {
	r := s.cc.Renderer
	parts := strings.Fields(line)

	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(r)

	case ".reset":
		s.reset()

	case ".mode":
		if len(parts) < 2 {
			r.Println(s.modeName())
			break
		}
		switch strings.ToLower(parts[1]) {
		case "tree":
			s.sqlMode = false
		case "sql":
			s.sqlMode = true
		default:
			r.Error("Usage: .mode tree|sql")
		}

	default:
		r.Error(fmt.Sprintf("Unknown command: %s (type .help for commands)", parts[0]))
	}
	return false
}

func (s *replSession) modeName() string {
	if s.sqlMode {
		return "sql"
	}
	return "tree"
}

func printREPLHelp(r *output.Renderer) {
	r.Println(`
Commands:
  .help           Show this help message
  .mode tree|sql  Print statements as trees or as formatted SQL
  .reset          Discard buffered input
  .quit / .exit   Exit the shell

Tips:
  - Statements must end with a semicolon (;)
  - Use arrow keys to navigate history
  - Tab completes statement keywords`)
}

func newREPLCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("SELECT"),
		readline.PcItem("INSERT INTO"),
		readline.PcItem("UPDATE"),
		readline.PcItem("DELETE FROM"),
		readline.PcItem("CREATE TABLE"),
		readline.PcItem("DROP TABLE"),
		readline.PcItem("ALTER TABLE"),
		readline.PcItem(".help"),
		readline.PcItem(".mode", readline.PcItem("tree"), readline.PcItem("sql")),
		readline.PcItem(".reset"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
