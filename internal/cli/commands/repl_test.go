package commands

import (
	"testing"

	clitest "github.com/soveckyFonarik/just-db/internal/cli/testutil"
	"github.com/soveckyFonarik/just-db/internal/config"
	"github.com/soveckyFonarik/just-db/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func newTestSession(t *testing.T) (*replSession, *clitest.TestRenderer) {
	t.Helper()
	tr := clitest.NewTestRendererText()
	cc := &CommandContext{
		Cfg:      config.Default(),
		Logger:   testutil.NewTestLogger(t),
		Renderer: tr.Renderer,
	}
	return newREPLSession(cc), tr
}

func TestREPL_MultiLineStatement(t *testing.T) {
	s, tr := newTestSession(t)

	prompt, quit := s.handleLine("select col1")
	assert.False(t, quit)
	assert.Equal(t, replContinuePrompt, prompt)
	assert.Empty(t, tr.Output())

	prompt, _ = s.handleLine(", col2 from t;")
	assert.Equal(t, replPrompt, prompt)
	assert.Contains(t, tr.Output(), "Statement 1: SELECT")
	assert.Contains(t, tr.Output(), `name: "col2"`)
}

func TestREPL_SeveralStatementsOnOneLine(t *testing.T) {
	s, tr := newTestSession(t)

	prompt, _ := s.handleLine("drop table a; drop table b; select a")
	assert.Equal(t, replContinuePrompt, prompt)
	assert.Contains(t, tr.Output(), "Statement 1: DROP TABLE")
	assert.Contains(t, tr.Output(), "Statement 2: DROP TABLE")

	tr.Reset()
	prompt, _ = s.handleLine("from t;")
	assert.Equal(t, replPrompt, prompt)
	assert.Contains(t, tr.Output(), "Statement 3: SELECT")
	assert.NotContains(t, tr.Output(), "DROP TABLE", "earlier statements are printed once")
}

func TestREPL_ErrorResetsBuffer(t *testing.T) {
	s, tr := newTestSession(t)

	prompt, _ := s.handleLine("select a b from t;")
	assert.Equal(t, replPrompt, prompt)
	assert.Contains(t, tr.ErrorOutput(), `expected "," or FROM, found IDENT "b"`)

	tr.Reset()
	s.handleLine("drop table t;")
	assert.Contains(t, tr.Output(), "DROP TABLE")
	assert.Empty(t, tr.ErrorOutput())
}

func TestREPL_DotCommands(t *testing.T) {
	s, tr := newTestSession(t)

	s.handleLine(".help")
	assert.Contains(t, tr.Output(), ".mode tree|sql")

	tr.Reset()
	s.handleLine(".mode")
	assert.Equal(t, "tree\n", tr.Output())

	tr.Reset()
	s.handleLine(".mode sql")
	s.handleLine("select a,b from t;")
	assert.Equal(t, "SELECT\n  a,\n  b\nFROM t;\n", tr.Output())

	tr.Reset()
	s.handleLine(".bogus")
	assert.Contains(t, tr.ErrorOutput(), "Unknown command: .bogus")

	_, quit := s.handleLine(".quit")
	assert.True(t, quit)
}

func TestREPL_ResetDiscardsPendingInput(t *testing.T) {
	s, tr := newTestSession(t)

	prompt, _ := s.handleLine("select a")
	assert.Equal(t, replContinuePrompt, prompt)

	// Not a command while a statement is pending.
	prompt, _ = s.handleLine(".reset")
	assert.Equal(t, replContinuePrompt, prompt)

	s.reset()
	prompt, _ = s.handleLine("drop table t;")
	assert.Equal(t, replPrompt, prompt)
	assert.Contains(t, tr.Output(), "DROP TABLE")
}

func TestREPL_FinishReportsUnterminated(t *testing.T) {
	s, tr := newTestSession(t)

	s.handleLine("select a from t")
	s.finish()
	assert.Contains(t, tr.ErrorOutput(), `expected ";", found end of input`)

	s2, tr2 := newTestSession(t)
	s2.finish()
	assert.Empty(t, tr2.ErrorOutput())
}
