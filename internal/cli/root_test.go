package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/soveckyFonarik/just-db/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	config.ResetConfig()

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	assert.Equal(t, "justdb", cmd.Use)
	for _, flag := range []string{"config", "output", "verbose", "max-depth", "log-level"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"version", "parse", "tokens", "fmt", "check", "repl", "completion"})
}

func TestRoot_FlagsReachCommands(t *testing.T) {
	out, _, err := runRoot(t, "parse", "-o", "json", "drop table t;")
	require.NoError(t, err)
	assert.JSONEq(t, `{"type": "Queries", "statements": [{"type": "DropTableQuery", "table": "t"}]}`, out)

	_, _, err = runRoot(t, "--max-depth", "1", "parse", "select f(a) from t;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum depth of 1")
}

func TestRoot_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: yaml\n"), 0o600))

	out, _, err := runRoot(t, "--config", path, "fmt", "drop table t;")
	require.NoError(t, err)
	assert.YAMLEq(t, "statements:\n  - DROP TABLE t;\n", out)
}

func TestRoot_InvalidConfig(t *testing.T) {
	_, _, err := runRoot(t, "-o", "xml", "parse", "drop table t;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid output "xml"`)
}

func TestRoot_VerboseLogsToStderr(t *testing.T) {
	_, errOut, err := runRoot(t, "-v", "parse", "drop table t;")
	require.NoError(t, err)
	assert.Contains(t, errOut, "parsed statement")
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := runRoot(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "justdb")
}

func TestRoot_Version(t *testing.T) {
	out, _, err := runRoot(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "justdb v"+Version)
	assert.Contains(t, out, "commit "+GitCommit+", built "+BuildDate)
}
