// Package testutil holds helpers for testing justdb commands.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/soveckyFonarik/just-db/internal/cli/output"
	"github.com/soveckyFonarik/just-db/internal/config"
	logtest "github.com/soveckyFonarik/just-db/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// WriteSQLFiles writes files into a fresh temp dir and returns their paths
// in the order of names.
func WriteSQLFiles(t *testing.T, files map[string]string, names ...string) []string {
	t.Helper()

	dir := t.TempDir()
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(paths[i], []byte(files[name]), 0o644))
	}
	return paths
}

// CommandContext builds the context the root command would hand to a
// subcommand: cfg (defaults when nil) plus a logger writing to t.
func CommandContext(t *testing.T, cfg *config.Config) context.Context {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	ctx := context.WithValue(t.Context(), config.ConfigKey(), cfg)
	return context.WithValue(ctx, config.LoggerKey(), logtest.NewTestLogger(t))
}

// TestRenderer is a Renderer writing into buffers.
type TestRenderer struct {
	*output.Renderer
	out, errOut bytes.Buffer
}

// NewTestRenderer returns a TestRenderer in mode, behaving as if attached
// to a terminal when isTTY is set.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	tr := new(TestRenderer)
	tr.Renderer = output.NewRendererWithTTY(&tr.out, &tr.errOut, isTTY, mode)
	return tr
}

// NewTestRendererText is a plain text TestRenderer.
func NewTestRendererText() *TestRenderer { return NewTestRenderer(output.ModeText, false) }

// NewTestRendererJSON is a JSON TestRenderer.
func NewTestRendererJSON() *TestRenderer { return NewTestRenderer(output.ModeJSON, false) }

// Output is everything written to stdout so far.
func (tr *TestRenderer) Output() string { return tr.out.String() }

// ErrorOutput is everything written to stderr so far.
func (tr *TestRenderer) ErrorOutput() string { return tr.errOut.String() }

// Reset drops captured output.
func (tr *TestRenderer) Reset() {
	tr.out.Reset()
	tr.errOut.Reset()
}

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI fails t if s carries terminal escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	assert.False(t, ansiEscape.MatchString(s), "unexpected ANSI escape codes in %q", s)
}
