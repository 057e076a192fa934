package commands

import (
	"testing"

	"github.com/soveckyFonarik/just-db/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_Compact(t *testing.T) {
	out, _, err := execute(t, NewFormatCommand(), nil, "", "select a,b from t where x=1; drop table u;")
	require.NoError(t, err)
	assert.Equal(t, "SELECT a, b FROM t WHERE x = 1;\nDROP TABLE u;\n", out)
}

func TestFormat_Pretty(t *testing.T) {
	want := "SELECT\n  a,\n  b\nFROM t;\n"

	out, _, err := execute(t, NewFormatCommand(), nil, "", "--pretty", "select a, b from t;")
	require.NoError(t, err)
	assert.Equal(t, want, out)

	cfg := config.Default()
	cfg.Pretty = true
	out, _, err = execute(t, NewFormatCommand(), cfg, "", "select a, b from t;")
	require.NoError(t, err)
	assert.Equal(t, want, out, "pretty from config")
}

func TestFormat_JSON(t *testing.T) {
	out, _, err := execute(t, NewFormatCommand(), configWithOutput(config.OutputJSON), "", "delete from t; drop table u;")
	require.NoError(t, err)
	assert.JSONEq(t, `{"statements": ["DELETE FROM t;", "DROP TABLE u;"]}`, out)
}

func TestFormat_Error(t *testing.T) {
	_, _, err := execute(t, NewFormatCommand(), nil, "", "select a from t")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `expected ";", found end of input`)
}
