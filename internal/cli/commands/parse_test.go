package commands

import (
	"errors"
	"testing"

	clitest "github.com/soveckyFonarik/just-db/internal/cli/testutil"
	"github.com/soveckyFonarik/just-db/internal/config"
	"github.com/soveckyFonarik/just-db/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Text(t *testing.T) {
	out, _, err := execute(t, NewParseCommand(), nil, "", "select a, count(b) from t where a >= 1;")
	require.NoError(t, err)

	for _, want := range []string{
		"Statement 1: SELECT",
		"SelectQuery",
		"select: SelectClause",
		"ColumnIdent",
		`name: "a"`,
		"FuncCall",
		`name: "count"`,
		"TableRef",
		`op: ">="`,
		"value: 1",
	} {
		assert.Contains(t, out, want)
	}
	clitest.AssertNoANSI(t, out)
}

func TestParse_Empty(t *testing.T) {
	out, _, err := execute(t, NewParseCommand(), nil, "  -- nothing\n")
	require.NoError(t, err)
	assert.Equal(t, "No statements\n", out)
}

func TestParse_JSON(t *testing.T) {
	out, _, err := execute(t, NewParseCommand(), configWithOutput(config.OutputJSON), "", "drop table t; delete from u where id = 'x';")
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"type": "Queries",
		"statements": [
			{"type": "DropTableQuery", "table": "t"},
			{"type": "DeleteQuery", "table": "u", "where": {
				"type": "WhereClause",
				"conditions": [{
					"type": "Condition",
					"left": {"type": "ColumnIdent", "name": "id"},
					"op": "=",
					"right": {"type": "StringLiteral", "value": "x"}
				}]
			}}
		]
	}`, out)
}

func TestParse_YAML(t *testing.T) {
	out, _, err := execute(t, NewParseCommand(), configWithOutput(config.OutputYAML), "", "alter table t drop column c;")
	require.NoError(t, err)

	assert.YAMLEq(t, `
type: Queries
statements:
  - type: AlterTableQuery
    table: t
    action:
      type: DropColumn
      name: c
`, out)
}

func TestParse_FromFileAndStdin(t *testing.T) {
	files := clitest.WriteSQLFiles(t, map[string]string{"a.sql": "drop table from_file;"}, "a.sql")

	out, _, err := execute(t, NewParseCommand(), nil, "", "--file", files[0])
	require.NoError(t, err)
	assert.Contains(t, out, `table: "from_file"`)

	out, _, err = execute(t, NewParseCommand(), nil, "drop table from_stdin;")
	require.NoError(t, err)
	assert.Contains(t, out, `table: "from_stdin"`)
}

func TestParse_Error(t *testing.T) {
	_, _, err := execute(t, NewParseCommand(), nil, "", "select a b from t;")
	require.Error(t, err)

	var pe *parser.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, pe.Pos.Line)
	assert.Equal(t, 10, pe.Pos.Column)
}

func TestParse_MaxDepthFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.MaxDepth = 2

	_, _, err := execute(t, NewParseCommand(), cfg, "", "select f(g(h(a))) from t;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum depth of 2")
}
