package commands

import (
	"testing"

	clitest "github.com/soveckyFonarik/just-db/internal/cli/testutil"
	"github.com/soveckyFonarik/just-db/pkg/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	offset := int64(0)
	got := describe(&ast.SelectQuery{
		Select: ast.SelectClause{Columns: []ast.ColumnExpr{&ast.Star{}}},
		From:   ast.FromClause{Tables: []ast.TableRef{{Name: "t"}}},
		Limit:  &ast.LimitClause{Count: 5, Offset: &offset},
	})

	root, ok := got.(*treeNode)
	require.True(t, ok)
	assert.Equal(t, "SelectQuery", root.Type)

	var names []string
	for _, f := range root.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"select", "from", "limit"}, names, "nil clauses are dropped")

	limit := root.Fields[2].Value.(*treeNode)
	assert.Equal(t, []treeField{{Name: "count", Value: int64(5)}, {Name: "offset", Value: int64(0)}}, limit.Fields)
}

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "group_by", snakeCase("GroupBy"))
	assert.Equal(t, "ref_columns", snakeCase("RefColumns"))
	assert.Equal(t, "table", snakeCase("Table"))
}

func TestRenderStatement(t *testing.T) {
	tr := clitest.NewTestRendererText()
	renderStatement(tr.Renderer, 3, &ast.CreateTableQuery{
		Table: "t",
		Columns: []ast.ColumnDef{
			{Name: "id", Type: ast.DataType{Name: "VARCHAR", Params: []int{10}}, NotNull: true},
		},
	})

	out := tr.Output()
	assert.Contains(t, out, "Statement 3: CREATE TABLE")
	assert.Contains(t, out, "CreateTableQuery")
	assert.Contains(t, out, `table: "t"`)
	assert.Contains(t, out, "type: DataType")
	assert.Contains(t, out, "not_null: true")
	assert.Contains(t, out, "10")
	clitest.AssertNoANSI(t, out)
}

func TestTreeNode_MarshalJSON(t *testing.T) {
	n := describe(&ast.Condition{Left: &ast.ColumnIdent{Name: "a"}, Op: ast.OpNotEqual, Right: &ast.NullLiteral{}})
	tr := clitest.NewTestRendererJSON()
	require.NoError(t, tr.Encode(n))

	assert.JSONEq(t, `{
		"type": "Condition",
		"left": {"type": "ColumnIdent", "name": "a"},
		"op": "<>",
		"right": {"type": "NullLiteral"}
	}`, tr.Output())
}
