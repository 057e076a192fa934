package format_test

import (
	"testing"

	"github.com/soveckyFonarik/just-db/pkg/ast"
	"github.com/soveckyFonarik/just-db/pkg/format"
	"github.com/soveckyFonarik/just-db/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formatSQL(t *testing.T, input string, opts ...format.Option) string {
	t.Helper()
	queries, err := parser.Parse(input)
	require.NoError(t, err)
	return format.Queries(queries, opts...)
}

func TestFormat_Compact(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple select",
			input:    "select a,b from t;",
			expected: "SELECT a, b FROM t;\n",
		},
		{
			name:     "select clauses",
			input:    "select distinct a, count(b) from s.t x left outer join u on x.id = u.id where x = 1 and y <> 'z' group by a having count(b) > 2 order by a desc, b limit 5 offset 10;",
			expected: "SELECT DISTINCT a, count(b) FROM s.t AS x LEFT JOIN u ON x.id = u.id WHERE x = 1 AND y <> 'z' GROUP BY a HAVING count(b) > 2 ORDER BY a DESC, b LIMIT 5 OFFSET 10;\n",
		},
		{
			name:     "star and table star",
			input:    "select *, t.* from t cross join u;",
			expected: "SELECT *, t.* FROM t CROSS JOIN u;\n",
		},
		{
			name:     "insert",
			input:    "insert into t (a, b, c) values (-1, 'it''s', null);",
			expected: "INSERT INTO t (a, b, c) VALUES (-1, 'it''s', NULL);\n",
		},
		{
			name:     "update",
			input:    "update t set a = 1, b = c where d >= 2.5;",
			expected: "UPDATE t SET a = 1, b = c WHERE d >= 2.5;\n",
		},
		{
			name:     "delete",
			input:    "delete from t;",
			expected: "DELETE FROM t;\n",
		},
		{
			name:     "create table",
			input:    "create table t (id int not null primary key, name varchar(20) default 'x', constraint fk foreign key (a) references u (b));",
			expected: "CREATE TABLE t (id INT NOT NULL PRIMARY KEY, name VARCHAR(20) DEFAULT 'x', CONSTRAINT fk FOREIGN KEY (a) REFERENCES u (b));\n",
		},
		{
			name:     "alter table",
			input:    "alter table t add c text; alter table t drop constraint pk;",
			expected: "ALTER TABLE t ADD COLUMN c TEXT;\nALTER TABLE t DROP CONSTRAINT pk;\n",
		},
		{
			name:     "quoted identifiers",
			input:    `select "my col", "select" from "T";`,
			expected: `SELECT "my col", "select" FROM T;` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatSQL(t, tt.input))
		})
	}
}

func TestFormat_Pretty(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:  "select with where",
			input: "select a, count(b) from t where x = 1 and y <> 'z' order by a desc limit 5;",
			expected: `SELECT
  a,
  count(b)
FROM t
WHERE
  x = 1
  AND y <> 'z'
ORDER BY
  a DESC
LIMIT 5;
`,
		},
		{
			name:  "create table",
			input: "create table t (id int, name varchar(20), primary key (id));",
			expected: `CREATE TABLE t (
  id INT,
  name VARCHAR(20),
  PRIMARY KEY (id)
);
`,
		},
		{
			name:  "multiple statements",
			input: "drop table a; update t set a = 1;",
			expected: `DROP TABLE a;

UPDATE t
SET
  a = 1;
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatSQL(t, tt.input, format.Pretty()))
		})
	}
}

func TestFormat_Expr(t *testing.T) {
	assert.Equal(t, "f(a, 1.0, 'x')", format.Expr(&ast.FuncCall{
		Name: "f",
		Args: []ast.ColumnExpr{&ast.ColumnIdent{Name: "a"}, &ast.FloatLiteral{Value: 1}, &ast.StringLiteral{Value: "x"}},
	}))
	assert.Equal(t, `"t x".*`, format.Expr(&ast.Star{Table: "t x"}))
	assert.Equal(t, `"COUNT"(a)`, format.Expr(&ast.FuncCall{Name: "COUNT", Args: []ast.ColumnExpr{&ast.ColumnIdent{Name: "a"}}}))
	assert.Equal(t, "lower(a)", format.Expr(&ast.FuncCall{Name: "lower", Args: []ast.ColumnExpr{&ast.ColumnIdent{Name: "a"}}}))
	assert.Equal(t, "1e+21", format.Expr(&ast.FloatLiteral{Value: 1e21}))
}

// roundTripCases are trees built by hand, not by the parser.
func roundTripCases() map[string]ast.Query {
	offset := int64(3)
	return map[string]ast.Query{
		"select": &ast.SelectQuery{
			Select: ast.SelectClause{Distinct: true, Columns: []ast.ColumnExpr{
				&ast.ColumnIdent{Table: "o", Name: "id"},
				&ast.FuncCall{Name: "max", Args: []ast.ColumnExpr{&ast.FuncCall{Name: "abs", Args: []ast.ColumnExpr{&ast.ColumnIdent{Name: "amount"}}}}},
				&ast.Star{},
				&ast.IntegerLiteral{Value: -42},
				&ast.FloatLiteral{Value: 0.25},
				&ast.StringLiteral{Value: "don't"},
				&ast.BoolLiteral{Value: true},
				&ast.NullLiteral{},
			}},
			From: ast.FromClause{
				Tables: []ast.TableRef{{Schema: "shop", Name: "orders", Alias: "o"}},
				Joins: []ast.Join{
					{Kind: ast.JoinFull, Table: ast.TableRef{Name: "users"}, On: []ast.Condition{
						{Left: &ast.ColumnIdent{Table: "o", Name: "uid"}, Op: ast.OpEqual, Right: &ast.ColumnIdent{Table: "users", Name: "id"}},
					}},
					{Kind: ast.JoinCross, Table: ast.TableRef{Name: "dates"}},
				},
			},
			Where: &ast.WhereClause{Conditions: []ast.Condition{
				{Left: &ast.ColumnIdent{Name: "a"}, Op: ast.OpLessEqual, Right: &ast.IntegerLiteral{Value: 1}},
				{Left: &ast.ColumnIdent{Name: "b"}, Op: ast.OpNotEqual, Right: &ast.NullLiteral{}},
			}},
			GroupBy: &ast.GroupByClause{Columns: []ast.ColumnExpr{&ast.ColumnIdent{Table: "o", Name: "id"}}},
			Having: &ast.HavingClause{Conditions: []ast.Condition{
				{Left: &ast.FuncCall{Name: "count", Args: []ast.ColumnExpr{&ast.Star{}}}, Op: ast.OpGreater, Right: &ast.IntegerLiteral{Value: 1}},
			}},
			OrderBy: &ast.OrderByClause{Items: []ast.OrderItem{{Expr: &ast.ColumnIdent{Name: "a"}, Desc: true}}},
			Limit:   &ast.LimitClause{Count: 7, Offset: &offset},
		},
		"insert": &ast.InsertQuery{
			Table:   "weird table",
			Columns: []string{"from", "b"},
			Values:  []ast.Literal{&ast.FloatLiteral{Value: -3}, &ast.BoolLiteral{Value: false}},
		},
		"update": &ast.UpdateQuery{
			Table: "t",
			Set: ast.SetClause{Assignments: []ast.Assignment{
				{Column: "a", Value: &ast.FuncCall{Name: "now"}},
			}},
			Where: &ast.WhereClause{Conditions: []ast.Condition{
				{Left: &ast.ColumnIdent{Name: "id"}, Op: ast.OpLess, Right: &ast.IntegerLiteral{Value: 10}},
			}},
		},
		"delete": &ast.DeleteQuery{Table: "t"},
		"create": &ast.CreateTableQuery{
			Table: "t",
			Columns: []ast.ColumnDef{
				{Name: "id", Type: ast.DataType{Name: "BIGINT"}, NotNull: true, PrimaryKey: true},
				{Name: "price", Type: ast.DataType{Name: "NUMERIC", Params: []int{12, 4}}, Unique: true, Default: &ast.IntegerLiteral{Value: 0}},
			},
			Constraints: []ast.TableConstraint{
				{Name: "u1", Kind: ast.ConstraintUnique, Columns: []string{"price"}},
				{Kind: ast.ConstraintForeignKey, Columns: []string{"id"}, RefTable: "other", RefColumns: []string{"oid"}},
			},
		},
		"mixed case calls": &ast.SelectQuery{
			Select: ast.SelectClause{Columns: []ast.ColumnExpr{
				&ast.FuncCall{Name: "COUNT", Args: []ast.ColumnExpr{&ast.ColumnIdent{Name: "a"}}},
				&ast.FuncCall{Name: "MyFunc"},
				&ast.FuncCall{Name: "date", Args: []ast.ColumnExpr{&ast.ColumnIdent{Name: "text"}}},
			}},
			From: ast.FromClause{Tables: []ast.TableRef{{Name: "int"}}},
		},
		"drop":              &ast.DropTableQuery{Table: "Select"},
		"alter add":         &ast.AlterTableQuery{Table: "t", Action: &ast.AddColumn{Column: ast.ColumnDef{Name: "c", Type: ast.DataType{Name: "DATE"}}}},
		"alter constraint":  &ast.AlterTableQuery{Table: "t", Action: &ast.AddConstraint{Constraint: ast.TableConstraint{Kind: ast.ConstraintPrimaryKey, Columns: []string{"a", "b"}}}},
		"alter drop column": &ast.AlterTableQuery{Table: "t", Action: &ast.DropColumn{Name: "c"}},
		"alter drop constr": &ast.AlterTableQuery{Table: "t", Action: &ast.DropConstraint{Name: "k"}},
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	for name, q := range roundTripCases() {
		for _, pretty := range []bool{false, true} {
			var opts []format.Option
			if pretty {
				opts = append(opts, format.Pretty())
			}
			t.Run(name, func(t *testing.T) {
				text := format.Query(q, opts...)
				got, err := parser.Parse(text)
				require.NoError(t, err, text)
				require.Len(t, got.Statements, 1)
				assert.True(t, ast.Equal(q, got.Statements[0]), "round trip of %q:\nwant %#v\ngot  %#v", text, q, got.Statements[0])
			})
		}
	}
}

func TestFormat_RoundTripBatch(t *testing.T) {
	var all ast.Queries
	for _, q := range roundTripCases() {
		all.Statements = append(all.Statements, q)
	}

	got, err := parser.Parse(format.Queries(&all, format.Pretty()))
	require.NoError(t, err)
	assert.Equal(t, &all, got)
}
