package ast

// ---------- Column Expressions ----------

// ColumnIdent is a column reference, optionally qualified by a table name.
type ColumnIdent struct {
	Table string // empty when unqualified
	Name  string
}

func (*ColumnIdent) node() {}
func (*ColumnIdent) columnExprNode() {}

// FuncCall is a function application such as count(col1) or lower(name).
type FuncCall struct {
	Name string
	Args []ColumnExpr
}

func (*FuncCall) node() {}
func (*FuncCall) columnExprNode() {}

// Star is the * wildcard, either bare, table-qualified (t.*) or as the
// argument of count(*).
type Star struct {
	Table string
}

func (*Star) node() {}
func (*Star) columnExprNode() {}

// ---------- Literals ----------

// IntegerLiteral is a whole number.
type IntegerLiteral struct {
	Value int64
}

// FloatLiteral is a number with a fraction or exponent.
type FloatLiteral struct {
	Value float64
}

// StringLiteral is a single-quoted string with escapes resolved.
type StringLiteral struct {
	Value string
}

// BoolLiteral is TRUE or FALSE.
type BoolLiteral struct {
	Value bool
}

// NullLiteral is NULL.
type NullLiteral struct{}

func (*IntegerLiteral) node() {}
func (*IntegerLiteral) columnExprNode() {}
func (*IntegerLiteral) literalNode() {}
func (*FloatLiteral) node() {}
func (*FloatLiteral) columnExprNode() {}
func (*FloatLiteral) literalNode() {}
func (*StringLiteral) node() {}
func (*StringLiteral) columnExprNode() {}
func (*StringLiteral) literalNode() {}
func (*BoolLiteral) node() {}
func (*BoolLiteral) columnExprNode() {}
func (*BoolLiteral) literalNode() {}
func (*NullLiteral) node() {}
func (*NullLiteral) columnExprNode() {}
func (*NullLiteral) literalNode() {}

// ---------- Conditions ----------

// Operator is a binary comparison operator.
type Operator int

// Comparison operators.
const (
	OpEqual Operator = iota
	OpNotEqual
	OpLess
	OpGreater
	OpLessEqual
	OpGreaterEqual
)

var operatorSymbols = [...]string{
	OpEqual:        "=",
	OpNotEqual:     "<>",
	OpLess:         "<",
	OpGreater:      ">",
	OpLessEqual:    "<=",
	OpGreaterEqual: ">=",
}

// String returns the SQL spelling of the operator.
func (o Operator) String() string {
	if int(o) < len(operatorSymbols) {
		return operatorSymbols[o]
	}
	return "?"
}

// Condition is a flat binary comparison: left op right.
type Condition struct {
	Left  ColumnExpr
	Op    Operator
	Right ColumnExpr
}

func (*Condition) node() {}
