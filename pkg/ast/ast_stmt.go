package ast

// ---------- SELECT ----------

// SelectQuery is
//
//	SELECT [DISTINCT] columns FROM tables [joins]
//	[WHERE ...] [GROUP BY ...] [HAVING ...] [ORDER BY ...] [LIMIT ...]
type SelectQuery struct {
	Select  SelectClause
	From    FromClause
	Where   *WhereClause
	GroupBy *GroupByClause
	Having  *HavingClause
	OrderBy *OrderByClause
	Limit   *LimitClause
}

func (*SelectQuery) node() {}
func (*SelectQuery) queryNode() {}

// SelectClause is the projection list.
type SelectClause struct {
	Distinct bool
	Columns  []ColumnExpr
}

// FromClause lists the source tables and the joins that follow them.
type FromClause struct {
	Tables []TableRef
	Joins  []Join
}

// TableRef names a table, optionally schema-qualified and aliased.
type TableRef struct {
	Schema string
	Name   string
	Alias  string
}

// JoinKind is the join flavor.
type JoinKind string

// Join kinds.
const (
	JoinInner JoinKind = "INNER"
	JoinLeft  JoinKind = "LEFT"
	JoinRight JoinKind = "RIGHT"
	JoinFull  JoinKind = "FULL"
	JoinCross JoinKind = "CROSS"
)

// Join is one JOIN ... ON ... item. On is empty for CROSS joins.
type Join struct {
	Kind  JoinKind
	Table TableRef
	On    []Condition
}

// WhereClause holds conditions joined by AND.
type WhereClause struct {
	Conditions []Condition
}

// HavingClause holds conditions joined by AND.
type HavingClause struct {
	Conditions []Condition
}

// GroupByClause lists grouping expressions.
type GroupByClause struct {
	Columns []ColumnExpr
}

// OrderByClause lists sort keys.
type OrderByClause struct {
	Items []OrderItem
}

// OrderItem is one sort key.
type OrderItem struct {
	Expr ColumnExpr
	Desc bool
}

// LimitClause is LIMIT n [OFFSET m].
type LimitClause struct {
	Count  int64
	Offset *int64
}

// ---------- DML ----------

// InsertQuery is INSERT INTO table (columns) VALUES (values).
// Columns and Values always have the same length.
type InsertQuery struct {
	Table   string
	Columns []string
	Values  []Literal
}

func (*InsertQuery) node() {}
func (*InsertQuery) queryNode() {}

// DeleteQuery is DELETE FROM table [WHERE ...].
type DeleteQuery struct {
	Table string
	Where *WhereClause
}

func (*DeleteQuery) node() {}
func (*DeleteQuery) queryNode() {}

// UpdateQuery is UPDATE table SET assignments [WHERE ...].
type UpdateQuery struct {
	Table string
	Set   SetClause
	Where *WhereClause
}

func (*UpdateQuery) node() {}
func (*UpdateQuery) queryNode() {}

// SetClause is the assignment list of an UPDATE.
type SetClause struct {
	Assignments []Assignment
}

// Assignment is column = value.
type Assignment struct {
	Column string
	Value  ColumnExpr
}
