// Package ast defines the query tree produced by the parser.
//
// The tree is plain data: every node is owned by exactly one parent, every
// slice keeps source order, and nodes carry no source positions so that two
// parses of differently formatted but equivalent text compare equal.
//
// The closed sets (Query, ColumnExpr, Literal, AlterAction) are expressed as
// interfaces with unexported marker methods; only this package can add
// variants.
package ast

import "reflect"

// Node is implemented by every node in the tree.
type Node interface {
	node()
}

// Query is one top-level statement.
type Query interface {
	Node
	queryNode()
}

// ColumnExpr is a column identifier, a literal, a function call or a
// wildcard. Function arguments are themselves ColumnExprs.
type ColumnExpr interface {
	Node
	columnExprNode()
}

// Literal is a typed constant value.
type Literal interface {
	ColumnExpr
	literalNode()
}

// Queries is the result of parsing one input buffer.
type Queries struct {
	Statements []Query
}

func (*Queries) node() {}

// Len returns the number of statements.
func (q *Queries) Len() int {
	if q == nil {
		return 0
	}
	return len(q.Statements)
}

// Equal reports whether two nodes are structurally equal.
func Equal(a, b Node) bool {
	return reflect.DeepEqual(a, b)
}

// Kind returns the statement keyword of q, such as "SELECT" or "ALTER TABLE".
func Kind(q Query) string {
	switch q.(type) {
	case *SelectQuery:
		return "SELECT"
	case *InsertQuery:
		return "INSERT"
	case *UpdateQuery:
		return "UPDATE"
	case *DeleteQuery:
		return "DELETE"
	case *CreateTableQuery:
		return "CREATE TABLE"
	case *DropTableQuery:
		return "DROP TABLE"
	case *AlterTableQuery:
		return "ALTER TABLE"
	default:
		return "UNKNOWN"
	}
}
