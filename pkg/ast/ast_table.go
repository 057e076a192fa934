package ast

// ---------- DDL ----------

// CreateTableQuery is CREATE TABLE name (column definitions, constraints).
type CreateTableQuery struct {
	Table       string
	Columns     []ColumnDef
	Constraints []TableConstraint
}

func (*CreateTableQuery) node() {}
func (*CreateTableQuery) queryNode() {}

// DropTableQuery is DROP TABLE name.
type DropTableQuery struct {
	Table string
}

func (*DropTableQuery) node() {}
func (*DropTableQuery) queryNode() {}

// AlterTableQuery is ALTER TABLE name action.
type AlterTableQuery struct {
	Table  string
	Action AlterAction
}

func (*AlterTableQuery) node() {}
func (*AlterTableQuery) queryNode() {}

// ColumnDef defines one column of a table.
type ColumnDef struct {
	Name       string
	Type       DataType
	NotNull    bool
	PrimaryKey bool
	Unique     bool
	Default    Literal // nil when absent
}

// DataType is a column type with optional size parameters,
// e.g. VARCHAR(255) or DECIMAL(10, 2).
type DataType struct {
	Name   string // upper case keyword spelling
	Params []int
}

// ConstraintKind is the kind of a table-level constraint.
type ConstraintKind string

// Constraint kinds.
const (
	ConstraintPrimaryKey ConstraintKind = "PRIMARY KEY"
	ConstraintUnique     ConstraintKind = "UNIQUE"
	ConstraintForeignKey ConstraintKind = "FOREIGN KEY"
)

// TableConstraint is a table-level constraint. RefTable and RefColumns are
// set only for foreign keys.
type TableConstraint struct {
	Name       string
	Kind       ConstraintKind
	Columns    []string
	RefTable   string
	RefColumns []string
}

// AlterAction is the change requested by ALTER TABLE.
type AlterAction interface {
	Node
	alterActionNode()
}

// AddColumn is ADD [COLUMN] definition.
type AddColumn struct {
	Column ColumnDef
}

// DropColumn is DROP [COLUMN] name.
type DropColumn struct {
	Name string
}

// AddConstraint is ADD [CONSTRAINT name] constraint.
type AddConstraint struct {
	Constraint TableConstraint
}

// DropConstraint is DROP CONSTRAINT name.
type DropConstraint struct {
	Name string
}

func (*AddColumn) node() {}
func (*AddColumn) alterActionNode() {}
func (*DropColumn) node() {}
func (*DropColumn) alterActionNode() {}
func (*AddConstraint) node() {}
func (*AddConstraint) alterActionNode() {}
func (*DropConstraint) node() {}
func (*DropConstraint) alterActionNode() {}
