package ast

// Walk traverses the tree rooted at node depth-first, in source order, and
// calls fn for each node. If fn returns false, the children of that node are
// skipped.
func Walk(node Node, fn func(node Node) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	walkNode(node, fn)
}

func walkNode(node Node, fn func(node Node) bool) {
	switch n := node.(type) {
	case *Queries:
		for _, stmt := range n.Statements {
			Walk(stmt, fn)
		}

	case *SelectQuery:
		walkExprs(n.Select.Columns, fn)
		for i := range n.From.Joins {
			walkConditions(n.From.Joins[i].On, fn)
		}
		if n.Where != nil {
			walkConditions(n.Where.Conditions, fn)
		}
		if n.GroupBy != nil {
			walkExprs(n.GroupBy.Columns, fn)
		}
		if n.Having != nil {
			walkConditions(n.Having.Conditions, fn)
		}
		if n.OrderBy != nil {
			for _, item := range n.OrderBy.Items {
				Walk(item.Expr, fn)
			}
		}

	case *InsertQuery:
		for _, v := range n.Values {
			Walk(v, fn)
		}

	case *UpdateQuery:
		for _, a := range n.Set.Assignments {
			Walk(a.Value, fn)
		}
		if n.Where != nil {
			walkConditions(n.Where.Conditions, fn)
		}

	case *DeleteQuery:
		if n.Where != nil {
			walkConditions(n.Where.Conditions, fn)
		}

	case *CreateTableQuery:
		for _, col := range n.Columns {
			if col.Default != nil {
				Walk(col.Default, fn)
			}
		}

	case *AlterTableQuery:
		Walk(n.Action, fn)

	case *AddColumn:
		if n.Column.Default != nil {
			Walk(n.Column.Default, fn)
		}

	case *Condition:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *FuncCall:
		walkExprs(n.Args, fn)

	case *ColumnIdent, *Star, *IntegerLiteral, *FloatLiteral, *StringLiteral,
		*BoolLiteral, *NullLiteral, *DropTableQuery, *DropColumn, *AddConstraint,
		*DropConstraint:
		// Leaf nodes
	}
}

func walkExprs(exprs []ColumnExpr, fn func(node Node) bool) {
	for _, e := range exprs {
		Walk(e, fn)
	}
}

func walkConditions(conds []Condition, fn func(node Node) bool) {
	for i := range conds {
		Walk(&conds[i], fn)
	}
}

// ColumnRefs returns every column identifier under node, in source order.
func ColumnRefs(node Node) []*ColumnIdent {
	var refs []*ColumnIdent
	Walk(node, func(n Node) bool {
		if ref, ok := n.(*ColumnIdent); ok {
			refs = append(refs, ref)
		}
		return true
	})
	return refs
}

// TableNames returns the names of the tables a statement reads or writes,
// in source order, without duplicates.
func TableNames(q Query) []string {
	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	switch n := q.(type) {
	case *SelectQuery:
		for _, t := range n.From.Tables {
			add(t.Name)
		}
		for _, j := range n.From.Joins {
			add(j.Table.Name)
		}
	case *InsertQuery:
		add(n.Table)
	case *UpdateQuery:
		add(n.Table)
	case *DeleteQuery:
		add(n.Table)
	case *CreateTableQuery:
		add(n.Table)
		for _, c := range n.Constraints {
			add(c.RefTable)
		}
	case *DropTableQuery:
		add(n.Table)
	case *AlterTableQuery:
		add(n.Table)
		if ac, ok := n.Action.(*AddConstraint); ok {
			add(ac.Constraint.RefTable)
		}
	}
	return names
}
