package monkey

// Inspect traverses the tree rooted at node in depth-first order, calling f
// for each node before its children. If f returns false the children of that
// node are skipped. Nil nodes are not visited.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || isNilNode(node) {
		return
	}
	if !f(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, stmt := range n.Statements {
			Inspect(stmt, f)
		}
	case *LetStatement:
		Inspect(n.Name, f)
		Inspect(n.Value, f)
	case *ReturnStatement:
		if n.Value != nil {
			Inspect(n.Value, f)
		}
	case *ExpressionStatement:
		Inspect(n.Expr, f)
	case *BlockStatement:
		for _, stmt := range n.Statements {
			Inspect(stmt, f)
		}
	case *PrefixExpression:
		Inspect(n.Right, f)
	case *InfixExpression:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *IfExpression:
		Inspect(n.Condition, f)
		Inspect(n.Consequence, f)
		if n.Alternative != nil {
			Inspect(n.Alternative, f)
		}
	case *FunctionLiteral:
		for _, param := range n.Params {
			Inspect(param, f)
		}
		Inspect(n.Body, f)
	case *CallExpression:
		Inspect(n.Function, f)
		for _, arg := range n.Args {
			Inspect(arg, f)
		}
	}
}

// isNilNode catches typed nil pointers stored in a Node interface.
func isNilNode(node Node) bool {
	switch n := node.(type) {
	case *Program:
		return n == nil
	case *BlockStatement:
		return n == nil
	case *Identifier:
		return n == nil
	}
	return false
}
