package monkey

import (
	"strings"
	"testing"
)

func TestNodePositions(t *testing.T) {
	program := parseOK(t, "let a = 1;\nif (a) { a + 2 }")
	let := program.Statements[0].(*LetStatement)
	if let.Pos() != (Position{Line: 1, Column: 1}) || let.Name.Pos() != (Position{Line: 1, Column: 5}) {
		t.Fatalf("unexpected let positions %v %v", let.Pos(), let.Name.Pos())
	}
	ifExpr := program.Statements[1].(*ExpressionStatement).Expr.(*IfExpression)
	if ifExpr.Pos() != (Position{Line: 2, Column: 1}) {
		t.Fatalf("unexpected if position %v", ifExpr.Pos())
	}
	infix := ifExpr.Consequence.Statements[0].(*ExpressionStatement).Expr.(*InfixExpression)
	if infix.Pos() != (Position{Line: 2, Column: 12}) {
		t.Fatalf("infix position should be the operator, got %v", infix.Pos())
	}
	if program.Pos() != let.Pos() {
		t.Fatalf("program position should be its first statement")
	}
	if (&Program{}).Pos() != (Position{}) {
		t.Fatalf("empty program should have zero position")
	}
}

func TestProgramKeepsSource(t *testing.T) {
	source := "let x = 1;"
	if got := parseOK(t, source).Source(); got != source {
		t.Fatalf("unexpected source %q", got)
	}
}

func TestInspectVisitsEveryNode(t *testing.T) {
	program := parseOK(t, "let add = fn(a, b) { return a + b; }; if (add(1, 2) > 2) { !true } else { -x }")

	var names []string
	counts := make(map[string]int)
	Inspect(program, func(n Node) bool {
		switch node := n.(type) {
		case *Identifier:
			names = append(names, node.Name)
		case *CallExpression:
			counts["call"]++
		case *ReturnStatement:
			counts["return"]++
		case *PrefixExpression:
			counts["prefix"]++
		case *BlockStatement:
			counts["block"]++
		}
		return true
	})

	if got := strings.Join(names, ","); got != "add,a,b,a,b,add,x" {
		t.Fatalf("unexpected identifier order %q", got)
	}
	if counts["call"] != 1 || counts["return"] != 1 || counts["prefix"] != 2 || counts["block"] != 3 {
		t.Fatalf("unexpected node counts %v", counts)
	}
}

func TestInspectSkipsChildren(t *testing.T) {
	program := parseOK(t, "let f = fn(x) { y }; z")
	var names []string
	Inspect(program, func(n Node) bool {
		if _, ok := n.(*FunctionLiteral); ok {
			return false
		}
		if id, ok := n.(*Identifier); ok {
			names = append(names, id.Name)
		}
		return true
	})
	if got := strings.Join(names, ","); got != "f,z" {
		t.Fatalf("unexpected identifiers %q", got)
	}
}
