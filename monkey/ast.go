package monkey

import (
	"strconv"
	"strings"
)

// Node is implemented by every statement and expression in a parsed program.
// String renders the node in a canonical, fully parenthesised form.
type Node interface {
	Pos() Position
	String() string
}

type Statement interface {
	Node
	stmtNode()
}

type Expression interface {
	Node
	exprNode()
}

// Program is the root of a parsed source unit.
type Program struct {
	Statements []Statement
	source     string
}

func (p *Program) Pos() Position {
	if len(p.Statements) == 0 {
		return Position{}
	}
	return p.Statements[0].Pos()
}

func (p *Program) String() string {
	var b strings.Builder
	for _, stmt := range p.Statements {
		b.WriteString(stmt.String())
	}
	return b.String()
}

// Source returns the text the program was parsed from.
func (p *Program) Source() string { return p.source }

type LetStatement struct {
	Name     *Identifier
	Value    Expression
	position Position
}

func (s *LetStatement) stmtNode()     {}
func (s *LetStatement) Pos() Position { return s.position }
func (s *LetStatement) String() string {
	return "let " + s.Name.String() + " = " + s.Value.String() + ";"
}

// ReturnStatement carries an optional value. A bare `return;` yields null.
type ReturnStatement struct {
	Value    Expression
	position Position
}

func (s *ReturnStatement) stmtNode()     {}
func (s *ReturnStatement) Pos() Position { return s.position }
func (s *ReturnStatement) String() string {
	if s.Value == nil {
		return "return;"
	}
	return "return " + s.Value.String() + ";"
}

type ExpressionStatement struct {
	Expr     Expression
	position Position
}

func (s *ExpressionStatement) stmtNode()      {}
func (s *ExpressionStatement) Pos() Position  { return s.position }
func (s *ExpressionStatement) String() string { return s.Expr.String() }

// BlockStatement is the brace-delimited body of if branches and function
// literals.
type BlockStatement struct {
	Statements []Statement
	position   Position
}

func (s *BlockStatement) stmtNode()     {}
func (s *BlockStatement) Pos() Position { return s.position }
func (s *BlockStatement) String() string {
	parts := make([]string, len(s.Statements))
	for i, stmt := range s.Statements {
		parts[i] = stmt.String()
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

type Identifier struct {
	Name     string
	position Position
}

func (e *Identifier) exprNode()      {}
func (e *Identifier) Pos() Position  { return e.position }
func (e *Identifier) String() string { return e.Name }

type IntegerLiteral struct {
	Value    int64
	position Position
}

func (e *IntegerLiteral) exprNode()      {}
func (e *IntegerLiteral) Pos() Position  { return e.position }
func (e *IntegerLiteral) String() string { return strconv.FormatInt(e.Value, 10) }

type BooleanLiteral struct {
	Value    bool
	position Position
}

func (e *BooleanLiteral) exprNode()      {}
func (e *BooleanLiteral) Pos() Position  { return e.position }
func (e *BooleanLiteral) String() string { return strconv.FormatBool(e.Value) }

type PrefixExpression struct {
	Operator TokenType
	Right    Expression
	position Position
}

func (e *PrefixExpression) exprNode()     {}
func (e *PrefixExpression) Pos() Position { return e.position }
func (e *PrefixExpression) String() string {
	return "(" + string(e.Operator) + e.Right.String() + ")"
}

type InfixExpression struct {
	Left     Expression
	Operator TokenType
	Right    Expression
	position Position
}

func (e *InfixExpression) exprNode()     {}
func (e *InfixExpression) Pos() Position { return e.position }
func (e *InfixExpression) String() string {
	return "(" + e.Left.String() + " " + string(e.Operator) + " " + e.Right.String() + ")"
}

// IfExpression evaluates Consequence when Condition is truthy. Alternative is
// nil when there is no else branch.
type IfExpression struct {
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement
	position    Position
}

func (e *IfExpression) exprNode()     {}
func (e *IfExpression) Pos() Position { return e.position }
func (e *IfExpression) String() string {
	out := "if (" + e.Condition.String() + ") " + e.Consequence.String()
	if e.Alternative != nil {
		out += " else " + e.Alternative.String()
	}
	return out
}

// FunctionLiteral is an anonymous function. Name is filled in when the
// literal is the value of a let statement and is only used for stack frames.
type FunctionLiteral struct {
	Params   []*Identifier
	Body     *BlockStatement
	Name     string
	position Position
}

func (e *FunctionLiteral) exprNode()     {}
func (e *FunctionLiteral) Pos() Position { return e.position }
func (e *FunctionLiteral) String() string {
	return "fn(" + joinIdentifiers(e.Params) + ") " + e.Body.String()
}

// ParamNames returns the parameter names in declaration order.
func (e *FunctionLiteral) ParamNames() []string {
	names := make([]string, len(e.Params))
	for i, p := range e.Params {
		names[i] = p.Name
	}
	return names
}

type CallExpression struct {
	Function Expression
	Args     []Expression
	position Position
}

func (e *CallExpression) exprNode()     {}
func (e *CallExpression) Pos() Position { return e.position }
func (e *CallExpression) String() string {
	args := make([]string, len(e.Args))
	for i, arg := range e.Args {
		args[i] = arg.String()
	}
	return e.Function.String() + "(" + strings.Join(args, ", ") + ")"
}

func joinIdentifiers(ids []*Identifier) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.Name
	}
	return strings.Join(names, ", ")
}
