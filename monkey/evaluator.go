package monkey

import (
	"context"
	"errors"
	"fmt"
)

// Execution is the state of one evaluation: limits, the step counter and the
// active call stack. A new Execution is created for every Eval call; the
// environment is the only state carried between calls.
type Execution struct {
	engine       *Engine
	ctx          context.Context
	source       string
	quota        int
	recursionCap int
	steps        int
	callStack    []callFrame
}

type callFrame struct {
	Function string
	Pos      Position
	source   string
}

// returnSignal carries a `return` out of an expression (an if block used
// as an operand or argument) up to the statement that contains it, where it
// becomes the returned flag of evalStatements.
type returnSignal struct {
	value Value
}

func (r *returnSignal) Error() string { return "return outside statement" }

// step charges one unit against the quota and checks for cancellation.
func (exec *Execution) step(pos Position) error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return exec.failWith(LimitError, pos, fmt.Errorf("%w (%d)", ErrStepQuotaExceeded, exec.quota))
	}
	if exec.ctx != nil {
		select {
		case <-exec.ctx.Done():
			return exec.failWith(LimitError, pos, exec.ctx.Err())
		default:
		}
	}
	return nil
}

func (exec *Execution) errorAt(kind ErrorKind, pos Position, format string, args ...any) error {
	return exec.newRuntimeError(kind, fmt.Sprintf(format, args...), pos, nil)
}

func (exec *Execution) failWith(kind ErrorKind, pos Position, cause error) error {
	return exec.newRuntimeError(kind, cause.Error(), pos, cause)
}

func (exec *Execution) newRuntimeError(kind ErrorKind, message string, pos Position, cause error) *RuntimeError {
	frames := make([]StackFrame, 0, len(exec.callStack)+1)
	// Each frame names the function that contains the position: the error
	// site first, then every call site walking outward.
	at := pos
	for i := len(exec.callStack) - 1; i >= 0; i-- {
		frames = append(frames, StackFrame{Function: exec.callStack[i].Function, Pos: at})
		at = exec.callStack[i].Pos
	}
	frames = append(frames, StackFrame{Function: "<program>", Pos: at})

	codeFrame := ""
	if pos.Line > 0 {
		codeFrame = formatCodeFrame(exec.currentSource(), pos)
	}
	return &RuntimeError{
		Kind:      kind,
		Message:   message,
		Pos:       pos,
		CodeFrame: codeFrame,
		Frames:    frames,
		cause:     cause,
	}
}

// currentSource is the text positions in the running function refer to.
// Functions keep the source they were defined in, so a closure created by an
// earlier REPL submission still reports against its own text.
func (exec *Execution) currentSource() string {
	if len(exec.callStack) > 0 {
		return exec.callStack[len(exec.callStack)-1].source
	}
	return exec.source
}

func (exec *Execution) pushFrame(function string, pos Position, source string) error {
	if exec.recursionCap > 0 && len(exec.callStack) >= exec.recursionCap {
		return exec.errorAt(RecursionError, pos, "recursion depth exceeded (limit %d)", exec.recursionCap)
	}
	exec.callStack = append(exec.callStack, callFrame{Function: function, Pos: pos, source: source})
	return nil
}

func (exec *Execution) popFrame() {
	if len(exec.callStack) == 0 {
		return
	}
	exec.callStack = exec.callStack[:len(exec.callStack)-1]
}

func (exec *Execution) evalStatements(stmts []Statement, env *Env) (Value, bool, error) {
	result := NewNull()
	for _, stmt := range stmts {
		if err := exec.step(stmt.Pos()); err != nil {
			return NewNull(), false, err
		}
		val, returned, err := exec.evalStatement(stmt, env)
		if err != nil {
			return NewNull(), false, err
		}
		if returned {
			return val, true, nil
		}
		result = val
	}
	return result, false, nil
}

func (exec *Execution) evalStatement(stmt Statement, env *Env) (Value, bool, error) {
	switch s := stmt.(type) {
	case *ExpressionStatement:
		return statementResult(exec.evalExpression(s.Expr, env))
	case *LetStatement:
		val, err := exec.evalExpression(s.Value, env)
		if err != nil {
			return statementResult(val, err)
		}
		env.Define(s.Name.Name, val)
		return NewNull(), false, nil
	case *ReturnStatement:
		if s.Value == nil {
			return NewNull(), true, nil
		}
		val, returned, err := statementResult(exec.evalExpression(s.Value, env))
		if err != nil || returned {
			return val, returned, err
		}
		return val, true, nil
	case *BlockStatement:
		return exec.evalStatements(s.Statements, env)
	default:
		return NewNull(), false, exec.errorAt(TypeError, stmt.Pos(), "unsupported statement %T", stmt)
	}
}

// statementResult turns a return raised inside an expression back into the
// returned flag.
func statementResult(val Value, err error) (Value, bool, error) {
	var sig *returnSignal
	if errors.As(err, &sig) {
		return sig.value, true, nil
	}
	return val, false, err
}

func (exec *Execution) evalExpression(expr Expression, env *Env) (Value, error) {
	switch e := expr.(type) {
	case *IntegerLiteral:
		return NewInt(e.Value), nil
	case *BooleanLiteral:
		return NewBool(e.Value), nil
	case *Identifier:
		val, err := env.Resolve(e.Name)
		if err != nil {
			return NewNull(), exec.failWith(NameError, e.Pos(), err)
		}
		return val, nil
	case *PrefixExpression:
		right, err := exec.evalExpression(e.Right, env)
		if err != nil {
			return NewNull(), err
		}
		return exec.evalPrefix(e, right)
	case *InfixExpression:
		left, err := exec.evalExpression(e.Left, env)
		if err != nil {
			return NewNull(), err
		}
		right, err := exec.evalExpression(e.Right, env)
		if err != nil {
			return NewNull(), err
		}
		return exec.evalInfix(e, left, right)
	case *IfExpression:
		return exec.evalIfExpression(e, env)
	case *FunctionLiteral:
		return NewFunction(&Function{
			Name:   e.Name,
			Params: e.ParamNames(),
			Body:   e.Body,
			Env:    env,
			source: exec.currentSource(),
		}), nil
	case *CallExpression:
		return exec.evalCallExpression(e, env)
	default:
		return NewNull(), exec.errorAt(TypeError, expr.Pos(), "unsupported expression %T", expr)
	}
}

func (exec *Execution) evalIfExpression(e *IfExpression, env *Env) (Value, error) {
	cond, err := exec.evalExpression(e.Condition, env)
	if err != nil {
		return NewNull(), err
	}
	var block *BlockStatement
	switch {
	case cond.Truthy():
		block = e.Consequence
	case e.Alternative != nil:
		block = e.Alternative
	default:
		return NewNull(), nil
	}
	val, returned, err := exec.evalStatements(block.Statements, env)
	if err != nil {
		return NewNull(), err
	}
	if returned {
		return val, &returnSignal{value: val}
	}
	return val, nil
}
