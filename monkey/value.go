package monkey

type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindInt
	KindFunction
	KindError
)

// Value is a runtime value. The zero Value is null.
type Value struct {
	kind ValueKind
	data any
}

// Function is a closure: a function literal paired with the environment that
// was active when the literal was evaluated.
type Function struct {
	Name   string
	Params []string
	Body   *BlockStatement
	Env    *Env

	source string
}

func NewNull() Value           { return Value{kind: KindNull} }
func NewBool(b bool) Value     { return Value{kind: KindBool, data: b} }
func NewInt(i int64) Value     { return Value{kind: KindInt, data: i} }
func NewFunction(fn *Function) Value {
	return Value{kind: KindFunction, data: fn}
}

// NewError wraps a runtime error as a first-class value.
func NewError(err *RuntimeError) Value {
	return Value{kind: KindError, data: err}
}

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNull() bool  { return v.kind == KindNull }
func (v Value) IsError() bool { return v.kind == KindError }

func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.data.(bool)
	}
	return false
}

func (v Value) Int() int64 {
	if v.kind == KindInt {
		return v.data.(int64)
	}
	return 0
}

func (v Value) Function() *Function {
	if v.kind != KindFunction {
		return nil
	}
	return v.data.(*Function)
}

// Err returns the runtime error carried by an Error value, or nil.
func (v Value) Err() *RuntimeError {
	if v.kind != KindError {
		return nil
	}
	return v.data.(*RuntimeError)
}
