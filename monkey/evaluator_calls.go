package monkey

func (exec *Execution) evalCallExpression(e *CallExpression, env *Env) (Value, error) {
	if err := exec.step(e.Pos()); err != nil {
		return NewNull(), err
	}
	callee, err := exec.evalExpression(e.Function, env)
	if err != nil {
		return NewNull(), err
	}
	fn := callee.Function()
	if fn == nil {
		return NewNull(), exec.errorAt(TypeError, e.Pos(), "not a function: %s", callee.Kind())
	}

	args := make([]Value, 0, len(e.Args))
	for _, argExpr := range e.Args {
		arg, err := exec.evalExpression(argExpr, env)
		if err != nil {
			return NewNull(), err
		}
		args = append(args, arg)
	}
	return exec.callFunction(fn, args, e.Pos())
}

// callFunction binds args in a fresh child of the closure's environment and
// runs the body there. A return anywhere in the body ends the call.
func (exec *Execution) callFunction(fn *Function, args []Value, pos Position) (Value, error) {
	name := functionLabel(fn)
	if len(args) != len(fn.Params) {
		return NewNull(), exec.errorAt(ArityError, pos, "wrong number of arguments to %s: want=%d, got=%d", name, len(fn.Params), len(args))
	}

	callEnv := fn.Env.Child()
	for i, param := range fn.Params {
		callEnv.Define(param, args[i])
	}

	if err := exec.pushFrame(name, pos, fn.source); err != nil {
		return NewNull(), err
	}
	val, _, err := exec.evalStatements(fn.Body.Statements, callEnv)
	exec.popFrame()
	if err != nil {
		return NewNull(), err
	}
	return val, nil
}

func functionLabel(fn *Function) string {
	if fn.Name == "" {
		return "<anonymous>"
	}
	return fn.Name
}
