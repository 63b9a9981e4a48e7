package monkey

import "math"

func (exec *Execution) evalPrefix(e *PrefixExpression, right Value) (Value, error) {
	switch e.Operator {
	case tokenBang:
		return NewBool(!right.Truthy()), nil
	case tokenMinus:
		if right.Kind() != KindInt {
			return NewNull(), exec.errorAt(TypeError, e.Pos(), "unknown operator: -%s", right.Kind())
		}
		if right.Int() == math.MinInt64 {
			return NewNull(), exec.errorAt(OverflowError, e.Pos(), "%s: -(%d)", errOverflow, right.Int())
		}
		return NewInt(-right.Int()), nil
	default:
		return NewNull(), exec.errorAt(TypeError, e.Pos(), "unknown operator: %s%s", e.Operator, right.Kind())
	}
}

func (exec *Execution) evalInfix(e *InfixExpression, left, right Value) (Value, error) {
	if left.Kind() == KindInt && right.Kind() == KindInt {
		return exec.evalIntegerInfix(e, left.Int(), right.Int())
	}

	switch e.Operator {
	case tokenEQ:
		return NewBool(left.Equal(right)), nil
	case tokenNotEQ:
		return NewBool(!left.Equal(right)), nil
	}
	if left.Kind() != right.Kind() {
		return NewNull(), exec.errorAt(TypeError, e.Pos(), "type mismatch: %s %s %s", left.Kind(), e.Operator, right.Kind())
	}
	return NewNull(), exec.errorAt(TypeError, e.Pos(), "unknown operator: %s %s %s", left.Kind(), e.Operator, right.Kind())
}

func (exec *Execution) evalIntegerInfix(e *InfixExpression, a, b int64) (Value, error) {
	var (
		result int64
		ok     = true
	)
	switch e.Operator {
	case tokenPlus:
		result, ok = addInt64(a, b)
	case tokenMinus:
		result, ok = subInt64(a, b)
	case tokenAsterisk:
		result, ok = mulInt64(a, b)
	case tokenSlash:
		if b == 0 {
			return NewNull(), exec.errorAt(ZeroDivisionError, e.Pos(), "%s: %d / 0", errDivisionByZero, a)
		}
		if a == math.MinInt64 && b == -1 {
			ok = false
		} else {
			result = a / b
		}
	case tokenLT:
		return NewBool(a < b), nil
	case tokenGT:
		return NewBool(a > b), nil
	case tokenEQ:
		return NewBool(a == b), nil
	case tokenNotEQ:
		return NewBool(a != b), nil
	default:
		return NewNull(), exec.errorAt(TypeError, e.Pos(), "unknown operator: integer %s integer", e.Operator)
	}
	if !ok {
		return NewNull(), exec.errorAt(OverflowError, e.Pos(), "%s: %d %s %d", errOverflow, a, e.Operator, b)
	}
	return NewInt(result), nil
}

func addInt64(a, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

func subInt64(a, b int64) (int64, bool) {
	diff := a - b
	if (b > 0 && diff > a) || (b < 0 && diff < a) {
		return 0, false
	}
	return diff, true
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	product := a * b
	if product/b != a {
		return 0, false
	}
	return product, true
}
