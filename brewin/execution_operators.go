package brewin

import (
	"cmp"
	"math"
)

var binaryOperators = map[string]struct{}{
	"+": {}, "-": {}, "*": {}, "/": {}, "%": {},
	"<": {}, ">": {}, "<=": {}, ">=": {},
	"==": {}, "!=": {},
	"&": {}, "|": {},
}

func (exec *Execution) evalNot(list *List) (typedValue, error) {
	if len(list.Items) != 2 {
		return typedValue{}, exec.errorAt(SyntaxError, list.Pos(), "! takes exactly one operand")
	}
	operand, err := exec.evalValue(list.Items[1], list.Pos())
	if err != nil {
		return typedValue{}, err
	}
	if operand.val.Kind() != KindBool {
		return typedValue{}, exec.errorAt(TypeError, list.Pos(), "! needs a bool operand, got %s", operand.ty)
	}
	return typedValue{val: NewBool(!operand.val.Bool()), ty: boolType}, nil
}

func (exec *Execution) evalBinary(op string, list *List) (typedValue, error) {
	if len(list.Items) != 3 {
		return typedValue{}, exec.errorAt(SyntaxError, list.Pos(), "%s takes exactly two operands", op)
	}
	left, err := exec.evalValue(list.Items[1], list.Pos())
	if err != nil {
		return typedValue{}, err
	}
	right, err := exec.evalValue(list.Items[2], list.Pos())
	if err != nil {
		return typedValue{}, err
	}

	mismatch := func() (typedValue, error) {
		return typedValue{}, exec.errorAt(TypeError, list.Pos(), "incompatible operands for %s: %s and %s", op, left.ty, right.ty)
	}
	lk, rk := left.val.Kind(), right.val.Kind()

	switch op {
	case "==", "!=":
		if !equatable(left.ty, right.ty, !exec.strict) && !nullReferences(left, right) {
			return mismatch()
		}
		eq := left.val.Equal(right.val)
		if op == "!=" {
			eq = !eq
		}
		return typedValue{val: NewBool(eq), ty: boolType}, nil
	case "&", "|":
		if lk != KindBool || rk != KindBool {
			return mismatch()
		}
		if op == "&" {
			return typedValue{val: NewBool(left.val.Bool() && right.val.Bool()), ty: boolType}, nil
		}
		return typedValue{val: NewBool(left.val.Bool() || right.val.Bool()), ty: boolType}, nil
	case "<", ">", "<=", ">=":
		var order int
		switch {
		case lk == KindInt && rk == KindInt:
			order = cmp.Compare(left.val.Int(), right.val.Int())
		case lk == KindString && rk == KindString:
			order = cmp.Compare(left.val.String(), right.val.String())
		default:
			return mismatch()
		}
		var result bool
		switch op {
		case "<":
			result = order < 0
		case ">":
			result = order > 0
		case "<=":
			result = order <= 0
		default:
			result = order >= 0
		}
		return typedValue{val: NewBool(result), ty: boolType}, nil
	}

	if op == "+" && lk == KindString && rk == KindString {
		return typedValue{val: NewString(left.val.String() + right.val.String()), ty: stringType}, nil
	}
	if lk != KindInt || rk != KindInt {
		return mismatch()
	}
	a, b := left.val.Int(), right.val.Int()
	var (
		n  int64
		ok = true
	)
	switch op {
	case "+":
		n, ok = addInt(a, b)
	case "-":
		n, ok = subInt(a, b)
	case "*":
		n, ok = mulInt(a, b)
	case "/", "%":
		if b == 0 {
			return typedValue{}, exec.errorAt(FaultError, list.Pos(), "division by zero")
		}
		if op == "/" {
			// MinInt64 / -1 is the only quotient that does not fit
			ok = a != math.MinInt64 || b != -1
			n = floorDiv(a, b)
		} else {
			n = floorMod(a, b)
		}
	}
	if !ok {
		return typedValue{}, exec.errorAt(FaultError, list.Pos(), "integer overflow in %s", op)
	}
	return typedValue{val: NewInt(n), ty: intType}, nil
}

func addInt(a, b int64) (int64, bool) {
	sum := a + b
	return sum, (b >= 0) == (sum >= a)
}

func subInt(a, b int64) (int64, bool) {
	diff := a - b
	return diff, (b >= 0) == (diff <= a)
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	product := a * b
	if product/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return product, false
	}
	return product, true
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

// nullReferences reports whether two reference operands of unrelated class
// types may still be compared because one of them holds null.
func nullReferences(left, right typedValue) bool {
	if !left.ty.isReference() || !right.ty.isReference() {
		return false
	}
	return left.val.IsNull() || right.val.IsNull()
}
