package brewin

import (
	"strconv"
	"strings"
)

// execStatement runs one statement. The bool result reports whether a
// return was executed, in which case the value is what the method yields.
func (exec *Execution) execStatement(node Node) (typedValue, bool, error) {
	if err := exec.step(); err != nil {
		return typedValue{}, false, err
	}

	list, ok := node.(*List)
	if !ok {
		return typedValue{}, false, exec.errorAt(SyntaxError, node.Pos(), "expected a statement, found %s", abbreviate(node))
	}
	name, ok := formName(list)
	if !ok {
		return typedValue{}, false, exec.errorAt(SyntaxError, list.Pos(), "expected a statement, found %s", abbreviate(list))
	}
	exec.trace("statement", "line", list.Pos().Line, "form", name, "method", exec.current().method.qualifiedName())

	switch name {
	case "begin":
		if len(list.Items) < 2 {
			return typedValue{}, false, exec.errorAt(SyntaxError, list.Pos(), "begin needs at least one statement")
		}
		return exec.execSequence(list.Items[1:])
	case "if":
		return exec.execIf(list)
	case "while":
		return exec.execWhile(list)
	case "set":
		return typedValue{}, false, exec.execSet(list)
	case "print":
		return typedValue{}, false, exec.execPrint(list)
	case "inputi", "inputs":
		return typedValue{}, false, exec.execInput(list, name == "inputi")
	case "return":
		return exec.execReturn(list)
	case "call":
		_, err := exec.evalCall(list)
		return typedValue{}, false, err
	case "let":
		if exec.strict {
			return exec.execLet(list)
		}
	}
	return typedValue{}, false, exec.errorAt(SyntaxError, list.Pos(), "unknown statement %s", name)
}

func (exec *Execution) execSequence(stmts []Node) (typedValue, bool, error) {
	for _, stmt := range stmts {
		val, returned, err := exec.execStatement(stmt)
		if err != nil || returned {
			return val, returned, err
		}
	}
	return typedValue{}, false, nil
}

func (exec *Execution) condition(node Node, pos Position, form string) (bool, error) {
	cond, err := exec.evalValue(node, pos)
	if err != nil {
		return false, err
	}
	if cond.val.Kind() != KindBool {
		return false, exec.errorAt(TypeError, pos, "%s condition must be bool, got %s", form, cond.ty)
	}
	return cond.val.Bool(), nil
}

func (exec *Execution) execIf(list *List) (typedValue, bool, error) {
	if len(list.Items) != 3 && len(list.Items) != 4 {
		return typedValue{}, false, exec.errorAt(SyntaxError, list.Pos(), "if needs a condition, a statement and an optional else statement")
	}
	ok, err := exec.condition(list.Items[1], list.Pos(), "if")
	if err != nil {
		return typedValue{}, false, err
	}
	if ok {
		return exec.execStatement(list.Items[2])
	}
	if len(list.Items) == 4 {
		return exec.execStatement(list.Items[3])
	}
	return typedValue{}, false, nil
}

func (exec *Execution) execWhile(list *List) (typedValue, bool, error) {
	if len(list.Items) != 3 {
		return typedValue{}, false, exec.errorAt(SyntaxError, list.Pos(), "while needs a condition and a single statement")
	}
	for {
		ok, err := exec.condition(list.Items[1], list.Pos(), "while")
		if err != nil || !ok {
			return typedValue{}, false, err
		}
		val, returned, err := exec.execStatement(list.Items[2])
		if err != nil || returned {
			return val, returned, err
		}
		if err := exec.step(); err != nil {
			return typedValue{}, false, err
		}
	}
}

// target resolves the variable a set or input statement writes to.
func (exec *Execution) target(list *List, form string) (*slot, error) {
	name, ok := symbol(list.Items[1])
	if !ok {
		return nil, exec.errorAt(SyntaxError, list.Pos(), "%s target must be a variable name", form)
	}
	s, ok := exec.current().lookup(name)
	switch {
	case ok:
		return s, nil
	case name == "me":
		return nil, exec.errorAt(NameError, list.Pos(), "cannot assign to me")
	default:
		return nil, exec.errorAt(NameError, list.Pos(), "unknown variable %s", name)
	}
}

func (exec *Execution) execSet(list *List) error {
	if len(list.Items) != 3 {
		return exec.errorAt(SyntaxError, list.Pos(), "set needs a variable and a value")
	}
	dst, err := exec.target(list, "set")
	if err != nil {
		return err
	}
	val, err := exec.evalValue(list.Items[2], list.Pos())
	if err != nil {
		return err
	}
	if exec.strict && !assignable(val.ty, dst.ty) {
		return exec.errorAt(TypeError, list.Pos(), "cannot assign %s to variable of type %s", val.ty, dst.ty)
	}
	dst.value = val.val
	return nil
}

func (exec *Execution) execPrint(list *List) error {
	var b strings.Builder
	for _, arg := range list.Items[1:] {
		val, err := exec.evalValue(arg, list.Pos())
		if err != nil {
			return err
		}
		if val.val.Kind() == KindObject {
			return exec.errorAt(TypeError, list.Pos(), "cannot print an object")
		}
		b.WriteString(val.val.String())
	}
	return exec.emit(b.String())
}

func (exec *Execution) execInput(list *List, integer bool) error {
	form := "inputs"
	if integer {
		form = "inputi"
	}
	if len(list.Items) != 2 {
		return exec.errorAt(SyntaxError, list.Pos(), "%s needs exactly one variable", form)
	}
	dst, err := exec.target(list, form)
	if err != nil {
		return err
	}

	ty := stringType
	if integer {
		ty = intType
	}
	if exec.strict && !assignable(ty, dst.ty) {
		return exec.errorAt(TypeError, list.Pos(), "%s cannot store %s in variable of type %s", form, ty, dst.ty)
	}

	line, err := exec.readLine(list.Pos())
	if err != nil {
		return err
	}
	if !integer {
		dst.value = NewString(line)
		return nil
	}
	n, perr := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if perr != nil {
		return exec.errorAt(FaultError, list.Pos(), "input %q is not an integer", line)
	}
	dst.value = NewInt(n)
	return nil
}

func (exec *Execution) execReturn(list *List) (typedValue, bool, error) {
	if len(list.Items) > 2 {
		return typedValue{}, false, exec.errorAt(SyntaxError, list.Pos(), "return takes at most one value")
	}
	method := exec.current().method
	want := method.Return

	if len(list.Items) == 1 {
		if want.Kind == TypeAny {
			return typedValue{val: NewVoid(), ty: voidType}, true, nil
		}
		return typedValue{val: zeroValue(want), ty: want}, true, nil
	}

	if want.Kind == TypeVoid {
		return typedValue{}, false, exec.errorAt(TypeError, list.Pos(), "void method %s cannot return a value", method.Name)
	}
	val, err := exec.evalValue(list.Items[1], list.Pos())
	if err != nil {
		return typedValue{}, false, err
	}
	if !assignable(val.ty, want) {
		return typedValue{}, false, exec.errorAt(TypeError, list.Pos(), "method %s returns %s, cannot return %s", method.Name, want, val.ty)
	}
	return val, true, nil
}

// execLet opens a scope of typed locals, each initialized with a literal,
// and runs the body statements in it.
func (exec *Execution) execLet(list *List) (typedValue, bool, error) {
	if len(list.Items) < 3 {
		return typedValue{}, false, exec.errorAt(SyntaxError, list.Pos(), "let needs a declaration list and at least one statement")
	}
	decls, ok := list.Items[1].(*List)
	if !ok {
		return typedValue{}, false, exec.errorAt(SyntaxError, list.Pos(), "let needs a declaration list")
	}

	f := exec.current()
	f.pushScope()
	defer f.popScope()

	for _, item := range decls.Items {
		decl, ok := item.(*List)
		if !ok || len(decl.Items) != 3 {
			return typedValue{}, false, exec.errorAt(SyntaxError, list.Pos(), "let declaration must be written as (type name value)")
		}
		tyName, ok1 := symbol(decl.Items[0])
		name, ok2 := symbol(decl.Items[1])
		if !ok1 || !ok2 {
			return typedValue{}, false, exec.errorAt(SyntaxError, list.Pos(), "let declaration must be written as (type name value)")
		}
		ty, ok := exec.script.table.resolveTypeName(tyName, false)
		if !ok {
			return typedValue{}, false, exec.errorAt(TypeError, list.Pos(), "invalid type %s for local %s", tyName, name)
		}
		val, ok := literal(decl.Items[2])
		if !ok {
			return typedValue{}, false, exec.errorAt(SyntaxError, list.Pos(), "local %s must be initialized with a literal", name)
		}
		if !assignable(typeOf(val), ty) {
			return typedValue{}, false, exec.errorAt(TypeError, list.Pos(), "local %s of type %s cannot be initialized with %s", name, ty, typeOf(val))
		}
		if !f.env.Define(name, val, ty) {
			return typedValue{}, false, exec.errorAt(NameError, list.Pos(), "duplicate local %s", name)
		}
	}
	return exec.execSequence(list.Items[2:])
}
