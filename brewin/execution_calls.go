package brewin

// evalCall dispatches (call target name args...). target is me, an
// expression yielding an object, or super in extended mode.
func (exec *Execution) evalCall(list *List) (typedValue, error) {
	if len(list.Items) < 3 {
		return typedValue{}, exec.errorAt(SyntaxError, list.Pos(), "call needs a target and a method name")
	}
	name, ok := symbol(list.Items[2])
	if !ok {
		return typedValue{}, exec.errorAt(SyntaxError, list.Pos(), "method name must be a symbol")
	}

	var (
		receiver *Instance
		start    *ClassDef
	)
	switch target, _ := symbol(list.Items[1]); {
	case target == "me":
		receiver = exec.current().receiver
		start = receiver.Class
	case target == "super" && exec.strict:
		f := exec.current()
		start = f.method.Owner.Super
		if start == nil {
			return typedValue{}, exec.errorAt(NameError, list.Pos(), "class %s has no superclass", f.method.Owner.Name)
		}
		receiver = f.receiver
	default:
		target, err := exec.evalValue(list.Items[1], list.Pos())
		if err != nil {
			return typedValue{}, err
		}
		switch target.val.Kind() {
		case KindObject:
			receiver = target.val.Instance()
			start = receiver.Class
		case KindNull:
			return typedValue{}, exec.errorAt(FaultError, list.Pos(), "call to %s on null", name)
		default:
			return typedValue{}, exec.errorAt(TypeError, list.Pos(), "cannot call %s on %s", name, target.ty)
		}
	}

	args := make([]typedValue, 0, len(list.Items)-3)
	for _, item := range list.Items[3:] {
		arg, err := exec.evalValue(item, list.Pos())
		if err != nil {
			return typedValue{}, err
		}
		args = append(args, arg)
	}

	table := exec.script.table
	method := table.ResolveMethod(start, name, len(args))
	if method == nil {
		if table.hasMethodName(name) {
			return typedValue{}, exec.errorAt(TypeError, list.Pos(), "no method %s of class %s takes %d argument(s)", name, start.Name, len(args))
		}
		return typedValue{}, exec.errorAt(NameError, list.Pos(), "unknown method %s", name)
	}
	return exec.invoke(method, receiver, args, list.Pos())
}

// invoke runs method on receiver in a fresh frame whose parameter scope
// binds args. The result's static type is the declared return type.
func (exec *Execution) invoke(method *MethodDef, receiver *Instance, args []typedValue, site Position) (typedValue, error) {
	if exec.strict {
		for i, p := range method.Params {
			if !assignable(args[i].ty, p.Type) {
				return typedValue{}, exec.errorAt(TypeError, site, "argument %d of %s must be %s, got %s", i+1, method.Name, p.Type, args[i].ty)
			}
		}
	}

	f := &frame{method: method, receiver: receiver, env: newEnv(nil), site: site}
	for i, p := range method.Params {
		f.env.Define(p.Name, args[i].val, p.Type)
	}
	if err := exec.pushFrame(f); err != nil {
		return typedValue{}, err
	}
	defer exec.popFrame()
	exec.trace("call", "method", method.qualifiedName(), "receiver", receiver.Class.Name, "args", len(args), "line", site.Line)

	val, returned, err := exec.execStatement(method.Body)
	if err != nil {
		return typedValue{}, err
	}

	switch {
	case method.Return.Kind == TypeAny:
		if !returned {
			return typedValue{val: NewVoid(), ty: voidType}, nil
		}
		return val, nil
	case !returned:
		return typedValue{val: zeroValue(method.Return), ty: method.Return}, nil
	default:
		return typedValue{val: val.val, ty: method.Return}, nil
	}
}
