package brewin

// evalValue evaluates an expression that must produce a value. site is the
// line reported for failures of bare atoms: that of the enclosing form.
func (exec *Execution) evalValue(node Node, site Position) (typedValue, error) {
	val, err := exec.evalExpression(node, site)
	if err != nil {
		return typedValue{}, err
	}
	if val.val.IsVoid() {
		pos := site
		if list, ok := node.(*List); ok {
			pos = list.Pos()
		}
		return typedValue{}, exec.errorAt(TypeError, pos, "void result used as a value")
	}
	return val, nil
}

func (exec *Execution) evalExpression(node Node, site Position) (typedValue, error) {
	if err := exec.step(); err != nil {
		return typedValue{}, err
	}

	switch n := node.(type) {
	case *Atom:
		return exec.evalAtom(n, site)
	case *List:
		name, ok := formName(n)
		if !ok {
			return typedValue{}, exec.errorAt(SyntaxError, n.Pos(), "expected an expression, found %s", abbreviate(n))
		}
		switch name {
		case "call":
			return exec.evalCall(n)
		case "new":
			return exec.evalNew(n)
		case "!":
			return exec.evalNot(n)
		}
		if _, ok := binaryOperators[name]; ok {
			return exec.evalBinary(name, n)
		}
		return typedValue{}, exec.errorAt(SyntaxError, n.Pos(), "unknown expression %s", name)
	default:
		return typedValue{}, exec.errorAt(SyntaxError, site, "unsupported node")
	}
}

func (exec *Execution) evalAtom(a *Atom, site Position) (typedValue, error) {
	if a.Quoted {
		return typedValue{val: NewString(a.Text), ty: stringType}, nil
	}
	if isIntSyntax(a.Text) {
		i, ok := parseIntLiteral(a.Text)
		if !ok {
			return typedValue{}, exec.errorAt(SyntaxError, site, "integer literal %s out of range", a.Text)
		}
		return typedValue{val: NewInt(i), ty: intType}, nil
	}

	f := exec.current()
	if s, ok := f.lookup(a.Text); ok {
		return typedValue{val: s.value, ty: exec.staticType(s)}, nil
	}

	switch a.Text {
	case "me":
		return exec.self(), nil
	case "true":
		return typedValue{val: NewBool(true), ty: boolType}, nil
	case "false":
		return typedValue{val: NewBool(false), ty: boolType}, nil
	case "null":
		return typedValue{val: NewNull(), ty: nullType}, nil
	}
	return typedValue{}, exec.errorAt(NameError, site, "unknown variable %s", a.Text)
}

func (exec *Execution) evalNew(list *List) (typedValue, error) {
	if len(list.Items) != 2 {
		return typedValue{}, exec.errorAt(SyntaxError, list.Pos(), "new needs exactly one class name")
	}
	name, ok := symbol(list.Items[1])
	if !ok {
		return typedValue{}, exec.errorAt(SyntaxError, list.Pos(), "class name must be a symbol")
	}
	c, ok := exec.script.table.LookupClass(name)
	if !ok {
		return typedValue{}, exec.errorAt(TypeError, list.Pos(), "unknown class %s", name)
	}
	obj, err := exec.instantiate(c, list.Pos())
	if err != nil {
		return typedValue{}, err
	}
	return typedValue{val: obj, ty: classType(c)}, nil
}

// self is the receiver of the executing method, typed as the class that
// defines the method.
func (exec *Execution) self() typedValue {
	f := exec.current()
	ty := classType(f.method.Owner)
	if !exec.strict {
		ty = classType(f.receiver.Class)
	}
	return typedValue{val: newObject(f.receiver), ty: ty}
}
