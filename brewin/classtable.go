package brewin

// ClassTable is the immutable registry of a loaded program's classes.
type ClassTable struct {
	mode        Mode
	classes     map[string]*ClassDef
	order       []*ClassDef
	methodNames map[string]struct{}
}

func buildClassTable(prog *Program, mode Mode) (*ClassTable, error) {
	t := &ClassTable{
		mode:        mode,
		classes:     make(map[string]*ClassDef),
		methodNames: make(map[string]struct{}),
	}

	for _, form := range prog.Forms {
		if err := t.register(form); err != nil {
			return nil, err
		}
	}
	for _, c := range t.order {
		if err := t.resolveSuper(c); err != nil {
			return nil, err
		}
	}
	if err := t.checkCycles(); err != nil {
		return nil, err
	}
	for _, c := range t.order {
		if err := t.loadMembers(c); err != nil {
			return nil, err
		}
	}
	for _, c := range t.order {
		t.layout(c)
	}
	return t, nil
}

func (t *ClassTable) register(form Node) error {
	list, ok := form.(*List)
	if !ok {
		return newError(SyntaxError, form.Pos(), "expected a class definition")
	}
	if head, _ := formName(list); head != "class" {
		return newError(SyntaxError, list.Pos(), "expected a class definition")
	}
	if len(list.Items) < 2 {
		return newError(SyntaxError, list.Pos(), "class definition needs a name")
	}
	name, ok := symbol(list.Items[1])
	if !ok {
		return newError(SyntaxError, list.Pos(), "class name must be a symbol")
	}
	if _, dup := t.classes[name]; dup {
		return newError(TypeError, list.Pos(), "duplicate class %s", name)
	}

	c := &ClassDef{Name: name, Pos: list.Pos(), fields: make(map[string]*FieldDef)}
	members := list.Items[2:]
	if len(members) > 0 {
		if kw, ok := symbol(members[0]); ok && kw == "inherits" {
			if t.mode != ModeExtended {
				return newError(SyntaxError, list.Pos(), "inherits is not available in base mode")
			}
			if len(members) < 2 {
				return newError(SyntaxError, list.Pos(), "inherits needs a superclass name")
			}
			super, ok := symbol(members[1])
			if !ok {
				return newError(SyntaxError, list.Pos(), "superclass name must be a symbol")
			}
			c.superName = super
			members = members[2:]
		}
	}
	c.members = members

	t.classes[name] = c
	t.order = append(t.order, c)
	return nil
}

func (t *ClassTable) resolveSuper(c *ClassDef) error {
	if c.superName == "" {
		return nil
	}
	super, ok := t.classes[c.superName]
	if !ok {
		return newError(TypeError, c.Pos, "class %s inherits from unknown class %s", c.Name, c.superName)
	}
	c.Super = super
	return nil
}

func (t *ClassTable) checkCycles() error {
	for _, c := range t.order {
		depth := 0
		for cur := c.Super; cur != nil; cur = cur.Super {
			if cur == c || depth > len(t.order) {
				return newError(TypeError, c.Pos, "inheritance cycle through class %s", c.Name)
			}
			depth++
		}
	}
	return nil
}

func (t *ClassTable) loadMembers(c *ClassDef) error {
	for _, member := range c.members {
		list, ok := member.(*List)
		if !ok {
			return newError(SyntaxError, member.Pos(), "expected a field or method definition in class %s", c.Name)
		}
		var err error
		switch head, _ := formName(list); head {
		case "field":
			err = t.loadField(c, list)
		case "method":
			err = t.loadMethod(c, list)
		default:
			err = newError(SyntaxError, list.Pos(), "expected a field or method definition in class %s", c.Name)
		}
		if err != nil {
			return err
		}
	}
	c.members = nil
	return nil
}

func (t *ClassTable) loadField(c *ClassDef, list *List) error {
	items := list.Items[1:]
	ty := anyType
	if t.mode == ModeExtended {
		if len(items) != 3 {
			return newError(SyntaxError, list.Pos(), "field needs a type, a name and an initial value")
		}
		tyName, ok := symbol(items[0])
		if !ok {
			return newError(SyntaxError, list.Pos(), "field type must be a symbol")
		}
		if ty, ok = t.resolveTypeName(tyName, false); !ok {
			return newError(TypeError, list.Pos(), "invalid field type %s", tyName)
		}
		items = items[1:]
	} else if len(items) != 2 {
		return newError(SyntaxError, list.Pos(), "field needs a name and an initial value")
	}

	name, ok := symbol(items[0])
	if !ok {
		return newError(SyntaxError, list.Pos(), "field name must be a symbol")
	}
	if _, dup := c.fields[name]; dup {
		return newError(NameError, list.Pos(), "duplicate field %s in class %s", name, c.Name)
	}
	val, ok := literal(items[1])
	if !ok {
		return newError(SyntaxError, list.Pos(), "field %s must be initialized with a literal", name)
	}
	if !assignable(typeOf(val), ty) {
		return newError(TypeError, list.Pos(), "field %s of type %s cannot be initialized with %s", name, ty, typeOf(val))
	}

	f := &FieldDef{Name: name, Type: ty, Default: val, Owner: c, Pos: list.Pos()}
	c.fields[name] = f
	c.Fields = append(c.Fields, f)
	return nil
}

func (t *ClassTable) loadMethod(c *ClassDef, list *List) error {
	items := list.Items[1:]
	ret := anyType
	if t.mode == ModeExtended {
		if len(items) != 4 {
			return newError(SyntaxError, list.Pos(), "method needs a return type, a name, a parameter list and a body")
		}
		retName, ok := symbol(items[0])
		if !ok {
			return newError(SyntaxError, list.Pos(), "return type must be a symbol")
		}
		if ret, ok = t.resolveTypeName(retName, true); !ok {
			return newError(TypeError, list.Pos(), "invalid return type %s", retName)
		}
		items = items[1:]
	} else if len(items) != 3 {
		return newError(SyntaxError, list.Pos(), "method needs a name, a parameter list and a body")
	}

	name, ok := symbol(items[0])
	if !ok {
		return newError(SyntaxError, list.Pos(), "method name must be a symbol")
	}
	paramList, ok := items[1].(*List)
	if !ok {
		return newError(SyntaxError, list.Pos(), "method %s needs a parameter list", name)
	}
	params, err := t.loadParams(paramList, list.Pos())
	if err != nil {
		return err
	}
	body, ok := items[2].(*List)
	if !ok {
		return newError(SyntaxError, list.Pos(), "method %s body must be a statement", name)
	}
	if _, dup := c.Method(name, len(params)); dup {
		return newError(NameError, list.Pos(), "duplicate method %s with %d parameter(s) in class %s", name, len(params), c.Name)
	}

	c.Methods = append(c.Methods, &MethodDef{
		Name:   name,
		Return: ret,
		Params: params,
		Body:   body,
		Owner:  c,
		Pos:    list.Pos(),
	})
	t.methodNames[name] = struct{}{}
	return nil
}

func (t *ClassTable) loadParams(list *List, pos Position) ([]ParamDef, error) {
	params := make([]ParamDef, 0, len(list.Items))
	seen := make(map[string]struct{}, len(list.Items))
	for _, item := range list.Items {
		p := ParamDef{Type: anyType}
		if t.mode == ModeExtended {
			decl, ok := item.(*List)
			if !ok || len(decl.Items) != 2 {
				return nil, newError(SyntaxError, pos, "parameter must be written as (type name)")
			}
			tyName, ok := symbol(decl.Items[0])
			if !ok {
				return nil, newError(SyntaxError, pos, "parameter type must be a symbol")
			}
			if p.Name, ok = symbol(decl.Items[1]); !ok {
				return nil, newError(SyntaxError, pos, "parameter name must be a symbol")
			}
			if p.Type, ok = t.resolveTypeName(tyName, false); !ok {
				return nil, newError(TypeError, pos, "invalid type %s for parameter %s", tyName, p.Name)
			}
		} else {
			name, ok := symbol(item)
			if !ok {
				return nil, newError(SyntaxError, pos, "parameter name must be a symbol")
			}
			p.Name = name
		}
		if _, dup := seen[p.Name]; dup {
			return nil, newError(NameError, pos, "duplicate parameter %s", p.Name)
		}
		seen[p.Name] = struct{}{}
		params = append(params, p)
	}
	return params, nil
}

func (t *ClassTable) layout(c *ClassDef) {
	if c.laidOut {
		return
	}
	c.laidOut = true
	base := 0
	if c.Super != nil {
		t.layout(c.Super)
		base = c.Super.slotBase + c.Super.slotCount
	}
	c.slotBase = base
	c.slotCount = len(c.Fields)
	for i, f := range c.Fields {
		f.slot = base + i
	}
}

// mainMethod finds the entry point: the class named main and the
// zero-argument main method it declares or inherits.
func (t *ClassTable) mainMethod() (*ClassDef, *MethodDef, error) {
	c, ok := t.classes["main"]
	if !ok {
		return nil, nil, newError(TypeError, Position{}, "program has no main class")
	}
	m := t.ResolveMethod(c, "main", 0)
	if m == nil {
		return nil, nil, newError(TypeError, c.Pos, "class main has no main method without parameters")
	}
	return c, m, nil
}

// LookupClass returns the class registered under name.
func (t *ClassTable) LookupClass(name string) (*ClassDef, bool) {
	c, ok := t.classes[name]
	return c, ok
}

// ResolveMethod walks from c up its superclass chain and returns the first
// method matching both name and arity.
func (t *ClassTable) ResolveMethod(c *ClassDef, name string, argc int) *MethodDef {
	for cur := c; cur != nil; cur = cur.Super {
		if m, ok := cur.Method(name, argc); ok {
			return m
		}
	}
	return nil
}

// FlattenedFields lists every field an instance of c carries, ancestors
// first, in slot order.
func (t *ClassTable) FlattenedFields(c *ClassDef) []*FieldDef {
	if c == nil {
		return nil
	}
	fields := t.FlattenedFields(c.Super)
	return append(fields, c.Fields...)
}

// Classes lists the classes in definition order.
func (t *ClassTable) Classes() []*ClassDef {
	return append([]*ClassDef(nil), t.order...)
}

func (t *ClassTable) hasMethodName(name string) bool {
	_, ok := t.methodNames[name]
	return ok
}
