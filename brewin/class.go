package brewin

type ClassDef struct {
	Name    string
	Super   *ClassDef
	Fields  []*FieldDef
	Methods []*MethodDef
	Pos     Position

	superName string
	members   []Node
	fields    map[string]*FieldDef
	slotBase  int
	slotCount int
	laidOut   bool
}

type FieldDef struct {
	Name    string
	Type    Type
	Default Value
	Owner   *ClassDef
	Pos     Position

	slot int
}

type MethodDef struct {
	Name   string
	Return Type
	Params []ParamDef
	Body   Node
	Owner  *ClassDef
	Pos    Position
}

type ParamDef struct {
	Name string
	Type Type
}

// IsSubclassOf reports whether c is other or inherits from it, directly or
// transitively.
func (c *ClassDef) IsSubclassOf(other *ClassDef) bool {
	for cur := c; cur != nil; cur = cur.Super {
		if cur == other {
			return true
		}
	}
	return false
}

// Field returns the field this class itself declares under name.
// Inherited fields are not visible through it.
func (c *ClassDef) Field(name string) (*FieldDef, bool) {
	f, ok := c.fields[name]
	return f, ok
}

// Method returns the method this class itself declares with the given
// name and arity.
func (c *ClassDef) Method(name string, argc int) (*MethodDef, bool) {
	for _, m := range c.Methods {
		if m.Name == name && len(m.Params) == argc {
			return m, true
		}
	}
	return nil, false
}

func (m *MethodDef) Arity() int { return len(m.Params) }

func (m *MethodDef) qualifiedName() string {
	return m.Owner.Name + "." + m.Name
}

type slot struct {
	value Value
	ty    Type
}

func (inst *Instance) field(f *FieldDef) *slot {
	return &inst.slots[f.slot]
}
