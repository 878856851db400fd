package brewin

// Env is one lexical scope of a method call: the parameter scope at the
// bottom, one more per enclosing let.
type Env struct {
	parent *Env
	values map[string]*slot
}

func newEnv(parent *Env) *Env {
	return &Env{parent: parent, values: make(map[string]*slot)}
}

func (e *Env) Get(name string) (*slot, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if s, ok := cur.values[name]; ok {
			return s, true
		}
	}
	return nil, false
}

// Define binds name in this scope only. It reports false if the scope
// already holds the name.
func (e *Env) Define(name string, val Value, ty Type) bool {
	if _, dup := e.values[name]; dup {
		return false
	}
	e.values[name] = &slot{value: val, ty: ty}
	return true
}

// frame is the activation record of one method call.
type frame struct {
	method   *MethodDef
	receiver *Instance
	env      *Env
	site     Position
}

func (f *frame) pushScope() {
	f.env = newEnv(f.env)
}

func (f *frame) popScope() {
	if f.env.parent != nil {
		f.env = f.env.parent
	}
}

// lookup resolves a variable name: let scopes innermost first, then
// parameters, then the fields declared by the method's own class.
func (f *frame) lookup(name string) (*slot, bool) {
	if s, ok := f.env.Get(name); ok {
		return s, true
	}
	if fd, ok := f.method.Owner.Field(name); ok {
		return f.receiver.field(fd), true
	}
	return nil, false
}
