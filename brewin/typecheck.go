package brewin

// assignable reports whether a value of static type src may be stored in a
// slot of type dst. Subclass to superclass is allowed, never the reverse.
func assignable(src, dst Type) bool {
	if src.Kind == TypeAny || dst.Kind == TypeAny {
		return true
	}
	if src.Kind == TypeVoid || dst.Kind == TypeVoid {
		return false
	}
	switch dst.Kind {
	case TypeClass:
		switch src.Kind {
		case TypeNull:
			return true
		case TypeClass:
			return src.Class.IsSubclassOf(dst.Class)
		}
		return false
	case TypeNull:
		return src.Kind == TypeNull
	default:
		return src.Kind == dst.Kind
	}
}

// equatable reports whether == and != accept operands of these static
// types. Under loose rules any two references compare, which is how base
// mode treats objects.
func equatable(a, b Type, loose bool) bool {
	if a.Kind == TypeVoid || b.Kind == TypeVoid {
		return false
	}
	if a.isReference() && b.isReference() {
		return loose || assignable(a, b) || assignable(b, a)
	}
	if a.isReference() || b.isReference() {
		return false
	}
	return a.Kind == b.Kind
}

// resolveTypeName maps a declared type name onto a Type. Class names must be
// known to the table; void is accepted only where allowVoid is set.
func (t *ClassTable) resolveTypeName(name string, allowVoid bool) (Type, bool) {
	switch name {
	case "int":
		return intType, true
	case "string":
		return stringType, true
	case "bool":
		return boolType, true
	case "void":
		return voidType, allowVoid
	}
	if c, ok := t.classes[name]; ok {
		return classType(c), true
	}
	return Type{}, false
}

// literal parses a field or let initializer, which must be an integer, a
// quoted string, true, false or null.
func literal(n Node) (Value, bool) {
	a, ok := n.(*Atom)
	if !ok {
		return Value{}, false
	}
	if a.Quoted {
		return NewString(a.Text), true
	}
	switch a.Text {
	case "true":
		return NewBool(true), true
	case "false":
		return NewBool(false), true
	case "null":
		return NewNull(), true
	}
	if i, ok := parseIntLiteral(a.Text); ok {
		return NewInt(i), true
	}
	return Value{}, false
}
