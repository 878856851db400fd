package brewin

type TypeKind int

const (
	TypeAny TypeKind = iota
	TypeVoid
	TypeInt
	TypeString
	TypeBool
	TypeNull
	TypeClass
)

// Type is a static type. TypeAny marks base-mode slots, which accept any
// value; TypeNull is the type of the null literal.
type Type struct {
	Kind  TypeKind
	Class *ClassDef
}

var (
	anyType    = Type{Kind: TypeAny}
	voidType   = Type{Kind: TypeVoid}
	intType    = Type{Kind: TypeInt}
	stringType = Type{Kind: TypeString}
	boolType   = Type{Kind: TypeBool}
	nullType   = Type{Kind: TypeNull}
)

func classType(c *ClassDef) Type { return Type{Kind: TypeClass, Class: c} }

func (t Type) String() string {
	switch t.Kind {
	case TypeAny:
		return "any"
	case TypeVoid:
		return "void"
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	case TypeNull:
		return "null"
	case TypeClass:
		return t.Class.Name
	default:
		return "unknown"
	}
}

func (t Type) isReference() bool {
	return t.Kind == TypeNull || t.Kind == TypeClass
}

// typeOf reports the dynamic type of a value.
func typeOf(v Value) Type {
	switch v.Kind() {
	case KindInt:
		return intType
	case KindString:
		return stringType
	case KindBool:
		return boolType
	case KindNull:
		return nullType
	case KindObject:
		return classType(v.Instance().Class)
	default:
		return voidType
	}
}

// zeroValue is the value a non-void method returns when it falls off its
// body or executes a bare return.
func zeroValue(t Type) Value {
	switch t.Kind {
	case TypeInt:
		return NewInt(0)
	case TypeString:
		return NewString("")
	case TypeBool:
		return NewBool(false)
	case TypeClass, TypeNull:
		return NewNull()
	default:
		return NewVoid()
	}
}
