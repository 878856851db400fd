package brewin

import (
	"fmt"
	"strconv"
	"strings"
)

type ValueKind int

const (
	KindVoid ValueKind = iota
	KindNull
	KindBool
	KindInt
	KindString
	KindObject
)

func (k ValueKind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a runtime Brewin value. The zero Value is the void marker a
// void method call produces; it must never be stored or printed.
type Value struct {
	kind ValueKind
	data any
}

// Instance is one object created by new. Slots hold every field of the
// class and its ancestors, ancestors first.
type Instance struct {
	ID    int
	Class *ClassDef
	slots []slot
}

func NewVoid() Value           { return Value{kind: KindVoid} }
func NewNull() Value           { return Value{kind: KindNull} }
func NewBool(b bool) Value     { return Value{kind: KindBool, data: b} }
func NewInt(i int64) Value     { return Value{kind: KindInt, data: i} }
func NewString(s string) Value { return Value{kind: KindString, data: s} }

func newObject(inst *Instance) Value { return Value{kind: KindObject, data: inst} }

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) IsVoid() bool { return v.kind == KindVoid }

func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.data.(bool)
	}
	return false
}

func (v Value) Int() int64 {
	if v.kind == KindInt {
		return v.data.(int64)
	}
	return 0
}

func (v Value) Instance() *Instance {
	if v.kind == KindObject {
		return v.data.(*Instance)
	}
	return nil
}

// String renders the value the way print does.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(v.Int(), 10)
	case KindString:
		return v.data.(string)
	case KindObject:
		inst := v.Instance()
		return fmt.Sprintf("<%s #%d>", inst.Class.Name, inst.ID)
	default:
		return "<void>"
	}
}

// Equal compares primitives by value and objects by identity. null equals
// only null.
func (v Value) Equal(other Value) bool {
	switch {
	case v.kind == KindObject && other.kind == KindObject:
		return v.Instance() == other.Instance()
	case v.kind != other.kind:
		return false
	case v.kind == KindNull, v.kind == KindVoid:
		return true
	default:
		return v.data == other.data
	}
}

// isIntSyntax reports whether text is spelled as an integer literal: an
// optional leading minus and one or more decimal digits.
func isIntSyntax(text string) bool {
	digits := strings.TrimPrefix(text, "-")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseIntLiteral converts an integer literal. It fails for text that is not
// an integer literal or does not fit in 64 bits.
func parseIntLiteral(text string) (int64, bool) {
	if !isIntSyntax(text) {
		return 0, false
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}
