package ir

import "fmt"

// TypeExpr is a type expression: a shape plus a nullability flag.
//
// Nullable wraps the composed Kind rather than being a Kind of its own, so it
// can be set independently at every nesting level. A nullable array of
// nullable strings and a nullable array of strings are different values.
type TypeExpr struct {
	Kind     TypeExprKind
	Nullable bool
}

// TypeExprKind is Primitive, ArrayOf or Identifier.
type TypeExprKind interface {
	isTypeExprKind()
}

// ArrayOf is an ordered collection of Elem.
type ArrayOf struct {
	Elem TypeExpr
}

// Identifier references another declaration by name. It is never resolved here.
type Identifier struct {
	Name string
}

func (Primitive) isTypeExprKind()  {}
func (ArrayOf) isTypeExprKind()    {}
func (Identifier) isTypeExprKind() {}

// Prim returns a non-nullable primitive type expression.
func Prim(p Primitive) TypeExpr {
	return TypeExpr{Kind: p}
}

// Array returns a non-nullable array of elem.
func Array(elem TypeExpr) TypeExpr {
	return TypeExpr{Kind: ArrayOf{Elem: elem}}
}

// Ident returns a non-nullable reference to the named declaration.
func Ident(name string) TypeExpr {
	return TypeExpr{Kind: Identifier{Name: name}}
}

// OrNull returns a copy of t with Nullable set.
func (t TypeExpr) OrNull() TypeExpr {
	t.Nullable = true
	return t
}

// String renders t in a compact debugging notation, e.g. "[string?]?".
func (t TypeExpr) String() string {
	var s string
	switch k := t.Kind.(type) {
	case Primitive:
		s = k.String()
	case ArrayOf:
		s = "[" + k.Elem.String() + "]"
	case Identifier:
		s = k.Name
	default:
		s = fmt.Sprintf("%T", k)
	}
	if t.Nullable {
		s += "?"
	}
	return s
}

// Primitive is the closed set of built-in scalar types every backend maps.
type Primitive int

const (
	Bool Primitive = iota
	String
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
)

var primitiveNames = [...]string{
	Bool:    "bool",
	String:  "string",
	Int8:    "i8",
	Int16:   "i16",
	Int32:   "i32",
	Int64:   "i64",
	Uint8:   "u8",
	Uint16:  "u16",
	Uint32:  "u32",
	Uint64:  "u64",
	Float32: "f32",
	Float64: "f64",
}

// Primitives lists every primitive in declaration order.
var Primitives = []Primitive{
	Bool, String,
	Int8, Int16, Int32, Int64,
	Uint8, Uint16, Uint32, Uint64,
	Float32, Float64,
}

func (p Primitive) String() string {
	if p >= 0 && int(p) < len(primitiveNames) {
		return primitiveNames[p]
	}
	return fmt.Sprintf("Primitive(%d)", int(p))
}

// IsInteger reports whether p is one of the sized integer types.
func (p Primitive) IsInteger() bool {
	return p >= Int8 && p <= Uint64
}

// IsFloat reports whether p is a floating point type.
func (p Primitive) IsFloat() bool {
	return p == Float32 || p == Float64
}

// PrimitiveByName looks up a primitive by its canonical name ("i32", "string", ...).
func PrimitiveByName(name string) (Primitive, bool) {
	for _, p := range Primitives {
		if primitiveNames[p] == name {
			return p, true
		}
	}
	return 0, false
}
