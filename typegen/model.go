package typegen

import "github.com/teranos/tser/ir"

// Struct is an ir.Struct with its field types rendered for one generator.
type Struct struct {
	Name   string
	Fields []Field
}

// Field is a struct member with a rendered type.
type Field struct {
	Name string
	// Type is the rendered type expression, nullability included.
	Type string
	// Nullable reports whether the outermost type expression was nullable,
	// i.e. whether Type is already an OptionalExpr.
	Nullable bool
	Optional bool
}

// EnumValueType tells generators how to emit member values.
type EnumValueType int

const (
	// IntegerValues members carry integer literals to be emitted verbatim.
	IntegerValues EnumValueType = iota
	// StringValues members carry decoded strings the generator must quote.
	StringValues
)

// Enum is an ir.Enum flattened to name/value pairs.
type Enum struct {
	Name      string
	ValueType EnumValueType
	Members   []EnumMember
}

// EnumMember is one enum entry. For integer enums Value is the literal as
// written in the schema.
type EnumMember struct {
	Name  string
	Value string
}

// Union is an ir.Union with every payload type rendered.
type Union struct {
	Name string
	Kind UnionKind
}

// UnionKind is ExternallyTagged or InternallyTagged.
type UnionKind interface {
	isUnionKind()
}

// ExternallyTagged variants are keyed by their own name.
type ExternallyTagged struct {
	Variants []Variant
}

// Variant is one externally tagged arm: its name and rendered payload type.
type Variant struct {
	Name string
	Type string
}

// InternallyTagged variants are structs named by their tag value. The tag
// field is not among the variant fields.
type InternallyTagged struct {
	TagField string
	Variants []Struct
}

func (ExternallyTagged) isUnionKind() {}
func (InternallyTagged) isUnionKind() {}

// TypeString renders t bottom-up: the kind first (recursing into array
// elements), then the optional wrap if t itself is nullable. Nullability
// at each level produces its own wrap.
func TypeString(t ir.TypeExpr, g Generator) string {
	var s string
	switch k := t.Kind.(type) {
	case ir.Primitive:
		s = g.PrimitiveExpr(k)
	case ir.ArrayOf:
		s = g.ArrayExpr(TypeString(k.Elem, g))
	case ir.Identifier:
		s = g.IdentifierExpr(k.Name)
	}
	if t.Nullable {
		s = g.OptionalExpr(s)
	}
	return s
}

// StructOf renders the field types of s with g.
func StructOf(s ir.Struct, g Generator) Struct {
	fields := make([]Field, len(s.Fields))
	for i, f := range s.Fields {
		fields[i] = Field{
			Name:     f.Name,
			Type:     TypeString(f.Type, g),
			Nullable: f.Type.Nullable,
			Optional: f.Optional,
		}
	}
	return Struct{Name: s.Name, Fields: fields}
}

// EnumOf flattens e. Integer members keep their source literal.
func EnumOf(e ir.Enum) Enum {
	out := Enum{Name: e.Name}
	switch members := e.Kind.(type) {
	case ir.IntegerMembers:
		out.ValueType = IntegerValues
		out.Members = make([]EnumMember, len(members))
		for i, m := range members {
			out.Members[i] = EnumMember{Name: m.Name, Value: m.Literal}
		}
	case ir.StringMembers:
		out.ValueType = StringValues
		out.Members = make([]EnumMember, len(members))
		for i, m := range members {
			out.Members[i] = EnumMember{Name: m.Name, Value: m.Value}
		}
	}
	return out
}

// UnionOf renders every payload of u with g.
func UnionOf(u ir.Union, g Generator) Union {
	out := Union{Name: u.Name}
	switch kind := u.Kind.(type) {
	case ir.ExternallyTagged:
		variants := make([]Variant, len(kind.Variants))
		for i, v := range kind.Variants {
			variants[i] = Variant{Name: v.Name, Type: TypeString(v.Type, g)}
		}
		out.Kind = ExternallyTagged{Variants: variants}
	case ir.InternallyTagged:
		variants := make([]Struct, len(kind.Variants))
		for i, v := range kind.Variants {
			variants[i] = StructOf(v, g)
		}
		out.Kind = InternallyTagged{TagField: kind.TagField, Variants: variants}
	}
	return out
}
