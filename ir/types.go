// Package ir is the language-neutral model of schema declarations.
//
// A File is produced once per schema source by the frontend and consumed
// read-only by the code generator. Discriminated shapes (items, enum kinds,
// union kinds, type-expression kinds) are sealed interfaces: only this
// package can add variants, so a type switch over them is exhaustive.
//
// Identifier type expressions are opaque names. Nothing in this package
// resolves them against other declarations of the file.
package ir

// File is an ordered sequence of items. Declaration order is emission order.
type File struct {
	Items []Item
}

// Item is a top-level declaration: a TypeDecl (Struct, Enum, Union) or a Service.
type Item interface {
	ItemName() string
	isItem()
}

// TypeDecl is an Item that declares a data type.
type TypeDecl interface {
	Item
	isTypeDecl()
}

// Struct is a named record with ordered fields.
// Field names are not checked for uniqueness.
type Struct struct {
	Name   string
	Fields []Field
}

// Field is a single struct member.
type Field struct {
	Name     string
	Type     TypeExpr
	Optional bool
}

func (s Struct) ItemName() string { return s.Name }
func (Struct) isItem()            {}
func (Struct) isTypeDecl()        {}

// Enum is a named enumeration whose members all share one value kind.
type Enum struct {
	Name string
	Kind EnumKind
}

// EnumKind is IntegerMembers or StringMembers. A mixed member list
// cannot be expressed.
type EnumKind interface {
	Len() int
	isEnumKind()
}

// IntegerMember is an integer-valued enum member. Literal is the value as
// written in the source (sign, radix prefix and digit separators kept).
type IntegerMember struct {
	Name    string
	Value   int64
	Literal string
}

// StringMember is a string-valued enum member. Value holds the decoded string.
type StringMember struct {
	Name  string
	Value string
}

// IntegerMembers is the member list of an integer-valued enum.
type IntegerMembers []IntegerMember

// StringMembers is the member list of a string-valued enum.
type StringMembers []StringMember

func (m IntegerMembers) Len() int { return len(m) }
func (IntegerMembers) isEnumKind() {}
func (m StringMembers) Len() int  { return len(m) }
func (StringMembers) isEnumKind()  {}

func (e Enum) ItemName() string { return e.Name }
func (Enum) isItem()            {}
func (Enum) isTypeDecl()        {}

// Union is a named tagged union.
type Union struct {
	Name string
	Kind UnionKind
}

// UnionKind is ExternallyTagged or InternallyTagged.
type UnionKind interface {
	isUnionKind()
}

// Variant is one arm of an externally tagged union. The variant name is
// the discriminant; the payload is an arbitrary type expression.
type Variant struct {
	Name string
	Type TypeExpr
}

// ExternallyTagged unions wrap each payload under its variant name.
type ExternallyTagged struct {
	Variants []Variant
}

// InternallyTagged unions carry the discriminant as the field TagField
// inside each variant. Variants are structs because the tag has to live
// among ordinary fields; each variant's Name is its tag value and its
// Fields exclude the tag field itself.
type InternallyTagged struct {
	TagField string
	Variants []Struct
}

func (ExternallyTagged) isUnionKind() {}
func (InternallyTagged) isUnionKind() {}

func (u Union) ItemName() string { return u.Name }
func (Union) isItem()            {}
func (Union) isTypeDecl()        {}

// Service is an RPC surface. It is recognized by the frontend but no
// backend can render it.
type Service struct {
	Name    string
	Methods []Method
}

// Method is a single service operation. A nil Result means no return value.
type Method struct {
	Name   string
	Params []Field
	Result *TypeExpr
}

func (s Service) ItemName() string { return s.Name }
func (Service) isItem()            {}
