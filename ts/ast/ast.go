// Package ast declares the syntax tree produced by the TypeScript declaration parser.
//
// The tree covers top-level interface, enum, and type alias declarations and
// the type syntax that may appear inside them. Every node records the source
// span it was parsed from so later stages can report precise locations.
package ast

import "github.com/teranos/tser/ts/token"

// Node is implemented by all syntax tree nodes.
type Node interface {
	Span() token.Span
}

// SourceFile is a parsed .ts file.
type SourceFile struct {
	Filename string
	Decls    []Decl
}

// Decl is a top-level declaration.
type Decl interface {
	Node
	DeclName() *Ident
	declNode()
}

// TypeElement is a member of an interface body or object type literal.
type TypeElement interface {
	Node
	typeElementNode()
}

// TypeNode is a type annotation.
type TypeNode interface {
	Node
	typeNode()
}

// Expr is an enum member initializer.
type Expr interface {
	Node
	exprNode()
}

// Ident is a declaration or member name.
type Ident struct {
	Loc  token.Span
	Name string
}

// Modifiers records the keywords written before a declaration.
type Modifiers struct {
	Export  bool
	Declare bool
}

// InterfaceDecl is `interface Name<T> extends A, B { ... }`.
type InterfaceDecl struct {
	Loc        token.Span
	Modifiers  Modifiers
	Name       *Ident
	TypeParams *TypeParamList  // nil if absent
	Extends    []*TypeReference // nil if absent
	Members    []TypeElement
}

// EnumDecl is `enum Name { ... }` or `const enum Name { ... }`.
type EnumDecl struct {
	Loc       token.Span
	Modifiers Modifiers
	Const     bool
	Name      *Ident
	Members   []*EnumMember
}

// EnumMember is a single enum entry with an optional initializer.
type EnumMember struct {
	Loc  token.Span
	Name *Ident
	Init Expr // nil if absent
}

// TypeAliasDecl is `type Name<T> = Type`.
type TypeAliasDecl struct {
	Loc        token.Span
	Modifiers  Modifiers
	Name       *Ident
	TypeParams *TypeParamList
	Type       TypeNode
}

// TypeParamList is the `<...>` after a declaration name.
type TypeParamList struct {
	Loc    token.Span
	Params []*TypeParam
}

// TypeParam is one generic parameter.
type TypeParam struct {
	Loc        token.Span
	Name       *Ident
	Constraint TypeNode
	Default    TypeNode
}

// PropertySignature is `readonly name?: Type`.
type PropertySignature struct {
	Loc      token.Span
	Readonly bool
	Name     *Ident
	Optional bool
	Type     TypeNode // nil when the annotation is omitted
}

// MethodSignature is `name<T>(params): Result`.
type MethodSignature struct {
	Loc        token.Span
	Name       *Ident
	Optional   bool
	TypeParams *TypeParamList
	Params     []*Parameter
	Result     TypeNode // nil when the annotation is omitted
}

// IndexSignature is `[key: K]: V`.
type IndexSignature struct {
	Loc   token.Span
	Key   *Parameter
	Value TypeNode
}

// Parameter is a method or index signature parameter.
type Parameter struct {
	Loc      token.Span
	Name     *Ident
	Optional bool
	Type     TypeNode
}

// KeywordType is a predefined type such as string, number, or undefined.
type KeywordType struct {
	Loc     token.Span
	Keyword string
}

// TypeReference is a possibly qualified name with optional type arguments.
type TypeReference struct {
	Loc      token.Span
	Name     string // dotted, e.g. "ns.Thing"
	TypeArgs []TypeNode
}

// ArrayType is `Elem[]`.
type ArrayType struct {
	Loc  token.Span
	Elem TypeNode
}

// UnionType is `A | B | ...`.
type UnionType struct {
	Loc   token.Span
	Types []TypeNode
}

// IntersectionType is `A & B & ...`.
type IntersectionType struct {
	Loc   token.Span
	Types []TypeNode
}

// ParenType is `(Type)`.
type ParenType struct {
	Loc  token.Span
	Type TypeNode
}

// LiteralKind distinguishes literal types.
type LiteralKind int

const (
	StringLiteral LiteralKind = iota
	NumberLiteral
	BooleanLiteral
)

// LiteralType is a string, numeric, or boolean literal used as a type.
type LiteralType struct {
	Loc  token.Span
	Kind LiteralKind
	// Value is the decoded string for string literals and the source text otherwise.
	Value string
}

// TypeLiteral is an inline object type `{ a: A; b?: B }`.
type TypeLiteral struct {
	Loc     token.Span
	Members []TypeElement
}

// TupleType is `[A, B]`.
type TupleType struct {
	Loc   token.Span
	Elems []TypeNode
}

// FunctionType is `(params) => Result`.
type FunctionType struct {
	Loc    token.Span
	Params []*Parameter
	Result TypeNode
}

// OperatorType is a type built with a prefix type operator such as keyof,
// typeof, or new.
type OperatorType struct {
	Loc      token.Span
	Operator string
	Type     TypeNode
}

// IndexedAccessType is `Object[Index]`.
type IndexedAccessType struct {
	Loc    token.Span
	Object TypeNode
	Index  TypeNode
}

// NumberLit is a numeric literal initializer. Raw is the literal as written.
type NumberLit struct {
	Loc token.Span
	Raw string
}

// StringLit is a string literal initializer.
type StringLit struct {
	Loc   token.Span
	Value string
	Raw   string
}

// UnaryExpr is a prefix +/- applied to an initializer.
type UnaryExpr struct {
	Loc token.Span
	Op  token.Kind
	X   Expr
}

// OtherExpr is any initializer the parser does not model; Text is its source.
type OtherExpr struct {
	Loc  token.Span
	Text string
}

func (n *Ident) Span() token.Span             { return n.Loc }
func (n *InterfaceDecl) Span() token.Span     { return n.Loc }
func (n *EnumDecl) Span() token.Span          { return n.Loc }
func (n *EnumMember) Span() token.Span        { return n.Loc }
func (n *TypeAliasDecl) Span() token.Span     { return n.Loc }
func (n *TypeParamList) Span() token.Span     { return n.Loc }
func (n *TypeParam) Span() token.Span         { return n.Loc }
func (n *PropertySignature) Span() token.Span { return n.Loc }
func (n *MethodSignature) Span() token.Span   { return n.Loc }
func (n *IndexSignature) Span() token.Span    { return n.Loc }
func (n *Parameter) Span() token.Span         { return n.Loc }
func (n *KeywordType) Span() token.Span       { return n.Loc }
func (n *TypeReference) Span() token.Span     { return n.Loc }
func (n *ArrayType) Span() token.Span         { return n.Loc }
func (n *UnionType) Span() token.Span         { return n.Loc }
func (n *IntersectionType) Span() token.Span  { return n.Loc }
func (n *ParenType) Span() token.Span         { return n.Loc }
func (n *LiteralType) Span() token.Span       { return n.Loc }
func (n *TypeLiteral) Span() token.Span       { return n.Loc }
func (n *TupleType) Span() token.Span         { return n.Loc }
func (n *FunctionType) Span() token.Span      { return n.Loc }
func (n *OperatorType) Span() token.Span      { return n.Loc }
func (n *IndexedAccessType) Span() token.Span { return n.Loc }
func (n *NumberLit) Span() token.Span         { return n.Loc }
func (n *StringLit) Span() token.Span         { return n.Loc }
func (n *UnaryExpr) Span() token.Span         { return n.Loc }
func (n *OtherExpr) Span() token.Span         { return n.Loc }

func (n *InterfaceDecl) DeclName() *Ident { return n.Name }
func (n *EnumDecl) DeclName() *Ident      { return n.Name }
func (n *TypeAliasDecl) DeclName() *Ident { return n.Name }

func (*InterfaceDecl) declNode() {}
func (*EnumDecl) declNode()      {}
func (*TypeAliasDecl) declNode() {}

func (*PropertySignature) typeElementNode() {}
func (*MethodSignature) typeElementNode()   {}
func (*IndexSignature) typeElementNode()    {}

func (*KeywordType) typeNode()       {}
func (*TypeReference) typeNode()     {}
func (*ArrayType) typeNode()         {}
func (*UnionType) typeNode()         {}
func (*IntersectionType) typeNode()  {}
func (*ParenType) typeNode()         {}
func (*LiteralType) typeNode()       {}
func (*TypeLiteral) typeNode()       {}
func (*TupleType) typeNode()         {}
func (*FunctionType) typeNode()      {}
func (*OperatorType) typeNode()      {}
func (*IndexedAccessType) typeNode() {}

func (*NumberLit) exprNode() {}
func (*StringLit) exprNode() {}
func (*UnaryExpr) exprNode() {}
func (*OtherExpr) exprNode() {}

// Unparen strips any number of enclosing parentheses from t.
func Unparen(t TypeNode) TypeNode {
	for {
		p, ok := t.(*ParenType)
		if !ok {
			return t
		}
		t = p.Type
	}
}
