// Package typegen renders IR files as source code for target languages.
//
// # Architecture
//
// The package uses a two-layer design:
//  1. The engine (Generate) walks an ir.File, pre-renders every type
//     expression to a target string, and assembles the output blocks
//  2. Language-specific generators (rust/, swift/, typescript/, python/)
//     implement the Generator capability interface
//
// Generators never see ir.TypeExpr values. By the time a declaration
// reaches StructDecl, EnumDecl or UnionDecl every nested type is already a
// string, so declaration builders are pure template composition.
//
// # Implementing a New Generator
//
// To add support for a new language (e.g., Kotlin):
//
//  1. Create package: typegen/kotlin/generator.go
//  2. Implement the Generator interface (see below), and Indenter if the
//     language does not indent with four spaces
//  3. Add a Target for it in typegen/targets
//  4. Add golden tests under typegen/kotlin/testdata/golden
//
// Example:
//
//	type Generator struct{}
//
//	func (g *Generator) PrimitiveExpr(p ir.Primitive) string { ... }
//	func (g *Generator) ArrayExpr(elem string) string      { return "List<" + elem + ">" }
//	func (g *Generator) StructDecl(s typegen.Struct) block.Block {
//	    // data class with one property per field
//	}
//	// ... implement other methods
package typegen

import (
	"github.com/teranos/tser/block"
	"github.com/teranos/tser/ir"
)

// Generator defines the interface for language-specific code generators.
// Each target language (Rust, Swift, TypeScript, Python) implements this interface.
type Generator interface {
	// Head returns the file preamble (generated-code banner, imports). It is
	// requested once per file.
	Head() block.Block

	// IdentifierExpr renders a reference to another declaration
	IdentifierExpr(name string) string

	// PrimitiveExpr renders a built-in scalar
	PrimitiveExpr(p ir.Primitive) string

	// ArrayExpr wraps an already rendered element type
	ArrayExpr(elem string) string

	// OptionalExpr wraps an already rendered type to make it nullable
	OptionalExpr(inner string) string

	// StructDecl renders a struct declaration
	StructDecl(s Struct) block.Block

	// EnumDecl renders an enum declaration
	EnumDecl(e Enum) block.Block

	// UnionDecl renders a tagged union declaration
	UnionDecl(u Union) block.Block
}

// EnumChecker is implemented by generators whose language restricts enums
// further than the IR does. Generate calls CheckEnum before EnumDecl and
// fails the file with its error.
type EnumChecker interface {
	CheckEnum(e ir.Enum) error
}

// Indenter is implemented by generators whose language does not use
// block.DefaultIndent.
type Indenter interface {
	Indent() string
}

// IndentOf returns the indentation unit g renders with.
func IndentOf(g Generator) string {
	if in, ok := g.(Indenter); ok {
		return in.Indent()
	}
	return block.DefaultIndent
}
