// Package typescript renders IR declarations as normalised TypeScript
// declarations: interfaces, enums and discriminated union aliases.
package typescript

import (
	"fmt"
	"strings"

	"github.com/teranos/tser/block"
	"github.com/teranos/tser/ir"
	"github.com/teranos/tser/typegen"
	"github.com/teranos/tser/typegen/util"
)

// DefaultIndent is the number of spaces per level when none is configured.
const DefaultIndent = 2

// Generator implements typegen.Generator for TypeScript
type Generator struct {
	indent string
}

// NewGenerator creates a TypeScript generator indenting with the given
// number of spaces per level. Zero or negative selects DefaultIndent.
func NewGenerator(indent int) *Generator {
	if indent <= 0 {
		indent = DefaultIndent
	}
	return &Generator{indent: strings.Repeat(" ", indent)}
}

// Indent implements typegen.Indenter.
func (g *Generator) Indent() string { return g.indent }

func (g *Generator) Head() block.Block {
	return block.Flat(
		typegen.Header("//"),
		"/* eslint-disable */",
		"",
	)
}

func (g *Generator) PrimitiveExpr(p ir.Primitive) string {
	switch p {
	case ir.Bool:
		return "boolean"
	case ir.String:
		return "string"
	}
	return "number"
}

func (g *Generator) IdentifierExpr(name string) string { return name }

// ArrayExpr parenthesises union element types, which would otherwise bind
// looser than the array suffix.
func (g *Generator) ArrayExpr(elem string) string {
	if strings.Contains(elem, " | ") {
		elem = "(" + elem + ")"
	}
	return elem + "[]"
}

func (g *Generator) OptionalExpr(inner string) string { return inner + " | null" }

func (g *Generator) StructDecl(s typegen.Struct) block.Block {
	props := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		props[i] = property(f) + ";"
	}
	return block.New(
		fmt.Sprintf("export interface %s {", s.Name),
		block.New(props),
		"}",
	)
}

func (g *Generator) EnumDecl(e typegen.Enum) block.Block {
	members := make([]string, len(e.Members))
	for i, m := range e.Members {
		value := m.Value
		if e.ValueType == typegen.StringValues {
			value = quote(m.Value)
		}
		members[i] = fmt.Sprintf("%s = %s,", propertyName(m.Name), value)
	}
	return block.New(
		fmt.Sprintf("export enum %s {", e.Name),
		block.New(members),
		"}",
	)
}

// UnionDecl renders a union of inline object types, one arm per line.
func (g *Generator) UnionDecl(u typegen.Union) block.Block {
	var arms []string
	switch kind := u.Kind.(type) {
	case typegen.ExternallyTagged:
		for _, v := range kind.Variants {
			arms = append(arms, objectType([]string{propertyName(v.Name) + ": " + v.Type}))
		}
	case typegen.InternallyTagged:
		for _, v := range kind.Variants {
			props := []string{propertyName(kind.TagField) + ": " + quote(v.Name)}
			for _, f := range v.Fields {
				props = append(props, property(f))
			}
			arms = append(arms, objectType(props))
		}
	}

	lines := make([]string, len(arms))
	for i, arm := range arms {
		lines[i] = "| " + arm
	}
	if len(lines) > 0 {
		lines[len(lines)-1] += ";"
	}
	return block.New(
		fmt.Sprintf("export type %s =", u.Name),
		block.New(lines),
	)
}

func objectType(props []string) string {
	return "{ " + strings.Join(props, "; ") + " }"
}

func property(f typegen.Field) string {
	opt := ""
	if f.Optional {
		opt = "?"
	}
	return fmt.Sprintf("%s%s: %s", propertyName(f.Name), opt, f.Type)
}

// propertyName quotes names that are not plain identifiers.
func propertyName(name string) string {
	if util.IsIdentifier(name) {
		return name
	}
	return quote(name)
}

func quote(s string) string {
	return util.Quote(s, util.FixedEscape)
}
