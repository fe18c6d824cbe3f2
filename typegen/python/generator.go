// Package python renders IR declarations as typed Python: TypedDict classes
// for structs and union variants, IntEnum and str-Enum classes for enums.
package python

import (
	"fmt"
	"strings"

	"github.com/teranos/tser/block"
	"github.com/teranos/tser/ir"
	"github.com/teranos/tser/typegen"
	"github.com/teranos/tser/typegen/util"
)

// Generator implements typegen.Generator for Python
type Generator struct{}

// NewGenerator creates a new Python generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Head returns the banner and a fixed import set. Generators hold no
// per-file state, so imports are not narrowed to what the file uses.
func (g *Generator) Head() block.Block {
	return block.Flat(
		typegen.Header("#"),
		"",
		"from __future__ import annotations",
		"",
		"from enum import Enum, IntEnum",
		"from typing import Literal, NotRequired, TypedDict, Union",
		"",
	)
}

// PrimitiveExpr maps sized numbers onto Python's unbounded int and float.
func (g *Generator) PrimitiveExpr(p ir.Primitive) string {
	switch {
	case p.IsInteger():
		return "int"
	case p.IsFloat():
		return "float"
	case p == ir.Bool:
		return "bool"
	}
	return "str"
}

func (g *Generator) IdentifierExpr(name string) string   { return name }
func (g *Generator) ArrayExpr(elem string) string        { return "list[" + elem + "]" }
func (g *Generator) OptionalExpr(inner string) string    { return inner + " | None" }

func (g *Generator) StructDecl(s typegen.Struct) block.Block {
	return typedDict(s.Name, nil, s.Fields)
}

// EnumDecl renders integer enums as IntEnum and string enums as (str, Enum)
// so members compare equal to their wire values.
func (g *Generator) EnumDecl(e typegen.Enum) block.Block {
	base := "IntEnum"
	if e.ValueType == typegen.StringValues {
		base = "str, Enum"
	}

	members := make([]string, len(e.Members))
	for i, m := range e.Members {
		value := m.Value
		if e.ValueType == typegen.StringValues {
			value = quote(m.Value)
		}
		members[i] = fmt.Sprintf("%s = %s", toPythonIdent(util.Identifier(m.Name)), value)
	}
	if len(members) == 0 {
		members = []string{"pass"}
	}
	return block.New(
		fmt.Sprintf("class %s(%s):", e.Name, base),
		block.New(members),
	)
}

// UnionDecl renders one TypedDict per variant, named after the union and
// the variant, followed by a Union alias over them.
func (g *Generator) UnionDecl(u typegen.Union) block.Block {
	var (
		classes []block.Block
		names   []string
	)
	switch kind := u.Kind.(type) {
	case typegen.ExternallyTagged:
		for _, v := range kind.Variants {
			name := variantClass(u.Name, v.Name)
			names = append(names, name)
			classes = append(classes, block.Flatten(typedDict(name, nil, []typegen.Field{{Name: v.Name, Type: v.Type}})), block.Empty())
		}
	case typegen.InternallyTagged:
		for _, v := range kind.Variants {
			name := variantClass(u.Name, v.Name)
			names = append(names, name)
			tag := key{name: kind.TagField, typ: fmt.Sprintf("Literal[%s]", quote(v.Name))}
			classes = append(classes, block.Flatten(typedDict(name, []key{tag}, v.Fields)), block.Empty())
		}
	}
	return block.New(
		classes,
		fmt.Sprintf("%s = Union[%s]", u.Name, strings.Join(names, ", ")),
	)
}

// key is a rendered TypedDict entry.
type key struct {
	name     string
	typ      string
	optional bool
}

// typedDict renders a TypedDict with leading entries followed by fields.
// Optional fields are NotRequired. Keys that cannot be class attributes
// switch the whole declaration to the functional form, whose values are
// quoted so forward references resolve lazily.
func typedDict(name string, leading []key, fields []typegen.Field) block.Block {
	keys := append([]key(nil), leading...)
	for _, f := range fields {
		keys = append(keys, key{name: f.Name, typ: f.Type, optional: f.Optional})
	}

	functional := false
	for _, k := range keys {
		if !util.IsIdentifier(k.name) || pythonKeywords[k.name] {
			functional = true
			break
		}
	}

	if functional {
		entries := make([]string, len(keys))
		for i, k := range keys {
			typ := quote(k.typ)
			if k.optional {
				typ = "NotRequired[" + typ + "]"
			}
			entries[i] = fmt.Sprintf("%s: %s,", quote(k.name), typ)
		}
		return block.New(
			fmt.Sprintf("%s = TypedDict(%s, {", name, quote(name)),
			block.New(entries),
			"})",
		)
	}

	lines := make([]string, len(keys))
	for i, k := range keys {
		typ := k.typ
		if k.optional {
			typ = "NotRequired[" + typ + "]"
		}
		lines[i] = fmt.Sprintf("%s: %s", k.name, typ)
	}
	if len(lines) == 0 {
		lines = []string{"pass"}
	}
	return block.New(
		fmt.Sprintf("class %s(TypedDict):", name),
		block.New(lines),
	)
}

func variantClass(union, variant string) string {
	return union + util.Identifier(util.ToPascalCase(variant))
}

func quote(s string) string {
	return util.Quote(s, util.FixedEscape)
}

// pythonKeywords are reserved words in Python that cannot name attributes.
// Soft keywords (match, case, type, _) are valid attribute names.
var pythonKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
}

// toPythonIdent converts an identifier to a valid Python identifier
// Adds underscore suffix for Python keywords
func toPythonIdent(s string) string {
	if pythonKeywords[s] {
		return s + "_"
	}
	return s
}
