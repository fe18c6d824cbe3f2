// Package rust renders IR declarations as serde-annotated Rust types.
package rust

import (
	"fmt"
	"strings"

	"github.com/teranos/tser/block"
	"github.com/teranos/tser/errors"
	"github.com/teranos/tser/ir"
	"github.com/teranos/tser/typegen"
	"github.com/teranos/tser/typegen/util"
)

// DefaultDerives is the derive list of structs and unions when none is configured.
var DefaultDerives = []string{"Debug", "Clone", "PartialEq", "serde::Serialize", "serde::Deserialize"}

// Enums carry no payload, so they always get the full comparison set.
var (
	stringEnumDerives  = []string{"Debug", "Clone", "Copy", "PartialEq", "Eq", "Hash", "serde::Serialize", "serde::Deserialize"}
	integerEnumDerives = []string{"Debug", "Clone", "Copy", "PartialEq", "Eq", "Hash", "serde_repr::Serialize_repr", "serde_repr::Deserialize_repr"}
)

// Generator implements typegen.Generator for Rust
type Generator struct {
	derives []string
}

// NewGenerator creates a Rust generator. An empty derives list selects DefaultDerives.
func NewGenerator(derives []string) *Generator {
	if len(derives) == 0 {
		derives = DefaultDerives
	}
	return &Generator{derives: append([]string(nil), derives...)}
}

// Head returns the banner and crate-level lint suppressions.
func (g *Generator) Head() block.Block {
	return block.Flat(
		typegen.Header("//"),
		"",
		"#![allow(clippy::all)]",
		"",
	)
}

// TypeMapping defines how IR primitives map to Rust types
var TypeMapping = map[ir.Primitive]string{
	ir.Bool:    "bool",
	ir.String:  "String",
	ir.Int8:    "i8",
	ir.Int16:   "i16",
	ir.Int32:   "i32",
	ir.Int64:   "i64",
	ir.Uint8:   "u8",
	ir.Uint16:  "u16",
	ir.Uint32:  "u32",
	ir.Uint64:  "u64",
	ir.Float32: "f32",
	ir.Float64: "f64",
}

func (g *Generator) PrimitiveExpr(p ir.Primitive) string { return TypeMapping[p] }

// IdentifierExpr turns dotted references into Rust paths.
func (g *Generator) IdentifierExpr(name string) string {
	return strings.ReplaceAll(name, ".", "::")
}

func (g *Generator) ArrayExpr(elem string) string     { return "Vec<" + elem + ">" }
func (g *Generator) OptionalExpr(inner string) string { return "Option<" + inner + ">" }

// StructDecl renders a named-field struct with public fields.
func (g *Generator) StructDecl(s typegen.Struct) block.Block {
	return block.New(
		deriveAttr(g.derives),
		fmt.Sprintf("pub struct %s {", s.Name),
		block.New(fieldLines(s.Fields, "pub ")),
		"}",
	)
}

// EnumDecl renders a fieldless enum. Integer enums serialize as their
// discriminant through serde_repr; string enums rename every variant to
// its value.
// CheckEnum implements typegen.EnumChecker: #[repr(i64)] discriminants
// must be distinct.
func (g *Generator) CheckEnum(e ir.Enum) error {
	if _, ok := e.Kind.(ir.IntegerMembers); !ok {
		return nil
	}
	if first, second, dup := typegen.DuplicateEnumValue(e); dup {
		return errors.WithHint(
			errors.NewUnsupportedDeclarationError("enum %s: members %s and %s have the same value; Rust discriminants must be unique", e.Name, first, second),
			"give every member of an integer enum a distinct value")
	}
	return nil
}

func (g *Generator) EnumDecl(e typegen.Enum) block.Block {
	var variants []block.Block
	for _, m := range e.Members {
		name := variantIdent(m.Name)
		switch e.ValueType {
		case typegen.IntegerValues:
			variants = append(variants, block.Line(fmt.Sprintf("%s = %s,", name, m.Value)))
		case typegen.StringValues:
			variants = append(variants, block.Flat(
				renameAttr(m.Value),
				name+",",
			))
		}
	}

	head := []string{deriveAttr(stringEnumDerives)}
	// repr and serde_repr reject enums without variants
	if e.ValueType == typegen.IntegerValues && len(e.Members) > 0 {
		head = []string{deriveAttr(integerEnumDerives), "#[repr(i64)]"}
	}
	return block.New(
		head,
		fmt.Sprintf("pub enum %s {", e.Name),
		block.New(variants),
		"}",
	)
}

// UnionDecl renders a data-carrying enum. Externally tagged unions use
// serde's default representation with one newtype variant per arm;
// internally tagged ones become struct variants under #[serde(tag)].
func (g *Generator) UnionDecl(u typegen.Union) block.Block {
	attrs := []string{deriveAttr(g.derives)}
	var variants []block.Block

	switch kind := u.Kind.(type) {
	case typegen.ExternallyTagged:
		for _, v := range kind.Variants {
			name := variantIdent(util.ToPascalCase(v.Name))
			variants = append(variants, block.Flat(
				renameIfDiffers(v.Name, name),
				fmt.Sprintf("%s(%s),", name, v.Type),
			))
		}
	case typegen.InternallyTagged:
		attrs = append(attrs, fmt.Sprintf("#[serde(tag = %s)]", quote(kind.TagField)))
		for _, v := range kind.Variants {
			name := variantIdent(util.ToPascalCase(v.Name))
			variants = append(variants, block.Flat(
				renameIfDiffers(v.Name, name),
				name+" {",
				block.New(fieldLines(v.Fields, "")),
				"},",
			))
		}
	}

	return block.New(
		attrs,
		fmt.Sprintf("pub enum %s {", u.Name),
		block.New(variants),
		"}",
	)
}

// fieldLines renders struct or struct-variant fields. Optional fields are
// omitted when None and default to None when absent; an optional field
// whose type is not nullable yet is wrapped in Option.
func fieldLines(fields []typegen.Field, visibility string) []block.Block {
	lines := make([]block.Block, 0, len(fields))
	for _, f := range fields {
		ident, wire := fieldIdent(f.Name)
		typ := f.Type
		if f.Optional && !f.Nullable {
			typ = "Option<" + typ + ">"
		}

		var attrs []string
		if wire != f.Name {
			attrs = append(attrs, renameAttr(f.Name))
		}
		if f.Optional {
			attrs = append(attrs, `#[serde(default, skip_serializing_if = "Option::is_none")]`)
		}
		lines = append(lines, block.Flat(
			attrs,
			fmt.Sprintf("%s%s: %s,", visibility, ident, typ),
		))
	}
	return lines
}

func deriveAttr(derives []string) string {
	return "#[derive(" + strings.Join(derives, ", ") + ")]"
}

func renameAttr(wire string) string {
	return fmt.Sprintf("#[serde(rename = %s)]", quote(wire))
}

// renameIfDiffers returns a rename attribute when ident does not
// serialize as wire, or nothing.
func renameIfDiffers(wire, ident string) []string {
	if strings.TrimPrefix(ident, "r#") == wire {
		return nil
	}
	return []string{renameAttr(wire)}
}

func quote(s string) string {
	return util.Quote(s, util.BracedEscape)
}

// Rust keywords that need raw identifier prefix (r#)
var rustKeywords = map[string]bool{
	"as": true, "async": true, "await": true, "break": true, "const": true,
	"continue": true, "dyn": true, "else": true, "enum": true,
	"extern": true, "false": true, "fn": true, "for": true, "if": true,
	"impl": true, "in": true, "let": true, "loop": true, "match": true,
	"mod": true, "move": true, "mut": true, "pub": true, "ref": true,
	"return": true, "static": true, "struct": true,
	"trait": true, "true": true, "type": true, "unsafe": true,
	"use": true, "where": true, "while": true, "yield": true,
	"abstract": true, "become": true, "box": true, "do": true, "final": true,
	"gen": true, "macro": true, "override": true, "priv": true, "try": true,
	"typeof": true, "unsized": true, "virtual": true,
}

// Path keywords cannot be raw identifiers.
var rustPathKeywords = map[string]bool{
	"crate": true, "self": true, "Self": true, "super": true, "_": true,
}

// toRustIdent converts an identifier to a valid Rust identifier.
// Keywords get the r# prefix; path keywords get a trailing underscore.
func toRustIdent(s string) string {
	s = util.Identifier(s)
	switch {
	case rustPathKeywords[s]:
		return s + "_"
	case rustKeywords[s]:
		return "r#" + s
	}
	return s
}

// fieldIdent returns the Rust field name for a schema property and the
// name serde derives from it.
func fieldIdent(name string) (ident, wire string) {
	ident = toRustIdent(util.ToSnakeCase(name))
	return ident, strings.TrimPrefix(ident, "r#")
}

// variantIdent keeps valid enum member names as written.
func variantIdent(name string) string {
	if !util.IsIdentifier(name) {
		name = util.ToPascalCase(name)
	}
	return toRustIdent(name)
}
