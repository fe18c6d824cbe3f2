// Package swift renders IR declarations as Codable Swift types.
//
// Structs and string or integer enums rely on synthesized Codable
// conformance. Unions are enums with associated values, so they carry a
// hand-written init(from:) and encode(to:) matching the wire shape:
// externally tagged unions are single-key objects, internally tagged ones
// are objects whose tag property selects a nested variant struct.
package swift

import (
	"fmt"
	"strings"

	"github.com/teranos/tser/block"
	"github.com/teranos/tser/errors"
	"github.com/teranos/tser/ir"
	"github.com/teranos/tser/typegen"
	"github.com/teranos/tser/typegen/util"
)

// DefaultProtocols is the conformance list of structs and unions when none is configured.
var DefaultProtocols = []string{"Codable", "Equatable"}

// Generator implements typegen.Generator for Swift
type Generator struct {
	protocols []string
	public    bool
}

// NewGenerator creates a Swift generator. access is "public" (the default
// when empty) or "internal".
func NewGenerator(protocols []string, access string) *Generator {
	if len(protocols) == 0 {
		protocols = DefaultProtocols
	}
	return &Generator{
		protocols: append([]string(nil), protocols...),
		public:    access != "internal",
	}
}

func (g *Generator) Head() block.Block {
	return block.Flat(
		typegen.Header("//"),
		"",
		"import Foundation",
		"",
	)
}

// TypeMapping defines how IR primitives map to Swift types
var TypeMapping = map[ir.Primitive]string{
	ir.Bool:    "Bool",
	ir.String:  "String",
	ir.Int8:    "Int8",
	ir.Int16:   "Int16",
	ir.Int32:   "Int32",
	ir.Int64:   "Int64",
	ir.Uint8:   "UInt8",
	ir.Uint16:  "UInt16",
	ir.Uint32:  "UInt32",
	ir.Uint64:  "UInt64",
	ir.Float32: "Float",
	ir.Float64: "Double",
}

func (g *Generator) PrimitiveExpr(p ir.Primitive) string { return TypeMapping[p] }
func (g *Generator) IdentifierExpr(name string) string   { return name }
func (g *Generator) ArrayExpr(elem string) string        { return "[" + elem + "]" }
func (g *Generator) OptionalExpr(inner string) string    { return inner + "?" }

func (g *Generator) StructDecl(s typegen.Struct) block.Block {
	return g.structBlock(s.Name, s.Fields)
}

// CheckEnum implements typegen.EnumChecker: Swift raw values must be
// distinct.
func (g *Generator) CheckEnum(e ir.Enum) error {
	if first, second, dup := typegen.DuplicateEnumValue(e); dup {
		return errors.WithHint(
			errors.NewUnsupportedDeclarationError("enum %s: members %s and %s have the same value; Swift raw values must be unique", e.Name, first, second),
			"give every enum member a distinct value")
	}
	return nil
}

// EnumDecl renders a raw-value enum. Enums without cases cannot declare a
// raw type, so an empty enum only gets Codable.
func (g *Generator) EnumDecl(e typegen.Enum) block.Block {
	var cases []string
	for _, m := range e.Members {
		value := m.Value
		if e.ValueType == typegen.StringValues {
			value = quote(m.Value)
		}
		cases = append(cases, fmt.Sprintf("case %s = %s", caseIdent(m.Name), value))
	}

	conformance := "Codable"
	if len(e.Members) > 0 {
		raw := "Int"
		if e.ValueType == typegen.StringValues {
			raw = "String"
		}
		conformance = raw + ", Codable, CaseIterable"
	}
	return block.New(
		fmt.Sprintf("%senum %s: %s {", g.access(), e.Name, conformance),
		block.New(cases),
		"}",
	)
}

func (g *Generator) UnionDecl(u typegen.Union) block.Block {
	switch kind := u.Kind.(type) {
	case typegen.ExternallyTagged:
		return g.externalUnion(u.Name, kind)
	case typegen.InternallyTagged:
		return g.internalUnion(u.Name, kind)
	}
	return block.Block{}
}

// structBlock renders a struct with stored properties, CodingKeys when a
// property cannot be named after its key, and a public memberwise
// initializer (Swift only synthesizes an internal one).
func (g *Generator) structBlock(name string, fields []typegen.Field) block.Block {
	var (
		props     []string
		params    []string
		assigns   []string
		keys      []string
		renamed   bool
		access    = g.access()
		structDef = fmt.Sprintf("%sstruct %s%s {", access, name, g.conformance())
	)
	for _, f := range fields {
		ident, key := memberIdent(f.Name)
		typ := f.Type
		if f.Optional && !f.Nullable {
			typ += "?"
		}
		props = append(props, fmt.Sprintf("%svar %s: %s", access, ident, typ))

		param := fmt.Sprintf("%s: %s", ident, typ)
		if f.Optional {
			param += " = nil"
		}
		params = append(params, param)
		assigns = append(assigns, fmt.Sprintf("self.%s = %s", ident, ident))

		if key != "" {
			renamed = true
			keys = append(keys, fmt.Sprintf("case %s = %s", ident, quote(key)))
		} else {
			keys = append(keys, "case "+ident)
		}
	}

	body := []any{props}
	if renamed {
		body = append(body, "", codingKeys(keys))
	}
	if g.public {
		if len(props) > 0 {
			body = append(body, "")
		}
		if len(fields) == 0 {
			body = append(body, "public init() {}")
		} else {
			body = append(body,
				fmt.Sprintf("public init(%s) {", strings.Join(params, ", ")),
				block.New(assigns),
				"}",
			)
		}
	}
	return block.New(structDef, block.New(body...), "}")
}

func (g *Generator) externalUnion(name string, kind typegen.ExternallyTagged) block.Block {
	var (
		cases    []string
		keys     []string
		decoders []block.Block
		encoders []block.Block
	)
	for _, v := range kind.Variants {
		ident, key := memberIdent(v.Name)
		cases = append(cases, fmt.Sprintf("case %s(%s)", ident, v.Type))
		if key != "" {
			keys = append(keys, fmt.Sprintf("case %s = %s", ident, quote(key)))
		} else {
			keys = append(keys, "case "+ident)
		}
		decoders = append(decoders, block.Flat(
			fmt.Sprintf("case .%s:", ident),
			block.New(fmt.Sprintf("self = .%s(try container.decode(%s.self, forKey: .%s))", ident, v.Type, ident)),
		))
		encoders = append(encoders, block.Flat(
			fmt.Sprintf("case .%s(let value):", ident),
			block.New(fmt.Sprintf("try container.encode(value, forKey: .%s)", ident)),
		))
	}

	decode := block.Flat(
		"let container = try decoder.container(keyedBy: CodingKeys.self)",
		"guard container.allKeys.count == 1, let key = container.allKeys.first else {",
		block.New(fmt.Sprintf(
			`throw DecodingError.dataCorrupted(DecodingError.Context(codingPath: decoder.codingPath, debugDescription: "expected exactly one variant key for %s"))`, name)),
		"}",
		"switch key {",
		decoders,
		"}",
	)
	return g.unionBlock(name, cases, nil, keys, decode, encoders)
}

func (g *Generator) internalUnion(name string, kind typegen.InternallyTagged) block.Block {
	tagIdent, tagKey := memberIdent(kind.TagField)
	tagCase := "case " + tagIdent
	if tagKey != "" {
		tagCase += " = " + quote(tagKey)
	}

	var (
		cases    []string
		structs  []block.Block
		decoders []block.Block
		encoders []block.Block
	)
	for _, v := range kind.Variants {
		ident := caseIdent(util.ToCamelCase(v.Name))
		typeName := util.Identifier(util.ToPascalCase(v.Name))
		cases = append(cases, fmt.Sprintf("case %s(%s)", ident, typeName))
		structs = append(structs, block.Flatten(g.structBlock(typeName, v.Fields)), block.Empty())
		decoders = append(decoders, block.Flat(
			fmt.Sprintf("case %s:", quote(v.Name)),
			block.New(fmt.Sprintf("self = .%s(try %s(from: decoder))", ident, typeName)),
		))
		encoders = append(encoders, block.Flat(
			fmt.Sprintf("case .%s(let value):", ident),
			block.New(
				fmt.Sprintf("try container.encode(%s, forKey: .%s)", quote(v.Name), tagIdent),
				"try value.encode(to: encoder)",
			),
		))
	}

	decode := block.Flat(
		"let container = try decoder.container(keyedBy: CodingKeys.self)",
		fmt.Sprintf("let tag = try container.decode(String.self, forKey: .%s)", tagIdent),
		"switch tag {",
		decoders,
		"default:",
		block.New(fmt.Sprintf(
			`throw DecodingError.dataCorruptedError(forKey: .%s, in: container, debugDescription: "unknown %s tag \(tag)")`, tagIdent, name)),
		"}",
	)
	return g.unionBlock(name, cases, structs, []string{tagCase}, decode, encoders)
}

// unionBlock assembles an enum with associated values and its Codable
// implementation. nested is placed between the cases and the coding keys.
func (g *Generator) unionBlock(name string, cases []string, nested []block.Block, keys []string, decode block.Block, encoders []block.Block) block.Block {
	access := g.access()
	return block.New(
		fmt.Sprintf("%senum %s%s {", access, name, g.conformance()),
		block.New(
			cases,
			"",
			nested,
			codingKeys(keys),
			"",
			access+"init(from decoder: Decoder) throws {",
			block.New(decode),
			"}",
			"",
			access+"func encode(to encoder: Encoder) throws {",
			block.New(
				"var container = encoder.container(keyedBy: CodingKeys.self)",
				"switch self {",
				encoders,
				"}",
			),
			"}",
		),
		"}",
	)
}

func codingKeys(keys []string) block.Block {
	return block.Flat(
		"enum CodingKeys: String, CodingKey {",
		block.New(keys),
		"}",
	)
}

func (g *Generator) access() string {
	if g.public {
		return "public "
	}
	return ""
}

func (g *Generator) conformance() string {
	return ": " + strings.Join(g.protocols, ", ")
}

func quote(s string) string {
	return util.Quote(s, util.BracedEscape)
}

// swiftKeywords are reserved words that must be escaped with backticks
var swiftKeywords = map[string]bool{
	"associatedtype": true, "class": true, "deinit": true, "enum": true, "extension": true,
	"fileprivate": true, "func": true, "import": true, "init": true, "inout": true,
	"internal": true, "let": true, "open": true, "operator": true, "private": true,
	"precedencegroup": true, "protocol": true, "public": true, "rethrows": true,
	"static": true, "struct": true, "subscript": true, "typealias": true, "var": true,
	"break": true, "case": true, "catch": true, "continue": true, "default": true,
	"defer": true, "do": true, "else": true, "fallthrough": true, "for": true,
	"guard": true, "if": true, "in": true, "repeat": true, "return": true,
	"throw": true, "switch": true, "where": true, "while": true,
	"Any": true, "as": true, "false": true, "is": true, "nil": true, "self": true,
	"Self": true, "super": true, "throws": true, "true": true, "try": true,
}

// toSwiftIdent converts an identifier to a valid Swift identifier.
func toSwiftIdent(s string) string {
	if swiftKeywords[s] {
		return "`" + s + "`"
	}
	return s
}

// memberIdent names a property, enum case or coding key after a wire key.
// key is empty when the identifier already matches the wire key.
func memberIdent(name string) (ident, key string) {
	if util.IsIdentifier(name) {
		return toSwiftIdent(name), ""
	}
	return toSwiftIdent(util.Identifier(util.ToCamelCase(name))), name
}

func caseIdent(name string) string {
	ident, _ := memberIdent(name)
	return ident
}
