package swift

import (
	"os"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/tser/errors"
	"github.com/teranos/tser/frontend"
	"github.com/teranos/tser/ir"
	"github.com/teranos/tser/typegen"
)

func generate(t *testing.T, g *Generator, items ...ir.Item) string {
	t.Helper()
	out, err := typegen.Generate(&ir.File{Items: items}, g)
	require.NoError(t, err)
	return out
}

func TestGenerateSchemaGolden(t *testing.T) {
	src, err := os.ReadFile("../testdata/schema.ts")
	require.NoError(t, err)
	file, err := frontend.ParseFile("schema.ts", src)
	require.NoError(t, err)

	out, err := typegen.Generate(file, NewGenerator(nil, ""))
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "schema", []byte(out))
}

func TestTypeExpressions(t *testing.T) {
	g := NewGenerator(nil, "")
	tests := []struct {
		name     string
		expr     ir.TypeExpr
		expected string
	}{
		{"float32", ir.Prim(ir.Float32), "Float"},
		{"unsigned", ir.Prim(ir.Uint16), "UInt16"},
		{"nullable array", ir.Array(ir.Prim(ir.Bool)).OrNull(), "[Bool]?"},
		{"array of nullable", ir.Array(ir.Ident("Item").OrNull()), "[Item?]"},
		{"double nullable", ir.Array(ir.Prim(ir.String).OrNull()).OrNull(), "[String?]?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, typegen.TypeString(tt.expr, g))
		})
	}
}

func TestInternalAccessOmitsInitializer(t *testing.T) {
	out := generate(t, NewGenerator([]string{"Codable"}, "internal"), ir.Struct{Name: "S", Fields: []ir.Field{
		{Name: "a", Type: ir.Prim(ir.Int32)},
	}})
	assert.Contains(t, out, "struct S: Codable {\n    var a: Int32\n}\n")
	assert.NotContains(t, out, "public")
	assert.NotContains(t, out, "init(")
}

func TestEmptyStruct(t *testing.T) {
	out := generate(t, NewGenerator(nil, ""), ir.Struct{Name: "Unit"})
	assert.Contains(t, out, "public struct Unit: Codable, Equatable {\n    public init() {}\n}\n")
}

func TestCodingKeysForRenamedProperties(t *testing.T) {
	out := generate(t, NewGenerator(nil, ""), ir.Struct{Name: "Req", Fields: []ir.Field{
		{Name: "content-type", Type: ir.Prim(ir.String)},
		{Name: "default", Type: ir.Prim(ir.Bool), Optional: true},
	}})

	assert.Contains(t, out, "    public var contentType: String\n")
	assert.Contains(t, out, "    public var `default`: Bool?\n")
	assert.Contains(t, out, "    enum CodingKeys: String, CodingKey {\n"+
		"        case contentType = \"content-type\"\n"+
		"        case `default`\n"+
		"    }\n")
	assert.Contains(t, out, "public init(contentType: String, `default`: Bool? = nil) {\n")
	assert.Contains(t, out, "        self.`default` = `default`\n")
}

func TestEnums(t *testing.T) {
	out := generate(t, NewGenerator(nil, ""),
		ir.Enum{Name: "E", Kind: ir.IntegerMembers{{Name: "Neg", Value: -2, Literal: "-2"}}},
		ir.Enum{Name: "S", Kind: ir.StringMembers{{Name: "Tab", Value: "a\tb"}}},
		ir.Enum{Name: "Never", Kind: ir.IntegerMembers{}},
	)
	assert.Contains(t, out, "public enum E: Int, Codable, CaseIterable {\n    case Neg = -2\n}\n")
	assert.Contains(t, out, "    case Tab = \"a\\tb\"\n")
	assert.Contains(t, out, "public enum Never: Codable {\n}\n")
}

func TestDuplicateRawValuesRejected(t *testing.T) {
	tests := []struct {
		name string
		kind ir.EnumKind
	}{
		{"integer", ir.IntegerMembers{{Name: "A", Value: 1, Literal: "1"}, {Name: "B", Value: 1, Literal: "0x1"}}},
		{"string", ir.StringMembers{{Name: "A", Value: "a"}, {Name: "B", Value: "a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := typegen.Generate(&ir.File{Items: []ir.Item{ir.Enum{Name: "E", Kind: tt.kind}}}, NewGenerator(nil, ""))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrUnsupportedDeclaration))
			assert.Contains(t, err.Error(), "enum E: members A and B have the same value")
		})
	}
}

func TestInternallyTaggedRenamedTag(t *testing.T) {
	out := generate(t, NewGenerator(nil, ""), ir.Union{Name: "Ev", Kind: ir.InternallyTagged{
		TagField: "event-type",
		Variants: []ir.Struct{{Name: "user_left"}},
	}})
	assert.Contains(t, out, "    case userLeft(UserLeft)\n")
	assert.Contains(t, out, "        case eventType = \"event-type\"\n")
	assert.Contains(t, out, "    public struct UserLeft: Codable, Equatable {\n        public init() {}\n    }\n")
	assert.Contains(t, out, "forKey: .eventType)")
}
