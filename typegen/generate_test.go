package typegen

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/tser/block"
	"github.com/teranos/tser/errors"
	"github.com/teranos/tser/ir"
)

// fakeGenerator renders a minimal, easily predicted syntax.
type fakeGenerator struct {
	heads  int
	indent string
}

func (g *fakeGenerator) Head() block.Block {
	g.heads++
	return block.Flat("// head", "")
}

func (g *fakeGenerator) IdentifierExpr(name string) string   { return name }
func (g *fakeGenerator) PrimitiveExpr(p ir.Primitive) string { return p.String() }
func (g *fakeGenerator) ArrayExpr(elem string) string        { return "Arr<" + elem + ">" }
func (g *fakeGenerator) OptionalExpr(inner string) string    { return "Opt<" + inner + ">" }

func (g *fakeGenerator) StructDecl(s Struct) block.Block {
	var fields []string
	for _, f := range s.Fields {
		opt := ""
		if f.Optional {
			opt = "?"
		}
		fields = append(fields, fmt.Sprintf("%s%s: %s", f.Name, opt, f.Type))
	}
	return block.New("struct "+s.Name+" {", block.New(fields), "}")
}

func (g *fakeGenerator) EnumDecl(e Enum) block.Block {
	var members []string
	for _, m := range e.Members {
		members = append(members, m.Name+" = "+m.Value)
	}
	return block.New("enum "+e.Name+" {", block.New(members), "}")
}

func (g *fakeGenerator) UnionDecl(u Union) block.Block {
	var lines []string
	switch k := u.Kind.(type) {
	case ExternallyTagged:
		for _, v := range k.Variants {
			lines = append(lines, v.Name+"("+v.Type+")")
		}
	case InternallyTagged:
		for _, v := range k.Variants {
			lines = append(lines, fmt.Sprintf("%s=%s (%d fields)", k.TagField, v.Name, len(v.Fields)))
		}
	}
	return block.New("union "+u.Name+" {", block.New(lines), "}")
}

type indentedGenerator struct{ fakeGenerator }

func (indentedGenerator) Indent() string { return "  " }

func TestTypeStringAppliesNullabilityPerLevel(t *testing.T) {
	g := &fakeGenerator{}
	tests := []struct {
		name string
		expr ir.TypeExpr
		want string
	}{
		{"primitive", ir.Prim(ir.Int32), "i32"},
		{"identifier", ir.Ident("Point"), "Point"},
		{"nullable primitive", ir.Prim(ir.String).OrNull(), "Opt<string>"},
		{"array", ir.Array(ir.Prim(ir.Bool)), "Arr<bool>"},
		{"nullable array", ir.Array(ir.Prim(ir.Bool)).OrNull(), "Opt<Arr<bool>>"},
		{"array of nullable", ir.Array(ir.Prim(ir.Bool).OrNull()), "Arr<Opt<bool>>"},
		{"nullable array of nullable", ir.Array(ir.Prim(ir.Float64).OrNull()).OrNull(), "Opt<Arr<Opt<f64>>>"},
		{"nested", ir.Array(ir.Array(ir.Ident("Cell").OrNull())), "Arr<Arr<Opt<Cell>>>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeString(tt.expr, g))
		})
	}
}

func TestDoubleOptionalWrapDoesNotCollapse(t *testing.T) {
	got := TypeString(ir.Array(ir.Prim(ir.String).OrNull()).OrNull(), &fakeGenerator{})
	assert.Equal(t, 2, strings.Count(got, "Opt<"))
}

func sampleFile() *ir.File {
	return &ir.File{Items: []ir.Item{
		ir.Struct{Name: "A", Fields: []ir.Field{
			{Name: "x", Type: ir.Prim(ir.Int32)},
			{Name: "y", Type: ir.Array(ir.Ident("B")).OrNull(), Optional: true},
		}},
		ir.Enum{Name: "E", Kind: ir.IntegerMembers{{Name: "Hex", Value: 16, Literal: "0x10"}}},
	}}
}

func TestGenerateLayout(t *testing.T) {
	g := &fakeGenerator{}
	out, err := Generate(sampleFile(), g)
	require.NoError(t, err)

	want := "// head\n" +
		"\n" +
		"struct A {\n" +
		"    x: i32\n" +
		"    y?: Opt<Arr<B>>\n" +
		"}\n" +
		"\n" +
		"enum E {\n" +
		"    Hex = 0x10\n" +
		"}\n" +
		"\n"
	assert.Equal(t, want, out)
	assert.Equal(t, 1, g.heads, "head is requested once")
}

func TestGenerateSeparatesItemsWithOneBlankLine(t *testing.T) {
	out, err := Generate(sampleFile(), &fakeGenerator{})
	require.NoError(t, err)

	body := strings.TrimPrefix(out, "// head\n\n")
	assert.True(t, strings.HasPrefix(out, "// head\n"), "head comes first")
	assert.Contains(t, body, "}\n\nenum E {")
	assert.NotContains(t, body, "\n\n\n")
}

func TestGenerateIsIdempotent(t *testing.T) {
	file := sampleFile()
	g := &fakeGenerator{}
	first, err := Generate(file, g)
	require.NoError(t, err)
	second, err := Generate(file, g)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateUsesIndenter(t *testing.T) {
	out, err := Generate(sampleFile(), &indentedGenerator{})
	require.NoError(t, err)
	assert.Contains(t, out, "\n  x: i32\n")
}

func TestGenerateEmptyFile(t *testing.T) {
	out, err := Generate(&ir.File{}, &fakeGenerator{})
	require.NoError(t, err)
	assert.Equal(t, "// head\n\n", out)
}

func TestGenerateServiceIsUnsupported(t *testing.T) {
	file := &ir.File{Items: []ir.Item{
		ir.Struct{Name: "Req"},
		ir.Service{Name: "Api", Methods: []ir.Method{{Name: "call"}}},
	}}
	out, err := Generate(file, &fakeGenerator{})
	require.Error(t, err)
	assert.Empty(t, out)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedDeclaration))
	assert.Contains(t, err.Error(), "service Api")
	assert.NotEmpty(t, errors.GetAllHints(err))
}

// checkingGenerator rejects every enum named "Bad".
type checkingGenerator struct{ fakeGenerator }

func (checkingGenerator) CheckEnum(e ir.Enum) error {
	if e.Name == "Bad" {
		return errors.NewUnsupportedDeclarationError("enum Bad")
	}
	return nil
}

func TestGenerateRunsEnumChecker(t *testing.T) {
	good := ir.Enum{Name: "Good", Kind: ir.IntegerMembers{}}
	out, err := Generate(&ir.File{Items: []ir.Item{good}}, &checkingGenerator{})
	require.NoError(t, err)
	assert.Contains(t, out, "enum Good {")

	bad := ir.Enum{Name: "Bad", Kind: ir.IntegerMembers{}}
	out, err = Generate(&ir.File{Items: []ir.Item{good, bad}}, &checkingGenerator{})
	require.Error(t, err)
	assert.Empty(t, out)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedDeclaration))
}

func TestDuplicateEnumValue(t *testing.T) {
	tests := []struct {
		name   string
		kind   ir.EnumKind
		first  string
		second string
		dup    bool
	}{
		{"distinct integers", ir.IntegerMembers{{Name: "A", Value: 1, Literal: "1"}, {Name: "B", Value: 2, Literal: "2"}}, "", "", false},
		{"same integer spelled differently", ir.IntegerMembers{
			{Name: "A", Value: 16, Literal: "16"},
			{Name: "B", Value: 1, Literal: "1"},
			{Name: "C", Value: 16, Literal: "0x10"},
		}, "A", "C", true},
		{"distinct strings", ir.StringMembers{{Name: "A", Value: "a"}, {Name: "B", Value: "b"}}, "", "", false},
		{"same string", ir.StringMembers{{Name: "A", Value: "x"}, {Name: "B", Value: "x"}}, "A", "B", true},
		{"empty", ir.IntegerMembers{}, "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, second, dup := DuplicateEnumValue(ir.Enum{Name: "E", Kind: tt.kind})
			assert.Equal(t, tt.dup, dup)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.second, second)
		})
	}
}

func TestEnumValuesAreVerbatim(t *testing.T) {
	file := &ir.File{Items: []ir.Item{
		ir.Enum{Name: "I", Kind: ir.IntegerMembers{
			{Name: "A", Value: 16, Literal: "0x10"},
			{Name: "B", Value: -1000, Literal: "-1_000"},
		}},
		ir.Enum{Name: "S", Kind: ir.StringMembers{
			{Name: "Mixed", Value: "MiXeD Case"},
		}},
	}}
	out, err := Generate(file, &fakeGenerator{})
	require.NoError(t, err)
	assert.Contains(t, out, "A = 0x10\n")
	assert.Contains(t, out, "B = -1_000\n")
	assert.Contains(t, out, "Mixed = MiXeD Case\n")
}

func TestUnionsArePreRendered(t *testing.T) {
	file := &ir.File{Items: []ir.Item{
		ir.Union{Name: "V", Kind: ir.ExternallyTagged{Variants: []ir.Variant{
			{Name: "list", Type: ir.Array(ir.Prim(ir.Uint8).OrNull())},
		}}},
		ir.Union{Name: "S", Kind: ir.InternallyTagged{TagField: "kind", Variants: []ir.Struct{
			{Name: "circle", Fields: []ir.Field{{Name: "r", Type: ir.Prim(ir.Float64)}}},
		}}},
	}}
	out, err := Generate(file, &fakeGenerator{})
	require.NoError(t, err)
	assert.Contains(t, out, "list(Arr<Opt<u8>>)")
	assert.Contains(t, out, "kind=circle (1 fields)")
}

func TestStructOfRecordsNullability(t *testing.T) {
	s := StructOf(ir.Struct{Name: "N", Fields: []ir.Field{
		{Name: "a", Type: ir.Prim(ir.String).OrNull()},
		{Name: "b", Type: ir.Array(ir.Prim(ir.String).OrNull())},
	}}, &fakeGenerator{})
	assert.True(t, s.Fields[0].Nullable)
	assert.False(t, s.Fields[1].Nullable)
}

func TestHeader(t *testing.T) {
	h := Header("//")
	assert.True(t, strings.HasPrefix(h, "// Code generated by tser "))
	assert.True(t, strings.HasSuffix(h, ". DO NOT EDIT."))

	assert.True(t, IsHeaderLine(h))
	assert.True(t, IsHeaderLine("# Code generated by tser v1.2.3. DO NOT EDIT."))
	assert.False(t, IsHeaderLine("Code generated by tser dev. DO NOT EDIT."))
	assert.False(t, IsHeaderLine("// Code generated by protoc. DO NOT EDIT."))
	assert.False(t, IsHeaderLine("let x = 1; // Code generated by tser dev. DO NOT EDIT."))
	assert.True(t, IsHeaderLine("<!-- Code generated by tser dev. DO NOT EDIT. -->"))
	assert.False(t, IsHeaderLine("<!-- Code generated by tser dev. DO NOT EDIT."))
	assert.False(t, IsHeaderLine("// Code generated by tser dev. DO NOT EDIT. -->"))
}
