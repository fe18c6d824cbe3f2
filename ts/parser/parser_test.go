package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/tser/errors"
	"github.com/teranos/tser/ts/ast"
	"github.com/teranos/tser/ts/token"
)

func parse(t *testing.T, src string) *ast.SourceFile {
	t.Helper()
	file, err := ParseFile("test.ts", []byte(src))
	require.NoError(t, err)
	return file
}

func parseErr(t *testing.T, src string) *SyntaxError {
	t.Helper()
	_, err := ParseFile("test.ts", []byte(src))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSyntax), "want ErrSyntax, got %v", err)

	var synErr *SyntaxError
	require.True(t, errors.As(err, &synErr))
	return synErr
}

func TestParseInterface(t *testing.T) {
	file := parse(t, `
export interface Hello {
  foo: string;
  bar?: number[];
  readonly baz: Array<boolean>,
}
`)
	require.Len(t, file.Decls, 1)
	decl, ok := file.Decls[0].(*ast.InterfaceDecl)
	require.True(t, ok)

	assert.Equal(t, "Hello", decl.Name.Name)
	assert.True(t, decl.Modifiers.Export)
	assert.Nil(t, decl.TypeParams)
	require.Len(t, decl.Members, 3)

	foo := decl.Members[0].(*ast.PropertySignature)
	assert.Equal(t, "foo", foo.Name.Name)
	assert.False(t, foo.Optional)
	assert.Equal(t, "string", foo.Type.(*ast.KeywordType).Keyword)

	bar := decl.Members[1].(*ast.PropertySignature)
	assert.True(t, bar.Optional)
	arr, ok := bar.Type.(*ast.ArrayType)
	require.True(t, ok)
	assert.Equal(t, "number", arr.Elem.(*ast.KeywordType).Keyword)

	baz := decl.Members[2].(*ast.PropertySignature)
	assert.True(t, baz.Readonly)
	ref := baz.Type.(*ast.TypeReference)
	assert.Equal(t, "Array", ref.Name)
	require.Len(t, ref.TypeArgs, 1)
}

func TestMembersSeparatedByNewlines(t *testing.T) {
	file := parse(t, "interface A {\n  x: string\n  y: number\n}")
	decl := file.Decls[0].(*ast.InterfaceDecl)
	assert.Len(t, decl.Members, 2)
}

func TestMembersOnOneLineNeedSeparator(t *testing.T) {
	err := parseErr(t, "interface A { x: string y: number }")
	assert.Contains(t, err.Msg, "expected ';' between members")
	assert.Equal(t, 1, err.Pos.Line)
	assert.Equal(t, 25, err.Pos.Column)
}

func TestReadonlyAsMemberName(t *testing.T) {
	file := parse(t, "interface A { readonly: boolean; readonly?: string }")
	decl := file.Decls[0].(*ast.InterfaceDecl)
	require.Len(t, decl.Members, 2)
	assert.Equal(t, "readonly", decl.Members[0].(*ast.PropertySignature).Name.Name)
	assert.False(t, decl.Members[0].(*ast.PropertySignature).Readonly)
	assert.True(t, decl.Members[1].(*ast.PropertySignature).Optional)
}

func TestTypeParamsSpan(t *testing.T) {
	file := parse(t, "interface Foo<T> { x: T }")
	decl := file.Decls[0].(*ast.InterfaceDecl)
	require.NotNil(t, decl.TypeParams)
	require.Len(t, decl.TypeParams.Params, 1)
	assert.Equal(t, "T", decl.TypeParams.Params[0].Name.Name)
	assert.Equal(t, 13, decl.TypeParams.Loc.Start.Offset)
	assert.Equal(t, 16, decl.TypeParams.Loc.End.Offset)
}

func TestExtendsClause(t *testing.T) {
	file := parse(t, "interface Foo extends Bar, ns.Baz<string> {}")
	decl := file.Decls[0].(*ast.InterfaceDecl)
	require.Len(t, decl.Extends, 2)
	assert.Equal(t, "Bar", decl.Extends[0].Name)
	assert.Equal(t, 22, decl.Extends[0].Loc.Start.Offset)
	assert.Equal(t, "ns.Baz", decl.Extends[1].Name)
	assert.Len(t, decl.Extends[1].TypeArgs, 1)
}

func TestMethodAndIndexSignatures(t *testing.T) {
	file := parse(t, `interface Api {
  get(id: string, verbose?: boolean): User;
  list<T>(): T[];
  [key: string]: unknown;
}`)
	decl := file.Decls[0].(*ast.InterfaceDecl)
	require.Len(t, decl.Members, 3)

	get := decl.Members[0].(*ast.MethodSignature)
	assert.Equal(t, "get", get.Name.Name)
	require.Len(t, get.Params, 2)
	assert.True(t, get.Params[1].Optional)
	assert.Equal(t, "User", get.Result.(*ast.TypeReference).Name)

	list := decl.Members[1].(*ast.MethodSignature)
	require.NotNil(t, list.TypeParams)
	assert.Empty(t, list.Params)

	index := decl.Members[2].(*ast.IndexSignature)
	assert.Equal(t, "key", index.Key.Name.Name)
	assert.Equal(t, "unknown", index.Value.(*ast.KeywordType).Keyword)
}

func TestParseEnum(t *testing.T) {
	file := parse(t, `enum Color {
  Red,
  Green = 5,
  Blue = -0x10,
  "Quoted" = 'q',
  Shift = 1 << 2,
}`)
	decl := file.Decls[0].(*ast.EnumDecl)
	assert.Equal(t, "Color", decl.Name.Name)
	require.Len(t, decl.Members, 5)

	assert.Nil(t, decl.Members[0].Init)
	assert.Equal(t, "5", decl.Members[1].Init.(*ast.NumberLit).Raw)

	neg := decl.Members[2].Init.(*ast.UnaryExpr)
	assert.Equal(t, token.MINUS, neg.Op)
	assert.Equal(t, "0x10", neg.X.(*ast.NumberLit).Raw)

	assert.Equal(t, "Quoted", decl.Members[3].Name.Name)
	assert.Equal(t, "q", decl.Members[3].Init.(*ast.StringLit).Value)

	other := decl.Members[4].Init.(*ast.OtherExpr)
	assert.Equal(t, "1 << 2", other.Text)
}

func TestConstEnum(t *testing.T) {
	file := parse(t, "export const enum Flag { On = 1 }")
	decl := file.Decls[0].(*ast.EnumDecl)
	assert.True(t, decl.Const)
	assert.True(t, decl.Modifiers.Export)
}

func TestParseTypeAliasUnion(t *testing.T) {
	file := parse(t, `type Shape =
  | { kind: "circle"; radius: number }
  | { kind: "square"; side: number };`)
	decl := file.Decls[0].(*ast.TypeAliasDecl)
	assert.Equal(t, "Shape", decl.Name.Name)

	union, ok := decl.Type.(*ast.UnionType)
	require.True(t, ok)
	require.Len(t, union.Types, 2)

	circle := union.Types[0].(*ast.TypeLiteral)
	kind := circle.Members[0].(*ast.PropertySignature)
	lit := kind.Type.(*ast.LiteralType)
	assert.Equal(t, ast.StringLiteral, lit.Kind)
	assert.Equal(t, "circle", lit.Value)
}

func TestLeadingPipeSingleVariantIsUnion(t *testing.T) {
	file := parse(t, "type One = | { a: string }")
	_, ok := file.Decls[0].(*ast.TypeAliasDecl).Type.(*ast.UnionType)
	assert.True(t, ok)
}

func TestTypeForms(t *testing.T) {
	tests := []struct {
		src   string
		check func(t *testing.T, typ ast.TypeNode)
	}{
		{"string | null", func(t *testing.T, typ ast.TypeNode) {
			assert.Len(t, typ.(*ast.UnionType).Types, 2)
		}},
		{"A & B", func(t *testing.T, typ ast.TypeNode) {
			assert.Len(t, typ.(*ast.IntersectionType).Types, 2)
		}},
		{"number[][]", func(t *testing.T, typ ast.TypeNode) {
			inner := typ.(*ast.ArrayType).Elem.(*ast.ArrayType)
			assert.Equal(t, "number", inner.Elem.(*ast.KeywordType).Keyword)
		}},
		{"(string | null)[]", func(t *testing.T, typ ast.TypeNode) {
			paren := typ.(*ast.ArrayType).Elem.(*ast.ParenType)
			assert.IsType(t, &ast.UnionType{}, paren.Type)
		}},
		{"[string, number]", func(t *testing.T, typ ast.TypeNode) {
			assert.Len(t, typ.(*ast.TupleType).Elems, 2)
		}},
		{"Map<string, Array<Item>>", func(t *testing.T, typ ast.TypeNode) {
			ref := typ.(*ast.TypeReference)
			require.Len(t, ref.TypeArgs, 2)
			assert.Equal(t, "Array", ref.TypeArgs[1].(*ast.TypeReference).Name)
		}},
		{"(a: string) => void", func(t *testing.T, typ ast.TypeNode) {
			fn := typ.(*ast.FunctionType)
			assert.Len(t, fn.Params, 1)
		}},
		{"() => number", func(t *testing.T, typ ast.TypeNode) {
			assert.IsType(t, &ast.FunctionType{}, typ)
		}},
		{"keyof Foo", func(t *testing.T, typ ast.TypeNode) {
			assert.Equal(t, "keyof", typ.(*ast.OperatorType).Operator)
		}},
		{"Foo['bar']", func(t *testing.T, typ ast.TypeNode) {
			assert.IsType(t, &ast.IndexedAccessType{}, typ)
		}},
		{"readonly string[]", func(t *testing.T, typ ast.TypeNode) {
			assert.IsType(t, &ast.ArrayType{}, typ)
		}},
		{"-1", func(t *testing.T, typ ast.TypeNode) {
			assert.Equal(t, "-1", typ.(*ast.LiteralType).Value)
		}},
		{"true", func(t *testing.T, typ ast.TypeNode) {
			assert.Equal(t, ast.BooleanLiteral, typ.(*ast.LiteralType).Kind)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			file := parse(t, "type T = "+tt.src)
			tt.check(t, file.Decls[0].(*ast.TypeAliasDecl).Type)
		})
	}
}

func TestMultipleDeclarations(t *testing.T) {
	file := parse(t, `
declare interface A { x: string }
enum B { One }
type C = A | B;
`)
	require.Len(t, file.Decls, 3)
	assert.True(t, file.Decls[0].(*ast.InterfaceDecl).Modifiers.Declare)
	assert.Equal(t, "B", file.Decls[1].DeclName().Name)
	assert.Equal(t, "C", file.Decls[2].DeclName().Name)
}

func TestEmptyFile(t *testing.T) {
	file := parse(t, "// nothing here\n")
	assert.Empty(t, file.Decls)
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
		line int
		col  int
	}{
		{"unknown statement", "function f() {}", "expected interface, enum, or type declaration, found identifier function", 1, 1},
		{"missing brace", "interface A", "expected '{' to open interface body, found end of file", 1, 12},
		{"unclosed body", "interface A {\n  x: string;\n", "expected member name, found end of file", 3, 1},
		{"missing type", "interface A { x: }", "expected type, found '}'", 1, 18},
		{"lexer error wins", "interface A { x: string @ }", "unexpected character '@'", 1, 25},
		{"bad enum member", "enum E { 1 = 2 }", "expected enum member name, found number 1", 1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseErr(t, tt.src)
			assert.Equal(t, tt.msg, err.Msg)
			assert.Equal(t, tt.line, err.Pos.Line)
			assert.Equal(t, tt.col, err.Pos.Column)
		})
	}
}

func TestSyntaxErrorString(t *testing.T) {
	_, err := ParseFile("schema.ts", []byte("interface"))
	require.Error(t, err)
	assert.Equal(t, "schema.ts:1:10: syntax error: expected identifier for interface name, found end of file", err.Error())
}
