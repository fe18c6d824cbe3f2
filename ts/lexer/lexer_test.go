package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/tser/ts/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestPunctuation(t *testing.T) {
	tokens := Tokenize("", "{ } ( ) [ ] < > , ; : ? | & = . - + =>")
	assert.Equal(t, []token.Kind{
		token.LBRACE, token.RBRACE, token.LPAREN, token.RPAREN,
		token.LBRACKET, token.RBRACKET, token.LT, token.GT,
		token.COMMA, token.SEMICOLON, token.COLON, token.QUESTION,
		token.PIPE, token.AMP, token.ASSIGN, token.DOT, token.MINUS,
		token.PLUS, token.ARROW, token.EOF,
	}, kinds(tokens))
}

func TestInterfaceTokens(t *testing.T) {
	src := "export interface Hello {\n  foo?: string;\n}\n"
	tokens := Tokenize("hello.ts", src)

	require.Len(t, tokens, 11)
	assert.True(t, tokens[0].Is("export"))
	assert.True(t, tokens[1].Is("interface"))
	assert.Equal(t, "Hello", tokens[2].Text)
	assert.Equal(t, token.LBRACE, tokens[3].Kind)
	assert.True(t, tokens[4].Is("foo"))
	assert.Equal(t, token.QUESTION, tokens[5].Kind)
	assert.Equal(t, token.COLON, tokens[6].Kind)
	assert.True(t, tokens[7].Is("string"))
	assert.Equal(t, token.SEMICOLON, tokens[8].Kind)
	assert.Equal(t, token.RBRACE, tokens[9].Kind)
	assert.Equal(t, token.EOF, tokens[10].Kind)
}

func TestPositions(t *testing.T) {
	tokens := Tokenize("a.ts", "interface A {\n  x: i32\n}")

	x := tokens[3]
	require.Equal(t, "x", x.Text)
	assert.Equal(t, token.Pos{Filename: "a.ts", Offset: 16, Line: 2, Column: 3}, x.Loc.Start)
	assert.Equal(t, 17, x.Loc.End.Offset)
	assert.Equal(t, "a.ts:2:3", x.Loc.String())

	closing := tokens[6]
	require.Equal(t, token.RBRACE, closing.Kind)
	assert.Equal(t, 3, closing.Loc.Start.Line)
	assert.Equal(t, 1, closing.Loc.Start.Column)
}

func TestCommentsAreSkipped(t *testing.T) {
	src := "// leading\n/* block\n comment */ A /** doc */ B // trailing"
	tokens := Tokenize("", src)
	require.Len(t, tokens, 3)
	assert.Equal(t, "A", tokens[0].Text)
	assert.Equal(t, "B", tokens[1].Text)
	assert.Equal(t, 3, tokens[0].Loc.Start.Line)
}

func TestUnterminatedBlockComment(t *testing.T) {
	tokens := Tokenize("", "A /* never closed")
	last := tokens[len(tokens)-1]
	assert.Equal(t, token.ILLEGAL, last.Kind)
	assert.Equal(t, "unterminated block comment", last.Value)
}

func TestNumbers(t *testing.T) {
	tests := []string{"0", "42", "0x2A", "0XFF", "0o17", "0b1011", "1_000_000", "1.5", ".5", "1e10", "2.5E-3", "10n"}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			tokens := Tokenize("", src)
			require.Len(t, tokens, 2)
			assert.Equal(t, token.NUMBER, tokens[0].Kind)
			assert.Equal(t, src, tokens[0].Text)
		})
	}
}

func TestMalformedNumbers(t *testing.T) {
	for _, src := range []string{"0x", "1e", "3abc"} {
		t.Run(src, func(t *testing.T) {
			tokens := Tokenize("", src)
			assert.Equal(t, token.ILLEGAL, tokens[len(tokens)-1].Kind)
		})
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`"hello"`, "hello"},
		{`'single'`, "single"},
		{`"it's"`, "it's"},
		{`'say "hi"'`, `say "hi"`},
		{`"tab\there"`, "tab\there"},
		{`"quote\"inside"`, `quote"inside`},
		{`"back\\slash"`, `back\slash`},
		{`"\x41B\u{43}"`, "ABC"},
		{`"snow☃"`, "snow☃"},
		{`"héllo"`, "héllo"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tokens := Tokenize("", tt.src)
			require.Len(t, tokens, 2)
			assert.Equal(t, token.STRING, tokens[0].Kind)
			assert.Equal(t, tt.want, tokens[0].Value)
			assert.Equal(t, tt.src, tokens[0].Text)
		})
	}
}

func TestBadStrings(t *testing.T) {
	tests := []struct {
		src string
		msg string
	}{
		{`"open`, "unterminated string literal"},
		{"\"line\nbreak\"", "unterminated string literal"},
		{`"\xZZ"`, "invalid hexadecimal escape sequence"},
		{`"\u{110000}"`, "invalid unicode escape sequence"},
		{`"\01"`, "octal escape sequences are not allowed"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tokens := Tokenize("", tt.src)
			last := tokens[len(tokens)-1]
			assert.Equal(t, token.ILLEGAL, last.Kind)
			assert.Equal(t, tt.msg, last.Value)
		})
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	tokens := Tokenize("", "A @ B")
	require.Len(t, tokens, 2)
	assert.Equal(t, token.ILLEGAL, tokens[1].Kind)
	assert.Equal(t, "unexpected character '@'", tokens[1].Value)
	assert.Equal(t, 3, tokens[1].Loc.Start.Column)
}

func TestByteOrderMarkIsSkipped(t *testing.T) {
	tokens := Tokenize("", "\uFEFFenum")
	require.Len(t, tokens, 2)
	assert.True(t, tokens[0].Is("enum"))
	assert.Equal(t, 1, tokens[0].Loc.Start.Column)
}

func TestIdentifiers(t *testing.T) {
	tokens := Tokenize("", "_private $dollar café x1")
	require.Len(t, tokens, 5)
	for i, want := range []string{"_private", "$dollar", "café", "x1"} {
		assert.Equal(t, token.IDENT, tokens[i].Kind)
		assert.Equal(t, want, tokens[i].Text)
	}
}
