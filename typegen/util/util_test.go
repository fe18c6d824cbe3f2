package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// Casing tests
// =============================================================================

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"PascalCase", "pascal_case"},
		{"camelCase", "camel_case"},
		{"HTTPSConnection", "https_connection"},
		{"ID", "id"},
		{"UserID", "user_id"},
		{"APIKey", "api_key"},
		{"already_snake", "already_snake"},
		{"", ""},
		{"A", "a"},
		{"ABCDef", "abc_def"},
		{"Blue Sky", "blue_sky"},
		{"kebab-case-name", "kebab_case_name"},
		{"double__under", "double_under"},
		{"createdAt2", "created_at2"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToSnakeCase(tt.input))
		})
	}
}

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"snake_case", "SnakeCase"},
		{"kebab-case", "KebabCase"},
		{"mixed_snake-kebab", "MixedSnakeKebab"},
		{"already", "Already"},
		{"", ""},
		{"a_b_c", "ABC"},
		{"blue sky", "BlueSky"},
		{"camelCase", "CamelCase"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToPascalCase(tt.input))
		})
	}
}

func TestToCamelCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"snake_case", "snakeCase"},
		{"kebab-case", "kebabCase"},
		{"PascalCase", "pascalCase"},
		{"", ""},
		{"a_b", "aB"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToCamelCase(tt.input))
		})
	}
}

func TestIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("name"))
	assert.True(t, IsIdentifier("_x1"))
	assert.False(t, IsIdentifier("1x"))
	assert.False(t, IsIdentifier("with space"))
	assert.False(t, IsIdentifier(""))

	assert.Equal(t, "name", Identifier("name"))
	assert.Equal(t, "Blue_Sky", Identifier("Blue Sky"))
	assert.Equal(t, "_1st", Identifier("1st"))
	assert.Equal(t, "_", Identifier(""))
}

// =============================================================================
// Quoting tests
// =============================================================================

func TestQuote(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		braced string
		fixed  string
	}{
		{"plain", "hello", `"hello"`, `"hello"`},
		{"quote", `say "hi"`, `"say \"hi\""`, `"say \"hi\""`},
		{"backslash", `a\b`, `"a\\b"`, `"a\\b"`},
		{"newline", "a\nb", `"a\nb"`, `"a\nb"`},
		{"control", "\x01", `"\u{1}"`, `"\u0001"`},
		{"unicode kept", "héllo ☃", `"héllo ☃"`, `"héllo ☃"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.braced, Quote(tt.input, BracedEscape))
			assert.Equal(t, tt.fixed, Quote(tt.input, FixedEscape))
		})
	}
}
