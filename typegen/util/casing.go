// Package util holds the naming and literal helpers shared by generators.
package util

import (
	"strings"
	"unicode"
)

// isSeparator reports whether r splits words: anything that cannot appear
// in an identifier of the target languages.
func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// ToSnakeCase converts PascalCase, camelCase or spaced names to snake_case.
// Handles acronyms properly (e.g., "HTTPSConnection" -> "https_connection")
// and turns separators into single underscores ("Blue Sky" -> "blue_sky").
func ToSnakeCase(s string) string {
	var result strings.Builder
	runes := []rune(s)
	pendingUnderscore := false

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if isSeparator(r) {
			pendingUnderscore = result.Len() > 0
			continue
		}

		// Check if we need to insert underscore before this character
		if i > 0 && unicode.IsUpper(r) && !pendingUnderscore && result.Len() > 0 {
			// Don't insert underscore if previous char was uppercase (acronym)
			// unless next char is lowercase (end of acronym)
			prevUpper := unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if !prevUpper || nextLower {
				pendingUnderscore = true
			}
		}

		if pendingUnderscore {
			result.WriteRune('_')
			pendingUnderscore = false
		}
		result.WriteRune(unicode.ToLower(r))
	}

	return result.String()
}

// ToPascalCase converts snake_case, kebab-case or spaced names to PascalCase
func ToPascalCase(s string) string {
	parts := strings.FieldsFunc(s, isSeparator)

	var result strings.Builder
	for _, part := range parts {
		// Capitalize first letter, keep rest as-is
		runes := []rune(part)
		result.WriteRune(unicode.ToUpper(runes[0]))
		result.WriteString(string(runes[1:]))
	}

	return result.String()
}

// ToCamelCase converts snake_case, kebab-case or spaced names to camelCase
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if len(pascal) == 0 {
		return pascal
	}

	// Lowercase first letter
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// IsIdentifier reports whether s is a plain ASCII-style identifier that
// every target accepts as written: a letter or underscore followed by
// letters, digits and underscores.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// Identifier makes s usable as an identifier by replacing separators with
// underscores and prefixing a leading digit with an underscore.
func Identifier(s string) string {
	if IsIdentifier(s) {
		return s
	}
	var result strings.Builder
	for _, r := range s {
		if isSeparator(r) {
			result.WriteRune('_')
			continue
		}
		result.WriteRune(r)
	}
	out := result.String()
	if out == "" || unicode.IsDigit([]rune(out)[0]) {
		out = "_" + out
	}
	return out
}
