package util

import (
	"fmt"
	"strings"
)

// UnicodeEscape formats a control character that has no short escape.
type UnicodeEscape func(r rune) string

// BracedEscape writes \u{1f}, accepted by Rust, Swift and TypeScript.
func BracedEscape(r rune) string {
	return fmt.Sprintf(`\u{%x}`, r)
}

// FixedEscape writes \u001f, accepted by Python and TypeScript.
func FixedEscape(r rune) string {
	return fmt.Sprintf(`\u%04x`, r)
}

// Quote returns s as a double-quoted string literal. Backslash, quote,
// newline, carriage return and tab use their short escapes; other control
// characters go through escape. Everything else is written as is.
func Quote(s string, escape UnicodeEscape) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				sb.WriteString(escape(r))
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
