// Package token defines the lexical tokens and source positions of the
// TypeScript declaration subset read by tser.
package token

import "fmt"

// Kind represents the type of a token
type Kind int

const (
	// Special tokens
	ILLEGAL Kind = iota
	EOF

	// Literals
	IDENT  // User, string, interface (keywords are contextual in TypeScript)
	NUMBER // 42, 0x2A, 1_000, 1.5
	STRING // "hello", 'hello'

	// Punctuation
	LBRACE    // {
	RBRACE    // }
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]
	LT        // <
	GT        // >
	COMMA     // ,
	SEMICOLON // ;
	COLON     // :
	QUESTION  // ?
	PIPE      // |
	AMP       // &
	ASSIGN    // =
	DOT       // .
	MINUS     // -
	PLUS      // +
	ARROW     // =>
)

var kindNames = map[Kind]string{
	ILLEGAL:   "ILLEGAL",
	EOF:       "EOF",
	IDENT:     "identifier",
	NUMBER:    "number",
	STRING:    "string",
	LBRACE:    "'{'",
	RBRACE:    "'}'",
	LPAREN:    "'('",
	RPAREN:    "')'",
	LBRACKET:  "'['",
	RBRACKET:  "']'",
	LT:        "'<'",
	GT:        "'>'",
	COMMA:     "','",
	SEMICOLON: "';'",
	COLON:     "':'",
	QUESTION:  "'?'",
	PIPE:      "'|'",
	AMP:       "'&'",
	ASSIGN:    "'='",
	DOT:       "'.'",
	MINUS:     "'-'",
	PLUS:      "'+'",
	ARROW:     "'=>'",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a single lexical token.
type Token struct {
	Kind Kind
	// Text is the token exactly as written in the source.
	Text string
	// Value is the decoded contents of a STRING token, or the error message
	// of an ILLEGAL token. It equals Text for every other kind.
	Value string
	Loc   Span
}

// Is reports whether t is an identifier spelled word.
func (t Token) Is(word string) bool {
	return t.Kind == IDENT && t.Text == word
}

// Pos is a location in a source file. Line and Column are 1-based; Column counts bytes.
type Pos struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// IsValid reports whether p refers to a real location.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	if !p.IsValid() {
		if p.Filename != "" {
			return p.Filename
		}
		return "-"
	}
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Span is a half-open source range [Start, End).
type Span struct {
	Start Pos
	End   Pos
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if other.Start.Offset < s.Start.Offset {
		s.Start = other.Start
	}
	if other.End.Offset > s.End.Offset {
		s.End = other.End
	}
	return s
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

func (s Span) String() string {
	return s.Start.String()
}
