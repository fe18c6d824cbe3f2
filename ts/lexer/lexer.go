// Package lexer scans TypeScript declaration source into tokens.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/teranos/tser/ts/token"
)

const bom = "\uFEFF"

// Lexer scans TypeScript source and produces tokens
type Lexer struct {
	filename     string
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number (bytes, 1-based)
}

// New creates a new Lexer instance. filename is only used in positions.
func New(filename, input string) *Lexer {
	l := &Lexer{
		filename: filename,
		input:    input,
		line:     1,
		column:   1,
	}
	// Skip a UTF-8 byte order mark
	if strings.HasPrefix(input, bom) {
		l.position = len(bom)
		l.readPosition = len(bom)
	}
	l.readChar()
	return l
}

// Tokenize scans the whole input. The final token is always EOF, unless
// scanning stopped at an ILLEGAL token.
func Tokenize(filename, input string) []token.Token {
	l := New(filename, input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF || tok.Kind == token.ILLEGAL {
			return tokens
		}
	}
}

// readChar reads the next character and advances the position
func (l *Lexer) readChar() {
	prev := l.position
	newline := l.ch == '\n'
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
		l.readPosition = len(l.input) + 1
	} else {
		r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.position = l.readPosition
		l.readPosition += size
	}
	if newline {
		l.line++
		l.column = 1
		return
	}
	l.column += l.position - prev
}

// peekChar returns the next character without advancing the position
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) pos() token.Pos {
	return token.Pos{Filename: l.filename, Offset: l.position, Line: l.line, Column: l.column}
}

// NextToken scans and returns the next token.
func (l *Lexer) NextToken() token.Token {
	if msg := l.skipTrivia(); msg != "" {
		start := l.pos()
		return token.Token{Kind: token.ILLEGAL, Value: msg, Loc: token.Span{Start: start, End: start}}
	}

	start := l.pos()
	if l.atEOF() {
		return token.Token{Kind: token.EOF, Loc: token.Span{Start: start, End: start}}
	}

	var kind token.Kind
	switch l.ch {
	case '{':
		kind = token.LBRACE
	case '}':
		kind = token.RBRACE
	case '(':
		kind = token.LPAREN
	case ')':
		kind = token.RPAREN
	case '[':
		kind = token.LBRACKET
	case ']':
		kind = token.RBRACKET
	case '<':
		kind = token.LT
	case '>':
		kind = token.GT
	case ',':
		kind = token.COMMA
	case ';':
		kind = token.SEMICOLON
	case ':':
		kind = token.COLON
	case '?':
		kind = token.QUESTION
	case '|':
		kind = token.PIPE
	case '&':
		kind = token.AMP
	case '-':
		kind = token.MINUS
	case '+':
		kind = token.PLUS
	case '=':
		if l.peekChar() == '>' {
			l.readChar()
			kind = token.ARROW
		} else {
			kind = token.ASSIGN
		}
	case '.':
		if isDigit(l.peekChar()) {
			return l.readNumber(start)
		}
		kind = token.DOT
	case '"', '\'':
		return l.readString(start)
	default:
		switch {
		case isDigit(l.ch):
			return l.readNumber(start)
		case isIdentStart(l.ch):
			return l.readIdentifier(start)
		default:
			ch := l.ch
			l.readChar()
			return l.illegal(start, "unexpected character "+quoteRune(ch))
		}
	}

	l.readChar()
	return l.make(kind, start)
}

func (l *Lexer) make(kind token.Kind, start token.Pos) token.Token {
	text := l.input[start.Offset:l.position]
	return token.Token{Kind: kind, Text: text, Value: text, Loc: token.Span{Start: start, End: l.pos()}}
}

func (l *Lexer) illegal(start token.Pos, msg string) token.Token {
	return token.Token{
		Kind:  token.ILLEGAL,
		Text:  l.input[start.Offset:l.position],
		Value: msg,
		Loc:   token.Span{Start: start, End: l.pos()},
	}
}

// skipTrivia skips whitespace and comments. It returns a message if a
// block comment is not terminated.
func (l *Lexer) skipTrivia() string {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' || l.ch == '\v' || l.ch == '\f':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			l.skipSingleLineComment()
		case l.ch == '/' && l.peekChar() == '*':
			if !l.skipMultiLineComment() {
				return "unterminated block comment"
			}
		case !l.atEOF() && unicode.IsSpace(l.ch):
			l.readChar()
		default:
			return ""
		}
	}
}

// skipSingleLineComment skips a single-line comment (//)
func (l *Lexer) skipSingleLineComment() {
	for l.ch != '\n' && !l.atEOF() {
		l.readChar()
	}
}

// skipMultiLineComment skips a multi-line comment (/* */), reporting whether it was closed
func (l *Lexer) skipMultiLineComment() bool {
	l.readChar() // consume '/'
	l.readChar() // consume '*'
	for !l.atEOF() {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // consume '*'
			l.readChar() // consume '/'
			return true
		}
		l.readChar()
	}
	return false
}

// readIdentifier reads an identifier; keywords are identified by the parser
func (l *Lexer) readIdentifier(start token.Pos) token.Token {
	for isIdentPart(l.ch) && !l.atEOF() {
		l.readChar()
	}
	return l.make(token.IDENT, start)
}

// readNumber reads a numeric literal. Every form TypeScript accepts is
// scanned so that later stages can reject what they do not support.
func (l *Lexer) readNumber(start token.Pos) token.Token {
	if l.ch == '0' {
		switch l.peekChar() {
		case 'x', 'X':
			return l.readRadix(start, isHexDigit)
		case 'o', 'O':
			return l.readRadix(start, func(r rune) bool { return r >= '0' && r <= '7' })
		case 'b', 'B':
			return l.readRadix(start, func(r rune) bool { return r == '0' || r == '1' })
		}
	}

	l.readDigits(isDigit)
	if l.ch == '.' {
		l.readChar()
		l.readDigits(isDigit)
	}
	if l.ch == 'e' || l.ch == 'E' {
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		if !isDigit(l.ch) {
			return l.illegal(start, "malformed exponent in numeric literal")
		}
		l.readDigits(isDigit)
	}
	return l.finishNumber(start)
}

func (l *Lexer) readRadix(start token.Pos, digit func(rune) bool) token.Token {
	l.readChar() // consume '0'
	l.readChar() // consume radix letter
	if !digit(l.ch) {
		return l.illegal(start, "missing digits in numeric literal")
	}
	l.readDigits(digit)
	return l.finishNumber(start)
}

func (l *Lexer) readDigits(digit func(rune) bool) {
	for digit(l.ch) || (l.ch == '_' && digit(l.peekChar())) {
		l.readChar()
	}
}

func (l *Lexer) finishNumber(start token.Pos) token.Token {
	// BigInt suffix
	if l.ch == 'n' {
		l.readChar()
	}
	if isIdentStart(l.ch) || isDigit(l.ch) {
		return l.illegal(start, "identifier starts immediately after numeric literal")
	}
	return l.make(token.NUMBER, start)
}

// readString reads a quoted string literal and decodes its escapes
func (l *Lexer) readString(start token.Pos) token.Token {
	quote := l.ch
	l.readChar()

	var sb strings.Builder
	for {
		switch {
		case l.atEOF() || l.ch == '\n' || l.ch == '\r':
			return l.illegal(start, "unterminated string literal")
		case l.ch == quote:
			l.readChar()
			tok := l.make(token.STRING, start)
			tok.Value = sb.String()
			return tok
		case l.ch == '\\':
			l.readChar()
			if msg := l.readEscape(&sb); msg != "" {
				return l.illegal(start, msg)
			}
		default:
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}
}

// readEscape decodes the escape sequence after a backslash
func (l *Lexer) readEscape(sb *strings.Builder) string {
	ch := l.ch
	switch ch {
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'v':
		sb.WriteByte('\v')
	case '0':
		if isDigit(l.peekChar()) {
			return "octal escape sequences are not allowed"
		}
		sb.WriteByte(0)
	case '\r':
		// Line continuation
		if l.peekChar() == '\n' {
			l.readChar()
		}
	case '\n':
	case 'x':
		l.readChar()
		r, ok := l.readHex(2)
		if !ok {
			return "invalid hexadecimal escape sequence"
		}
		sb.WriteRune(r)
		return ""
	case 'u':
		l.readChar()
		var (
			r  rune
			ok bool
		)
		if l.ch == '{' {
			l.readChar()
			r, ok = l.readHexUntilBrace()
		} else {
			r, ok = l.readHex(4)
		}
		if !ok || r > unicode.MaxRune {
			return "invalid unicode escape sequence"
		}
		sb.WriteRune(r)
		return ""
	default:
		if l.atEOF() {
			return "unterminated string literal"
		}
		sb.WriteRune(ch)
	}
	l.readChar()
	return ""
}

func (l *Lexer) readHex(n int) (rune, bool) {
	var r rune
	for i := 0; i < n; i++ {
		if !isHexDigit(l.ch) {
			return 0, false
		}
		r = r*16 + hexValue(l.ch)
		l.readChar()
	}
	return r, true
}

func (l *Lexer) readHexUntilBrace() (rune, bool) {
	var r rune
	digits := 0
	for isHexDigit(l.ch) {
		r = r*16 + hexValue(l.ch)
		digits++
		if r > unicode.MaxRune {
			return 0, false
		}
		l.readChar()
	}
	if digits == 0 || l.ch != '}' {
		return 0, false
	}
	l.readChar()
	return r, true
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}

func hexValue(ch rune) rune {
	switch {
	case isDigit(ch):
		return ch - '0'
	case 'a' <= ch && ch <= 'f':
		return ch - 'a' + 10
	default:
		return ch - 'A' + 10
	}
}

func isIdentStart(ch rune) bool {
	return ch == '_' || ch == '$' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch) || unicode.IsDigit(ch) || unicode.Is(unicode.Mn, ch) || unicode.Is(unicode.Mc, ch)
}

func quoteRune(ch rune) string {
	if ch == utf8.RuneError {
		return "(invalid UTF-8)"
	}
	return "'" + string(ch) + "'"
}
