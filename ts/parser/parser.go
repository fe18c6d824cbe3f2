// Package parser builds an ast.SourceFile from TypeScript declaration source.
//
// Only top-level interface, enum, and type alias declarations are accepted,
// optionally prefixed with export or declare. The type grammar is broader
// than what the frontend lowers so that valid TypeScript using, for example,
// function types or keyof is reported as unsupported rather than malformed.
// Parsing stops at the first error.
package parser

import (
	"fmt"

	"github.com/teranos/tser/ts/ast"
	"github.com/teranos/tser/ts/lexer"
	"github.com/teranos/tser/ts/token"
)

// Parser is a recursive descent parser over a pre-scanned token stream.
type Parser struct {
	filename string
	src      string
	tokens   []token.Token
	pos      int
	prevEnd  token.Pos
}

// New creates a new parser
func New(filename, src string) *Parser {
	return &Parser{
		filename: filename,
		src:      src,
		tokens:   lexer.Tokenize(filename, src),
	}
}

// ParseFile parses a complete source file.
func ParseFile(filename string, src []byte) (*ast.SourceFile, error) {
	return New(filename, string(src)).Parse()
}

// Parse parses the token stream into a SourceFile
func (p *Parser) Parse() (*ast.SourceFile, error) {
	file := &ast.SourceFile{Filename: p.filename}
	for !p.check(token.EOF) {
		if p.match(token.SEMICOLON) {
			continue
		}
		decl, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		file.Decls = append(file.Decls, decl)
	}
	return file, nil
}

// current returns the token under the cursor
func (p *Parser) current() token.Token {
	return p.tokens[p.pos]
}

// lookahead returns the token n positions past the cursor; the last token repeats
func (p *Parser) lookahead(n int) token.Token {
	if p.pos+n < len(p.tokens) {
		return p.tokens[p.pos+n]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) peek() token.Token {
	return p.lookahead(1)
}

// advance consumes the current token; EOF and ILLEGAL are never consumed
func (p *Parser) advance() token.Token {
	tok := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	p.prevEnd = tok.Loc.End
	return tok
}

func (p *Parser) check(kind token.Kind) bool {
	return p.current().Kind == kind
}

func (p *Parser) checkWord(word string) bool {
	return p.current().Is(word)
}

func (p *Parser) match(kind token.Kind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind token.Kind, context string) (token.Token, error) {
	if !p.check(kind) {
		return token.Token{}, p.errorf("expected %s %s", kind, context)
	}
	return p.advance(), nil
}

// errorf reports a syntax error at the current token. Lexical errors take
// precedence since they explain why the expected token is missing.
func (p *Parser) errorf(format string, args ...any) error {
	tok := p.current()
	if tok.Kind == token.ILLEGAL {
		return &SyntaxError{Pos: tok.Loc.Start, Msg: tok.Value}
	}
	msg := fmt.Sprintf(format, args...)
	return &SyntaxError{Pos: tok.Loc.Start, Msg: msg + ", found " + describe(tok)}
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.IDENT, token.NUMBER, token.STRING:
		return fmt.Sprintf("%s %s", tok.Kind, tok.Text)
	default:
		return tok.Kind.String()
	}
}

// span covers from start to the end of the last consumed token
func (p *Parser) span(start token.Pos) token.Span {
	return token.Span{Start: start, End: p.prevEnd}
}

// onNewLine reports whether the current token starts a line after the previous token
func (p *Parser) onNewLine() bool {
	return p.current().Loc.Start.Line > p.prevEnd.Line
}

func (p *Parser) parseDecl() (ast.Decl, error) {
	start := p.current().Loc.Start
	var mods ast.Modifiers
	if p.checkWord("export") {
		p.advance()
		mods.Export = true
	}
	if p.checkWord("declare") {
		p.advance()
		mods.Declare = true
	}

	switch {
	case p.checkWord("interface"):
		return p.parseInterface(start, mods)
	case p.checkWord("enum"):
		return p.parseEnum(start, mods, false)
	case p.checkWord("const") && p.peek().Is("enum"):
		p.advance()
		return p.parseEnum(start, mods, true)
	case p.checkWord("type") && p.peek().Kind == token.IDENT:
		return p.parseTypeAlias(start, mods)
	default:
		return nil, p.errorf("expected interface, enum, or type declaration")
	}
}

func (p *Parser) parseIdent(context string) (*ast.Ident, error) {
	tok, err := p.expect(token.IDENT, context)
	if err != nil {
		return nil, err
	}
	return &ast.Ident{Loc: tok.Loc, Name: tok.Text}, nil
}

func (p *Parser) parseInterface(start token.Pos, mods ast.Modifiers) (ast.Decl, error) {
	p.advance() // interface
	name, err := p.parseIdent("for interface name")
	if err != nil {
		return nil, err
	}
	decl := &ast.InterfaceDecl{Modifiers: mods, Name: name}

	if p.check(token.LT) {
		if decl.TypeParams, err = p.parseTypeParams(); err != nil {
			return nil, err
		}
	}

	if p.checkWord("extends") {
		p.advance()
		for {
			ref, err := p.parseTypeReference()
			if err != nil {
				return nil, err
			}
			decl.Extends = append(decl.Extends, ref)
			if !p.match(token.COMMA) {
				break
			}
		}
	}

	if decl.Members, err = p.parseMembers("to open interface body"); err != nil {
		return nil, err
	}
	decl.Loc = p.span(start)
	return decl, nil
}

func (p *Parser) parseTypeAlias(start token.Pos, mods ast.Modifiers) (ast.Decl, error) {
	p.advance() // type
	name, err := p.parseIdent("for type alias name")
	if err != nil {
		return nil, err
	}
	decl := &ast.TypeAliasDecl{Modifiers: mods, Name: name}

	if p.check(token.LT) {
		if decl.TypeParams, err = p.parseTypeParams(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.ASSIGN, "after type alias name"); err != nil {
		return nil, err
	}
	if decl.Type, err = p.parseType(); err != nil {
		return nil, err
	}
	decl.Loc = p.span(start)
	return decl, nil
}

func (p *Parser) parseEnum(start token.Pos, mods ast.Modifiers, isConst bool) (ast.Decl, error) {
	p.advance() // enum
	name, err := p.parseIdent("for enum name")
	if err != nil {
		return nil, err
	}
	decl := &ast.EnumDecl{Modifiers: mods, Const: isConst, Name: name}

	if _, err := p.expect(token.LBRACE, "to open enum body"); err != nil {
		return nil, err
	}
	for !p.check(token.RBRACE) {
		member, err := p.parseEnumMember()
		if err != nil {
			return nil, err
		}
		decl.Members = append(decl.Members, member)
		if !p.match(token.COMMA) {
			break
		}
	}
	if _, err := p.expect(token.RBRACE, "to close enum body"); err != nil {
		return nil, err
	}
	decl.Loc = p.span(start)
	return decl, nil
}

func (p *Parser) parseEnumMember() (*ast.EnumMember, error) {
	start := p.current().Loc.Start
	tok := p.current()
	var name *ast.Ident
	switch tok.Kind {
	case token.IDENT:
		p.advance()
		name = &ast.Ident{Loc: tok.Loc, Name: tok.Text}
	case token.STRING:
		p.advance()
		name = &ast.Ident{Loc: tok.Loc, Name: tok.Value}
	default:
		return nil, p.errorf("expected enum member name")
	}

	member := &ast.EnumMember{Name: name}
	if p.match(token.ASSIGN) {
		init, err := p.parseEnumInit()
		if err != nil {
			return nil, err
		}
		member.Init = init
	}
	member.Loc = p.span(start)
	return member, nil
}

func endsEnumInit(kind token.Kind) bool {
	return kind == token.COMMA || kind == token.RBRACE
}

// parseEnumInit parses a member initializer. Literal forms are modeled;
// everything else is captured as source text up to the next member.
func (p *Parser) parseEnumInit() (ast.Expr, error) {
	start := p.current().Loc.Start
	tok := p.current()

	switch {
	case tok.Kind == token.NUMBER && endsEnumInit(p.peek().Kind):
		p.advance()
		return &ast.NumberLit{Loc: tok.Loc, Raw: tok.Text}, nil
	case tok.Kind == token.STRING && endsEnumInit(p.peek().Kind):
		p.advance()
		return &ast.StringLit{Loc: tok.Loc, Value: tok.Value, Raw: tok.Text}, nil
	case (tok.Kind == token.MINUS || tok.Kind == token.PLUS) &&
		p.peek().Kind == token.NUMBER && endsEnumInit(p.lookahead(2).Kind):
		p.advance()
		num := p.advance()
		return &ast.UnaryExpr{
			Loc: p.span(start),
			Op:  tok.Kind,
			X:   &ast.NumberLit{Loc: num.Loc, Raw: num.Text},
		}, nil
	}

	depth := 0
	consumed := 0
	for {
		tok := p.current()
		if tok.Kind == token.EOF || tok.Kind == token.ILLEGAL {
			return nil, p.errorf("unterminated enum member initializer")
		}
		if depth == 0 && endsEnumInit(tok.Kind) {
			break
		}
		switch tok.Kind {
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACKET, token.RBRACE:
			depth--
		}
		p.advance()
		consumed++
	}
	if consumed == 0 {
		return nil, p.errorf("expected enum member initializer")
	}
	loc := p.span(start)
	return &ast.OtherExpr{Loc: loc, Text: p.src[loc.Start.Offset:loc.End.Offset]}, nil
}

func (p *Parser) parseTypeParams() (*ast.TypeParamList, error) {
	start := p.current().Loc.Start
	p.advance() // <
	list := &ast.TypeParamList{}
	for !p.check(token.GT) {
		pstart := p.current().Loc.Start
		name, err := p.parseIdent("for type parameter name")
		if err != nil {
			return nil, err
		}
		param := &ast.TypeParam{Name: name}
		if p.checkWord("extends") {
			p.advance()
			if param.Constraint, err = p.parseType(); err != nil {
				return nil, err
			}
		}
		if p.match(token.ASSIGN) {
			if param.Default, err = p.parseType(); err != nil {
				return nil, err
			}
		}
		param.Loc = p.span(pstart)
		list.Params = append(list.Params, param)
		if !p.match(token.COMMA) {
			break
		}
	}
	if _, err := p.expect(token.GT, "to close type parameters"); err != nil {
		return nil, err
	}
	list.Loc = p.span(start)
	return list, nil
}

// parseMembers parses `{ member; member, member }`. Members may also be
// separated by line breaks alone.
func (p *Parser) parseMembers(context string) ([]ast.TypeElement, error) {
	if _, err := p.expect(token.LBRACE, context); err != nil {
		return nil, err
	}
	var members []ast.TypeElement
	for !p.check(token.RBRACE) {
		member, err := p.parseTypeElement()
		if err != nil {
			return nil, err
		}
		members = append(members, member)

		if p.match(token.SEMICOLON) || p.match(token.COMMA) {
			continue
		}
		if !p.check(token.RBRACE) && !p.onNewLine() {
			return nil, p.errorf("expected ';' between members")
		}
	}
	p.advance() // }
	return members, nil
}

func isMemberNameStart(tok token.Token) bool {
	switch tok.Kind {
	case token.IDENT, token.STRING, token.NUMBER, token.LBRACKET:
		return true
	}
	return false
}

func (p *Parser) parseTypeElement() (ast.TypeElement, error) {
	start := p.current().Loc.Start

	readonly := false
	if p.checkWord("readonly") && isMemberNameStart(p.peek()) {
		p.advance()
		readonly = true
	}

	if p.check(token.LBRACKET) {
		return p.parseIndexSignature(start)
	}

	tok := p.current()
	var name *ast.Ident
	switch tok.Kind {
	case token.IDENT, token.NUMBER:
		name = &ast.Ident{Loc: tok.Loc, Name: tok.Text}
	case token.STRING:
		name = &ast.Ident{Loc: tok.Loc, Name: tok.Value}
	default:
		return nil, p.errorf("expected member name")
	}
	p.advance()
	optional := p.match(token.QUESTION)

	if p.check(token.LPAREN) || p.check(token.LT) {
		return p.parseMethodSignature(start, name, optional)
	}

	prop := &ast.PropertySignature{Readonly: readonly, Name: name, Optional: optional}
	if p.match(token.COLON) {
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		prop.Type = typ
	}
	prop.Loc = p.span(start)
	return prop, nil
}

func (p *Parser) parseIndexSignature(start token.Pos) (ast.TypeElement, error) {
	p.advance() // [
	kstart := p.current().Loc.Start
	name, err := p.parseIdent("for index signature parameter")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON, "after index signature parameter"); err != nil {
		return nil, err
	}
	keyType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	key := &ast.Parameter{Loc: p.span(kstart), Name: name, Type: keyType}
	if _, err := p.expect(token.RBRACKET, "to close index signature"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON, "after index signature"); err != nil {
		return nil, err
	}
	value, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.IndexSignature{Loc: p.span(start), Key: key, Value: value}, nil
}

func (p *Parser) parseMethodSignature(start token.Pos, name *ast.Ident, optional bool) (ast.TypeElement, error) {
	method := &ast.MethodSignature{Name: name, Optional: optional}
	var err error
	if p.check(token.LT) {
		if method.TypeParams, err = p.parseTypeParams(); err != nil {
			return nil, err
		}
	}
	if method.Params, err = p.parseParams(); err != nil {
		return nil, err
	}
	if p.match(token.COLON) {
		if method.Result, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	method.Loc = p.span(start)
	return method, nil
}

// parseParams parses `(a: A, b?: B)`.
func (p *Parser) parseParams() ([]*ast.Parameter, error) {
	if _, err := p.expect(token.LPAREN, "to open parameter list"); err != nil {
		return nil, err
	}
	var params []*ast.Parameter
	for !p.check(token.RPAREN) {
		start := p.current().Loc.Start
		name, err := p.parseIdent("for parameter name")
		if err != nil {
			return nil, err
		}
		param := &ast.Parameter{Name: name, Optional: p.match(token.QUESTION)}
		if p.match(token.COLON) {
			if param.Type, err = p.parseType(); err != nil {
				return nil, err
			}
		}
		param.Loc = p.span(start)
		params = append(params, param)
		if !p.match(token.COMMA) {
			break
		}
	}
	if _, err := p.expect(token.RPAREN, "to close parameter list"); err != nil {
		return nil, err
	}
	return params, nil
}

// parseType parses a union type, the loosest-binding type form.
func (p *Parser) parseType() (ast.TypeNode, error) {
	start := p.current().Loc.Start
	leading := p.match(token.PIPE)

	first, err := p.parseIntersectionType()
	if err != nil {
		return nil, err
	}
	if !leading && !p.check(token.PIPE) {
		return first, nil
	}

	types := []ast.TypeNode{first}
	for p.match(token.PIPE) {
		t, err := p.parseIntersectionType()
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return &ast.UnionType{Loc: p.span(start), Types: types}, nil
}

func (p *Parser) parseIntersectionType() (ast.TypeNode, error) {
	start := p.current().Loc.Start
	leading := p.match(token.AMP)

	first, err := p.parsePostfixType()
	if err != nil {
		return nil, err
	}
	if !leading && !p.check(token.AMP) {
		return first, nil
	}

	types := []ast.TypeNode{first}
	for p.match(token.AMP) {
		t, err := p.parsePostfixType()
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return &ast.IntersectionType{Loc: p.span(start), Types: types}, nil
}

// parsePostfixType parses array and indexed access suffixes. A `[` on a new
// line does not continue the type.
func (p *Parser) parsePostfixType() (ast.TypeNode, error) {
	start := p.current().Loc.Start
	t, err := p.parsePrimaryType()
	if err != nil {
		return nil, err
	}
	for p.check(token.LBRACKET) && !p.onNewLine() {
		p.advance()
		if p.match(token.RBRACKET) {
			t = &ast.ArrayType{Loc: p.span(start), Elem: t}
			continue
		}
		index, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RBRACKET, "to close indexed access type"); err != nil {
			return nil, err
		}
		t = &ast.IndexedAccessType{Loc: p.span(start), Object: t, Index: index}
	}
	return t, nil
}

var keywordTypes = map[string]bool{
	"any":       true,
	"unknown":   true,
	"never":     true,
	"void":      true,
	"undefined": true,
	"null":      true,
	"string":    true,
	"number":    true,
	"boolean":   true,
	"bigint":    true,
	"symbol":    true,
	"object":    true,
	"this":      true,
}

var typeOperators = map[string]bool{
	"keyof":  true,
	"typeof": true,
	"unique": true,
	"infer":  true,
}

func (p *Parser) parsePrimaryType() (ast.TypeNode, error) {
	start := p.current().Loc.Start
	tok := p.current()

	switch tok.Kind {
	case token.LPAREN:
		if p.isFunctionTypeStart() {
			return p.parseFunctionType(start)
		}
		p.advance()
		inner, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "to close parenthesized type"); err != nil {
			return nil, err
		}
		return &ast.ParenType{Loc: p.span(start), Type: inner}, nil

	case token.LBRACE:
		members, err := p.parseMembers("to open object type")
		if err != nil {
			return nil, err
		}
		return &ast.TypeLiteral{Loc: p.span(start), Members: members}, nil

	case token.LBRACKET:
		p.advance()
		tuple := &ast.TupleType{}
		for !p.check(token.RBRACKET) {
			elem, err := p.parseType()
			if err != nil {
				return nil, err
			}
			tuple.Elems = append(tuple.Elems, elem)
			if !p.match(token.COMMA) {
				break
			}
		}
		if _, err := p.expect(token.RBRACKET, "to close tuple type"); err != nil {
			return nil, err
		}
		tuple.Loc = p.span(start)
		return tuple, nil

	case token.STRING:
		p.advance()
		return &ast.LiteralType{Loc: tok.Loc, Kind: ast.StringLiteral, Value: tok.Value}, nil

	case token.NUMBER:
		p.advance()
		return &ast.LiteralType{Loc: tok.Loc, Kind: ast.NumberLiteral, Value: tok.Text}, nil

	case token.MINUS:
		if p.peek().Kind != token.NUMBER {
			break
		}
		p.advance()
		num := p.advance()
		return &ast.LiteralType{Loc: p.span(start), Kind: ast.NumberLiteral, Value: "-" + num.Text}, nil

	case token.IDENT:
		switch {
		case tok.Text == "true" || tok.Text == "false":
			p.advance()
			return &ast.LiteralType{Loc: tok.Loc, Kind: ast.BooleanLiteral, Value: tok.Text}, nil
		case keywordTypes[tok.Text] && p.peek().Kind != token.DOT:
			p.advance()
			return &ast.KeywordType{Loc: tok.Loc, Keyword: tok.Text}, nil
		case typeOperators[tok.Text] && p.peek().Kind == token.IDENT:
			p.advance()
			operand, err := p.parsePostfixType()
			if err != nil {
				return nil, err
			}
			return &ast.OperatorType{Loc: p.span(start), Operator: tok.Text, Type: operand}, nil
		case tok.Text == "readonly" && (p.peek().Kind == token.IDENT || p.peek().Kind == token.LBRACKET):
			// readonly T[] and readonly [A, B] are the underlying array or tuple
			p.advance()
			return p.parsePostfixType()
		case tok.Text == "new" && p.peek().Kind == token.LPAREN:
			p.advance()
			fn, err := p.parseFunctionType(p.current().Loc.Start)
			if err != nil {
				return nil, err
			}
			return &ast.OperatorType{Loc: p.span(start), Operator: "new", Type: fn}, nil
		default:
			return p.parseTypeReference()
		}
	}
	return nil, p.errorf("expected type")
}

// isFunctionTypeStart distinguishes `(a: T) => R` from a parenthesized type
func (p *Parser) isFunctionTypeStart() bool {
	next := p.peek()
	if next.Kind == token.RPAREN {
		return true
	}
	if next.Kind != token.IDENT {
		return false
	}
	switch p.lookahead(2).Kind {
	case token.COLON, token.QUESTION, token.COMMA:
		return true
	case token.RPAREN:
		return p.lookahead(3).Kind == token.ARROW
	}
	return false
}

func (p *Parser) parseFunctionType(start token.Pos) (ast.TypeNode, error) {
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ARROW, "in function type"); err != nil {
		return nil, err
	}
	result, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionType{Loc: p.span(start), Params: params, Result: result}, nil
}

// parseTypeReference parses `a.b.C<T, U>`.
func (p *Parser) parseTypeReference() (*ast.TypeReference, error) {
	start := p.current().Loc.Start
	first, err := p.expect(token.IDENT, "for type name")
	if err != nil {
		return nil, err
	}
	ref := &ast.TypeReference{Name: first.Text}
	for p.check(token.DOT) && p.peek().Kind == token.IDENT {
		p.advance()
		ref.Name += "." + p.advance().Text
	}

	if p.check(token.LT) && !p.onNewLine() {
		p.advance()
		for !p.check(token.GT) {
			arg, err := p.parseType()
			if err != nil {
				return nil, err
			}
			ref.TypeArgs = append(ref.TypeArgs, arg)
			if !p.match(token.COMMA) {
				break
			}
		}
		if _, err := p.expect(token.GT, "to close type arguments"); err != nil {
			return nil, err
		}
	}
	ref.Loc = p.span(start)
	return ref, nil
}
