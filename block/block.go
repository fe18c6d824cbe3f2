// Package block is a small algebra for assembling ordered, indentation-aware text.
//
// A Block is a single line, a nested group whose children are indented one
// level deeper than the group, or a flat group whose children are spliced
// into whatever contains it. Rendering is depth-first and preserves
// construction order; the same Block always renders to the same text.
//
//	b := block.New(
//	    "pub struct Point {",
//	    block.New("pub x: f64,", "pub y: f64,"),
//	    "}",
//	)
//
// The outermost block never indents its own children, so b renders its
// header and closing brace at column zero and the fields one level in.
package block

import (
	"fmt"
	"strings"
)

// DefaultIndent is the indentation unit used by String.
const DefaultIndent = "    "

type kind uint8

const (
	kindFlat kind = iota
	kindLine
	kindNested
)

// Block is an immutable piece of generated text. The zero value is an empty flat group.
type Block struct {
	kind     kind
	text     string
	children []Block
}

// Line returns a single-line block. The text should not contain newlines.
func Line(text string) Block {
	return Block{kind: kindLine, text: text}
}

// Empty returns a blank line.
func Empty() Block {
	return Line("")
}

// New groups parts into a nested block: rendered inside another block, its
// lines appear one level deeper than the parent's. Parts may be strings,
// Blocks, or slices of either (slices are spliced in); any other value is
// formatted with fmt.Sprint. Parts keep argument order.
func New(parts ...any) Block {
	return Block{kind: kindNested, children: collect(parts)}
}

// Flat groups parts into a block whose children are lifted into the parent,
// at the parent's level.
func Flat(parts ...any) Block {
	return Block{kind: kindFlat, children: collect(parts)}
}

// Flatten removes b's own bounding level. Its direct children take its place
// in the enclosing block; anything nested inside them keeps its structure.
// A line is returned unchanged.
func Flatten(b Block) Block {
	if b.IsLine() {
		return b
	}
	return Block{kind: kindFlat, children: b.children}
}

// IsLine reports whether b is a single line.
func (b Block) IsLine() bool {
	return b.kind == kindLine
}

// Len returns the number of rendered lines in b.
func (b Block) Len() int {
	if b.IsLine() {
		return 1
	}
	n := 0
	for _, c := range b.children {
		n += c.Len()
	}
	return n
}

// Lines renders b to its lines, indenting with indent per nesting level.
// Blank lines carry no indentation.
func (b Block) Lines(indent string) []string {
	lines := make([]string, 0, b.Len())
	if b.IsLine() {
		return append(lines, b.text)
	}
	for _, c := range b.children {
		lines = c.appendLines(lines, indent, 0)
	}
	return lines
}

// Render joins the lines of b with newlines, terminating every line.
func (b Block) Render(indent string) string {
	var sb strings.Builder
	for _, line := range b.Lines(indent) {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// String renders b with DefaultIndent.
func (b Block) String() string {
	return b.Render(DefaultIndent)
}

func (b Block) appendLines(lines []string, indent string, depth int) []string {
	switch b.kind {
	case kindLine:
		if b.text == "" {
			return append(lines, "")
		}
		return append(lines, strings.Repeat(indent, depth)+b.text)
	case kindNested:
		for _, c := range b.children {
			lines = c.appendLines(lines, indent, depth+1)
		}
	case kindFlat:
		for _, c := range b.children {
			lines = c.appendLines(lines, indent, depth)
		}
	}
	return lines
}

func collect(parts []any) []Block {
	children := make([]Block, 0, len(parts))
	for _, p := range parts {
		switch v := p.(type) {
		case Block:
			children = append(children, v)
		case string:
			children = append(children, Line(v))
		case []Block:
			children = append(children, v...)
		case []string:
			for _, s := range v {
				children = append(children, Line(s))
			}
		case nil:
		default:
			children = append(children, Line(fmt.Sprint(v)))
		}
	}
	return children
}
