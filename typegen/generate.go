package typegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/teranos/tser/block"
	"github.com/teranos/tser/errors"
	"github.com/teranos/tser/ir"
	"github.com/teranos/tser/version"
)

// Generate renders file with g.
//
// The head block comes first, followed by every item in file order. Each
// item is flattened to the file level and followed by one blank line.
// Services have no rendering; they fail with an error matching
// errors.ErrUnsupportedDeclaration and nothing is returned. So do enums an
// EnumChecker rejects.
func Generate(file *ir.File, g Generator) (string, error) {
	items := make([]block.Block, 0, len(file.Items))
	for _, item := range file.Items {
		var b block.Block
		switch it := item.(type) {
		case ir.Struct:
			b = g.StructDecl(StructOf(it, g))
		case ir.Enum:
			if c, ok := g.(EnumChecker); ok {
				if err := c.CheckEnum(it); err != nil {
					return "", err
				}
			}
			b = g.EnumDecl(EnumOf(it))
		case ir.Union:
			b = g.UnionDecl(UnionOf(it, g))
		case ir.Service:
			err := errors.NewUnsupportedDeclarationError("service %s: code generation for services is not implemented", it.Name)
			return "", errors.WithHint(err, "declare request and response types as interfaces; tser generates data types only")
		default:
			return "", errors.AssertionFailedf("unknown item type %T", item)
		}
		items = append(items, block.Flat(block.Flatten(b), ""))
	}

	out := block.New(block.Flatten(g.Head()), block.Flat(items))
	return out.Render(IndentOf(g)), nil
}

// headerPrefix starts the banner line every generator puts first in its head.
const headerPrefix = "Code generated by tser"

// Header returns the generated-code banner as a comment using prefix, e.g.
// "// Code generated by tser dev. DO NOT EDIT." The line matches the
// convention tools use to recognise generated files.
func Header(commentPrefix string) string {
	return fmt.Sprintf("%s %s %s. DO NOT EDIT.", commentPrefix, headerPrefix, version.Banner())
}

// IsHeaderLine reports whether line is a banner written by Header with any
// comment prefix and any tser version. HTML comments wrapping the banner
// are accepted too.
func IsHeaderLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	html := strings.HasPrefix(trimmed, "<!--") && strings.HasSuffix(trimmed, "-->")
	if html {
		trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, "-->"))
	}
	i := strings.Index(trimmed, headerPrefix)
	if i <= 0 || !strings.HasSuffix(trimmed, "DO NOT EDIT.") {
		return false
	}
	switch strings.TrimSpace(trimmed[:i]) {
	case "//", "#":
		return !html
	case "<!--":
		return html
	}
	return false
}

// DuplicateEnumValue finds the first two members of e that share a value.
// Integer members compare by value, so 16 and 0x10 are duplicates.
func DuplicateEnumValue(e ir.Enum) (first, second string, ok bool) {
	seen := make(map[string]string)
	check := func(member, key string) bool {
		if prev, dup := seen[key]; dup {
			first, second = prev, member
			return true
		}
		seen[key] = member
		return false
	}
	switch members := e.Kind.(type) {
	case ir.IntegerMembers:
		for _, m := range members {
			if check(m.Name, strconv.FormatInt(m.Value, 10)) {
				return first, second, true
			}
		}
	case ir.StringMembers:
		for _, m := range members {
			if check(m.Name, m.Value) {
				return first, second, true
			}
		}
	}
	return "", "", false
}
