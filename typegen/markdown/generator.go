// Package markdown renders IR declarations as reference documentation:
// one section per declaration with a table of its fields, members or
// variants. Types are written in the schema's own vocabulary (i32,
// string, T[], T | null).
package markdown

import (
	"fmt"
	"strings"

	"github.com/teranos/tser/block"
	"github.com/teranos/tser/ir"
	"github.com/teranos/tser/typegen"
)

// Generator implements typegen.Generator for Markdown
type Generator struct{}

// NewGenerator creates a new Markdown generator
func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Head() block.Block {
	return block.Flat(
		"<!-- "+strings.TrimSpace(typegen.Header(""))+" -->",
		"",
	)
}

func (g *Generator) PrimitiveExpr(p ir.Primitive) string { return p.String() }
func (g *Generator) IdentifierExpr(name string) string   { return name }

func (g *Generator) ArrayExpr(elem string) string {
	if strings.Contains(elem, " | ") {
		elem = "(" + elem + ")"
	}
	return elem + "[]"
}

func (g *Generator) OptionalExpr(inner string) string { return inner + " | null" }

func (g *Generator) StructDecl(s typegen.Struct) block.Block {
	return block.Flat("## "+s.Name, "", fieldTable(s.Fields))
}

func (g *Generator) EnumDecl(e typegen.Enum) block.Block {
	kind := "Integer"
	if e.ValueType == typegen.StringValues {
		kind = "String"
	}
	rows := make([][]string, len(e.Members))
	for i, m := range e.Members {
		value := m.Value
		if e.ValueType == typegen.StringValues {
			value = fmt.Sprintf("%q", m.Value)
		}
		rows[i] = []string{code(m.Name), code(value)}
	}
	return block.Flat(
		"## "+e.Name,
		"",
		kind+" enum.",
		"",
		table([]string{"Member", "Value"}, rows, "No members."),
	)
}

func (g *Generator) UnionDecl(u typegen.Union) block.Block {
	switch kind := u.Kind.(type) {
	case typegen.ExternallyTagged:
		rows := make([][]string, len(kind.Variants))
		for i, v := range kind.Variants {
			rows[i] = []string{code(v.Name), code(v.Type)}
		}
		return block.Flat(
			"## "+u.Name,
			"",
			"Union with one key per variant.",
			"",
			table([]string{"Variant", "Type"}, rows, ""),
		)
	case typegen.InternallyTagged:
		sections := []any{
			"## " + u.Name,
			"",
			fmt.Sprintf("Union tagged by %s.", code(kind.TagField)),
		}
		for _, v := range kind.Variants {
			sections = append(sections, "", "### "+code(v.Name), "", fieldTable(v.Fields))
		}
		return block.Flat(sections...)
	}
	return block.Block{}
}

func fieldTable(fields []typegen.Field) block.Block {
	rows := make([][]string, len(fields))
	for i, f := range fields {
		required := "yes"
		if f.Optional {
			required = "no"
		}
		rows[i] = []string{code(f.Name), code(f.Type), required}
	}
	return table([]string{"Field", "Type", "Required"}, rows, "No fields.")
}

// table renders a pipe table, or empty when there are no rows.
func table(header []string, rows [][]string, empty string) block.Block {
	if len(rows) == 0 {
		return block.Line(empty)
	}
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	lines := []string{row(header), row(sep)}
	for _, r := range rows {
		lines = append(lines, row(r))
	}
	return block.Flat(lines)
}

func row(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

// code wraps s in a code span, escaping the pipes that would end a table cell.
func code(s string) string {
	return "`" + strings.ReplaceAll(s, "|", `\|`) + "`"
}
