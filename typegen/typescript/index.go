package typescript

import (
	"fmt"
	"sort"
	"strings"

	"github.com/teranos/tser/ir"
	"github.com/teranos/tser/typegen"
)

// ModuleExport represents a generated module and its declarations for barrel export
type ModuleExport struct {
	// Module is the file name without extension, e.g. "schema"
	Module string
	// Types are declarations that only exist at the type level
	Types []string
	// Values are declarations that also exist at runtime (enums)
	Values []string
}

// ExportsOf lists the declarations of file that the generated module exports.
func ExportsOf(module string, file *ir.File) ModuleExport {
	exp := ModuleExport{Module: module}
	for _, item := range file.Items {
		switch item.(type) {
		case ir.Enum:
			exp.Values = append(exp.Values, item.ItemName())
		case ir.Struct, ir.Union:
			exp.Types = append(exp.Types, item.ItemName())
		}
	}
	return exp
}

// IndexFile implements typegen.Indexer.
func (g *Generator) IndexFile() string { return "index.ts" }

// GenerateIndex creates a barrel export module re-exporting every generated
// declaration, so consumers can import from the output directory itself.
func (g *Generator) GenerateIndex(modules []typegen.Module) string {
	exports := make([]ModuleExport, len(modules))
	for i, m := range modules {
		exports[i] = ExportsOf(m.Name, m.File)
	}
	return g.GenerateBarrel(exports)
}

// GenerateBarrel renders the barrel for exports. Modules and names are
// sorted for deterministic output.
func (g *Generator) GenerateBarrel(exports []ModuleExport) string {
	sorted := make([]ModuleExport, len(exports))
	copy(sorted, exports)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Module < sorted[j].Module
	})

	var sb strings.Builder
	sb.WriteString(typegen.Header("//") + "\n")
	sb.WriteString("/* eslint-disable */\n\n")

	for _, exp := range sorted {
		g.writeExport(&sb, "export type", exp.Module, exp.Types)
		g.writeExport(&sb, "export", exp.Module, exp.Values)
	}
	return sb.String()
}

func (g *Generator) writeExport(sb *strings.Builder, keyword, module string, names []string) {
	if len(names) == 0 {
		return
	}
	sortedNames := make([]string, len(names))
	copy(sortedNames, names)
	sort.Strings(sortedNames)

	sb.WriteString(keyword + " {\n")
	for _, name := range sortedNames {
		sb.WriteString(fmt.Sprintf("%s%s,\n", g.indent, name))
	}
	sb.WriteString(fmt.Sprintf("} from './%s';\n\n", module))
}
