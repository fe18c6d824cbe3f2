package rust

import (
	"fmt"
	"sort"
	"strings"

	"github.com/teranos/tser/typegen"
	"github.com/teranos/tser/typegen/util"
)

// IndexFile implements typegen.Indexer.
func (g *Generator) IndexFile() string { return "mod.rs" }

// GenerateIndex creates a mod.rs declaring every generated module and
// re-exporting its types. Files whose names are not Rust identifiers are
// mapped with #[path].
func (g *Generator) GenerateIndex(modules []typegen.Module) string {
	names := make([]string, len(modules))
	for i, m := range modules {
		names[i] = m.Name
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString(typegen.Header("//") + "\n\n")
	for _, name := range names {
		ident := toRustIdent(util.ToSnakeCase(name))
		if strings.TrimPrefix(ident, "r#") != name {
			sb.WriteString(fmt.Sprintf("#[path = %s]\n", quote(name+".rs")))
		}
		sb.WriteString(fmt.Sprintf("pub mod %s;\n", ident))
	}
	if len(names) > 0 {
		sb.WriteString("\n")
	}
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("pub use %s::*;\n", toRustIdent(util.ToSnakeCase(name))))
	}
	return sb.String()
}
