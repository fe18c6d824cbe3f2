// Package targets assembles the registry of every built-in generator.
package targets

import (
	"github.com/teranos/tser/typegen"
	"github.com/teranos/tser/typegen/markdown"
	"github.com/teranos/tser/typegen/python"
	"github.com/teranos/tser/typegen/rust"
	"github.com/teranos/tser/typegen/swift"
	"github.com/teranos/tser/typegen/typescript"
)

// Language names of the built-in targets.
const (
	Rust       = "rust"
	Swift      = "swift"
	TypeScript = "typescript"
	Python     = "python"
	Markdown   = "markdown"
)

// Registry builds a registry of the built-in targets configured by opts.
func Registry(opts typegen.Options) (*typegen.Registry, error) {
	return typegen.NewRegistry(
		typegen.Target{
			Language:  Rust,
			Aliases:   []string{"rs"},
			Extension: "rs",
			Generator: rust.NewGenerator(opts.RustDerives),
		},
		typegen.Target{
			Language:  Swift,
			Extension: "swift",
			Generator: swift.NewGenerator(opts.SwiftProtocols, opts.SwiftAccess),
		},
		typegen.Target{
			Language:  TypeScript,
			Aliases:   []string{"ts"},
			Extension: "ts",
			Generator: typescript.NewGenerator(opts.TypeScriptIndent),
		},
		typegen.Target{
			Language:  Python,
			Aliases:   []string{"py"},
			Extension: "py",
			Generator: python.NewGenerator(),
		},
		typegen.Target{
			Language:  Markdown,
			Aliases:   []string{"md", "docs"},
			Extension: "md",
			Generator: markdown.NewGenerator(),
		},
	)
}

// Defaults are the targets generated when none are configured. Markdown
// documentation is opt-in.
var Defaults = []string{Rust, Swift, TypeScript, Python}
