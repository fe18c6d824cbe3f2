package typegen

import "github.com/teranos/tser/ir"

// Module is one generated file: its base name without extension and the
// IR it was generated from.
type Module struct {
	Name string
	File *ir.File
}

// Indexer is implemented by generators that emit an index module next to
// the generated files (a TypeScript barrel, a Rust mod.rs).
type Indexer interface {
	// IndexFile is the file name of the index, relative to the target directory
	IndexFile() string
	// GenerateIndex renders the index for modules. The result must not
	// depend on the order of modules.
	GenerateIndex(modules []Module) string
}
