// Package frontend lowers parsed TypeScript declarations into the IR.
//
// Lowering is a pure mapping from syntax nodes to ir values. Constructs the
// IR cannot represent are reported as *StructureError with the source span
// of the offending node, and the first such error aborts the whole file.
package frontend

import (
	"github.com/teranos/tser/errors"
	"github.com/teranos/tser/ir"
	"github.com/teranos/tser/ts/ast"
	"github.com/teranos/tser/ts/parser"
)

// ParseFile parses and lowers one schema source.
func ParseFile(filename string, src []byte) (*ir.File, error) {
	file, err := parser.ParseFile(filename, src)
	if err != nil {
		return nil, err
	}
	return LowerFile(file)
}

// LowerFile lowers every declaration of file in order. Scalar alias
// declarations such as `type i32 = number` are a schema prelude and
// produce no item.
func LowerFile(file *ast.SourceFile) (*ir.File, error) {
	out := &ir.File{Items: make([]ir.Item, 0, len(file.Decls))}
	for _, decl := range file.Decls {
		var (
			item ir.Item
			err  error
		)
		switch d := decl.(type) {
		case *ast.InterfaceDecl:
			item, err = LowerInterface(d)
		case *ast.EnumDecl:
			item, err = LowerEnum(d)
		case *ast.TypeAliasDecl:
			if isScalarPrelude(d) {
				continue
			}
			item, err = LowerTypeAlias(d)
		default:
			err = errors.AssertionFailedf("unexpected declaration %T", decl)
		}
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}

func isScalarPrelude(d *ast.TypeAliasDecl) bool {
	if _, ok := scalarAlias(d.Name.Name); !ok || d.TypeParams != nil {
		return false
	}
	kw, ok := ast.Unparen(d.Type).(*ast.KeywordType)
	return ok && (kw.Keyword == "number" || kw.Keyword == "bigint")
}
