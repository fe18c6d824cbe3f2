package frontend

import (
	"github.com/teranos/tser/ir"
	"github.com/teranos/tser/ts/ast"
	"github.com/teranos/tser/ts/token"
)

// ResolveType maps a type annotation onto an IR type expression.
//
// The keywords string, number, and boolean map to String, Float64, and Bool.
// References named after a sized scalar (i8 through u64, f32, f64) map to
// that primitive, so a schema can declare `type i32 = number` and use i32.
// T[], Array<T>, and ReadonlyArray<T> are arrays. A union of one type with
// null or undefined is that type made nullable. Other references stay
// opaque identifiers. Everything else is a *StructureError.
func ResolveType(node ast.TypeNode) (ir.TypeExpr, error) {
	switch n := node.(type) {
	case *ast.KeywordType:
		switch n.Keyword {
		case "string":
			return ir.Prim(ir.String), nil
		case "number":
			return ir.Prim(ir.Float64), nil
		case "boolean":
			return ir.Prim(ir.Bool), nil
		}
		return ir.TypeExpr{}, unsupported(n, "%s type", n.Keyword)

	case *ast.TypeReference:
		if len(n.TypeArgs) == 0 {
			if p, ok := scalarAlias(n.Name); ok {
				return ir.Prim(p), nil
			}
			return ir.Ident(n.Name), nil
		}
		if (n.Name == "Array" || n.Name == "ReadonlyArray") && len(n.TypeArgs) == 1 {
			elem, err := ResolveType(n.TypeArgs[0])
			if err != nil {
				return ir.TypeExpr{}, err
			}
			return ir.Array(elem), nil
		}
		return ir.TypeExpr{}, unsupported(n, "generic type %s", n.Name)

	case *ast.ArrayType:
		elem, err := ResolveType(n.Elem)
		if err != nil {
			return ir.TypeExpr{}, err
		}
		return ir.Array(elem), nil

	case *ast.ParenType:
		return ResolveType(n.Type)

	case *ast.UnionType:
		return resolveNullable(n)

	case *ast.IntersectionType:
		return ir.TypeExpr{}, unsupported(n, "intersection type")
	case *ast.LiteralType:
		return ir.TypeExpr{}, unsupported(n, "literal type")
	case *ast.TypeLiteral:
		return ir.TypeExpr{}, unsupported(n, "inline object type")
	case *ast.TupleType:
		return ir.TypeExpr{}, unsupported(n, "tuple type")
	case *ast.FunctionType:
		return ir.TypeExpr{}, unsupported(n, "function type")
	case *ast.OperatorType:
		return ir.TypeExpr{}, unsupported(n, "%s type operator", n.Operator)
	case *ast.IndexedAccessType:
		return ir.TypeExpr{}, unsupported(n, "indexed access type")
	case nil:
		return ir.TypeExpr{}, unsupportedAt(token.Span{}, "missing type annotation")
	}
	return ir.TypeExpr{}, unsupported(node, "type annotation %T", node)
}

// resolveNullable accepts `T | null`, `T | undefined` and permutations with
// any number of null or undefined members.
func resolveNullable(u *ast.UnionType) (ir.TypeExpr, error) {
	var (
		inner ast.TypeNode
		nulls int
	)
	for _, t := range u.Types {
		if isNullish(t) {
			nulls++
			continue
		}
		if inner != nil {
			return ir.TypeExpr{}, unsupported(u, "union type")
		}
		inner = t
	}
	if inner == nil || nulls == 0 {
		return ir.TypeExpr{}, unsupported(u, "union type")
	}

	t, err := ResolveType(inner)
	if err != nil {
		return ir.TypeExpr{}, err
	}
	return t.OrNull(), nil
}

func isNullish(t ast.TypeNode) bool {
	kw, ok := ast.Unparen(t).(*ast.KeywordType)
	return ok && (kw.Keyword == "null" || kw.Keyword == "undefined")
}

// scalarAlias reports whether name is one of the sized scalar names.
// bool and string are spelled as keywords in TypeScript, so they are not aliases.
func scalarAlias(name string) (ir.Primitive, bool) {
	p, ok := ir.PrimitiveByName(name)
	if !ok || p == ir.Bool || p == ir.String {
		return 0, false
	}
	return p, true
}
