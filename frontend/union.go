package frontend

import (
	"github.com/teranos/tser/ir"
	"github.com/teranos/tser/ts/ast"
)

// LowerTypeAlias lowers a type alias whose right-hand side is a union of
// object types (or a single object type) into a tagged union.
//
// The union is internally tagged when some property has a string literal
// type in every variant: the first such property of the first variant is
// the tag, each variant is named after its tag value and keeps its other
// properties as fields. Failing that, it is externally tagged when every
// variant has exactly one required property, which names the variant and
// carries its payload.
func LowerTypeAlias(decl *ast.TypeAliasDecl) (ir.Union, error) {
	name := decl.Name.Name
	if decl.TypeParams != nil {
		return ir.Union{}, unsupportedAt(decl.TypeParams.Loc, "type parameters on type alias %s", name)
	}

	var arms []ast.TypeNode
	switch t := ast.Unparen(decl.Type).(type) {
	case *ast.UnionType:
		arms = t.Types
	case *ast.TypeLiteral:
		arms = []ast.TypeNode{t}
	default:
		return ir.Union{}, unsupported(decl.Type, "type alias %s, which is not a union of object types", name)
	}

	variants := make([][]*ast.PropertySignature, 0, len(arms))
	for _, arm := range arms {
		lit, ok := ast.Unparen(arm).(*ast.TypeLiteral)
		if !ok {
			return ir.Union{}, unsupported(arm, "union %s variant that is not an object type", name)
		}
		props := make([]*ast.PropertySignature, 0, len(lit.Members))
		for _, member := range lit.Members {
			prop, ok := member.(*ast.PropertySignature)
			if !ok {
				return ir.Union{}, unsupported(member, "%s in union %s", elementKind(member), name)
			}
			props = append(props, prop)
		}
		variants = append(variants, props)
	}

	if tag, ok := findTagField(variants); ok {
		return lowerInternallyTagged(name, tag, variants)
	}
	if singleRequiredProperty(variants) {
		return lowerExternallyTagged(name, variants)
	}
	return ir.Union{}, unsupported(decl.Type, "union %s: variants must share a string literal tag property or each have exactly one required property", name)
}

func lowerInternallyTagged(name, tag string, variants [][]*ast.PropertySignature) (ir.Union, error) {
	kind := ir.InternallyTagged{TagField: tag, Variants: make([]ir.Struct, 0, len(variants))}
	seen := make(map[string]bool, len(variants))

	for _, props := range variants {
		var (
			value  string
			fields []ir.Field
		)
		for _, prop := range props {
			if prop.Name.Name == tag {
				value, _ = stringLiteral(prop.Type)
				if value == "" {
					return ir.Union{}, unsupported(prop.Type, "empty tag in union %s", name)
				}
				if seen[value] {
					return ir.Union{}, unsupported(prop.Type, "duplicate tag %q in union %s", value, name)
				}
				seen[value] = true
				continue
			}
			field, err := lowerField(name, prop)
			if err != nil {
				return ir.Union{}, err
			}
			fields = append(fields, field)
		}
		kind.Variants = append(kind.Variants, ir.Struct{Name: value, Fields: fields})
	}
	return ir.Union{Name: name, Kind: kind}, nil
}

func lowerExternallyTagged(name string, variants [][]*ast.PropertySignature) (ir.Union, error) {
	kind := ir.ExternallyTagged{Variants: make([]ir.Variant, 0, len(variants))}
	seen := make(map[string]bool, len(variants))

	for _, props := range variants {
		field, err := lowerField(name, props[0])
		if err != nil {
			return ir.Union{}, err
		}
		if seen[field.Name] {
			return ir.Union{}, unsupported(props[0], "duplicate variant %s in union %s", field.Name, name)
		}
		seen[field.Name] = true
		kind.Variants = append(kind.Variants, ir.Variant{Name: field.Name, Type: field.Type})
	}
	return ir.Union{Name: name, Kind: kind}, nil
}

// findTagField returns the first property of the first variant that is a
// required string literal in every variant.
func findTagField(variants [][]*ast.PropertySignature) (string, bool) {
	if len(variants) == 0 {
		return "", false
	}
	for _, candidate := range variants[0] {
		if !isTagProperty(candidate) {
			continue
		}
		everywhere := true
		for _, props := range variants[1:] {
			found := false
			for _, prop := range props {
				if prop.Name.Name == candidate.Name.Name && isTagProperty(prop) {
					found = true
					break
				}
			}
			if !found {
				everywhere = false
				break
			}
		}
		if everywhere {
			return candidate.Name.Name, true
		}
	}
	return "", false
}

func isTagProperty(prop *ast.PropertySignature) bool {
	_, ok := stringLiteral(prop.Type)
	return ok && !prop.Optional
}

func singleRequiredProperty(variants [][]*ast.PropertySignature) bool {
	for _, props := range variants {
		if len(props) != 1 || props[0].Optional {
			return false
		}
	}
	return len(variants) > 0
}

func stringLiteral(t ast.TypeNode) (string, bool) {
	if t == nil {
		return "", false
	}
	lit, ok := ast.Unparen(t).(*ast.LiteralType)
	if !ok || lit.Kind != ast.StringLiteral {
		return "", false
	}
	return lit.Value, true
}
