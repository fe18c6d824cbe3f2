package frontend

import (
	"github.com/teranos/tser/ir"
	"github.com/teranos/tser/ts/ast"
)

// LowerInterface lowers an interface declaration. An interface of
// properties becomes an ir.Struct; one made only of methods becomes an
// ir.Service. Type parameters, extends clauses, index signatures and
// interfaces mixing methods with properties are rejected.
func LowerInterface(decl *ast.InterfaceDecl) (ir.Item, error) {
	name := decl.Name.Name

	if decl.TypeParams != nil {
		return nil, unsupportedAt(decl.TypeParams.Loc, "type parameters on interface %s", name)
	}
	if len(decl.Extends) > 0 {
		return nil, unsupportedAt(decl.Extends[0].Loc, "extends clause on interface %s", name)
	}

	var (
		firstMethod *ast.MethodSignature
		properties  int
	)
	for _, member := range decl.Members {
		switch m := member.(type) {
		case *ast.IndexSignature:
			return nil, unsupported(m, "index signature in interface %s", name)
		case *ast.MethodSignature:
			if firstMethod == nil {
				firstMethod = m
			}
		case *ast.PropertySignature:
			properties++
		}
	}

	if firstMethod != nil {
		if properties > 0 {
			return nil, unsupported(firstMethod, "method %s in interface %s, which also declares properties", firstMethod.Name.Name, name)
		}
		return lowerService(name, decl.Members)
	}

	fields, err := lowerFields(name, decl.Members)
	if err != nil {
		return nil, err
	}
	return ir.Struct{Name: name, Fields: fields}, nil
}

// lowerFields lowers property members in declaration order. owner names
// the enclosing declaration in error messages.
func lowerFields(owner string, members []ast.TypeElement) ([]ir.Field, error) {
	fields := make([]ir.Field, 0, len(members))
	for _, member := range members {
		prop, ok := member.(*ast.PropertySignature)
		if !ok {
			return nil, unsupported(member, "%s in %s", elementKind(member), owner)
		}
		field, err := lowerField(owner, prop)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func lowerField(owner string, prop *ast.PropertySignature) (ir.Field, error) {
	if prop.Type == nil {
		return ir.Field{}, unsupported(prop, "property %s.%s without a type annotation", owner, prop.Name.Name)
	}
	typ, err := ResolveType(prop.Type)
	if err != nil {
		return ir.Field{}, err
	}
	return ir.Field{Name: prop.Name.Name, Type: typ, Optional: prop.Optional}, nil
}

func lowerService(name string, members []ast.TypeElement) (ir.Service, error) {
	svc := ir.Service{Name: name, Methods: make([]ir.Method, 0, len(members))}
	for _, member := range members {
		m := member.(*ast.MethodSignature)
		if m.TypeParams != nil {
			return ir.Service{}, unsupportedAt(m.TypeParams.Loc, "type parameters on method %s.%s", name, m.Name.Name)
		}
		if m.Optional {
			return ir.Service{}, unsupported(m, "optional method %s.%s", name, m.Name.Name)
		}

		method := ir.Method{Name: m.Name.Name}
		for _, p := range m.Params {
			if p.Type == nil {
				return ir.Service{}, unsupported(p, "parameter %s of %s.%s without a type annotation", p.Name.Name, name, m.Name.Name)
			}
			typ, err := ResolveType(p.Type)
			if err != nil {
				return ir.Service{}, err
			}
			method.Params = append(method.Params, ir.Field{Name: p.Name.Name, Type: typ, Optional: p.Optional})
		}

		if m.Result != nil && !isVoid(m.Result) {
			typ, err := ResolveType(m.Result)
			if err != nil {
				return ir.Service{}, err
			}
			method.Result = &typ
		}
		svc.Methods = append(svc.Methods, method)
	}
	return svc, nil
}

func isVoid(t ast.TypeNode) bool {
	kw, ok := ast.Unparen(t).(*ast.KeywordType)
	return ok && kw.Keyword == "void"
}

func elementKind(member ast.TypeElement) string {
	switch member.(type) {
	case *ast.MethodSignature:
		return "method signature"
	case *ast.IndexSignature:
		return "index signature"
	default:
		return "member"
	}
}
