package frontend

import (
	"math"
	"strconv"
	"strings"

	"github.com/teranos/tser/errors"
	"github.com/teranos/tser/ir"
	"github.com/teranos/tser/ts/ast"
	"github.com/teranos/tser/ts/token"
)

// LowerEnum lowers an enum declaration into an integer or string enum.
//
// Members without an initializer continue the integer sequence: the first
// is 0 and each later one is the previous value plus one. Integer literals
// keep their source spelling; a leading + is dropped. Mixing integer and
// string members, non-integer numbers, values outside int64 and computed
// initializers are rejected.
func LowerEnum(decl *ast.EnumDecl) (ir.Enum, error) {
	name := decl.Name.Name
	var (
		ints ir.IntegerMembers
		strs ir.StringMembers
		next int64
		// the previous member was math.MaxInt64, so next has no value
		exhausted bool
	)

	for _, m := range decl.Members {
		member := m.Name.Name
		switch init := m.Init.(type) {
		case nil:
			if len(strs) > 0 {
				return ir.Enum{}, unsupported(m, "enum member %s.%s without an initializer after a string member", name, member)
			}
			if exhausted {
				return ir.Enum{}, unsupported(m, "enum member %s.%s continues past the largest 64-bit integer", name, member)
			}
			ints = append(ints, ir.IntegerMember{Name: member, Value: next, Literal: strconv.FormatInt(next, 10)})
			exhausted = next == math.MaxInt64
			next++

		case *ast.StringLit:
			if len(ints) > 0 {
				return ir.Enum{}, unsupported(m, "enum %s mixes integer and string members", name)
			}
			strs = append(strs, ir.StringMember{Name: member, Value: init.Value})

		case *ast.NumberLit, *ast.UnaryExpr:
			if len(strs) > 0 {
				return ir.Enum{}, unsupported(m, "enum %s mixes integer and string members", name)
			}
			value, literal, err := integerLiteral(init)
			switch {
			case errors.Is(err, strconv.ErrRange):
				return ir.Enum{}, unsupported(init, "value of enum member %s.%s is out of range for a 64-bit integer", name, member)
			case err != nil:
				return ir.Enum{}, unsupported(init, "non-integer value for enum member %s.%s", name, member)
			}
			ints = append(ints, ir.IntegerMember{Name: member, Value: value, Literal: literal})
			exhausted = value == math.MaxInt64
			next = value + 1

		case *ast.OtherExpr:
			return ir.Enum{}, unsupported(init, "computed initializer %q for enum member %s.%s", init.Text, name, member)

		default:
			return ir.Enum{}, unsupported(init, "initializer for enum member %s.%s", name, member)
		}
	}

	if len(strs) > 0 {
		return ir.Enum{Name: name, Kind: strs}, nil
	}
	if ints == nil {
		ints = ir.IntegerMembers{}
	}
	return ir.Enum{Name: name, Kind: ints}, nil
}

var errNotInteger = errors.New("not an integer literal")

// integerLiteral evaluates a possibly signed integer literal in any radix
// TypeScript allows, returning its value and source spelling. Values that
// do not fit an int64 fail with an error matching strconv.ErrRange.
func integerLiteral(expr ast.Expr) (int64, string, error) {
	sign := ""
	if u, ok := expr.(*ast.UnaryExpr); ok {
		if u.Op == token.MINUS {
			sign = "-"
		}
		expr = u.X
	}
	num, ok := expr.(*ast.NumberLit)
	if !ok {
		return 0, "", errNotInteger
	}

	digits := num.Raw
	// strconv treats a bare leading zero as octal; TypeScript only allows 0 itself
	if len(digits) > 1 && digits[0] == '0' && isDecimalDigit(digits[1]) {
		return 0, "", errNotInteger
	}
	v, err := strconv.ParseInt(sign+strings.ReplaceAll(digits, "_", ""), 0, 64)
	if err != nil {
		return 0, "", err
	}
	return v, sign + digits, nil
}

func isDecimalDigit(b byte) bool {
	return '0' <= b && b <= '9'
}
