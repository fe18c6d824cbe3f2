package frontend

import (
	"fmt"

	"github.com/teranos/tser/errors"
	"github.com/teranos/tser/ts/ast"
	"github.com/teranos/tser/ts/token"
)

// StructureError reports well-formed source that uses a construct the IR
// cannot represent. It matches errors.ErrUnsupportedSyntax.
type StructureError struct {
	// Construct names what was rejected, e.g. "type parameters on interface Hello".
	Construct string
	// Span is the source range of the offending node.
	Span token.Span
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%s: unsupported syntax: %s", e.Span, e.Construct)
}

// Unwrap lets errors.Is(err, errors.ErrUnsupportedSyntax) succeed.
func (e *StructureError) Unwrap() error {
	return errors.ErrUnsupportedSyntax
}

func unsupportedAt(span token.Span, format string, args ...any) error {
	return &StructureError{Construct: fmt.Sprintf(format, args...), Span: span}
}

func unsupported(node ast.Node, format string, args ...any) error {
	return unsupportedAt(node.Span(), format, args...)
}
