package parser

import (
	"fmt"

	"github.com/teranos/tser/errors"
	"github.com/teranos/tser/ts/token"
)

// SyntaxError is a failure to parse the source. It matches errors.ErrSyntax.
type SyntaxError struct {
	Pos token.Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: syntax error: %s", e.Pos, e.Msg)
}

// Unwrap lets errors.Is(err, errors.ErrSyntax) succeed.
func (e *SyntaxError) Unwrap() error {
	return errors.ErrSyntax
}
