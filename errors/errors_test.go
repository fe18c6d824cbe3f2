package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestMarkSurvivesWrapping(t *testing.T) {
	err := Mark(New("interface Hello has type parameters"), ErrUnsupportedSyntax)
	err = Wrapf(err, "failed to compile %s", "hello.ts")

	assert.True(t, Is(err, ErrUnsupportedSyntax))
	assert.False(t, Is(err, ErrUnsupportedDeclaration))
	assert.Contains(t, err.Error(), "hello.ts")
	assert.Contains(t, err.Error(), "type parameters")
}

func TestIsUnsupported(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain", err: New("boom"), want: false},
		{name: "syntax", err: Mark(New("x"), ErrUnsupportedSyntax), want: true},
		{name: "declaration", err: NewUnsupportedDeclarationError("service %s", "Api"), want: true},
		{name: "parse error", err: Mark(New("x"), ErrSyntax), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUnsupported(tt.err))
		})
	}
}

func TestNewUnknownTargetError(t *testing.T) {
	err := NewUnknownTargetError("unknown target: %s", "cobol")
	assert.True(t, Is(err, ErrUnknownTarget))
	assert.Equal(t, "unknown target: cobol", err.Error())
}

func TestWithHint(t *testing.T) {
	err := New("error")
	withHint := WithHint(err, "try this fix")

	hints := GetAllHints(withHint)
	require.Len(t, hints, 1)
	assert.Equal(t, "try this fix", hints[0])
}

func TestJoin(t *testing.T) {
	a := Mark(New("a"), ErrUnsupportedSyntax)
	b := New("b")
	joined := Join(a, b)

	assert.True(t, Is(joined, ErrUnsupportedSyntax))
	assert.Contains(t, joined.Error(), "a")
	assert.Contains(t, joined.Error(), "b")
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithStack(nil))
	assert.Nil(t, WithHint(nil, "hint"))
}

func ExampleWrap() {
	baseErr := New("unexpected token")
	err := Wrap(baseErr, "failed to parse schema.ts")
	fmt.Println(err)
	// Output: failed to parse schema.ts: unexpected token
}
