package contrast

import (
	"errors"
	"fmt"
	"reflect"
)

// MaxAncestorDepth bounds the background walk for trees that cannot
// guarantee acyclic parent links.
const MaxAncestorDepth = 1024

// StyledNode is an element whose own background can be read and whose
// parent can be reached. Parent returns nil at the root.
type StyledNode interface {
	// Background returns the node's own background color. ok is false when
	// the background is transparent or unset.
	Background() (c Color, ok bool, err error)
	Parent() StyledNode
}

// TextNode is a StyledNode that renders text.
type TextNode interface {
	StyledNode
	TextColor() (Color, error)
	FontSizePx() float64
	Bold() bool
	Label() string
}

// ResolveEffectiveBackground walks from n up through its ancestors and
// returns the first opaque background. If none is found the result is
// DefaultBackground. An error is returned only when a background value on
// the chain cannot be parsed.
func ResolveEffectiveBackground(n StyledNode) (Color, error) {
	for depth := 0; !isNilNode(n) && depth < MaxAncestorDepth; depth++ {
		c, ok, err := n.Background()
		if err != nil {
			return Color{}, fmt.Errorf("background at depth %d: %w", depth, err)
		}
		if ok {
			return c.clamped(), nil
		}
		n = n.Parent()
	}
	return DefaultBackground, nil
}

// EvaluateElement measures the text of n against its effective background.
func EvaluateElement(n TextNode) (Compliance, error) {
	if isNilNode(n) {
		return Compliance{}, errors.New("nil node")
	}
	fg, err := n.TextColor()
	if err != nil {
		return Compliance{}, fmt.Errorf("text color: %w", err)
	}
	bg, err := ResolveEffectiveBackground(n)
	if err != nil {
		return Compliance{}, err
	}

	c := Check(fg, bg, TextSizeFor(n.FontSizePx(), n.Bold()))
	c.Label = n.Label()
	return c, nil
}

// isNilNode reports whether n is nil, including a nil pointer stored in the
// interface.
func isNilNode(n StyledNode) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}
