package invcolors

import (
	"reflect"
	"strings"
)

// Node is a drawable element of the target's view hierarchy as seen at
// draw time. Only the capabilities needed to find the window root are
// required.
type Node interface {
	// Parent returns the node's parent, or nil for a detached or root node.
	Parent() Node

	// TypeName returns the fully qualified runtime type name of the node,
	// for example "com.android.internal.policy.DecorView".
	TypeName() string
}

// RootPredicate decides whether a node is the root of its window.
type RootPredicate func(Node) bool

// DecorViewMarker is the type name fragment of the top-level decoration
// node of a window.
const DecorViewMarker = "DecorView"

// IsRoot reports whether n is the root of its window: it either has no
// parent or its type name contains "DecorView". The DecorView check is
// needed because the true root may hang off a non-drawable parent.
//
// A nil node is never a root.
func IsRoot(n Node) bool {
	if isNil(n) {
		return false
	}
	if isNil(n.Parent()) {
		return true
	}
	return strings.Contains(n.TypeName(), DecorViewMarker)
}

// SimpleName returns the last segment of a qualified type name, splitting
// on '.' and '$'.
func SimpleName(typeName string) string {
	if i := strings.LastIndexAny(typeName, ".$"); i >= 0 {
		return typeName[i+1:]
	}
	return typeName
}

// isNil reports whether v is nil or an interface holding a nil pointer.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// sameRef reports whether a and b are the same comparable value.
// Values of uncomparable dynamic types are never the same.
func sameRef(a, b any) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}
