package invcolors

import "testing"

// fakeNode is a minimal Node for tests.
type fakeNode struct {
	parent Node
	name   string
}

func (n *fakeNode) Parent() Node     { return n.parent }
func (n *fakeNode) TypeName() string { return n.name }

// valueNode is a comparable non-pointer Node.
type valueNode struct{ name string }

func (valueNode) Parent() Node       { return nil }
func (v valueNode) TypeName() string { return v.name }

func TestIsRoot(t *testing.T) {
	viewRoot := &fakeNode{name: "android.view.ViewRootImpl"}
	decor := &fakeNode{parent: viewRoot, name: "com.android.internal.policy.DecorView"}
	var nilParent *fakeNode

	tests := []struct {
		name string
		node Node
		want bool
	}{
		{"no parent", &fakeNode{name: "android.widget.FrameLayout"}, true},
		{"typed nil parent", &fakeNode{parent: nilParent, name: "android.widget.FrameLayout"}, true},
		{"decor view with parent", decor, true},
		{"phone window decor", &fakeNode{parent: viewRoot, name: "com.android.internal.policy.PhoneWindow$DecorView"}, true},
		{"child frame layout", &fakeNode{parent: decor, name: "android.widget.FrameLayout"}, false},
		{"child text view", &fakeNode{parent: decor, name: "android.widget.TextView"}, false},
		{"case sensitive", &fakeNode{parent: decor, name: "decorview"}, false},
		{"value node", valueNode{name: "x"}, true},
		{"nil node", nil, false},
		{"typed nil node", nilParent, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRoot(tt.node); got != tt.want {
				t.Errorf("IsRoot() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSimpleName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"com.android.internal.policy.DecorView", "DecorView"},
		{"com.android.internal.policy.PhoneWindow$DecorView", "DecorView"},
		{"FrameLayout", "FrameLayout"},
		{"", ""},
		{"trailing.", ""},
	}
	for _, tt := range tests {
		if got := SimpleName(tt.in); got != tt.want {
			t.Errorf("SimpleName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSameRef(t *testing.T) {
	a := &fakeNode{name: "a"}
	b := &fakeNode{name: "a"}
	if !sameRef(a, a) {
		t.Error("sameRef(a, a) = false")
	}
	if sameRef(a, b) {
		t.Error("distinct pointers compared equal")
	}
	if !sameRef(valueNode{"x"}, valueNode{"x"}) {
		t.Error("equal values compared unequal")
	}
	if sameRef([]int{1}, []int{1}) {
		t.Error("uncomparable values compared equal")
	}
}
