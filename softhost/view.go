package softhost

import (
	"image"
	"math"

	"github.com/gogpu/invcolors"
)

// Type names used by the simulated view system.
const (
	DecorViewType    = "com.android.internal.policy.DecorView"
	FrameLayoutType  = "android.widget.FrameLayout"
	LinearLayoutType = "android.widget.LinearLayout"
	TextViewType     = "android.widget.TextView"
	ViewRootType     = "android.view.ViewRootImpl"
)

// View is a node of the simulated view tree. A view with children behaves
// as a ViewGroup: its draw dispatches to the children through the
// ViewGroup#dispatchDraw hook point.
type View struct {
	host       *Host
	typeName   string
	parent     *View
	attachedTo invcolors.Node
	children   []*View
	bounds     invcolors.Rect
	background invcolors.Color

	// OnDraw draws the view's own content after its background.
	OnDraw func(c *Canvas, v *View)
}

var _ invcolors.Node = (*View)(nil)

// NewView creates a detached view of the given type.
func NewView(host *Host, typeName string) *View {
	return &View{host: host, typeName: typeName}
}

// NewWindow creates a DecorView covering a width x height window,
// attached to a non-drawable view root as on a real device.
func NewWindow(host *Host, width, height int) *View {
	v := NewView(host, DecorViewType)
	v.bounds = invcolors.Rect{Right: float32(width), Bottom: float32(height)}
	v.attachedTo = viewRoot{}
	return v
}

// viewRoot is the non-drawable parent of a window's DecorView.
type viewRoot struct{}

func (viewRoot) Parent() invcolors.Node { return nil }
func (viewRoot) TypeName() string       { return ViewRootType }

// Parent returns the parent view, the window's view root for a DecorView,
// or nil for a detached view.
func (v *View) Parent() invcolors.Node {
	if v.parent != nil {
		return v.parent
	}
	if v.attachedTo != nil {
		return v.attachedTo
	}
	return nil
}

// TypeName returns the runtime type name of the view.
func (v *View) TypeName() string {
	return v.typeName
}

// Children returns the child views in drawing order.
func (v *View) Children() []*View {
	return v.children
}

// AddView appends child, detaching it from a previous parent.
func (v *View) AddView(child *View) *View {
	if child.parent != nil {
		child.parent.RemoveView(child)
	}
	child.parent = v
	v.children = append(v.children, child)
	return child
}

// RemoveView detaches child.
func (v *View) RemoveView(child *View) {
	for i, c := range v.children {
		if c == child {
			v.children = append(v.children[:i], v.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// SetBounds sets the view's rectangle in window coordinates.
func (v *View) SetBounds(r invcolors.Rect) {
	v.bounds = r
}

// Bounds returns the view's rectangle in window coordinates.
func (v *View) Bounds() invcolors.Rect {
	return v.bounds
}

// SetBackground sets the color filled behind the view's content.
func (v *View) SetBackground(c invcolors.Color) {
	v.background = c
}

// Draw renders the view and its subtree onto c through View#draw.
func (v *View) Draw(c *Canvas) {
	v.host.Invoke(ViewClass, DrawMethod, c, v, func() {
		if v.background.A() != 0 {
			c.FillRect(rectToPixels(v.bounds), v.background, BlendSourceOver)
		}
		if v.OnDraw != nil {
			v.OnDraw(c, v)
		}
		if len(v.children) > 0 {
			v.DispatchDraw(c)
		}
	})
}

// DispatchDraw draws the children through ViewGroup#dispatchDraw.
func (v *View) DispatchDraw(c *Canvas) {
	v.host.Invoke(ViewGroupClass, DispatchMethod, c, v, func() {
		for _, child := range v.children {
			child.Draw(c)
		}
	})
}

func rectToPixels(r invcolors.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(float64(r.Left))),
		int(math.Floor(float64(r.Top))),
		int(math.Ceil(float64(r.Right))),
		int(math.Ceil(float64(r.Bottom))),
	)
}
