package invcolors

import (
	"fmt"
	"log/slog"
)

// FrameFilter is the draw interceptor of one binding. Before pushes a
// full-canvas layer carrying the binding's color matrix when the drawn node
// is the window root, and After pops it, so every draw of the window is
// composited through the matrix exactly once.
//
// A FrameFilter is driven by the host's UI thread and is not safe for
// concurrent use.
type FrameFilter struct {
	pkg      string
	matrix   ColorMatrix
	paint    *Paint
	isRoot   RootPredicate
	newPaint PaintFactory
	diag     *Diagnostics

	// frames records, innermost last, the root calls between Before and
	// After and whether each of them pushed a layer.
	frames []frameRecord
}

type frameRecord struct {
	canvas Canvas
	node   Node
	pushed bool
}

// NewFrameFilter returns a filter for pkg applying m.
func NewFrameFilter(pkg string, m ColorMatrix, opts ...Option) *FrameFilter {
	o := buildOptions(opts)
	return newFrameFilter(pkg, m, o, o.channel.For(pkg))
}

func newFrameFilter(pkg string, m ColorMatrix, o options, diag *Diagnostics) *FrameFilter {
	return &FrameFilter{
		pkg:      pkg,
		matrix:   m,
		isRoot:   o.isRoot,
		newPaint: o.paintFactory,
		diag:     diag,
	}
}

// Package returns the package the filter is bound to.
func (f *FrameFilter) Package() string {
	return f.pkg
}

// Matrix returns the filter's color matrix.
func (f *FrameFilter) Matrix() ColorMatrix {
	return f.matrix
}

// Paint returns the cached paint, or nil before the first root frame.
func (f *FrameFilter) Paint() *Paint {
	return f.paint
}

// Depth returns the number of root calls currently between Before and After.
func (f *FrameFilter) Depth() int {
	return len(f.frames)
}

// Hook returns the filter as a DrawHook for a ClassResolver.
func (f *FrameFilter) Hook() DrawHook {
	return DrawHook{Before: f.Before, After: f.After}
}

// Before runs ahead of the host's draw of n on c. For a root node it pushes
// a layer covering the whole canvas; for any other node, or a canvas with
// no area, it does nothing.
// Failures are swallowed: the frame is then drawn unfiltered.
func (f *FrameFilter) Before(c Canvas, n Node) {
	defer f.recoverFrame("before")

	if isNil(c) || !f.isRoot(n) {
		return
	}

	// The paint is built before anything touches the canvas so that a
	// failure here leaves no record and no layer.
	if f.paint == nil {
		p, err := f.newPaint(f.matrix)
		if err == nil && p == nil {
			err = ErrNoPaint
		}
		if err != nil {
			f.diag.Once(CategoryFrame, slog.LevelWarn, "paint allocation failed", "error", err)
			return
		}
		f.paint = p
	}

	f.frames = append(f.frames, frameRecord{canvas: c, node: n})
	rec := &f.frames[len(f.frames)-1]

	// View.draw of the root dispatches to its own dispatchDraw on the same
	// canvas; the outer layer already covers it.
	if f.hasLayer(c, n, len(f.frames)-1) {
		return
	}

	bounds := Rect{Right: float32(c.Width()), Bottom: float32(c.Height())}
	if bounds.Empty() {
		return
	}
	if _, err := c.SaveLayer(bounds, f.paint, AllSaveFlag); err != nil {
		f.diag.Once(CategoryFrame, slog.LevelWarn, "save layer failed", "error", err)
		return
	}
	rec.pushed = true

	f.diag.Limited(CategoryApply, slog.LevelInfo,
		"applying custom colors to "+SimpleName(n.TypeName()),
		"width", bounds.Width(), "height", bounds.Height())
}

// After runs once the host's draw of n on c has returned or failed.
// It restores exactly the layer the matching Before pushed, if any. The
// record is matched by canvas and node only: a node that stopped being a
// root during its own draw still gets its layer restored.
func (f *FrameFilter) After(c Canvas, n Node) {
	defer f.recoverFrame("after")

	if isNil(c) {
		return
	}

	rec, ok := f.pop(c, n)
	if !ok || !rec.pushed {
		return
	}
	if err := c.Restore(); err != nil {
		f.diag.Once(CategoryFrame, slog.LevelWarn, "restore failed", "error", err)
	}
}

// hasLayer reports whether a record below index top already pushed a layer
// for the same canvas and node.
func (f *FrameFilter) hasLayer(c Canvas, n Node, top int) bool {
	for i := top - 1; i >= 0; i-- {
		r := f.frames[i]
		if r.pushed && sameRef(r.canvas, c) && sameRef(r.node, n) {
			return true
		}
	}
	return false
}

// pop removes the innermost record if it belongs to (c, n).
func (f *FrameFilter) pop(c Canvas, n Node) (frameRecord, bool) {
	if len(f.frames) == 0 {
		return frameRecord{}, false
	}
	top := f.frames[len(f.frames)-1]
	if !sameRef(top.canvas, c) || !sameRef(top.node, n) {
		return frameRecord{}, false
	}
	f.frames[len(f.frames)-1] = frameRecord{}
	f.frames = f.frames[:len(f.frames)-1]
	return top, true
}

func (f *FrameFilter) recoverFrame(phase string) {
	if r := recover(); r != nil {
		f.diag.Once(CategoryFrame, slog.LevelWarn, "frame filter failed",
			"phase", phase, "panic", fmt.Sprint(r))
	}
}
