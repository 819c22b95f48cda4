package invcolors

// SaveFlags selects which canvas state a save-layer preserves.
type SaveFlags uint32

const (
	// MatrixSaveFlag preserves the transformation matrix.
	MatrixSaveFlag SaveFlags = 1 << iota
	// ClipSaveFlag preserves the clip stack.
	ClipSaveFlag

	// AllSaveFlag preserves the full matrix and clip stack.
	AllSaveFlag = MatrixSaveFlag | ClipSaveFlag
)

// Rect is an axis-aligned rectangle in canvas pixels.
type Rect struct {
	Left, Top, Right, Bottom float32
}

// Width returns the width of the rectangle.
func (r Rect) Width() float32 { return r.Right - r.Left }

// Height returns the height of the rectangle.
func (r Rect) Height() float32 { return r.Bottom - r.Top }

// Empty reports whether the rectangle encloses no area.
func (r Rect) Empty() bool { return r.Right <= r.Left || r.Bottom <= r.Top }

// Canvas is the drawing target the host passes to a hooked draw method.
// It is owned by the host and only borrowed for the duration of a call.
type Canvas interface {
	// Width returns the current width of the drawing surface.
	Width() int

	// Height returns the current height of the drawing surface.
	Height() int

	// SaveLayer pushes an offscreen compositing layer covering bounds.
	// Drawing accumulates in the layer until the matching Restore, which
	// blends it back through paint. The returned save count is informational.
	SaveLayer(bounds Rect, paint *Paint, flags SaveFlags) (int, error)

	// Restore pops the most recent save or layer.
	Restore() error
}

// Paint is the rendering state attached to a save-layer. It carries exactly
// one color-matrix filter and is immutable once built.
type Paint struct {
	filter ColorMatrix
}

// NewPaint returns a paint carrying the given color filter.
func NewPaint(filter ColorMatrix) *Paint {
	return &Paint{filter: filter}
}

// ColorFilter returns the paint's color matrix.
func (p *Paint) ColorFilter() ColorMatrix {
	return p.filter
}

// PaintFactory builds the paint for a binding. Hosts that allocate paints
// natively can supply their own through WithPaintFactory.
type PaintFactory func(ColorMatrix) (*Paint, error)

func defaultPaintFactory(m ColorMatrix) (*Paint, error) {
	return NewPaint(m), nil
}
