package softhost

import (
	"errors"
	"image"

	"github.com/gogpu/invcolors"
	"github.com/gogpu/invcolors/internal/blend"
	"github.com/gogpu/invcolors/internal/bufpool"
)

var (
	// ErrRestoreUnderflow is returned by Restore with nothing saved.
	ErrRestoreUnderflow = errors.New("softhost: restore underflow")

	// ErrResizeWhileSaved is returned by Resize while saves are pending.
	ErrResizeWhileSaved = errors.New("softhost: resize with pending saves")
)

// BlendMode selects how DrawColor combines a color with the target.
type BlendMode = blend.Mode

// Blend modes accepted by DrawColor.
const (
	BlendClear      = blend.Clear
	BlendSource     = blend.Source
	BlendSourceOver = blend.SourceOver
	BlendDstOut     = blend.DstOut
)

// Stats counts the stack operations a canvas has performed.
type Stats struct {
	Saves      int
	SaveLayers int
	Restores   int
	MaxDepth   int
}

// saveEntry is either a plain save or an offscreen layer.
type saveEntry struct {
	layer  *Pixmap // nil for a plain save
	bounds image.Rectangle
	paint  *invcolors.Paint
	flags  invcolors.SaveFlags
}

// Canvas is a software implementation of invcolors.Canvas. Drawing goes to
// the innermost layer; Restore composites a layer onto its parent through
// its paint's color filter.
//
// A Canvas is not safe for concurrent use.
type Canvas struct {
	base  *Pixmap
	stack []saveEntry
	pool  *bufpool.Pool
	stats Stats
}

var _ invcolors.Canvas = (*Canvas)(nil)

// NewCanvas creates a canvas drawing onto a new transparent surface.
func NewCanvas(width, height int) *Canvas {
	return NewCanvasFor(NewPixmap(width, height))
}

// NewCanvasFor creates a canvas drawing onto pm.
func NewCanvasFor(pm *Pixmap) *Canvas {
	return &Canvas{
		base:  pm,
		stack: make([]saveEntry, 0, 4),
		pool:  bufpool.New(4),
	}
}

// Width returns the width of the surface.
func (c *Canvas) Width() int { return c.base.width }

// Height returns the height of the surface.
func (c *Canvas) Height() int { return c.base.height }

// Surface returns the pixmap that receives composited output.
func (c *Canvas) Surface() *Pixmap { return c.base }

// Stats returns the operation counters.
func (c *Canvas) Stats() Stats { return c.stats }

// SaveCount returns the depth of the save stack, starting at 1.
func (c *Canvas) SaveCount() int { return len(c.stack) + 1 }

// Resize replaces the surface with a transparent one of the new size,
// as happens on rotation. It fails while saves are pending.
func (c *Canvas) Resize(width, height int) error {
	if len(c.stack) > 0 {
		return ErrResizeWhileSaved
	}
	c.base = NewPixmap(width, height)
	return nil
}

// Save pushes a plain save without a layer.
func (c *Canvas) Save() int {
	c.push(saveEntry{})
	c.stats.Saves++
	return len(c.stack)
}

// SaveLayer pushes a transparent offscreen layer covering bounds. The
// layer is blended back through paint's color filter by Restore; a nil
// paint composites unfiltered.
func (c *Canvas) SaveLayer(bounds invcolors.Rect, paint *invcolors.Paint, flags invcolors.SaveFlags) (int, error) {
	r := c.pixelBounds(bounds)
	layer := &Pixmap{
		width:  c.base.width,
		height: c.base.height,
		data:   c.pool.Get(c.base.width * c.base.height * 4),
	}
	c.push(saveEntry{layer: layer, bounds: r, paint: paint, flags: flags})
	c.stats.SaveLayers++
	return len(c.stack), nil
}

// Restore pops the innermost save. A layer is filtered and composited
// source-over onto its parent within its bounds.
func (c *Canvas) Restore() error {
	if len(c.stack) == 0 {
		return ErrRestoreUnderflow
	}
	top := c.stack[len(c.stack)-1]
	c.stack[len(c.stack)-1] = saveEntry{}
	c.stack = c.stack[:len(c.stack)-1]
	c.stats.Restores++

	if top.layer != nil {
		c.compositeLayer(top, c.target())
		c.pool.Put(top.layer.data)
	}
	return nil
}

// DrawColor fills the current target with col using mode.
func (c *Canvas) DrawColor(col invcolors.Color, mode BlendMode) {
	c.FillRect(c.target().Bounds(), col, mode)
}

// FillRect fills r on the current target with col using mode.
func (c *Canvas) FillRect(r image.Rectangle, col invcolors.Color, mode BlendMode) {
	dst := c.target()
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	pr, pg, pb, pa := blend.Premultiply(col.R(), col.G(), col.B(), col.A())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		blend.Fill(mode, dst.row(y, r.Min.X, r.Max.X), pr, pg, pb, pa)
	}
}

// DrawPixmap composites pm source-over onto the current target at (x, y).
func (c *Canvas) DrawPixmap(pm *Pixmap, x, y int) {
	dst := c.target()
	r := image.Rect(x, y, x+pm.width, y+pm.height).Intersect(dst.Bounds())
	for row := r.Min.Y; row < r.Max.Y; row++ {
		blend.Span(blend.SourceOver,
			dst.row(row, r.Min.X, r.Max.X),
			pm.row(row-y, r.Min.X-x, r.Max.X-x))
	}
}

// DrawImage composites img source-over onto the current target at (x, y).
func (c *Canvas) DrawImage(img image.Image, x, y int) {
	pm, ok := img.(*Pixmap)
	if !ok {
		pm = FromImage(img)
	}
	c.DrawPixmap(pm, x, y)
}

func (c *Canvas) push(e saveEntry) {
	c.stack = append(c.stack, e)
	if len(c.stack) > c.stats.MaxDepth {
		c.stats.MaxDepth = len(c.stack)
	}
}

// target returns the innermost layer, or the surface.
func (c *Canvas) target() *Pixmap {
	for i := len(c.stack) - 1; i >= 0; i-- {
		if c.stack[i].layer != nil {
			return c.stack[i].layer
		}
	}
	return c.base
}

// pixelBounds rounds bounds outwards and clips them to the surface.
func (c *Canvas) pixelBounds(b invcolors.Rect) image.Rectangle {
	return rectToPixels(b).Intersect(c.base.Bounds())
}

func (c *Canvas) compositeLayer(e saveEntry, parent *Pixmap) {
	r := e.bounds
	for y := r.Min.Y; y < r.Max.Y; y++ {
		src := e.layer.row(y, r.Min.X, r.Max.X)
		if e.paint != nil {
			e.paint.ColorFilter().ApplyPremultiplied(src)
		}
		blend.Span(blend.SourceOver, parent.row(y, r.Min.X, r.Max.X), src)
	}
}

// row returns the bytes of pixels [x0, x1) on row y.
func (p *Pixmap) row(y, x0, x1 int) []byte {
	start := (y*p.width + x0) * 4
	end := (y*p.width + x1) * 4
	return p.data[start:end]
}
