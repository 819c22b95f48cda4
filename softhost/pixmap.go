package softhost

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/gogpu/invcolors"
	"github.com/gogpu/invcolors/internal/blend"
)

// Pixmap represents a rectangular pixel buffer in premultiplied RGBA8.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // premultiplied RGBA, 4 bytes per pixel
}

// NewPixmap creates a new transparent pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw premultiplied pixel data.
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// SetPixel stores a straight-alpha color at (x, y), replacing what was there.
func (p *Pixmap) SetPixel(x, y int, c invcolors.Color) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0], p.data[i+1], p.data[i+2], p.data[i+3] = blend.Premultiply(c.R(), c.G(), c.B(), c.A())
}

// Pixel returns the straight-alpha color at (x, y).
func (p *Pixmap) Pixel(x, y int) invcolors.Color {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return invcolors.Transparent
	}
	i := (y*p.width + x) * 4
	r, g, b, a := blend.Unpremultiply(p.data[i+0], p.data[i+1], p.data[i+2], p.data[i+3])
	return invcolors.ARGB(a, r, g, b)
}

// Fill replaces every pixel with c.
func (p *Pixmap) Fill(c invcolors.Color) {
	r, g, b, a := blend.Premultiply(c.R(), c.G(), c.B(), c.A())
	blend.Fill(blend.Source, p.data, r, g, b, a)
}

// ToImage converts the pixmap to an image.NRGBA.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	for i := 0; i+3 < len(p.data); i += 4 {
		img.Pix[i+0], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] =
			blend.Unpremultiply(p.data[i+0], p.data[i+1], p.data[i+2], p.data[i+3])
	}
	return img
}

// FromImage creates a pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	pm := NewPixmap(bounds.Dx(), bounds.Dy())

	for y := 0; y < pm.height; y++ {
		for x := 0; x < pm.width; x++ {
			pm.SetPixel(x, y, invcolors.FromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y)))
		}
	}

	return pm
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, p.ToImage()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.Pixel(x, y).NRGBA()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
