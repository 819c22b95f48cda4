package invcolors

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Color is a 32-bit ARGB value stored as (A<<24)|(R<<16)|(G<<8)|B.
// This matches the packed int color used by the target view system.
type Color uint32

// Common colors.
const (
	Transparent Color = 0x00000000
	Black       Color = 0xFF000000
	White       Color = 0xFFFFFFFF
	Gray        Color = 0xFF888888
	LightGray   Color = 0xFFCCCCCC
	DarkGray    Color = 0xFF444444
	Red         Color = 0xFFFF0000
	Green       Color = 0xFF00FF00
	Blue        Color = 0xFF0000FF
	Yellow      Color = 0xFFFFFF00
	Cyan        Color = 0xFF00FFFF
)

// ARGB packs four 8-bit components into a Color.
func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// A returns the alpha component.
func (c Color) A() uint8 { return uint8(c >> 24) }

// R returns the red component.
func (c Color) R() uint8 { return uint8(c >> 16) }

// G returns the green component.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue component.
func (c Color) B() uint8 { return uint8(c) }

// Complement returns the RGB complement (255-c per channel) with alpha kept.
func (c Color) Complement() Color {
	return ARGB(c.A(), 255-c.R(), 255-c.G(), 255-c.B())
}

// Int32 returns the signed 32-bit encoding used by the settings store.
func (c Color) Int32() int32 {
	return int32(c)
}

// ColorFromInt32 converts the signed persisted encoding back to a Color.
func ColorFromInt32(v int32) Color {
	return Color(uint32(v))
}

// NRGBA converts the color to the standard library's straight-alpha color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

// FromColor converts any standard library color to a Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return ARGB(n.A, n.R, n.G, n.B)
}

// Hex returns the color as "#AARRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

// RGBHex returns the color as "#RRGGBB", dropping alpha.
func (c Color) RGBHex() string {
	return fmt.Sprintf("#%06X", uint32(c)&0xFFFFFF)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// Preset is a named color offered to users when configuring a target.
type Preset struct {
	Name  string
	Color Color
}

// Presets lists the colors offered by the settings screen, grays first.
var Presets = []Preset{
	{"white", White},
	{"light", LightGray},
	{"gray", Gray},
	{"dark", DarkGray},
	{"black", Black},
	{"red", Red},
	{"green", Green},
	{"blue", Blue},
	{"yellow", Yellow},
	{"cyan", Cyan},
}

// DisplayName returns the preset name in title case.
func (p Preset) DisplayName() string {
	// A Caser is stateful and cannot be shared between goroutines.
	return cases.Title(language.English).String(p.Name)
}

// LookupPreset returns the preset color with the given name, ignoring case.
func LookupPreset(name string) (Color, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range Presets {
		if p.Name == name {
			return p.Color, true
		}
	}
	return 0, false
}

// ParseColor parses a color given as a preset name, "#RGB", "#RRGGBB",
// "#AARRGGBB" or "0xAARRGGBB". Colors without alpha are opaque.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := LookupPreset(s); ok {
		return c, nil
	}

	hex := s
	switch {
	case strings.HasPrefix(hex, "0x"), strings.HasPrefix(hex, "0X"):
		hex = hex[2:]
	case strings.HasPrefix(hex, "#"):
		hex = hex[1:]
	default:
		return 0, fmt.Errorf("invcolors: invalid color %q", s)
	}

	switch len(hex) {
	case 8:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invcolors: invalid color %q: %w", s, err)
		}
		return Color(v), nil
	case 3, 6:
		cf, err := colorful.Hex("#" + hex)
		if err != nil {
			return 0, fmt.Errorf("invcolors: invalid color %q: %w", s, err)
		}
		r, g, b := cf.RGB255()
		return ARGB(0xFF, r, g, b), nil
	default:
		return 0, fmt.Errorf("invcolors: invalid color %q", s)
	}
}

// Contrast returns the WCAG contrast ratio between the RGB parts of two
// colors, in [1, 21].
func Contrast(a, b Color) float64 {
	la := luminance(a)
	lb := luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

func luminance(c Color) float64 {
	r, g, b := colorful.Color{
		R: float64(c.R()) / 255,
		G: float64(c.G()) / 255,
		B: float64(c.B()) / 255,
	}.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
