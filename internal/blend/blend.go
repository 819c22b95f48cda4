// Package blend implements the Porter-Duff operators used by the software
// host when drawing and when compositing layers.
//
// All operations work with premultiplied alpha values in the range 0-255.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// Mode represents a Porter-Duff compositing operation.
type Mode uint8

const (
	Clear      Mode = iota // Result: 0 (clear destination)
	Source                 // Result: S (replace with source)
	SourceOver             // Result: S + D*(1-Sa) [default]
	DstOut                 // Result: D*(1-Sa)
)

// Func is the signature for blend operations.
// All values are premultiplied alpha, 0-255.
type Func func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

// Get returns the blend function for the given mode.
// Returns the source-over function for unknown modes.
func Get(mode Mode) Func {
	switch mode {
	case Clear:
		return blendClear
	case Source:
		return blendSource
	case DstOut:
		return blendDstOut
	default:
		return blendSourceOver
	}
}

// Span blends the premultiplied RGBA8 pixels of src onto dst in place.
// The slices must have the same length.
func Span(mode Mode, dst, src []byte) {
	fn := Get(mode)
	for i := 0; i+3 < len(dst) && i+3 < len(src); i += 4 {
		dst[i+0], dst[i+1], dst[i+2], dst[i+3] = fn(
			src[i+0], src[i+1], src[i+2], src[i+3],
			dst[i+0], dst[i+1], dst[i+2], dst[i+3])
	}
}

// Fill blends one premultiplied color onto every pixel of dst.
func Fill(mode Mode, dst []byte, r, g, b, a byte) {
	fn := Get(mode)
	for i := 0; i+3 < len(dst); i += 4 {
		dst[i+0], dst[i+1], dst[i+2], dst[i+3] = fn(
			r, g, b, a,
			dst[i+0], dst[i+1], dst[i+2], dst[i+3])
	}
}

// Premultiply converts straight-alpha components to premultiplied ones.
func Premultiply(r, g, b, a byte) (byte, byte, byte, byte) {
	return MulDiv255(r, a), MulDiv255(g, a), MulDiv255(b, a), a
}

// Unpremultiply converts premultiplied components back to straight alpha.
func Unpremultiply(r, g, b, a byte) (byte, byte, byte, byte) {
	if a == 0 {
		return 0, 0, 0, 0
	}
	if a == 255 {
		return r, g, b, a
	}
	return divAlpha(r, a), divAlpha(g, a), divAlpha(b, a), a
}

func divAlpha(c, a byte) byte {
	v := (uint16(c)*255 + uint16(a)/2) / uint16(a)
	if v > 255 {
		return 255
	}
	return byte(v)
}

func blendClear(_, _, _, _, _, _, _, _ byte) (byte, byte, byte, byte) {
	return 0, 0, 0, 0
}

func blendSource(sr, sg, sb, sa, _, _, _, _ byte) (byte, byte, byte, byte) {
	return sr, sg, sb, sa
}

// blendSourceOver composites source over destination.
// Formula: S + D * (1 - Sa)
func blendSourceOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return addClamp(sr, MulDiv255(dr, invSa)),
		addClamp(sg, MulDiv255(dg, invSa)),
		addClamp(sb, MulDiv255(db, invSa)),
		addClamp(sa, MulDiv255(da, invSa))
}

// blendDstOut keeps the destination where the source is transparent.
// Formula: D * (1 - Sa)
func blendDstOut(_, _, _, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return MulDiv255(dr, invSa), MulDiv255(dg, invSa), MulDiv255(db, invSa), MulDiv255(da, invSa)
}

// MulDiv255 multiplies two bytes and divides by 255 with rounding.
// Formula: (a * b + 127) / 255
func MulDiv255(a, b byte) byte {
	return byte((uint16(a)*uint16(b) + 127) / 255)
}

// addClamp adds two bytes and clamps to 255.
func addClamp(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}
