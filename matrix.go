package invcolors

import (
	"fmt"
	"strings"
)

// ColorMatrix is a 4x5 color transformation matrix in row-major order.
// The transformation is:
//
//	[R']   [a00 a01 a02 a03 a04]   [R]
//	[G'] = [a10 a11 a12 a13 a14] * [G]
//	[B']   [a20 a21 a22 a23 a24]   [B]
//	[A']   [a30 a31 a32 a33 a34]   [A]
//	                               [1]
//
// Color values are in [0, 255] during transformation and the fifth column
// is an offset in the same range. Results are clamped by whoever applies
// the matrix, never by the matrix itself.
type ColorMatrix [20]float32

// Identity returns the matrix that leaves every color unchanged.
func Identity() ColorMatrix {
	return ColorMatrix{
		1, 0, 0, 0, 0, // R
		0, 1, 0, 0, 0, // G
		0, 0, 1, 0, 0, // B
		0, 0, 0, 1, 0, // A
	}
}

// Inversion returns the canonical RGB inversion matrix, which keeps alpha.
func Inversion() ColorMatrix {
	return ColorMatrix{
		-1, 0, 0, 0, 255,
		0, -1, 0, 0, 255,
		0, 0, -1, 0, 255,
		0, 0, 0, 1, 0,
	}
}

// Build returns the channel-separable matrix that maps src to dst and the
// complement of src to the complement of dst. Alpha is preserved.
//
// For each channel the affine map c' = a*c + b is fitted through the two
// points (s, d) and (255-s, 255-d). Build(White, Black) is exactly
// Inversion() and Build(c, c) is the identity.
func Build(src, dst Color) ColorMatrix {
	ar, br := fitChannel(src.R(), dst.R())
	ag, bg := fitChannel(src.G(), dst.G())
	ab, bb := fitChannel(src.B(), dst.B())

	return ColorMatrix{
		ar, 0, 0, 0, br,
		0, ag, 0, 0, bg,
		0, 0, ab, 0, bb,
		0, 0, 0, 1, 0,
	}
}

// fitChannel solves a*s+b = d and a*(255-s)+b = 255-d.
func fitChannel(s, d uint8) (a, b float32) {
	sc, dc := float64(s), float64(d)
	sc2, dc2 := 255-sc, 255-dc

	// Only reachable for a source component of 127.5, which an 8-bit
	// channel cannot hold.
	if sc == sc2 {
		return 1, float32(dc - 127.5)
	}

	slope := (dc - dc2) / (sc - sc2)
	return float32(slope), float32(dc - slope*sc)
}

// Row returns row i (0=R, 1=G, 2=B, 3=A) of the matrix.
func (m ColorMatrix) Row(i int) [5]float32 {
	var r [5]float32
	copy(r[:], m[i*5:i*5+5])
	return r
}

// IsIdentity reports whether m is exactly the identity matrix.
func (m ColorMatrix) IsIdentity() bool {
	return m == Identity()
}

// Transform applies the matrix to a straight-alpha color. Each output
// channel is rounded and clamped to [0, 255].
func (m ColorMatrix) Transform(c Color) Color {
	r, g, b, a := m.apply(float32(c.R()), float32(c.G()), float32(c.B()), float32(c.A()))
	return ARGB(clampUint8(a), clampUint8(r), clampUint8(g), clampUint8(b))
}

func (m *ColorMatrix) apply(r, g, b, a float32) (nr, ng, nb, na float32) {
	nr = m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4]
	ng = m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9]
	nb = m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14]
	na = m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19]
	return nr, ng, nb, na
}

// ApplyPremultiplied transforms premultiplied RGBA8 pixels in place.
// Each pixel is un-premultiplied, transformed, clamped and premultiplied
// again, so the matrix coefficients always see straight-alpha values.
func (m ColorMatrix) ApplyPremultiplied(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		pr := float32(pix[i+0])
		pg := float32(pix[i+1])
		pb := float32(pix[i+2])
		a := float32(pix[i+3])

		var r, g, b float32
		if a > 0 {
			r = pr * 255 / a
			g = pg * 255 / a
			b = pb * 255 / a
		}

		nr, ng, nb, na := m.apply(r, g, b, a)

		na = clampFloat(na)
		if na > 0 {
			factor := na / 255
			nr = clampFloat(nr) * factor
			ng = clampFloat(ng) * factor
			nb = clampFloat(nb) * factor
		} else {
			nr, ng, nb = 0, 0, 0
		}

		pix[i+0] = clampUint8(nr)
		pix[i+1] = clampUint8(ng)
		pix[i+2] = clampUint8(nb)
		pix[i+3] = clampUint8(na)
	}
}

// Concat returns the matrix that applies m first and then next.
func (m ColorMatrix) Concat(next ColorMatrix) ColorMatrix {
	var r ColorMatrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += next[row*5+k] * m[k*5+col]
			}
			r[row*5+col] = sum
		}
		r[row*5+4] = next[row*5+0]*m[4] + next[row*5+1]*m[9] +
			next[row*5+2]*m[14] + next[row*5+3]*m[19] + next[row*5+4]
	}
	return r
}

// String formats the matrix one row per line.
func (m ColorMatrix) String() string {
	var sb strings.Builder
	for row := 0; row < 4; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		r := m.Row(row)
		fmt.Fprintf(&sb, "[%g %g %g %g %g]", r[0], r[1], r[2], r[3], r[4])
	}
	return sb.String()
}

func clampFloat(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func clampUint8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
