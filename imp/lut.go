package imp

import (
	"fmt"
	"image"
	"math/bits"
)

// A LUT maps every source intensity level to an output level.
type LUT [Levels]uint8

// IdentityLUT returns the LUT that maps every level to itself.
func IdentityLUT() LUT {
	var l LUT
	for i := range l {
		l[i] = uint8(i)
	}
	return l
}

// BuildLUT builds the histogram-matching LUT from the source histogram to
// the reference histogram: each source level is mapped to the smallest
// reference level whose cumulative mass is at least the source's cumulative
// mass at that level.
//
// The reference cursor is shared by all source levels and only ever moves
// forward, which makes the table non-decreasing and the scan linear.
func BuildLUT(src, ref Histogram) (LUT, error) {
	var lut LUT
	if src.Empty() {
		return lut, fmt.Errorf("%w: empty source histogram", ErrInvalidInput)
	}
	if ref.Empty() {
		return lut, fmt.Errorf("%w: empty reference histogram", ErrInvalidInput)
	}

	srcCum := src.cumulative()
	refCum := ref.cumulative()

	r := 0
	for s := 0; s < Levels; s++ {
		// refCum[r]/ref.Total < srcCum[s]/src.Total, without rounding.
		for r < Levels-1 && mulLess(refCum[r], src.Total, srcCum[s], ref.Total) {
			r++
		}
		lut[s] = uint8(r)
	}
	return lut, nil
}

// mulLess reports whether a*b < c*d using full 128-bit products.
func mulLess(a, b, c, d uint64) bool {
	hi1, lo1 := bits.Mul64(a, b)
	hi2, lo2 := bits.Mul64(c, d)
	if hi1 != hi2 {
		return hi1 < hi2
	}
	return lo1 < lo2
}

// Monotonic returns true if the LUT never maps a level below the mapping of
// a lower level.
func (l *LUT) Monotonic() bool {
	for i := 1; i < Levels; i++ {
		if l[i] < l[i-1] {
			return false
		}
	}
	return true
}

// Apply maps every pixel of img through the LUT into a new image with the
// same bounds.
func (l *LUT) Apply(img *image.Gray) *image.Gray {
	rect := img.Bounds()
	dst := image.NewGray(rect)
	w := rect.Dx()
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		src := img.Pix[img.PixOffset(rect.Min.X, y):]
		out := dst.Pix[dst.PixOffset(rect.Min.X, y):]
		for x := 0; x < w; x++ {
			out[x] = l[src[x]]
		}
	}
	return dst
}

// Transform maps a histogram through the LUT, giving the histogram of the
// image the LUT would produce.
func (l *LUT) Transform(h Histogram) Histogram {
	out := Histogram{Total: h.Total}
	for v, c := range h.Counts {
		out.Counts[l[v]] += c
	}
	return out
}
