package imp

import (
	"errors"
	"fmt"
	"image"
)

// StretchLUT builds the LUT that linearly maps the darkest level of h to 0
// and the brightest to 255, rounding half to even. A histogram with a single
// populated level yields the identity.
func StretchLUT(h Histogram) (LUT, error) {
	lo, hi, ok := h.Bounds()
	if !ok {
		return LUT{}, fmt.Errorf("%w: empty histogram", ErrInvalidInput)
	}
	if lo == hi {
		return IdentityLUT(), nil
	}

	var lut LUT
	span := int(hi - lo)
	for i := int(lo); i < Levels; i++ {
		if i >= int(hi) {
			lut[i] = 255
			continue
		}
		lut[i] = uint8(divRound((i-int(lo))*255, span))
	}
	return lut, nil
}

// n/d rounded to the nearest integer, ties to even.
func divRound(n, d int) int {
	q, r := n/d, n%d
	if 2*r > d || (2*r == d && q%2 == 1) {
		q++
	}
	return q
}

// Stretch adjusts a grayscale image so it spans the whole colorspace.
func Stretch(img image.Image) (*image.Gray, error) {
	g, err := asGray(img, "source")
	if err != nil {
		return nil, err
	}
	lut, err := StretchLUT(ComputeHistogram(g))
	if err != nil {
		return nil, err
	}
	return lut.Apply(g), nil
}

// Normalize is Stretch writing into an existing image. src and dst may be
// the same image.
func Normalize(src, dst *image.Gray) error {
	if src.Bounds() != dst.Bounds() {
		return errors.New("src and dst should have the same bounds")
	}
	out, err := Stretch(src)
	if err != nil {
		return err
	}
	rect := src.Bounds()
	w := rect.Dx()
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		copy(dst.Pix[dst.PixOffset(rect.Min.X, y):][:w], out.Pix[out.PixOffset(rect.Min.X, y):][:w])
	}
	return nil
}
