package imp

import (
	"fmt"
	"image"
)

// Match remaps the intensities of src so that its cumulative distribution
// approximates the one of ref. Both images must be non-empty *image.Gray;
// they may have different sizes. The result has the bounds of src.
func Match(src, ref image.Image) (*image.Gray, error) {
	s, err := asGray(src, "source")
	if err != nil {
		return nil, err
	}
	r, err := asGray(ref, "reference")
	if err != nil {
		return nil, err
	}

	lut, err := BuildLUT(ComputeHistogram(s), ComputeHistogram(r))
	if err != nil {
		return nil, err
	}
	return lut.Apply(s), nil
}

// MatchHistogram remaps src against a reference histogram, typically one
// that was stored earlier. It also returns the LUT it applied.
func MatchHistogram(src image.Image, ref Histogram) (*image.Gray, LUT, error) {
	s, err := asGray(src, "source")
	if err != nil {
		return nil, LUT{}, err
	}
	lut, err := BuildLUT(ComputeHistogram(s), ref)
	if err != nil {
		return nil, lut, err
	}
	return lut.Apply(s), lut, nil
}

// asGray makes sure img is a non-empty single-channel 8-bit image.
func asGray(img image.Image, role string) (*image.Gray, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: %s image is nil", ErrInvalidInput, role)
	}
	g, ok := img.(*image.Gray)
	if !ok {
		return nil, fmt.Errorf("%w: %s image must be single-channel 8-bit grayscale, got %T", ErrInvalidInput, role, img)
	}
	if g == nil {
		return nil, fmt.Errorf("%w: %s image is nil", ErrInvalidInput, role)
	}
	if g.Bounds().Empty() {
		return nil, fmt.Errorf("%w: %s image is empty", ErrInvalidInput, role)
	}
	return g, nil
}
