package imp

import (
	"fmt"
	"image"
	"math"
)

// EqualizationLUT builds the LUT that spreads the levels of h over the
// whole [0,255] range, according to their cumulative distribution.
//
// The first populated level maps to 0 and the last one to 255. A histogram
// with a single populated level yields the identity.
func EqualizationLUT(h Histogram) (LUT, error) {
	if h.Empty() {
		return LUT{}, fmt.Errorf("%w: empty histogram", ErrInvalidInput)
	}

	cum := h.cumulative()
	lo, _, _ := h.Bounds()
	cumMin := cum[lo]
	if cumMin == h.Total {
		return IdentityLUT(), nil
	}

	var lut LUT
	span := float64(h.Total - cumMin)
	for i, c := range cum {
		if c < cumMin {
			continue
		}
		lut[i] = uint8(math.Round(float64(c-cumMin) / span * 255))
	}
	return lut, nil
}

// Equalize performs histogram equalization of a grayscale image.
func Equalize(img image.Image) (*image.Gray, error) {
	g, err := asGray(img, "source")
	if err != nil {
		return nil, err
	}
	lut, err := EqualizationLUT(ComputeHistogram(g))
	if err != nil {
		return nil, err
	}
	return lut.Apply(g), nil
}
