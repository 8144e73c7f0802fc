package imp

import (
	"fmt"
	"image"
)

// Levels is the number of intensity levels of an 8-bit grayscale image.
const Levels = 256

// A Histogram counts the pixels of each intensity level of a grayscale image.
//
// Binning [0,255] into 256 equal-width bins with a closed last edge puts
// every integer level in its own bin, so bin i is simply level i.
type Histogram struct {
	Counts [Levels]uint64
	Total  uint64
}

// ComputeHistogram counts the intensity levels of img.
func ComputeHistogram(img *image.Gray) Histogram {
	var h Histogram
	rect := img.Bounds()
	w := rect.Dx()
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		off := img.PixOffset(rect.Min.X, y)
		for _, v := range img.Pix[off : off+w] {
			h.Counts[v]++
		}
	}
	h.Total = uint64(w) * uint64(rect.Dy())
	return h
}

// NewHistogram builds a histogram from raw per-level counts.
func NewHistogram(counts []uint64) (Histogram, error) {
	var h Histogram
	if len(counts) != Levels {
		return h, fmt.Errorf("%w: expected %d counts, got %d", ErrInvalidInput, Levels, len(counts))
	}
	for i, c := range counts {
		h.Counts[i] = c
		h.Total += c
	}
	return h, nil
}

// Empty returns true if the histogram doesn't count any pixel.
func (h Histogram) Empty() bool {
	return h.Total == 0
}

// Add merges two histograms, as if both images were a single sample.
func (h Histogram) Add(o Histogram) Histogram {
	for i := range h.Counts {
		h.Counts[i] += o.Counts[i]
	}
	h.Total += o.Total
	return h
}

// Density returns the probability mass of each level. It is all zeros for
// an empty histogram.
func (h Histogram) Density() [Levels]float64 {
	var d [Levels]float64
	if h.Empty() {
		return d
	}
	n := float64(h.Total)
	for i, c := range h.Counts {
		d[i] = float64(c) / n
	}
	return d
}

// CDF returns the running sum of the density.
func (h Histogram) CDF() [Levels]float64 {
	var cdf [Levels]float64
	if h.Empty() {
		return cdf
	}
	cum := h.cumulative()
	n := float64(h.Total)
	for i, c := range cum {
		cdf[i] = float64(c) / n
	}
	return cdf
}

// Bounds returns the lowest and highest levels present in the histogram.
// ok is false for an empty histogram.
func (h Histogram) Bounds() (lo, hi uint8, ok bool) {
	if h.Empty() {
		return 0, 0, false
	}
	l, r := 0, Levels-1
	for h.Counts[l] == 0 {
		l++
	}
	for h.Counts[r] == 0 {
		r--
	}
	return uint8(l), uint8(r), true
}

// cumulative returns the running count of pixels at or below each level.
func (h Histogram) cumulative() [Levels]uint64 {
	var cum [Levels]uint64
	var acc uint64
	for i, c := range h.Counts {
		acc += c
		cum[i] = acc
	}
	return cum
}
