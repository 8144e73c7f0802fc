package imp

import (
	"image"
	"math/rand"
	"testing"
)

// grayFrom builds a w x h grayscale image from row-major pixel values.
func grayFrom(w, h int, pix ...uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	copy(img.Pix, pix)
	return img
}

// randomGray returns a w x h image whose levels are drawn in [lo, hi].
func randomGray(rng *rand.Rand, w, h int, lo, hi int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(lo + rng.Intn(hi-lo+1))
	}
	return img
}

func samePixels(t *testing.T, got, want *image.Gray) {
	t.Helper()
	if got.Bounds() != want.Bounds() {
		t.Fatalf("bounds: got %v, want %v", got.Bounds(), want.Bounds())
	}
	r := want.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if g, w := got.GrayAt(x, y).Y, want.GrayAt(x, y).Y; g != w {
				t.Fatalf("pixel (%d,%d): got %d, want %d", x, y, g, w)
			}
		}
	}
}
