package imp

import (
	"image"

	"github.com/nfnt/resize"
)

// Thumbnail downsizes img to fit within maxWidth x maxHeight, preserving its
// aspect ratio. Images that already fit are returned as is.
func Thumbnail(img image.Image, maxWidth, maxHeight uint) image.Image {
	size := img.Bounds().Size()
	if uint(size.X) <= maxWidth && uint(size.Y) <= maxHeight {
		return img
	}
	return resize.Thumbnail(maxWidth, maxHeight, img, resize.Lanczos3)
}
