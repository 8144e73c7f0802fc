package imp

import (
	"image"
	"image/color"
)

// ToGray converts any image in a grayscale picture of the same size.
//
// Grayscale images are returned as is. JPEG-decoded images already carry
// their luma plane, which is copied without any color conversion.
func ToGray(src image.Image) *image.Gray {
	switch img := src.(type) {
	case *image.Gray:
		return img
	case *image.YCbCr:
		return lumaPlane(img)
	}

	bounds := src.Bounds()
	dst := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst.SetGray(x, y, color.GrayModel.Convert(src.At(x, y)).(color.Gray))
		}
	}
	return dst
}

func lumaPlane(src *image.YCbCr) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(bounds)
	w := bounds.Dx()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		copy(dst.Pix[dst.PixOffset(bounds.Min.X, y):][:w], src.Y[src.YOffset(bounds.Min.X, y):][:w])
	}
	return dst
}
