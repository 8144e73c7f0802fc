package imp

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"

	// Additional decoders.
	_ "golang.org/x/image/webp"
)

// ReadFile reads an image from a file, honoring its EXIF orientation.
func ReadFile(filename string) (image.Image, error) {
	img, err := imaging.Open(filename, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, filename, err)
	}
	return img, nil
}

// ReadGrayFile reads an image from a file and converts it to grayscale.
func ReadGrayFile(filename string) (*image.Gray, error) {
	img, err := ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ToGray(img), nil
}

// ReadBytes reads an image from raw bytes.
func ReadBytes(data []byte) (image.Image, error) {
	return Read(bytes.NewReader(data))
}

// Read reads an image from a io.Reader.
func Read(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return img, nil
}

// Save creates a file and writes an image to it. Image format is decided based
// upon its extension (jpg, png, gif, tif or bmp).
func Save(filename string, img image.Image, opts ...imaging.EncodeOption) error {
	return imaging.Save(img, filename, opts...)
}

// Encode writes an image to w in the given format.
func Encode(w io.Writer, img image.Image, format imaging.Format, opts ...imaging.EncodeOption) error {
	return imaging.Encode(w, img, format, opts...)
}
