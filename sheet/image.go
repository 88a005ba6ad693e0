package sheet

// This file contains the image decoders a sheet's bitmap can come in.

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/pkg/errors"
)

// decodeBitmap decodes any of the registered formats (png, gif, jpeg, bmp,
// webp).
func decodeBitmap(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "decoding bitmap")
	}
	if img.Bounds().Empty() {
		return nil, errors.Errorf("decoded %s bitmap is empty", format)
	}
	return img, nil
}
