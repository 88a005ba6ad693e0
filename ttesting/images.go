package ttesting

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

var (
	Red   = color.NRGBA{0xFF, 0x00, 0x00, 0xFF}
	Green = color.NRGBA{0x00, 0xFF, 0x00, 0xFF}
	Blue  = color.NRGBA{0x00, 0x00, 0xFF, 0xFF}
	White = color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF}
	Clear = color.NRGBA{}
)

// Quadrants returns a w by h image whose four quadrants are red (top left),
// green (top right), blue (bottom left) and white (bottom right).
func Quadrants(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var c color.NRGBA
			switch {
			case x < w/2 && y < h/2:
				c = Red
			case y < h/2:
				c = Green
			case x < w/2:
				c = Blue
			default:
				c = White
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// WriteFiles stores img as a PNG and descriptor as text under a fresh
// temporary directory, returning both paths.
func WriteFiles(t *testing.T, img image.Image, descriptor string) (imagePath, descriptorPath string) {
	t.Helper()
	dir := t.TempDir()
	imagePath = filepath.Join(dir, "sheet.png")
	descriptorPath = filepath.Join(dir, "sheet.txt")

	f, err := os.Create(imagePath)
	if err != nil {
		t.Fatalf("creating %s: %v", imagePath, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatalf("encoding %s: %v", imagePath, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing %s: %v", imagePath, err)
	}
	if err := os.WriteFile(descriptorPath, []byte(descriptor), 0o644); err != nil {
		t.Fatalf("writing %s: %v", descriptorPath, err)
	}
	return imagePath, descriptorPath
}
