package sheet

import (
	"fmt"
	"image"
)

// Rect is a part's rectangle in bitmap pixel coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Bounds returns r as an image.Rectangle.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Size returns the part's extent.
func (r Rect) Size() image.Point {
	return image.Pt(r.Width, r.Height)
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}
