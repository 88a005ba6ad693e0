package sheet

import (
	"image"
	"image/draw"
	"math"

	"github.com/nfnt/resize"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Draw copies the named part onto dst with its top left corner at (x, y),
// compositing over what is already there. The part keeps its size.
//
// Unknown names and unloaded sheets draw nothing and report false.
func (s *Sheet) Draw(dst draw.Image, name string, x, y int) bool {
	r, ok := s.Part(name)
	if !ok || dst == nil {
		return false
	}
	s.blit(dst, r, x, y)
	return true
}

func (s *Sheet) blit(dst draw.Image, r Rect, x, y int) {
	dr := image.Rect(x, y, x+r.Width, y+r.Height)
	draw.Draw(dst, dr, s.img, s.origin().Add(image.Pt(r.X, r.Y)), draw.Over)
}

// DrawRotated draws the named part rotated by angle degrees, clockwise as
// seen on screen, around the part's centre. The centre ends up where Draw
// would have put it. Sampling is nearest neighbour.
//
// Multiples of 360 degrees are exactly Draw.
func (s *Sheet) DrawRotated(dst draw.Image, name string, x, y int, angle float64) bool {
	r, ok := s.Part(name)
	if !ok || dst == nil {
		return false
	}

	sin, cos := sincosDegrees(angle)
	if sin == 0 && cos == 1 {
		s.blit(dst, r, x, y)
		return true
	}

	sr := r.Bounds().Add(s.origin()).Intersect(s.img.Bounds())
	if sr.Empty() {
		return true
	}

	o := s.origin()
	cx := float64(o.X+r.X) + float64(r.Width)/2
	cy := float64(o.Y+r.Y) + float64(r.Height)/2
	dcx := float64(x) + float64(r.Width)/2
	dcy := float64(y) + float64(r.Height)/2

	s2d := f64.Aff3{
		cos, -sin, dcx - cos*cx + sin*cy,
		sin, cos, dcy - sin*cx - cos*cy,
	}
	xdraw.NearestNeighbor.Transform(dst, s2d, s.img, sr, xdraw.Over, nil)
	return true
}

// sincosDegrees returns exact values for multiples of 90 degrees so that
// quarter turns stay pixel aligned.
func sincosDegrees(angle float64) (sin, cos float64) {
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	switch a {
	case 0:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	}
	return math.Sincos(a * math.Pi / 180)
}

// DrawScaled draws the named part resampled to w by h pixels with its top
// left corner at (x, y). A zero w or h keeps the part's aspect ratio; both
// zero, or the part's own size, is the same as Draw. Negative sizes draw nothing.
func (s *Sheet) DrawScaled(dst draw.Image, name string, x, y, w, h int) bool {
	if w < 0 || h < 0 {
		return false
	}
	sub, ok := s.SubImage(name)
	if !ok || dst == nil {
		return false
	}
	r, _ := s.Part(name)
	if (w == 0 && h == 0) || (w == r.Width && h == r.Height) {
		s.blit(dst, r, x, y)
		return true
	}

	scaled := resize.Resize(uint(w), uint(h), sub, resize.NearestNeighbor)
	sb := scaled.Bounds()
	draw.Draw(dst, sb.Sub(sb.Min).Add(image.Pt(x, y)), scaled, sb.Min, draw.Over)
	return true
}
