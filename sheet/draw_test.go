package sheet

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"badc0de.net/pkg/go-spritesheet/ttesting"
)

func canvas(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func clone(img *image.RGBA) *image.RGBA {
	c := canvas(img.Bounds().Dx(), img.Bounds().Dy())
	draw.Draw(c, c.Bounds(), img, image.Point{}, draw.Src)
	return c
}

func TestDrawHero(t *testing.T) {
	imgPath, descPath := ttesting.WriteFiles(t, ttesting.Quadrants(64, 64), "hero 32 48 0 0\n")
	s, err := Load(imgPath, descPath)
	if err != nil {
		t.Fatalf("loading sheet: %v", err)
	}

	dst := canvas(100, 100)
	if !s.Draw(dst, "hero", 10, 20) {
		t.Fatalf("Draw(hero) reported nothing drawn")
	}

	ttesting.AssertColorAt(t, "top left", dst, 10, 20, ttesting.Red)
	ttesting.AssertColorAt(t, "last red", dst, 41, 51, ttesting.Red)
	ttesting.AssertColorAt(t, "first blue", dst, 10, 52, ttesting.Blue)
	ttesting.AssertColorAt(t, "bottom right", dst, 41, 67, ttesting.Blue)
	ttesting.AssertColorAt(t, "right of part", dst, 42, 20, ttesting.Clear)
	ttesting.AssertColorAt(t, "below part", dst, 10, 68, ttesting.Clear)
	ttesting.AssertColorAt(t, "before part", dst, 9, 19, ttesting.Clear)
}

func TestDrawUnknownNameIsNoop(t *testing.T) {
	s := New(ttesting.Quadrants(4, 4), Table{"tl": {Width: 2, Height: 2}})

	dst := canvas(8, 8)
	draw.Draw(dst, dst.Bounds(), &image.Uniform{ttesting.Green}, image.Point{}, draw.Src)
	before := clone(dst)

	ttesting.AssertEqualBool(t, "Draw", s.Draw(dst, "nope", 1, 1), false)
	ttesting.AssertEqualBool(t, "DrawRotated", s.DrawRotated(dst, "nope", 1, 1, 45), false)
	ttesting.AssertEqualBool(t, "DrawScaled", s.DrawScaled(dst, "nope", 1, 1, 4, 4), false)
	ttesting.AssertSameImage(t, "destination", dst, before)
}

func TestDrawUnloadedIsNoop(t *testing.T) {
	s := New(ttesting.Quadrants(4, 4), Table{"tl": {Width: 2, Height: 2}})
	s.Close()

	dst := canvas(4, 4)
	before := clone(dst)
	ttesting.AssertEqualBool(t, "Draw", s.Draw(dst, "tl", 0, 0), false)
	ttesting.AssertEqualBool(t, "DrawRotated", s.DrawRotated(dst, "tl", 0, 0, 90), false)
	ttesting.AssertSameImage(t, "destination", dst, before)
}

func TestDrawBlendsOver(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, ttesting.Red)
	src.SetNRGBA(1, 0, color.NRGBA{})
	s := New(src, Table{"half": {Width: 2, Height: 1}})

	dst := canvas(2, 1)
	draw.Draw(dst, dst.Bounds(), &image.Uniform{ttesting.Blue}, image.Point{}, draw.Src)
	s.Draw(dst, "half", 0, 0)

	ttesting.AssertColorAt(t, "opaque pixel", dst, 0, 0, ttesting.Red)
	ttesting.AssertColorAt(t, "transparent pixel keeps background", dst, 1, 0, ttesting.Blue)
}

func TestDrawClipsToDestination(t *testing.T) {
	s := New(ttesting.Quadrants(4, 4), Table{"all": {Width: 4, Height: 4}})
	dst := canvas(4, 4)
	ttesting.AssertEqualBool(t, "drawn", s.Draw(dst, "all", -1, -1), true)
	ttesting.AssertColorAt(t, "clipped corner", dst, 0, 0, ttesting.Red)
	ttesting.AssertColorAt(t, "clipped top edge", dst, 2, 0, ttesting.Green)
	ttesting.AssertColorAt(t, "far corner", dst, 2, 2, ttesting.White)
	ttesting.AssertColorAt(t, "outside part", dst, 3, 3, ttesting.Clear)
}

func TestDrawRotatedFullTurnsMatchDraw(t *testing.T) {
	s := New(ttesting.Quadrants(8, 8), Table{"part": {X: 2, Y: 1, Width: 5, Height: 3}})

	want := canvas(16, 16)
	s.Draw(want, "part", 4, 6)

	for _, angle := range []float64{0, 360, -360, 720} {
		got := canvas(16, 16)
		if !s.DrawRotated(got, "part", 4, 6, angle) {
			t.Fatalf("DrawRotated(%g) reported nothing drawn", angle)
		}
		ttesting.AssertSameImage(t, "angle", got, want)
	}
}

func TestDrawRotatedHalfTurn(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, ttesting.Red)
	src.SetNRGBA(1, 0, ttesting.Blue)
	s := New(src, Table{"pair": {Width: 2, Height: 1}})

	dst := canvas(4, 3)
	s.DrawRotated(dst, "pair", 1, 1, 180)

	ttesting.AssertColorAt(t, "left", dst, 1, 1, ttesting.Blue)
	ttesting.AssertColorAt(t, "right", dst, 2, 1, ttesting.Red)
	ttesting.AssertColorAt(t, "outside", dst, 0, 1, ttesting.Clear)
	ttesting.AssertColorAt(t, "above", dst, 1, 0, ttesting.Clear)
}

func TestDrawRotatedQuarterTurns(t *testing.T) {
	s := New(ttesting.Quadrants(2, 2), Table{"q": {Width: 2, Height: 2}})

	cw := canvas(4, 4)
	s.DrawRotated(cw, "q", 1, 1, 90)
	ttesting.AssertColorAt(t, "cw top left", cw, 1, 1, ttesting.Blue)
	ttesting.AssertColorAt(t, "cw top right", cw, 2, 1, ttesting.Red)
	ttesting.AssertColorAt(t, "cw bottom right", cw, 2, 2, ttesting.Green)
	ttesting.AssertColorAt(t, "cw bottom left", cw, 1, 2, ttesting.White)

	ccw := canvas(4, 4)
	s.DrawRotated(ccw, "q", 1, 1, -90)
	ttesting.AssertColorAt(t, "ccw top left", ccw, 1, 1, ttesting.Green)
	ttesting.AssertColorAt(t, "ccw top right", ccw, 2, 1, ttesting.White)
	ttesting.AssertColorAt(t, "ccw bottom right", ccw, 2, 2, ttesting.Blue)
	ttesting.AssertColorAt(t, "ccw bottom left", ccw, 1, 2, ttesting.Red)

	same := canvas(4, 4)
	s.DrawRotated(same, "q", 1, 1, 270)
	ttesting.AssertSameImage(t, "270 equals -90", same, ccw)
}

func TestDrawRotatedStaysNearCentre(t *testing.T) {
	s := New(ttesting.Quadrants(8, 8), Table{"q": {Width: 8, Height: 8}})
	dst := canvas(32, 32)
	s.DrawRotated(dst, "q", 12, 12, 45)

	// The rotated square's centre is at (16, 16); its diagonal reaches
	// about 5.7 pixels out, so nothing lands far from it.
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := dst.At(x, y).RGBA(); a == 0 {
				continue
			}
			if dx, dy := x-16, y-16; dx*dx+dy*dy > 7*7 {
				t.Fatalf("pixel (%d,%d) drawn too far from centre", x, y)
			}
		}
	}
	if _, _, _, a := dst.At(16, 16).RGBA(); a == 0 {
		t.Errorf("centre pixel not drawn")
	}
}

func TestDrawScaled(t *testing.T) {
	s := New(ttesting.Quadrants(2, 2), Table{"red": {Width: 1, Height: 1}})

	dst := canvas(8, 8)
	ttesting.AssertEqualBool(t, "drawn", s.DrawScaled(dst, "red", 1, 1, 3, 3), true)
	ttesting.AssertColorAt(t, "first", dst, 1, 1, ttesting.Red)
	ttesting.AssertColorAt(t, "last", dst, 3, 3, ttesting.Red)
	ttesting.AssertColorAt(t, "past last", dst, 4, 4, ttesting.Clear)
	ttesting.AssertColorAt(t, "before first", dst, 0, 0, ttesting.Clear)

	aspect := canvas(8, 8)
	s.DrawScaled(aspect, "red", 0, 0, 0, 4)
	ttesting.AssertColorAt(t, "aspect kept", aspect, 3, 3, ttesting.Red)
	ttesting.AssertColorAt(t, "aspect bound", aspect, 4, 0, ttesting.Clear)

	ttesting.AssertEqualBool(t, "negative size", s.DrawScaled(dst, "red", 0, 0, -1, 2), false)
}
