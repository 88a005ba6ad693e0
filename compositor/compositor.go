// Package compositor paints scenes, lists of sprite parts at given positions,
// into an image.Image.
package compositor

import (
	"image"
	"image/draw"
	"math"

	"github.com/bradfitz/iter"
	"github.com/golang/glog"

	"badc0de.net/pkg/go-spritesheet/sheet"
)

// Source draws parts of sheets identified by id. *library.Library is one.
type Source interface {
	Part(sheetID, part string) (sheet.Rect, bool)
	Draw(dst draw.Image, sheetID, part string, x, y int) bool
	DrawRotated(dst draw.Image, sheetID, part string, x, y int, angle float64) bool
}

// Composite paints sc using parts from src. Placements naming parts that src
// doesn't have are logged and skipped. sc is assumed to be valid.
func Composite(src Source, sc *Scene) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, sc.Width, sc.Height))

	bg, err := ParseColor(sc.Background)
	if err != nil {
		glog.Warningf("compositor: %v; using a transparent background", err)
	}
	if bg.A > 0 {
		draw.Draw(img, img.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)
	}

	for idx, p := range sc.Placements {
		if _, ok := src.Part(p.Sheet, p.Part); !ok {
			glog.Warningf("compositor: placement %d: no part %q in sheet %q", idx, p.Part, p.Sheet)
			continue
		}
		CompositePlacement(img, src, p)
	}
	return img
}

// CompositePlacement draws one placement onto img and returns how many
// copies of the part were drawn. Copies of a repeated placement that can't
// reach img's bounds are not drawn.
func CompositePlacement(img draw.Image, src Source, p Placement) int {
	r, ok := src.Part(p.Sheet, p.Part)
	if !ok {
		return 0
	}

	cols, rows := p.RepeatX, p.RepeatY
	if cols == 0 {
		cols = 1
	}
	if rows == 0 {
		rows = 1
	}

	// Rotated copies may spill out of their box by up to the diagonal.
	pad := 0
	if p.Angle != 0 {
		pad = int(math.Ceil(math.Hypot(float64(r.Width), float64(r.Height))))
	}
	b := img.Bounds()
	col0, col1 := visible(p.X, r.Width, cols, b.Min.X-pad, b.Max.X+pad)
	row0, row1 := visible(p.Y, r.Height, rows, b.Min.Y-pad, b.Max.Y+pad)

	drawn := 0
	for row := range iter.N(row1 - row0) {
		for col := range iter.N(col1 - col0) {
			x, y := p.X+(col0+col)*r.Width, p.Y+(row0+row)*r.Height
			var ok bool
			if p.Angle == 0 {
				ok = src.Draw(img, p.Sheet, p.Part, x, y)
			} else {
				ok = src.DrawRotated(img, p.Sheet, p.Part, x, y, p.Angle)
			}
			if ok {
				drawn++
			}
		}
	}
	glog.V(2).Infof("compositor: %s/%s at %d,%d drawn %d times", p.Sheet, p.Part, p.X, p.Y, drawn)
	return drawn
}

// visible returns the half-open range [first, end) of the count copies,
// placed at origin + i*step, that overlap [lo, hi). Copies of step 0 all
// land in the same place, so at most one is kept.
func visible(origin, step, count, lo, hi int) (first, end int) {
	if step <= 0 {
		if origin >= lo && origin < hi {
			return 0, 1
		}
		return 0, 0
	}
	// origin + i*step + step > lo  and  origin + i*step < hi
	first = floorDiv(lo-origin-step, step) + 1
	end = ceilDiv(hi-origin, step)
	if first < 0 {
		first = 0
	}
	if end > count {
		end = count
	}
	if end < first {
		end = first
	}
	return first, end
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
