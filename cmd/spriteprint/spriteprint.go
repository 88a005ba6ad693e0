// Command spriteprint prints parts of sprite sheets, or scenes composed of
// them, on the terminal.
//
//	spriteprint -image_path hero.png -descriptor_path hero.txt -list
//	spriteprint -image_path hero.png -descriptor_path hero.txt -part walk1 -angle 90
//	spriteprint -manifest sheets.yaml -part hero/walk1
//	spriteprint -manifest sheets.yaml -scene level.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"math"
	"os"
	"strings"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/common-nighthawk/go-figure"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-spritesheet/compositor"
	"badc0de.net/pkg/go-spritesheet/library"
	"badc0de.net/pkg/go-spritesheet/paths"
	"badc0de.net/pkg/go-spritesheet/sheet"
)

// singleSheetID is the id under which -image_path/-descriptor_path is known.
const singleSheetID = "sheet"

var (
	manifestPath = flag.String("manifest", "", "YAML manifest listing sheets; overrides -image_path and -descriptor_path")
	partName     = flag.String("part", "", "part to print; with -manifest, as sheet/part")
	angle        = flag.Float64("angle", 0, "clockwise rotation of the part, in degrees")
	scale        = flag.Float64("scale", 1, "scale factor applied to the part")
	list         = flag.Bool("list", false, "list the parts of each sheet")
	scenePath    = flag.String("scene", "", "YAML scene to composite and print")

	col      = flag.Bool("col", true, "whether to use color")
	col256   = flag.Bool("col256", false, "whether to use 256 col instead of 24 bit")
	iterm    = flag.Bool("iterm", false, "whether to print with iterm escape code instead of 24 bit")
	rasterm  = flag.Bool("rasterm", false, "whether to print with kitty, iterm or sixel graphics, whichever the terminal supports")
	blanks   = flag.Bool("blanks", true, "whether to just use colored blanks instead of some bad ascii art")
	downsize = flag.Bool("downsize", true, "whether to shrink images to fit the terminal")

	imagePath      string
	descriptorPath string
)

func setupFilePathFlags() {
	paths.SetupFilePathFlag("sheet.png", "image_path", &imagePath)
	paths.SetupFilePathFlag("sheet.txt", "descriptor_path", &descriptorPath)
}

func openLibrary(ctx context.Context) (*library.Library, error) {
	if *manifestPath != "" {
		m, err := library.LoadManifest(*manifestPath)
		if err != nil {
			return nil, err
		}
		return library.Load(ctx, m, nil)
	}

	s, err := sheet.Load(imagePath, descriptorPath)
	if err != nil {
		return nil, err
	}
	lib := library.New()
	lib.Add(singleSheetID, s)
	return lib, nil
}

// splitPartRef splits "sheet/part". Without a manifest the sheet is implied.
func splitPartRef(ref string) (string, string, error) {
	if *manifestPath == "" {
		return singleSheetID, ref, nil
	}
	i := strings.Index(ref, "/")
	if i <= 0 || i == len(ref)-1 {
		return "", "", errors.Errorf("part %q is not of the form sheet/part", ref)
	}
	return ref[:i], ref[i+1:], nil
}

func listHandler(lib *library.Library) {
	for _, id := range lib.IDs() {
		figure.NewFigure(id, "", false).Print()
		t, _ := lib.Table(id)
		for _, name := range t.Names() {
			fmt.Printf("  %-24s %v\n", name, t[name])
		}
	}
}

// renderPart draws one part, scaled and then rotated, onto a canvas just
// large enough to hold it.
func renderPart(lib *library.Library, id, name string, angle, scale float64) (image.Image, error) {
	r, ok := lib.Part(id, name)
	if !ok {
		return nil, errors.Errorf("no part %q in sheet %q", name, id)
	}
	if r.Width == 0 || r.Height == 0 {
		return nil, errors.Errorf("part %q is empty", name)
	}

	w, h := r.Width, r.Height
	if scale > 0 && scale != 1 {
		w = int(math.Max(1, math.Round(float64(w)*scale)))
		h = int(math.Max(1, math.Round(float64(h)*scale)))
	}
	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	lib.DrawScaled(scaled, id, name, 0, 0, w, h)
	if angle == 0 {
		return scaled, nil
	}

	side := int(math.Ceil(math.Hypot(float64(w), float64(h))))
	canvas := image.NewRGBA(image.Rect(0, 0, side, side))
	sheet.New(scaled, sheet.Table{name: {Width: w, Height: h}}).DrawRotated(canvas, name, (side-w)/2, (side-h)/2, angle)
	return canvas, nil
}

func sceneHandler(lib *library.Library, path string) error {
	f, err := paths.NoFindOpen(path)
	if err != nil {
		return errors.Wrap(err, "opening scene")
	}
	defer f.Close()
	sc, err := compositor.ParseScene(f)
	if err != nil {
		return errors.Wrapf(err, "reading scene %q", path)
	}
	out(compositor.Composite(lib, sc))
	return nil
}

func main() {
	setupFilePathFlags()
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	lib, err := openLibrary(context.Background())
	if err != nil {
		glog.Exitf("loading sheets: %v", err)
	}
	defer lib.Close()

	if *list {
		listHandler(lib)
	}
	if *partName != "" {
		id, name, err := splitPartRef(*partName)
		if err != nil {
			glog.Exit(err)
		}
		img, err := renderPart(lib, id, name, *angle, *scale)
		if err != nil {
			glog.Exit(err)
		}
		out(img)
	}
	if *scenePath != "" {
		if err := sceneHandler(lib, *scenePath); err != nil {
			glog.Exit(err)
		}
	}
	if !*list && *partName == "" && *scenePath == "" {
		fmt.Fprintln(os.Stderr, "nothing to do; pass -list, -part or -scene")
		flag.Usage()
		os.Exit(2)
	}
}
