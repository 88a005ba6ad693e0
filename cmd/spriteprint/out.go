package main

import (
	"image"
	"os"

	"github.com/golang/glog"
	"github.com/nfnt/resize"

	"badc0de.net/pkg/go-spritesheet/imageprint"
)

// fitTerminal shrinks img so that it fits the terminal. Each printed pixel
// takes two cells, hence the halving of the column count.
func fitTerminal(img image.Image, size TermSize, graphics bool) image.Image {
	if graphics && size.XPixel != 0 && size.YPixel != 0 {
		// Prefer printing out in native size if there's a chance we print out an image rather than pixels.
		return resize.Thumbnail(size.XPixel/2, size.YPixel/2, img, resize.Lanczos3)
	}
	if size.Cols < 2 || size.Rows == 0 {
		return img
	}
	return resize.Thumbnail(size.Cols/2, size.Rows, img, resize.Lanczos3)
}

func out(img image.Image) {
	if *downsize {
		if termSize, err := GetTermSize(); err == nil {
			img = fitTerminal(img, termSize, *rasterm || *iterm)
		} else {
			glog.V(1).Infof("not downsizing: %v", err)
		}
	}

	w := os.Stdout
	switch {
	case *rasterm:
		if ok, err := imageprint.PrintRasTerm(w, img); err != nil {
			glog.Errorf("printing with rasterm: %v", err)
		} else if !ok {
			imageprint.Print24bit(w, img, *blanks)
		}
	case !*col:
		imageprint.PrintNoColor(w, img, *blanks)
	case *iterm:
		if ok, err := imageprint.PrintITerm(w, img, "image.png"); err != nil {
			glog.Errorf("printing with iterm escapes: %v", err)
		} else if !ok {
			glog.V(1).Infof("terminal doesn't look like iTerm2; printing with 24 bit color")
			imageprint.Print24bit(w, img, *blanks)
		}
	case *col256:
		imageprint.Print256Color(w, img, *blanks)
	default:
		imageprint.Print24bit(w, img, *blanks)
	}
}
