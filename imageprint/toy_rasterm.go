//go:build !windows

package imageprint

import (
	"fmt"
	"image"
	"io"

	"github.com/BourgeoisBear/rasterm"
)

func isTermItermWez() bool {
	return rasterm.IsTermItermWez()
}

// PrintRasTerm draws an image using the RasTerm library, picking kitty,
// iTerm or sixel output depending on the terminal. It reports whether the
// terminal supported any of them.
func PrintRasTerm(w io.Writer, i image.Image) (bool, error) {
	if rasterm.IsTermKitty() {
		err := rasterm.Settings{}.KittyWriteImage(w, i)
		fmt.Fprintf(w, "\n")
		return true, err
	}
	if rasterm.IsTermItermWez() {
		err := rasterm.Settings{}.ItermWriteImage(w, i)
		fmt.Fprintf(w, "\n")
		return true, err
	}
	if capable, err := rasterm.IsSixelCapable(); capable && err == nil {
		err := rasterm.Settings{}.SixelWriteImage(w, Quantize(i, 64))
		fmt.Fprintf(w, "\n")
		return true, err
	}
	return false, nil
}
