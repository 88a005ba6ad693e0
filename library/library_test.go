package library

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"

	"badc0de.net/pkg/go-spritesheet/sheet"
	"badc0de.net/pkg/go-spritesheet/ttesting"
)

const twoSheets = `base_path: sheets
sheets:
  - id: hero
    image: hero.png
    descriptor: hero.txt
  - id: tiles
    image: tiles.png
    descriptor: tiles.txt
`

// writeLibrary lays out a manifest with two sheets in a temporary directory
// and returns the manifest's path.
func writeLibrary(t *testing.T, manifest string) string {
	t.Helper()
	dir := t.TempDir()
	sheets := filepath.Join(dir, "sheets")
	if err := os.Mkdir(sheets, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, desc := range map[string]string{"hero": "hero 2 2 0 0\n", "tiles": "grass 2 2 2 2\n"} {
		img, txt := ttesting.WriteFiles(t, ttesting.Quadrants(4, 4), desc)
		for src, dst := range map[string]string{img: name + ".png", txt: name + ".txt"} {
			b, err := os.ReadFile(src)
			if err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(filepath.Join(sheets, dst), b, 0o644); err != nil {
				t.Fatal(err)
			}
		}
	}
	path := filepath.Join(dir, "manifest.yaml")
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func loadLibrary(t *testing.T, manifest string) (*Library, error) {
	t.Helper()
	m, err := LoadManifest(writeLibrary(t, manifest))
	if err != nil {
		t.Fatalf("loading manifest: %v", err)
	}
	return Load(context.Background(), m, &Options{Parallelism: 2})
}

func TestLoad(t *testing.T) {
	lib, err := loadLibrary(t, twoSheets)
	if err != nil {
		t.Fatalf("loading library: %v", err)
	}
	defer lib.Close()

	if got, want := lib.IDs(), []string{"hero", "tiles"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ids: got %v; want %v", got, want)
	}

	dst := image.NewRGBA(image.Rect(0, 0, 4, 2))
	ttesting.AssertEqualBool(t, "hero drawn", lib.Draw(dst, "hero", "hero", 0, 0), true)
	ttesting.AssertEqualBool(t, "grass drawn", lib.Draw(dst, "tiles", "grass", 2, 0), true)
	ttesting.AssertEqualBool(t, "unknown sheet", lib.Draw(dst, "nope", "hero", 0, 0), false)
	ttesting.AssertEqualBool(t, "part of other sheet", lib.Draw(dst, "tiles", "hero", 0, 0), false)
	ttesting.AssertColorAt(t, "hero pixel", dst, 0, 0, ttesting.Red)
	ttesting.AssertColorAt(t, "grass pixel", dst, 2, 0, ttesting.White)

	if r, ok := lib.Part("tiles", "grass"); !ok || r != (sheet.Rect{X: 2, Y: 2, Width: 2, Height: 2}) {
		t.Errorf("grass: got %v, %v", r, ok)
	}
}

func TestDrawScaled(t *testing.T) {
	lib := New()
	lib.Add("q", sheet.New(ttesting.Quadrants(4, 4), sheet.Table{"red": {Width: 2, Height: 2}}))

	dst := image.NewRGBA(image.Rect(0, 0, 6, 6))
	ttesting.AssertEqualBool(t, "drawn", lib.DrawScaled(dst, "q", "red", 1, 1, 4, 4), true)
	ttesting.AssertColorAt(t, "inside", dst, 4, 4, ttesting.Red)
	ttesting.AssertColorAt(t, "outside", dst, 5, 5, ttesting.Clear)
	ttesting.AssertEqualBool(t, "unknown sheet", lib.DrawScaled(dst, "nope", "red", 0, 0, 4, 4), false)
	ttesting.AssertEqualBool(t, "negative size", lib.DrawScaled(dst, "q", "red", 0, 0, -1, 4), false)
}

func TestLoadFailureNamesSheet(t *testing.T) {
	manifest := strings.Replace(twoSheets, "tiles.txt", "missing.txt", 1)
	lib, err := loadLibrary(t, manifest)
	if err == nil {
		lib.Close()
		t.Fatalf("loading library with a missing descriptor succeeded")
	}
	var de *sheet.DescriptorLoadError
	if !errors.As(err, &de) {
		t.Errorf("got %v; want a *sheet.DescriptorLoadError", err)
	}
	if !strings.Contains(err.Error(), `"tiles"`) {
		t.Errorf("error %q does not name the sheet", err)
	}
}

func TestLoadCancelled(t *testing.T) {
	m, err := LoadManifest(writeLibrary(t, twoSheets))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx, m, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v; want context.Canceled", err)
	}
}

func TestParseManifestErrors(t *testing.T) {
	for name, manifest := range map[string]string{
		"duplicate id":  "sheets:\n  - {id: a, image: a.png, descriptor: a.txt}\n  - {id: a, image: b.png, descriptor: b.txt}\n",
		"missing id":    "sheets:\n  - {image: a.png, descriptor: a.txt}\n",
		"missing image": "sheets:\n  - {id: a, descriptor: a.txt}\n",
		"unknown key":   "sheets:\n  - {id: a, image: a.png, descriptor: a.txt, colour: red}\n",
		"not yaml":      "sheets: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseManifest(strings.NewReader(manifest)); err == nil {
				t.Errorf("ParseManifest succeeded")
			}
		})
	}

	m, err := ParseManifest(strings.NewReader(""))
	if err != nil {
		t.Fatalf("empty manifest: %v", err)
	}
	ttesting.AssertEqualInt(t, "empty manifest sheets", len(m.Sheets), 0)
}

func TestAddReplaces(t *testing.T) {
	lib := New()
	first := sheet.New(ttesting.Quadrants(2, 2), sheet.Table{"a": {Width: 1, Height: 1}})
	second := sheet.New(ttesting.Quadrants(2, 2), sheet.Table{"b": {Width: 1, Height: 1}})
	lib.Add("s", first)
	lib.Add("s", second)

	ttesting.AssertEqualBool(t, "replaced sheet closed", first.Loaded(), false)
	if _, ok := lib.Part("s", "b"); !ok {
		t.Errorf("new sheet not reachable")
	}
	lib.Close()
	ttesting.AssertEqualInt(t, "ids after close", len(lib.IDs()), 0)
	ttesting.AssertEqualBool(t, "closed sheet", second.Loaded(), false)
}

func TestConcurrentDraws(t *testing.T) {
	lib := New()
	for i := 0; i < 4; i++ {
		lib.Add(fmt.Sprintf("s%d", i), sheet.New(ttesting.Quadrants(4, 4), sheet.Table{"p": {Width: 4, Height: 4}}))
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
			id := fmt.Sprintf("s%d", i%4)
			if !lib.Draw(dst, id, "p", 0, 0) || !lib.DrawRotated(dst, id, "p", 4, 4, 90) {
				t.Errorf("draw %d failed", i)
			}
		}(i)
	}
	wg.Wait()
}
