package sheet

import (
	"image"
	"image/draw"
	"io"
	"os"

	"github.com/golang/glog"
)

// Sheet is a bitmap together with the table of named parts inside it.
//
// A Sheet is either loaded (it has a bitmap, draws take effect) or unloaded
// (no bitmap, every draw is a no-op). The zero Sheet is unloaded.
type Sheet struct {
	img   image.Image
	parts Table
}

// New returns a loaded sheet over img. The sheet takes ownership of both
// arguments; callers should not modify them afterwards.
func New(img image.Image, parts Table) *Sheet {
	if parts == nil {
		parts = Table{}
	}
	return &Sheet{img: img, parts: parts}
}

// Opener opens a named file for reading. os.Open fits once wrapped.
type Opener func(name string) (io.ReadCloser, error)

func osOpen(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

// Load decodes the bitmap at imagePath and the descriptor at descriptorPath.
//
// The returned Sheet is never nil. When an error is returned, it is unloaded:
// a bitmap that failed to decode yields an *ImageLoadError and the descriptor
// is not consulted; a descriptor that could not be opened or read yields a
// *DescriptorLoadError and the already decoded bitmap is dropped.
func Load(imagePath, descriptorPath string) (*Sheet, error) {
	return LoadFrom(osOpen, imagePath, descriptorPath)
}

// LoadFrom is like Load, but opens both files through open.
func LoadFrom(open Opener, imagePath, descriptorPath string) (*Sheet, error) {
	s := &Sheet{}

	f, err := open(imagePath)
	if err != nil {
		return s, report(&ImageLoadError{Path: imagePath, Err: err})
	}
	img, err := decodeBitmap(f)
	f.Close()
	if err != nil {
		return s, report(&ImageLoadError{Path: imagePath, Err: err})
	}

	d, err := open(descriptorPath)
	if err != nil {
		return s, report(&DescriptorLoadError{Path: descriptorPath, Err: err})
	}
	defer d.Close()
	parts, err := ParseTable(d)
	if err != nil {
		return s, report(&DescriptorLoadError{Path: descriptorPath, Err: err})
	}

	s.img, s.parts = img, parts
	glog.V(1).Infof("sheet: loaded %q (%v) with %d parts from %q", imagePath, img.Bounds().Size(), len(parts), descriptorPath)
	return s, nil
}

// Decode is like Load, but reads the bitmap and the descriptor from readers.
func Decode(imageReader, descriptorReader io.Reader) (*Sheet, error) {
	s := &Sheet{}

	img, err := decodeBitmap(imageReader)
	if err != nil {
		return s, report(&ImageLoadError{Err: err})
	}
	parts, err := ParseTable(descriptorReader)
	if err != nil {
		return s, report(&DescriptorLoadError{Err: err})
	}

	s.img, s.parts = img, parts
	return s, nil
}

func report(err error) error {
	glog.Errorf("%v", err)
	return err
}

// Loaded reports whether the sheet has a bitmap.
func (s *Sheet) Loaded() bool {
	return s != nil && s.img != nil
}

// Bounds returns the bitmap's bounds, or an empty rectangle when unloaded.
func (s *Sheet) Bounds() image.Rectangle {
	if !s.Loaded() {
		return image.Rectangle{}
	}
	return s.img.Bounds()
}

// Close drops the bitmap and the part table. The sheet is unloaded afterwards.
func (s *Sheet) Close() {
	if s == nil {
		return
	}
	s.img = nil
	s.parts = nil
}

// Part looks up the rectangle of a named part.
func (s *Sheet) Part(name string) (Rect, bool) {
	if !s.Loaded() {
		return Rect{}, false
	}
	r, ok := s.parts[name]
	return r, ok
}

// Names returns the sorted names of all parts.
func (s *Sheet) Names() []string {
	if !s.Loaded() {
		return nil
	}
	return s.parts.Names()
}

// Len returns the number of parts.
func (s *Sheet) Len() int {
	if !s.Loaded() {
		return 0
	}
	return len(s.parts)
}

// Table returns a copy of the part table.
func (s *Sheet) Table() Table {
	t := Table{}
	if !s.Loaded() {
		return t
	}
	for name, r := range s.parts {
		t[name] = r
	}
	return t
}

// SubImage returns a copy of the named part as a standalone image whose
// bounds start at (0, 0).
func (s *Sheet) SubImage(name string) (image.Image, bool) {
	r, ok := s.Part(name)
	if !ok {
		return nil, false
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	draw.Draw(out, out.Bounds(), s.img, s.origin().Add(image.Pt(r.X, r.Y)), draw.Src)
	return out, true
}

// origin is the bitmap's top left corner. Part coordinates are relative to it.
func (s *Sheet) origin() image.Point {
	return s.img.Bounds().Min
}
