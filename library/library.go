// Package library keeps a set of sprite sheets under string ids, loaded
// together from a manifest.
package library

import (
	"context"
	"image"
	"image/draw"
	"io"
	"runtime"
	"sort"
	"sync"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"badc0de.net/pkg/go-spritesheet/paths"
	"badc0de.net/pkg/go-spritesheet/sheet"
)

// Library is a set of sheets keyed by id. It is safe for concurrent use;
// draws are serialized since a Sheet itself is not.
type Library struct {
	mu     sync.RWMutex
	sheets map[string]*sheet.Sheet

	drawLock sync.Mutex
}

// Options tune Load.
type Options struct {
	// Parallelism bounds how many sheets load at once. Zero means
	// runtime.GOMAXPROCS(0).
	Parallelism int
}

func New() *Library {
	return &Library{sheets: make(map[string]*sheet.Sheet)}
}

func openFile(name string) (io.ReadCloser, error) {
	return paths.NoFindOpen(name)
}

// Load loads every sheet of m. Sheets load in parallel; each one is owned by
// a single goroutine until it is added to the library. The first failure
// cancels the remaining loads and is returned with the sheet's id.
func Load(ctx context.Context, m *Manifest, opts *Options) (*Library, error) {
	if opts == nil {
		opts = &Options{}
	}
	limit := opts.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	lib := New()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, e := range m.Sheets {
		e := e
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := sheet.LoadFrom(openFile, paths.Join(m.BasePath, e.Image), paths.Join(m.BasePath, e.Descriptor))
			if err != nil {
				return errors.Wrapf(err, "loading sheet %q", e.ID)
			}
			lib.Add(e.ID, s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		lib.Close()
		return nil, err
	}
	glog.Infof("library: loaded %d sheets", len(m.Sheets))
	return lib, nil
}

// Add stores s under id, replacing and closing any sheet already there.
func (l *Library) Add(id string, s *sheet.Sheet) {
	l.mu.Lock()
	old := l.sheets[id]
	l.sheets[id] = s
	l.mu.Unlock()

	if old != nil && old != s {
		l.drawLock.Lock()
		old.Close()
		l.drawLock.Unlock()
	}
}

// Sheet returns the sheet stored under id.
func (l *Library) Sheet(id string) (*sheet.Sheet, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.sheets[id]
	return s, ok
}

// IDs returns the sorted ids of all sheets.
func (l *Library) IDs() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ids := make([]string, 0, len(l.sheets))
	for id := range l.sheets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Part looks up a part's rectangle.
func (l *Library) Part(id, part string) (sheet.Rect, bool) {
	s, ok := l.Sheet(id)
	if !ok {
		return sheet.Rect{}, false
	}
	l.drawLock.Lock()
	defer l.drawLock.Unlock()
	return s.Part(part)
}

// Table returns a copy of the part table of sheet id.
func (l *Library) Table(id string) (sheet.Table, bool) {
	s, ok := l.Sheet(id)
	if !ok {
		return nil, false
	}
	l.drawLock.Lock()
	defer l.drawLock.Unlock()
	return s.Table(), true
}

// SubImage returns a copy of a part as its own image.
func (l *Library) SubImage(id, part string) (image.Image, bool) {
	s, ok := l.Sheet(id)
	if !ok {
		return nil, false
	}
	l.drawLock.Lock()
	defer l.drawLock.Unlock()
	return s.SubImage(part)
}

// Draw draws part of sheet id at (x, y). See (*sheet.Sheet).Draw.
func (l *Library) Draw(dst draw.Image, id, part string, x, y int) bool {
	s, ok := l.Sheet(id)
	if !ok {
		return false
	}
	l.drawLock.Lock()
	defer l.drawLock.Unlock()
	return s.Draw(dst, part, x, y)
}

// DrawRotated draws part of sheet id rotated by angle degrees. See
// (*sheet.Sheet).DrawRotated.
func (l *Library) DrawRotated(dst draw.Image, id, part string, x, y int, angle float64) bool {
	s, ok := l.Sheet(id)
	if !ok {
		return false
	}
	l.drawLock.Lock()
	defer l.drawLock.Unlock()
	return s.DrawRotated(dst, part, x, y, angle)
}

// DrawScaled draws part of sheet id resampled to w by h pixels. See
// (*sheet.Sheet).DrawScaled.
func (l *Library) DrawScaled(dst draw.Image, id, part string, x, y, w, h int) bool {
	s, ok := l.Sheet(id)
	if !ok {
		return false
	}
	l.drawLock.Lock()
	defer l.drawLock.Unlock()
	return s.DrawScaled(dst, part, x, y, w, h)
}

// Close closes every sheet and empties the library.
func (l *Library) Close() {
	l.mu.Lock()
	sheets := l.sheets
	l.sheets = make(map[string]*sheet.Sheet)
	l.mu.Unlock()

	l.drawLock.Lock()
	defer l.drawLock.Unlock()
	for _, s := range sheets {
		s.Close()
	}
}
