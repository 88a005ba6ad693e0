// Package web serves the parts of a sprite sheet library over HTTP.
package web

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"net/http"
	"net/url"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/vincent-petithory/dataurl"

	"badc0de.net/pkg/go-spritesheet/compositor"
	"badc0de.net/pkg/go-spritesheet/library"
)

// maxSceneBytes bounds the body of a scene request.
const maxSceneBytes = 1 << 20

type Handler struct {
	lib *library.Library
}

// NewHandler constructs a web handler serving the sheets in lib.
func NewHandler(lib *library.Library) *Handler {
	return &Handler{lib: lib}
}

// Router returns a new router with all of the handler's routes registered.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/sheets", h.sheetsHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/sheets/{sheet}/parts", h.partsHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/sheets/{sheet}/parts/{part}.png", h.partPNGHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/sheets/{sheet}/parts/{part}.gif", h.partGIFHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/sheets/{sheet}/parts/{part}/dataurl", h.partDataURLHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/scene", h.sceneHandler).Methods(http.MethodPost)
}

func (h *Handler) sheetsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for _, id := range h.lib.IDs() {
		fmt.Fprintln(w, id)
	}
}

func (h *Handler) partsHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sheet"]
	t, ok := h.lib.Table(id)
	if !ok {
		http.Error(w, "no such sheet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := t.WriteTo(w); err != nil {
		glog.Errorf("web: writing parts of %q: %v", id, err)
	}
}

// part resolves the sheet and part of a request. It writes the error response
// itself and returns false when there's nothing to serve, or when the client
// already has the current version.
func (h *Handler) part(w http.ResponseWriter, r *http.Request, mime string) (image.Image, bool) {
	vars := mux.Vars(r)
	id, name := vars["sheet"], vars["part"]

	rect, ok := h.lib.Part(id, name)
	if !ok {
		http.Error(w, "no such part", http.StatusNotFound)
		return nil, false
	}

	generation := 1 // bump if the way we generate it changes
	etag := fmt.Sprintf(`W/"part:%d:%s:%s:%v:%s"`, generation, url.PathEscape(id), url.PathEscape(name), rect, mime)
	w.Header().Set("Cache-Control", "public; max-age=36000") // 36000 = 10h
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return nil, false
	}

	img, ok := h.lib.SubImage(id, name)
	if !ok {
		// Removed between the two lookups.
		http.Error(w, "no such part", http.StatusNotFound)
		return nil, false
	}
	return img, true
}

func (h *Handler) partPNGHandler(w http.ResponseWriter, r *http.Request) {
	img, ok := h.part(w, r, "image/png")
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if err := png.Encode(w, img); err != nil {
		glog.Errorf("web: encoding png: %v", err)
	}
}

func (h *Handler) partGIFHandler(w http.ResponseWriter, r *http.Request) {
	img, ok := h.part(w, r, "image/gif")
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/gif")
	w.WriteHeader(http.StatusOK)
	if err := gif.Encode(w, paletted(img), nil); err != nil {
		glog.Errorf("web: encoding gif: %v", err)
	}
}

// paletted quantizes img to at most 255 colours, with index 0 kept for
// transparency so that fully transparent pixels survive the conversion.
func paletted(img image.Image) *image.Paletted {
	q := quantize.MedianCutQuantizer{}
	pal := q.Quantize(make(color.Palette, 0, 255), img)

	b := img.Bounds()
	out := image.NewPaletted(b, append(color.Palette{color.Transparent}, pal...))
	draw.Draw(out, b, img, b.Min, draw.Over)
	return out
}

func (h *Handler) partDataURLHandler(w http.ResponseWriter, r *http.Request) {
	img, ok := h.part(w, r, "text/plain")
	if !ok {
		return
	}

	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		http.Error(w, "failed to encode png", http.StatusInternalServerError)
		return
	}
	byt, err := dataurl.New(buf.Bytes(), "image/png").MarshalText()
	if err != nil {
		http.Error(w, "failed to encode data url", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=us-ascii")
	w.WriteHeader(http.StatusOK)
	w.Write(byt)
}

func (h *Handler) sceneHandler(w http.ResponseWriter, r *http.Request) {
	sc, err := compositor.ParseScene(io.LimitReader(r.Body, maxSceneBytes))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	img := compositor.Composite(h.lib, sc)
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if err := png.Encode(w, img); err != nil {
		glog.Errorf("web: encoding scene png: %v", err)
	}
}
