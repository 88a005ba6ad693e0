package compositor

import (
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Scene describes a canvas and the parts painted onto it, in order.
//
//	width: 64
//	height: 32
//	background: "#203040"
//	placements:
//	  - {sheet: tiles, part: grass, x: 0, y: 16, repeat_x: 4}
//	  - {sheet: hero, part: walk1, x: 24, y: 0, angle: 90}
type Scene struct {
	Width      int         `yaml:"width"`
	Height     int         `yaml:"height"`
	Background string      `yaml:"background,omitempty"`
	Placements []Placement `yaml:"placements"`
}

// Placement puts one part on the canvas. RepeatX and RepeatY tile it in a
// grid stepping by the part's size; zero counts as one.
type Placement struct {
	Sheet   string  `yaml:"sheet"`
	Part    string  `yaml:"part"`
	X       int     `yaml:"x"`
	Y       int     `yaml:"y"`
	Angle   float64 `yaml:"angle,omitempty"`
	RepeatX int     `yaml:"repeat_x,omitempty"`
	RepeatY int     `yaml:"repeat_y,omitempty"`
}

// MaxCanvasSide bounds scene width and height.
const MaxCanvasSide = 8192

// MaxRepeat bounds repeat_x and repeat_y.
const MaxRepeat = MaxCanvasSide

// ParseScene reads a YAML scene and validates it.
func ParseScene(r io.Reader) (*Scene, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	sc := &Scene{}
	if err := dec.Decode(sc); err != nil {
		return nil, errors.Wrap(err, "decoding scene")
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Validate checks the canvas size, background colour and repeat counts.
func (sc *Scene) Validate() error {
	if sc.Width <= 0 || sc.Height <= 0 || sc.Width > MaxCanvasSide || sc.Height > MaxCanvasSide {
		return errors.Errorf("scene size %dx%d out of range (1..%d)", sc.Width, sc.Height, MaxCanvasSide)
	}
	if _, err := ParseColor(sc.Background); err != nil {
		return err
	}
	for i, p := range sc.Placements {
		if p.Sheet == "" || p.Part == "" {
			return errors.Errorf("placement %d needs both sheet and part", i)
		}
		if p.RepeatX < 0 || p.RepeatY < 0 || p.RepeatX > MaxRepeat || p.RepeatY > MaxRepeat {
			return errors.Errorf("placement %d repeat %dx%d out of range (0..%d)", i, p.RepeatX, p.RepeatY, MaxRepeat)
		}
	}
	return nil
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa". An empty string is
// transparent.
func ParseColor(s string) (color.NRGBA, error) {
	if s == "" {
		return color.NRGBA{}, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 || !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, errors.Errorf("bad colour %q, want #rgb, #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, errors.Wrapf(err, "bad colour %q", s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
