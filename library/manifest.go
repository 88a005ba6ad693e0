package library

import (
	"io"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"badc0de.net/pkg/go-spritesheet/paths"
)

// Manifest lists the sheets of a library.
//
//	base_path: datafiles
//	sheets:
//	  - id: hero
//	    image: hero.png
//	    descriptor: hero.txt
type Manifest struct {
	// BasePath is prefixed to relative image and descriptor paths. It may
	// be an http(s) URL.
	BasePath string  `yaml:"base_path"`
	Sheets   []Entry `yaml:"sheets"`
}

// Entry is one sheet of a manifest.
type Entry struct {
	ID         string `yaml:"id"`
	Image      string `yaml:"image"`
	Descriptor string `yaml:"descriptor"`
}

// ParseManifest reads a YAML manifest. Unknown keys, entries without id,
// image or descriptor, and repeated ids are errors.
func ParseManifest(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	m := &Manifest{}
	if err := dec.Decode(m); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decoding manifest")
	}

	seen := make(map[string]bool, len(m.Sheets))
	for i, e := range m.Sheets {
		switch {
		case e.ID == "":
			return nil, errors.Errorf("manifest sheet %d has no id", i)
		case e.Image == "":
			return nil, errors.Errorf("manifest sheet %q has no image", e.ID)
		case e.Descriptor == "":
			return nil, errors.Errorf("manifest sheet %q has no descriptor", e.ID)
		case seen[e.ID]:
			return nil, errors.Errorf("manifest sheet %q is listed twice", e.ID)
		}
		seen[e.ID] = true
	}
	return m, nil
}

// LoadManifest reads the manifest at path (a file or an http(s) URL). A
// relative base_path, or a missing one, is taken relative to the manifest's
// own directory.
func LoadManifest(path string) (*Manifest, error) {
	f, err := paths.NoFindOpen(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening manifest")
	}
	defer f.Close()

	m, err := ParseManifest(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading manifest %q", path)
	}
	if !paths.IsURL(path) && !paths.IsURL(m.BasePath) && !filepath.IsAbs(m.BasePath) {
		m.BasePath = filepath.Join(filepath.Dir(path), m.BasePath)
	}
	return m, nil
}
