// Package paths locates sprite sheet datafiles.
//
// Short names such as "hero.png" are looked up in the directories listed in
// $SPRITESHEET_PATH, then in ./datafiles, then next to the running binary.
package paths

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// EnvVar names the environment variable holding extra search directories,
// separated by the OS list separator.
const EnvVar = "SPRITESHEET_PATH"

// File is what Open and NoFindOpen return.
type File interface {
	io.ReadCloser
	io.Seeker
}

// Dirs returns the directories Find searches, in order.
func Dirs() []string {
	var dirs []string
	if env := os.Getenv(EnvVar); env != "" {
		for _, d := range filepath.SplitList(env) {
			if d != "" {
				dirs = append(dirs, d)
			}
		}
	}
	dirs = append(dirs, "datafiles")
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs,
			filepath.Join(filepath.Dir(exe), "datafiles"),
			exe+".runfiles/go_spritesheet/datafiles",
		)
	}
	return dirs
}

// Find locates the passed datafile shortname and returns a path to it, or an
// empty string if it is in none of the searched directories.
//
// For example, for "hero.png" it may return "datafiles/hero.png".
func Find(fileName string) string {
	for _, dir := range Dirs() {
		path := filepath.Join(dir, fileName)
		if st, err := os.Stat(path); err == nil && !st.IsDir() {
			glog.V(1).Infof("paths.Find(%q)=%s", fileName, path)
			return path
		}
	}
	return ""
}

// Open locates the passed file in the same locations that Find would look, and
// opens it. If Find returns an empty string, an error wrapping os.ErrNotExist
// is returned.
func Open(fileName string) (File, error) {
	path := Find(fileName)
	if path == "" {
		return nil, errors.Wrapf(os.ErrNotExist, "paths.Open(%q): not found in %v", fileName, Dirs())
	}
	return os.Open(path)
}

// NoFindOpen opens path as given. http:// and https:// URLs are fetched and
// cached in memory for the life of the process.
func NoFindOpen(path string) (File, error) {
	if IsURL(path) {
		return noFindOpenHTTP(path)
	}
	return os.Open(path)
}

// IsURL reports whether NoFindOpen would fetch path over HTTP.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// Join joins a base directory or URL with a relative name. Absolute names and
// URLs are returned unchanged.
func Join(base, name string) string {
	if base == "" || IsURL(name) || filepath.IsAbs(name) {
		return name
	}
	if IsURL(base) {
		return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(name, "/")
	}
	return filepath.Join(base, name)
}
