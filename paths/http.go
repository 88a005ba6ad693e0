package paths

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

// HTTPTimeout bounds a single remote fetch made by NoFindOpen.
const HTTPTimeout = 30 * time.Second

var (
	httpClient = &http.Client{Timeout: HTTPTimeout}

	// fetches collapses concurrent requests for the same URL. cacheLock only
	// guards cache and is never held across a fetch.
	fetches   singleflight.Group
	cache     map[string][]byte
	cacheLock sync.Mutex
)

func cached(url string) ([]byte, bool) {
	cacheLock.Lock()
	defer cacheLock.Unlock()
	buf, ok := cache[url]
	return buf, ok
}

func noFindOpenHTTP(url string) (File, error) {
	if buf, ok := cached(url); ok {
		glog.V(2).Infof("paths: NoFindOpen(%q): returning cached copy", url)
		return &bytesReaderWithDummyClose{bytes.NewReader(buf)}, nil
	}

	v, err, _ := fetches.Do(url, func() (interface{}, error) {
		if buf, ok := cached(url); ok {
			return buf, nil
		}
		buf, err := fetch(url)
		if err != nil {
			return nil, err
		}
		cacheLock.Lock()
		if cache == nil {
			cache = make(map[string][]byte)
		}
		cache[url] = buf
		cacheLock.Unlock()
		return buf, nil
	})
	if err != nil {
		return nil, err
	}
	return &bytesReaderWithDummyClose{bytes.NewReader(v.([]byte))}, nil
}

func fetch(url string) ([]byte, error) {
	glog.V(1).Infof("paths: NoFindOpen(%q): fetching", url)
	response, err := httpClient.Get(url)
	if err != nil {
		return nil, errors.Wrapf(err, "paths.NoFindOpen(%q): failed to fetch", url)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		e := os.ErrInvalid
		if response.StatusCode == http.StatusNotFound {
			e = os.ErrNotExist
		}
		return nil, errors.Wrapf(e, "paths.NoFindOpen(%q): http response.StatusCode=%v, want 200", url, response.StatusCode)
	}

	buf := &bytes.Buffer{}
	if _, err := io.Copy(buf, response.Body); err != nil {
		return nil, errors.Wrap(err, "copying response to seekable buffer")
	}
	return buf.Bytes(), nil
}

type bytesReaderWithDummyClose struct {
	*bytes.Reader
}

func (bytesReaderWithDummyClose) Close() error {
	return nil
}
