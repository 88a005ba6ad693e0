// Command spriteweb serves sprite sheet parts and composited scenes over HTTP.
//
//	spriteweb -manifest sheets.yaml -listen_address :8080
//
// Request traces are available under /debug/requests.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"golang.org/x/net/trace"

	"badc0de.net/pkg/go-spritesheet/library"
	"badc0de.net/pkg/go-spritesheet/paths"
	"badc0de.net/pkg/go-spritesheet/sheet"
	"badc0de.net/pkg/go-spritesheet/web"
)

var (
	listenAddress = flag.String("listen_address", ":8080", "http listen address for spriteweb")
	manifestPath  = flag.String("manifest", "", "YAML manifest listing sheets; overrides -image_path and -descriptor_path")
	sheetID       = flag.String("sheet_id", "sheet", "id of the sheet given by -image_path and -descriptor_path")
	accessLog     = flag.Bool("access_log", true, "whether to write an access log to stderr")

	imagePath      string
	descriptorPath string
)

func setupFilePathFlags() {
	paths.SetupFilePathFlag("sheet.png", "image_path", &imagePath)
	paths.SetupFilePathFlag("sheet.txt", "descriptor_path", &descriptorPath)
}

func openLibrary(ctx context.Context) (*library.Library, error) {
	if *manifestPath != "" {
		m, err := library.LoadManifest(*manifestPath)
		if err != nil {
			return nil, err
		}
		return library.Load(ctx, m, nil)
	}
	s, err := sheet.Load(imagePath, descriptorPath)
	if err != nil {
		return nil, err
	}
	lib := library.New()
	lib.Add(*sheetID, s)
	return lib, nil
}

// traced records every request in x/net/trace, visible at /debug/requests.
func traced(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tr := trace.New("spriteweb", r.Method+" "+r.URL.Path)
		defer tr.Finish()
		next.ServeHTTP(w, r)
	})
}

func newRouter(lib *library.Library) http.Handler {
	r := mux.NewRouter()
	web.NewHandler(lib).RegisterRoutes(r)
	r.Use(traced)
	r.Handle("/debug/requests", http.HandlerFunc(trace.Traces))
	r.Handle("/debug/events", http.HandlerFunc(trace.Events))

	if *accessLog {
		return handlers.CombinedLoggingHandler(os.Stderr, r)
	}
	return r
}

func main() {
	setupFilePathFlags()
	flagutil.Parse()

	lib, err := openLibrary(context.Background())
	if err != nil {
		glog.Exitf("loading sheets: %v", err)
	}
	glog.Infof("serving %d sheets on %s", len(lib.IDs()), *listenAddress)

	glog.Fatal(http.ListenAndServe(*listenAddress, newRouter(lib)))
}
