// Package web serves the prebuilt browser client.
package web

import (
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
)

// IndexFile is served for any path that does not name a file in the bundle
const IndexFile = "index.html"

// NewSPAHandler serves the client bundle in dir. Unknown paths fall back to
// index.html so client-side routes survive a reload.
func NewSPAHandler(dir string) http.Handler {
	return NewSPAHandlerFS(os.DirFS(dir))
}

// NewSPAHandlerFS is NewSPAHandler over an arbitrary filesystem
func NewSPAHandlerFS(fsys fs.FS) http.Handler {
	files := http.FileServerFS(fsys)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if name != "" && isFile(fsys, name) {
			files.ServeHTTP(w, r)
			return
		}

		if !isFile(fsys, IndexFile) {
			http.NotFound(w, r)
			return
		}
		http.ServeFileFS(w, r, fsys, IndexFile)
	})
}

func isFile(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && !info.IsDir()
}
