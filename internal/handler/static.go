package handler

import (
	"net/http"
	"os"
	"path/filepath"
)

// Static serves the frontend from dir. Unknown paths get index.html so the
// frontend can route on the client.
func Static(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(dir, filepath.Clean("/"+urlPath))
		if info, err := os.Stat(filePath); err != nil || info.IsDir() {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	})
}

// MountStatic registers Static for dir on "GET /" if dir holds an index.html.
// The frontend ships separately, so a missing dir leaves the mux API-only.
func MountStatic(mux *http.ServeMux, dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, "index.html")); err != nil {
		return false
	}
	mux.Handle("GET /", Static(dir))
	return true
}
