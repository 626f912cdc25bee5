package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// UploadsServer creates a handler to serve uploaded files from the
// upload root. It expects the request path to contain the relative path
// under /uploads/. Example usage in main.go:
//
//	r.Get("/uploads/*", UploadsServer(cfg.UploadsDir))
func UploadsServer(uploadsDir string) http.HandlerFunc {
	absUploadsDir, err := filepath.Abs(uploadsDir)
	if err != nil {
		log.Fatalf("FATAL: Invalid uploads directory '%s': %v", uploadsDir, err)
	}
	absUploadsDir = filepath.Clean(absUploadsDir)
	log.Printf("Serving uploads for '/uploads/*' from directory: %s", absUploadsDir)

	return func(w http.ResponseWriter, r *http.Request) {
		relativePath := strings.TrimPrefix(r.URL.Path, "/uploads/")

		if relativePath == "" || strings.Contains(relativePath, "..") {
			http.Error(w, "Invalid asset path", http.StatusBadRequest)
			return
		}

		requestedPath := filepath.Join(absUploadsDir, filepath.FromSlash(relativePath))
		cleanedPath := filepath.Clean(requestedPath)

		if !strings.HasPrefix(cleanedPath, absUploadsDir) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			log.Printf("SECURITY: Attempted asset access outside uploads directory: Request='%s', Resolved='%s', Allowed Base='%s'",
				r.URL.Path, cleanedPath, absUploadsDir)
			return
		}

		if info, err := os.Stat(cleanedPath); os.IsNotExist(err) || (err == nil && info.IsDir()) {
			http.NotFound(w, r)
			return
		} else if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			log.Printf("Error stating asset file %s: %v", cleanedPath, err)
			return
		}

		cacheDuration := 24 * time.Hour
		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(cacheDuration.Seconds())))
		w.Header().Set("Expires", time.Now().Add(cacheDuration).Format(http.TimeFormat))

		http.ServeFile(w, r, cleanedPath)
	}
}
