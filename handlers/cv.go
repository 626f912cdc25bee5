package handlers

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"github.com/camden-git/portfoliobackend/media"
	"github.com/camden-git/portfoliobackend/models"
	"github.com/camden-git/portfoliobackend/repository"
)

type CVHandler struct {
	Repo  repository.CVRepository
	Store media.Store
}

func NewCVHandler(repo repository.CVRepository, store media.Store) *CVHandler {
	return &CVHandler{Repo: repo, Store: store}
}

// Upload replaces the user's CV. The row is keyed on user id so a
// re-upload overwrites rather than accumulates; the previous file is
// removed from disk first.
func (h *CVHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to parse multipart form"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file is required"})
		return
	}
	defer file.Close()

	if err := media.ValidateExtension(media.KindCV, header.Filename); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "only PDF files are accepted"})
		return
	}

	if existing, err := h.Repo.GetByUserID(user.ID); err == nil {
		h.Store.Delete(existing.FilePath)
	}

	publicURL, err := h.Store.Save(media.KindCV, media.CVFilename(user.ID), file)
	if err != nil {
		log.Printf("Error saving CV for user %d: %v", user.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save CV"})
		return
	}

	cv := models.CV{FilePath: publicURL, UserID: user.ID}
	if err := h.Repo.Upsert(&cv); err != nil {
		log.Printf("Error upserting CV for user %d: %v", user.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save CV"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "CV uploaded successfully",
		"cv_url":  publicURL,
	})
}

// Download streams the site's CV as a file attachment. Public.
func (h *CVHandler) Download(w http.ResponseWriter, r *http.Request) {
	cv, err := h.Repo.GetFirst()
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no CV available"})
		return
	}

	fullPath, err := h.Store.FullPath(cv.FilePath)
	if err != nil {
		log.Printf("Error resolving CV path '%s': %v", cv.FilePath, err)
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no CV available"})
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(fullPath)))
	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, fullPath)
}

// Delete removes the user's CV row and file.
func (h *CVHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	cv, err := h.Repo.GetByUserID(user.ID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no CV to delete"})
		return
	}

	h.Store.Delete(cv.FilePath)
	if err := h.Repo.DeleteByUserID(user.ID); err != nil {
		log.Printf("Error deleting CV for user %d: %v", user.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete CV"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "CV deleted successfully"})
}
