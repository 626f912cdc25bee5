package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/camden-git/portfoliobackend/models"
	"github.com/camden-git/portfoliobackend/repository"
)

type SocialHandler struct {
	Repo repository.SocialLinkRepository
}

func NewSocialHandler(repo repository.SocialLinkRepository) *SocialHandler {
	return &SocialHandler{Repo: repo}
}

type socialEntry struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// ListPublic returns the configured profile for every known platform,
// null when none is set, so the frontend always sees the same keys.
func (h *SocialHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	links, err := h.Repo.ListByPlatforms([]string{models.PlatformLinkedIn, models.PlatformArtStation})
	if err != nil {
		log.Printf("Error listing social links: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list social links"})
		return
	}

	out := map[string]*socialEntry{
		models.PlatformLinkedIn:   nil,
		models.PlatformArtStation: nil,
	}
	for _, link := range links {
		out[link.Platform] = &socialEntry{Platform: link.Platform, URL: link.URL}
	}
	writeJSON(w, http.StatusOK, out)
}

type socialPayload struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// Upsert sets or replaces the user's link for one platform. URLs
// without a scheme get https:// prepended.
func (h *SocialHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	var payload socialPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request payload"})
		return
	}

	platform := strings.ToLower(strings.TrimSpace(payload.Platform))
	if !models.AllowedPlatforms[platform] {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported platform"})
		return
	}

	url := strings.TrimSpace(payload.URL)
	if url == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "url is required"})
		return
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	link := models.SocialLink{Platform: platform, URL: url, UserID: user.ID}
	if err := h.Repo.Upsert(&link); err != nil {
		log.Printf("Error saving social link %s for user %d: %v", platform, user.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save social link"})
		return
	}

	writeJSON(w, http.StatusOK, socialEntry{Platform: platform, URL: url})
}

// Delete removes the user's link for a platform. Deleting a platform
// with no link is still a success.
func (h *SocialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	platform := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "platform")))
	if !models.AllowedPlatforms[platform] {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported platform"})
		return
	}

	if err := h.Repo.Delete(user.ID, platform); err != nil {
		log.Printf("Error deleting social link %s for user %d: %v", platform, user.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete social link"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
