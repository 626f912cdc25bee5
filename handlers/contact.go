package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/camden-git/portfoliobackend/media"
	"github.com/camden-git/portfoliobackend/models"
	"github.com/camden-git/portfoliobackend/repository"
)

type ContactHandler struct {
	Repo  repository.ContactPageRepository
	Store media.Store
}

func NewContactHandler(repo repository.ContactPageRepository, store media.Store) *ContactHandler {
	return &ContactHandler{Repo: repo, Store: store}
}

// contactView is the serialized contact page with blocks decoded and
// the update timestamp normalized to RFC3339 or null.
type contactView struct {
	Title        string         `json:"title"`
	Intro        string         `json:"intro"`
	Body         string         `json:"body"`
	FooterNote   string         `json:"footer_note"`
	HeroImageURL *string        `json:"hero_image_url"`
	Blocks       []models.Block `json:"blocks"`
	UpdatedAt    *string        `json:"updated_at"`
}

func viewOf(page *models.ContactPage) contactView {
	v := contactView{
		Title:        page.Title,
		Intro:        page.Intro,
		Body:         page.Body,
		FooterNote:   page.FooterNote,
		HeroImageURL: page.HeroImageURL,
		Blocks:       models.DecodeBlocks(page.VideosJSON),
	}
	if !page.UpdatedAt.IsZero() {
		ts := page.UpdatedAt.UTC().Format(time.RFC3339)
		v.UpdatedAt = &ts
	}
	return v
}

// GetPublic serves the contact page to the site. A deployment that has
// never saved one gets an empty default shape rather than a 404.
func (h *ContactHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	page, err := h.Repo.GetFirst()
	if err != nil {
		writeJSON(w, http.StatusOK, contactView{
			Title:  models.DefaultContactTitle,
			Blocks: []models.Block{},
		})
		return
	}
	writeJSON(w, http.StatusOK, viewOf(page))
}

// GetAdmin returns the user's contact page, creating it on first access.
func (h *ContactHandler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	page, err := h.Repo.GetOrCreate(user.ID)
	if err != nil {
		log.Printf("Error loading contact page for user %d: %v", user.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load contact page"})
		return
	}
	writeJSON(w, http.StatusOK, viewOf(page))
}

type contactPayload struct {
	Title        *string `json:"title"`
	Intro        *string `json:"intro"`
	Body         *string `json:"body"`
	FooterNote   *string `json:"footer_note"`
	HeroImageURL *string `json:"hero_image_url"`
}

// Update writes only the text fields present in the payload; the block
// list has its own endpoint. A cleared title falls back to the default.
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	var payload contactPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request payload"})
		return
	}

	page, err := h.Repo.GetOrCreate(user.ID)
	if err != nil {
		log.Printf("Error loading contact page for user %d: %v", user.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load contact page"})
		return
	}

	if payload.Title != nil {
		page.Title = *payload.Title
		if page.Title == "" {
			page.Title = models.DefaultContactTitle
		}
	}
	if payload.Intro != nil {
		page.Intro = *payload.Intro
	}
	if payload.Body != nil {
		page.Body = *payload.Body
	}
	if payload.FooterNote != nil {
		page.FooterNote = *payload.FooterNote
	}
	if payload.HeroImageURL != nil {
		page.HeroImageURL = payload.HeroImageURL
	}

	if err := h.Repo.Save(page); err != nil {
		log.Printf("Error saving contact page %d: %v", page.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save contact page"})
		return
	}
	writeJSON(w, http.StatusOK, viewOf(page))
}

// UpdateBlocks replaces the whole ordered block list.
func (h *ContactHandler) UpdateBlocks(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request payload"})
		return
	}

	// accepts {"blocks": [...]} and, for older clients, a bare list
	var blocks []models.Block
	var wrapped struct {
		Blocks []models.Block `json:"blocks"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Blocks != nil {
		blocks = wrapped.Blocks
	} else if err := json.Unmarshal(raw, &blocks); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "expected a list of blocks"})
		return
	}

	page, err := h.Repo.GetOrCreate(user.ID)
	if err != nil {
		log.Printf("Error loading contact page for user %d: %v", user.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load contact page"})
		return
	}

	sanitized := models.SanitizeBlocks(blocks)
	if err := h.Repo.SaveBlocks(page, sanitized); err != nil {
		log.Printf("Error saving contact blocks for page %d: %v", page.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save blocks"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "blocks updated successfully",
		"blocks":  sanitized,
	})
}

// uploadAsset handles the contact-page media uploads shared by the
// image and video endpoints.
func (h *ContactHandler) uploadAsset(w http.ResponseWriter, r *http.Request, kind media.Kind) {
	if _, ok := currentUser(r); !ok {
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

	publicURL, err := h.Store.Save(kind, media.UniqueFilename(header.Filename), file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"url": publicURL})
}

// UploadImage stores an image for use inside contact blocks.
func (h *ContactHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	h.uploadAsset(w, r, media.KindContactImage)
}

// UploadVideo stores a video for use inside contact blocks.
func (h *ContactHandler) UploadVideo(w http.ResponseWriter, r *http.Request) {
	h.uploadAsset(w, r, media.KindContactVideo)
}
