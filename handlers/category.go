package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/camden-git/portfoliobackend/media"
	"github.com/camden-git/portfoliobackend/models"
	"github.com/camden-git/portfoliobackend/repository"
)

type CategoryHandler struct {
	Repo  repository.CategoryRepository
	Store media.Store
}

func NewCategoryHandler(repo repository.CategoryRepository, store media.Store) *CategoryHandler {
	return &CategoryHandler{Repo: repo, Store: store}
}

type categorySummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
	Slug  string `json:"slug,omitempty"`
}

// ListPublic returns every category in display order, for the site nav.
func (h *CategoryHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Repo.ListAllOrdered()
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list categories"})
		return
	}

	out := make([]categorySummary, 0, len(categories))
	for _, c := range categories {
		out = append(out, categorySummary{ID: c.ID, Name: c.Name, Order: c.Order, Slug: c.Slug})
	}
	writeJSON(w, http.StatusOK, out)
}

// Detail returns a category with its media in every derived ordering:
// per-kind lists, the merged timeline, carousel slides and the slide
// grouping map.
func (h *CategoryHandler) Detail(w http.ResponseWriter, r *http.Request) {
	categoryID, err := parseUintParam(r, "categoryID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category ID"})
		return
	}

	category, err := h.Repo.GetByID(categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "category not found"})
			return
		}
		log.Printf("Error fetching category %d: %v", categoryID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch category"})
		return
	}

	entries, err := h.Repo.ListMedia(categoryID)
	if err != nil {
		log.Printf("Error listing media for category %d: %v", categoryID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list category media"})
		return
	}
	gallery := media.BuildGallery(entries)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":          category.ID,
		"name":        category.Name,
		"description": category.Description,
		"images":      gallery.Images,
		"videos":      gallery.Videos,
		"timeline":    gallery.Timeline,
		"slides":      gallery.Slides,
		"by_slide":    gallery.BySlide,
	})
}

// ListOwn returns the authenticated user's categories.
func (h *CategoryHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	categories, err := h.Repo.ListByUser(user.ID)
	if err != nil {
		log.Printf("Error listing categories for user %d: %v", user.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list categories"})
		return
	}

	out := make([]categorySummary, 0, len(categories))
	for _, c := range categories {
		out = append(out, categorySummary{ID: c.ID, Name: c.Name, Order: c.Order})
	}
	writeJSON(w, http.StatusOK, out)
}

type createCategoryPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Create adds a new category at the end of the display order.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	var payload createCategoryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request payload"})
		return
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	maxOrder, err := h.Repo.MaxOrder()
	if err != nil {
		log.Printf("Error computing category order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create category"})
		return
	}

	category := models.Category{
		Name:        payload.Name,
		Description: payload.Description,
		Order:       maxOrder + 1,
		UserID:      user.ID,
	}
	if err := h.Repo.Create(&category); err != nil {
		log.Printf("Error creating category: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create category"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":    category.ID,
		"name":  category.Name,
		"slug":  category.Slug,
		"order": category.Order,
	})
}

type reorderPayload struct {
	OrderedIDs []uint `json:"ordered_ids"`
}

// Reorder rewrites the user's category ordering from a submitted id
// list; any category left out keeps its relative place at the end.
func (h *CategoryHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	var payload reorderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "ordered_ids must be a list of category IDs"})
		return
	}

	if err := h.Repo.Reorder(user.ID, payload.OrderedIDs); err != nil {
		if errors.Is(err, repository.ErrCategoryNotOwned) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "one or more categories do not belong to this user"})
			return
		}
		log.Printf("Error reordering categories for user %d: %v", user.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to reorder categories"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "categories reordered successfully"})
}

// mediaFields are the mutable attributes shared by uploads and edits.
// Pointers distinguish "absent" from zero values on partial updates.
type mediaFields struct {
	Type        string  `json:"type"`
	URL         string  `json:"url"`
	Description *string `json:"description"`
	Position    *int    `json:"position"`
	IsCarousel  *bool   `json:"is_carousel"`
	SlideKey    *string `json:"slide_key"`
}

func parseFormBool(v string) bool {
	b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(v)))
	return err == nil && b
}

// mediaFieldsFromForm reads the shared media attributes out of a parsed
// multipart form.
func mediaFieldsFromForm(r *http.Request) mediaFields {
	var f mediaFields
	f.Type = r.FormValue("type")
	f.URL = r.FormValue("url")
	if v := r.FormValue("description"); v != "" {
		f.Description = &v
	}
	if v := r.FormValue("position"); v != "" {
		if pos, err := strconv.Atoi(v); err == nil {
			f.Position = &pos
		}
	}
	if v := r.FormValue("is_carousel"); v != "" {
		b := parseFormBool(v)
		f.IsCarousel = &b
	}
	if v := r.FormValue("slide_key"); v != "" {
		f.SlideKey = &v
	}
	return f
}

// AddMedia creates an image or video entry in a category, either from
// a multipart file upload or from a JSON payload carrying an external
// URL. New entries land at the end of the merged ordering unless a
// position is given; a carousel entry without a slide key gets one
// generated.
func (h *CategoryHandler) AddMedia(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	categoryID, err := parseUintParam(r, "categoryID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category ID"})
		return
	}
	if _, err := h.Repo.GetByIDForUser(categoryID, user.ID); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "category not found"})
		return
	}

	contentType := r.Header.Get("Content-Type")
	var fields mediaFields
	var mediaURL string

	switch {
	case strings.HasPrefix(contentType, "multipart/form-data"):
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to parse multipart form"})
			return
		}
		fields = mediaFieldsFromForm(r)
		if fields.Type != "image" && fields.Type != "video" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "type must be 'image' or 'video'"})
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file is required"})
			return
		}
		defer file.Close()

		filename := media.SecureFilename(header.Filename)
		if filename == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid filename"})
			return
		}
		kind := media.KindImage
		if fields.Type == "video" {
			kind = media.KindVideo
		}
		mediaURL, err = h.Store.Save(kind, filename, file)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

	case strings.HasPrefix(contentType, "application/json"):
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request payload"})
			return
		}
		if fields.Type != "image" && fields.Type != "video" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "type must be 'image' or 'video'"})
			return
		}
		if strings.TrimSpace(fields.URL) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "url is required"})
			return
		}
		mediaURL = strings.TrimSpace(fields.URL)

	default:
		writeJSON(w, http.StatusUnsupportedMediaType, map[string]string{"error": "expected multipart/form-data or application/json"})
		return
	}

	position := 0
	if fields.Position != nil {
		position = *fields.Position
	} else {
		next, err := h.Repo.NextMediaPosition(categoryID)
		if err != nil {
			log.Printf("Error computing media position for category %d: %v", categoryID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to add media"})
			return
		}
		position = next
	}

	isCarousel := fields.IsCarousel != nil && *fields.IsCarousel
	slideKey := fields.SlideKey
	if isCarousel && (slideKey == nil || *slideKey == "") {
		generated := media.GenSlideKey()
		slideKey = &generated
	}

	if fields.Type == "image" {
		img := models.ProjectImage{
			ImageURL:    mediaURL,
			Description: fields.Description,
			Position:    position,
			IsCarousel:  isCarousel,
			SlideKey:    slideKey,
			CategoryID:  categoryID,
		}
		if err := h.Repo.CreateImage(&img); err != nil {
			log.Printf("Error creating image for category %d: %v", categoryID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to add media"})
			return
		}
		writeJSON(w, http.StatusCreated, imageEntry(&img))
		return
	}

	vid := models.ProjectVideo{
		VideoURL:    mediaURL,
		Description: fields.Description,
		Position:    position,
		IsCarousel:  isCarousel,
		SlideKey:    slideKey,
		CategoryID:  categoryID,
	}
	if err := h.Repo.CreateVideo(&vid); err != nil {
		log.Printf("Error creating video for category %d: %v", categoryID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to add media"})
		return
	}
	writeJSON(w, http.StatusCreated, videoEntry(&vid))
}

func imageEntry(img *models.ProjectImage) media.Entry {
	return media.Entry{
		ID:          img.ID,
		Kind:        "image",
		URL:         img.ImageURL,
		ImageURL:    img.ImageURL,
		Description: img.Description,
		Position:    img.Position,
		IsCarousel:  img.IsCarousel,
		SlideKey:    img.SlideKey,
	}
}

func videoEntry(vid *models.ProjectVideo) media.Entry {
	return media.Entry{
		ID:          vid.ID,
		Kind:        "video",
		URL:         vid.VideoURL,
		VideoURL:    vid.VideoURL,
		Description: vid.Description,
		Position:    vid.Position,
		IsCarousel:  vid.IsCarousel,
		SlideKey:    vid.SlideKey,
	}
}

// lookupMedia resolves a media id against both tables, images first,
// and verifies the entry's category belongs to the user.
func (h *CategoryHandler) lookupMedia(mediaID, userID uint) (*models.ProjectImage, *models.ProjectVideo, error) {
	if img, err := h.Repo.GetImage(mediaID); err == nil {
		if _, err := h.Repo.GetByIDForUser(img.CategoryID, userID); err != nil {
			return nil, nil, gorm.ErrRecordNotFound
		}
		return img, nil, nil
	}
	vid, err := h.Repo.GetVideo(mediaID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := h.Repo.GetByIDForUser(vid.CategoryID, userID); err != nil {
		return nil, nil, gorm.ErrRecordNotFound
	}
	return nil, vid, nil
}

// applyMediaFields copies provided metadata onto the entry's mutable
// columns. Switching carousel on without a slide key generates one.
func applyMediaFields(fields mediaFields, description **string, position *int, isCarousel *bool, slideKey **string) {
	if fields.Description != nil {
		*description = fields.Description
	}
	if fields.Position != nil {
		*position = *fields.Position
	}
	if fields.IsCarousel != nil {
		*isCarousel = *fields.IsCarousel
	}
	if fields.SlideKey != nil {
		*slideKey = fields.SlideKey
	}
	if *isCarousel && (*slideKey == nil || **slideKey == "") {
		generated := media.GenSlideKey()
		*slideKey = &generated
	}
}

// ReplaceMedia swaps a media entry's file or URL and/or updates its
// metadata. A replaced locally-stored file is removed from disk.
func (h *CategoryHandler) ReplaceMedia(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}
	mediaID, err := parseUintParam(r, "mediaID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid media ID"})
		return
	}

	img, vid, err := h.lookupMedia(mediaID, user.ID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "media not found"})
		return
	}

	contentType := r.Header.Get("Content-Type")
	var fields mediaFields
	var newURL string

	switch {
	case strings.HasPrefix(contentType, "multipart/form-data"):
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to parse multipart form"})
			return
		}
		fields = mediaFieldsFromForm(r)

		if file, header, err := r.FormFile("file"); err == nil {
			defer file.Close()
			filename := media.SecureFilename(header.Filename)
			if filename == "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid filename"})
				return
			}
			kind := media.KindImage
			if img == nil {
				kind = media.KindVideo
			}
			newURL, err = h.Store.Save(kind, filename, file)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
		} else if fields.URL != "" {
			newURL = strings.TrimSpace(fields.URL)
		}

	case strings.HasPrefix(contentType, "application/json"):
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request payload"})
			return
		}
		newURL = strings.TrimSpace(fields.URL)

	default:
		writeJSON(w, http.StatusUnsupportedMediaType, map[string]string{"error": "expected multipart/form-data or application/json"})
		return
	}

	if img != nil {
		if newURL != "" && newURL != img.ImageURL {
			h.Store.Delete(img.ImageURL)
			img.ImageURL = newURL
		}
		applyMediaFields(fields, &img.Description, &img.Position, &img.IsCarousel, &img.SlideKey)
		if err := h.Repo.SaveImage(img); err != nil {
			log.Printf("Error updating image %d: %v", img.ID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update media"})
			return
		}
		writeJSON(w, http.StatusOK, imageEntry(img))
		return
	}

	if newURL != "" && newURL != vid.VideoURL {
		h.Store.Delete(vid.VideoURL)
		vid.VideoURL = newURL
	}
	applyMediaFields(fields, &vid.Description, &vid.Position, &vid.IsCarousel, &vid.SlideKey)
	if err := h.Repo.SaveVideo(vid); err != nil {
		log.Printf("Error updating video %d: %v", vid.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update media"})
		return
	}
	writeJSON(w, http.StatusOK, videoEntry(vid))
}

// PatchMeta updates only the metadata of a media entry; the file or
// URL itself is untouched.
func (h *CategoryHandler) PatchMeta(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}
	mediaID, err := parseUintParam(r, "mediaID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid media ID"})
		return
	}

	img, vid, err := h.lookupMedia(mediaID, user.ID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "media not found"})
		return
	}

	var fields mediaFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request payload"})
		return
	}

	if img != nil {
		applyMediaFields(fields, &img.Description, &img.Position, &img.IsCarousel, &img.SlideKey)
		if err := h.Repo.SaveImage(img); err != nil {
			log.Printf("Error updating image %d: %v", img.ID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update media"})
			return
		}
		writeJSON(w, http.StatusOK, imageEntry(img))
		return
	}

	applyMediaFields(fields, &vid.Description, &vid.Position, &vid.IsCarousel, &vid.SlideKey)
	if err := h.Repo.SaveVideo(vid); err != nil {
		log.Printf("Error updating video %d: %v", vid.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update media"})
		return
	}
	writeJSON(w, http.StatusOK, videoEntry(vid))
}

// DeleteMedia removes a media entry and its locally stored file.
func (h *CategoryHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}
	mediaID, err := parseUintParam(r, "mediaID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid media ID"})
		return
	}

	img, vid, err := h.lookupMedia(mediaID, user.ID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "media not found"})
		return
	}

	if img != nil {
		h.Store.Delete(img.ImageURL)
		if err := h.Repo.DeleteImage(img.ID); err != nil {
			log.Printf("Error deleting image %d: %v", img.ID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete media"})
			return
		}
	} else {
		h.Store.Delete(vid.VideoURL)
		if err := h.Repo.DeleteVideo(vid.ID); err != nil {
			log.Printf("Error deleting video %d: %v", vid.ID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete media"})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "media deleted successfully"})
}

// Delete removes a category with all of its media: every locally
// stored file is deleted first, then the rows go in one transaction.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}
	categoryID, err := parseUintParam(r, "categoryID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category ID"})
		return
	}

	if _, err := h.Repo.GetByIDForUser(categoryID, user.ID); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "category not found"})
		return
	}

	urls, err := h.Repo.ListMediaURLs(categoryID)
	if err != nil {
		log.Printf("Error listing media URLs for category %d: %v", categoryID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete category"})
		return
	}
	for _, u := range urls {
		h.Store.Delete(u)
	}

	rows, err := h.Repo.DeleteCascade(categoryID)
	if err != nil {
		log.Printf("Error deleting category %d: %v", categoryID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete category"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "category deleted successfully",
		"deleted_rows": rows,
	})
}

// parseUintParam reads a chi URL parameter as an unsigned id.
func parseUintParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
