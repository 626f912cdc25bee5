package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/camden-git/portfoliobackend/models"
	"github.com/camden-git/portfoliobackend/repository"
)

func newSocialTestEnv(t *testing.T) (*SocialHandler, *models.User) {
	t.Helper()
	db := openHandlerTestDB(t)
	userRepo := repository.NewGormUserRepository(db)
	user := seedTestUser(t, userRepo, "owner@example.com", "hunter22")
	return NewSocialHandler(repository.NewGormSocialLinkRepository(db)), user
}

func TestSocialPublicAlwaysCarriesBothKeys(t *testing.T) {
	h, user := newSocialTestEnv(t)

	get := func() map[string]*socialEntry {
		req := httptest.NewRequest(http.MethodGet, "/api/socials/public", nil)
		rec := httptest.NewRecorder()
		h.ListPublic(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var resp map[string]*socialEntry
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return resp
	}

	resp := get()
	if len(resp) != 2 {
		t.Fatalf("public socials has %d keys, want 2", len(resp))
	}
	if resp[models.PlatformLinkedIn] != nil || resp[models.PlatformArtStation] != nil {
		t.Errorf("unset platforms should be null: %+v", resp)
	}

	body := `{"platform":"linkedin","url":"linkedin.com/in/ana"}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/socials", strings.NewReader(body)), user)
	rec := httptest.NewRecorder()
	h.Upsert(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("upsert status = %d, body %s", rec.Code, rec.Body.String())
	}

	resp = get()
	li := resp[models.PlatformLinkedIn]
	if li == nil {
		t.Fatal("linkedin still null after upsert")
	}
	// a schemeless URL gets https:// prepended
	if li.URL != "https://linkedin.com/in/ana" {
		t.Errorf("stored URL = %q, want https prefix", li.URL)
	}
	if resp[models.PlatformArtStation] != nil {
		t.Error("artstation set without an upsert")
	}
}

func TestSocialUpsertRejectsUnknownPlatform(t *testing.T) {
	h, user := newSocialTestEnv(t)

	body := `{"platform":"myspace","url":"https://myspace.com/ana"}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/socials", strings.NewReader(body)), user)
	rec := httptest.NewRecorder()
	h.Upsert(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown platform status = %d, want 400", rec.Code)
	}
}

func TestSocialDelete(t *testing.T) {
	h, user := newSocialTestEnv(t)

	r := chi.NewRouter()
	r.Delete("/api/socials/{platform}", func(w http.ResponseWriter, req *http.Request) {
		h.Delete(w, asUser(req, user))
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/socials/artstation", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete of absent link status = %d, want 204", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/socials/myspace", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown platform delete status = %d, want 400", rec.Code)
	}
}
