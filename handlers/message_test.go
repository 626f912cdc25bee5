package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/camden-git/portfoliobackend/config"
	"github.com/camden-git/portfoliobackend/mailer"
	"github.com/camden-git/portfoliobackend/models"
	"github.com/camden-git/portfoliobackend/repository"
)

func newMessageTestEnv(t *testing.T) (*MessageHandler, repository.UserRepository, *models.User) {
	t.Helper()
	db := openHandlerTestDB(t)
	userRepo := repository.NewGormUserRepository(db)
	user := seedTestUser(t, userRepo, "owner@example.com", "hunter22")
	msgRepo := repository.NewGormMessageRepository(db)
	// an unconfigured mailer fails fast on Send without dialing
	h := NewMessageHandler(msgRepo, userRepo, mailer.New(config.Config{}), "dest@example.com")
	return h, userRepo, user
}

func postMessage(t *testing.T, h *MessageHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/messages", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	return rec
}

func TestMessageValidation(t *testing.T) {
	h, _, _ := newMessageTestEnv(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty payload", `{}`},
		{"missing last name", `{"name":"Ana","email":"a@b.co","content":"hello there"}`},
		{"bad email", `{"name":"Ana","last_name":"Lopez","email":"not-an-email","content":"hello there"}`},
		{"email with spaces", `{"name":"Ana","last_name":"Lopez","email":"a b@c.co","content":"hello there"}`},
		{"content too short", `{"name":"Ana","last_name":"Lopez","email":"a@b.co","content":"hey"}`},
		{"whitespace only content", `{"name":"Ana","last_name":"Lopez","email":"a@b.co","content":"      "}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postMessage(t, h, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestMessageUnconfiguredDestination(t *testing.T) {
	h, _, _ := newMessageTestEnv(t)
	h.DestEmail = ""

	rec := postMessage(t, h, `{"name":"Ana","last_name":"Lopez","email":"a@b.co","content":"hello there"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["email_sent"] != false {
		t.Errorf("email_sent = %v, want false", resp["email_sent"])
	}
}

func TestMessagePersistsEvenWhenMailFails(t *testing.T) {
	db := openHandlerTestDB(t)
	userRepo := repository.NewGormUserRepository(db)
	seedTestUser(t, userRepo, "owner@example.com", "hunter22")
	msgRepo := repository.NewGormMessageRepository(db)
	h := NewMessageHandler(msgRepo, userRepo, mailer.New(config.Config{}), "dest@example.com")

	rec := postMessage(t, h, `{"name":"Ana","last_name":"Lopez","email":"a@b.co","content":"hola mundo"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status with broken SMTP = %d, want 500", rec.Code)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["email_sent"] != false {
		t.Errorf("email_sent = %v, want false", resp["email_sent"])
	}

	// the submission is still recorded
	var count int64
	if err := db.Model(&models.Message{}).Count(&count).Error; err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("message rows = %d, want 1", count)
	}
}

func TestMessageSanitizesAndEscapes(t *testing.T) {
	db := openHandlerTestDB(t)
	userRepo := repository.NewGormUserRepository(db)
	seedTestUser(t, userRepo, "owner@example.com", "hunter22")
	msgRepo := repository.NewGormMessageRepository(db)
	h := NewMessageHandler(msgRepo, userRepo, mailer.New(config.Config{}), "dest@example.com")

	long := strings.Repeat("a", 200)
	body, _ := json.Marshal(map[string]string{
		"name":      "  " + long + "  ",
		"last_name": "Lopez",
		"email":     "a@b.co",
		"content":   "<script>alert(1)</script> plus text",
	})
	postMessage(t, h, string(body))

	var stored models.Message
	if err := db.Order("id DESC").First(&stored).Error; err != nil {
		t.Fatalf("no message row persisted: %v", err)
	}
	if len(stored.Name) > 120 {
		t.Errorf("name not truncated: %d chars", len(stored.Name))
	}
	if strings.Contains(stored.Content, "<script>") {
		t.Errorf("content not HTML-escaped: %q", stored.Content)
	}
	if !strings.Contains(stored.Content, "&lt;script&gt;") {
		t.Errorf("escaped markers missing from content: %q", stored.Content)
	}
}

func TestMessagePreflight(t *testing.T) {
	h, _, _ := newMessageTestEnv(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/messages", nil)
	rec := httptest.NewRecorder()
	h.Preflight(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rec.Code)
	}
}
