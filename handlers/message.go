package handlers

import (
	"encoding/json"
	"fmt"
	"html"
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/camden-git/portfoliobackend/mailer"
	"github.com/camden-git/portfoliobackend/models"
	"github.com/camden-git/portfoliobackend/repository"
)

const (
	maxNameLen    = 120
	maxEmailLen   = 120
	maxContentLen = 5000
	minContentLen = 5
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type MessageHandler struct {
	Messages  repository.MessageRepository
	Users     repository.UserRepository
	Mailer    *mailer.Mailer
	DestEmail string
}

func NewMessageHandler(messages repository.MessageRepository, users repository.UserRepository, m *mailer.Mailer, destEmail string) *MessageHandler {
	return &MessageHandler{Messages: messages, Users: users, Mailer: m, DestEmail: destEmail}
}

type messagePayload struct {
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	Email    string `json:"email"`
	Content  string `json:"content"`
}

// sanitize trims, truncates and HTML-escapes a submitted field. The
// length cap counts characters so a multibyte rune is never split.
func sanitize(v string, max int) string {
	v = strings.TrimSpace(v)
	if runes := []rune(v); len(runes) > max {
		v = string(runes[:max])
	}
	return html.EscapeString(v)
}

// Preflight answers CORS preflight requests on the public form route.
func (h *MessageHandler) Preflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// Create receives a public contact-form submission, records it and
// relays it by mail to the configured destination. The message row is
// kept even when the relay fails so no submission is silently lost.
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload messagePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request payload"})
		return
	}

	name := sanitize(payload.Name, maxNameLen)
	lastName := sanitize(payload.LastName, maxNameLen)
	email := sanitize(payload.Email, maxEmailLen)
	content := sanitize(payload.Content, maxContentLen)

	if name == "" || lastName == "" || email == "" || content == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "all fields are required"})
		return
	}
	if !emailRe.MatchString(email) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid email address"})
		return
	}
	if len(content) < minContentLen {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message content is too short"})
		return
	}

	if h.DestEmail == "" {
		log.Printf("Contact message rejected: no destination address configured")
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":      "contact form is not configured",
			"email_sent": false,
		})
		return
	}

	// messages hang off the site owner; a site with no user yet still
	// relays mail but has nowhere to store the row
	if owner, err := h.Users.GetFirst(); err == nil {
		msg := models.Message{
			Name:     name,
			LastName: lastName,
			Email:    email,
			Content:  content,
			UserID:   owner.ID,
		}
		if err := h.Messages.Create(&msg); err != nil {
			log.Printf("Error persisting contact message: %v", err)
		}
	}

	subject := fmt.Sprintf("Nuevo mensaje de %s %s", name, lastName)
	body := fmt.Sprintf("De: %s %s <%s>\n\n%s", name, lastName, email, content)
	if err := h.Mailer.Send(subject, body, h.DestEmail); err != nil {
		log.Printf("Error relaying contact message: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":      "failed to send message",
			"email_sent": false,
		})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":    "message sent successfully",
		"email_sent": true,
	})
}
