package models

import (
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	slugStripRe    = regexp.MustCompile(`[^a-zA-Z0-9\s-]`)
	slugSpacesRe   = regexp.MustCompile(`\s+`)
	slugFallback   = "categoria"
	slugHyphenTrim = "-"
)

// Slugify derives a URL slug from a category name: everything except
// letters, digits, spaces and hyphens is stripped, runs of whitespace
// collapse to a single hyphen, and the result is lowercased. An empty
// or purely symbolic name falls back to "categoria".
func Slugify(text string) string {
	s := slugStripRe.ReplaceAllString(text, "")
	s = slugSpacesRe.ReplaceAllString(s, "-")
	s = strings.ToLower(strings.Trim(s, slugHyphenTrim))
	if s == "" {
		return slugFallback
	}
	return s
}

// Category groups project media under a named, ordered section of the site.
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Slug        string    `json:"slug" gorm:"index"`
	Description string    `json:"description"`
	Order       int       `json:"order" gorm:"not null;default:0;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	UserID uint `json:"user_id" gorm:"not null;index"`

	Images []ProjectImage `json:"images,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Videos []ProjectVideo `json:"videos,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (Category) TableName() string {
	return "categories"
}

// BeforeSave keeps the denormalized slug populated whenever the row is
// written without one, mirroring the insert/update hooks of the schema.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	if c.Slug == "" && c.Name != "" {
		c.Slug = Slugify(c.Name)
	}
	return nil
}
