package models

import "time"

// DefaultContactTitle is used whenever a contact page is created or its
// title is cleared.
const DefaultContactTitle = "Contacto"

// ContactPage holds the editable contact-page content. One row per
// deployment by convention: public reads treat the first row (id asc)
// as canonical, and the row is created lazily on first admin access.
// VideosJSON stores the serialized ordered block list; the column name
// is historical, the list mixes text, image and video blocks.
type ContactPage struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"not null;default:Contacto"`
	Intro        string    `json:"intro"`
	Body         string    `json:"body"`
	FooterNote   string    `json:"footer_note"`
	VideosJSON   string    `json:"-" gorm:"column:videos_json"`
	HeroImageURL *string   `json:"hero_image_url"`
	UpdatedAt    time.Time `json:"updated_at"`

	UserID *uint `json:"user_id,omitempty" gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (ContactPage) TableName() string {
	return "contact_pages"
}
