package models

import "time"

// Message is one contact-form submission. Rows are append-only from the
// public endpoint; IsRead exists for future moderation and is never
// touched by the current routes.
type Message struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	LastName  string    `json:"last_name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null;index"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	IsRead    bool      `json:"is_read" gorm:"default:false"`

	UserID uint `json:"user_id" gorm:"not null;index"`
}

// TableName explicitly sets the table name for GORM.
func (Message) TableName() string {
	return "messages"
}
