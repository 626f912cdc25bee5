package models

import "time"

// CV is the single downloadable resume file for a user. The unique
// index on UserID enforces at most one row per user; replacing a CV is
// an upsert on that key.
type CV struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FilePath   string    `json:"file_path" gorm:"not null"`
	UploadedAt time.Time `json:"uploaded_at"`

	UserID uint `json:"user_id" gorm:"uniqueIndex;not null"`
}

// TableName explicitly sets the table name for GORM.
func (CV) TableName() string {
	return "cvs"
}
