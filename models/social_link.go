package models

// Platforms a social link may point to.
const (
	PlatformLinkedIn   = "linkedin"
	PlatformArtStation = "artstation"
)

// AllowedPlatforms is the closed set of platforms accepted by the API.
var AllowedPlatforms = map[string]bool{
	PlatformLinkedIn:   true,
	PlatformArtStation: true,
}

// SocialLink stores one external profile URL per (user, platform).
type SocialLink struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Platform string `json:"platform" gorm:"not null;uniqueIndex:uq_user_platform"`
	URL      string `json:"url" gorm:"not null"`
	UserID   uint   `json:"user_id" gorm:"not null;uniqueIndex:uq_user_platform"`
}

// TableName explicitly sets the table name for GORM.
func (SocialLink) TableName() string {
	return "social_links"
}
