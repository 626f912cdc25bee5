package models

import "time"

// ProjectImage is one image belonging to a category. Position defines
// the display order across the union of a category's images and videos;
// entries sharing a SlideKey are grouped as one carousel slide's
// sub-content.
type ProjectImage struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	ImageURL    string  `json:"image_url" gorm:"not null"`
	Description *string `json:"description,omitempty"`
	Position    int     `json:"position" gorm:"not null;default:0;index"`

	IsCarousel bool    `json:"is_carousel" gorm:"not null;default:false;index"`
	SlideKey   *string `json:"slide_key,omitempty" gorm:"index:ix_img_cat_slide"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CategoryID uint `json:"category_id" gorm:"not null;index:ix_img_cat_slide"`
}

// TableName explicitly sets the table name for GORM.
func (ProjectImage) TableName() string {
	return "project_images"
}

// ProjectVideo is one video belonging to a category; ordering and slide
// grouping follow the same rules as ProjectImage.
type ProjectVideo struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	VideoURL    string  `json:"video_url" gorm:"not null"`
	Description *string `json:"description,omitempty"`
	Position    int     `json:"position" gorm:"not null;default:0;index"`

	IsCarousel bool    `json:"is_carousel" gorm:"not null;default:false;index"`
	SlideKey   *string `json:"slide_key,omitempty" gorm:"index:ix_vid_cat_slide"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CategoryID uint `json:"category_id" gorm:"not null;index:ix_vid_cat_slide"`
}

// TableName explicitly sets the table name for GORM.
func (ProjectVideo) TableName() string {
	return "project_videos"
}
