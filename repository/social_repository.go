package repository

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/camden-git/portfoliobackend/models"
)

type GormSocialLinkRepository struct {
	db *gorm.DB
}

func NewGormSocialLinkRepository(db *gorm.DB) SocialLinkRepository {
	return &GormSocialLinkRepository{db: db}
}

func (r *GormSocialLinkRepository) ListByPlatforms(platforms []string) ([]models.SocialLink, error) {
	var links []models.SocialLink
	if err := r.db.Where("platform IN ?", platforms).Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to list social links: %w", err)
	}
	return links, nil
}

// Upsert keeps at most one row per (user, platform): a second save for
// the same platform replaces the stored URL.
func (r *GormSocialLinkRepository) Upsert(link *models.SocialLink) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "platform"}},
		DoUpdates: clause.AssignmentColumns([]string{"url"}),
	}).Create(link).Error
	if err != nil {
		return fmt.Errorf("failed to upsert %s link for user %d: %w", link.Platform, link.UserID, err)
	}
	return nil
}

// Delete removes the user's link for a platform; deleting a link that
// does not exist is not an error.
func (r *GormSocialLinkRepository) Delete(userID uint, platform string) error {
	err := r.db.Where("user_id = ? AND platform = ?", userID, platform).
		Delete(&models.SocialLink{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete %s link for user %d: %w", platform, userID, err)
	}
	return nil
}
