package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/camden-git/portfoliobackend/models"
)

type GormCVRepository struct {
	db *gorm.DB
}

func NewGormCVRepository(db *gorm.DB) CVRepository {
	return &GormCVRepository{db: db}
}

func (r *GormCVRepository) GetByUserID(userID uint) (*models.CV, error) {
	var cv models.CV
	if err := r.db.Where("user_id = ?", userID).First(&cv).Error; err != nil {
		return nil, err
	}
	return &cv, nil
}

// GetFirst returns the first stored CV; the public download endpoint
// treats it as the site's CV.
func (r *GormCVRepository) GetFirst() (*models.CV, error) {
	var cv models.CV
	if err := r.db.Order("id ASC").First(&cv).Error; err != nil {
		return nil, err
	}
	return &cv, nil
}

// Upsert inserts or replaces the user's CV row atomically on the
// user_id unique key, avoiding the delete-then-insert race.
func (r *GormCVRepository) Upsert(cv *models.CV) error {
	if cv.UploadedAt.IsZero() {
		cv.UploadedAt = time.Now().UTC()
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"file_path", "uploaded_at"}),
	}).Create(cv).Error
	if err != nil {
		return fmt.Errorf("failed to upsert CV for user %d: %w", cv.UserID, err)
	}
	return nil
}

func (r *GormCVRepository) DeleteByUserID(userID uint) error {
	result := r.db.Where("user_id = ?", userID).Delete(&models.CV{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete CV for user %d: %w", userID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
