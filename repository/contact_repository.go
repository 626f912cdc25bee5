package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/camden-git/portfoliobackend/models"
)

type GormContactPageRepository struct {
	db *gorm.DB
}

func NewGormContactPageRepository(db *gorm.DB) ContactPageRepository {
	return &GormContactPageRepository{db: db}
}

// GetFirst returns the canonical contact page for public reads: the
// first row by id.
func (r *GormContactPageRepository) GetFirst() (*models.ContactPage, error) {
	var page models.ContactPage
	if err := r.db.Order("id ASC").First(&page).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

// GetOrCreate returns the user's contact page, creating an empty one on
// first admin access.
func (r *GormContactPageRepository) GetOrCreate(userID uint) (*models.ContactPage, error) {
	var page models.ContactPage
	err := r.db.Where("user_id = ?", userID).First(&page).Error
	if err == nil {
		return &page, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load contact page for user %d: %w", userID, err)
	}

	page = models.ContactPage{
		Title:      models.DefaultContactTitle,
		VideosJSON: "[]",
		UserID:     &userID,
	}
	if err := r.db.Create(&page).Error; err != nil {
		return nil, fmt.Errorf("failed to create contact page for user %d: %w", userID, err)
	}
	return &page, nil
}

func (r *GormContactPageRepository) Save(page *models.ContactPage) error {
	if err := r.db.Save(page).Error; err != nil {
		return fmt.Errorf("failed to save contact page %d: %w", page.ID, err)
	}
	return nil
}

// SaveBlocks serializes and persists a sanitized block list; the JSON
// encoding never leaves the persistence layer.
func (r *GormContactPageRepository) SaveBlocks(page *models.ContactPage, blocks []models.Block) error {
	encoded, err := models.EncodeBlocks(blocks)
	if err != nil {
		return fmt.Errorf("failed to encode contact blocks: %w", err)
	}
	page.VideosJSON = encoded
	err = r.db.Model(page).Update("videos_json", encoded).Error
	if err != nil {
		return fmt.Errorf("failed to save contact blocks for page %d: %w", page.ID, err)
	}
	return nil
}
