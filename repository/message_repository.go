package repository

import (
	"fmt"

	"github.com/camden-git/portfoliobackend/models"
	"gorm.io/gorm"
)

type GormMessageRepository struct {
	db *gorm.DB
}

func NewGormMessageRepository(db *gorm.DB) MessageRepository {
	return &GormMessageRepository{db: db}
}

func (r *GormMessageRepository) Create(msg *models.Message) error {
	if err := r.db.Create(msg).Error; err != nil {
		return fmt.Errorf("failed to store message from %s: %w", msg.Email, err)
	}
	return nil
}
