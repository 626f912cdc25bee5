package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/camden-git/portfoliobackend/database"
	"github.com/camden-git/portfoliobackend/media"
	"github.com/camden-git/portfoliobackend/models"
)

// ErrCategoryNotOwned is returned when a reorder request references a
// category that does not belong to the acting user.
var ErrCategoryNotOwned = errors.New("category does not belong to this user")

type GormCategoryRepository struct {
	db *gorm.DB
}

func NewGormCategoryRepository(db *gorm.DB) CategoryRepository {
	return &GormCategoryRepository{db: db}
}

func orderAsc() clause.OrderByColumn {
	return clause.OrderByColumn{Column: clause.Column{Name: "order"}}
}

func (r *GormCategoryRepository) Create(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category %s: %w", category.Name, err)
	}
	return nil
}

// ListAllOrdered retrieves every category ordered for the public site.
func (r *GormCategoryRepository) ListAllOrdered() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order(orderAsc()).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *GormCategoryRepository) ListByUser(userID uint) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Where("user_id = ?", userID).Order(orderAsc()).Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories for user %d: %w", userID, err)
	}
	return categories, nil
}

func (r *GormCategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) GetByIDForUser(id, userID uint) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) MaxOrder() (int, error) {
	var max *int
	err := r.db.Model(&models.Category{}).Select("MAX(\"order\")").Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("failed to find max category order: %w", err)
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// Reorder rewrites the order column of all the user's categories to a
// contiguous 1..N sequence following orderedIDs. IDs missing from the
// submission keep their relative place at the end; an id that does not
// belong to the user aborts with ErrCategoryNotOwned.
func (r *GormCategoryRepository) Reorder(userID uint, orderedIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var owned []uint
		if err := tx.Model(&models.Category{}).Where("user_id = ?", userID).Pluck("id", &owned).Error; err != nil {
			return fmt.Errorf("failed to load categories for reorder: %w", err)
		}

		ownedSet := make(map[uint]bool, len(owned))
		for _, id := range owned {
			ownedSet[id] = true
		}
		for _, id := range orderedIDs {
			if !ownedSet[id] {
				return ErrCategoryNotOwned
			}
		}

		submitted := make(map[uint]bool, len(orderedIDs))
		for _, id := range orderedIDs {
			submitted[id] = true
		}
		final := make([]uint, 0, len(owned))
		final = append(final, orderedIDs...)
		for _, id := range owned {
			if !submitted[id] {
				final = append(final, id)
			}
		}

		for idx, id := range final {
			err := tx.Model(&models.Category{}).Where("id = ?", id).
				Update("order", idx+1).Error
			if err != nil {
				return fmt.Errorf("failed to set order for category %d: %w", id, err)
			}
		}
		return nil
	})
}

// DeleteCascade removes a category together with its media rows in one
// transaction and reports how many rows went away. Physical file
// cleanup is the caller's separate step.
func (r *GormCategoryRepository) DeleteCascade(categoryID uint) (int64, error) {
	var rowsDeleted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("category_id = ?", categoryID).Delete(&models.ProjectImage{})
		if res.Error != nil {
			return res.Error
		}
		rowsDeleted += res.RowsAffected

		res = tx.Where("category_id = ?", categoryID).Delete(&models.ProjectVideo{})
		if res.Error != nil {
			return res.Error
		}
		rowsDeleted += res.RowsAffected

		res = tx.Delete(&models.Category{}, categoryID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		rowsDeleted += res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return rowsDeleted, nil
}

func (r *GormCategoryRepository) CreateImage(img *models.ProjectImage) error {
	return r.db.Create(img).Error
}

func (r *GormCategoryRepository) CreateVideo(vid *models.ProjectVideo) error {
	return r.db.Create(vid).Error
}

func (r *GormCategoryRepository) GetImage(id uint) (*models.ProjectImage, error) {
	var img models.ProjectImage
	if err := r.db.First(&img, id).Error; err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *GormCategoryRepository) GetVideo(id uint) (*models.ProjectVideo, error) {
	var vid models.ProjectVideo
	if err := r.db.First(&vid, id).Error; err != nil {
		return nil, err
	}
	return &vid, nil
}

func (r *GormCategoryRepository) SaveImage(img *models.ProjectImage) error {
	return r.db.Save(img).Error
}

func (r *GormCategoryRepository) SaveVideo(vid *models.ProjectVideo) error {
	return r.db.Save(vid).Error
}

func (r *GormCategoryRepository) DeleteImage(id uint) error {
	return r.db.Delete(&models.ProjectImage{}, id).Error
}

func (r *GormCategoryRepository) DeleteVideo(id uint) error {
	return r.db.Delete(&models.ProjectVideo{}, id).Error
}

// ListMedia returns the merged, tagged image/video sequence of a
// category via the raw UNION query.
func (r *GormCategoryRepository) ListMedia(categoryID uint) ([]media.Entry, error) {
	sqlDB, err := r.db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	rows, err := database.ListCategoryMedia(sqlDB, categoryID)
	if err != nil {
		return nil, err
	}

	entries := make([]media.Entry, 0, len(rows))
	for _, row := range rows {
		e := media.Entry{
			ID:          row.ID,
			Kind:        row.Kind,
			URL:         row.URL,
			Description: row.Description,
			Position:    row.Position,
			IsCarousel:  row.IsCarousel,
			SlideKey:    row.SlideKey,
		}
		switch row.Kind {
		case "image":
			e.ImageURL = row.URL
		case "video":
			e.VideoURL = row.URL
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// NextMediaPosition returns max(position)+1 across the category's
// images and videos combined.
func (r *GormCategoryRepository) NextMediaPosition(categoryID uint) (int, error) {
	sqlDB, err := r.db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	max, err := database.MaxMediaPosition(sqlDB, categoryID)
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// ListMediaURLs collects every media URL of a category for the explicit
// file-cleanup step that accompanies a cascade delete.
func (r *GormCategoryRepository) ListMediaURLs(categoryID uint) ([]string, error) {
	var urls []string
	var imageURLs []string
	err := r.db.Model(&models.ProjectImage{}).Where("category_id = ?", categoryID).
		Pluck("image_url", &imageURLs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list image urls for category %d: %w", categoryID, err)
	}
	var videoURLs []string
	err = r.db.Model(&models.ProjectVideo{}).Where("category_id = ?", categoryID).
		Pluck("video_url", &videoURLs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list video urls for category %d: %w", categoryID, err)
	}
	urls = append(urls, imageURLs...)
	urls = append(urls, videoURLs...)
	return urls, nil
}
