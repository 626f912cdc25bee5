package repository

import (
	"github.com/camden-git/portfoliobackend/media"
	"github.com/camden-git/portfoliobackend/models"
)

// UserRepository defines the methods for user data operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdatePassword(userID uint, passwordHash string) error
	GetFirst() (*models.User, error)
	Count() (int64, error)
}

// CategoryRepository defines the methods for category and project media
// data operations
type CategoryRepository interface {
	Create(category *models.Category) error
	ListAllOrdered() ([]models.Category, error)
	ListByUser(userID uint) ([]models.Category, error)
	GetByID(id uint) (*models.Category, error)
	GetByIDForUser(id, userID uint) (*models.Category, error)
	MaxOrder() (int, error)
	Reorder(userID uint, orderedIDs []uint) error
	DeleteCascade(categoryID uint) (rowsDeleted int64, err error)

	CreateImage(img *models.ProjectImage) error
	CreateVideo(vid *models.ProjectVideo) error
	GetImage(id uint) (*models.ProjectImage, error)
	GetVideo(id uint) (*models.ProjectVideo, error)
	SaveImage(img *models.ProjectImage) error
	SaveVideo(vid *models.ProjectVideo) error
	DeleteImage(id uint) error
	DeleteVideo(id uint) error

	// merged image/video view, ordered by (position, id)
	ListMedia(categoryID uint) ([]media.Entry, error)
	NextMediaPosition(categoryID uint) (int, error)
	ListMediaURLs(categoryID uint) ([]string, error)
}

// MessageRepository defines the methods for contact-form messages
type MessageRepository interface {
	Create(msg *models.Message) error
}

// CVRepository defines the methods for CV data operations
type CVRepository interface {
	GetByUserID(userID uint) (*models.CV, error)
	GetFirst() (*models.CV, error)
	Upsert(cv *models.CV) error
	DeleteByUserID(userID uint) error
}

// SocialLinkRepository defines the methods for social link data operations
type SocialLinkRepository interface {
	ListByPlatforms(platforms []string) ([]models.SocialLink, error)
	Upsert(link *models.SocialLink) error
	Delete(userID uint, platform string) error
}

// ContactPageRepository defines the methods for contact page data operations
type ContactPageRepository interface {
	GetFirst() (*models.ContactPage, error)
	GetOrCreate(userID uint) (*models.ContactPage, error)
	Save(page *models.ContactPage) error
	SaveBlocks(page *models.ContactPage, blocks []models.Block) error
}
