package repository

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/camden-git/portfoliobackend/database"
	"github.com/camden-git/portfoliobackend/models"
)

// openTestDB spins up a throwaway sqlite database with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitGormDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("InitGormDB: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		t.Fatalf("AutoMigrateModels: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Test", Email: email}
	if err := user.SetPassword("secret123"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if err := NewGormUserRepository(db).Create(user); err != nil {
		t.Fatalf("Create user: %v", err)
	}
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, userID uint, name string) *models.Category {
	t.Helper()
	cat := &models.Category{Name: name, UserID: userID}
	if err := NewGormCategoryRepository(db).Create(cat); err != nil {
		t.Fatalf("Create category: %v", err)
	}
	return cat
}
