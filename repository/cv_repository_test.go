package repository

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/camden-git/portfoliobackend/models"
)

func TestCVUpsertKeepsSingleRow(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormCVRepository(db)
	user := seedUser(t, db, "owner@example.com")

	first := &models.CV{FilePath: "/uploads/cvs/cv_1.pdf", UserID: user.ID}
	if err := repo.Upsert(first); err != nil {
		t.Fatalf("first Upsert: %v", err)
	}

	second := &models.CV{FilePath: "/uploads/cvs/cv_1_v2.pdf", UserID: user.ID}
	if err := repo.Upsert(second); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	var count int64
	if err := db.Model(&models.CV{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Fatalf("user has %d CV rows, want 1", count)
	}

	stored, err := repo.GetByUserID(user.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if stored.FilePath != "/uploads/cvs/cv_1_v2.pdf" {
		t.Errorf("stored file path = %q, want the replacement", stored.FilePath)
	}
	if stored.UploadedAt.IsZero() {
		t.Error("UploadedAt not set on upsert")
	}
}

func TestCVDeleteByUserID(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormCVRepository(db)
	user := seedUser(t, db, "owner@example.com")

	if err := repo.DeleteByUserID(user.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("delete with no CV = %v, want ErrRecordNotFound", err)
	}

	cv := &models.CV{FilePath: "/uploads/cvs/cv_1.pdf", UserID: user.ID}
	if err := repo.Upsert(cv); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := repo.DeleteByUserID(user.ID); err != nil {
		t.Fatalf("DeleteByUserID: %v", err)
	}
	if _, err := repo.GetFirst(); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("CV still present after delete: %v", err)
	}
}
