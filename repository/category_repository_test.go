package repository

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/camden-git/portfoliobackend/models"
)

func categoryOrders(t *testing.T, repo CategoryRepository, userID uint) map[uint]int {
	t.Helper()
	cats, err := repo.ListByUser(userID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	orders := make(map[uint]int, len(cats))
	for _, c := range cats {
		orders[c.ID] = c.Order
	}
	return orders
}

func TestReorderRewritesContiguousSequence(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormCategoryRepository(db)
	user := seedUser(t, db, "owner@example.com")

	a := seedCategory(t, db, user.ID, "A")
	b := seedCategory(t, db, user.ID, "B")
	c := seedCategory(t, db, user.ID, "C")

	if err := repo.Reorder(user.ID, []uint{c.ID, a.ID, b.ID}); err != nil {
		t.Fatalf("Reorder: %v", err)
	}

	orders := categoryOrders(t, repo, user.ID)
	if orders[c.ID] != 1 || orders[a.ID] != 2 || orders[b.ID] != 3 {
		t.Errorf("orders after reorder = %v", orders)
	}
}

func TestReorderIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormCategoryRepository(db)
	user := seedUser(t, db, "owner@example.com")

	a := seedCategory(t, db, user.ID, "A")
	b := seedCategory(t, db, user.ID, "B")

	submission := []uint{b.ID, a.ID}
	if err := repo.Reorder(user.ID, submission); err != nil {
		t.Fatalf("first Reorder: %v", err)
	}
	first := categoryOrders(t, repo, user.ID)

	if err := repo.Reorder(user.ID, submission); err != nil {
		t.Fatalf("second Reorder: %v", err)
	}
	second := categoryOrders(t, repo, user.ID)

	for id, order := range first {
		if second[id] != order {
			t.Errorf("category %d moved from %d to %d on repeat submission", id, order, second[id])
		}
	}
}

func TestReorderSubsetAppendsMissing(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormCategoryRepository(db)
	user := seedUser(t, db, "owner@example.com")

	a := seedCategory(t, db, user.ID, "A")
	b := seedCategory(t, db, user.ID, "B")
	c := seedCategory(t, db, user.ID, "C")

	// only C is submitted; A and B keep their relative order behind it
	if err := repo.Reorder(user.ID, []uint{c.ID}); err != nil {
		t.Fatalf("Reorder: %v", err)
	}

	orders := categoryOrders(t, repo, user.ID)
	if orders[c.ID] != 1 {
		t.Errorf("submitted category order = %d, want 1", orders[c.ID])
	}
	if orders[a.ID] != 2 || orders[b.ID] != 3 {
		t.Errorf("missing categories not appended in relative order: %v", orders)
	}
}

func TestReorderRejectsForeignCategory(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormCategoryRepository(db)
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")
	foreign := seedCategory(t, db, other.ID, "Theirs")
	mine := seedCategory(t, db, owner.ID, "Mine")

	err := repo.Reorder(owner.ID, []uint{foreign.ID, mine.ID})
	if !errors.Is(err, ErrCategoryNotOwned) {
		t.Fatalf("Reorder with foreign id returned %v, want ErrCategoryNotOwned", err)
	}

	// the rejected submission must not have moved anything
	orders := categoryOrders(t, repo, other.ID)
	if orders[foreign.ID] != foreign.Order {
		t.Errorf("foreign category order changed to %d", orders[foreign.ID])
	}
}

func TestListMediaMergedOrdering(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormCategoryRepository(db)
	user := seedUser(t, db, "owner@example.com")
	cat := seedCategory(t, db, user.ID, "Work")

	mustCreateImage := func(url string, pos int) *models.ProjectImage {
		img := &models.ProjectImage{ImageURL: url, Position: pos, CategoryID: cat.ID}
		if err := repo.CreateImage(img); err != nil {
			t.Fatalf("CreateImage: %v", err)
		}
		return img
	}
	mustCreateVideo := func(url string, pos int) *models.ProjectVideo {
		vid := &models.ProjectVideo{VideoURL: url, Position: pos, CategoryID: cat.ID}
		if err := repo.CreateVideo(vid); err != nil {
			t.Fatalf("CreateVideo: %v", err)
		}
		return vid
	}

	mustCreateImage("/uploads/projects/images/late.png", 5)
	mustCreateVideo("/uploads/projects/videos/first.mp4", 1)
	mustCreateImage("/uploads/projects/images/second.png", 2)

	entries, err := repo.ListMedia(cat.ID)
	if err != nil {
		t.Fatalf("ListMedia: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("ListMedia returned %d entries, want 3", len(entries))
	}

	wantKinds := []string{"video", "image", "image"}
	wantPositions := []int{1, 2, 5}
	for i := range entries {
		if entries[i].Kind != wantKinds[i] || entries[i].Position != wantPositions[i] {
			t.Errorf("entry %d = %s@%d, want %s@%d",
				i, entries[i].Kind, entries[i].Position, wantKinds[i], wantPositions[i])
		}
	}
	if entries[0].VideoURL == "" || entries[1].ImageURL == "" {
		t.Error("kind-specific URL fields not populated")
	}
}

func TestNextMediaPosition(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormCategoryRepository(db)
	user := seedUser(t, db, "owner@example.com")
	cat := seedCategory(t, db, user.ID, "Work")

	next, err := repo.NextMediaPosition(cat.ID)
	if err != nil {
		t.Fatalf("NextMediaPosition: %v", err)
	}
	if next != 1 {
		t.Errorf("empty category next position = %d, want 1", next)
	}

	img := &models.ProjectImage{ImageURL: "a.png", Position: 4, CategoryID: cat.ID}
	if err := repo.CreateImage(img); err != nil {
		t.Fatalf("CreateImage: %v", err)
	}
	vid := &models.ProjectVideo{VideoURL: "b.mp4", Position: 7, CategoryID: cat.ID}
	if err := repo.CreateVideo(vid); err != nil {
		t.Fatalf("CreateVideo: %v", err)
	}

	next, err = repo.NextMediaPosition(cat.ID)
	if err != nil {
		t.Fatalf("NextMediaPosition: %v", err)
	}
	if next != 8 {
		t.Errorf("next position = %d, want 8 (max across both tables + 1)", next)
	}
}

func TestDeleteCascadeCountsRows(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormCategoryRepository(db)
	user := seedUser(t, db, "owner@example.com")
	cat := seedCategory(t, db, user.ID, "Work")

	for i := 0; i < 2; i++ {
		img := &models.ProjectImage{ImageURL: "img.png", Position: i, CategoryID: cat.ID}
		if err := repo.CreateImage(img); err != nil {
			t.Fatalf("CreateImage: %v", err)
		}
	}
	vid := &models.ProjectVideo{VideoURL: "v.mp4", Position: 3, CategoryID: cat.ID}
	if err := repo.CreateVideo(vid); err != nil {
		t.Fatalf("CreateVideo: %v", err)
	}

	rows, err := repo.DeleteCascade(cat.ID)
	if err != nil {
		t.Fatalf("DeleteCascade: %v", err)
	}
	if rows != 4 {
		t.Errorf("DeleteCascade removed %d rows, want 4 (2 images + 1 video + category)", rows)
	}

	if _, err := repo.GetByID(cat.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("category still present after cascade: %v", err)
	}
}

func TestDeleteCascadeMissingCategory(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormCategoryRepository(db)

	if _, err := repo.DeleteCascade(999); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("DeleteCascade(999) = %v, want ErrRecordNotFound", err)
	}
}

func TestCategorySlugAssignedOnCreate(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormCategoryRepository(db)
	user := seedUser(t, db, "owner@example.com")

	cat := &models.Category{Name: "Café Noir!!", UserID: user.ID}
	if err := repo.Create(cat); err != nil {
		t.Fatalf("Create: %v", err)
	}

	stored, err := repo.GetByID(cat.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Slug != "caf-noir" {
		t.Errorf("stored slug = %q, want %q", stored.Slug, "caf-noir")
	}
}
