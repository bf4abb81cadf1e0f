package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/chromastyle/closet/internal/domain"
)

func seedItem(t *testing.T, repo domain.ItemRepository, userID, name string) *domain.ClothingItem {
	t.Helper()
	item := &domain.ClothingItem{
		UserID:   userID,
		Name:     name,
		Category: domain.CategoryTop,
		Color:    "Blue",
		Style:    "Casual",
		ImageURL: "https://example.com/item.jpg",
	}
	if err := repo.Create(context.Background(), item); err != nil {
		t.Fatalf("Create item %s: %v", name, err)
	}
	return item
}

func TestItemRepository_Create(t *testing.T) {
	db := newTestDB(t)
	repo := db.Items()

	item := seedItem(t, repo, "user-1", "Blue Oxford Shirt")

	if item.ID == "" {
		t.Fatal("expected item ID to be assigned on create")
	}
	if item.PurchaseDate.IsZero() {
		t.Fatal("expected purchase date to default to now")
	}
}

func TestItemRepository_Create_DuplicateID(t *testing.T) {
	db := newTestDB(t)
	repo := db.Items()

	existing := seedItem(t, repo, "user-1", "Original")

	clash := &domain.ClothingItem{ID: existing.ID, UserID: "user-1", Name: "Clash", Category: domain.CategoryTop}
	if err := repo.Create(context.Background(), clash); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate id, got %v", err)
	}
}

func TestItemRepository_CreateMany_AllOrNothing(t *testing.T) {
	db := newTestDB(t)
	repo := db.Items()
	ctx := context.Background()

	existing := seedItem(t, repo, "user-1", "Existing")

	// A duplicate primary key anywhere in the batch must roll back the
	// entire batch.
	batch := []*domain.ClothingItem{
		{UserID: "user-1", Name: "Fresh", Category: domain.CategoryBottom},
		{ID: existing.ID, UserID: "user-1", Name: "Clash", Category: domain.CategoryTop},
	}
	if err := repo.CreateMany(ctx, batch); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate id, got %v", err)
	}

	count, err := repo.CountByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("CountByUser: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected rollback to leave 1 item, got %d", count)
	}
}

func TestItemRepository_GetByUser(t *testing.T) {
	db := newTestDB(t)
	repo := db.Items()
	ctx := context.Background()

	seedItem(t, repo, "user-1", "Shirt")
	seedItem(t, repo, "user-1", "Jeans")
	seedItem(t, repo, "user-2", "Boots")

	items, err := repo.GetByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items for user-1, got %d", len(items))
	}
	for _, item := range items {
		if item.UserID != "user-1" {
			t.Fatalf("got item owned by %s", item.UserID)
		}
	}
}

func TestItemRepository_GetByIDs_SkipsMissing(t *testing.T) {
	db := newTestDB(t)
	repo := db.Items()
	ctx := context.Background()

	item := seedItem(t, repo, "user-1", "Shirt")

	found, err := repo.GetByIDs(ctx, []string{item.ID, "missing-id"})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 item, got %d", len(found))
	}
	if _, ok := found[item.ID]; !ok {
		t.Fatal("expected existing item in result")
	}
}

func TestItemRepository_Update(t *testing.T) {
	db := newTestDB(t)
	repo := db.Items()
	ctx := context.Background()

	item := seedItem(t, repo, "user-1", "Shirt")
	item.Name = "White Shirt"
	item.Category = domain.CategoryOuterwear

	if err := repo.Update(ctx, item); err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, err := repo.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found.Name != "White Shirt" || found.Category != domain.CategoryOuterwear {
		t.Fatalf("update did not persist: %+v", found)
	}
}

func TestItemRepository_Delete_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.Items().Delete(context.Background(), "no-such-item")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestItemRepository_DeleteMany_AllOrNothing(t *testing.T) {
	db := newTestDB(t)
	repo := db.Items()
	ctx := context.Background()

	a := seedItem(t, repo, "user-1", "A")
	b := seedItem(t, repo, "user-1", "B")

	// One missing id fails the whole batch; both existing items survive.
	err := repo.DeleteMany(ctx, []string{a.ID, "missing-id", b.ID})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	count, err := repo.CountByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("CountByUser: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected both items to survive rollback, got %d", count)
	}

	// A clean batch deletes everything.
	if err := repo.DeleteMany(ctx, []string{a.ID, b.ID}); err != nil {
		t.Fatalf("DeleteMany: %v", err)
	}
	count, err = repo.CountByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("CountByUser: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 items after delete, got %d", count)
	}
}
