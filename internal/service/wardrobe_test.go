package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/chromastyle/closet/internal/domain"
	"github.com/chromastyle/closet/internal/service"
)

func TestWardrobeService_AddItems(t *testing.T) {
	db := newTestDB(t)
	wardrobe := service.NewWardrobeService(db.Items())
	ctx := context.Background()

	added, err := wardrobe.AddItems(ctx, "user-1", []service.ItemAnalysis{
		{Name: "Blue Oxford Shirt", Category: domain.CategoryTop, Color: "Blue", Style: "Smart Casual"},
		{Name: "Black Chinos", Category: domain.CategoryBottom, Color: "Black"},
	})
	if err != nil {
		t.Fatalf("AddItems: %v", err)
	}
	if len(added) != 2 {
		t.Fatalf("expected 2 items, got %d", len(added))
	}
	for _, item := range added {
		if item.ID == "" {
			t.Fatal("expected item ids to be assigned")
		}
		if item.UserID != "user-1" {
			t.Fatalf("expected owner user-1, got %s", item.UserID)
		}
	}

	size, err := wardrobe.WardrobeSize(ctx, "user-1")
	if err != nil {
		t.Fatalf("WardrobeSize: %v", err)
	}
	if size != 2 {
		t.Fatalf("expected wardrobe size 2, got %d", size)
	}
}

func TestWardrobeService_AddItems_RejectsUnknownCategory(t *testing.T) {
	db := newTestDB(t)
	wardrobe := service.NewWardrobeService(db.Items())
	ctx := context.Background()

	_, err := wardrobe.AddItems(ctx, "user-1", []service.ItemAnalysis{
		{Name: "Good Item", Category: domain.CategoryTop},
		{Name: "Bad Item", Category: "Hat"},
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	// Validation happens up front: nothing from the batch is persisted.
	size, err := wardrobe.WardrobeSize(ctx, "user-1")
	if err != nil {
		t.Fatalf("WardrobeSize: %v", err)
	}
	if size != 0 {
		t.Fatalf("expected no items persisted, got %d", size)
	}
}

func TestWardrobeService_AddItems_RequiresName(t *testing.T) {
	db := newTestDB(t)
	wardrobe := service.NewWardrobeService(db.Items())

	_, err := wardrobe.AddItems(context.Background(), "user-1", []service.ItemAnalysis{
		{Category: domain.CategoryTop},
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestWardrobeService_UpdateItem_OwnershipCheck(t *testing.T) {
	db := newTestDB(t)
	wardrobe := service.NewWardrobeService(db.Items())
	ctx := context.Background()

	item := seedWardrobeItem(t, db, "owner", "Shirt")

	item.Name = "Stolen Shirt"
	if err := wardrobe.UpdateItem(ctx, "intruder", item); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	item.Name = "Renamed Shirt"
	if err := wardrobe.UpdateItem(ctx, "owner", item); err != nil {
		t.Fatalf("UpdateItem as owner: %v", err)
	}
}

func TestWardrobeService_DeleteItems_AllOrNothing(t *testing.T) {
	db := newTestDB(t)
	wardrobe := service.NewWardrobeService(db.Items())
	ctx := context.Background()

	a := seedWardrobeItem(t, db, "user-1", "A")
	b := seedWardrobeItem(t, db, "user-1", "B")

	err := wardrobe.DeleteItems(ctx, "user-1", []string{a.ID, "missing", b.ID})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	size, err := wardrobe.WardrobeSize(ctx, "user-1")
	if err != nil {
		t.Fatalf("WardrobeSize: %v", err)
	}
	if size != 2 {
		t.Fatalf("expected both items to survive, got %d", size)
	}

	if err := wardrobe.DeleteItems(ctx, "user-1", []string{a.ID, b.ID}); err != nil {
		t.Fatalf("DeleteItems: %v", err)
	}
	size, err = wardrobe.WardrobeSize(ctx, "user-1")
	if err != nil {
		t.Fatalf("WardrobeSize: %v", err)
	}
	if size != 0 {
		t.Fatalf("expected empty wardrobe, got %d", size)
	}
}

func TestWardrobeService_DeleteItems_ForeignItemBlocksBatch(t *testing.T) {
	db := newTestDB(t)
	wardrobe := service.NewWardrobeService(db.Items())
	ctx := context.Background()

	mine := seedWardrobeItem(t, db, "user-1", "Mine")
	theirs := seedWardrobeItem(t, db, "user-2", "Theirs")

	err := wardrobe.DeleteItems(ctx, "user-1", []string{mine.ID, theirs.ID})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	// Neither record was touched.
	if _, err := db.Items().GetByID(ctx, mine.ID); err != nil {
		t.Fatalf("expected my item to survive: %v", err)
	}
	if _, err := db.Items().GetByID(ctx, theirs.ID); err != nil {
		t.Fatalf("expected their item to survive: %v", err)
	}
}
