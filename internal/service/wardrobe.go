package service

import (
	"context"
	"fmt"
	"time"

	"github.com/chromastyle/closet/internal/domain"
	"github.com/go-playground/validator/v10"
)

// ItemAnalysis is the AI client's analysis of one uploaded garment photo
// plus the opaque image reference from the upload client. The core persists
// it as-is; only the category is checked against the closed enum.
type ItemAnalysis struct {
	Name     string                  `validate:"required,max=200"`
	Category domain.ClothingCategory `validate:"required"`
	Color    string
	Style    string
	ImageURL string
}

// WardrobeService handles cataloging, editing, and deleting clothing items.
type WardrobeService struct {
	items    domain.ItemRepository
	validate *validator.Validate
}

// NewWardrobeService creates a new WardrobeService.
func NewWardrobeService(items domain.ItemRepository) *WardrobeService {
	return &WardrobeService{items: items, validate: validator.New()}
}

// AddItems catalogs a batch of analyzed items for a user. All inputs are
// validated up front and the batch is inserted as one all-or-nothing unit.
func (s *WardrobeService) AddItems(ctx context.Context, userID string, analyses []ItemAnalysis) ([]domain.ClothingItem, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	items := make([]*domain.ClothingItem, 0, len(analyses))
	for _, a := range analyses {
		if err := s.validate.Struct(a); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		if !a.Category.Valid() {
			return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, a.Category)
		}
		items = append(items, &domain.ClothingItem{
			UserID:       userID,
			Name:         a.Name,
			Category:     a.Category,
			Color:        a.Color,
			Style:        a.Style,
			ImageURL:     a.ImageURL,
			PurchaseDate: now,
		})
	}

	if err := s.items.CreateMany(ctx, items); err != nil {
		return nil, fmt.Errorf("add items: %w", err)
	}

	added := make([]domain.ClothingItem, len(items))
	for i, item := range items {
		added[i] = *item
	}
	return added, nil
}

// GetWardrobe returns a user's items, newest first.
func (s *WardrobeService) GetWardrobe(ctx context.Context, userID string) ([]domain.ClothingItem, error) {
	return s.items.GetByUser(ctx, userID)
}

// GetAllItems returns every cataloged item, for the admin dashboard.
func (s *WardrobeService) GetAllItems(ctx context.Context) ([]domain.ClothingItem, error) {
	return s.items.GetAll(ctx)
}

// UpdateItem persists an edit after an ownership check and category
// validation.
func (s *WardrobeService) UpdateItem(ctx context.Context, userID string, item *domain.ClothingItem) error {
	existing, err := s.items.GetByID(ctx, item.ID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return domain.ErrUnauthorized
	}
	if !item.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, item.Category)
	}

	return s.items.Update(ctx, item)
}

// DeleteItem removes a single item after an ownership check. Outfits
// referencing the item keep their stale reference; hydration reports the
// item as unavailable.
func (s *WardrobeService) DeleteItem(ctx context.Context, userID, itemID string) error {
	existing, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return domain.ErrUnauthorized
	}

	return s.items.Delete(ctx, itemID)
}

// DeleteItems removes a batch of items. Every id must exist and belong to
// the user, otherwise nothing is deleted.
func (s *WardrobeService) DeleteItems(ctx context.Context, userID string, itemIDs []string) error {
	if len(itemIDs) == 0 {
		return nil
	}

	existing, err := s.items.GetByIDs(ctx, itemIDs)
	if err != nil {
		return fmt.Errorf("check items: %w", err)
	}
	for _, id := range itemIDs {
		item, ok := existing[id]
		if !ok {
			return fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
		}
		if item.UserID != userID {
			return domain.ErrUnauthorized
		}
	}

	return s.items.DeleteMany(ctx, itemIDs)
}

// WardrobeSize returns the number of items a user has cataloged.
func (s *WardrobeService) WardrobeSize(ctx context.Context, userID string) (int, error) {
	return s.items.CountByUser(ctx, userID)
}
