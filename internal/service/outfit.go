package service

import (
	"context"
	"fmt"

	"github.com/chromastyle/closet/internal/domain"
	"github.com/go-playground/validator/v10"
)

// SaveOutfitInput is the payload for saving an outfit, typically produced by
// the generative-AI client and persisted as-is.
type SaveOutfitInput struct {
	Name        string   `validate:"required,max=200"`
	Occasion    string   `validate:"max=200"`
	Explanation string
	ItemIDs     []string `validate:"required,min=1,dive,required"`
}

// OutfitService handles saving, renaming, publishing, and deleting outfits.
type OutfitService struct {
	outfits  domain.OutfitRepository
	items    domain.ItemRepository
	users    domain.UserRepository
	validate *validator.Validate
}

// NewOutfitService creates a new OutfitService.
func NewOutfitService(outfits domain.OutfitRepository, items domain.ItemRepository, users domain.UserRepository) *OutfitService {
	return &OutfitService{outfits: outfits, items: items, users: users, validate: validator.New()}
}

// Save stores a new private outfit. Every item reference must resolve to an
// item owned by the saving user at creation time; references are not
// re-validated after later item deletions.
func (s *OutfitService) Save(ctx context.Context, userID string, in SaveOutfitInput) (*domain.Outfit, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	items, err := s.items.GetByIDs(ctx, in.ItemIDs)
	if err != nil {
		return nil, fmt.Errorf("check outfit items: %w", err)
	}
	for _, id := range in.ItemIDs {
		item, ok := items[id]
		if !ok {
			return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
		}
		if item.UserID != userID {
			return nil, domain.ErrUnauthorized
		}
	}

	outfit := &domain.Outfit{
		UserID:      userID,
		Name:        in.Name,
		Occasion:    in.Occasion,
		Explanation: in.Explanation,
		ItemIDs:     in.ItemIDs,
		IsPublic:    false,
		Likes:       []string{},
	}
	if err := s.outfits.Create(ctx, outfit); err != nil {
		return nil, fmt.Errorf("save outfit: %w", err)
	}
	return outfit, nil
}

// GetSaved returns a user's saved outfits with item references resolved.
func (s *OutfitService) GetSaved(ctx context.Context, userID string) ([]OutfitView, error) {
	outfits, err := s.outfits.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	h := hydrator{items: s.items, users: s.users}
	return h.outfits(ctx, outfits, false)
}

// GetAllSaved returns every saved outfit across all users, for the admin
// dashboard.
func (s *OutfitService) GetAllSaved(ctx context.Context) ([]domain.Outfit, error) {
	return s.outfits.GetAll(ctx)
}

// Rename changes only the outfit's name, after an ownership check.
func (s *OutfitService) Rename(ctx context.Context, userID, outfitID, name string) (*domain.Outfit, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	outfit, err := s.ownedOutfit(ctx, userID, outfitID)
	if err != nil {
		return nil, err
	}

	outfit.Name = name
	if err := s.outfits.Update(ctx, outfit); err != nil {
		return nil, fmt.Errorf("rename outfit: %w", err)
	}
	return outfit, nil
}

// Publish sets the publication flag, making the outfit a feed candidate,
// and returns the hydrated view.
func (s *OutfitService) Publish(ctx context.Context, userID, outfitID string) (*OutfitView, error) {
	outfit, err := s.ownedOutfit(ctx, userID, outfitID)
	if err != nil {
		return nil, err
	}

	outfit.IsPublic = true
	if err := s.outfits.Update(ctx, outfit); err != nil {
		return nil, fmt.Errorf("publish outfit: %w", err)
	}

	h := hydrator{items: s.items, users: s.users}
	views, err := h.outfits(ctx, []domain.Outfit{*outfit}, true)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, domain.ErrNotFound
	}
	return &views[0], nil
}

// Delete removes an outfit after an ownership check. Collected references
// held by other users go stale and are skipped at read time.
func (s *OutfitService) Delete(ctx context.Context, userID, outfitID string) error {
	if _, err := s.ownedOutfit(ctx, userID, outfitID); err != nil {
		return err
	}
	return s.outfits.Delete(ctx, outfitID)
}

// SavedCount returns how many outfits a user has saved.
func (s *OutfitService) SavedCount(ctx context.Context, userID string) (int, error) {
	return s.outfits.CountByUser(ctx, userID)
}

func (s *OutfitService) ownedOutfit(ctx context.Context, userID, outfitID string) (*domain.Outfit, error) {
	outfit, err := s.outfits.GetByID(ctx, outfitID)
	if err != nil {
		return nil, err
	}
	if outfit.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return outfit, nil
}
