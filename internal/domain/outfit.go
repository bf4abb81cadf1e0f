package domain

import (
	"context"
	"time"
)

// Outfit is a saved outfit. Items are held as weak references by id and
// resolved to full records only at read time; references are never
// re-validated after an item is deleted.
type Outfit struct {
	ID          string
	UserID      string
	Name        string
	Occasion    string
	Explanation string
	ItemIDs     []string
	IsPublic    bool
	Likes       []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LikedBy reports whether userID is in the like-set.
func (o *Outfit) LikedBy(userID string) bool {
	for _, id := range o.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// OutfitRepository defines persistence operations for saved outfits.
type OutfitRepository interface {
	Create(ctx context.Context, outfit *Outfit) error
	GetByID(ctx context.Context, id string) (*Outfit, error)
	// GetByIDs returns the outfits that exist among ids, keyed by id.
	GetByIDs(ctx context.Context, ids []string) (map[string]*Outfit, error)
	GetByUser(ctx context.Context, userID string) ([]Outfit, error)
	GetAll(ctx context.Context) ([]Outfit, error)
	// GetPublic returns all outfits with the publication flag set, in
	// insertion order.
	GetPublic(ctx context.Context) ([]Outfit, error)
	Update(ctx context.Context, outfit *Outfit) error
	Delete(ctx context.Context, id string) error
	CountByUser(ctx context.Context, userID string) (int, error)
}
