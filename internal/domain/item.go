package domain

import (
	"context"
	"time"
)

// ClothingCategory is the closed set of wardrobe categories. AI analysis
// output is checked against it before persisting; nothing else about AI
// output is validated.
type ClothingCategory string

const (
	CategoryTop       ClothingCategory = "Top"
	CategoryBottom    ClothingCategory = "Bottom"
	CategoryOuterwear ClothingCategory = "Outerwear"
	CategoryFootwear  ClothingCategory = "Footwear"
	CategoryAccessory ClothingCategory = "Accessory"
	CategoryDress     ClothingCategory = "Dress"
)

// Valid reports whether the category is a member of the closed enum.
func (c ClothingCategory) Valid() bool {
	switch c {
	case CategoryTop, CategoryBottom, CategoryOuterwear, CategoryFootwear, CategoryAccessory, CategoryDress:
		return true
	}
	return false
}

// ClothingItem is a single cataloged wardrobe item. ImageURL is an opaque
// reference produced by the upload client; the core stores it verbatim.
type ClothingItem struct {
	ID           string
	UserID       string
	Name         string
	Category     ClothingCategory
	Color        string
	Style        string
	ImageURL     string
	PurchaseDate time.Time
	CreatedAt    time.Time
}

// ItemRepository defines persistence operations for clothing items.
type ItemRepository interface {
	Create(ctx context.Context, item *ClothingItem) error
	// CreateMany inserts all items in one unit of work: if any insert
	// fails, none are applied.
	CreateMany(ctx context.Context, items []*ClothingItem) error
	GetByID(ctx context.Context, id string) (*ClothingItem, error)
	// GetByIDs returns the items that exist among ids, keyed by id.
	// Missing ids are simply absent from the result.
	GetByIDs(ctx context.Context, ids []string) (map[string]*ClothingItem, error)
	GetByUser(ctx context.Context, userID string) ([]ClothingItem, error)
	GetAll(ctx context.Context) ([]ClothingItem, error)
	Update(ctx context.Context, item *ClothingItem) error
	Delete(ctx context.Context, id string) error
	// DeleteMany deletes all ids in one unit of work: if any id does not
	// exist, no deletion is applied.
	DeleteMany(ctx context.Context, ids []string) error
	CountByUser(ctx context.Context, userID string) (int, error)
}
