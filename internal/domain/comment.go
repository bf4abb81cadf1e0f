package domain

import (
	"context"
	"time"
)

// Comment is a user comment on a published outfit. Comments are created on
// post and never mutated or deleted by the user-facing surface.
type Comment struct {
	ID        string
	OutfitID  string
	UserID    string
	Text      string
	CreatedAt time.Time
}

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	// GetByOutfit returns comments for an outfit, oldest first.
	GetByOutfit(ctx context.Context, outfitID string) ([]Comment, error)
}
