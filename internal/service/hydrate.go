package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/chromastyle/closet/internal/domain"
)

// OutfitItemView is one resolved item reference. When the referenced item
// has been deleted the reference is kept and flagged unavailable instead of
// being dropped.
type OutfitItemView struct {
	ItemID      string
	Item        *domain.ClothingItem
	Unavailable bool
}

// OutfitView is a fully populated read-side projection of an outfit.
// Creator is attached for feed and collection views and nil otherwise.
type OutfitView struct {
	domain.Outfit
	Items   []OutfitItemView
	Creator *domain.User
}

// CommentView is a comment joined with its author. Author is nil when the
// user record no longer resolves.
type CommentView struct {
	domain.Comment
	Author *domain.User
}

// hydrator performs the read-side joins. It never mutates the store; cost is
// one indexed lookup per distinct foreign key value.
type hydrator struct {
	items domain.ItemRepository
	users domain.UserRepository
}

// outfits resolves item references for each outfit and, when withCreator is
// set, attaches the owning user. Outfits whose creator no longer exists are
// excluded from creator-bearing views.
func (h *hydrator) outfits(ctx context.Context, outfits []domain.Outfit, withCreator bool) ([]OutfitView, error) {
	if len(outfits) == 0 {
		return []OutfitView{}, nil
	}

	itemIDs := dedup(outfits, func(o domain.Outfit) []string { return o.ItemIDs })
	itemsByID, err := h.items.GetByIDs(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve item references: %w", err)
	}

	var creators map[string]*domain.User
	if withCreator {
		creators = make(map[string]*domain.User)
		for _, id := range dedup(outfits, func(o domain.Outfit) []string { return []string{o.UserID} }) {
			user, err := h.users.GetByID(ctx, id)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					continue
				}
				return nil, fmt.Errorf("resolve creator: %w", err)
			}
			creators[id] = user
		}
	}

	views := make([]OutfitView, 0, len(outfits))
	for _, outfit := range outfits {
		view := OutfitView{Outfit: outfit, Items: make([]OutfitItemView, 0, len(outfit.ItemIDs))}
		for _, id := range outfit.ItemIDs {
			item, ok := itemsByID[id]
			view.Items = append(view.Items, OutfitItemView{ItemID: id, Item: item, Unavailable: !ok})
		}
		if withCreator {
			creator, ok := creators[outfit.UserID]
			if !ok {
				continue
			}
			view.Creator = creator
		}
		views = append(views, view)
	}
	return views, nil
}

// comments attaches each comment's author.
func (h *hydrator) comments(ctx context.Context, comments []domain.Comment) ([]CommentView, error) {
	authors := make(map[string]*domain.User)
	for _, c := range comments {
		if _, seen := authors[c.UserID]; seen {
			continue
		}
		user, err := h.users.GetByID(ctx, c.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				authors[c.UserID] = nil
				continue
			}
			return nil, fmt.Errorf("resolve comment author: %w", err)
		}
		authors[c.UserID] = user
	}

	views := make([]CommentView, len(comments))
	for i, c := range comments {
		views[i] = CommentView{Comment: c, Author: authors[c.UserID]}
	}
	return views, nil
}

// dedup collects distinct foreign key values in first-seen order.
func dedup(outfits []domain.Outfit, keys func(domain.Outfit) []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, o := range outfits {
		for _, k := range keys(o) {
			if k == "" || seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
