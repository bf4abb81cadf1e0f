package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/chromastyle/closet/internal/domain"
)

const (
	// FeedPageSize is the fixed number of outfits per feed page.
	FeedPageSize = 9
	// likeWeight trades one like for roughly two days of freshness.
	likeWeight = 2
)

// FeedPage is one fixed-size slice of the ranked community feed.
type FeedPage struct {
	Outfits []OutfitView
	HasMore bool
}

// CommunityService serves the ranked feed and the engagement operations
// built on it: like/collect toggles, collected-outfit views, and comments.
type CommunityService struct {
	outfits  domain.OutfitRepository
	items    domain.ItemRepository
	users    domain.UserRepository
	comments domain.CommentRepository
	session  *SessionHolder
	now      func() time.Time
}

// NewCommunityService creates a new CommunityService.
func NewCommunityService(outfits domain.OutfitRepository, items domain.ItemRepository, users domain.UserRepository, comments domain.CommentRepository, session *SessionHolder) *CommunityService {
	return &CommunityService{
		outfits:  outfits,
		items:    items,
		users:    users,
		comments: comments,
		session:  session,
		now:      time.Now,
	}
}

// GetPublicOutfits returns page p (1-based) of the community feed, ordered
// by a composite popularity/freshness score. For a fixed data snapshot the
// same page number always yields the same slice: ties in score break by
// creation time and then id, so rows never straddle pages nondeterministically.
func (s *CommunityService) GetPublicOutfits(ctx context.Context, page int) (*FeedPage, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be >= 1", domain.ErrInvalidInput)
	}

	candidates, err := s.outfits.GetPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("list public outfits: %w", err)
	}

	h := hydrator{items: s.items, users: s.users}
	views, err := h.outfits(ctx, candidates, true)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	sort.Slice(views, func(i, j int) bool {
		si, sj := outfitScore(&views[i].Outfit, now), outfitScore(&views[j].Outfit, now)
		if si != sj {
			return si > sj
		}
		if !views[i].CreatedAt.Equal(views[j].CreatedAt) {
			return views[i].CreatedAt.After(views[j].CreatedAt)
		}
		return views[i].ID > views[j].ID
	})

	start := (page - 1) * FeedPageSize
	end := page * FeedPageSize
	if start >= len(views) {
		return &FeedPage{Outfits: []OutfitView{}, HasMore: false}, nil
	}
	if end > len(views) {
		end = len(views)
	}
	return &FeedPage{Outfits: views[start:end], HasMore: len(views) > page*FeedPageSize}, nil
}

// outfitScore favors both popularity and freshness: each like is worth
// about two days of age.
func outfitScore(o *domain.Outfit, now time.Time) float64 {
	ageDays := now.Sub(o.CreatedAt).Hours() / 24
	return float64(len(o.Likes)*likeWeight) - ageDays
}

// ToggleLike flips userID's membership in the outfit's like-set and returns
// the updated outfit. The flip is a read-modify-write, not an atomic set
// operation; two interleaved toggles on the same outfit can lose one flip.
func (s *CommunityService) ToggleLike(ctx context.Context, outfitID, userID string) (*domain.Outfit, error) {
	outfit, err := s.outfits.GetByID(ctx, outfitID)
	if err != nil {
		return nil, err
	}

	outfit.Likes = toggleMembership(outfit.Likes, userID)
	if err := s.outfits.Update(ctx, outfit); err != nil {
		return nil, fmt.Errorf("toggle like: %w", err)
	}
	return outfit, nil
}

// ToggleCollect flips outfitID's membership in the user's collected list,
// refreshes the session holder, and returns the updated user. Same
// read-modify-write caveat as ToggleLike.
func (s *CommunityService) ToggleCollect(ctx context.Context, outfitID, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.CollectedOutfitIDs = toggleMembership(user.CollectedOutfitIDs, outfitID)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("toggle collect: %w", err)
	}

	s.session.refresh(user)
	return user, nil
}

// GetCollectedOutfits resolves a user's collected outfit ids into hydrated
// views with creators, in collection order. Ids whose outfit or creator has
// been deleted are skipped.
func (s *CommunityService) GetCollectedOutfits(ctx context.Context, userID string) ([]OutfitView, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.CollectedOutfitIDs) == 0 {
		return []OutfitView{}, nil
	}

	byID, err := s.outfits.GetByIDs(ctx, user.CollectedOutfitIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve collected outfits: %w", err)
	}

	outfits := make([]domain.Outfit, 0, len(user.CollectedOutfitIDs))
	for _, id := range user.CollectedOutfitIDs {
		if outfit, ok := byID[id]; ok {
			outfits = append(outfits, *outfit)
		}
	}

	h := hydrator{items: s.items, users: s.users}
	return h.outfits(ctx, outfits, true)
}

// AddComment posts a comment on an outfit and returns it joined with its
// author. Comments are never mutated or deleted afterwards.
func (s *CommunityService) AddComment(ctx context.Context, outfitID, userID, text string) (*CommentView, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", domain.ErrInvalidInput)
	}

	if _, err := s.outfits.GetByID(ctx, outfitID); err != nil {
		return nil, err
	}
	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{OutfitID: outfitID, UserID: userID, Text: text}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return &CommentView{Comment: *comment, Author: author}, nil
}

// GetComments returns an outfit's comments, oldest first, with authors
// attached.
func (s *CommunityService) GetComments(ctx context.Context, outfitID string) ([]CommentView, error) {
	comments, err := s.comments.GetByOutfit(ctx, outfitID)
	if err != nil {
		return nil, err
	}
	h := hydrator{items: s.items, users: s.users}
	return h.comments(ctx, comments)
}

// toggleMembership removes value if present, appends it otherwise. The
// result never holds duplicates as long as the input held none.
func toggleMembership(set []string, value string) []string {
	for i, v := range set {
		if v == value {
			return append(set[:i:i], set[i+1:]...)
		}
	}
	return append(set, value)
}
