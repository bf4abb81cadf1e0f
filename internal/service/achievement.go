package service

import (
	"context"
	"fmt"

	"github.com/chromastyle/closet/internal/domain"
)

// AchievementPayload carries the counters evaluated against the rule table.
// Nil counters mean "not measured this time" and trigger no rules.
type AchievementPayload struct {
	WardrobeSize      *int
	SavedOutfitsCount *int
	HasShared         bool
}

// achievementRule links a predicate over the payload to the badge it grants.
type achievementRule struct {
	id        string
	satisfied func(AchievementPayload) bool
}

// Rules are independent and monotonic: evaluation order does not matter,
// and re-running with equal or higher counters never changes the outcome.
var achievementRules = []achievementRule{
	{domain.AchievementNoviceCollector, func(p AchievementPayload) bool {
		return p.WardrobeSize != nil && *p.WardrobeSize >= 10
	}},
	{domain.AchievementFashionista, func(p AchievementPayload) bool {
		return p.WardrobeSize != nil && *p.WardrobeSize >= 50
	}},
	{domain.AchievementStyleSavant, func(p AchievementPayload) bool {
		return p.WardrobeSize != nil && *p.WardrobeSize >= 100
	}},
	{domain.AchievementOutfitArchitect, func(p AchievementPayload) bool {
		return p.SavedOutfitsCount != nil && *p.SavedOutfitsCount >= 10
	}},
	{domain.AchievementSocialButterfly, func(p AchievementPayload) bool {
		return p.HasShared
	}},
}

// AchievementService evaluates counters against fixed thresholds and awards
// each badge at most once. Granted badges are never revoked.
type AchievementService struct {
	users   domain.UserRepository
	session *SessionHolder
}

// NewAchievementService creates a new AchievementService.
func NewAchievementService(users domain.UserRepository, session *SessionHolder) *AchievementService {
	return &AchievementService{users: users, session: session}
}

// CheckAndAward evaluates the rule table for a user and persists any newly
// satisfied badges, returning their ids. A call that grants nothing writes
// nothing.
func (s *AchievementService) CheckAndAward(ctx context.Context, userID string, payload AchievementPayload) ([]string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var granted []string
	for _, rule := range achievementRules {
		if !rule.satisfied(payload) || user.HasAchievement(rule.id) {
			continue
		}
		user.Achievements = append(user.Achievements, rule.id)
		granted = append(granted, rule.id)
	}

	if len(granted) == 0 {
		return nil, nil
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("persist achievements: %w", err)
	}

	s.session.refresh(user)
	return granted, nil
}
