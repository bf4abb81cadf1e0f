package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// LoginHistoryCap bounds the stored login history per user.
const LoginHistoryCap = 100

// StyleDNA is an AI-generated style report. The core persists it verbatim
// and never interprets it beyond (de)serialization.
type StyleDNA struct {
	CoreAesthetic struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"coreAesthetic"`
	ColorPalette struct {
		Name        string   `json:"name"`
		Colors      []string `json:"colors"`
		Description string   `json:"description"`
	} `json:"colorPalette"`
	StyleGaps []struct {
		Name   string `json:"name"`
		Reason string `json:"reason"`
	} `json:"styleGaps"`
	KeyPieces []struct {
		ItemID string `json:"itemId"`
		Reason string `json:"reason"`
	} `json:"keyPieces"`
}

// User represents a registered user of the application.
type User struct {
	ID                 string
	Name               string
	Email              string
	PasswordHash       string
	AvatarURL          string
	Roles              []Role
	TryOnImageURL      string
	StyleDNA           *StyleDNA
	LastLogin          *time.Time
	LoginHistory       []time.Time
	LoginStreak        int
	Achievements       []string
	CollectedOutfitIDs []string
	ResetToken         string
	ResetTokenExpiry   *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAchievement reports whether the achievement id has already been granted.
func (u *User) HasAchievement(id string) bool {
	for _, a := range u.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// GetByResetToken returns the user holding a live or expired reset token.
	GetByResetToken(ctx context.Context, token string) (*User, error)
	GetAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user *User) error
	Count(ctx context.Context) (int, error)
}
