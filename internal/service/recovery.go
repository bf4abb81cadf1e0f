package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/chromastyle/closet/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// resetTokenTTL is how long a password-reset token stays valid after issue.
const resetTokenTTL = 15 * time.Minute

// RecoveryService implements the password-reset token lifecycle:
// NoToken → TokenIssued → (Consumed | Expired) → NoToken.
type RecoveryService struct {
	users      domain.UserRepository
	bcryptCost int
	now        func() time.Time
}

// NewRecoveryService creates a new RecoveryService.
func NewRecoveryService(users domain.UserRepository, bcryptCost int) *RecoveryService {
	return &RecoveryService{users: users, bcryptCost: bcryptCost, now: time.Now}
}

// RequestReset issues a single-use reset token for the account with the
// given email and persists it with its expiry on the user record. The token
// is returned to the caller, which owns out-of-band delivery. Issuing a new
// token replaces any previous one.
func (s *RecoveryService) RequestReset(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get user: %w", err)
	}

	token, err := generateResetToken()
	if err != nil {
		return "", err
	}

	expiry := s.now().UTC().Add(resetTokenTTL)
	user.ResetToken = token
	user.ResetTokenExpiry = &expiry

	if err := s.users.Update(ctx, user); err != nil {
		return "", fmt.Errorf("persist reset token: %w", err)
	}
	return token, nil
}

// ResetPassword consumes a reset token. On success the new credential is
// stored and the token fields are cleared; an expired token is also cleared
// before the failure is surfaced, so no token can ever be consumed twice.
func (s *RecoveryService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return domain.ErrInvalidToken
	}
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidToken
		}
		return fmt.Errorf("get user by reset token: %w", err)
	}

	if user.ResetTokenExpiry == nil || s.now().UTC().After(*user.ResetTokenExpiry) {
		user.ResetToken = ""
		user.ResetTokenExpiry = nil
		if err := s.users.Update(ctx, user); err != nil {
			return fmt.Errorf("clear expired token: %w", err)
		}
		return domain.ErrExpiredToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	user.ResetToken = ""
	user.ResetTokenExpiry = nil

	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("persist new password: %w", err)
	}
	return nil
}

func generateResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
