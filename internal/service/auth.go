package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/chromastyle/closet/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles sign-up, login, session tokens, and profile updates.
type AuthService struct {
	users      domain.UserRepository
	session    *SessionHolder
	validate   *validator.Validate
	jwtSecret  []byte
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, session *SessionHolder, jwtSecret string, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		session:    session,
		validate:   validator.New(),
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcryptCost,
	}
}

// SignUpInput is the payload for creating a new account.
type SignUpInput struct {
	Name     string `validate:"required,max=100"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// SignUp creates a new user account after validating inputs.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*domain.User, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		AvatarURL:    avatarURL(in.Name),
		Roles:        []domain.Role{domain.RoleUser},
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials, updates login bookkeeping (streak, history,
// last login), refreshes the session holder, and returns the user with a
// signed session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrUnauthorized
		}
		return nil, "", fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrUnauthorized
	}

	now := time.Now().UTC()
	applyLoginBookkeeping(user, now)

	if err := s.users.Update(ctx, user); err != nil {
		return nil, "", fmt.Errorf("update login stats: %w", err)
	}

	token, err := s.generateSessionToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("generate session token: %w", err)
	}

	s.session.Set(user)
	return user, token, nil
}

// Logout clears the session holder. The store is untouched.
func (s *AuthService) Logout() {
	s.session.Clear()
}

// ValidateToken parses and validates a session token string, returning the
// user id from the sub claim.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", domain.ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", domain.ErrUnauthorized
	}
	return sub, nil
}

// RestoreSession validates a persisted session token and reloads the user
// into the session holder. Used at startup before any UI interaction.
func (s *AuthService) RestoreSession(ctx context.Context, tokenString string) (*domain.User, error) {
	userID, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	s.session.Set(user)
	return user, nil
}

// UpdateProfile persists profile changes and refreshes the session holder
// when the updated user is the current session user.
func (s *AuthService) UpdateProfile(ctx context.Context, user *domain.User) error {
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.session.refresh(user)
	return nil
}

// GetUserByID retrieves a user by id.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetAllUsers lists every user, for the admin dashboard.
func (s *AuthService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.GetAll(ctx)
}

// SeedAdmin creates the administrative user when the store is empty.
// Safe to call on every open.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password string) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &domain.User{
		Name:         "Admin",
		Email:        email,
		PasswordHash: string(hash),
		AvatarURL:    avatarURL("Admin"),
		Roles:        []domain.Role{domain.RoleUser, domain.RoleAdmin},
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	return nil
}

func (s *AuthService) generateSessionToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"iat":   now.Unix(),
		"exp":   now.Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// applyLoginBookkeeping updates streak, history, and last-login for a login
// at now. The streak increments when the previous login was yesterday,
// resets to 1 after a longer gap or on first login, and is unchanged by
// repeated same-day logins.
func applyLoginBookkeeping(user *domain.User, now time.Time) {
	switch {
	case user.LastLogin != nil && isYesterday(*user.LastLogin, now):
		user.LoginStreak++
	case user.LastLogin == nil || !sameDay(*user.LastLogin, now):
		user.LoginStreak = 1
	}

	user.LoginHistory = append(user.LoginHistory, now)
	if len(user.LoginHistory) > domain.LoginHistoryCap {
		user.LoginHistory = user.LoginHistory[len(user.LoginHistory)-domain.LoginHistoryCap:]
	}
	user.LastLogin = &now
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func isYesterday(a, b time.Time) bool {
	return sameDay(a, b.AddDate(0, 0, -1))
}

func avatarURL(name string) string {
	return "https://api.dicebear.com/8.x/initials/svg?seed=" + url.QueryEscape(name)
}
