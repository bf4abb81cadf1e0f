package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/chromastyle/closet/internal/domain"
	"github.com/chromastyle/closet/internal/repository/sqlite"
	"github.com/chromastyle/closet/internal/service"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "0123456789abcdef0123456789abcdef"

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T) (*service.AuthService, *service.SessionHolder, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	session := service.NewSessionHolder()
	auth := service.NewAuthService(db.Users(), session, testJWTSecret, bcrypt.MinCost)
	return auth, session, db
}

func signUpUser(t *testing.T, auth *service.AuthService, email string) *domain.User {
	t.Helper()
	user, err := auth.SignUp(context.Background(), service.SignUpInput{
		Name:     "Test User",
		Email:    email,
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("SignUp %s: %v", email, err)
	}
	return user
}

func seedAccount(t *testing.T, db *sqlite.DB, email string) *domain.User {
	t.Helper()
	user := &domain.User{
		Name:         "Seeded User",
		Email:        email,
		PasswordHash: "irrelevant",
		Roles:        []domain.Role{domain.RoleUser},
	}
	if err := db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("seed account %s: %v", email, err)
	}
	return user
}

func seedWardrobeItem(t *testing.T, db *sqlite.DB, userID, name string) *domain.ClothingItem {
	t.Helper()
	item := &domain.ClothingItem{
		UserID:   userID,
		Name:     name,
		Category: domain.CategoryTop,
		Color:    "Blue",
	}
	if err := db.Items().Create(context.Background(), item); err != nil {
		t.Fatalf("seed item %s: %v", name, err)
	}
	return item
}
