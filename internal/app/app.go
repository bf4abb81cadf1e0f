package app

import (
	"context"
	"fmt"

	"github.com/chromastyle/closet/internal/repository/sqlite"
	"github.com/chromastyle/closet/internal/service"
)

// Config carries the store bootstrap settings.
type Config struct {
	DatabasePath  string
	JWTSecret     string
	BcryptCost    int
	AdminEmail    string
	AdminPassword string
}

// App is the in-process boundary handed to the UI layer: the open store
// plus every service built on it. All operations return either a value or a
// typed failure from internal/domain.
type App struct {
	DB           *sqlite.DB
	Session      *service.SessionHolder
	Auth         *service.AuthService
	Recovery     *service.RecoveryService
	Wardrobe     *service.WardrobeService
	Outfits      *service.OutfitService
	Community    *service.CommunityService
	Achievements *service.AchievementService
}

// Open opens the store, applies pending migrations, seeds the admin account
// on an empty store, and wires the services. A failure here is fatal: no
// store is usable.
func Open(ctx context.Context, cfg Config) (*App, error) {
	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate store: %w", err)
	}

	session := service.NewSessionHolder()
	auth := service.NewAuthService(db.Users(), session, cfg.JWTSecret, cfg.BcryptCost)

	if err := auth.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed admin: %w", err)
	}

	return &App{
		DB:           db,
		Session:      session,
		Auth:         auth,
		Recovery:     service.NewRecoveryService(db.Users(), cfg.BcryptCost),
		Wardrobe:     service.NewWardrobeService(db.Items()),
		Outfits:      service.NewOutfitService(db.Outfits(), db.Items(), db.Users()),
		Community:    service.NewCommunityService(db.Outfits(), db.Items(), db.Users(), db.Comments(), session),
		Achievements: service.NewAchievementService(db.Users(), session),
	}, nil
}

// Close releases the store handle.
func (a *App) Close() error {
	return a.DB.Close()
}
