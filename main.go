package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"github.com/chromastyle/closet/internal/app"
	"github.com/joho/godotenv"
)

// Bootstraps the local store: opens the database, applies migrations, seeds
// the admin account, and reports readiness. The UI, AI, weather, and upload
// clients consume the wired services in-process.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// .env is optional; real env vars win.
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if len(jwtSecret) < 32 {
		slog.Error("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
		os.Exit(1)
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		slog.Error("ADMIN_PASSWORD environment variable is required")
		os.Exit(1)
	}

	bcryptCost := 12
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			slog.Error("invalid BCRYPT_COST", "error", err)
			os.Exit(1)
		}
		if parsed < 4 || parsed > 14 {
			slog.Error("BCRYPT_COST must be between 4 and 14", "value", parsed)
			os.Exit(1)
		}
		bcryptCost = parsed
	}

	cfg := app.Config{
		DatabasePath:  envOrDefault("DATABASE_PATH", "chroma-closet.db"),
		JWTSecret:     jwtSecret,
		BcryptCost:    bcryptCost,
		AdminEmail:    envOrDefault("ADMIN_EMAIL", "admin@chroma.ai"),
		AdminPassword: adminPassword,
	}

	ctx := context.Background()
	a, err := app.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	users, err := a.DB.Users().Count(ctx)
	if err != nil {
		slog.Error("failed to read store stats", "error", err)
		os.Exit(1)
	}

	feed, err := a.Community.GetPublicOutfits(ctx, 1)
	if err != nil {
		slog.Error("failed to read community feed", "error", err)
		os.Exit(1)
	}

	slog.Info("store ready", "path", cfg.DatabasePath, "users", users, "feed_page_size", len(feed.Outfits))
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
