package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/chromastyle/closet/internal/domain"
	"github.com/chromastyle/closet/internal/repository/sqlite"
)

// Verify the engine and repositories satisfy the domain contracts at
// compile time.
var (
	_ domain.Database          = (*sqlite.DB)(nil)
	_ domain.UserRepository    = (*sqlite.UserRepository)(nil)
	_ domain.ItemRepository    = (*sqlite.ItemRepository)(nil)
	_ domain.OutfitRepository  = (*sqlite.OutfitRepository)(nil)
	_ domain.CommentRepository = (*sqlite.CommentRepository)(nil)
)

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

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer db.Close()

	// Verify the file was created.
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("database file was not created")
	}

	// Verify foreign keys are enabled.
	var fkEnabled int
	if err := db.SqlDB.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled); err != nil {
		t.Fatalf("check foreign_keys: %v", err)
	}
	if fkEnabled != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fkEnabled)
	}
}

func TestMigrate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// All four collections must exist after migration.
	for _, table := range []string{"users", "clothing_items", "saved_outfits", "comments"} {
		var name string
		err := db.SqlDB.QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing after migrate: %v", table, err)
		}
	}
}

func TestMigrateIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// Second run must be a no-op.
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate (idempotent): %v", err)
	}

	var count int
	err := db.SqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	if err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}
	if count != 6 {
		t.Fatalf("expected 6 migration records, got %d", count)
	}
}

func TestMigrateRecordsVersions(t *testing.T) {
	db := newTestDB(t)

	// Versions are parsed from the numeric filename prefix and applied in
	// ascending order.
	rows, err := db.SqlDB.Query("SELECT version FROM schema_migrations ORDER BY version")
	if err != nil {
		t.Fatalf("query schema_migrations: %v", err)
	}
	defer rows.Close()

	want := 1
	for rows.Next() {
		var got int
		if err := rows.Scan(&got); err != nil {
			t.Fatalf("scan version: %v", err)
		}
		if got != want {
			t.Fatalf("expected version %d, got %d", want, got)
		}
		want++
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}
	if want != 7 {
		t.Fatalf("expected versions 1 through 6, stopped at %d", want-1)
	}
}
