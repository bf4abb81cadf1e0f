package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chromastyle/closet/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite handle and hands out the per-collection repositories.
// It is the single store handle injected into services; tests open their own
// instance against a temp file.
type DB struct {
	SqlDB *sql.DB
}

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign keys. Opening fails fatally when the host
// storage is unusable; no store is usable in that case.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Enable foreign key enforcement.
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	// All statements serialize on one connection. Interleavings between a
	// read and its dependent write remain possible across calls.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies all pending schema migrations in version order.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, db.SqlDB)
}

// Close closes the underlying database handle.
func (db *DB) Close() error {
	return db.SqlDB.Close()
}

// Users returns the user repository bound to this store.
func (db *DB) Users() *UserRepository { return NewUserRepository(db) }

// Items returns the clothing item repository bound to this store.
func (db *DB) Items() *ItemRepository { return NewItemRepository(db) }

// Outfits returns the saved outfit repository bound to this store.
func (db *DB) Outfits() *OutfitRepository { return NewOutfitRepository(db) }

// Comments returns the comment repository bound to this store.
func (db *DB) Comments() *CommentRepository { return NewCommentRepository(db) }
