package domain

import "context"

// Database defines lifecycle operations for the underlying object store.
// Each implementation (SQLite today, a server-hosted store later) owns its
// own migration files and strategy, so the entire backend is swappable.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}
