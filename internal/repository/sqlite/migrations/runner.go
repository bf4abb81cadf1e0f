package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strconv"
	"strings"
)

// step is one embedded schema change. Files are named NNN_label.sql; the
// numeric prefix is the schema version and decides apply order.
type step struct {
	version  int
	filename string
}

// Run brings the schema up to the newest embedded version. Applied versions
// are tracked in a schema_migrations table; each pending step runs in its
// own transaction, so a rerun after a failure resumes at the first
// unapplied version.
func Run(ctx context.Context, db *sql.DB) error {
	if err := ensureVersionTable(ctx, db); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return fmt.Errorf("read applied versions: %w", err)
	}

	steps, err := loadSteps()
	if err != nil {
		return err
	}

	for _, s := range steps {
		if applied[s.version] {
			slog.Debug("schema version already applied", "version", s.version)
			continue
		}
		if err := applyStep(ctx, db, s); err != nil {
			return fmt.Errorf("apply schema version %d (%s): %w", s.version, s.filename, err)
		}
		slog.Info("schema version applied", "version", s.version, "file", s.filename)
	}

	return nil
}

func ensureVersionTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			filename   TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

// loadSteps reads the embedded .sql files and orders them by version number.
// A file without a parsable numeric prefix, or two files claiming the same
// version, is a packaging bug and fails the run.
func loadSteps() ([]step, error) {
	entries, err := fs.ReadDir(FS, ".")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}

	seen := make(map[int]string)
	var steps []step
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}

		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			return nil, fmt.Errorf("migration %s: missing version prefix", name)
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("migration %s: bad version prefix: %w", name, err)
		}
		if other, dup := seen[version]; dup {
			return nil, fmt.Errorf("migrations %s and %s share version %d", other, name, version)
		}
		seen[version] = name
		steps = append(steps, step{version: version, filename: name})
	}

	sort.Slice(steps, func(i, j int) bool { return steps[i].version < steps[j].version })
	return steps, nil
}

func applyStep(ctx context.Context, db *sql.DB, s step) error {
	content, err := fs.ReadFile(FS, s.filename)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("execute sql: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, filename) VALUES (?, ?)",
		s.version, s.filename,
	); err != nil {
		return fmt.Errorf("record version: %w", err)
	}

	return tx.Commit()
}
