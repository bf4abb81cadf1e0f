package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/chromastyle/closet/internal/domain"
	"github.com/google/uuid"
)

const outfitColumns = `id, user_id, name, occasion, explanation, item_ids, is_public, likes, created_at, updated_at`

// OutfitRepository implements domain.OutfitRepository using SQLite.
type OutfitRepository struct {
	db *sql.DB
}

// NewOutfitRepository creates a new SQLite-backed OutfitRepository.
func NewOutfitRepository(db *DB) *OutfitRepository {
	return &OutfitRepository{db: db.SqlDB}
}

func (r *OutfitRepository) Create(ctx context.Context, outfit *domain.Outfit) error {
	if outfit.ID == "" {
		outfit.ID = uuid.NewString()
	}
	now := time.Now().UTC()

	itemIDs, err := encodeJSON(outfit.ItemIDs)
	if err != nil {
		return err
	}
	likes, err := encodeJSON(outfit.Likes)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO saved_outfits (id, user_id, name, occasion, explanation, item_ids, is_public, likes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		outfit.ID, outfit.UserID, outfit.Name, outfit.Occasion, outfit.Explanation,
		itemIDs, outfit.IsPublic, likes, now, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert outfit: %w", err)
	}

	outfit.CreatedAt = now
	outfit.UpdatedAt = now
	return nil
}

func (r *OutfitRepository) GetByID(ctx context.Context, id string) (*domain.Outfit, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+outfitColumns+` FROM saved_outfits WHERE id = ?`, id)
	outfit, err := scanOutfit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query outfit: %w", err)
	}
	return outfit, nil
}

func (r *OutfitRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Outfit, error) {
	result := make(map[string]*domain.Outfit, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+outfitColumns+` FROM saved_outfits WHERE id IN (`+placeholders(len(ids))+`)`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("query outfits by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		outfit, err := scanOutfit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan outfit: %w", err)
		}
		result[outfit.ID] = outfit
	}
	return result, rows.Err()
}

func (r *OutfitRepository) GetByUser(ctx context.Context, userID string) ([]domain.Outfit, error) {
	return r.list(ctx,
		`SELECT `+outfitColumns+` FROM saved_outfits WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		userID)
}

func (r *OutfitRepository) GetAll(ctx context.Context) ([]domain.Outfit, error) {
	return r.list(ctx,
		`SELECT `+outfitColumns+` FROM saved_outfits ORDER BY created_at DESC, id DESC`)
}

func (r *OutfitRepository) GetPublic(ctx context.Context) ([]domain.Outfit, error) {
	return r.list(ctx,
		`SELECT `+outfitColumns+` FROM saved_outfits WHERE is_public = 1 ORDER BY created_at, id`)
}

func (r *OutfitRepository) list(ctx context.Context, query string, args ...any) ([]domain.Outfit, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list outfits: %w", err)
	}
	defer rows.Close()

	var outfits []domain.Outfit
	for rows.Next() {
		outfit, err := scanOutfit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan outfit: %w", err)
		}
		outfits = append(outfits, *outfit)
	}
	return outfits, rows.Err()
}

func (r *OutfitRepository) Update(ctx context.Context, outfit *domain.Outfit) error {
	now := time.Now().UTC()

	itemIDs, err := encodeJSON(outfit.ItemIDs)
	if err != nil {
		return err
	}
	likes, err := encodeJSON(outfit.Likes)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE saved_outfits SET
		 name = ?, occasion = ?, explanation = ?, item_ids = ?, is_public = ?, likes = ?, updated_at = ?
		 WHERE id = ?`,
		outfit.Name, outfit.Occasion, outfit.Explanation, itemIDs, outfit.IsPublic,
		likes, now, outfit.ID,
	)
	if err != nil {
		return fmt.Errorf("update outfit: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	outfit.UpdatedAt = now
	return nil
}

func (r *OutfitRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM saved_outfits WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete outfit: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OutfitRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM saved_outfits WHERE user_id = ?", userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count outfits: %w", err)
	}
	return count, nil
}

func scanOutfit(row rowScanner) (*domain.Outfit, error) {
	outfit := &domain.Outfit{}
	var itemIDs, likes string

	err := row.Scan(&outfit.ID, &outfit.UserID, &outfit.Name, &outfit.Occasion,
		&outfit.Explanation, &itemIDs, &outfit.IsPublic, &likes,
		&outfit.CreatedAt, &outfit.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := decodeJSON(itemIDs, &outfit.ItemIDs); err != nil {
		return nil, err
	}
	if err := decodeJSON(likes, &outfit.Likes); err != nil {
		return nil, err
	}
	return outfit, nil
}
