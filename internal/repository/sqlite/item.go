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

const itemColumns = `id, user_id, name, category, color, style, image_url, purchase_date, created_at`

// ItemRepository implements domain.ItemRepository using SQLite.
type ItemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new SQLite-backed ItemRepository.
func NewItemRepository(db *DB) *ItemRepository {
	return &ItemRepository{db: db.SqlDB}
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.ClothingItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if item.PurchaseDate.IsZero() {
		item.PurchaseDate = now
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO clothing_items (id, user_id, name, category, color, style, image_url, purchase_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.UserID, item.Name, item.Category, item.Color, item.Style,
		item.ImageURL, item.PurchaseDate, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert clothing item: %w", err)
	}

	item.CreatedAt = now
	return nil
}

// CreateMany inserts all items as one all-or-nothing unit.
func (r *ItemRepository) CreateMany(ctx context.Context, items []*domain.ClothingItem) error {
	if len(items) == 0 {
		return nil
	}

	now := time.Now().UTC()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if item.PurchaseDate.IsZero() {
			item.PurchaseDate = now
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO clothing_items (id, user_id, name, category, color, style, image_url, purchase_date, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID, item.UserID, item.Name, item.Category, item.Color, item.Style,
			item.ImageURL, item.PurchaseDate, now,
		); err != nil {
			if isUniqueConstraintError(err) {
				return fmt.Errorf("insert clothing item %s: %w", item.ID, domain.ErrConflict)
			}
			return fmt.Errorf("insert clothing item %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	for _, item := range items {
		item.CreatedAt = now
	}
	return nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id string) (*domain.ClothingItem, error) {
	item := &domain.ClothingItem{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM clothing_items WHERE id = ?`, id,
	).Scan(&item.ID, &item.UserID, &item.Name, &item.Category, &item.Color,
		&item.Style, &item.ImageURL, &item.PurchaseDate, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query clothing item: %w", err)
	}
	return item, nil
}

func (r *ItemRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.ClothingItem, error) {
	result := make(map[string]*domain.ClothingItem, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM clothing_items WHERE id IN (`+placeholders(len(ids))+`)`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("query clothing items by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item := &domain.ClothingItem{}
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.Category,
			&item.Color, &item.Style, &item.ImageURL, &item.PurchaseDate, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan clothing item: %w", err)
		}
		result[item.ID] = item
	}
	return result, rows.Err()
}

func (r *ItemRepository) GetByUser(ctx context.Context, userID string) ([]domain.ClothingItem, error) {
	return r.list(ctx,
		`SELECT `+itemColumns+` FROM clothing_items WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		userID)
}

func (r *ItemRepository) GetAll(ctx context.Context) ([]domain.ClothingItem, error) {
	return r.list(ctx,
		`SELECT `+itemColumns+` FROM clothing_items ORDER BY created_at DESC, id DESC`)
}

func (r *ItemRepository) list(ctx context.Context, query string, args ...any) ([]domain.ClothingItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clothing items: %w", err)
	}
	defer rows.Close()

	var items []domain.ClothingItem
	for rows.Next() {
		var item domain.ClothingItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.Category,
			&item.Color, &item.Style, &item.ImageURL, &item.PurchaseDate, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan clothing item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *ItemRepository) Update(ctx context.Context, item *domain.ClothingItem) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE clothing_items SET
		 name = ?, category = ?, color = ?, style = ?, image_url = ?, purchase_date = ?
		 WHERE id = ?`,
		item.Name, item.Category, item.Color, item.Style, item.ImageURL,
		item.PurchaseDate, item.ID,
	)
	if err != nil {
		return fmt.Errorf("update clothing item: %w", err)
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

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM clothing_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete clothing item: %w", err)
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

// DeleteMany deletes the given ids as one all-or-nothing unit. A single
// missing id rolls the whole batch back and surfaces domain.ErrNotFound.
func (r *ItemRepository) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range ids {
		result, err := tx.ExecContext(ctx, "DELETE FROM clothing_items WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("delete clothing item %s: %w", id, err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("delete clothing item %s: %w", id, domain.ErrNotFound)
		}
	}

	return tx.Commit()
}

func (r *ItemRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM clothing_items WHERE user_id = ?", userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count clothing items: %w", err)
	}
	return count, nil
}
