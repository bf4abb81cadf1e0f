package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/chromastyle/closet/internal/domain"
	"github.com/google/uuid"
)

// CommentRepository implements domain.CommentRepository using SQLite.
type CommentRepository struct {
	db *sql.DB
}

// NewCommentRepository creates a new SQLite-backed CommentRepository.
func NewCommentRepository(db *DB) *CommentRepository {
	return &CommentRepository{db: db.SqlDB}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	now := time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (id, outfit_id, user_id, body, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		comment.ID, comment.OutfitID, comment.UserID, comment.Text, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert comment: %w", err)
	}

	comment.CreatedAt = now
	return nil
}

func (r *CommentRepository) GetByOutfit(ctx context.Context, outfitID string) ([]domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, outfit_id, user_id, body, created_at
		 FROM comments WHERE outfit_id = ? ORDER BY created_at, id`, outfitID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.OutfitID, &c.UserID, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
