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

const userColumns = `id, name, email, password_hash, avatar_url, roles,
	try_on_image_url, style_dna, last_login, login_history, login_streak,
	achievements, collected_outfit_ids, reset_token, reset_token_expiry,
	created_at, updated_at`

// UserRepository implements domain.UserRepository using SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite-backed UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db.SqlDB}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()

	roles, history, achievements, collected, styleDNA, err := encodeUserFields(user)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, avatar_url, roles,
		 try_on_image_url, style_dna, last_login, login_history, login_streak,
		 achievements, collected_outfit_ids, reset_token, reset_token_expiry,
		 created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.AvatarURL, roles,
		user.TryOnImageURL, styleDNA, user.LastLogin, history, user.LoginStreak,
		achievements, collected, nullString(user.ResetToken), user.ResetTokenExpiry,
		now, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}

	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "email = ?", email)
}

func (r *UserRepository) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	return r.getOne(ctx, "reset_token = ?", token)
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+where, arg)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()

	roles, history, achievements, collected, styleDNA, err := encodeUserFields(user)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET
		 name = ?, email = ?, password_hash = ?, avatar_url = ?, roles = ?,
		 try_on_image_url = ?, style_dna = ?, last_login = ?, login_history = ?,
		 login_streak = ?, achievements = ?, collected_outfit_ids = ?,
		 reset_token = ?, reset_token_expiry = ?, updated_at = ?
		 WHERE id = ?`,
		user.Name, user.Email, user.PasswordHash, user.AvatarURL, roles,
		user.TryOnImageURL, styleDNA, user.LastLogin, history, user.LoginStreak,
		achievements, collected, nullString(user.ResetToken), user.ResetTokenExpiry,
		now, user.ID,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	user.UpdatedAt = now
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func encodeUserFields(user *domain.User) (roles, history, achievements, collected string, styleDNA sql.NullString, err error) {
	if roles, err = encodeJSON(user.Roles); err != nil {
		return
	}
	if history, err = encodeJSON(user.LoginHistory); err != nil {
		return
	}
	if achievements, err = encodeJSON(user.Achievements); err != nil {
		return
	}
	if collected, err = encodeJSON(user.CollectedOutfitIDs); err != nil {
		return
	}
	if user.StyleDNA != nil {
		var s string
		if s, err = encodeJSON(user.StyleDNA); err != nil {
			return
		}
		styleDNA = sql.NullString{String: s, Valid: true}
	}
	return
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	user := &domain.User{}
	var (
		roles, history, achievements, collected string
		styleDNA, resetToken                    sql.NullString
		lastLogin, resetExpiry                  sql.NullTime
	)

	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.AvatarURL, &roles, &user.TryOnImageURL, &styleDNA, &lastLogin,
		&history, &user.LoginStreak, &achievements, &collected, &resetToken,
		&resetExpiry, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := decodeJSON(roles, &user.Roles); err != nil {
		return nil, err
	}
	if err := decodeJSON(history, &user.LoginHistory); err != nil {
		return nil, err
	}
	if err := decodeJSON(achievements, &user.Achievements); err != nil {
		return nil, err
	}
	if err := decodeJSON(collected, &user.CollectedOutfitIDs); err != nil {
		return nil, err
	}
	if styleDNA.Valid {
		user.StyleDNA = &domain.StyleDNA{}
		if err := decodeJSON(styleDNA.String, user.StyleDNA); err != nil {
			return nil, err
		}
	}
	if resetToken.Valid {
		user.ResetToken = resetToken.String
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		user.LastLogin = &t
	}
	if resetExpiry.Valid {
		t := resetExpiry.Time
		user.ResetTokenExpiry = &t
	}
	return user, nil
}

// nullString maps "" to NULL so the reset token index never matches a
// cleared token against an empty probe.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
