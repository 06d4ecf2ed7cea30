package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mlebedz/pairline/backend/internal/domain/model"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already taken")
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `id, email, password_hash, display_name, bio, COALESCE(avatar_key, ''), created_at, updated_at`

func (r *UserRepo) Create(ctx context.Context, email, passwordHash, displayName string) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(email) == "" || passwordHash == "" {
		return model.User{}, fmt.Errorf("invalid user payload")
	}

	row := r.pool.QueryRow(ctx, `
INSERT INTO users (email, password_hash, display_name, bio, created_at, updated_at)
VALUES ($1, $2, $3, '', NOW(), NOW())
RETURNING `+userColumns, email, passwordHash, displayName)

	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return model.User{}, ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}

	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}

	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("get user by email: %w", err)
	}

	return user, nil
}

// ListOthers returns every user except excludeID in ascending id order. The
// matching engine relies on this ordering for its deterministic tie-break.
func (r *UserRepo) ListOthers(ctx context.Context, excludeID int64) ([]model.User, error) {
	if r.pool == nil {
		return []model.User{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT `+userColumns+`
FROM users
WHERE id <> $1
ORDER BY id ASC
`, excludeID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

func (r *UserRepo) Search(ctx context.Context, excludeID int64, query string, limit int) ([]model.User, error) {
	if r.pool == nil {
		return []model.User{}, nil
	}
	if limit <= 0 {
		limit = 100
	}

	query = strings.TrimSpace(query)
	if query == "" {
		rows, err := r.pool.Query(ctx, `
SELECT `+userColumns+`
FROM users
WHERE id <> $1
ORDER BY id ASC
LIMIT $2
`, excludeID, limit)
		if err != nil {
			return nil, fmt.Errorf("search users: %w", err)
		}
		defer rows.Close()
		return collectUsers(rows)
	}

	pattern := "%" + query + "%"
	rows, err := r.pool.Query(ctx, `
SELECT `+userColumns+`
FROM users
WHERE id <> $1 AND (display_name ILIKE $2 OR email ILIKE $2)
ORDER BY id ASC
LIMIT $3
`, excludeID, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

func (r *UserRepo) UpdateProfile(ctx context.Context, tx pgx.Tx, userID int64, displayName, bio string) error {
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	result, err := tx.Exec(ctx, `
UPDATE users
SET display_name = $2, bio = $3, updated_at = NOW()
WHERE id = $1
`, userID, displayName, bio)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *UserRepo) SetAvatarKey(ctx context.Context, userID int64, avatarKey string) error {
	if r.pool == nil {
		return nil
	}

	result, err := r.pool.Exec(ctx, `
UPDATE users
SET avatar_key = $2, updated_at = NOW()
WHERE id = $1
`, userID, avatarKey)
	if err != nil {
		return fmt.Errorf("set avatar key: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.DisplayName,
		&u.Bio,
		&u.AvatarKey,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func collectUsers(rows pgx.Rows) ([]model.User, error) {
	users := make([]model.User, 0, 16)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate users: %w", rows.Err())
	}
	return users, nil
}
