package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mlebedz/pairline/backend/internal/domain/model"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepo struct {
	pool *pgxpool.Pool
}

// MatchPartnerRecord is a match row joined with the counterpart's public
// profile fields, as the listings endpoints present it.
type MatchPartnerRecord struct {
	MatchID     int64
	PartnerID   int64
	DisplayName string
	Bio         string
	AvatarKey   string
	Score       int
	CreatedAt   time.Time
	ArchivedAt  *time.Time
}

func NewMatchRepo(pool *pgxpool.Pool) *MatchRepo {
	return &MatchRepo{pool: pool}
}

const matchColumns = `id, user_a_id, user_b_id, user_a_accepted, user_b_accepted, score, is_active, created_at, archived_at`

// CreateIfAbsent inserts the canonical pair and reports whether a new row
// was created. An existing row for the pair is returned untouched, so
// accepting the same pair from either side stays idempotent. A foreign key
// violation means one side of the pair does not exist and surfaces as
// ErrUserNotFound.
func (r *MatchRepo) CreateIfAbsent(ctx context.Context, userA, userB int64, score int) (model.Match, bool, error) {
	if r.pool == nil {
		return model.Match{}, false, fmt.Errorf("postgres pool is nil")
	}
	if userA <= 0 || userB <= 0 || userA == userB {
		return model.Match{}, false, fmt.Errorf("invalid match pair")
	}

	userA, userB = model.CanonicalPair(userA, userB)

	row := r.pool.QueryRow(ctx, `
INSERT INTO matches (user_a_id, user_b_id, user_a_accepted, user_b_accepted, score, is_active, created_at)
VALUES ($1, $2, TRUE, TRUE, $3, TRUE, NOW())
ON CONFLICT (user_a_id, user_b_id) DO NOTHING
RETURNING `+matchColumns, userA, userB, score)

	match, err := scanMatch(row)
	if err == nil {
		return match, true, nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode {
		return model.Match{}, false, ErrUserNotFound
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return model.Match{}, false, fmt.Errorf("create match: %w", err)
	}

	row = r.pool.QueryRow(ctx, `
SELECT `+matchColumns+`
FROM matches
WHERE user_a_id = $1 AND user_b_id = $2
`, userA, userB)
	match, err = scanMatch(row)
	if err != nil {
		return model.Match{}, false, fmt.Errorf("load existing match: %w", err)
	}

	return match, false, nil
}

func (r *MatchRepo) GetByID(ctx context.Context, id int64) (model.Match, error) {
	if r.pool == nil {
		return model.Match{}, ErrMatchNotFound
	}

	row := r.pool.QueryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id)
	match, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Match{}, ErrMatchNotFound
		}
		return model.Match{}, fmt.Errorf("get match: %w", err)
	}

	return match, nil
}

// Archive flips an active match to archived. It reports false when the row
// was already archived, leaving the original archive stamp in place.
func (r *MatchRepo) Archive(ctx context.Context, id int64, at time.Time) (bool, error) {
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `
UPDATE matches
SET is_active = FALSE, archived_at = $2
WHERE id = $1 AND is_active = TRUE
`, id, at.UTC())
	if err != nil {
		return false, fmt.Errorf("archive match: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// PartnerIDs returns every user the given user has ever been matched with,
// regardless of archive state.
func (r *MatchRepo) PartnerIDs(ctx context.Context, userID int64) ([]int64, error) {
	if r.pool == nil {
		return []int64{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT CASE WHEN user_a_id = $1 THEN user_b_id ELSE user_a_id END
FROM matches
WHERE user_a_id = $1 OR user_b_id = $1
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list match partners: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0, 16)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan partner id: %w", err)
		}
		ids = append(ids, id)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate match partners: %w", rows.Err())
	}

	return ids, nil
}

func (r *MatchRepo) ListForUser(ctx context.Context, userID int64, active bool) ([]MatchPartnerRecord, error) {
	if r.pool == nil {
		return []MatchPartnerRecord{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	m.id,
	u.id,
	u.display_name,
	u.bio,
	COALESCE(u.avatar_key, ''),
	m.score,
	m.created_at,
	m.archived_at
FROM matches m
JOIN users u ON u.id = CASE WHEN m.user_a_id = $1 THEN m.user_b_id ELSE m.user_a_id END
WHERE (m.user_a_id = $1 OR m.user_b_id = $1) AND m.is_active = $2
ORDER BY m.created_at DESC, m.id DESC
`, userID, active)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	items := make([]MatchPartnerRecord, 0, 16)
	for rows.Next() {
		var item MatchPartnerRecord
		if err := rows.Scan(
			&item.MatchID,
			&item.PartnerID,
			&item.DisplayName,
			&item.Bio,
			&item.AvatarKey,
			&item.Score,
			&item.CreatedAt,
			&item.ArchivedAt,
		); err != nil {
			return nil, fmt.Errorf("scan match row: %w", err)
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate matches: %w", rows.Err())
	}

	return items, nil
}

func scanMatch(row pgx.Row) (model.Match, error) {
	var m model.Match
	err := row.Scan(
		&m.ID,
		&m.UserAID,
		&m.UserBID,
		&m.UserAAccepted,
		&m.UserBAccepted,
		&m.Score,
		&m.IsActive,
		&m.CreatedAt,
		&m.ArchivedAt,
	)
	return m, err
}
