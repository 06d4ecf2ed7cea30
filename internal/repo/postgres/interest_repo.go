package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InterestRepo struct {
	pool *pgxpool.Pool
}

func NewInterestRepo(pool *pgxpool.Pool) *InterestRepo {
	return &InterestRepo{pool: pool}
}

// ReplaceForUser swaps the whole interest set inside the caller's
// transaction. The unique (user_id, interest) constraint keeps duplicates
// out even if the input slips one through.
func (r *InterestRepo) ReplaceForUser(ctx context.Context, tx pgx.Tx, userID int64, interests []string) error {
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}
	if userID <= 0 {
		return fmt.Errorf("invalid user id")
	}

	if _, err := tx.Exec(ctx, `DELETE FROM user_interests WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear interests: %w", err)
	}

	for _, interest := range interests {
		if _, err := tx.Exec(ctx, `
INSERT INTO user_interests (user_id, interest, created_at)
VALUES ($1, $2, NOW())
ON CONFLICT (user_id, interest) DO NOTHING
`, userID, interest); err != nil {
			return fmt.Errorf("insert interest: %w", err)
		}
	}

	return nil
}

func (r *InterestRepo) ListForUser(ctx context.Context, userID int64) ([]string, error) {
	if r.pool == nil {
		return []string{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT interest
FROM user_interests
WHERE user_id = $1
ORDER BY interest ASC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list interests: %w", err)
	}
	defer rows.Close()

	interests := make([]string, 0, 8)
	for rows.Next() {
		var interest string
		if err := rows.Scan(&interest); err != nil {
			return nil, fmt.Errorf("scan interest: %w", err)
		}
		interests = append(interests, interest)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate interests: %w", rows.Err())
	}

	return interests, nil
}

func (r *InterestRepo) ListForUsers(ctx context.Context, userIDs []int64) (map[int64][]string, error) {
	result := make(map[int64][]string, len(userIDs))
	if r.pool == nil || len(userIDs) == 0 {
		return result, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT user_id, interest
FROM user_interests
WHERE user_id = ANY($1)
ORDER BY user_id ASC, interest ASC
`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("list interests for users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID int64
		var interest string
		if err := rows.Scan(&userID, &interest); err != nil {
			return nil, fmt.Errorf("scan user interest: %w", err)
		}
		result[userID] = append(result[userID], interest)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate user interests: %w", rows.Err())
	}

	return result, nil
}
