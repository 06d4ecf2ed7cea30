package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FollowRepo struct {
	pool *pgxpool.Pool
}

// FollowStat carries the aggregate follow-graph view of one user as seen
// by a specific viewer.
type FollowStat struct {
	Followers   int64
	Following   int64
	IsFollowing bool
}

func NewFollowRepo(pool *pgxpool.Pool) *FollowRepo {
	return &FollowRepo{pool: pool}
}

func (r *FollowRepo) Upsert(ctx context.Context, followerID, followedID int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if followerID <= 0 || followedID <= 0 {
		return fmt.Errorf("invalid follow payload")
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO follows (follower_id, followed_id, created_at)
VALUES ($1, $2, NOW())
ON CONFLICT (follower_id, followed_id) DO NOTHING
`, followerID, followedID); err != nil {
		return fmt.Errorf("create follow: %w", err)
	}

	return nil
}

func (r *FollowRepo) Delete(ctx context.Context, followerID, followedID int64) (bool, error) {
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `
DELETE FROM follows
WHERE follower_id = $1 AND followed_id = $2
`, followerID, followedID)
	if err != nil {
		return false, fmt.Errorf("delete follow: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *FollowRepo) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	if r.pool == nil {
		return false, nil
	}

	var exists bool
	err := r.pool.QueryRow(ctx, `
SELECT EXISTS (
	SELECT 1 FROM follows WHERE follower_id = $1 AND followed_id = $2
)
`, followerID, followedID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check follow edge: %w", err)
	}

	return exists, nil
}

// StatsFor resolves follower/following counts and the viewer's own edge for
// a batch of users in a single query.
func (r *FollowRepo) StatsFor(ctx context.Context, viewerID int64, userIDs []int64) (map[int64]FollowStat, error) {
	stats := make(map[int64]FollowStat, len(userIDs))
	if r.pool == nil || len(userIDs) == 0 {
		return stats, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	u.id,
	(SELECT COUNT(*) FROM follows f WHERE f.followed_id = u.id),
	(SELECT COUNT(*) FROM follows f WHERE f.follower_id = u.id),
	EXISTS (SELECT 1 FROM follows f WHERE f.follower_id = $1 AND f.followed_id = u.id)
FROM unnest($2::bigint[]) AS u(id)
`, viewerID, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load follow stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var stat FollowStat
		if err := rows.Scan(&id, &stat.Followers, &stat.Following, &stat.IsFollowing); err != nil {
			return nil, fmt.Errorf("scan follow stats: %w", err)
		}
		stats[id] = stat
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate follow stats: %w", rows.Err())
	}

	return stats, nil
}
