package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mlebedz/pairline/backend/internal/domain/model"
)

var ErrNoteNotFound = errors.New("note not found")

type NoteRepo struct {
	pool *pgxpool.Pool
}

func NewNoteRepo(pool *pgxpool.Pool) *NoteRepo {
	return &NoteRepo{pool: pool}
}

const noteColumns = `id, match_id, author_id, body, created_at, updated_at`

// Upsert writes the author's note for a match, updating in place when one
// already exists. The unique (match_id, author_id) constraint guarantees a
// single row per key.
func (r *NoteRepo) Upsert(ctx context.Context, matchID, authorID int64, body string) (model.MatchNote, error) {
	if r.pool == nil {
		return model.MatchNote{}, fmt.Errorf("postgres pool is nil")
	}
	if matchID <= 0 || authorID <= 0 {
		return model.MatchNote{}, fmt.Errorf("invalid note payload")
	}

	row := r.pool.QueryRow(ctx, `
INSERT INTO match_notes (match_id, author_id, body, created_at, updated_at)
VALUES ($1, $2, $3, NOW(), NOW())
ON CONFLICT (match_id, author_id) DO UPDATE SET
	body = EXCLUDED.body,
	updated_at = NOW()
RETURNING `+noteColumns, matchID, authorID, body)

	note, err := scanNote(row)
	if err != nil {
		return model.MatchNote{}, fmt.Errorf("upsert note: %w", err)
	}

	return note, nil
}

func (r *NoteRepo) Get(ctx context.Context, matchID, authorID int64) (model.MatchNote, error) {
	if r.pool == nil {
		return model.MatchNote{}, ErrNoteNotFound
	}

	row := r.pool.QueryRow(ctx, `
SELECT `+noteColumns+`
FROM match_notes
WHERE match_id = $1 AND author_id = $2
`, matchID, authorID)

	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.MatchNote{}, ErrNoteNotFound
		}
		return model.MatchNote{}, fmt.Errorf("get note: %w", err)
	}

	return note, nil
}

func (r *NoteRepo) Delete(ctx context.Context, matchID, authorID int64) (bool, error) {
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `
DELETE FROM match_notes
WHERE match_id = $1 AND author_id = $2
`, matchID, authorID)
	if err != nil {
		return false, fmt.Errorf("delete note: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func scanNote(row pgx.Row) (model.MatchNote, error) {
	var n model.MatchNote
	err := row.Scan(
		&n.ID,
		&n.MatchID,
		&n.AuthorID,
		&n.Body,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	return n, err
}
