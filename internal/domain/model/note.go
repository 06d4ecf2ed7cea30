package model

import "time"

// MatchNote is the single private annotation an author keeps per match.
// The (MatchID, AuthorID) pair is unique; saves update in place.
type MatchNote struct {
	ID        int64
	MatchID   int64
	AuthorID  int64
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
