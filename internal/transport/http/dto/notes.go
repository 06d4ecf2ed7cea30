package dto

import "time"

type SaveNoteRequest struct {
	Body string `json:"body"`
}

type NoteResponse struct {
	MatchID   int64      `json:"match_id"`
	Body      string     `json:"body"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
