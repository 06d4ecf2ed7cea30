package dto

import "time"

type CandidateResponse struct {
	UserID      int64    `json:"user_id"`
	DisplayName string   `json:"display_name"`
	Bio         string   `json:"bio"`
	AvatarKey   string   `json:"avatar_key,omitempty"`
	Interests   []string `json:"interests"`
	Score       int      `json:"score"`
}

type AcceptMatchRequest struct {
	UserID int64 `json:"user_id"`
	Score  int   `json:"score"`
}

type DeclineMatchRequest struct {
	UserID int64 `json:"user_id"`
}

type MatchResponse struct {
	MatchID    int64      `json:"match_id"`
	UserAID    int64      `json:"user_a_id"`
	UserBID    int64      `json:"user_b_id"`
	Score      int        `json:"score"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
}

type MatchItemResponse struct {
	MatchID     int64      `json:"match_id"`
	PartnerID   int64      `json:"partner_id"`
	DisplayName string     `json:"display_name"`
	Bio         string     `json:"bio"`
	AvatarKey   string     `json:"avatar_key,omitempty"`
	Score       int        `json:"score"`
	CreatedAt   time.Time  `json:"created_at"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
}

type MatchListResponse struct {
	Matches []MatchItemResponse `json:"matches"`
}
