package dto

import "time"

type UserSummaryResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio"`
	AvatarKey   string    `json:"avatar_key,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	IsFollowing bool      `json:"is_following"`
	Followers   int64     `json:"followers"`
	Following   int64     `json:"following"`
}

type SearchUsersResponse struct {
	Users []UserSummaryResponse `json:"users"`
}

type UserViewResponse struct {
	UserSummaryResponse
	Interests []string `json:"interests"`
}
