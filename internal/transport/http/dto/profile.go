package dto

import "time"

type UserResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio"`
	AvatarKey   string    `json:"avatar_key,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProfileResponse struct {
	UserResponse
	Interests []string `json:"interests"`
}

type UpdateProfileRequest struct {
	DisplayName *string   `json:"display_name"`
	Bio         *string   `json:"bio"`
	Interests   *[]string `json:"interests"`
}

type OnboardRequest struct {
	DisplayName string   `json:"display_name"`
	Bio         string   `json:"bio"`
	Interests   []string `json:"interests"`
}

type AvatarResponse struct {
	AvatarKey string `json:"avatar_key"`
	AvatarURL string `json:"avatar_url"`
}
