package dto

import "time"

type SignUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	AccessToken   string       `json:"access_token"`
	RefreshToken  string       `json:"refresh_token"`
	AccessExpires time.Time    `json:"access_expires"`
	User          UserResponse `json:"user"`
}

type TokenPairResponse struct {
	AccessToken   string    `json:"access_token"`
	RefreshToken  string    `json:"refresh_token"`
	AccessExpires time.Time `json:"access_expires"`
}
