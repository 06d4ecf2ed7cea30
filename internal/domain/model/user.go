package model

import "time"

// User is the account record. Interests live in their own table and are
// loaded separately; AvatarKey points at an object in avatar storage.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	DisplayName  string
	Bio          string
	AvatarKey    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicProfile is the subset of User shown to other users.
type PublicProfile struct {
	ID          int64
	DisplayName string
	Bio         string
	AvatarKey   string
	CreatedAt   time.Time
}

func (u User) Public() PublicProfile {
	return PublicProfile{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Bio:         u.Bio,
		AvatarKey:   u.AvatarKey,
		CreatedAt:   u.CreatedAt,
	}
}
