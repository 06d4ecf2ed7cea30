package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	pgrepo "github.com/mlebedz/pairline/backend/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("user not found")
)

const (
	maxAvatarSize = 5 << 20

	presignTTL = 15 * time.Minute
)

var allowedAvatarTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type ProfileStore interface {
	SetAvatarKey(ctx context.Context, userID int64, key string) error
}

type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type Service struct {
	storage  ObjectStorage
	profiles ProfileStore
}

type Dependencies struct {
	Storage  ObjectStorage
	Profiles ProfileStore
}

type Avatar struct {
	Key string
	URL string
}

func NewService(deps Dependencies) *Service {
	return &Service{
		storage:  deps.Storage,
		profiles: deps.Profiles,
	}
}

// UploadAvatar stores the image under a fresh object key and points the
// user's profile at it. The previous avatar object is left in place.
func (s *Service) UploadAvatar(ctx context.Context, userID int64, contentType string, body io.Reader, size int64) (Avatar, error) {
	if userID <= 0 || body == nil {
		return Avatar{}, ErrValidation
	}
	if size <= 0 || size > maxAvatarSize {
		return Avatar{}, ErrValidation
	}
	ext, ok := allowedAvatarTypes[normalizeContentType(contentType)]
	if !ok {
		return Avatar{}, ErrValidation
	}
	if s.storage == nil || s.profiles == nil {
		return Avatar{}, fmt.Errorf("media dependencies are not configured")
	}

	if err := s.storage.EnsureBucket(ctx); err != nil {
		return Avatar{}, fmt.Errorf("ensure bucket: %w", err)
	}

	key := avatarKey(userID, ext)
	if err := s.storage.PutObject(ctx, key, body, size, contentType); err != nil {
		return Avatar{}, fmt.Errorf("store avatar: %w", err)
	}

	if err := s.profiles.SetAvatarKey(ctx, userID, key); err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return Avatar{}, ErrNotFound
		}
		return Avatar{}, fmt.Errorf("save avatar key: %w", err)
	}

	url, err := s.storage.PresignGet(ctx, key, presignTTL)
	if err != nil {
		return Avatar{}, fmt.Errorf("presign avatar: %w", err)
	}

	return Avatar{Key: key, URL: url}, nil
}

// AvatarURL resolves a stored avatar key to a short-lived download URL.
func (s *Service) AvatarURL(ctx context.Context, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", ErrValidation
	}
	if s.storage == nil {
		return "", fmt.Errorf("object storage is nil")
	}
	return s.storage.PresignGet(ctx, key, presignTTL)
}

func avatarKey(userID int64, ext string) string {
	return path.Join("avatars", fmt.Sprintf("%d", userID), uuid.NewString()+ext)
}

func normalizeContentType(ct string) string {
	ct = strings.TrimSpace(strings.ToLower(ct))
	if idx := strings.IndexByte(ct, ';'); idx >= 0 {
		ct = strings.TrimSpace(ct[:idx])
	}
	return ct
}
