package rate

import (
	"context"
	"fmt"
	"time"
)

const loginWindow = time.Minute

type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// Limiter applies a fixed per-minute window to login attempts.
type Limiter struct {
	store     WindowStore
	perMinute int
}

func NewLimiter(store WindowStore, perMinute int) *Limiter {
	if perMinute < 0 {
		perMinute = 0
	}

	return &Limiter{
		store:     store,
		perMinute: perMinute,
	}
}

// AllowLogin counts one attempt for key and reports whether it is allowed.
// When blocked, the first return value is the seconds until the window
// resets. A zero per-minute limit disables throttling.
func (l *Limiter) AllowLogin(ctx context.Context, key string) (int64, bool, error) {
	if key == "" {
		return 0, false, fmt.Errorf("rate key is required")
	}
	if l.store == nil {
		return 0, false, fmt.Errorf("rate limiter store is nil")
	}
	if l.perMinute == 0 {
		return 0, true, nil
	}

	count, ttl, err := l.store.IncrementWindow(ctx, loginKey(key), loginWindow)
	if err != nil {
		return 0, false, err
	}
	if count > int64(l.perMinute) {
		return ceilSeconds(ttl), false, nil
	}

	return 0, true, nil
}

func loginKey(key string) string {
	return "rate:login:" + key
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 1
	}
	sec := int64(d / time.Second)
	if d%time.Second != 0 {
		sec++
	}
	if sec <= 0 {
		sec = 1
	}
	return sec
}
