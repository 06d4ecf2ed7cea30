package model

import "time"

// Follow is a directed edge, at most one per ordered pair.
type Follow struct {
	FollowerID int64
	FollowedID int64
	CreatedAt  time.Time
}
