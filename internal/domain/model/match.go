package model

import "time"

// Match is stored with UserAID < UserBID so an unordered pair can never
// produce two rows.
type Match struct {
	ID            int64
	UserAID       int64
	UserBID       int64
	UserAAccepted bool
	UserBAccepted bool
	Score         int
	IsActive      bool
	CreatedAt     time.Time
	ArchivedAt    *time.Time
}

// OtherSide returns the participant opposite to userID, or 0 when userID
// is not part of the match.
func (m Match) OtherSide(userID int64) int64 {
	switch userID {
	case m.UserAID:
		return m.UserBID
	case m.UserBID:
		return m.UserAID
	default:
		return 0
	}
}

func (m Match) HasParticipant(userID int64) bool {
	return userID == m.UserAID || userID == m.UserBID
}

// CanonicalPair orders two user ids for storage.
func CanonicalPair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}
