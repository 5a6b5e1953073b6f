package models

import "time"

// Session is an opaque bearer token looked up on every request.
// Expired rows are treated as absent and removed lazily on lookup.
type Session struct {
	Token     string    `json:"-" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
