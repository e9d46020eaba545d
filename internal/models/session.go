package models

import "time"

// Session represents an authenticated admin session
type Session struct {
	TokenHash   string    `json:"-"` // Never expose in JSON
	AdminUserID string    `json:"adminUserId"`
	CreatedAt   time.Time `json:"createdAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Expired reports whether the session ended before now.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
