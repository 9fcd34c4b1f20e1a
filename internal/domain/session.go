package domain

import "time"

// Session is the server-side half of a login. The signed token only carries
// its ID; the row is the authority on expiry.
type Session struct {
	ID        SessionID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    UserID    `gorm:"type:uuid;not null;index:idx_user_sessions_user_id" json:"userId"`
	TokenHash string    `gorm:"type:varchar(128);not null;uniqueIndex:ux_user_sessions_token_hash" json:"tokenHash"`
	ExpiresAt time.Time `gorm:"not null;index:idx_user_sessions_expires_at" json:"expiresAt"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	IP        string    `gorm:"type:varchar(64)" json:"ip,omitempty"`
	UserAgent string    `gorm:"type:text" json:"userAgent,omitempty"`
}

func (Session) TableName() string { return "user_sessions" }

func (s *Session) Expired(now time.Time) bool { return now.After(s.ExpiresAt) }
