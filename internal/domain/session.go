package domain

import (
	"context"
	"time"
)

// Session binds an opaque server-side token to a user with an absolute
// expiry. Deleting the row destroys the session for good; an expired row
// is treated the same as a missing one.
type Session struct {
	Token     string    `gorm:"primaryKey;size:64" json:"-"`
	UserID    uint      `gorm:"index;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

func (Session) TableName() string { return "sessions" }

func (s *Session) Expired(now time.Time) bool { return now.After(s.ExpiresAt) }

type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	FindByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	// DeleteExpired purges sessions whose expiry is before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
