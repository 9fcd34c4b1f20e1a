package store

import (
	"context"
	"time"

	"edublog/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionStore struct{ db *gorm.DB }

func (s *Store) Sessions() *SessionStore { return &SessionStore{s.DB} }

func (ss *SessionStore) Create(ctx context.Context, s *domain.Session) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return translate(ss.db.WithContext(ctx).Create(s).Error)
}

func (ss *SessionStore) Get(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	var s domain.Session
	if err := ss.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

// Delete is a no-op when the session is already gone.
func (ss *SessionStore) Delete(ctx context.Context, id domain.SessionID) error {
	return translate(ss.db.WithContext(ctx).Delete(&domain.Session{}, "id = ?", id).Error)
}

// DeleteExpired removes every session whose expiry is before cutoff.
func (ss *SessionStore) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := ss.db.WithContext(ctx).Where("expires_at < ?", cutoff).Delete(&domain.Session{})
	return tx.RowsAffected, translate(tx.Error)
}
