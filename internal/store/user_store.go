package store

import (
	"context"
	"strings"

	"edublog/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserStore struct{ db *gorm.DB }

func (s *Store) Users() *UserStore { return &UserStore{db: s.DB} }

func (u *UserStore) Create(ctx context.Context, usr *domain.User) error {
	if usr.ID == uuid.Nil {
		usr.ID = uuid.New()
	}
	usr.Email = strings.ToLower(strings.TrimSpace(usr.Email))
	return translate(u.db.WithContext(ctx).Create(usr).Error)
}

// Upsert inserts usr unless a row with the same id already exists.
func (u *UserStore) Upsert(ctx context.Context, usr *domain.User) error {
	usr.Email = strings.ToLower(strings.TrimSpace(usr.Email))
	return translate(u.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(usr).Error)
}

// GetByEmail matches case-insensitively; emails are stored lower-cased.
func (u *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := u.db.WithContext(ctx).
		First(&user, "LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// ListByIDs returns the users found among ids, keyed by id.
func (u *UserStore) ListByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.User, error) {
	out := make(map[uuid.UUID]domain.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var users []domain.User
	if err := u.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	for _, usr := range users {
		out[usr.ID] = usr
	}
	return out, nil
}
