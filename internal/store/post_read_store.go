package store

import (
	"context"

	"edublog/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostReadStore struct{ db *gorm.DB }

func (s *Store) PostReads() *PostReadStore { return &PostReadStore{db: s.DB} }

// Insert writes rec unless (post_id, user_id) is already present and then
// returns the stored row, which is the original one on a repeat call.
// created reports whether this call wrote the row.
func (r *PostReadStore) Insert(ctx context.Context, rec *domain.PostRead) (stored *domain.PostRead, created bool, err error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	tx := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(rec)
	if tx.Error != nil {
		return nil, false, translate(tx.Error)
	}
	stored, err = r.Get(ctx, rec.PostID, rec.UserID)
	if err != nil {
		return nil, false, err
	}
	return stored, tx.RowsAffected > 0, nil
}

func (r *PostReadStore) Get(ctx context.Context, postID domain.PostID, userID domain.UserID) (*domain.PostRead, error) {
	var rec domain.PostRead
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&rec).Error
	if err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}
