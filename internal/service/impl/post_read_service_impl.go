package impl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"edublog/internal/domain"
	"edublog/internal/dto"
	"edublog/internal/observability/metrics"
	"edublog/internal/store"

	"github.com/google/uuid"
)

type PostReadServiceImpl struct {
	store *store.Store
	now   func() time.Time
}

func NewPostReadServiceImpl(st *store.Store) *PostReadServiceImpl {
	return &PostReadServiceImpl{store: st, now: time.Now}
}

// MarkAsRead records the first read of a post by a user. Repeat calls hand
// back the original record untouched.
func (s *PostReadServiceImpl) MarkAsRead(ctx context.Context, postID domain.PostID, userID domain.UserID) (*dto.ReadRecord, bool, error) {
	ok, err := s.store.Posts().Exists(ctx, postID)
	if err != nil {
		return nil, false, fmt.Errorf("check post: %w", err)
	}
	if !ok {
		return nil, false, domain.ErrPostNotFound
	}

	rec, created, err := s.store.PostReads().Insert(ctx, &domain.PostRead{
		ID:     uuid.New(),
		PostID: postID,
		UserID: userID,
		ReadAt: s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, store.ErrForeignKey) {
			return nil, false, domain.ErrPostNotFound
		}
		return nil, false, fmt.Errorf("mark read: %w", err)
	}

	outcome := "existing"
	if created {
		outcome = "created"
	}
	metrics.ReadsMarkedTotal.WithLabelValues(outcome).Inc()

	return &dto.ReadRecord{
		ID:     rec.ID.String(),
		PostID: rec.PostID.String(),
		UserID: rec.UserID.String(),
		ReadAt: rec.ReadAt,
	}, created, nil
}

// CheckIfRead does not look at the post itself; unknown posts read as unread.
func (s *PostReadServiceImpl) CheckIfRead(ctx context.Context, postID domain.PostID, userID domain.UserID) (dto.ReadStatus, error) {
	rec, err := s.store.PostReads().Get(ctx, postID, userID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return dto.ReadStatus{}, nil
		}
		return dto.ReadStatus{}, fmt.Errorf("check read: %w", err)
	}
	at := rec.ReadAt
	return dto.ReadStatus{Read: true, ReadAt: &at}, nil
}
