package impl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"edublog/internal/domain"
	"edublog/internal/dto"
	"edublog/internal/observability/metrics"
	"edublog/internal/observability/middleware"
	"edublog/internal/store"

	"github.com/google/uuid"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
)

type PostServiceImpl struct {
	store *store.Store
	now   func() time.Time
}

func NewPostServiceImpl(st *store.Store) *PostServiceImpl {
	return &PostServiceImpl{store: st, now: time.Now}
}

func (s *PostServiceImpl) List(ctx context.Context, page dto.PageRequest, viewer domain.Role) (*dto.PostPage, error) {
	return s.find(ctx, store.PostFilter{}, page, viewer)
}

func (s *PostServiceImpl) Search(ctx context.Context, q dto.SearchRequest, viewer domain.Role) (*dto.PostPage, error) {
	if q.Empty() {
		return s.List(ctx, q.PageRequest, viewer)
	}
	f := store.PostFilter{Query: q.Query, Title: q.Title, Author: q.Author}
	return s.find(ctx, f, q.PageRequest, viewer)
}

// find applies the visibility rule: only teachers see drafts and archived posts.
func (s *PostServiceImpl) find(ctx context.Context, f store.PostFilter, page dto.PageRequest, viewer domain.Role) (*dto.PostPage, error) {
	if page.Page < 1 {
		page.Page = DefaultPage
	}
	if page.Limit < 1 {
		page.Limit = DefaultLimit
	}
	f.PublishedOnly = viewer != domain.RoleTeacher

	posts, total, err := s.store.Posts().Find(ctx, f, (page.Page-1)*page.Limit, page.Limit)
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	data, err := s.enrich(ctx, posts)
	if err != nil {
		return nil, err
	}
	return &dto.PostPage{
		Data: data,
		Pagination: dto.Pagination{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      total,
			TotalPages: int((total + int64(page.Limit) - 1) / int64(page.Limit)),
		},
	}, nil
}

func (s *PostServiceImpl) Get(ctx context.Context, id domain.PostID) (*dto.Post, error) {
	post, err := s.store.Posts().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	out, err := s.enrich(ctx, []domain.Post{*post})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *PostServiceImpl) Create(ctx context.Context, in dto.CreatePost, author domain.UserID) (_ *dto.Post, err error) {
	defer countMutation("create", &err)

	title, err := validTitle(in.Title)
	if err != nil {
		return nil, err
	}
	content, err := validContent(in.Content)
	if err != nil {
		return nil, err
	}
	status, err := validStatus(in.Status)
	if err != nil {
		return nil, err
	}
	if err := s.checkDiscipline(ctx, in.DisciplineID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	post := &domain.Post{
		ID:           uuid.New(),
		Title:        title,
		Content:      content,
		AuthorID:     author,
		DisciplineID: in.DisciplineID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	post.Publish(status, now)

	if err := s.store.Posts().Create(ctx, post); err != nil {
		return nil, mapWriteErr(err)
	}
	middleware.Logger(ctx).Info("post created", "post_id", post.ID, "author_id", author, "status", post.Status)
	return s.Get(ctx, post.ID)
}

func (s *PostServiceImpl) Update(ctx context.Context, id domain.PostID, patch dto.PostPatch) (_ *dto.Post, err error) {
	defer countMutation("update", &err)

	post, err := s.store.Posts().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	cols := map[string]any{}
	if patch.Title != nil {
		title, err := validTitle(*patch.Title)
		if err != nil {
			return nil, err
		}
		cols["title"] = title
	}
	if patch.Content != nil {
		content, err := validContent(*patch.Content)
		if err != nil {
			return nil, err
		}
		cols["content"] = content
	}
	if patch.DisciplineID != nil {
		if err := s.checkDiscipline(ctx, patch.DisciplineID); err != nil {
			return nil, err
		}
		cols["discipline_id"] = *patch.DisciplineID
	}
	now := s.now().UTC()
	if patch.Status != nil {
		status, err := validStatus(*patch.Status)
		if err != nil {
			return nil, err
		}
		wasPublished := post.PublishedAt != nil
		post.Publish(status, now)
		cols["status"] = string(status)
		if !wasPublished && post.PublishedAt != nil {
			cols["published_at"] = *post.PublishedAt
		}
	}
	cols["updated_at"] = now

	if err := s.store.Posts().Update(ctx, id, cols); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, mapWriteErr(err)
	}
	middleware.Logger(ctx).Info("post updated", "post_id", id, "fields", len(cols)-1)
	return s.Get(ctx, id)
}

func (s *PostServiceImpl) Delete(ctx context.Context, id domain.PostID) (err error) {
	defer countMutation("delete", &err)

	if err := s.store.Posts().Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return domain.ErrPostNotFound
		}
		return fmt.Errorf("delete post: %w", err)
	}
	middleware.Logger(ctx).Info("post deleted", "post_id", id)
	return nil
}

func (s *PostServiceImpl) checkDiscipline(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	ok, err := s.store.Disciplines().Exists(ctx, *id)
	if err != nil {
		return fmt.Errorf("check discipline: %w", err)
	}
	if !ok {
		return domain.Invalid("disciplineId", msgDisciplineUnknown)
	}
	return nil
}

// enrich joins each post with its author and discipline projections.
func (s *PostServiceImpl) enrich(ctx context.Context, posts []domain.Post) ([]dto.Post, error) {
	authorIDs := make([]uuid.UUID, 0, len(posts))
	discIDs := make([]uuid.UUID, 0, len(posts))
	seen := make(map[uuid.UUID]struct{}, len(posts)*2)
	for _, p := range posts {
		if _, ok := seen[p.AuthorID]; !ok {
			seen[p.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, p.AuthorID)
		}
		if p.DisciplineID != nil {
			if _, ok := seen[*p.DisciplineID]; !ok {
				seen[*p.DisciplineID] = struct{}{}
				discIDs = append(discIDs, *p.DisciplineID)
			}
		}
	}

	authors, err := s.store.Users().ListByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}
	discs, err := s.store.Disciplines().ListByIDs(ctx, discIDs)
	if err != nil {
		return nil, fmt.Errorf("load disciplines: %w", err)
	}

	out := make([]dto.Post, 0, len(posts))
	for _, p := range posts {
		item := dto.Post{
			ID:          p.ID.String(),
			Title:       p.Title,
			Content:     p.Content,
			AuthorID:    p.AuthorID.String(),
			Status:      string(p.Status),
			PublishedAt: p.PublishedAt,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		}
		if a, ok := authors[p.AuthorID]; ok {
			item.Author = &dto.AuthorRef{ID: a.ID.String(), Name: a.Name, Role: string(a.Role)}
		}
		if p.DisciplineID != nil {
			did := p.DisciplineID.String()
			item.DisciplineID = &did
			if d, ok := discs[*p.DisciplineID]; ok {
				item.Discipline = &dto.DisciplineRef{ID: d.ID.String(), Label: d.Label}
			}
		}
		out = append(out, item)
	}
	return out, nil
}

func mapWriteErr(err error) error {
	if errors.Is(err, store.ErrForeignKey) {
		return domain.Invalid("disciplineId", msgDisciplineUnknown)
	}
	return fmt.Errorf("write post: %w", err)
}

func countMutation(op string, err *error) {
	result := "success"
	switch {
	case *err == nil:
	case errors.Is(*err, domain.ErrValidation):
		result = "invalid"
	case errors.Is(*err, domain.ErrPostNotFound):
		result = "not_found"
	default:
		result = "failure"
	}
	metrics.PostMutationsTotal.WithLabelValues(op, result).Inc()
}
