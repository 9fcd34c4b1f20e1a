package service

import (
	"context"

	"edublog/internal/domain"
	"edublog/internal/dto"
)

type PostService interface {
	List(ctx context.Context, page dto.PageRequest, viewer domain.Role) (*dto.PostPage, error)
	Search(ctx context.Context, q dto.SearchRequest, viewer domain.Role) (*dto.PostPage, error)
	Get(ctx context.Context, id domain.PostID) (*dto.Post, error)
	Create(ctx context.Context, in dto.CreatePost, author domain.UserID) (*dto.Post, error)
	Update(ctx context.Context, id domain.PostID, patch dto.PostPatch) (*dto.Post, error)
	Delete(ctx context.Context, id domain.PostID) error
}

type PostReadService interface {
	MarkAsRead(ctx context.Context, postID domain.PostID, userID domain.UserID) (rec *dto.ReadRecord, created bool, err error)
	CheckIfRead(ctx context.Context, postID domain.PostID, userID domain.UserID) (dto.ReadStatus, error)
}

type DisciplineService interface {
	List(ctx context.Context) ([]dto.Discipline, error)
}
