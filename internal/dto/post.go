package dto

import (
	"time"

	"edublog/internal/domain"

	"github.com/google/uuid"
)

// CreatePost is the validated input for a new post. Status may be empty.
type CreatePost struct {
	Title        string
	Content      string
	DisciplineID *uuid.UUID
	Status       domain.PostStatus
}

// PostPatch carries only the fields the caller sent.
type PostPatch struct {
	Title        *string
	Content      *string
	DisciplineID *uuid.UUID
	Status       *domain.PostStatus
}

type PageRequest struct {
	Page  int
	Limit int
}

type SearchRequest struct {
	Query  string
	Title  string
	Author string
	PageRequest
}

func (s SearchRequest) Empty() bool {
	return s.Query == "" && s.Title == "" && s.Author == ""
}

type AuthorRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type DisciplineRef struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type Post struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Content      string         `json:"content"`
	AuthorID     string         `json:"authorId"`
	DisciplineID *string        `json:"disciplineId"`
	Status       string         `json:"status"`
	PublishedAt  *time.Time     `json:"publishedAt"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	Author       *AuthorRef     `json:"author"`
	Discipline   *DisciplineRef `json:"discipline"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type PostPage struct {
	Data       []Post     `json:"data"`
	Pagination Pagination `json:"pagination"`
}
