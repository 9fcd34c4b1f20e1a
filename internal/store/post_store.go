package store

import (
	"context"
	"strings"

	"edublog/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostFilter narrows a post listing. Empty string fields are ignored; all
// set fields are AND-ed together.
type PostFilter struct {
	PublishedOnly bool
	Query         string // title OR content
	Title         string
	Author        string // author name, restricts via join
}

type PostStore struct{ db *gorm.DB }

func (s *Store) Posts() *PostStore { return &PostStore{db: s.DB} }

func (p *PostStore) Create(ctx context.Context, post *domain.Post) error {
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	return translate(p.db.WithContext(ctx).Create(post).Error)
}

// Upsert inserts post unless its id is already taken.
func (p *PostStore) Upsert(ctx context.Context, post *domain.Post) error {
	return translate(p.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(post).Error)
}

func (p *PostStore) Get(ctx context.Context, id domain.PostID) (*domain.Post, error) {
	var post domain.Post
	if err := p.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (p *PostStore) Exists(ctx context.Context, id domain.PostID) (bool, error) {
	var n int64
	if err := p.db.WithContext(ctx).Model(&domain.Post{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, translate(err)
	}
	return n > 0, nil
}

// Update writes only cols on the post with id. A post deleted in the
// meantime stays deleted and yields ErrRecordNotFound.
func (p *PostStore) Update(ctx context.Context, id domain.PostID, cols map[string]any) error {
	tx := p.db.WithContext(ctx).Model(&domain.Post{}).Where("id = ?", id).Updates(cols)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Delete hard-deletes the post and reports ErrRecordNotFound if no row matched.
func (p *PostStore) Delete(ctx context.Context, id domain.PostID) error {
	tx := p.db.WithContext(ctx).Delete(&domain.Post{}, "id = ?", id)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Find returns one page of posts matching f, newest first, plus the total
// number of matches.
func (p *PostStore) Find(ctx context.Context, f PostFilter, offset, limit int) ([]domain.Post, int64, error) {
	var total int64
	if err := p.db.WithContext(ctx).
		Model(&domain.Post{}).
		Scopes(f.apply).
		Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	posts := []domain.Post{}
	if total == 0 {
		return posts, 0, nil
	}
	if err := p.db.WithContext(ctx).
		Model(&domain.Post{}).
		Scopes(f.apply).
		Select("posts.*").
		Order("posts.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, 0, translate(err)
	}
	return posts, total, nil
}

func (f PostFilter) apply(db *gorm.DB) *gorm.DB {
	if f.Author != "" {
		db = db.Joins("JOIN users ON users.id = posts.author_id").
			Where("LOWER(users.name) LIKE ? ESCAPE '\\'", containsPattern(f.Author))
	}
	if f.PublishedOnly {
		db = db.Where("posts.status = ?", domain.StatusPublished)
	}
	if f.Query != "" {
		pat := containsPattern(f.Query)
		db = db.Where("(LOWER(posts.title) LIKE ? ESCAPE '\\' OR LOWER(posts.content) LIKE ? ESCAPE '\\')", pat, pat)
	}
	if f.Title != "" {
		db = db.Where("LOWER(posts.title) LIKE ? ESCAPE '\\'", containsPattern(f.Title))
	}
	return db
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}
