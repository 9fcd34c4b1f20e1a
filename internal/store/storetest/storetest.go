// Package storetest opens throwaway SQLite-backed stores for tests.
package storetest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"edublog/internal/domain"
	"edublog/internal/store"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated in-memory database private to t.
func Open(t testing.TB) *store.Store {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared", name, uuid.NewString()[:8])
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(store.Models()...); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return store.New(db)
}

func User(t testing.TB, st *store.Store, name, email string, role domain.Role) *domain.User {
	t.Helper()
	now := time.Now().UTC()
	u := &domain.User{ID: uuid.New(), Name: name, Email: email, Role: role, CreatedAt: now, UpdatedAt: now}
	if err := st.DB.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func Discipline(t testing.TB, st *store.Store, label string) *domain.Discipline {
	t.Helper()
	d := &domain.Discipline{ID: uuid.New(), Label: label, CreatedAt: time.Now().UTC()}
	if err := st.DB.Create(d).Error; err != nil {
		t.Fatalf("create discipline: %v", err)
	}
	return d
}

// Post inserts a post created at the given time.
func Post(t testing.TB, st *store.Store, author domain.UserID, title, content string, status domain.PostStatus, createdAt time.Time) *domain.Post {
	t.Helper()
	p := &domain.Post{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		AuthorID:  author,
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if status == domain.StatusPublished {
		at := createdAt
		p.PublishedAt = &at
	}
	if err := st.DB.Create(p).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return p
}
