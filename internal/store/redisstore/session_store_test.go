package redisstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"edublog/internal/domain"
	"edublog/internal/store"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type fakeRedis struct {
	data map[string]string
	ttl  map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, exp time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttl[key] = exp
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestSessionRoundTrip(t *testing.T) {
	now := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	fake := newFakeRedis()
	rs := NewSessionStore(fake)
	rs.now = func() time.Time { return now }
	ctx := context.Background()

	s := &domain.Session{UserID: uuid.New(), TokenHash: "abc", ExpiresAt: now.Add(24 * time.Hour), CreatedAt: now}
	if err := rs.Create(ctx, s); err != nil {
		t.Fatalf("create: %v", err)
	}
	if s.ID == uuid.Nil {
		t.Fatal("id not assigned")
	}
	if got := fake.ttl[rs.key(s.ID)]; got != 24*time.Hour+Retention {
		t.Fatalf("ttl = %s", got)
	}

	got, err := rs.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UserID != s.UserID || got.TokenHash != "abc" || !got.ExpiresAt.Equal(s.ExpiresAt) {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	if err := rs.Delete(ctx, s.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := rs.Get(ctx, s.ID); !errors.Is(err, store.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestCreateRejectsExpired(t *testing.T) {
	rs := NewSessionStore(newFakeRedis())
	err := rs.Create(context.Background(), &domain.Session{ExpiresAt: time.Now().Add(-time.Minute)})
	if err == nil {
		t.Fatal("expected error for expired session")
	}
}
