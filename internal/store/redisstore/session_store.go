// Package redisstore keeps sessions in Redis instead of the user_sessions
// table. Keys expire on their own a little after the session does.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"edublog/internal/domain"
	"edublog/internal/store"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Retention keeps an expired session readable long enough for the access
// guard to report it as expired rather than unknown.
const Retention = time.Hour

type client interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type SessionStore struct {
	client client
	prefix string
	now    func() time.Time
}

func Dial(ctx context.Context, addr, password string) (*redis.Client, error) {
	c := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return c, nil
}

func NewSessionStore(c client) *SessionStore {
	return &SessionStore{client: c, prefix: "edublog:session:", now: time.Now}
}

func (r *SessionStore) key(id domain.SessionID) string { return r.prefix + id.String() }

func (r *SessionStore) Create(ctx context.Context, s *domain.Session) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return errors.New("redisstore: session already expired")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("redisstore: marshal session: %w", err)
	}
	return r.client.Set(ctx, r.key(s.ID), data, ttl+Retention).Err()
}

func (r *SessionStore) Get(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	val, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	var s domain.Session
	if err := json.Unmarshal(val, &s); err != nil {
		return nil, fmt.Errorf("redisstore: unmarshal session: %w", err)
	}
	return &s, nil
}

func (r *SessionStore) Delete(ctx context.Context, id domain.SessionID) error {
	return r.client.Del(ctx, r.key(id)).Err()
}
