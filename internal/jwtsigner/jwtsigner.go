// Package jwtsigner issues and verifies the HS256 bearer tokens handed out at
// login. A token is only as good as the session it names; callers must still
// look the session up.
package jwtsigner

import (
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"edublog/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

const DefaultTTL = 24 * time.Hour

var (
	ErrMissingSecret = errors.New("jwtsigner: signing secret is empty")
	ErrInvalidToken  = domain.ErrInvalidToken
)

type Payload struct {
	UserID    domain.UserID
	Role      domain.Role
	SessionID domain.SessionID
}

type Claims struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}

type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func New(secret []byte, ttl time.Duration) (*Signer, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Signer{secret: secret, ttl: ttl, now: time.Now}, nil
}

// WithClock swaps the time source used for iat/exp and for validation.
func (s *Signer) WithClock(now func() time.Time) *Signer {
	cp := *s
	cp.now = now
	return &cp
}

func (s *Signer) TTL() time.Duration { return s.ttl }

func (s *Signer) Issue(p Payload) (string, error) {
	now := s.now()
	claims := Claims{
		ID:        p.UserID.String(),
		Role:      string(p.Role),
		SessionID: p.SessionID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (s *Signer) Verify(raw string) (Payload, error) {
	if raw == "" {
		return Payload{}, ErrInvalidToken
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	var claims Claims
	tok, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		return Payload{}, ErrInvalidToken
	}

	uid, err := uuid.Parse(claims.ID)
	if err != nil {
		return Payload{}, ErrInvalidToken
	}
	sid, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return Payload{}, ErrInvalidToken
	}
	role := domain.Role(claims.Role)
	if !role.Valid() {
		return Payload{}, ErrInvalidToken
	}
	return Payload{UserID: uid, Role: role, SessionID: sid}, nil
}

// HashToken is the digest stored on the session row in place of the token.
func HashToken(raw string) string {
	sum := blake2b.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
