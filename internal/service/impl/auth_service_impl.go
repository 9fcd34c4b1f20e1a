package impl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"edublog/internal/domain"
	"edublog/internal/dto"
	"edublog/internal/jwtsigner"
	"edublog/internal/netutil"
	"edublog/internal/observability/metrics"
	"edublog/internal/observability/middleware"
	"edublog/internal/store"

	"github.com/google/uuid"
)

// SessionStore is satisfied by both the SQL and the Redis session stores.
type SessionStore interface {
	Create(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, id domain.SessionID) (*domain.Session, error)
	Delete(ctx context.Context, id domain.SessionID) error
}

type userDirectory interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type tokenCodec interface {
	Issue(p jwtsigner.Payload) (string, error)
	Verify(raw string) (jwtsigner.Payload, error)
}

type AuthServiceImpl struct {
	Users      userDirectory
	Sessions   SessionStore
	Tokens     tokenCodec
	SessionTTL time.Duration
	now        func() time.Time
}

func NewAuthServiceImpl(st *store.Store, sessions SessionStore, tokens *jwtsigner.Signer, sessionTTL time.Duration) *AuthServiceImpl {
	if sessions == nil {
		sessions = st.Sessions()
	}
	return &AuthServiceImpl{
		Users:      st.Users(),
		Sessions:   sessions,
		Tokens:     tokens,
		SessionTTL: sessionTTL,
		now:        time.Now,
	}
}

func (a *AuthServiceImpl) clock() time.Time {
	if a.now == nil {
		return time.Now().UTC()
	}
	return a.now().UTC()
}

func (a *AuthServiceImpl) Login(ctx context.Context, email, ip, ua string) (_ *dto.LoginResponse, err error) {
	result := "success"
	defer func() {
		if err != nil && result == "success" {
			result = "failure"
		}
		metrics.LoginsTotal.WithLabelValues(result).Inc()
	}()

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		result = "invalid"
		return nil, domain.Invalid("email", msgEmailRequired)
	}

	user, err := a.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			result = "unknown_email"
			return nil, domain.ErrEmailNotRegistered
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	now := a.clock()
	sid := uuid.New()
	token, err := a.Tokens.Issue(jwtsigner.Payload{UserID: user.ID, Role: user.Role, SessionID: sid})
	if err != nil {
		return nil, err
	}

	normIP, _ := netutil.NormalizeIP(ip)
	sess := &domain.Session{
		ID:        sid,
		UserID:    user.ID,
		TokenHash: jwtsigner.HashToken(token),
		// exp in the token has whole-second precision
		ExpiresAt: now.Add(a.SessionTTL).Truncate(time.Second),
		CreatedAt: now,
		IP:        normIP,
		UserAgent: netutil.TruncateUserAgent(ua),
	}
	if err := a.Sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	middleware.Logger(ctx).Info("user logged in", "user_id", user.ID, "session_id", sid, "role", user.Role)

	return &dto.LoginResponse{
		User: dto.UserView{
			ID:    user.ID.String(),
			Name:  user.Name,
			Email: user.Email,
			Role:  string(user.Role),
		},
		Token: token,
	}, nil
}

func (a *AuthServiceImpl) Logout(ctx context.Context, sessionID domain.SessionID) error {
	if err := a.Sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, store.ErrRecordNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	middleware.Logger(ctx).Info("session closed", "session_id", sessionID)
	return nil
}

func (a *AuthServiceImpl) Authenticate(ctx context.Context, token string) (domain.Identity, error) {
	id, reason, err := a.authenticate(ctx, token)
	if reason != "" {
		metrics.SessionRejectionsTotal.WithLabelValues(reason).Inc()
	}
	return id, err
}

func (a *AuthServiceImpl) authenticate(ctx context.Context, token string) (domain.Identity, string, error) {
	if token == "" {
		return domain.Identity{}, "missing_token", domain.ErrMissingToken
	}
	payload, err := a.Tokens.Verify(token)
	if err != nil {
		return domain.Identity{}, "invalid_token", domain.ErrInvalidToken
	}

	sess, err := a.Sessions.Get(ctx, payload.SessionID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return domain.Identity{}, "invalid_session", domain.ErrInvalidSession
		}
		return domain.Identity{}, "", fmt.Errorf("load session: %w", err)
	}
	if sess.TokenHash != jwtsigner.HashToken(token) || sess.UserID != payload.UserID {
		return domain.Identity{}, "invalid_session", domain.ErrInvalidSession
	}

	if sess.Expired(a.clock()) {
		if err := a.Sessions.Delete(ctx, sess.ID); err != nil {
			middleware.Logger(ctx).Error("drop expired session", "session_id", sess.ID, "error", err)
		}
		return domain.Identity{}, "expired_session", domain.ErrExpiredSession
	}

	return domain.Identity{
		UserID:    payload.UserID,
		Role:      payload.Role,
		SessionID: payload.SessionID,
	}, "", nil
}
