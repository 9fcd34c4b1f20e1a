package http

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"edublog/internal/domain"
	"edublog/internal/service"
)

type identityKey struct{}

func withIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the authenticated caller, if any.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(domain.Identity)
	return id, ok && !id.Anonymous()
}

// bearerToken takes the second space-separated segment of the
// Authorization header. present is false when the header is absent.
func bearerToken(r *http.Request) (token string, present bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	parts := strings.Split(h, " ")
	if len(parts) < 2 {
		return "", true
	}
	return parts[1], true
}

type Authenticator struct {
	svc service.AuthService
}

func NewAuthenticator(svc service.AuthService) *Authenticator {
	return &Authenticator{svc: svc}
}

// Require rejects the request unless it carries a token backed by a live session.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, present := bearerToken(r)
		if !present {
			writeError(w, r, domain.ErrMissingToken)
			return
		}
		a.authenticate(w, r, token, next)
	})
}

// Optional lets requests without an Authorization header through as
// anonymous. A header that is present must still be valid.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, present := bearerToken(r)
		if !present {
			next.ServeHTTP(w, r)
			return
		}
		a.authenticate(w, r, token, next)
	})
}

func (a *Authenticator) authenticate(w http.ResponseWriter, r *http.Request, token string, next http.Handler) {
	id, err := a.svc.Authenticate(r.Context(), token)
	if err != nil {
		writeError(w, r, err)
		return
	}
	next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), id)))
}

// RequireRole admits only callers whose role is in roles. It must run after
// Authenticator.Require.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	allowed := slices.Clone(roles)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				writeError(w, r, domain.ErrUnauthenticated)
				return
			}
			if !slices.Contains(allowed, id.Role) {
				writeError(w, r, &domain.ForbiddenError{Required: allowed, Current: id.Role})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func viewerRole(r *http.Request) domain.Role {
	if id, ok := IdentityFromContext(r.Context()); ok {
		return id.Role
	}
	return ""
}
