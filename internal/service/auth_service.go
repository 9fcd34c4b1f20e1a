package service

import (
	"context"

	"edublog/internal/domain"
	"edublog/internal/dto"
)

type AuthService interface {
	Login(ctx context.Context, email, ip, ua string) (*dto.LoginResponse, error)
	Logout(ctx context.Context, sessionID domain.SessionID) error
	// Authenticate resolves a bearer token to the caller's identity.
	Authenticate(ctx context.Context, token string) (domain.Identity, error)
}
