package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmailNotRegistered = errors.New("email not registered")
	ErrPostNotFound       = errors.New("post not found")

	ErrMissingToken    = errors.New("missing token")
	ErrInvalidToken    = errors.New("invalid token")
	ErrInvalidSession  = errors.New("invalid session")
	ErrExpiredSession  = errors.New("expired session")
	ErrUnauthenticated = errors.New("unauthenticated")

	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")
)

// ValidationError carries a message that is safe to return to the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func Invalid(field, msg string) error { return &ValidationError{Field: field, Message: msg} }

// ForbiddenError reports the allow-list that rejected the caller.
type ForbiddenError struct {
	Required []Role
	Current  Role
}

func (e *ForbiddenError) Error() string {
	req := make([]string, len(e.Required))
	for i, r := range e.Required {
		req[i] = string(r)
	}
	return "forbidden: role " + string(e.Current) + " not in [" + strings.Join(req, ",") + "]"
}

func (e *ForbiddenError) Is(target error) bool { return target == ErrForbidden }
