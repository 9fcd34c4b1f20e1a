package domain

import "github.com/google/uuid"

// Identity is attached to a request once its token and session check out.
// The zero value is the anonymous caller.
type Identity struct {
	UserID    UserID
	Role      Role
	SessionID SessionID
}

func (i Identity) Anonymous() bool { return i.UserID == uuid.Nil }
