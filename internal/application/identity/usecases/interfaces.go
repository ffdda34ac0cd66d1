package usecases

import (
	"context"
	"time"

	"tessera/internal/domain/user"
)

// SignupSession is a pending registration waiting for email confirmation.
// Sessions live in an expiring store; an unconfirmed signup simply vanishes
// when its TTL lapses.
type SignupSession struct {
	Token        string    `json:"token"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// SignupSessionStore keeps pending signups keyed by confirmation token.
// Get returns (nil, nil) for unknown or expired tokens. Expiry is enforced
// by the store itself, not by callers.
type SignupSessionStore interface {
	Put(ctx context.Context, session *SignupSession) error
	Get(ctx context.Context, token string) (*SignupSession, error)
	Delete(ctx context.Context, token string) error
}

// TokenIssuer mints access tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID uint, userSID string, role user.Role) (token string, expiresAt time.Time, err error)
}
