package auth

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
)

// ErrNotAuthenticated is the single outcome for a token that does not
// authenticate anyone. Finer reasons are wrapped alongside it.
var ErrNotAuthenticated = errors.New("not authenticated")

// Reasons joined with ErrNotAuthenticated
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrInvalidClaims = errors.New("invalid token claims")
	ErrTokenRevoked  = errors.New("token has been revoked")
)

// Principal is the authenticated caller behind a token
type Principal struct {
	UserID    uuid.UUID
	Username  string
	Roles     []string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// HasRole reports whether the principal carries role
func (p *Principal) HasRole(role string) bool {
	return slices.Contains(p.Roles, role)
}

// RemainingTTL is the time left until the token expires, never negative
func (p *Principal) RemainingTTL() time.Duration {
	return max(time.Until(p.ExpiresAt), 0)
}

// IssueInput describes whom a token is issued for
type IssueInput struct {
	UserID   uuid.UUID
	Username string
	Roles    []string
}

// Token is a signed access token
type Token struct {
	Value     string
	TokenType string // Bearer
	ExpiresAt time.Time
}

// TokenService issues, authenticates and revokes access tokens.
// Authenticate returns either a principal or an error; a rejected token is
// reported as ErrNotAuthenticated, anything else is an infrastructure failure.
type TokenService interface {
	Issue(ctx context.Context, input IssueInput) (*Token, error)
	Authenticate(ctx context.Context, token string) (*Principal, error)
	Revoke(ctx context.Context, principal *Principal) error
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}

type principalKey struct{}

// WithPrincipal stores the principal in ctx
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal stored in ctx, or ErrNotAuthenticated
func PrincipalFrom(ctx context.Context) (*Principal, error) {
	if p, ok := ctx.Value(principalKey{}).(*Principal); ok && p != nil {
		return p, nil
	}
	return nil, ErrNotAuthenticated
}
