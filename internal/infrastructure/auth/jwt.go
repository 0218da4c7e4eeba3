package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/oficina/backend/internal/infrastructure/config"
)

// Claims represents the access token claims
type Claims struct {
	jwt.RegisteredClaims
	Username string   `json:"username"`
	Roles    []string `json:"roles,omitempty"`
}

// JWTService implements TokenService with HS256-signed JWTs and a revocation blacklist
type JWTService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
	blacklist  TokenBlacklist
	now        func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig, blacklist TokenBlacklist) *JWTService {
	if blacklist == nil {
		blacklist = NewInMemoryTokenBlacklist()
	}
	return &JWTService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.AccessTokenExpiration,
		issuer:     cfg.Issuer,
		blacklist:  blacklist,
		now:        time.Now,
	}
}

// Issue signs a new access token
func (s *JWTService) Issue(_ context.Context, input IssueInput) (*Token, error) {
	if input.UserID == uuid.Nil {
		return nil, fmt.Errorf("issue token: %w", ErrInvalidClaims)
	}

	now := s.now()
	expiresAt := now.Add(s.expiration)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   input.UserID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username: input.Username,
		Roles:    input.Roles,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Token{Value: signed, TokenType: "Bearer", ExpiresAt: expiresAt}, nil
}

// Authenticate validates a token and returns its principal
func (s *JWTService) Authenticate(ctx context.Context, tokenString string) (*Principal, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || claims.ID == "" || claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: %w", ErrNotAuthenticated, ErrInvalidClaims)
	}

	principal := &Principal{
		UserID:    userID,
		Username:  claims.Username,
		Roles:     claims.Roles,
		TokenID:   claims.ID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}

	revoked, err := s.blacklist.IsTokenRevoked(ctx, principal.TokenID)
	if err != nil {
		return nil, err
	}
	if !revoked {
		revoked, err = s.blacklist.IsUserRevoked(ctx, userID.String(), principal.IssuedAt)
		if err != nil {
			return nil, err
		}
	}
	if revoked {
		return nil, fmt.Errorf("%w: %w", ErrNotAuthenticated, ErrTokenRevoked)
	}
	return principal, nil
}

func (s *JWTService) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

// Revoke blacklists one token until it would have expired anyway
func (s *JWTService) Revoke(ctx context.Context, principal *Principal) error {
	ttl := principal.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return s.blacklist.RevokeToken(ctx, principal.TokenID, ttl)
}

// RevokeAll invalidates every token issued to userID so far
func (s *JWTService) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	return s.blacklist.RevokeUser(ctx, userID.String(), s.now(), s.expiration)
}

// Expiration returns the access token lifetime
func (s *JWTService) Expiration() time.Duration {
	return s.expiration
}

// Ensure JWTService implements TokenService
var _ TokenService = (*JWTService)(nil)
