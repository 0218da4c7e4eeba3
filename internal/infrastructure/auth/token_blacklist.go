package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist records revocations, either of a single token id (jti) or
// of every token a user was issued up to a cut-off.
type TokenBlacklist interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
	RevokeUser(ctx context.Context, userID string, since time.Time, ttl time.Duration) error
	IsUserRevoked(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error)
}

const blacklistKeyPrefix = "oficina:token:"

// RedisTokenBlacklist shares revocations between every process using the
// same Redis database. Keys expire with the tokens they revoke.
type RedisTokenBlacklist struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisTokenBlacklist(client redis.UniversalClient) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client, prefix: blacklistKeyPrefix}
}

func (b *RedisTokenBlacklist) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if err := b.client.Set(ctx, b.prefix+"jti:"+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (b *RedisTokenBlacklist) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, b.prefix+"jti:"+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return n > 0, nil
}

// RevokeUser stores the cut-off in unix seconds, the resolution of iat
func (b *RedisTokenBlacklist) RevokeUser(ctx context.Context, userID string, since time.Time, ttl time.Duration) error {
	if err := b.client.Set(ctx, b.prefix+"user:"+userID, since.Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("revoke user tokens: %w", err)
	}
	return nil
}

func (b *RedisTokenBlacklist) IsUserRevoked(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	raw, err := b.client.Get(ctx, b.prefix+"user:"+userID).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("check revoked user: %w", err)
	}

	cutoff, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("corrupt revocation cut-off %q: %w", raw, err)
	}
	return tokenIssuedAt.Unix() <= cutoff, nil
}

// InMemoryTokenBlacklist is used when Redis is disabled. Revocations live
// only as long as the process.
type InMemoryTokenBlacklist struct {
	mu      sync.Mutex
	jtis    map[string]time.Time // expiry of each revoked jti
	cutoffs map[string]time.Time // per user
	now     func() time.Time
}

func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		jtis:    make(map[string]time.Time),
		cutoffs: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (b *InMemoryTokenBlacklist) RevokeToken(_ context.Context, jti string, ttl time.Duration) error {
	b.mu.Lock()
	b.jtis[jti] = b.now().Add(ttl)
	b.mu.Unlock()
	return nil
}

// IsTokenRevoked drops expired entries as it meets them
func (b *InMemoryTokenBlacklist) IsTokenRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	expiry, ok := b.jtis[jti]
	if ok && !b.now().Before(expiry) {
		delete(b.jtis, jti)
		ok = false
	}
	return ok, nil
}

func (b *InMemoryTokenBlacklist) RevokeUser(_ context.Context, userID string, since time.Time, _ time.Duration) error {
	b.mu.Lock()
	b.cutoffs[userID] = since
	b.mu.Unlock()
	return nil
}

func (b *InMemoryTokenBlacklist) IsUserRevoked(_ context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	b.mu.Lock()
	cutoff, ok := b.cutoffs[userID]
	b.mu.Unlock()
	return ok && tokenIssuedAt.Unix() <= cutoff.Unix(), nil
}

var (
	_ TokenBlacklist = (*RedisTokenBlacklist)(nil)
	_ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
)
