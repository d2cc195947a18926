package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/edusite/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// TokenBlacklist records revoked session IDs (jti) until the token would
// have expired anyway.
type TokenBlacklist interface {
	// AddToBlacklist revokes a jti; ttl should be the token's remaining lifetime
	AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error

	// IsBlacklisted reports whether a jti has been revoked
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

const blacklistKeyPrefix = "edusite:session:revoked:"

// RedisTokenBlacklist implements TokenBlacklist using Redis.
// Revocations survive restarts and are shared between instances.
type RedisTokenBlacklist struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisTokenBlacklist connects to Redis and verifies the connection
func NewRedisTokenBlacklist(ctx context.Context, cfg config.RedisConfig) (*RedisTokenBlacklist, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis for token blacklist: %w", err)
	}

	return NewRedisTokenBlacklistWithClient(client), nil
}

// NewRedisTokenBlacklistWithClient creates a token blacklist with an existing Redis client
func NewRedisTokenBlacklistWithClient(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{
		client:    client,
		keyPrefix: blacklistKeyPrefix,
	}
}

func (b *RedisTokenBlacklist) key(jti string) string {
	return b.keyPrefix + jti
}

// AddToBlacklist stores the jti with the given TTL
func (b *RedisTokenBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, b.key(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to add token to blacklist: %w", err)
	}
	return nil
}

// IsBlacklisted checks if a jti is in the blacklist
func (b *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	exists, err := b.client.Exists(ctx, b.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return exists > 0, nil
}

// Ping checks the Redis connection
func (b *RedisTokenBlacklist) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

// Close closes the Redis client
func (b *RedisTokenBlacklist) Close() error {
	return b.client.Close()
}

var _ TokenBlacklist = (*RedisTokenBlacklist)(nil)

// InMemoryTokenBlacklist keeps revocations in process memory.
// Revocations are lost on restart and not shared between instances.
type InMemoryTokenBlacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time // jti -> expiration time
}

// NewInMemoryTokenBlacklist creates a new in-memory token blacklist
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		revoked: make(map[string]time.Time),
	}
}

// AddToBlacklist adds a jti to the in-memory blacklist
func (b *InMemoryTokenBlacklist) AddToBlacklist(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked[jti] = time.Now().Add(ttl)
	return nil
}

// IsBlacklisted checks if a jti is blacklisted and drops expired entries
func (b *InMemoryTokenBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	expiration, exists := b.revoked[jti]
	if !exists {
		return false, nil
	}
	if time.Now().After(expiration) {
		delete(b.revoked, jti)
		return false, nil
	}
	return true, nil
}

var _ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
