package auth_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/edusite/backend/internal/infrastructure/auth"
	"github.com/edusite/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist_AddToBlacklist(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-1", time.Hour))

	revoked, err := blacklist.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = blacklist.IsBlacklisted(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_Expiration(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-expire", time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	revoked, err := blacklist.IsBlacklisted(ctx, "jti-expire")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_NonPositiveTTL(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, blacklist.AddToBlacklist(ctx, "already-expired", 0))

	revoked, err := blacklist.IsBlacklisted(ctx, "already-expired")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_Concurrent(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			jti := fmt.Sprintf("jti-%d", i)
			assert.NoError(t, blacklist.AddToBlacklist(ctx, jti, time.Hour))
			revoked, err := blacklist.IsBlacklisted(ctx, jti)
			assert.NoError(t, err)
			assert.True(t, revoked)
		}(i)
	}
	wg.Wait()
}

func TestNewRedisTokenBlacklist_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := auth.NewRedisTokenBlacklist(ctx, config.RedisConfig{Host: "127.0.0.1", Port: 1})
	assert.Error(t, err)
}

func TestTokenBlacklist_Interface(t *testing.T) {
	var _ auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	var _ auth.TokenBlacklist = (*auth.RedisTokenBlacklist)(nil)
}
