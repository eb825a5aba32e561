package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/alchemorsel/menugen/internal/infrastructure/config"
	"github.com/alchemorsel/menugen/internal/ports/outbound"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

func TestNewClient_UsesConfiguredAddress(t *testing.T) {
	client := NewClient(config.RedisConfig{Host: "cache.internal", Port: 6380, Database: 2})
	defer client.Close()

	c, ok := client.(*goredis.Client)
	require.True(t, ok, "single address should build a plain client")
	assert.Equal(t, "cache.internal:6380", c.Options().Addr)
	assert.Equal(t, 2, c.Options().DB)
}

func TestCacheRepository_UnreachableServer(t *testing.T) {
	client := NewClient(config.RedisConfig{
		Host:        "127.0.0.1",
		Port:        1,
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	})
	defer client.Close()

	core, logs := observer.New(zapcore.ErrorLevel)
	repo := NewCacheRepository(client, zap.New(core))
	ctx := context.Background()

	_, err := repo.Get(ctx, "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, outbound.ErrCacheMiss)
	assert.Error(t, Ping(ctx, client))
	assert.Equal(t, 1, logs.FilterMessage("Redis GET failed").Len())
}

// TestCacheRepository_Live runs against a real server when
// MENUGEN_TEST_REDIS_ADDR is set, e.g. localhost:6379.
func TestCacheRepository_Live(t *testing.T) {
	addr := os.Getenv("MENUGEN_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("MENUGEN_TEST_REDIS_ADDR not set")
	}

	client := goredis.NewUniversalClient(&goredis.UniversalOptions{Addrs: []string{addr}})
	defer client.Close()

	repo := NewCacheRepository(client, zap.NewNop())
	ctx := context.Background()
	key := "menugen:test:" + uuid.NewString()

	_, err := repo.Get(ctx, key)
	assert.ErrorIs(t, err, outbound.ErrCacheMiss)

	require.NoError(t, repo.Set(ctx, key, []byte("menu"), time.Minute))
	got, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "menu", string(got))

	exists, err := repo.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.Delete(ctx, key))
	exists, err = repo.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}
