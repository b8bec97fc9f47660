package tokenregistry

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/notification-relay/internal/config"
)

func setupTestRegistry(t *testing.T) *Registry {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	registry, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return registry
}

func TestAddAndCount(t *testing.T) {
	registry := setupTestRegistry(t)
	ctx := context.Background()

	total, err := registry.Add(ctx, "ExponentPushToken[a]")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	total, err = registry.Add(ctx, "ExponentPushToken[b]")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	count, err := registry.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestAdd_DuplicateToken(t *testing.T) {
	registry := setupTestRegistry(t)
	ctx := context.Background()

	_, err := registry.Add(ctx, "ExponentPushToken[a]")
	require.NoError(t, err)

	total, err := registry.Add(ctx, "ExponentPushToken[a]")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestList(t *testing.T) {
	registry := setupTestRegistry(t)
	ctx := context.Background()

	tokens, err := registry.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tokens)

	_, err = registry.Add(ctx, "ExponentPushToken[a]")
	require.NoError(t, err)
	_, err = registry.Add(ctx, "ExponentPushToken[b]")
	require.NoError(t, err)

	tokens, err = registry.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ExponentPushToken[a]", "ExponentPushToken[b]"}, tokens)
}
