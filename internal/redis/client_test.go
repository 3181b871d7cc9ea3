package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/pokeduel/internal/redis"
)

func TestNewClientRequiresEndpoint(t *testing.T) {
	_, err := redis.NewClient("", nil)
	assert.Error(t, err)
}

func TestClient(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("duel:1", "a"))
	require.NoError(t, mr.Set("duel:2", "b"))
	require.NoError(t, mr.Set("other", "c"))

	client, err := redis.NewClient(mr.Addr(), &redis.Options{PoolSize: 2})
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	require.NoError(t, redis.Ping(ctx, client))

	keys, err := redis.ScanKeys(ctx, client, "duel:*")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"duel:1", "duel:2"}, keys)

	_, err = client.Get(ctx, "missing").Result()
	assert.True(t, redis.IsNil(err))
	assert.False(t, redis.IsNil(assert.AnError))
}

func TestPingUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := redis.NewClient(mr.Addr(), nil)
	require.NoError(t, err)
	mr.Close()

	assert.Error(t, redis.Ping(context.Background(), client))
}
