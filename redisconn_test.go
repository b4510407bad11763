package redisconn_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/redisconn"
	"github.com/dmitrymomot/redisconn/pkg/redis"
)

// These tests swap the process-wide manager and must not run in parallel.

func useManager(t *testing.T, m *redis.Manager) {
	t.Helper()

	redisconn.SetDefault(m)
	t.Cleanup(func() {
		m.CloseConnection(context.Background())
		redisconn.SetDefault(nil)
	})
}

func TestDefault(t *testing.T) {
	redisconn.SetDefault(nil)
	t.Cleanup(func() { redisconn.SetDefault(nil) })

	first := redisconn.Default()
	require.NotNil(t, first)
	require.Same(t, first, redisconn.Default())

	redisconn.SetDefault(nil)
	require.NotSame(t, first, redisconn.Default())
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	useManager(t, redis.NewManager(redis.WithEnvironment(map[string]string{})))
	ctx := context.Background()

	client, err := redisconn.Connect(ctx, redisconn.WithAddress(mr.Addr()))
	require.NoError(t, err)
	require.NotNil(t, client)

	again, err := redisconn.Connect(ctx)
	require.NoError(t, err)
	require.Same(t, client, again)
	require.NoError(t, redisconn.Healthcheck(ctx))

	redisconn.CloseConnection(ctx)
	require.Error(t, redisconn.Healthcheck(ctx))

	fresh, err := redisconn.Connect(ctx, redisconn.WithAddress(mr.Addr()))
	require.NoError(t, err)
	require.NotSame(t, client, fresh)
}

func TestConnect_NotConfigured(t *testing.T) {
	useManager(t, redis.NewManager(redis.WithEnvironment(map[string]string{})))

	client, err := redisconn.Connect(context.Background())
	require.NoError(t, err)
	require.Nil(t, client)
}

func TestReset(t *testing.T) {
	mr := miniredis.RunT(t)
	useManager(t, redis.NewManager(redis.WithEnvironment(map[string]string{"REDIS_WRITE_URL": mr.Addr()})))
	ctx := context.Background()

	client, err := redisconn.Connect(ctx)
	require.NoError(t, err)

	redisconn.Reset()
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Ping(ctx).Err(), "reset does not close the old client")

	fresh, err := redisconn.Connect(ctx)
	require.NoError(t, err)
	require.NotSame(t, client, fresh)
}

func TestErrorCodes(t *testing.T) {
	require.Equal(t, redisconn.CodeGeneric, redisconn.ErrorCodes.Generic)
	require.Equal(t, redisconn.CodeMaxRetriesExceeded, redisconn.ErrorCodes.MaxRetriesExceeded)
	require.Equal(t, 1, int(redisconn.ErrorCodes.Generic))
	require.Equal(t, 2, int(redisconn.ErrorCodes.MaxRetriesExceeded))
}
