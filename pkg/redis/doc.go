// Package redis manages a single, lazily established Redis connection.
//
// This package wraps [github.com/redis/go-redis/v9]. A [Manager] resolves
// where to connect, dials with a bounded linear backoff, caches the resulting
// handle, and closes it when the process shuts down. Every caller of
// [Manager.Connect] gets the same handle until it is closed or reset.
//
// # Address Resolution
//
// Addresses are taken from, highest priority first:
//
//   - Explicit addresses passed with [WithAddress]
//   - REDIS_WRITE_URL (and REDIS_READ_URL in cluster mode)
//   - The "redis" settings key, shaped {host, port}
//
// Cluster mode is selected by REDIS_CLUSTER_MODE and is evaluated on every
// establishment. In cluster mode the root nodes are the write URL, the read
// URL and the explicit addresses, in that order. Addresses without a scheme
// get redis:// prepended (see [NormalizeURL]).
//
// When nothing resolves, Connect returns a nil client and a nil error: the
// cache is disabled, which is not a failure.
//
// # Retries
//
// After every failed dial, including the first, [RetryDelay] decides whether
// to retry. Attempt n waits min(n*50ms, 1s); once n reaches the configured
// maximum (default 3, see [WithMaxRetries]) the attempt fails with
// [CodeMaxRetriesExceeded]. go-redis' own dial and command retries are
// disabled, so a budget of n contacts the server exactly n+1 times.
//
// # Usage
//
//	import (
//		"context"
//		"log/slog"
//
//		"github.com/dmitrymomot/redisconn/pkg/lifecycle"
//		"github.com/dmitrymomot/redisconn/pkg/redis"
//	)
//
//	func main() {
//		ctx := context.Background()
//		bus := lifecycle.New()
//
//		m := redis.NewManager(
//			redis.WithLogger(slog.Default()),
//			redis.WithShutdownNotifier(bus),
//		)
//
//		client, err := m.Connect(ctx, redis.WithMaxRetries(5))
//		if err != nil {
//			slog.Error("redis unavailable", "error", err)
//			return
//		}
//		if client == nil {
//			slog.Info("redis not configured, running without cache")
//		}
//
//		_ = bus.Wait(ctx)
//	}
//
// # Error Handling
//
// Connect failures are *[Error] values carrying a [Code]:
//
//   - [CodeGeneric] - any transport failure not caused by retry exhaustion
//   - [CodeMaxRetriesExceeded] - the retry policy gave up
//
// [Error] matches [ErrConnectionFailed] and, for exhausted retries,
// [ErrMaxRetriesExceeded] with errors.Is. Errors raised by the transport after
// a successful connect are logged and never returned.
package redis
