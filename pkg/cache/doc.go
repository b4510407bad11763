// Package cache stores JSON values in Redis hashes keyed by entity and id.
//
// A [Store] borrows its connection from a [Connector], normally the shared
// *redis.Manager from [github.com/dmitrymomot/redisconn/pkg/redis]. Every
// call asks the connector for the client, so a store created before Redis is
// reachable starts working as soon as a connection exists.
//
//	m := redis.NewManager(redis.WithSettings(settings.Default()))
//	profiles := cache.NewStore[Profile](m, nil,
//	    cache.WithPrefix("app"),
//	    cache.WithTTL(24*time.Hour),
//	)
//
//	created, err := profiles.Set(ctx, "profile", "42", p) // HSET app:profile 42 {...}
//	p, err := profiles.Get(ctx, "profile", "42")          // HGET app:profile 42
//	removed, err := profiles.Delete(ctx, "profile", "42") // HDEL app:profile 42
//
// Pass a custom [Marshaler] as the second argument to [NewStore] to use a
// different serialization format. If nil, JSON is used.
//
// # Error Handling
//
//   - [ErrNotFound] - the field does not exist
//   - [ErrDisabled] - the connector has no connection configured
//   - [ErrSetFailed], [ErrGetFailed], [ErrDeleteFailed] - the command failed
//   - [ErrMarshal], [ErrUnmarshal] - serialization failed
//
// Operation errors are joined with the underlying cause, so both the sentinel
// and the original error match with [errors.Is].
package cache
