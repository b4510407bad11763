package redis

import "context"

// ShutdownNotifier accepts hooks to run when the process shuts down.
// lifecycle.Bus implements it.
type ShutdownNotifier interface {
	OnShutdown(fn func(ctx context.Context) error)
}

// Shutdown returns a hook that closes the manager's connection.
// It is safe to run any number of times.
//
// Example:
//
//	bus.OnShutdown(redis.Shutdown(m))
func Shutdown(m *Manager) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		m.CloseConnection(ctx)
		return nil
	}
}
