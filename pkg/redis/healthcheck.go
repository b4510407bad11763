package redis

import (
	"context"
	"errors"
)

// Healthcheck returns a closure that pings the manager's cached connection.
// It does not connect on its own: no cached connection is reported as
// ErrNotConnected.
func Healthcheck(m *Manager) func(context.Context) error {
	return func(ctx context.Context) error {
		if m == nil {
			return ErrHealthcheckFailed
		}
		client := m.current()
		if client == nil {
			return errors.Join(ErrHealthcheckFailed, ErrNotConnected)
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
