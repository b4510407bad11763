package cli

import (
	"errors"

	"github.com/dmitrymomot/redisconn/pkg/cache"
	"github.com/dmitrymomot/redisconn/pkg/redis"
)

// Exit codes.
const (
	ExitOK                 = 0
	ExitError              = 1
	ExitPanic              = 3
	ExitNotConfigured      = 10
	ExitConnectionFailed   = 11
	ExitMaxRetriesExceeded = 12
	ExitNotFound           = 13
)

// ExitCodeForError maps an error returned by Execute to a process exit code.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitOK
	}

	var rerr *redis.Error
	switch {
	case errors.As(err, &rerr) && rerr.Code == redis.CodeMaxRetriesExceeded:
		return ExitMaxRetriesExceeded
	case errors.As(err, &rerr):
		return ExitConnectionFailed
	case errors.Is(err, ErrNotConfigured), errors.Is(err, cache.ErrDisabled):
		return ExitNotConfigured
	case errors.Is(err, cache.ErrNotFound):
		return ExitNotFound
	default:
		return ExitError
	}
}
