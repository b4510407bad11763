package redisconn

import (
	"context"
	"log/slog"
	"sync"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/redisconn/pkg/lifecycle"
	"github.com/dmitrymomot/redisconn/pkg/redis"
	"github.com/dmitrymomot/redisconn/pkg/settings"
)

// Type aliases - public API
type (
	// Manager owns the shared connection. See redis.Manager.
	Manager = redis.Manager

	// Error is the typed connect failure carrying a Code.
	Error = redis.Error

	// Code classifies connect failures.
	Code = redis.Code

	// ConnectOption configures a single connection attempt.
	ConnectOption = redis.ConnectOption
)

// Error codes.
const (
	CodeGeneric            = redis.CodeGeneric
	CodeMaxRetriesExceeded = redis.CodeMaxRetriesExceeded
)

// ErrorCodes is the static code lookup, e.g. ErrorCodes.MaxRetriesExceeded.
var ErrorCodes = redis.ErrorCodes

// Connect options re-exported for convenience.
var (
	WithAddress        = redis.WithAddress
	WithMaxRetries     = redis.WithMaxRetries
	WithConnectTimeout = redis.WithConnectTimeout
)

var (
	defaultMu      sync.Mutex
	defaultManager *redis.Manager
)

// Default returns the process-wide Manager, creating it on first use. It reads
// the "redis" key from settings.Default(), logs through slog.Default() and
// closes its connection when lifecycle.Default() shuts down.
func Default() *redis.Manager {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultManager == nil {
		defaultManager = redis.NewManager(
			redis.WithLogger(slog.Default()),
			redis.WithSettings(settings.Default()),
			redis.WithShutdownNotifier(lifecycle.Default()),
		)
	}
	return defaultManager
}

// SetDefault replaces the process-wide Manager. A nil m makes the next
// Default call build a fresh one. The previous manager is not closed.
func SetDefault(m *redis.Manager) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultManager = m
}

// Connect returns the shared connection, establishing it on first use.
// A nil client and nil error mean Redis is not configured.
func Connect(ctx context.Context, opts ...ConnectOption) (goredis.UniversalClient, error) {
	return Default().Connect(ctx, opts...)
}

// CloseConnection closes the shared connection if there is one.
func CloseConnection(ctx context.Context) {
	Default().CloseConnection(ctx)
}

// Reset forgets the shared connection without closing it.
func Reset() {
	Default().Reset()
}

// Healthcheck pings the shared connection. See redis.Healthcheck.
func Healthcheck(ctx context.Context) error {
	return redis.Healthcheck(Default())(ctx)
}
