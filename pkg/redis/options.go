package redis

import (
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/redisconn/pkg/logger"
)

const tracerName = "github.com/dmitrymomot/redisconn/pkg/redis"

// Option configures a Manager.
type Option func(*managerOptions)

type managerOptions struct {
	logger         *slog.Logger
	settings       Settings
	environ        map[string]string
	factory        Factory
	notifier       ShutdownNotifier
	clock          clockwork.Clock
	registerer     prometheus.Registerer
	tracerProvider trace.TracerProvider
	pool           poolOptions
}

func defaultManagerOptions() *managerOptions {
	return &managerOptions{
		logger:  logger.NewNope(),
		factory: defaultFactory{},
		clock:   clockwork.NewRealClock(),
	}
}

// WithLogger sets the logger used for lifecycle events and async transport errors.
// Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(o *managerOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSettings sets the settings source consulted as last-resort address fallback.
func WithSettings(s Settings) Option {
	return func(o *managerOptions) {
		o.settings = s
	}
}

// WithEnvironment replaces the process environment with a fixed map.
// Mostly useful in tests; nil restores the process environment.
func WithEnvironment(environ map[string]string) Option {
	return func(o *managerOptions) {
		o.environ = environ
	}
}

// WithFactory overrides how go-redis clients are constructed.
func WithFactory(f Factory) Option {
	return func(o *managerOptions) {
		if f != nil {
			o.factory = f
		}
	}
}

// WithShutdownNotifier sets where the manager registers its teardown hook
// after the first successful connection.
func WithShutdownNotifier(n ShutdownNotifier) Option {
	return func(o *managerOptions) {
		o.notifier = n
	}
}

// WithClock sets the clock used to sleep between connection attempts.
// Default: real clock.
func WithClock(c clockwork.Clock) Option {
	return func(o *managerOptions) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithMetrics registers connection lifecycle metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *managerOptions) {
		o.registerer = reg
	}
}

// WithTracerProvider sets the tracer provider for connect spans.
// Default: the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *managerOptions) {
		o.tracerProvider = tp
	}
}

func (o *managerOptions) tracer() trace.Tracer {
	if o.tracerProvider != nil {
		return o.tracerProvider.Tracer(tracerName)
	}
	return otel.Tracer(tracerName)
}

// ConnectOption configures a single connection attempt.
type ConnectOption func(*connectOptions)

type connectOptions struct {
	addresses      []string
	connectTimeout time.Duration
	maxRetries     int
}

func defaultConnectOptions() *connectOptions {
	return &connectOptions{
		maxRetries: DefaultMaxRetries,
	}
}

// WithAddress sets explicit addresses. They take precedence over the
// environment in single-node mode and are appended after it in cluster mode.
func WithAddress(addrs ...string) ConnectOption {
	return func(o *connectOptions) {
		o.addresses = append(o.addresses, addrs...)
	}
}

// WithConnectTimeout sets the dial timeout for each connection attempt.
// Default: go-redis default (5 seconds).
func WithConnectTimeout(d time.Duration) ConnectOption {
	return func(o *connectOptions) {
		if d > 0 {
			o.connectTimeout = d
		}
	}
}

// WithMaxRetries sets how many times a failed connection is retried.
// Zero disables retries. Negative values are treated as zero.
// Default: 3
func WithMaxRetries(n int) ConnectOption {
	return func(o *connectOptions) {
		o.maxRetries = max(n, 0)
	}
}
