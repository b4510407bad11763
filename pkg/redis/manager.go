package redis

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

const flightKey = "connect"

// Manager owns at most one go-redis connection and hands the same handle to
// every caller until it is closed or reset. The zero value is not usable;
// create one with NewManager.
type Manager struct {
	client             redis.UniversalClient
	opts               *managerOptions
	metrics            *metrics
	tracer             trace.Tracer
	flight             singleflight.Group
	mode               Mode
	mu                 sync.Mutex
	shutdownRegistered bool
}

// NewManager creates a Manager. No connection is made until Connect is called.
//
// Example:
//
//	m := redis.NewManager(
//	    redis.WithLogger(logger),
//	    redis.WithSettings(settings.Default()),
//	    redis.WithShutdownNotifier(lifecycle.Default()),
//	)
//	client, err := m.Connect(ctx)
func NewManager(opts ...Option) *Manager {
	o := defaultManagerOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Manager{
		opts:    o,
		metrics: newMetrics(o.registerer),
		tracer:  o.tracer(),
	}
}

// Connect returns the cached connection, establishing it first if needed.
//
// A nil client with a nil error means no address could be resolved and
// caching is disabled. Failures are returned as *Error.
//
// Concurrent callers share one establishment attempt, configured by the
// options of the caller that started it. The attempt is not cancelled by ctx;
// ctx only bounds how long this caller waits for it. A caller that stops
// waiting gets a CodeGeneric *Error matching ctx.Err() with errors.Is.
//
// Each attempt dials once: go-redis dial and command retries are disabled so
// that RetryDelay alone decides how often the server is contacted.
func (m *Manager) Connect(ctx context.Context, opts ...ConnectOption) (redis.UniversalClient, error) {
	if client := m.current(); client != nil {
		return client, nil
	}

	ch := m.flight.DoChan(flightKey, func() (any, error) {
		if client := m.current(); client != nil {
			return client, nil
		}
		return m.establish(context.WithoutCancel(ctx), opts)
	})

	select {
	case <-ctx.Done():
		return nil, classify(errors.Join(ErrConnectionFailed, ctx.Err()))
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		client, _ := res.Val.(redis.UniversalClient)
		return client, nil
	}
}

// Client is Connect without per-call options.
func (m *Manager) Client(ctx context.Context) (redis.UniversalClient, error) {
	return m.Connect(ctx)
}

// Mode reports the topology of the cached connection, or "" when there is none.
func (m *Manager) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// CloseConnection closes the cached connection and forgets it.
// Close errors are logged, never returned. Calling it again without an
// intervening Connect does nothing.
func (m *Manager) CloseConnection(ctx context.Context) {
	m.mu.Lock()
	client, mode := m.client, m.mode
	m.client, m.mode = nil, ""
	m.mu.Unlock()

	if client == nil {
		return
	}

	m.metrics.setConnected(false)
	m.metrics.closed()

	if err := client.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
		m.opts.logger.WarnContext(ctx, "redis close failed",
			slog.String("mode", string(mode)),
			slog.Any("error", err),
		)
		return
	}

	m.opts.logger.InfoContext(ctx, "redis connection closed", slog.String("mode", string(mode)))
}

// Reset forgets the cached connection without closing it, forcing the next
// Connect to resolve addresses again.
func (m *Manager) Reset() {
	m.mu.Lock()
	m.client, m.mode = nil, ""
	m.mu.Unlock()

	m.metrics.setConnected(false)
}

func (m *Manager) current() redis.UniversalClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.client
}

func (m *Manager) establish(ctx context.Context, opts []ConnectOption) (redis.UniversalClient, error) {
	co := defaultConnectOptions()
	for _, opt := range opts {
		opt(co)
	}

	ctx, span := m.tracer.Start(ctx, "redis.connect")
	defer span.End()

	env, err := LoadEnv(m.opts.environ)
	if err != nil {
		return nil, m.fail(ctx, span, err)
	}

	mode := ModeSingle
	if env.Cluster() {
		mode = ModeCluster
	}

	urls := resolveAddresses(co.addresses, env, mode == ModeCluster, m.settingsAddress(ctx))
	span.SetAttributes(
		attribute.String("redis.mode", string(mode)),
		attribute.Int("redis.root_nodes", len(urls)),
	)
	if len(urls) == 0 {
		m.opts.logger.DebugContext(ctx, "no redis address configured, connection skipped")
		return nil, nil
	}

	client, err := m.newClient(mode, urls, co)
	if err != nil {
		return nil, m.fail(ctx, span, err)
	}
	client.AddHook(newErrorLogHook(m.opts.logger, mode))

	if err := m.dial(ctx, client, co.maxRetries); err != nil {
		_ = client.Close()
		return nil, m.fail(ctx, span, err)
	}

	m.mu.Lock()
	m.client, m.mode = client, mode
	register := m.opts.notifier != nil && !m.shutdownRegistered
	if register {
		m.shutdownRegistered = true
	}
	m.mu.Unlock()

	m.metrics.setConnected(true)
	if register {
		m.opts.notifier.OnShutdown(Shutdown(m))
	}

	m.opts.logger.InfoContext(ctx, "redis connected",
		slog.String("mode", string(mode)),
		slog.Int("nodes", len(urls)),
	)

	return client, nil
}

func (m *Manager) newClient(mode Mode, urls []string, co *connectOptions) (redis.UniversalClient, error) {
	if mode == ModeCluster {
		opts, err := clusterOptions(urls, co, m.opts.pool)
		if err != nil {
			return nil, err
		}
		return m.opts.factory.NewClusterClient(opts), nil
	}

	opts, err := singleOptions(urls[0], co, m.opts.pool)
	if err != nil {
		return nil, err
	}
	return m.opts.factory.NewClient(opts), nil
}

// dial pings until the client answers, consulting RetryDelay after every
// failure including the first.
func (m *Manager) dial(ctx context.Context, client redis.UniversalClient, maxRetries int) error {
	for attempt := 0; ; attempt++ {
		m.metrics.attempt()

		err := client.Ping(ctx).Err()
		if err == nil {
			return nil
		}

		delay, retryErr := RetryDelay(attempt, maxRetries)
		if retryErr != nil {
			var exhausted *RetryExhaustedError
			if errors.As(retryErr, &exhausted) {
				exhausted.Last = err
			}
			return retryErr
		}

		m.opts.logger.WarnContext(ctx, "redis connection attempt failed",
			slog.Int("attempt", attempt),
			slog.Duration("retry_in", delay),
			slog.Any("error", err),
		)

		if waitErr := m.wait(ctx, delay); waitErr != nil {
			return errors.Join(ErrConnectionFailed, waitErr)
		}
	}
}

func (m *Manager) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-m.opts.clock.After(d):
		return nil
	}
}

func (m *Manager) settingsAddress(ctx context.Context) func() string {
	return func() string {
		if m.opts.settings == nil {
			return ""
		}

		var s legacySettings
		ok, err := m.opts.settings.Decode(SettingsKey, &s)
		if err != nil {
			m.opts.logger.WarnContext(ctx, "redis settings unreadable, ignoring",
				slog.String("key", SettingsKey),
				slog.Any("error", err),
			)
			return ""
		}
		if !ok {
			return ""
		}
		return s.address()
	}
}

func (m *Manager) fail(ctx context.Context, span trace.Span, err error) error {
	typed := classify(err)

	m.metrics.failure(typed.Code)
	span.RecordError(typed)
	span.SetStatus(codes.Error, typed.Message)

	m.opts.logger.ErrorContext(ctx, "redis connection failed",
		slog.String("code", typed.Code.String()),
		slog.Any("error", typed.Err),
	)

	return typed
}
