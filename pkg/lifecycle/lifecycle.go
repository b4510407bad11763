package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrymomot/redisconn/pkg/logger"
)

const defaultShutdownTimeout = 30 * time.Second

// Hook is a cleanup function run on shutdown.
type Hook func(ctx context.Context) error

// Bus is the process shutdown event. Components register hooks with
// OnShutdown; Trigger or Wait runs them.
type Bus struct {
	logger  *slog.Logger
	hooks   []Hook
	signals []os.Signal
	timeout time.Duration
	mu      sync.Mutex
}

// Option configures a Bus.
type Option func(*Bus)

// WithLogger sets the logger for shutdown progress. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bus) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithTimeout bounds how long Wait lets hooks run.
// Default: 30 seconds.
func WithTimeout(d time.Duration) Option {
	return func(b *Bus) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// WithSignals replaces the signals Wait listens for.
// Default: SIGINT and SIGTERM.
func WithSignals(sig ...os.Signal) Option {
	return func(b *Bus) {
		if len(sig) > 0 {
			b.signals = sig
		}
	}
}

// New creates a Bus.
func New(opts ...Option) *Bus {
	b := &Bus{
		logger:  logger.NewNope(),
		timeout: defaultShutdownTimeout,
		signals: []os.Signal{os.Interrupt, syscall.SIGTERM},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// OnShutdown registers fn. Hooks run in registration order.
func (b *Bus) OnShutdown(fn func(ctx context.Context) error) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	b.hooks = append(b.hooks, fn)
	b.mu.Unlock()
}

// Trigger runs every registered hook and joins their errors. Hooks stay
// registered, so Trigger may fire more than once; hooks must tolerate that.
func (b *Bus) Trigger(ctx context.Context) error {
	b.mu.Lock()
	hooks := make([]Hook, len(b.hooks))
	copy(hooks, b.hooks)
	b.mu.Unlock()

	b.logger.InfoContext(ctx, "shutting down", slog.Int("hooks", len(hooks)))

	var errs []error
	for _, hook := range hooks {
		if err := hook(ctx); err != nil {
			errs = append(errs, err)
			b.logger.ErrorContext(ctx, "shutdown hook failed", slog.Any("error", err))
		}
	}

	if len(errs) > 0 {
		b.logger.ErrorContext(ctx, "shutdown completed with errors")
		return errors.Join(errs...)
	}

	b.logger.InfoContext(ctx, "shutdown completed")
	return nil
}

// Wait blocks until one of the configured signals arrives or ctx is done,
// then runs Trigger with the shutdown timeout.
func (b *Bus) Wait(ctx context.Context) error {
	sigCtx, cancel := signal.NotifyContext(ctx, b.signals...)
	defer cancel()

	<-sigCtx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.WithoutCancel(ctx), b.timeout)
	defer shutdownCancel()

	return b.Trigger(shutdownCtx)
}

var (
	defaultBus  *Bus
	defaultOnce sync.Once
)

// Default returns the process-wide Bus.
func Default() *Bus {
	defaultOnce.Do(func() {
		defaultBus = New()
	})
	return defaultBus
}
