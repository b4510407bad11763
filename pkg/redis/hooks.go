package redis

import (
	"context"
	"errors"
	"log/slog"
	"net"

	"github.com/redis/go-redis/v9"
)

// errorLogHook logs transport failures that happen after construction:
// failed dials during reconnects and network errors on commands. It never
// changes the outcome the caller sees.
type errorLogHook struct {
	logger *slog.Logger
	mode   Mode
}

func newErrorLogHook(logger *slog.Logger, mode Mode) errorLogHook {
	return errorLogHook{logger: logger, mode: mode}
}

func (h errorLogHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		if err != nil {
			h.logger.WarnContext(ctx, "redis dial failed",
				slog.String("mode", string(h.mode)),
				slog.String("addr", addr),
				slog.Any("error", err),
			)
		}
		return conn, err
	}
}

func (h errorLogHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if isTransportError(err) {
			h.logger.ErrorContext(ctx, "redis command failed",
				slog.String("mode", string(h.mode)),
				slog.String("command", cmd.Name()),
				slog.Any("error", err),
			)
		}
		return err
	}
}

func (h errorLogHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if isTransportError(err) {
			h.logger.ErrorContext(ctx, "redis pipeline failed",
				slog.String("mode", string(h.mode)),
				slog.Int("commands", len(cmds)),
				slog.Any("error", err),
			)
		}
		return err
	}
}

// isTransportError reports whether err came from the connection rather than
// from the server's reply. redis.Nil and error replies are not logged.
func isTransportError(err error) bool {
	if err == nil || errors.Is(err, redis.Nil) {
		return false
	}
	var reply redis.Error
	return !errors.As(err, &reply)
}

var _ redis.Hook = errorLogHook{}
