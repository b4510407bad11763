// Package logger builds the slog loggers used by the redisconn CLI and
// services embedding it.
//
// [New] returns a JSON (or text) logger with a configurable level and writer:
//
//	log := logger.New(
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithFormat(logger.FormatText),
//	)
//	m := redis.NewManager(redis.WithLogger(log))
//
// [NewWithSentry] additionally forwards warnings and errors to Sentry. With
// an empty DSN it falls back to local output only, so the same code path
// works in development:
//
//	log := logger.NewWithSentry(logger.SentryConfig{
//	    DSN:         os.Getenv("SENTRY_DSN"),
//	    Environment: "production",
//	    MinLevel:    slog.LevelWarn,
//	})
//
// Redis connection failures are logged at error level by pkg/redis, so they
// reach Sentry as issues while retries (warn) are kept as searchable logs.
//
// [NewNope] discards everything and is the default wherever a logger is optional.
package logger
