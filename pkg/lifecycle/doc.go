// Package lifecycle provides the process shutdown event.
//
// A [Bus] collects shutdown hooks and runs them when the process is asked to
// stop, either by SIGINT/SIGTERM through [Bus.Wait] or programmatically with
// [Bus.Trigger]:
//
//	bus := lifecycle.New(lifecycle.WithLogger(logger))
//	bus.OnShutdown(redis.Shutdown(manager))
//
//	// blocks until Ctrl+C, then closes the connection
//	if err := bus.Wait(ctx); err != nil {
//		logger.Error("shutdown failed", "error", err)
//	}
//
// Hooks are not removed after they run. A redundant second signal, or a
// manual Trigger followed by Wait, runs them again, so hooks should be
// idempotent.
package lifecycle
