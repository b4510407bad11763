package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/redisconn/pkg/cache"
	"github.com/dmitrymomot/redisconn/pkg/health"
	"github.com/dmitrymomot/redisconn/pkg/redis"
)

func newPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Connect and ping Redis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.connect(ctx); err != nil {
				return err
			}
			if err := redis.Healthcheck(a.manager)(ctx); err != nil {
				return err
			}
			return writeLine(cmd.OutOrStdout(), fmt.Sprintf("PONG (%s)", a.manager.Mode()))
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <entity> <id>",
		Short: "Print the JSON value stored for entity/id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.connect(ctx); err != nil {
				return err
			}
			v, err := a.store().Get(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			return writeLine(cmd.OutOrStdout(), string(v))
		},
	}
}

func newSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <entity> <id> <json>",
		Short: "Store a JSON value for entity/id",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !json.Valid([]byte(args[2])) {
				return ErrInvalidValue
			}

			ctx := cmd.Context()
			if err := a.connect(ctx); err != nil {
				return err
			}
			n, err := a.store().Set(ctx, args[0], args[1], json.RawMessage(args[2]))
			if err != nil {
				return err
			}
			return writeLine(cmd.OutOrStdout(), strconv.FormatInt(n, 10))
		},
	}
}

func newDelCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "del <entity> <id>",
		Short: "Delete the value stored for entity/id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.connect(ctx); err != nil {
				return err
			}
			n, err := a.store().Delete(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			return writeLine(cmd.OutOrStdout(), strconv.FormatInt(n, 10))
		},
	}
}

func newWatchCmd(a *app) *cobra.Command {
	var (
		interval time.Duration
		listen   string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Hold the connection open, pinging until SIGINT or SIGTERM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.connect(ctx); err != nil {
				return err
			}

			if listen != "" {
				checks := health.Checks{"redis": redis.Healthcheck(a.manager)}
				srv, err := health.Start(listen,
					health.NewRouter(checks, a.registry, health.WithLogger(a.logger)),
					health.WithLogger(a.logger),
				)
				if err != nil {
					return err
				}
				a.bus.OnShutdown(srv.Shutdown)
			}

			var wg sync.WaitGroup
			done := make(chan struct{})
			defer wg.Wait()
			defer close(done)

			if interval > 0 {
				check := redis.Healthcheck(a.manager)
				wg.Add(1)
				go func() {
					defer wg.Done()
					ticker := time.NewTicker(interval)
					defer ticker.Stop()
					for {
						select {
						case <-done:
							return
						case <-ticker.C:
							if err := check(ctx); err != nil && ctx.Err() == nil && !errors.Is(err, redis.ErrNotConnected) {
								a.logger.WarnContext(ctx, "redis healthcheck failed", slog.Any("error", err))
							}
						}
					}
				}()
			}

			a.logger.InfoContext(ctx, "watching redis connection", slog.String("mode", string(a.manager.Mode())))
			return a.bus.Wait(ctx)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 10*time.Second, "Healthcheck interval (0 disables)")
	cmd.Flags().StringVar(&listen, "listen", "", "Serve /livez, /readyz and /metrics on this address")
	return cmd
}

func (a *app) store() *cache.Store[json.RawMessage] {
	return cache.NewStore[json.RawMessage](a.manager, nil)
}
