package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/redisconn/pkg/lifecycle"
	"github.com/dmitrymomot/redisconn/pkg/logger"
	"github.com/dmitrymomot/redisconn/pkg/redis"
	"github.com/dmitrymomot/redisconn/pkg/settings"
)

const defaultEnvFile = ".env"

// Sentinel errors for CLI commands.
var (
	ErrNotConfigured = errors.New("redis not configured: set REDIS_WRITE_URL, pass --address or add a redis settings key")
	ErrInvalidValue  = errors.New("value must be valid JSON")
	ErrEnvFile       = errors.New("failed to load env file")
)

type flags struct {
	addresses      []string
	settings       []string
	envFile        string
	logLevel       string
	logFormat      string
	maxRetries     int
	connectTimeout time.Duration
}

// app carries the state shared by subcommands of one invocation.
type app struct {
	flags    flags
	environ  map[string]string
	logger   *slog.Logger
	bus      *lifecycle.Bus
	manager  *redis.Manager
	registry *prometheus.Registry
}

// Execute runs the redisconn command line with the process arguments.
func Execute() error {
	return run(context.Background(), &app{}, os.Args[1:], os.Stdout, os.Stderr)
}

// run executes one invocation and closes the connection it opened, whether
// or not the command succeeded.
func run(ctx context.Context, a *app, args []string, stdout, stderr io.Writer) error {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if tErr := a.teardown(context.WithoutCancel(ctx)); tErr != nil {
		err = errors.Join(err, tErr)
	}
	return err
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "redisconn",
		Short: "Connect to Redis the way services using redisconn do",
		Long: `redisconn resolves the Redis address from flags, REDIS_WRITE_URL / REDIS_READ_URL
(cluster mode with REDIS_CLUSTER_MODE) or the "redis" settings key, connects with
bounded retries and runs a command against the shared connection.

Exit Codes:
  0  - Success
  1  - General error
  3  - Panic
  10 - Redis not configured
  11 - Connection failed
  12 - Max connection retries reached
  13 - Entry not found`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringSliceVarP(&a.flags.addresses, "address", "a", nil, "Redis address or URL (repeatable, comma-separated)")
	pf.IntVar(&a.flags.maxRetries, "max-retries", redis.DefaultMaxRetries, "Connection retries before giving up")
	pf.DurationVar(&a.flags.connectTimeout, "connect-timeout", 0, "Dial timeout per attempt (0 keeps the client default)")
	pf.StringSliceVar(&a.flags.settings, "settings", nil, "Settings files to read the redis key from")
	pf.StringVar(&a.flags.envFile, "env-file", defaultEnvFile, "Env file loaded before resolving addresses")
	pf.StringVar(&a.flags.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	pf.StringVar(&a.flags.logFormat, "log-format", logger.FormatText, "Log format: text or json")

	root.AddCommand(
		newPingCmd(a),
		newGetCmd(a),
		newSetCmd(a),
		newDelCmd(a),
		newWatchCmd(a),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := a.loadEnvFile(cmd.Flags().Changed("env-file")); err != nil {
		return err
	}

	level, err := logger.ParseLevel(a.flags.logLevel)
	if err != nil {
		return err
	}

	var sentryCfg logger.SentryConfig
	if err := env.Parse(&sentryCfg); err != nil {
		return err
	}
	sentryCfg.MinLevel = slog.LevelWarn

	a.logger = logger.NewWithSentry(sentryCfg,
		logger.WithLevel(level),
		logger.WithFormat(a.flags.logFormat),
		logger.WithWriter(cmd.ErrOrStderr()),
	)

	var store redis.Settings = settings.Default()
	if len(a.flags.settings) > 0 {
		store = settings.New(a.flags.settings...)
	}

	a.bus = lifecycle.New(lifecycle.WithLogger(a.logger))
	a.registry = prometheus.NewRegistry()
	a.manager = redis.NewManager(
		redis.WithLogger(a.logger),
		redis.WithMetrics(a.registry),
		redis.WithSettings(store),
		redis.WithEnvironment(a.environ),
		redis.WithShutdownNotifier(a.bus),
	)
	return nil
}

func (a *app) loadEnvFile(explicit bool) error {
	if a.flags.envFile == "" {
		return nil
	}
	if _, err := os.Stat(a.flags.envFile); err != nil && !explicit {
		return nil
	}
	if err := godotenv.Load(a.flags.envFile); err != nil {
		return errors.Join(ErrEnvFile, err)
	}
	return nil
}

func (a *app) teardown(ctx context.Context) error {
	if a.bus == nil {
		return nil
	}
	return a.bus.Trigger(ctx)
}

func (a *app) connectOptions() []redis.ConnectOption {
	opts := []redis.ConnectOption{
		redis.WithMaxRetries(a.flags.maxRetries),
		redis.WithConnectTimeout(a.flags.connectTimeout),
	}
	if len(a.flags.addresses) > 0 {
		opts = append(opts, redis.WithAddress(a.flags.addresses...))
	}
	return opts
}

// connect establishes the shared connection, treating "not configured" as an
// error since every command needs Redis.
func (a *app) connect(ctx context.Context) error {
	client, err := a.manager.Connect(ctx, a.connectOptions()...)
	if err != nil {
		return err
	}
	if client == nil {
		return ErrNotConfigured
	}
	return nil
}

func writeLine(w io.Writer, s string) error {
	_, err := io.WriteString(w, s+"\n")
	return err
}
