// Package redisconn exposes one lazily established Redis connection per
// process.
//
// The package-level functions operate on [Default], a [Manager] built from
// the process environment, the "redis" settings key and the default
// shutdown bus. pkg/redis has the Manager itself for callers that want more
// than one, or want to inject their own logger, settings or metrics.
//
// # Quick Start
//
//	client, err := redisconn.Connect(ctx, redisconn.WithMaxRetries(5))
//	if err != nil {
//	    var rerr *redisconn.Error
//	    if errors.As(err, &rerr) && rerr.Code == redisconn.ErrorCodes.MaxRetriesExceeded {
//	        // Redis stayed unreachable
//	    }
//	    return err
//	}
//	if client == nil {
//	    // no address configured, run without cache
//	}
//
// Every later Connect returns the same client until [CloseConnection] or
// [Reset]. The connection is closed automatically when
// lifecycle.Default().Wait returns after SIGINT or SIGTERM.
//
// # Configuration
//
// Addresses come from, highest priority first: explicit [WithAddress]
// values, REDIS_WRITE_URL (plus REDIS_READ_URL when REDIS_CLUSTER_MODE is
// set) and the "redis" settings key ({host, port}). Settings files are listed
// in REDISCONN_SETTINGS or default to config/settings.yaml.
package redisconn
