// Package health serves HTTP probes for processes holding a Redis connection.
//
// Checks are plain closures, such as the one returned by redis.Healthcheck:
//
//	checks := health.Checks{"redis": redis.Healthcheck(m)}
//	router := health.NewRouter(checks, prometheus.DefaultGatherer,
//	    health.WithLogger(log),
//	    health.WithTimeout(time.Second),
//	)
//
//	srv, err := health.Start(":9090", router)
//	if err != nil {
//	    return err
//	}
//	bus.OnShutdown(srv.Shutdown)
//
// Routes:
//
//   - GET /livez - always 200 while the process runs
//   - GET /readyz - runs all checks in parallel, 200 or 503
//   - GET /metrics - Prometheus exposition, when a gatherer is given
//
// Both probes answer plain text by default and JSON when the request has
// ?format=json or an Accept header containing application/json:
//
//	{"status":"unhealthy","checks":{"redis":{"status":"unhealthy","error":"..."}}}
package health
