package redis

import "time"

// poolOptions tunes the go-redis connection pool. Zero values keep the
// go-redis defaults.
type poolOptions struct {
	poolSize      int
	minIdleConns  int
	maxIdleTime   time.Duration
	maxActiveTime time.Duration
	readTimeout   time.Duration
	writeTimeout  time.Duration
}

func (p poolOptions) apply(poolSize, minIdle *int, maxIdle, maxActive, readTimeout, writeTimeout *time.Duration) {
	if p.poolSize > 0 {
		*poolSize = p.poolSize
	}
	if p.minIdleConns > 0 {
		*minIdle = p.minIdleConns
	}
	if p.maxIdleTime > 0 {
		*maxIdle = p.maxIdleTime
	}
	if p.maxActiveTime > 0 {
		*maxActive = p.maxActiveTime
	}
	if p.readTimeout > 0 {
		*readTimeout = p.readTimeout
	}
	if p.writeTimeout > 0 {
		*writeTimeout = p.writeTimeout
	}
}

// WithPoolSize sets the maximum number of connections in the pool
// (per node in cluster mode).
// Default: go-redis default (10 per CPU, 5 per CPU per cluster node).
//
// go-redis stops dialing once PoolSize consecutive dials have failed, so a
// pool smaller than the retry budget cuts connection attempts short.
func WithPoolSize(n int) Option {
	return func(o *managerOptions) {
		o.pool.poolSize = n
	}
}

// WithMinIdleConns sets the minimum number of idle connections kept open.
// Default: 0
func WithMinIdleConns(n int) Option {
	return func(o *managerOptions) {
		o.pool.minIdleConns = n
	}
}

// WithMaxIdleTime sets the maximum time a connection can be idle before being closed.
// Default: 30 minutes
func WithMaxIdleTime(d time.Duration) Option {
	return func(o *managerOptions) {
		o.pool.maxIdleTime = d
	}
}

// WithMaxActiveTime sets the maximum lifetime of a connection.
// Default: unlimited
func WithMaxActiveTime(d time.Duration) Option {
	return func(o *managerOptions) {
		o.pool.maxActiveTime = d
	}
}

// WithReadTimeout sets the timeout for read operations.
// Default: 3 seconds
func WithReadTimeout(d time.Duration) Option {
	return func(o *managerOptions) {
		o.pool.readTimeout = d
	}
}

// WithWriteTimeout sets the timeout for write operations.
// Default: 3 seconds
func WithWriteTimeout(d time.Duration) Option {
	return func(o *managerOptions) {
		o.pool.writeTimeout = d
	}
}
