package redis

import (
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Mode is the connection topology.
type Mode string

const (
	ModeSingle  Mode = "single"
	ModeCluster Mode = "cluster"
)

// Factory constructs go-redis clients. Tests swap it for a fake.
type Factory interface {
	NewClient(opts *redis.Options) redis.UniversalClient
	NewClusterClient(opts *redis.ClusterOptions) redis.UniversalClient
}

type defaultFactory struct{}

func (defaultFactory) NewClient(opts *redis.Options) redis.UniversalClient {
	return redis.NewClient(opts)
}

func (defaultFactory) NewClusterClient(opts *redis.ClusterOptions) redis.UniversalClient {
	return redis.NewClusterClient(opts)
}

// dialBackoff is how long go-redis sleeps after a failed dial. It sleeps even
// after its only dial, so keep it negligible; the Manager owns backoff.
const dialBackoff = time.Millisecond

// singleOptions builds client options for one address.
func singleOptions(url string, co *connectOptions, po poolOptions) (*redis.Options, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseURL, err)
	}

	if co.connectTimeout > 0 {
		opts.DialTimeout = co.connectTimeout
	}
	opts.MaxRetries = -1
	opts.DialerRetries = 1
	opts.DialerRetryTimeout = dialBackoff
	opts.MinRetryBackoff = retryStep
	opts.MaxRetryBackoff = maxRetryDelay

	po.apply(&opts.PoolSize, &opts.MinIdleConns,
		&opts.ConnMaxIdleTime, &opts.ConnMaxLifetime,
		&opts.ReadTimeout, &opts.WriteTimeout)
	return opts, nil
}

// clusterOptions builds cluster options from root node URLs. Credentials,
// database and TLS settings are taken from the first (primary) URL.
// Reads are spread over replicas.
func clusterOptions(urls []string, co *connectOptions, po poolOptions) (*redis.ClusterOptions, error) {
	addrs := make([]string, 0, len(urls))
	var primary *redis.Options
	for _, u := range urls {
		opts, err := redis.ParseURL(u)
		if err != nil {
			return nil, errors.Join(ErrFailedToParseURL, err)
		}
		if primary == nil {
			primary = opts
		}
		addrs = append(addrs, opts.Addr)
	}

	copts := &redis.ClusterOptions{
		Addrs:              addrs,
		Username:           primary.Username,
		Password:           primary.Password,
		TLSConfig:          primary.TLSConfig,
		ReadOnly:           true,
		RouteRandomly:      true,
		MaxRetries:         -1,
		DialerRetries:      1,
		DialerRetryTimeout: dialBackoff,
		MinRetryBackoff:    retryStep,
		MaxRetryBackoff:    maxRetryDelay,
	}
	if co.connectTimeout > 0 {
		copts.DialTimeout = co.connectTimeout
	}

	po.apply(&copts.PoolSize, &copts.MinIdleConns,
		&copts.ConnMaxIdleTime, &copts.ConnMaxLifetime,
		&copts.ReadTimeout, &copts.WriteTimeout)
	return copts, nil
}
