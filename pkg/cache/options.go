package cache

import "time"

// Option configures a Store.
type Option func(*options)

type options struct {
	prefix string
	ttl    time.Duration
}

func defaultOptions() *options {
	return &options{}
}

// WithPrefix namespaces every entity hash as "{prefix}:{entity}".
// Useful when several stores share one Redis instance.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithTTL refreshes the expiration of the whole entity hash on every Set.
// Zero or negative keeps hashes until deleted. Default: no expiration.
func WithTTL(d time.Duration) Option {
	return func(o *options) {
		o.ttl = max(d, 0)
	}
}
