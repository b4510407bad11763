package redis

import "strings"

const (
	schemePrefix    = "redis://"
	tlsSchemePrefix = "rediss://"
)

// NormalizeURL returns raw with the redis:// scheme prepended when it carries
// neither redis:// nor rediss://. Addresses that already have a scheme are
// returned untouched, so NormalizeURL(NormalizeURL(x)) == NormalizeURL(x).
//
// Example:
//
//	redis.NormalizeURL("localhost:6379")         // "redis://localhost:6379"
//	redis.NormalizeURL("rediss://cache.io:6380") // unchanged
func NormalizeURL(raw string) string {
	if strings.Contains(raw, schemePrefix) || strings.Contains(raw, tlsSchemePrefix) {
		return raw
	}
	return schemePrefix + raw
}

func normalizeAll(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		out = append(out, NormalizeURL(u))
	}
	return out
}
