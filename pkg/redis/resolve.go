package redis

import (
	"strconv"
)

// SettingsKey is the settings entry consulted when no other address is available.
const SettingsKey = "redis"

// Settings is a read-only view over layered configuration.
// Decode reports false when the key is absent.
type Settings interface {
	Decode(key string, dst any) (bool, error)
}

// legacySettings is the shape stored under SettingsKey.
type legacySettings struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

func (s legacySettings) address() string {
	if s.Host == "" {
		return ""
	}
	if s.Port > 0 {
		return s.Host + ":" + strconv.Itoa(s.Port)
	}
	return s.Host
}

// resolveAddresses applies the address precedence.
//
// Single-node: first explicit address, then the env write URL, then fallback.
// Cluster: env write URL, env read URL and explicit addresses concatenated in
// that order; fallback only if all of them are empty.
//
// fallback is called lazily so settings are only read when needed.
func resolveAddresses(explicit []string, e Env, cluster bool, fallback func() string) []string {
	explicit = nonEmpty(explicit)

	var urls []string
	if cluster {
		urls = nonEmpty([]string{e.WriteURL, e.ReadURL})
		urls = append(urls, explicit...)
	} else {
		switch {
		case len(explicit) > 0:
			urls = explicit[:1]
		case e.WriteURL != "":
			urls = []string{e.WriteURL}
		}
	}

	if len(urls) == 0 && fallback != nil {
		if addr := fallback(); addr != "" {
			urls = []string{addr}
		}
	}

	return normalizeAll(urls)
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
