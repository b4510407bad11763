package redis

import (
	"errors"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Env holds the environment variables that drive connection resolution.
type Env struct {
	// Any non-empty value except 0, false, no or off selects cluster mode.
	ClusterMode string `env:"REDIS_CLUSTER_MODE"`

	// Primary address, used in both modes.
	WriteURL string `env:"REDIS_WRITE_URL"`

	// Replica address, cluster mode only.
	ReadURL string `env:"REDIS_READ_URL"`
}

// Cluster reports whether the cluster-mode flag is set.
func (e Env) Cluster() bool {
	switch strings.ToLower(strings.TrimSpace(e.ClusterMode)) {
	case "", "0", "false", "no", "off":
		return false
	default:
		return true
	}
}

// LoadEnv parses Env from environ, or from the process environment when environ is nil.
func LoadEnv(environ map[string]string) (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Environment: environ}); err != nil {
		return Env{}, errors.Join(ErrInvalidEnvironment, err)
	}
	return e, nil
}
