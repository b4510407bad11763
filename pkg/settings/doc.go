// Package settings reads layered application settings from YAML or JSON files.
//
// Files are merged in order, later files overriding top-level keys, and the
// result is memoized on first access:
//
//	s := settings.New("config/settings.yaml", "config/settings.local.yaml")
//
//	var cfg struct {
//		Host string `yaml:"host"`
//		Port int    `yaml:"port"`
//	}
//	ok, err := s.Decode("redis", &cfg)
//
// Missing files are not an error. [Default] reads the files named by the
// REDISCONN_SETTINGS environment variable, or [DefaultFiles].
package settings
