package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type redisSettings struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestStore_Decode(t *testing.T) {
	t.Parallel()

	t.Run("decodes yaml file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "settings.yaml", "redis:\n  host: localhost\n  port: 6379\n")

		var cfg redisSettings
		ok, err := New(path).Decode("redis", &cfg)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, redisSettings{Host: "localhost", Port: 6379}, cfg)
	})

	t.Run("decodes json file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "settings.json", `{"redis": {"host": "cache.internal"}}`)

		var cfg redisSettings
		ok, err := New(path).Decode("redis", &cfg)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "cache.internal", cfg.Host)
		require.Zero(t, cfg.Port)
	})

	t.Run("later files override earlier keys", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		base := writeFile(t, dir, "base.yaml", "redis:\n  host: base\nother: 1\n")
		local := writeFile(t, dir, "local.yaml", "redis:\n  host: local\n")

		s := New(base, local)

		var cfg redisSettings
		ok, err := s.Decode("redis", &cfg)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "local", cfg.Host)

		v, ok := s.Get("other")
		require.True(t, ok)
		require.Equal(t, 1, v)
	})

	t.Run("missing files and keys are not errors", func(t *testing.T) {
		t.Parallel()

		s := New(filepath.Join(t.TempDir(), "nope.yaml"))

		var cfg redisSettings
		ok, err := s.Decode("redis", &cfg)
		require.NoError(t, err)
		require.False(t, ok)
		require.NoError(t, s.Err())
	})

	t.Run("invalid file returns ErrInvalidFile", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "bad.yaml", "redis: [unclosed\n")

		var cfg redisSettings
		_, err := New(path).Decode("redis", &cfg)
		require.ErrorIs(t, err, ErrInvalidFile)
	})

	t.Run("type mismatch returns ErrDecode", func(t *testing.T) {
		t.Parallel()

		s, err := Parse([]byte("redis:\n  port: not-a-number\n"))
		require.NoError(t, err)

		var cfg redisSettings
		_, err = s.Decode("redis", &cfg)
		require.ErrorIs(t, err, ErrDecode)
	})
}

func TestStore_Memoization(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "settings.yaml", "redis:\n  host: first\n")
	s := New(path)

	var cfg redisSettings
	_, err := s.Decode("redis", &cfg)
	require.NoError(t, err)
	require.Equal(t, "first", cfg.Host)

	writeFile(t, dir, "settings.yaml", "redis:\n  host: second\n")

	_, err = s.Decode("redis", &cfg)
	require.NoError(t, err)
	require.Equal(t, "first", cfg.Host, "values are memoized until Reload")

	s.Reload()

	_, err = s.Decode("redis", &cfg)
	require.NoError(t, err)
	require.Equal(t, "second", cfg.Host)
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("empty document has no keys", func(t *testing.T) {
		t.Parallel()

		s, err := Parse(nil)
		require.NoError(t, err)

		_, ok := s.Get("redis")
		require.False(t, ok)
	})

	t.Run("malformed document returns ErrInvalidFile", func(t *testing.T) {
		t.Parallel()

		_, err := Parse([]byte("- a\n- b\n"))
		require.ErrorIs(t, err, ErrInvalidFile)
	})
}
