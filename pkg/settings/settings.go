package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// EnvFiles names the environment variable that overrides the default file
// list. It holds paths separated by the OS list separator.
const EnvFiles = "REDISCONN_SETTINGS"

// DefaultFiles are read, in order, when EnvFiles is unset.
var DefaultFiles = []string{
	"config/settings.yaml",
	"config/settings.json",
	"config/settings.local.yaml",
}

// Store is a layered, read-only settings source. Files are read lazily on
// first access and memoized; later files override top-level keys of earlier
// ones. Missing files are skipped. JSON files are valid YAML and load too.
type Store struct {
	values map[string]yaml.Node
	err    error
	paths  []string
	mu     sync.Mutex
	loaded bool
}

// New creates a Store over the given files.
func New(paths ...string) *Store {
	return &Store{paths: paths}
}

// Parse creates a Store from a single in-memory document.
func Parse(data []byte) (*Store, error) {
	values := map[string]yaml.Node{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, errors.Join(ErrInvalidFile, err)
	}
	return &Store{values: values, loaded: true}, nil
}

// Get returns the raw value stored under key.
func (s *Store) Get(key string) (any, bool) {
	var v any
	ok, err := s.Decode(key, &v)
	if err != nil || !ok {
		return nil, false
	}
	return v, true
}

// Decode decodes the value under key into dst.
// It reports false, with a nil error, when the key is absent.
func (s *Store) Decode(key string, dst any) (bool, error) {
	values, err := s.load()
	if err != nil {
		return false, err
	}

	node, ok := values[key]
	if !ok {
		return false, nil
	}
	if err := node.Decode(dst); err != nil {
		return false, errors.Join(ErrDecode, fmt.Errorf("key %q: %w", key, err))
	}
	return true, nil
}

// Err reports the error from loading the files, if any.
func (s *Store) Err() error {
	_, err := s.load()
	return err
}

// Reload drops memoized values; the next access reads the files again.
func (s *Store) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paths == nil {
		return
	}
	s.values, s.err, s.loaded = nil, nil, false
}

func (s *Store) load() (map[string]yaml.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		s.values, s.err = readFiles(s.paths)
		s.loaded = true
	}
	return s.values, s.err
}

func readFiles(paths []string) (map[string]yaml.Node, error) {
	merged := map[string]yaml.Node{}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.Join(ErrInvalidFile, err)
		}

		layer := map[string]yaml.Node{}
		if err := yaml.Unmarshal(data, &layer); err != nil {
			return nil, errors.Join(ErrInvalidFile, fmt.Errorf("%s: %w", path, err))
		}
		for k, v := range layer {
			merged[k] = v
		}
	}
	return merged, nil
}

var (
	defaultStore *Store
	defaultOnce  sync.Once
)

// Default returns the process-wide Store over EnvFiles or DefaultFiles.
func Default() *Store {
	defaultOnce.Do(func() {
		defaultStore = New(defaultPaths()...)
	})
	return defaultStore
}

func defaultPaths() []string {
	if v := os.Getenv(EnvFiles); v != "" {
		return filepath.SplitList(v)
	}
	return DefaultFiles
}
