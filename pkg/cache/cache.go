package cache

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Connector hands out the shared Redis connection. A nil client with a nil
// error means Redis is not configured. *redis.Manager from pkg/redis
// satisfies it.
type Connector interface {
	Client(ctx context.Context) (redis.UniversalClient, error)
}

// Marshaler serializes and deserializes stored values.
type Marshaler[V any] interface {
	Marshal(v V) ([]byte, error)
	Unmarshal(data []byte) (V, error)
}

type jsonMarshaler[V any] struct{}

func (jsonMarshaler[V]) Marshal(v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func (jsonMarshaler[V]) Unmarshal(data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrUnmarshal, err)
	}
	return v, nil
}

// Store keeps values as fields of per-entity Redis hashes: entity is the hash
// key, id is the field.
type Store[V any] struct {
	conn      Connector
	opts      *options
	marshaler Marshaler[V]
	flight    singleflight.Group
}

// NewStore creates a hash store on top of conn.
// If m is nil, values are stored as JSON.
//
// Example:
//
//	m := redis.NewManager(redis.WithSettings(settings.Default()))
//	users := cache.NewStore[User](m, nil, cache.WithPrefix("app"))
//
//	_, err := users.Set(ctx, "user", "42", user)
//	u, err := users.Get(ctx, "user", "42")
func NewStore[V any](conn Connector, m Marshaler[V], opts ...Option) *Store[V] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if m == nil {
		m = jsonMarshaler[V]{}
	}

	return &Store[V]{
		conn:      conn,
		opts:      o,
		marshaler: m,
	}
}

// Set writes value under entity/id and reports how many new fields were
// created (1 for a new id, 0 for an overwrite).
func (s *Store[V]) Set(ctx context.Context, entity, id string, value V) (int64, error) {
	data, err := s.marshaler.Marshal(value)
	if err != nil {
		return 0, errors.Join(ErrSetFailed, err)
	}

	client, err := s.client(ctx)
	if err != nil {
		return 0, errors.Join(ErrSetFailed, err)
	}

	key := s.key(entity)
	if s.opts.ttl <= 0 {
		n, err := client.HSet(ctx, key, id, data).Result()
		if err != nil {
			return 0, errors.Join(ErrSetFailed, err)
		}
		return n, nil
	}

	var hset *redis.IntCmd
	_, err = client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		hset = pipe.HSet(ctx, key, id, data)
		pipe.Expire(ctx, key, s.opts.ttl)
		return nil
	})
	if err != nil {
		return 0, errors.Join(ErrSetFailed, err)
	}
	return hset.Val(), nil
}

// Get reads the value stored under entity/id.
// Returns ErrNotFound if the field does not exist.
func (s *Store[V]) Get(ctx context.Context, entity, id string) (V, error) {
	var zero V

	client, err := s.client(ctx)
	if err != nil {
		return zero, errors.Join(ErrGetFailed, err)
	}

	data, err := client.HGet(ctx, s.key(entity), id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return zero, ErrNotFound
		}
		return zero, errors.Join(ErrGetFailed, err)
	}

	v, err := s.marshaler.Unmarshal(data)
	if err != nil {
		return zero, errors.Join(ErrGetFailed, err)
	}
	return v, nil
}

// Delete removes entity/id and reports how many fields were removed.
func (s *Store[V]) Delete(ctx context.Context, entity, id string) (int64, error) {
	client, err := s.client(ctx)
	if err != nil {
		return 0, errors.Join(ErrDeleteFailed, err)
	}

	n, err := client.HDel(ctx, s.key(entity), id).Result()
	if err != nil {
		return 0, errors.Join(ErrDeleteFailed, err)
	}
	return n, nil
}

// GetOrSet returns the value under entity/id, or calls fn to compute it on a
// miss and stores the result. Concurrent misses for the same entity/id share
// one fn call.
//
// If fn returns an error, nothing is stored and the error is returned.
// A failed write after a successful fn is ignored.
func (s *Store[V]) GetOrSet(ctx context.Context, entity, id string, fn func(ctx context.Context) (V, error)) (V, error) {
	v, err := s.Get(ctx, entity, id)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrDisabled) {
		return v, err
	}

	res, err, _ := s.flight.Do(s.key(entity)+"\x00"+id, func() (any, error) {
		val, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		_, _ = s.Set(ctx, entity, id, val)
		return val, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	v, _ = res.(V)
	return v, nil
}

func (s *Store[V]) client(ctx context.Context) (redis.UniversalClient, error) {
	if s.conn == nil {
		return nil, ErrDisabled
	}
	client, err := s.conn.Client(ctx)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrDisabled
	}
	return client, nil
}

func (s *Store[V]) key(entity string) string {
	if s.opts.prefix == "" {
		return entity
	}
	return s.opts.prefix + ":" + entity
}
