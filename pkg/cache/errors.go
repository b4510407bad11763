package cache

import "errors"

// Sentinel errors for hash store operations.
var (
	// ErrNotFound is returned when the entity hash has no such field.
	ErrNotFound = errors.New("cache: entry not found")

	// ErrDisabled is returned when no Redis connection is configured.
	ErrDisabled = errors.New("cache: redis not configured")

	// ErrSetFailed is returned when a value could not be written.
	ErrSetFailed = errors.New("cache: set failed")

	// ErrGetFailed is returned when a value could not be read.
	ErrGetFailed = errors.New("cache: get failed")

	// ErrDeleteFailed is returned when a value could not be removed.
	ErrDeleteFailed = errors.New("cache: delete failed")

	// ErrMarshal is returned when value serialization fails.
	ErrMarshal = errors.New("cache: failed to marshal value")

	// ErrUnmarshal is returned when value deserialization fails.
	ErrUnmarshal = errors.New("cache: failed to unmarshal value")
)
