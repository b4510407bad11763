package settings

import "errors"

var (
	// ErrInvalidFile is returned when a settings file exists but cannot be parsed.
	ErrInvalidFile = errors.New("settings: invalid settings file")

	// ErrDecode is returned when a value does not fit the destination type.
	ErrDecode = errors.New("settings: failed to decode value")
)
