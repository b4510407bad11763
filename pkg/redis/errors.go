package redis

import "errors"

var (
	ErrFailedToParseURL   = errors.New("redis: failed to parse connection URL")
	ErrConnectionFailed   = errors.New("redis: failed to establish connection")
	ErrMaxRetriesExceeded = errors.New("redis: max connection retries reached")
	ErrHealthcheckFailed  = errors.New("redis: healthcheck failed")
	ErrNotConnected       = errors.New("redis: not connected")
	ErrInvalidEnvironment = errors.New("redis: invalid environment configuration")
)

// Code identifies the kind of a connection failure.
type Code int

const (
	// CodeGeneric covers every connect failure not caused by retry exhaustion.
	CodeGeneric Code = 1
	// CodeMaxRetriesExceeded means the reconnect policy gave up.
	CodeMaxRetriesExceeded Code = 2
)

func (c Code) String() string {
	switch c {
	case CodeGeneric:
		return "generic"
	case CodeMaxRetriesExceeded:
		return "max_retries_exceeded"
	default:
		return "unknown"
	}
}

// ErrorCodes is the static lookup of connection failure codes.
var ErrorCodes = struct {
	Generic            Code
	MaxRetriesExceeded Code
}{
	Generic:            CodeGeneric,
	MaxRetriesExceeded: CodeMaxRetriesExceeded,
}

// Error is returned by Manager.Connect when a connection cannot be established.
// Err is the originating failure, kept for diagnostics.
type Error struct {
	Err     error
	Message string
	Code    Code
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the sentinel that corresponds to the error code.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrMaxRetriesExceeded:
		return e.Code == CodeMaxRetriesExceeded
	case ErrConnectionFailed:
		return true
	}
	return false
}

// classify turns a failure raised while connecting into an *Error.
// Retry exhaustion anywhere in the chain yields CodeMaxRetriesExceeded.
func classify(err error) *Error {
	if err == nil {
		return nil
	}

	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}

	code := CodeGeneric
	var exhausted *RetryExhaustedError
	if errors.As(err, &exhausted) {
		code = CodeMaxRetriesExceeded
	}

	return &Error{
		Message: err.Error(),
		Code:    code,
		Err:     err,
	}
}
