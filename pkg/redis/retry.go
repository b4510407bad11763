package redis

import (
	"fmt"
	"time"
)

const (
	// DefaultMaxRetries is used when a connection attempt does not set WithMaxRetries.
	DefaultMaxRetries = 3

	retryStep     = 50 * time.Millisecond
	maxRetryDelay = time.Second
)

// RetryExhaustedError is returned by RetryDelay once the attempt count reaches
// the configured maximum. Last holds the failure that triggered the final
// decision, when the caller attaches one.
type RetryExhaustedError struct {
	Last       error
	MaxRetries int
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("Max connection retries (%d) reached.", e.MaxRetries)
}

func (e *RetryExhaustedError) Unwrap() error {
	return e.Last
}

// RetryDelay decides what happens after a failed connection attempt.
// Attempts are numbered from zero. While attempt < maxRetries the returned
// delay grows linearly by 50ms per attempt and is capped at one second;
// after that a *RetryExhaustedError is returned and no further attempt
// should be made. A maxRetries of zero makes the very first failure terminal.
func RetryDelay(attempt, maxRetries int) (time.Duration, error) {
	if attempt < maxRetries {
		return min(time.Duration(attempt)*retryStep, maxRetryDelay), nil
	}
	return 0, &RetryExhaustedError{MaxRetries: maxRetries}
}
