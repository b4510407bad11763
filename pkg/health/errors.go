package health

import "errors"

// ErrServe is returned when the probe listener cannot be started.
var ErrServe = errors.New("health: failed to serve probes")
