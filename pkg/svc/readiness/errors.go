package readiness

import "errors"

// ErrTimeoutExceeded is returned when a timeout is exceeded.
var ErrTimeoutExceeded = errors.New("timeout exceeded")

// ErrInvalidProbe is returned when a probe has no URL.
var ErrInvalidProbe = errors.New("probe requires a url")
