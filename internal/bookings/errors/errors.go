package errors

import "errors"

// ErrInvalidTime marks a raw value that does not parse as an ISO 8601 UTC
// date-time. The service translates it into the INVALID_TIME rejection.
var ErrInvalidTime = errors.New("time value does not parse as a UTC date-time")
