package storage

import "errors"

// Sentinel kinds for storage errors.
var (
	ErrTierUnavailable = errors.New("storage tier unavailable")
	ErrCorruptTimeline = errors.New("corrupt timeline payload")
)
