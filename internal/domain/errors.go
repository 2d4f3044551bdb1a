package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrNoRecords is returned when a consolidation request carries no rows
	ErrNoRecords = errors.New("no input records")

	// ErrRunNotFound is returned when a consolidation run cannot be found
	ErrRunNotFound = errors.New("consolidation run not found")

	// ErrStoreUnavailable is returned when the run store cannot be reached
	ErrStoreUnavailable = errors.New("run store unavailable")

	// ErrFeedUnreadable is returned when a feed file cannot be opened or parsed
	ErrFeedUnreadable = errors.New("feed file unreadable")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)
