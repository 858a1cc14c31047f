package rate

import "errors"

var (
	// ErrRateLimited reports an identifier or IP over its attempt budget.
	ErrRateLimited = errors.New("rate limited")
	// ErrRedisUnavailable reports a limiter backend connectivity failure.
	ErrRedisUnavailable = errors.New("redis unavailable")
)
