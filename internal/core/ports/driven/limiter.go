package driven

// RateLimiter bounds how often a client may start generations.
// A nil limiter means unlimited (desktop deployment).
type RateLimiter interface {
	// Allow reports whether the client may perform another operation,
	// consuming one slot if so.
	Allow(clientKey string) bool
}
