package matching

import (
	"sync"

	"golang.org/x/time/rate"
)

// UserLimiter rate-limits per user ID. Browse scoring walks every active
// job on each request, so the endpoint is throttled per caller.
type UserLimiter struct {
	mu sync.Mutex
	m  map[string]*rate.Limiter
	r  rate.Limit
	b  int
}

// NewUserLimiter allows reqPerSec requests per user with the given burst.
func NewUserLimiter(reqPerSec float64, burst int) *UserLimiter {
	return &UserLimiter{
		m: make(map[string]*rate.Limiter),
		r: rate.Limit(reqPerSec),
		b: burst,
	}
}

func (ul *UserLimiter) limiterFor(userID string) *rate.Limiter {
	ul.mu.Lock()
	defer ul.mu.Unlock()

	if lim, ok := ul.m[userID]; ok {
		return lim
	}
	lim := rate.NewLimiter(ul.r, ul.b)
	ul.m[userID] = lim
	return lim
}

// Allow reports whether the user may proceed now.
func (ul *UserLimiter) Allow(userID string) bool {
	return ul.limiterFor(userID).Allow()
}
