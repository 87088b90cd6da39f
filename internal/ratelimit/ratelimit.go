// Package ratelimit deduplicates the repeated warning line each drop
// site would otherwise emit once per dropped frame (§7: "emits one
// rate-limited warning line naming the site"). A burst of identical
// drops collapses into a single log line per window.
package ratelimit

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Window is the default de-duplication window: within it, repeated calls
// to Allow for the same key are suppressed after the first.
const Window = 2 * time.Second

// Limiter suppresses repeated warnings for the same site+detail within a
// rolling window.
type Limiter struct {
	cache *ttlcache.Cache[string, struct{}]
}

// New constructs a Limiter with the given de-duplication window.
func New(window time.Duration) *Limiter {
	return &Limiter{
		cache: ttlcache.New[string, struct{}](
			ttlcache.WithTTL[string, struct{}](window),
			ttlcache.WithDisableTouchOnHit[string, struct{}](),
		),
	}
}

// Allow reports whether a warning for key should be logged now. The first
// call for a given key within the window returns true; subsequent calls
// within the same window return false.
func (l *Limiter) Allow(key string) bool {
	if l.cache.Get(key) != nil {
		return false
	}
	l.cache.Set(key, struct{}{}, ttlcache.DefaultTTL)
	return true
}
