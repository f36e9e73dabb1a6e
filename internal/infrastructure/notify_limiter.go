package infrastructure

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// NotifyLimiter throttles unsolicited outbound messages per chat so the
// side-channel cannot trip Telegram's flood limits.
type NotifyLimiter struct {
	mu       sync.Mutex
	limiters map[int64]*limiterEntry
	rate     rate.Limit
	burst    int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewNotifyLimiter creates a limiter with the given per-chat rate and burst.
func NewNotifyLimiter(r float64, burst int) *NotifyLimiter {
	nl := &NotifyLimiter{
		limiters: make(map[int64]*limiterEntry),
		rate:     rate.Limit(r),
		burst:    burst,
	}

	go nl.cleanup()

	return nl
}

// Allow reports whether one more notification may be sent to the chat now.
func (nl *NotifyLimiter) Allow(chatID int64) bool {
	nl.mu.Lock()
	defer nl.mu.Unlock()

	entry, exists := nl.limiters[chatID]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(nl.rate, nl.burst)}
		nl.limiters[chatID] = entry
	}
	entry.lastSeen = time.Now()

	return entry.limiter.Allow()
}

// cleanup removes stale per-chat limiters periodically.
func (nl *NotifyLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		nl.mu.Lock()
		now := time.Now()
		for chatID, entry := range nl.limiters {
			if now.Sub(entry.lastSeen) > 10*time.Minute {
				delete(nl.limiters, chatID)
			}
		}
		nl.mu.Unlock()
	}
}
