package salesforce

import (
	"time"

	"github.com/example/ec-shop/internal/domain"
)

const (
	DefaultTTLSeconds = 900  // 15 minutes
	MinTTLSeconds     = 60   // 1 minute
	MaxTTLSeconds     = 7200 // 2 hours
)

// TTL is the lifespan of a Salesforce cart context.
type TTL struct {
	seconds int
}

// NewTTL builds a TTL; pass 0 for the default lifespan.
func NewTTL(seconds int) (TTL, error) {
	if seconds == 0 {
		seconds = DefaultTTLSeconds
	}
	if seconds < MinTTLSeconds || seconds > MaxTTLSeconds {
		return TTL{}, domain.NewValidationError(
			"context ttl must be between %d and %d seconds, got %d", MinTTLSeconds, MaxTTLSeconds, seconds)
	}
	return TTL{seconds: seconds}, nil
}

func (t TTL) Seconds() int { return t.seconds }

func (t TTL) Duration() time.Duration {
	return time.Duration(t.seconds) * time.Second
}

// ExpiresAt returns the moment a context created or refreshed at the given
// time lapses.
func (t TTL) ExpiresAt(from time.Time) time.Time {
	return from.Add(t.Duration())
}

// HasExpired reports whether the lifespan measured from `from` has lapsed at `now`.
func (t TTL) HasExpired(from, now time.Time) bool {
	return !now.Before(t.ExpiresAt(from))
}

// RemainingSeconds returns the seconds left before expiry, never negative.
func (t TTL) RemainingSeconds(from, now time.Time) int {
	remaining := int(t.ExpiresAt(from).Sub(now).Seconds())
	if remaining < 0 {
		return 0
	}
	return remaining
}
