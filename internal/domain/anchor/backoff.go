package anchor

import "time"

// BackoffPolicy computes retry delays of base*2^attempt, capped.
type BackoffPolicy struct {
	Base time.Duration
	Cap  time.Duration
}

// DefaultBackoff retries at 30s, 1m, 2m, ... capped at 30m.
var DefaultBackoff = BackoffPolicy{
	Base: 30 * time.Second,
	Cap:  30 * time.Minute,
}

// Delay returns the wait before retry number attempt (0-based).
func (p BackoffPolicy) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	delay := p.Base
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= p.Cap {
			return p.Cap
		}
	}
	if delay > p.Cap {
		return p.Cap
	}
	return delay
}

// NextAttempt returns the earliest time for retry number attempt.
func (p BackoffPolicy) NextAttempt(now time.Time, attempt int) time.Time {
	return now.Add(p.Delay(attempt))
}
