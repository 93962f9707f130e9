package worker

import (
	"math"
	"math/rand"
	"time"
)

const (
	baseDelay = 2 * time.Second
	capDelay  = 5 * time.Minute
	maxJitter = 250 * time.Millisecond
)

// ExponentialBackoff is the delay before retry number attempt+1.
// attempt=0 => 2s, attempt=1 => 4s, attempt=2 => 8s, capped at 5m, plus up
// to 250ms of jitter.
func ExponentialBackoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	delay := time.Duration(float64(baseDelay) * math.Pow(2, float64(attempt)))
	if delay > capDelay || delay <= 0 {
		delay = capDelay
	}

	return delay + time.Duration(rand.Int63n(int64(maxJitter)))
}
