package fetch

import (
	"context"
	"math/rand/v2"
	"time"
)

// Throttle inserts a randomized delay (base + jitter) between requests to a
// source. The delay is part of the fetch contract: concurrent or back-to-back
// requests to the same source multiply the chance of being rate-limited.
type Throttle struct {
	Base   time.Duration
	Jitter time.Duration
}

// Wait sleeps for base plus a random portion of jitter. Returns ctx.Err()
// when the context ends first.
func (t Throttle) Wait(ctx context.Context) error {
	d := t.Delay()
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Delay returns one randomized delay value without sleeping.
func (t Throttle) Delay() time.Duration {
	d := t.Base
	if t.Jitter > 0 {
		d += time.Duration(rand.Int64N(int64(t.Jitter)))
	}
	return d
}
