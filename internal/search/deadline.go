package search

import (
	"math"
	"time"
)

// TimeLeft reports how much of the current turn remains.
type TimeLeft func() time.Duration

func TimeLeftUntil(deadline time.Time) TimeLeft {
	return func() time.Duration {
		return time.Until(deadline)
	}
}

func Unlimited() time.Duration {
	return time.Duration(math.MaxInt64)
}

type deadline struct {
	timeLeft TimeLeft
	margin   time.Duration
}

func (d deadline) expired() bool {
	return d.timeLeft() < d.margin
}
