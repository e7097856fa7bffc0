package poller

import "time"

// Clock schedules ticks. Tests substitute a manual implementation.
type Clock interface {
	After(d time.Duration) <-chan time.Time
	Now() time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

func (realClock) Now() time.Time { return time.Now() }

// SystemClock is backed by the time package.
var SystemClock Clock = realClock{}
