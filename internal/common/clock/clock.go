// Package clock abstracts the wall clock so duel timing can be tested.
package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/KirkDiggler/duelhall/internal/common/clock Clock

// Clock reports the current time. Cooldowns and duel expiry are measured against it.
type Clock interface {
	Now() time.Time
}

// DefaultClock reads the system clock in UTC
type DefaultClock struct{}

// New returns the system clock
func New() *DefaultClock {
	return &DefaultClock{}
}

// Now returns the current UTC time
func (c *DefaultClock) Now() time.Time {
	return time.Now().UTC()
}
