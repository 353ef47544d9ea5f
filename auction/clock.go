// Package auction implements the descending-price clock: a pure, discrete,
// non-increasing price function of elapsed time since a configured start.
package auction

import (
	"fmt"
	"time"
)

// Clock holds the descending-price schedule. The price starts at StartPrice,
// drops by Decrement every Step, and never goes below Reserve.
type Clock struct {
	startPrice uint64
	decrement  uint64
	reserve    uint64
	step       time.Duration

	start    time.Time
	startSet bool
}

// NewClock validates the schedule parameters and returns a clock with no
// start time set.
func NewClock(startPrice, decrement, reserve uint64, step time.Duration) (*Clock, error) {
	if step <= 0 {
		return nil, fmt.Errorf("%w: step must be positive", ErrBadSchedule)
	}
	if reserve > startPrice {
		return nil, fmt.Errorf("%w: reserve %d above start price %d", ErrBadSchedule, reserve, startPrice)
	}
	if decrement == 0 && startPrice != reserve {
		return nil, fmt.Errorf("%w: zero decrement can never reach the reserve", ErrBadSchedule)
	}
	return &Clock{
		startPrice: startPrice,
		decrement:  decrement,
		reserve:    reserve,
		step:       step,
	}, nil
}

// SetStart sets the auction start to t. The start must be strictly in the
// future relative to now, and an already-elapsed start cannot be moved.
func (c *Clock) SetStart(t, now time.Time) error {
	if !t.After(now) {
		return fmt.Errorf("%w: %v is not after %v", ErrInvalidStartTime, t, now)
	}
	if c.startSet && !now.Before(c.start) {
		return ErrStartElapsed
	}
	c.start = t
	c.startSet = true
	return nil
}

// RestoreStart reinstates a previously persisted start time, bypassing the
// future-time check. Only for reloading saved state.
func (c *Clock) RestoreStart(t time.Time) {
	c.start = t
	c.startSet = true
}

// Start returns the configured start time and whether one has been set.
func (c *Clock) Start() (time.Time, bool) {
	return c.start, c.startSet
}

// Started reports whether the start is set and has elapsed at now.
func (c *Clock) Started(now time.Time) bool {
	return c.startSet && !now.Before(c.start)
}

// StartPrice returns the opening price of the schedule.
func (c *Clock) StartPrice() uint64 {
	return c.startPrice
}

// Reserve returns the price floor of the schedule.
func (c *Clock) Reserve() uint64 {
	return c.reserve
}

// PriceAt returns the schedule price at now. Before the start (or with no
// start set) it returns the opening price; afterwards the price drops by one
// decrement per whole elapsed step, clamped at the reserve.
func (c *Clock) PriceAt(now time.Time) uint64 {
	if !c.startSet || now.Before(c.start) {
		return c.startPrice
	}
	decrements := uint64(now.Sub(c.start) / c.step)
	gap := c.startPrice - c.reserve
	if gap == 0 || decrements >= (gap+c.decrement-1)/c.decrement {
		return c.reserve
	}
	return c.startPrice - decrements*c.decrement
}
