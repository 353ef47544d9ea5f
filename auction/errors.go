package auction

import "errors"

var (
	// ErrBadSchedule indicates incoherent price schedule parameters.
	ErrBadSchedule = errors.New("auction: bad price schedule")

	// ErrInvalidStartTime indicates the start time is not strictly in the future.
	ErrInvalidStartTime = errors.New("auction: start time must be in the future")

	// ErrStartElapsed indicates the start has already passed and cannot be moved.
	ErrStartElapsed = errors.New("auction: start already elapsed")
)
