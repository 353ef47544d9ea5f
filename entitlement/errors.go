package entitlement

import "errors"

var (
	// ErrNoCheckpoint indicates no sale checkpoint has been stored yet.
	ErrNoCheckpoint = errors.New("entitlement: no checkpoint stored")

	// ErrCorruptRecord indicates a stored record could not be decoded.
	ErrCorruptRecord = errors.New("entitlement: corrupt record")
)
