package claimmap

import "errors"

var (
	// ErrEmptyBitmap indicates a bitmap of zero identifiers was requested.
	ErrEmptyBitmap = errors.New("claimmap: bitmap size must be positive")

	// ErrIdentifierRange indicates the identifier is outside the bitmap.
	ErrIdentifierRange = errors.New("claimmap: identifier out of range")

	// ErrAlreadyClaimed indicates the identifier's claim was already consumed.
	ErrAlreadyClaimed = errors.New("claimmap: already claimed")

	// ErrAccessDenied indicates a non-owner attempted an administrative call.
	ErrAccessDenied = errors.New("claimmap: access denied")

	// ErrInvalidPhase indicates the operation is not allowed in the current
	// phase, or the phase value is outside the enumerated range.
	ErrInvalidPhase = errors.New("claimmap: invalid phase")

	// ErrCallerNotOriginator indicates a relayed call where a direct one is
	// required.
	ErrCallerNotOriginator = errors.New("claimmap: caller is not the originating account")

	// ErrEmptyBatch indicates a holder claim with no identifiers.
	ErrEmptyBatch = errors.New("claimmap: empty claim batch")

	// ErrNotHolder indicates the caller does not own the identifier.
	ErrNotHolder = errors.New("claimmap: caller does not hold the token")

	// ErrHoldTooShort indicates the token has not been held long enough.
	ErrHoldTooShort = errors.New("claimmap: hold duration not elapsed")

	// ErrZeroQuantity indicates a purchase of zero units.
	ErrZeroQuantity = errors.New("claimmap: quantity must be positive")

	// ErrPaymentMismatch indicates the attached value does not equal the price.
	ErrPaymentMismatch = errors.New("claimmap: payment does not match price")

	// ErrPurchaseLimit indicates the per-account purchase cap would be exceeded.
	ErrPurchaseLimit = errors.New("claimmap: purchase limit exceeded")

	// ErrInvalidHoldTimer indicates the hold duration is not a whole number of days.
	ErrInvalidHoldTimer = errors.New("claimmap: hold timer must be a whole multiple of one day")

	// ErrTransferFailed indicates the substrate rejected the outbound transfer.
	ErrTransferFailed = errors.New("claimmap: unit transfer failed")

	// ErrNothingCollected indicates there are no funds to withdraw.
	ErrNothingCollected = errors.New("claimmap: nothing collected")

	// ErrNoSnapshot indicates no bitmap snapshot has been saved yet.
	ErrNoSnapshot = errors.New("claimmap: no snapshot stored")

	// ErrCorruptSnapshot indicates a stored snapshot could not be decoded.
	ErrCorruptSnapshot = errors.New("claimmap: corrupt snapshot")
)
