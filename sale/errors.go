package sale

import "errors"

var (
	// ErrAccessDenied indicates a non-owner attempted a restricted call.
	ErrAccessDenied = errors.New("sale: access denied")

	// ErrInvalidPhase indicates the operation is not allowed in the current
	// phase, or the phase value is outside the enumerated range.
	ErrInvalidPhase = errors.New("sale: invalid phase")

	// ErrCallerNotOriginator indicates a relayed call where a direct one is
	// required.
	ErrCallerNotOriginator = errors.New("sale: caller is not the originating account")

	// ErrStartNotSet indicates no auction start time has been configured.
	ErrStartNotSet = errors.New("sale: auction start not set")

	// ErrZeroQuantity indicates a mint of zero units.
	ErrZeroQuantity = errors.New("sale: quantity must be positive")

	// ErrSupplyExceeded indicates the capacity, the auction sub-cap, or the
	// per-wallet auction limit would be breached.
	ErrSupplyExceeded = errors.New("sale: supply exceeded")

	// ErrPaymentMismatch indicates the attached value does not satisfy the price.
	ErrPaymentMismatch = errors.New("sale: payment does not match price")

	// ErrAlreadyConsumed indicates the account's one-shot allocation is spent.
	ErrAlreadyConsumed = errors.New("sale: one-shot allocation already consumed")

	// ErrNotSettled indicates the settlement price has not been captured yet.
	ErrNotSettled = errors.New("sale: settlement price not captured")

	// ErrNothingToRefund indicates the account has no recorded auction spend.
	ErrNothingToRefund = errors.New("sale: nothing to refund")

	// ErrNothingCollected indicates there are no funds to withdraw.
	ErrNothingCollected = errors.New("sale: nothing collected")

	// ErrTransferFailed indicates the substrate rejected an outbound transfer.
	ErrTransferFailed = errors.New("sale: transfer failed")

	// ErrBadParams indicates incoherent controller parameters.
	ErrBadParams = errors.New("sale: bad parameters")
)
