package ledger

import "errors"

var (
	// ErrInvalidAddress indicates a malformed account address.
	ErrInvalidAddress = errors.New("ledger: invalid address")

	// ErrUnknownIdentifier indicates the token identifier has no ownership record.
	ErrUnknownIdentifier = errors.New("ledger: unknown token identifier")

	// ErrTransferRejected indicates the substrate refused an outbound transfer.
	ErrTransferRejected = errors.New("ledger: transfer rejected")

	// ErrInsufficientReserve indicates the reserve holds fewer units than requested.
	ErrInsufficientReserve = errors.New("ledger: insufficient unit reserve")
)
