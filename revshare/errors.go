package revshare

import "errors"

var (
	// ErrNoPayees indicates an empty payee table.
	ErrNoPayees = errors.New("revshare: no payees")

	// ErrZeroShares indicates a payee with zero shares.
	ErrZeroShares = errors.New("revshare: zero share amount")

	// ErrDuplicatePayee indicates the same account appears twice in the table.
	ErrDuplicatePayee = errors.New("revshare: duplicate payee")

	// ErrNotPayee indicates the account is not in the payee table.
	ErrNotPayee = errors.New("revshare: account is not a payee")

	// ErrNothingDue indicates the account has no pending entitlement.
	ErrNothingDue = errors.New("revshare: nothing due")

	// ErrPayoutFailed indicates the substrate rejected the payout transfer.
	ErrPayoutFailed = errors.New("revshare: payout failed")
)
