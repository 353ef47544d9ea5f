// Package entitlement is the passive bookkeeping substrate for the sale and
// claim engines: per-account counters and one-shot flags, read and mutated
// only under the engines' preconditions.
//
// All counters are monotonically non-decreasing, with one exception: the
// auction spend total is zeroed exactly once when a refund is issued.
package entitlement

// Record holds the per-account entitlement state.
type Record struct {
	// AuctionUnits is the number of units the account minted in the auction,
	// bounded by the wallet limit.
	AuctionUnits uint32

	// AuctionSpend is the cumulative value attached to the account's auction
	// mints, including any overpayment. Zeroed once upon refund.
	AuctionSpend uint64

	// OneShotUsed marks the single-unit whitelist/public allocation as
	// consumed.
	OneShotUsed bool

	// FractionUnits is the number of claim units bought on the fixed-price
	// fraction path, bounded by the per-account purchase limit.
	FractionUnits uint32
}

// Zero reports whether the record holds no entitlement state.
func (r Record) Zero() bool {
	return r == Record{}
}
