package sale

import (
	"fmt"

	"github.com/dropforge/dropcore-go/ledger"
)

// Refund reconciles the caller's auction overpayment against the settlement
// price:
//
//	refund = spend − settlementPrice × (auction units − discount)
//
// where discount is 1 if the caller also consumed the one-shot allocation:
// that unit was priced outside the auction and must not count toward the
// auction-cost basis.
//
// The spend record is zeroed before the outbound transfer, so a reentrant
// call observes an already-settled record and cannot double-refund. If the
// substrate rejects the transfer, the record is restored and the whole
// operation fails.
func (c *Controller) Refund(call *ledger.Call) error {
	if c.phase != PhaseRefund {
		return fmt.Errorf("%w: refund requires %s, in %s", ErrInvalidPhase, PhaseRefund, c.phase)
	}

	rec, err := c.store.Get(call.Caller)
	if err != nil {
		return fmt.Errorf("sale: read entitlement: %w", err)
	}
	if rec.AuctionSpend == 0 {
		return ErrNothingToRefund
	}

	basis := uint64(rec.AuctionUnits)
	if rec.OneShotUsed && basis > 0 {
		basis--
	}
	cost := c.settlementPrice * basis

	// Spend can never fall below the settlement cost of the units it bought;
	// clamp anyway so a corrupted record cannot underflow.
	var amount uint64
	if rec.AuctionSpend > cost {
		amount = rec.AuctionSpend - cost
	}

	prevSpend := rec.AuctionSpend
	prevCollected := c.collected
	rec.AuctionSpend = 0
	if err := c.store.Put(call.Caller, rec); err != nil {
		return fmt.Errorf("sale: write entitlement: %w", err)
	}
	if amount <= c.collected {
		c.collected -= amount
	} else {
		c.collected = 0
	}

	if err := c.bank.Send(call.Caller, amount); err != nil {
		c.collected = prevCollected
		rec.AuctionSpend = prevSpend
		if perr := c.store.Put(call.Caller, rec); perr != nil {
			return fmt.Errorf("%w: %w (rollback failed: %w)", ErrTransferFailed, err, perr)
		}
		return fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}

	c.emit(Event{Type: EventRefund, Account: call.Caller, Amount: amount, Time: call.Time})
	return nil
}
