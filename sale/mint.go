package sale

import (
	"fmt"

	"github.com/dropforge/dropcore-go/capability"
	"github.com/dropforge/dropcore-go/ledger"
)

// AuctionMint buys quantity units at the current descending price. The caller
// must be the direct originator and carry a capability signature for
// (account, AUCTION, quantity). Overpayment is accepted and retained; the
// full attached value accrues to the account's refundable spend.
//
// The mint that exhausts the auction sub-cap captures the settlement price.
func (c *Controller) AuctionMint(call *ledger.Call, quantity uint32, sigDER []byte) error {
	if !call.Direct() {
		return ErrCallerNotOriginator
	}
	if c.phase != PhaseAuction {
		return fmt.Errorf("%w: auction mint requires %s, in %s", ErrInvalidPhase, PhaseAuction, c.phase)
	}
	if _, ok := c.clock.Start(); !ok {
		return ErrStartNotSet
	}
	if quantity == 0 {
		return ErrZeroQuantity
	}

	rec, err := c.store.Get(call.Caller)
	if err != nil {
		return fmt.Errorf("sale: read entitlement: %w", err)
	}
	if uint64(rec.AuctionUnits)+uint64(quantity) > uint64(c.params.WalletLimit) {
		return fmt.Errorf("%w: wallet has %d, wants %d more, limit %d",
			ErrSupplyExceeded, rec.AuctionUnits, quantity, c.params.WalletLimit)
	}
	if uint64(c.auctionMinted)+uint64(quantity) > uint64(c.params.AuctionSupply) {
		return fmt.Errorf("%w: auction minted %d, wants %d more, sub-cap %d",
			ErrSupplyExceeded, c.auctionMinted, quantity, c.params.AuctionSupply)
	}

	price := c.clock.PriceAt(call.Time)
	cost := price * uint64(quantity)
	if call.Value < cost {
		return fmt.Errorf("%w: attached %d below cost %d", ErrPaymentMismatch, call.Value, cost)
	}

	if err := c.verifier.Verify(capability.QuantityDigest(call.Caller, capability.TagAuction, quantity), sigDER); err != nil {
		return err
	}

	// Commit all state before the outbound mint.
	prevRec := rec
	prevSettled := c.settled
	c.auctionMinted += quantity
	c.totalMinted += quantity
	if c.auctionMinted == c.params.AuctionSupply && !c.settled {
		c.settlementPrice = price
		c.settled = true
	}
	rec.AuctionUnits += quantity
	rec.AuctionSpend += call.Value
	if err := c.store.Put(call.Caller, rec); err != nil {
		c.auctionMinted -= quantity
		c.totalMinted -= quantity
		c.settled = prevSettled
		return fmt.Errorf("sale: write entitlement: %w", err)
	}
	c.collected += call.Value

	if err := c.minter.Mint(call.Caller, quantity); err != nil {
		c.auctionMinted -= quantity
		c.totalMinted -= quantity
		c.settled = prevSettled
		c.collected -= call.Value
		if perr := c.store.Put(call.Caller, prevRec); perr != nil {
			return fmt.Errorf("%w: %w (rollback failed: %w)", ErrTransferFailed, err, perr)
		}
		return fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}

	c.emit(Event{Type: EventMint, Account: call.Caller, Quantity: quantity, Amount: call.Value, Detail: "auction", Time: call.Time})
	return nil
}

// WhitelistMint buys the account's single whitelist unit at half the
// settlement price. Requires a capability signature for (account, WHITELIST).
func (c *Controller) WhitelistMint(call *ledger.Call, sigDER []byte) error {
	return c.fixedMint(call, sigDER, PhaseWhitelist, capability.TagWhitelist)
}

// PublicMint buys the account's single public unit at the settlement price.
// Requires a capability signature for (account, PUBLIC).
func (c *Controller) PublicMint(call *ledger.Call, sigDER []byte) error {
	return c.fixedMint(call, sigDER, PhasePublic, capability.TagPublic)
}

// fixedMint is the shared one-shot fixed-price path. The price is anchored to
// the settlement price: full for public, half for whitelist.
func (c *Controller) fixedMint(call *ledger.Call, sigDER []byte, want Phase, tag capability.Tag) error {
	if c.phase != want {
		return fmt.Errorf("%w: %s mint requires %s, in %s", ErrInvalidPhase, tag, want, c.phase)
	}
	if c.totalMinted+1 > c.params.MaxSupply {
		return fmt.Errorf("%w: minted %d of %d", ErrSupplyExceeded, c.totalMinted, c.params.MaxSupply)
	}
	if !c.settled {
		return ErrNotSettled
	}

	price := c.settlementPrice
	if want == PhaseWhitelist {
		price /= 2
	}
	if call.Value != price {
		return fmt.Errorf("%w: attached %d, price %d", ErrPaymentMismatch, call.Value, price)
	}

	rec, err := c.store.Get(call.Caller)
	if err != nil {
		return fmt.Errorf("sale: read entitlement: %w", err)
	}
	if rec.OneShotUsed {
		return ErrAlreadyConsumed
	}

	if err := c.verifier.Verify(capability.Digest(call.Caller, tag), sigDER); err != nil {
		return err
	}

	// Commit all state before the outbound mint.
	prevRec := rec
	rec.OneShotUsed = true
	c.totalMinted++
	if err := c.store.Put(call.Caller, rec); err != nil {
		c.totalMinted--
		return fmt.Errorf("sale: write entitlement: %w", err)
	}
	c.collected += price

	if err := c.minter.Mint(call.Caller, 1); err != nil {
		c.totalMinted--
		c.collected -= price
		if perr := c.store.Put(call.Caller, prevRec); perr != nil {
			return fmt.Errorf("%w: %w (rollback failed: %w)", ErrTransferFailed, err, perr)
		}
		return fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}

	c.emit(Event{Type: EventMint, Account: call.Caller, Quantity: 1, Amount: price, Detail: string(tag), Time: call.Time})
	return nil
}
