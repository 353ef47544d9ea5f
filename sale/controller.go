// Package sale implements the phased token sale: a time-boxed
// descending-price auction with a per-wallet limit and an auction sub-cap,
// fixed-price whitelist/public phases anchored to the captured settlement
// price, and post-auction overpayment refunds.
//
// Every mutating operation commits all counters, flags, and records before
// performing any outbound transfer, and unwinds them if the substrate rejects
// the transfer.
package sale

import (
	"fmt"
	"time"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"

	"github.com/dropforge/dropcore-go/auction"
	"github.com/dropforge/dropcore-go/capability"
	"github.com/dropforge/dropcore-go/entitlement"
	"github.com/dropforge/dropcore-go/ledger"
)

// Releaser is the narrow surface of the external revenue splitter.
type Releaser interface {
	Release(account ledger.Address) error
}

// EventType identifies a sale event.
type EventType string

// Sale event types.
const (
	EventMint        EventType = "mint"
	EventRefund      EventType = "refund"
	EventAdminChange EventType = "admin_change"
)

// Event records a completed sale operation.
type Event struct {
	Type     EventType
	Account  ledger.Address
	Quantity uint32
	Amount   uint64
	Detail   string
	Time     time.Time
}

// Params configures a Controller.
type Params struct {
	// MaxSupply is the total issuable capacity.
	MaxSupply uint32
	// AuctionSupply is the sub-cap sold in the auction phase.
	AuctionSupply uint32
	// WalletLimit caps per-account auction mints.
	WalletLimit uint32
	// InitialReserve is minted to the owner at construction, counted against
	// MaxSupply but not against the auction sub-cap.
	InitialReserve uint32
}

// Controller is the phased sale state machine.
type Controller struct {
	owner    ledger.Address
	params   Params
	verifier *capability.Verifier
	clock    *auction.Clock
	store    entitlement.Store
	minter   ledger.UnitMinter
	bank     ledger.ValueTransferor
	splitter Releaser

	phase           Phase
	totalMinted     uint32
	auctionMinted   uint32
	settlementPrice uint64
	settled         bool
	collected       uint64

	baseURI     string
	contractURI string

	events []Event
}

// NewController creates a paused controller and mints the initial reserve to
// the owner. splitter may be nil when no revenue splitter is attached.
func NewController(owner ledger.Address, params Params, verifier *capability.Verifier,
	clock *auction.Clock, store entitlement.Store, minter ledger.UnitMinter,
	bank ledger.ValueTransferor, splitter Releaser) (*Controller, error) {

	if params.MaxSupply == 0 {
		return nil, fmt.Errorf("%w: zero max supply", ErrBadParams)
	}
	if params.AuctionSupply > params.MaxSupply {
		return nil, fmt.Errorf("%w: auction supply %d above max supply %d",
			ErrBadParams, params.AuctionSupply, params.MaxSupply)
	}
	if params.InitialReserve > params.MaxSupply-params.AuctionSupply {
		return nil, fmt.Errorf("%w: initial reserve %d leaves no room for auction supply %d",
			ErrBadParams, params.InitialReserve, params.AuctionSupply)
	}
	if params.WalletLimit == 0 {
		return nil, fmt.Errorf("%w: zero wallet limit", ErrBadParams)
	}

	c := &Controller{
		owner:    owner,
		params:   params,
		verifier: verifier,
		clock:    clock,
		store:    store,
		minter:   minter,
		bank:     bank,
		splitter: splitter,
		phase:    PhasePaused,
	}

	if params.InitialReserve > 0 {
		c.totalMinted = params.InitialReserve
		if err := minter.Mint(owner, params.InitialReserve); err != nil {
			return nil, fmt.Errorf("%w: initial reserve: %w", ErrTransferFailed, err)
		}
	}
	return c, nil
}

// ---------------------------------------------------------------------------
// Administrative operations
// ---------------------------------------------------------------------------

func (c *Controller) requireOwner(call *ledger.Call) error {
	if call.Caller != c.owner {
		return ErrAccessDenied
	}
	return nil
}

// SetPhase switches the sale phase. Owner only. Phases carry no enforced
// ordering; Refund is terminal by convention, not by mechanism.
func (c *Controller) SetPhase(call *ledger.Call, p Phase) error {
	if err := c.requireOwner(call); err != nil {
		return err
	}
	if !p.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPhase, uint8(p))
	}
	c.phase = p
	c.emit(Event{Type: EventAdminChange, Account: call.Caller, Detail: "phase=" + p.String(), Time: call.Time})
	return nil
}

// SetAuctionStart schedules the auction start. Owner only; the time must be
// strictly later than the ledger time of the call, and an elapsed start
// cannot be moved.
func (c *Controller) SetAuctionStart(call *ledger.Call, start time.Time) error {
	if err := c.requireOwner(call); err != nil {
		return err
	}
	if err := c.clock.SetStart(start, call.Time); err != nil {
		return err
	}
	c.emit(Event{Type: EventAdminChange, Account: call.Caller, Detail: "auction_start=" + start.UTC().Format(time.RFC3339), Time: call.Time})
	return nil
}

// SetSigner rotates the capability signing key. Owner only.
func (c *Controller) SetSigner(call *ledger.Call, signer *ec.PublicKey) error {
	if err := c.requireOwner(call); err != nil {
		return err
	}
	if err := c.verifier.SetSigner(signer); err != nil {
		return err
	}
	c.emit(Event{Type: EventAdminChange, Account: call.Caller, Detail: "signer_rotated", Time: call.Time})
	return nil
}

// SetBaseURI records the metadata base URI. Owner only.
func (c *Controller) SetBaseURI(call *ledger.Call, uri string) error {
	if err := c.requireOwner(call); err != nil {
		return err
	}
	c.baseURI = uri
	c.emit(Event{Type: EventAdminChange, Account: call.Caller, Detail: "base_uri=" + uri, Time: call.Time})
	return nil
}

// SetContractURI records the contract metadata URI. Owner only.
func (c *Controller) SetContractURI(call *ledger.Call, uri string) error {
	if err := c.requireOwner(call); err != nil {
		return err
	}
	c.contractURI = uri
	c.emit(Event{Type: EventAdminChange, Account: call.Caller, Detail: "contract_uri=" + uri, Time: call.Time})
	return nil
}

// Withdraw sends the collected proceeds to the owner. Owner only. The
// collected total is zeroed before the outbound send.
func (c *Controller) Withdraw(call *ledger.Call) error {
	if err := c.requireOwner(call); err != nil {
		return err
	}
	if c.collected == 0 {
		return ErrNothingCollected
	}
	amount := c.collected
	c.collected = 0
	if err := c.bank.Send(c.owner, amount); err != nil {
		c.collected = amount
		return fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}
	c.emit(Event{Type: EventAdminChange, Account: call.Caller, Amount: amount, Detail: "withdraw", Time: call.Time})
	return nil
}

// Release triggers the revenue splitter payout for account. Anyone may call,
// but only for their own account.
func (c *Controller) Release(call *ledger.Call, account ledger.Address) error {
	if c.splitter == nil {
		return fmt.Errorf("%w: no splitter attached", ErrBadParams)
	}
	if call.Caller != account {
		return ErrAccessDenied
	}
	return c.splitter.Release(account)
}

// ---------------------------------------------------------------------------
// Read-only queries
// ---------------------------------------------------------------------------

// Price returns the unit price at now: the descending schedule price during
// the auction phase, the opening price otherwise.
func (c *Controller) Price(now time.Time) uint64 {
	if c.phase != PhaseAuction {
		return c.clock.StartPrice()
	}
	return c.clock.PriceAt(now)
}

// Phase returns the current sale phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// TotalMinted returns the number of units minted across all phases.
func (c *Controller) TotalMinted() uint32 {
	return c.totalMinted
}

// AuctionMinted returns the number of units minted in the auction.
func (c *Controller) AuctionMinted() uint32 {
	return c.auctionMinted
}

// SettlementPrice returns the captured settlement price, and whether the
// auction has settled.
func (c *Controller) SettlementPrice() (uint64, bool) {
	return c.settlementPrice, c.settled
}

// Collected returns the proceeds not yet withdrawn or refunded.
func (c *Controller) Collected() uint64 {
	return c.collected
}

// Record returns the entitlement record for account.
func (c *Controller) Record(account ledger.Address) (entitlement.Record, error) {
	return c.store.Get(account)
}

// BaseURI returns the configured metadata base URI.
func (c *Controller) BaseURI() string {
	return c.baseURI
}

// ContractURI returns the configured contract metadata URI.
func (c *Controller) ContractURI() string {
	return c.contractURI
}

// Owner returns the administrator account.
func (c *Controller) Owner() ledger.Address {
	return c.owner
}

// Events returns a copy of the recorded event journal.
func (c *Controller) Events() []Event {
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

func (c *Controller) emit(ev Event) {
	c.events = append(c.events, ev)
}

// ---------------------------------------------------------------------------
// Persistence
// ---------------------------------------------------------------------------

// Snapshot captures the controller's scalar state for persistence.
func (c *Controller) Snapshot() entitlement.Checkpoint {
	cp := entitlement.Checkpoint{
		Phase:           uint8(c.phase),
		TotalMinted:     c.totalMinted,
		AuctionMinted:   c.auctionMinted,
		SettlementPrice: c.settlementPrice,
		Settled:         c.settled,
	}
	if start, ok := c.clock.Start(); ok {
		cp.AuctionStart = start.Unix()
		cp.StartSet = true
	}
	return cp
}

// Restore applies a persisted snapshot.
func (c *Controller) Restore(cp entitlement.Checkpoint) error {
	p := Phase(cp.Phase)
	if !p.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPhase, cp.Phase)
	}
	c.phase = p
	c.totalMinted = cp.TotalMinted
	c.auctionMinted = cp.AuctionMinted
	c.settlementPrice = cp.SettlementPrice
	c.settled = cp.Settled
	if cp.StartSet {
		c.clock.RestoreStart(time.Unix(cp.AuctionStart, 0))
	}
	return nil
}
