package claimmap

import (
	"fmt"
	"time"

	"github.com/dropforge/dropcore-go/capability"
	"github.com/dropforge/dropcore-go/entitlement"
	"github.com/dropforge/dropcore-go/ledger"
)

// Phase enumerates the distributor's claim phases.
type Phase uint8

const (
	// PhasePaused disables both claim paths.
	PhasePaused Phase = iota
	// PhaseHolder enables the ownership-gated batch claim.
	PhaseHolder
	// PhaseSale enables the fixed-price fraction purchase.
	PhaseSale

	phaseCount
)

// Valid reports whether p is within the enumerated range.
func (p Phase) Valid() bool {
	return p < phaseCount
}

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhasePaused:
		return "paused"
	case PhaseHolder:
		return "holder"
	case PhaseSale:
		return "sale"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// EventType identifies a distributor event.
type EventType string

// Distributor event types.
const (
	EventHolderClaim EventType = "holder_claim"
	EventFractionBuy EventType = "fraction_buy"
	EventAdminChange EventType = "admin_change"
)

// Event records a completed distributor operation.
type Event struct {
	Type     EventType
	Account  ledger.Address
	Quantity uint32
	Amount   uint64
	Detail   string
	Time     time.Time
}

// Params configures a Distributor.
type Params struct {
	// MapSize is the number of addressable token identifiers.
	MapSize uint32
	// HoldTimer is the continuous-ownership duration required for a holder
	// claim. Must be a whole multiple of 24 hours.
	HoldTimer time.Duration
	// FractionPrice is the fixed price per unit on the purchase path.
	FractionPrice uint64
	// FractionLimit caps cumulative purchases per account.
	FractionLimit uint32
}

// Distributor governs one-time claims over the identifier space: a
// bitmap-backed holder claim gated by ownership and hold duration, and a
// fixed-price purchase path independent of the bitmap.
type Distributor struct {
	owner    ledger.Address
	params   Params
	phase    Phase
	bitmap   *Bitmap
	target   ledger.Address // external fraction-token ledger this claims against
	verifier *capability.Verifier
	store    entitlement.Store

	owners ledger.OwnerRegistry
	units  ledger.UnitTransferor
	bank   ledger.ValueTransferor

	collected uint64
	events    []Event
}

// NewDistributor creates a paused distributor with every identifier available.
func NewDistributor(owner ledger.Address, params Params, verifier *capability.Verifier,
	store entitlement.Store, owners ledger.OwnerRegistry, units ledger.UnitTransferor,
	bank ledger.ValueTransferor) (*Distributor, error) {

	if params.HoldTimer < 0 || params.HoldTimer%(24*time.Hour) != 0 {
		return nil, ErrInvalidHoldTimer
	}
	bm, err := NewBitmap(params.MapSize)
	if err != nil {
		return nil, err
	}
	return &Distributor{
		owner:    owner,
		params:   params,
		phase:    PhasePaused,
		bitmap:   bm,
		verifier: verifier,
		store:    store,
		owners:   owners,
		units:    units,
		bank:     bank,
	}, nil
}

// ---------------------------------------------------------------------------
// Administrative operations
// ---------------------------------------------------------------------------

func (d *Distributor) requireOwner(call *ledger.Call) error {
	if call.Caller != d.owner {
		return ErrAccessDenied
	}
	return nil
}

// SetPhase switches the claim phase. Owner only.
func (d *Distributor) SetPhase(call *ledger.Call, p Phase) error {
	if err := d.requireOwner(call); err != nil {
		return err
	}
	if !p.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPhase, uint8(p))
	}
	d.phase = p
	d.emit(Event{Type: EventAdminChange, Account: call.Caller, Detail: "phase=" + p.String(), Time: call.Time})
	return nil
}

// SetHoldTimer changes the required hold duration. Owner only; the duration
// must be a whole multiple of one day.
func (d *Distributor) SetHoldTimer(call *ledger.Call, hold time.Duration) error {
	if err := d.requireOwner(call); err != nil {
		return err
	}
	if hold < 0 || hold%(24*time.Hour) != 0 {
		return ErrInvalidHoldTimer
	}
	d.params.HoldTimer = hold
	d.emit(Event{Type: EventAdminChange, Account: call.Caller, Detail: "hold_timer=" + hold.String(), Time: call.Time})
	return nil
}

// SetClaimTarget records the external fraction-token ledger claims settle
// against. Owner only.
func (d *Distributor) SetClaimTarget(call *ledger.Call, target ledger.Address) error {
	if err := d.requireOwner(call); err != nil {
		return err
	}
	d.target = target
	d.emit(Event{Type: EventAdminChange, Account: call.Caller, Detail: "claim_target=" + target.String(), Time: call.Time})
	return nil
}

// WithdrawResidual moves leftover claim units from the reserve to the owner.
// Owner only.
func (d *Distributor) WithdrawResidual(call *ledger.Call, quantity uint32) error {
	if err := d.requireOwner(call); err != nil {
		return err
	}
	if err := d.units.Transfer(d.owner, quantity); err != nil {
		return fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}
	d.emit(Event{Type: EventAdminChange, Account: call.Caller, Quantity: quantity, Detail: "withdraw_residual", Time: call.Time})
	return nil
}

// WithdrawFunds sends the collected fraction-sale proceeds to the owner.
// Owner only. The collected total is zeroed before the outbound send.
func (d *Distributor) WithdrawFunds(call *ledger.Call) error {
	if err := d.requireOwner(call); err != nil {
		return err
	}
	if d.collected == 0 {
		return ErrNothingCollected
	}
	amount := d.collected
	d.collected = 0
	if err := d.bank.Send(d.owner, amount); err != nil {
		d.collected = amount
		return fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}
	d.emit(Event{Type: EventAdminChange, Account: call.Caller, Amount: amount, Detail: "withdraw_funds", Time: call.Time})
	return nil
}

// ---------------------------------------------------------------------------
// Claim operations
// ---------------------------------------------------------------------------

// HolderClaim redeems the one-time claim for every identifier in ids. The
// caller must be the direct originator, must currently hold each token, and
// must have held each for at least the hold timer. The batch is
// all-or-nothing: a single failing identifier aborts with no bits cleared.
//
// All bits are cleared before the single batched unit transfer; if the
// substrate rejects the transfer, the batch is unwound.
func (d *Distributor) HolderClaim(call *ledger.Call, ids []uint32) error {
	if !call.Direct() {
		return ErrCallerNotOriginator
	}
	if d.phase != PhaseHolder {
		return fmt.Errorf("%w: holder claim requires %s, in %s", ErrInvalidPhase, PhaseHolder, d.phase)
	}
	if len(ids) == 0 {
		return ErrEmptyBatch
	}

	// Clear bits as each identifier validates; unwind everything on failure.
	// Clearing before validation of later ids makes an in-batch duplicate
	// surface as ErrAlreadyClaimed.
	cleared := make([]uint32, 0, len(ids))
	success := false
	defer func() {
		if !success {
			for _, id := range cleared {
				d.bitmap.restore(id)
			}
		}
	}()

	for _, id := range ids {
		own, err := d.owners.OwnerOf(id)
		if err != nil {
			return fmt.Errorf("claimmap: id %d: %w", id, err)
		}
		if own.Holder != call.Caller {
			return fmt.Errorf("%w: id %d", ErrNotHolder, id)
		}
		if call.Time.Sub(own.AcquiredAt) < d.params.HoldTimer {
			return fmt.Errorf("%w: id %d", ErrHoldTooShort, id)
		}
		if err := d.bitmap.Claim(id); err != nil {
			return err
		}
		cleared = append(cleared, id)
	}

	if err := d.units.Transfer(call.Caller, uint32(len(ids))); err != nil {
		return fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}

	success = true
	d.emit(Event{Type: EventHolderClaim, Account: call.Caller, Quantity: uint32(len(ids)), Time: call.Time})
	return nil
}

// Claim buys quantity claim units at the fixed fraction price, capped at the
// per-account purchase limit. Requires a capability signature for the caller.
func (d *Distributor) Claim(call *ledger.Call, quantity uint32, sigDER []byte) error {
	if d.phase != PhaseSale {
		return fmt.Errorf("%w: purchase requires %s, in %s", ErrInvalidPhase, PhaseSale, d.phase)
	}
	if quantity == 0 {
		return ErrZeroQuantity
	}
	price := uint64(quantity) * d.params.FractionPrice
	if call.Value != price {
		return fmt.Errorf("%w: attached %d, price %d", ErrPaymentMismatch, call.Value, price)
	}

	rec, err := d.store.Get(call.Caller)
	if err != nil {
		return fmt.Errorf("claimmap: read entitlement: %w", err)
	}
	if uint64(rec.FractionUnits)+uint64(quantity) > uint64(d.params.FractionLimit) {
		return fmt.Errorf("%w: have %d, want %d more, limit %d",
			ErrPurchaseLimit, rec.FractionUnits, quantity, d.params.FractionLimit)
	}

	if err := d.verifier.Verify(capability.Digest(call.Caller, capability.TagFraction), sigDER); err != nil {
		return err
	}

	// Commit bookkeeping before the outbound transfer.
	prev := rec
	rec.FractionUnits += quantity
	if err := d.store.Put(call.Caller, rec); err != nil {
		return fmt.Errorf("claimmap: write entitlement: %w", err)
	}
	d.collected += price

	if err := d.units.Transfer(call.Caller, quantity); err != nil {
		d.collected -= price
		if perr := d.store.Put(call.Caller, prev); perr != nil {
			return fmt.Errorf("%w: %w (rollback failed: %w)", ErrTransferFailed, err, perr)
		}
		return fmt.Errorf("%w: %w", ErrTransferFailed, err)
	}

	d.emit(Event{Type: EventFractionBuy, Account: call.Caller, Quantity: quantity, Amount: price, Time: call.Time})
	return nil
}

// ---------------------------------------------------------------------------
// Read-only queries
// ---------------------------------------------------------------------------

// HasClaimed reports whether the one-time claim for id has been consumed.
func (d *Distributor) HasClaimed(id uint32) (bool, error) {
	avail, err := d.bitmap.Available(id)
	if err != nil {
		return false, err
	}
	return !avail, nil
}

// HasClaimedBatch reports claim consumption for each id, in order.
func (d *Distributor) HasClaimedBatch(ids []uint32) ([]bool, error) {
	out := make([]bool, len(ids))
	for i, id := range ids {
		claimed, err := d.HasClaimed(id)
		if err != nil {
			return nil, err
		}
		out[i] = claimed
	}
	return out, nil
}

// Phase returns the current claim phase.
func (d *Distributor) Phase() Phase {
	return d.phase
}

// HoldTimer returns the required continuous-ownership duration.
func (d *Distributor) HoldTimer() time.Duration {
	return d.params.HoldTimer
}

// ClaimTarget returns the configured external fraction-token ledger address.
func (d *Distributor) ClaimTarget() ledger.Address {
	return d.target
}

// Collected returns the fraction-sale proceeds not yet withdrawn.
func (d *Distributor) Collected() uint64 {
	return d.collected
}

// Bitmap exposes the availability vector for persistence.
func (d *Distributor) Bitmap() *Bitmap {
	return d.bitmap
}

// RestoreBitmap replaces the availability vector with a persisted one.
func (d *Distributor) RestoreBitmap(bm *Bitmap) error {
	if bm.Size() != d.params.MapSize {
		return fmt.Errorf("%w: snapshot size %d, map size %d", ErrIdentifierRange, bm.Size(), d.params.MapSize)
	}
	d.bitmap = bm
	return nil
}

// Events returns a copy of the recorded event journal.
func (d *Distributor) Events() []Event {
	out := make([]Event, len(d.events))
	copy(out, d.events)
	return out
}

func (d *Distributor) emit(ev Event) {
	d.events = append(d.events, ev)
}
