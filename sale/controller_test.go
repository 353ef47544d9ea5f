package sale

import (
	"encoding/binary"
	"testing"
	"time"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropforge/dropcore-go/auction"
	"github.com/dropforge/dropcore-go/capability"
	"github.com/dropforge/dropcore-go/entitlement"
	"github.com/dropforge/dropcore-go/ledger"
)

const unit = uint64(1_000_000_000) // 1.0 in base value units

// account derives a distinct test address from an index.
func account(i uint32) ledger.Address {
	var a ledger.Address
	binary.BigEndian.PutUint32(a[:4], i+1)
	return a
}

type harness struct {
	owner  ledger.Address
	signer *ec.PrivateKey
	book   *ledger.Book
	store  *entitlement.MemStore
	clock  *auction.Clock
	ctrl   *Controller
	now    time.Time
	start  time.Time
}

// newHarness builds a controller over an in-memory substrate with the
// standard schedule: opening 1.0, decrement 0.1 every 5 minutes, floor 0.1.
func newHarness(t *testing.T, params Params) *harness {
	t.Helper()

	priv, err := ec.NewPrivateKey()
	require.NoError(t, err)
	verifier, err := capability.NewVerifier(priv.PubKey())
	require.NoError(t, err)
	clock, err := auction.NewClock(unit, unit/10, unit/10, 5*time.Minute)
	require.NoError(t, err)

	h := &harness{
		owner:  account(0),
		signer: priv,
		book:   ledger.NewBook(0),
		store:  entitlement.NewMemStore(),
		clock:  clock,
		now:    time.Unix(1_700_000_000, 0),
	}
	h.start = h.now.Add(time.Minute)

	h.ctrl, err = NewController(h.owner, params, verifier, clock, h.store, h.book, h.book, nil)
	require.NoError(t, err)
	return h
}

func defaultParams() Params {
	return Params{MaxSupply: 12, AuctionSupply: 8, WalletLimit: 5, InitialReserve: 2}
}

func (h *harness) adminCall() *ledger.Call {
	return &ledger.Call{Origin: h.owner, Caller: h.owner, Time: h.now}
}

func (h *harness) call(acct ledger.Address, value uint64, at time.Time) *ledger.Call {
	return &ledger.Call{Origin: acct, Caller: acct, Value: value, Time: at}
}

// openAuction switches to the auction phase with the start scheduled one
// minute after the harness epoch.
func (h *harness) openAuction(t *testing.T) {
	t.Helper()
	require.NoError(t, h.ctrl.SetPhase(h.adminCall(), PhaseAuction))
	require.NoError(t, h.ctrl.SetAuctionStart(h.adminCall(), h.start))
}

func (h *harness) auctionSig(t *testing.T, acct ledger.Address, qty uint32) []byte {
	t.Helper()
	sig, err := capability.Sign(h.signer, capability.QuantityDigest(acct, capability.TagAuction, qty))
	require.NoError(t, err)
	return sig
}

func (h *harness) tagSig(t *testing.T, acct ledger.Address, tag capability.Tag) []byte {
	t.Helper()
	sig, err := capability.Sign(h.signer, capability.Digest(acct, tag))
	require.NoError(t, err)
	return sig
}

func (h *harness) auctionMint(t *testing.T, acct ledger.Address, qty uint32, value uint64, at time.Time) error {
	t.Helper()
	return h.ctrl.AuctionMint(h.call(acct, value, at), qty, h.auctionSig(t, acct, qty))
}

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

func TestNewController_Validation(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"zero max supply", Params{AuctionSupply: 1, WalletLimit: 1}},
		{"auction supply above max", Params{MaxSupply: 5, AuctionSupply: 6, WalletLimit: 1}},
		{"reserve crowds out auction", Params{MaxSupply: 10, AuctionSupply: 8, InitialReserve: 3, WalletLimit: 1}},
		{"zero wallet limit", Params{MaxSupply: 10, AuctionSupply: 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := ledger.NewBook(0)
			_, err := NewController(account(0), tt.params, nil, nil, entitlement.NewMemStore(), book, book, nil)
			assert.ErrorIs(t, err, ErrBadParams)
		})
	}
}

func TestNewController_InitialReserve(t *testing.T) {
	h := newHarness(t, defaultParams())

	assert.Equal(t, uint32(2), h.ctrl.TotalMinted())
	assert.Equal(t, uint32(0), h.ctrl.AuctionMinted())
	assert.Equal(t, uint32(2), h.book.UnitBalance(h.owner))
	assert.Equal(t, PhasePaused, h.ctrl.Phase())
}

// ---------------------------------------------------------------------------
// Auction mint
// ---------------------------------------------------------------------------

func TestAuctionMint_Gates(t *testing.T) {
	h := newHarness(t, defaultParams())
	acct := account(1)
	at := h.start.Add(time.Minute)

	// Paused.
	err := h.auctionMint(t, acct, 1, unit, at)
	assert.ErrorIs(t, err, ErrInvalidPhase)

	require.NoError(t, h.ctrl.SetPhase(h.adminCall(), PhaseAuction))

	// Start not scheduled.
	err = h.auctionMint(t, acct, 1, unit, at)
	assert.ErrorIs(t, err, ErrStartNotSet)

	require.NoError(t, h.ctrl.SetAuctionStart(h.adminCall(), h.start))

	// Relayed calls are rejected.
	relayed := &ledger.Call{Origin: account(9), Caller: acct, Value: unit, Time: at}
	err = h.ctrl.AuctionMint(relayed, 1, h.auctionSig(t, acct, 1))
	assert.ErrorIs(t, err, ErrCallerNotOriginator)

	// Zero quantity.
	err = h.auctionMint(t, acct, 0, unit, at)
	assert.ErrorIs(t, err, ErrZeroQuantity)

	// Underpayment at the opening price.
	err = h.auctionMint(t, acct, 2, 2*unit-1, at)
	assert.ErrorIs(t, err, ErrPaymentMismatch)

	// Signature bound to a different quantity.
	err = h.ctrl.AuctionMint(h.call(acct, unit, at), 1, h.auctionSig(t, acct, 2))
	assert.ErrorIs(t, err, capability.ErrSignatureInvalid)

	// Nothing above changed state.
	assert.Equal(t, uint32(0), h.ctrl.AuctionMinted())
	assert.Equal(t, uint64(0), h.ctrl.Collected())
}

func TestAuctionMint_WalletLimit(t *testing.T) {
	h := newHarness(t, defaultParams())
	h.openAuction(t)
	acct := account(1)
	at := h.start

	require.NoError(t, h.auctionMint(t, acct, 5, 5*unit, at))

	err := h.auctionMint(t, acct, 1, unit, at)
	assert.ErrorIs(t, err, ErrSupplyExceeded)

	rec, err := h.ctrl.Record(acct)
	require.NoError(t, err)
	assert.Equal(t, uint32(5), rec.AuctionUnits)
	assert.Equal(t, uint32(5), h.book.UnitBalance(acct))
}

func TestAuctionMint_SubCap(t *testing.T) {
	h := newHarness(t, defaultParams())
	h.openAuction(t)
	at := h.start

	require.NoError(t, h.auctionMint(t, account(1), 5, 5*unit, at))
	require.NoError(t, h.auctionMint(t, account(2), 2, 2*unit, at))

	// One unit of auction capacity left; two is one too many.
	err := h.auctionMint(t, account(3), 2, 2*unit, at)
	assert.ErrorIs(t, err, ErrSupplyExceeded)

	require.NoError(t, h.auctionMint(t, account(3), 1, unit, at))
	assert.Equal(t, uint32(8), h.ctrl.AuctionMinted())
}

func TestAuctionMint_OverpaymentRetained(t *testing.T) {
	h := newHarness(t, defaultParams())
	h.openAuction(t)
	acct := account(1)

	// Price at +25 minutes is 0.5; attach 0.8.
	at := h.start.Add(25 * time.Minute)
	require.NoError(t, h.auctionMint(t, acct, 1, 8*unit/10, at))

	rec, err := h.ctrl.Record(acct)
	require.NoError(t, err)
	assert.Equal(t, 8*unit/10, rec.AuctionSpend)
	assert.Equal(t, 8*unit/10, h.ctrl.Collected())
}

func TestAuctionMint_SettlementCapture(t *testing.T) {
	h := newHarness(t, defaultParams())
	h.openAuction(t)

	require.NoError(t, h.auctionMint(t, account(1), 5, 5*unit, h.start))

	_, settled := h.ctrl.SettlementPrice()
	assert.False(t, settled)

	// The mint that exhausts the sub-cap settles at the price of that moment:
	// 0.5 after five decrements.
	at := h.start.Add(25 * time.Minute)
	require.NoError(t, h.auctionMint(t, account(2), 3, 3*unit/2, at))

	price, settled := h.ctrl.SettlementPrice()
	assert.True(t, settled)
	assert.Equal(t, unit/2, price)

	// A later phase change does not disturb the captured price.
	require.NoError(t, h.ctrl.SetPhase(h.adminCall(), PhaseWhitelist))
	price, settled = h.ctrl.SettlementPrice()
	assert.True(t, settled)
	assert.Equal(t, unit/2, price)
}

func TestAuctionMint_RollbackOnRejectedTransfer(t *testing.T) {
	h := newHarness(t, defaultParams())
	h.openAuction(t)
	acct := account(1)

	h.book.SetRejecting(true)
	err := h.auctionMint(t, acct, 2, 2*unit, h.start)
	assert.ErrorIs(t, err, ErrTransferFailed)

	// All committed state was unwound.
	assert.Equal(t, uint32(0), h.ctrl.AuctionMinted())
	assert.Equal(t, uint32(2), h.ctrl.TotalMinted()) // initial reserve only
	assert.Equal(t, uint64(0), h.ctrl.Collected())
	rec, rerr := h.ctrl.Record(acct)
	require.NoError(t, rerr)
	assert.True(t, rec.Zero())
}

// ---------------------------------------------------------------------------
// Fixed-price mints
// ---------------------------------------------------------------------------

// settleAuction drives the auction to settlement at 0.5 and returns the
// settlement price.
func (h *harness) settleAuction(t *testing.T) uint64 {
	t.Helper()
	h.openAuction(t)
	require.NoError(t, h.auctionMint(t, account(1), 5, 5*unit, h.start))
	at := h.start.Add(25 * time.Minute)
	require.NoError(t, h.auctionMint(t, account(2), 3, 3*unit/2, at))
	price, settled := h.ctrl.SettlementPrice()
	require.True(t, settled)
	return price
}

func TestWhitelistMint(t *testing.T) {
	h := newHarness(t, defaultParams())
	price := h.settleAuction(t)
	require.NoError(t, h.ctrl.SetPhase(h.adminCall(), PhaseWhitelist))

	acct := account(3)
	half := price / 2

	// Exact payment only.
	err := h.ctrl.WhitelistMint(h.call(acct, price, h.now), h.tagSig(t, acct, capability.TagWhitelist))
	assert.ErrorIs(t, err, ErrPaymentMismatch)

	require.NoError(t, h.ctrl.WhitelistMint(h.call(acct, half, h.now), h.tagSig(t, acct, capability.TagWhitelist)))
	assert.Equal(t, uint32(1), h.book.UnitBalance(acct))

	// The one-shot allocation is consumed.
	err = h.ctrl.WhitelistMint(h.call(acct, half, h.now), h.tagSig(t, acct, capability.TagWhitelist))
	assert.ErrorIs(t, err, ErrAlreadyConsumed)
}

func TestPublicMint(t *testing.T) {
	h := newHarness(t, defaultParams())
	price := h.settleAuction(t)
	require.NoError(t, h.ctrl.SetPhase(h.adminCall(), PhasePublic))

	acct := account(3)
	require.NoError(t, h.ctrl.PublicMint(h.call(acct, price, h.now), h.tagSig(t, acct, capability.TagPublic)))
	assert.Equal(t, uint32(1), h.book.UnitBalance(acct))
}

func TestFixedMint_OneShotSharedAcrossPhases(t *testing.T) {
	h := newHarness(t, defaultParams())
	price := h.settleAuction(t)
	acct := account(3)

	require.NoError(t, h.ctrl.SetPhase(h.adminCall(), PhaseWhitelist))
	require.NoError(t, h.ctrl.WhitelistMint(h.call(acct, price/2, h.now), h.tagSig(t, acct, capability.TagWhitelist)))

	// The same account cannot consume the allocation again in public.
	require.NoError(t, h.ctrl.SetPhase(h.adminCall(), PhasePublic))
	err := h.ctrl.PublicMint(h.call(acct, price, h.now), h.tagSig(t, acct, capability.TagPublic))
	assert.ErrorIs(t, err, ErrAlreadyConsumed)
}

func TestFixedMint_RequiresSettlement(t *testing.T) {
	h := newHarness(t, defaultParams())
	require.NoError(t, h.ctrl.SetPhase(h.adminCall(), PhaseWhitelist))

	acct := account(1)
	err := h.ctrl.WhitelistMint(h.call(acct, unit/4, h.now), h.tagSig(t, acct, capability.TagWhitelist))
	assert.ErrorIs(t, err, ErrNotSettled)
}

func TestFixedMint_MaxSupply(t *testing.T) {
	// Reserve 2 + auction 8 + two fixed mints fill MaxSupply 12.
	h := newHarness(t, defaultParams())
	price := h.settleAuction(t)
	require.NoError(t, h.ctrl.SetPhase(h.adminCall(), PhasePublic))

	require.NoError(t, h.ctrl.PublicMint(h.call(account(3), price, h.now), h.tagSig(t, account(3), capability.TagPublic)))
	require.NoError(t, h.ctrl.PublicMint(h.call(account(4), price, h.now), h.tagSig(t, account(4), capability.TagPublic)))

	err := h.ctrl.PublicMint(h.call(account(5), price, h.now), h.tagSig(t, account(5), capability.TagPublic))
	assert.ErrorIs(t, err, ErrSupplyExceeded)
	assert.Equal(t, uint32(12), h.ctrl.TotalMinted())
}

// ---------------------------------------------------------------------------
// Refund
// ---------------------------------------------------------------------------

func TestRefund(t *testing.T) {
	h := newHarness(t, Params{MaxSupply: 10, AuctionSupply: 6, WalletLimit: 5, InitialReserve: 1})
	h.openAuction(t)

	// Account 1 buys one unit at 1.0 and one at 0.5: spend 1.5.
	acct := account(1)
	require.NoError(t, h.auctionMint(t, acct, 1, unit, h.start))
	at := h.start.Add(25 * time.Minute)
	require.NoError(t, h.auctionMint(t, acct, 1, unit/2, at))

	// Account 2 exhausts the sub-cap at 0.5: settlement is 0.5.
	require.NoError(t, h.auctionMint(t, account(2), 4, 2*unit, at))
	settlement, settled := h.ctrl.SettlementPrice()
	require.True(t, settled)
	require.Equal(t, unit/2, settlement)

	require.NoError(t, h.ctrl.SetPhase(h.adminCall(), PhaseRefund))

	// refund = 1.5 − 0.5 × 2 = 0.5.
	collectedBefore := h.ctrl.Collected()
	require.NoError(t, h.ctrl.Refund(h.call(acct, 0, h.now)))
	assert.Equal(t, unit/2, h.book.ValueBalance(acct))
	assert.Equal(t, collectedBefore-unit/2, h.ctrl.Collected())

	rec, err := h.ctrl.Record(acct)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), rec.AuctionSpend)
	assert.Equal(t, uint32(2), rec.AuctionUnits)

	// A second claim finds nothing.
	err = h.ctrl.Refund(h.call(acct, 0, h.now))
	assert.ErrorIs(t, err, ErrNothingToRefund)
}

func TestRefund_OneShotDiscount(t *testing.T) {
	h := newHarness(t, Params{MaxSupply: 10, AuctionSupply: 6, WalletLimit: 5, InitialReserve: 1})
	h.openAuction(t)

	acct := account(1)
	require.NoError(t, h.auctionMint(t, acct, 1, unit, h.start))
	at := h.start.Add(25 * time.Minute)
	require.NoError(t, h.auctionMint(t, acct, 1, unit/2, at))
	require.NoError(t, h.auctionMint(t, account(2), 4, 2*unit, at))
	settlement, _ := h.ctrl.SettlementPrice()
	require.Equal(t, unit/2, settlement)

	// The one-shot unit was priced outside the auction and leaves the basis.
	require.NoError(t, h.ctrl.SetPhase(h.adminCall(), PhasePublic))
	require.NoError(t, h.ctrl.PublicMint(h.call(acct, settlement, h.now), h.tagSig(t, acct, capability.TagPublic)))

	require.NoError(t, h.ctrl.SetPhase(h.adminCall(), PhaseRefund))

	// refund = 1.5 − 0.5 × (2 − 1) = 1.0.
	require.NoError(t, h.ctrl.Refund(h.call(acct, 0, h.now)))
	assert.Equal(t, unit, h.book.ValueBalance(acct))
}

func TestRefund_Gates(t *testing.T) {
	h := newHarness(t, defaultParams())
	acct := account(1)

	err := h.ctrl.Refund(h.call(acct, 0, h.now))
	assert.ErrorIs(t, err, ErrInvalidPhase)

	require.NoError(t, h.ctrl.SetPhase(h.adminCall(), PhaseRefund))

	// No auction spend recorded.
	err = h.ctrl.Refund(h.call(acct, 0, h.now))
	assert.ErrorIs(t, err, ErrNothingToRefund)
}

func TestRefund_RollbackOnRejectedTransfer(t *testing.T) {
	h := newHarness(t, defaultParams())
	h.openAuction(t)

	acct := account(1)
	require.NoError(t, h.auctionMint(t, acct, 1, unit, h.start))
	require.NoError(t, h.ctrl.SetPhase(h.adminCall(), PhaseRefund))

	h.book.SetRejecting(true)
	err := h.ctrl.Refund(h.call(acct, 0, h.now))
	assert.ErrorIs(t, err, ErrTransferFailed)

	// Spend and collected survive for a retry.
	rec, rerr := h.ctrl.Record(acct)
	require.NoError(t, rerr)
	assert.Equal(t, unit, rec.AuctionSpend)
	assert.Equal(t, unit, h.ctrl.Collected())

	h.book.SetRejecting(false)
	assert.NoError(t, h.ctrl.Refund(h.call(acct, 0, h.now)))
}

// ---------------------------------------------------------------------------
// Administration
// ---------------------------------------------------------------------------

func TestAdminOps_AccessControl(t *testing.T) {
	h := newHarness(t, defaultParams())
	outsider := &ledger.Call{Origin: account(9), Caller: account(9), Time: h.now}

	assert.ErrorIs(t, h.ctrl.SetPhase(outsider, PhaseAuction), ErrAccessDenied)
	assert.ErrorIs(t, h.ctrl.SetAuctionStart(outsider, h.start), ErrAccessDenied)
	assert.ErrorIs(t, h.ctrl.SetSigner(outsider, h.signer.PubKey()), ErrAccessDenied)
	assert.ErrorIs(t, h.ctrl.SetBaseURI(outsider, "x"), ErrAccessDenied)
	assert.ErrorIs(t, h.ctrl.SetContractURI(outsider, "x"), ErrAccessDenied)
	assert.ErrorIs(t, h.ctrl.Withdraw(outsider), ErrAccessDenied)
}

func TestSetPhase(t *testing.T) {
	h := newHarness(t, defaultParams())

	err := h.ctrl.SetPhase(h.adminCall(), Phase(99))
	assert.ErrorIs(t, err, ErrInvalidPhase)

	// Phases carry no enforced ordering.
	for _, p := range []Phase{PhaseRefund, PhaseAuction, PhasePaused, PhasePublic, PhaseWhitelist} {
		require.NoError(t, h.ctrl.SetPhase(h.adminCall(), p))
		assert.Equal(t, p, h.ctrl.Phase())
	}
}

func TestSetSigner_InvalidatesOldCapabilities(t *testing.T) {
	h := newHarness(t, defaultParams())
	h.openAuction(t)
	acct := account(1)
	sig := h.auctionSig(t, acct, 1)

	next, err := ec.NewPrivateKey()
	require.NoError(t, err)
	require.NoError(t, h.ctrl.SetSigner(h.adminCall(), next.PubKey()))

	err = h.ctrl.AuctionMint(h.call(acct, unit, h.start), 1, sig)
	assert.ErrorIs(t, err, capability.ErrSignatureInvalid)
}

func TestWithdraw(t *testing.T) {
	h := newHarness(t, defaultParams())
	h.openAuction(t)
	require.NoError(t, h.auctionMint(t, account(1), 2, 2*unit, h.start))

	err := h.ctrl.Withdraw(h.adminCall())
	require.NoError(t, err)
	assert.Equal(t, 2*unit, h.book.ValueBalance(h.owner))
	assert.Equal(t, uint64(0), h.ctrl.Collected())

	err = h.ctrl.Withdraw(h.adminCall())
	assert.ErrorIs(t, err, ErrNothingCollected)
}

func TestWithdraw_RollbackOnRejectedTransfer(t *testing.T) {
	h := newHarness(t, defaultParams())
	h.openAuction(t)
	require.NoError(t, h.auctionMint(t, account(1), 2, 2*unit, h.start))

	h.book.SetRejecting(true)
	err := h.ctrl.Withdraw(h.adminCall())
	assert.ErrorIs(t, err, ErrTransferFailed)
	assert.Equal(t, 2*unit, h.ctrl.Collected())
}

type fakeSplitter struct {
	released []ledger.Address
}

func (f *fakeSplitter) Release(account ledger.Address) error {
	f.released = append(f.released, account)
	return nil
}

func TestRelease(t *testing.T) {
	h := newHarness(t, defaultParams())
	acct := account(1)

	// No splitter attached.
	err := h.ctrl.Release(h.call(acct, 0, h.now), acct)
	assert.ErrorIs(t, err, ErrBadParams)

	fs := &fakeSplitter{}
	h.ctrl.splitter = fs

	// Only for the caller's own account.
	err = h.ctrl.Release(h.call(acct, 0, h.now), account(2))
	assert.ErrorIs(t, err, ErrAccessDenied)

	require.NoError(t, h.ctrl.Release(h.call(acct, 0, h.now), acct))
	assert.Equal(t, []ledger.Address{acct}, fs.released)
}

// ---------------------------------------------------------------------------
// Queries and persistence
// ---------------------------------------------------------------------------

func TestPrice(t *testing.T) {
	h := newHarness(t, defaultParams())

	// Outside the auction phase the quoted price is the opening price.
	assert.Equal(t, unit, h.ctrl.Price(h.now.Add(time.Hour)))

	h.openAuction(t)
	assert.Equal(t, unit/2, h.ctrl.Price(h.start.Add(25*time.Minute)))
}

func TestEvents(t *testing.T) {
	h := newHarness(t, defaultParams())
	h.openAuction(t)
	require.NoError(t, h.auctionMint(t, account(1), 1, unit, h.start))

	events := h.ctrl.Events()
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, EventMint, last.Type)
	assert.Equal(t, account(1), last.Account)
	assert.Equal(t, uint32(1), last.Quantity)
	assert.Equal(t, unit, last.Amount)
}

func TestSnapshotRestore(t *testing.T) {
	h := newHarness(t, defaultParams())
	h.settleAuction(t)
	require.NoError(t, h.ctrl.SetPhase(h.adminCall(), PhaseWhitelist))

	cp := h.ctrl.Snapshot()

	// A fresh controller over the same store resumes mid-sale.
	h2 := newHarness(t, defaultParams())
	require.NoError(t, h2.ctrl.Restore(cp))

	assert.Equal(t, PhaseWhitelist, h2.ctrl.Phase())
	assert.Equal(t, h.ctrl.TotalMinted(), h2.ctrl.TotalMinted())
	assert.Equal(t, h.ctrl.AuctionMinted(), h2.ctrl.AuctionMinted())
	p1, s1 := h.ctrl.SettlementPrice()
	p2, s2 := h2.ctrl.SettlementPrice()
	assert.Equal(t, p1, p2)
	assert.Equal(t, s1, s2)

	// The restored auction start drives the price schedule.
	assert.Equal(t, h.ctrl.Price(h.start.Add(25*time.Minute)), func() uint64 {
		require.NoError(t, h2.ctrl.SetPhase(h2.adminCall(), PhaseAuction))
		return h2.ctrl.Price(h.start.Add(25 * time.Minute))
	}())

	// Invalid phase byte is rejected.
	cp.Phase = 99
	assert.ErrorIs(t, h2.ctrl.Restore(cp), ErrInvalidPhase)
}

func TestURIs(t *testing.T) {
	h := newHarness(t, defaultParams())
	require.NoError(t, h.ctrl.SetBaseURI(h.adminCall(), "https://meta.example/u/"))
	require.NoError(t, h.ctrl.SetContractURI(h.adminCall(), "https://meta.example/contract"))
	assert.Equal(t, "https://meta.example/u/", h.ctrl.BaseURI())
	assert.Equal(t, "https://meta.example/contract", h.ctrl.ContractURI())
	assert.Equal(t, h.owner, h.ctrl.Owner())
}
