// Package revshare implements the proportional revenue splitter: sale
// proceeds accrue against a fixed shareholder table and each payee pulls
// their own accumulated entitlement through a narrow Release call.
package revshare

import (
	"fmt"
	"sync"

	"github.com/dropforge/dropcore-go/ledger"
)

// Payee is one shareholder in the split.
type Payee struct {
	Account ledger.Address
	Shares  uint64
}

// Distribution is one payee's cut of a payment.
type Distribution struct {
	Account ledger.Address
	Amount  uint64
}

// Splitter divides received revenue across a payee table fixed at
// construction. Payouts are pull-based: entitlement accrues as revenue is
// received and Release sends the not-yet-released portion.
type Splitter struct {
	mu          sync.Mutex
	payees      []Payee
	totalShares uint64
	received    uint64
	released    map[ledger.Address]uint64
	bank        ledger.ValueTransferor
}

// NewSplitter creates a splitter over the given payee table.
func NewSplitter(payees []Payee, bank ledger.ValueTransferor) (*Splitter, error) {
	if len(payees) == 0 {
		return nil, ErrNoPayees
	}
	seen := make(map[ledger.Address]bool, len(payees))
	var total uint64
	for _, p := range payees {
		if p.Shares == 0 {
			return nil, fmt.Errorf("%w: payee %s", ErrZeroShares, p.Account)
		}
		if seen[p.Account] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePayee, p.Account)
		}
		seen[p.Account] = true
		total += p.Shares
	}
	table := make([]Payee, len(payees))
	copy(table, payees)
	return &Splitter{
		payees:      table,
		totalShares: total,
		released:    make(map[ledger.Address]uint64),
		bank:        bank,
	}, nil
}

// Receive accrues revenue against the payee table.
func (s *Splitter) Receive(amount uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.received += amount
}

// shares returns the share count for account, or 0 if not a payee.
func (s *Splitter) shares(account ledger.Address) uint64 {
	for _, p := range s.payees {
		if p.Account == account {
			return p.Shares
		}
	}
	return 0
}

// Pending returns the amount account could release right now.
func (s *Splitter) Pending(account ledger.Address) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingLocked(account)
}

func (s *Splitter) pendingLocked(account ledger.Address) (uint64, error) {
	sh := s.shares(account)
	if sh == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNotPayee, account)
	}
	entitled := s.received * sh / s.totalShares
	return entitled - s.released[account], nil
}

// Release sends account's pending entitlement. The released total is
// advanced before the outbound send and rolled back if the send is rejected.
func (s *Splitter) Release(account ledger.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, err := s.pendingLocked(account)
	if err != nil {
		return err
	}
	if pending == 0 {
		return ErrNothingDue
	}

	s.released[account] += pending
	if err := s.bank.Send(account, pending); err != nil {
		s.released[account] -= pending
		return fmt.Errorf("%w: %w", ErrPayoutFailed, err)
	}
	return nil
}

// Breakdown computes each payee's cut of amount. The last payee absorbs the
// integer-division remainder so the cuts always sum to amount.
func (s *Splitter) Breakdown(amount uint64) []Distribution {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Distribution, len(s.payees))
	var assigned uint64
	for i, p := range s.payees {
		out[i].Account = p.Account
		if i == len(s.payees)-1 {
			out[i].Amount = amount - assigned
		} else {
			cut := amount * p.Shares / s.totalShares
			out[i].Amount = cut
			assigned += cut
		}
	}
	return out
}

// Received returns the total revenue accrued so far.
func (s *Splitter) Received() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.received
}

// Released returns the total already paid out to account.
func (s *Splitter) Released(account ledger.Address) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.released[account]
}
