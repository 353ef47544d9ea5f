package ledger

import (
	"sync"
	"time"
)

// Book is an in-memory substrate: unit balances, value balances, a claim-unit
// reserve, and ownership records with acquisition times. It implements every
// collaborator interface the engines consume, for tests and local runs.
type Book struct {
	mu       sync.Mutex
	units    map[Address]uint32
	value    map[Address]uint64
	reserve  uint32
	owners   map[uint32]Ownership
	rejected bool
}

// Compile-time interface checks.
var (
	_ UnitMinter      = (*Book)(nil)
	_ UnitTransferor  = (*Book)(nil)
	_ ValueTransferor = (*Book)(nil)
	_ OwnerRegistry   = (*Book)(nil)
)

// NewBook creates an empty book with the given claim-unit reserve.
func NewBook(reserve uint32) *Book {
	return &Book{
		units:   make(map[Address]uint32),
		value:   make(map[Address]uint64),
		reserve: reserve,
		owners:  make(map[uint32]Ownership),
	}
}

// Mint credits newly issued units to an account.
func (b *Book) Mint(to Address, quantity uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.rejected {
		return ErrTransferRejected
	}
	b.units[to] += quantity
	return nil
}

// Transfer moves claim units out of the reserve to an account.
func (b *Book) Transfer(to Address, quantity uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.rejected {
		return ErrTransferRejected
	}
	if quantity > b.reserve {
		return ErrInsufficientReserve
	}
	b.reserve -= quantity
	b.units[to] += quantity
	return nil
}

// Send credits ledger value to an account.
func (b *Book) Send(to Address, amount uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.rejected {
		return ErrTransferRejected
	}
	b.value[to] += amount
	return nil
}

// OwnerOf returns the ownership record for a token identifier.
func (b *Book) OwnerOf(id uint32) (Ownership, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	own, ok := b.owners[id]
	if !ok {
		return Ownership{}, ErrUnknownIdentifier
	}
	return own, nil
}

// SetOwner records holder and acquisition time for a token identifier.
func (b *Book) SetOwner(id uint32, holder Address, acquiredAt time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.owners[id] = Ownership{Holder: holder, AcquiredAt: acquiredAt}
}

// UnitBalance returns the unit balance of an account.
func (b *Book) UnitBalance(a Address) uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.units[a]
}

// ValueBalance returns the value balance of an account.
func (b *Book) ValueBalance(a Address) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value[a]
}

// Reserve returns the remaining claim-unit reserve.
func (b *Book) Reserve() uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reserve
}

// SetRejecting makes every subsequent outbound transfer fail, simulating a
// substrate that refuses payment or unit delivery.
func (b *Book) SetRejecting(reject bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rejected = reject
}
