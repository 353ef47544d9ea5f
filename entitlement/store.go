package entitlement

import (
	"sync"

	"github.com/dropforge/dropcore-go/ledger"
)

// Store persists per-account entitlement records. Get returns the zero
// Record for accounts never written, mirroring a ledger mapping default.
type Store interface {
	// Get retrieves the record for an account.
	Get(account ledger.Address) (Record, error)

	// Put stores the record for an account.
	Put(account ledger.Address, rec Record) error

	// ForEach visits every stored record.
	ForEach(fn func(account ledger.Address, rec Record) error) error
}

// MemStore is an in-memory Store for tests and single-process runs.
type MemStore struct {
	mu      sync.RWMutex
	records map[ledger.Address]Record
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{records: make(map[ledger.Address]Record)}
}

// Get retrieves the record for an account.
func (s *MemStore) Get(account ledger.Address) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[account], nil
}

// Put stores the record for an account.
func (s *MemStore) Put(account ledger.Address, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[account] = rec
	return nil
}

// ForEach visits every stored record.
func (s *MemStore) ForEach(fn func(account ledger.Address, rec Record) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for addr, rec := range s.records {
		if err := fn(addr, rec); err != nil {
			return err
		}
	}
	return nil
}
