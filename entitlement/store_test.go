package entitlement

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropforge/dropcore-go/ledger"
)

func addr(seed byte) ledger.Address {
	var a ledger.Address
	for i := range a {
		a[i] = seed
	}
	return a
}

func openTestBoltStore(t *testing.T) *BoltStore {
	t.Helper()
	s, err := OpenBoltStore(filepath.Join(t.TempDir(), "entitlements.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// runStoreTests exercises the Store contract against any implementation.
func runStoreTests(t *testing.T, s Store) {
	a, b := addr(0x01), addr(0x02)

	// Unwritten accounts read as the zero record.
	rec, err := s.Get(a)
	require.NoError(t, err)
	assert.True(t, rec.Zero())

	want := Record{AuctionUnits: 3, AuctionSpend: 2_500_000_000, OneShotUsed: true}
	require.NoError(t, s.Put(a, want))

	got, err := s.Get(a)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Overwrite.
	want.AuctionSpend = 0
	require.NoError(t, s.Put(a, want))
	got, err = s.Get(a)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Other accounts are untouched.
	rec, err = s.Get(b)
	require.NoError(t, err)
	assert.True(t, rec.Zero())

	require.NoError(t, s.Put(b, Record{FractionUnits: 2}))
	seen := map[ledger.Address]Record{}
	require.NoError(t, s.ForEach(func(account ledger.Address, rec Record) error {
		seen[account] = rec
		return nil
	}))
	assert.Len(t, seen, 2)
	assert.Equal(t, want, seen[a])
	assert.Equal(t, Record{FractionUnits: 2}, seen[b])
}

func TestMemStore(t *testing.T) {
	runStoreTests(t, NewMemStore())
}

func TestBoltStore(t *testing.T) {
	runStoreTests(t, openTestBoltStore(t))
}

func TestBoltStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entitlements.db")
	a := addr(0x01)
	want := Record{AuctionUnits: 20, AuctionSpend: 9_999}

	s, err := OpenBoltStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(a, want))
	require.NoError(t, s.Close())

	s, err = OpenBoltStore(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(a)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCheckpoint_RoundTrip(t *testing.T) {
	s := openTestBoltStore(t)

	_, err := s.GetCheckpoint()
	assert.ErrorIs(t, err, ErrNoCheckpoint)

	want := Checkpoint{
		Phase:           3,
		TotalMinted:     3600,
		AuctionMinted:   3555,
		SettlementPrice: 400_000_000,
		Settled:         true,
		AuctionStart:    1_700_000_000,
		StartSet:        true,
	}
	require.NoError(t, s.PutCheckpoint(want))

	got, err := s.GetCheckpoint()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
