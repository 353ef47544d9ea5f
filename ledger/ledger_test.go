package ledger

import (
	"testing"
	"time"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addr(seed byte) Address {
	var a Address
	for i := range a {
		a[i] = seed
	}
	return a
}

func TestAddressFromPublicKey(t *testing.T) {
	priv, err := ec.NewPrivateKey()
	require.NoError(t, err)

	a := AddressFromPublicKey(priv.PubKey())
	assert.False(t, a.IsZero())
	assert.Len(t, a.String(), 2*AddressLen)

	// Deterministic for the same key.
	assert.Equal(t, a, AddressFromPublicKey(priv.PubKey()))
}

func TestAddressFromHex(t *testing.T) {
	a := addr(0xAB)
	parsed, err := AddressFromHex(a.String())
	require.NoError(t, err)
	assert.Equal(t, a, parsed)

	_, err = AddressFromHex("zz")
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = AddressFromHex("abcd")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestCallDirect(t *testing.T) {
	direct := Call{Origin: addr(0x01), Caller: addr(0x01)}
	assert.True(t, direct.Direct())

	relayed := Call{Origin: addr(0x01), Caller: addr(0x02)}
	assert.False(t, relayed.Direct())
}

func TestBook_MintAndSend(t *testing.T) {
	b := NewBook(0)
	a := addr(0x01)

	require.NoError(t, b.Mint(a, 3))
	require.NoError(t, b.Mint(a, 2))
	assert.Equal(t, uint32(5), b.UnitBalance(a))

	require.NoError(t, b.Send(a, 700))
	assert.Equal(t, uint64(700), b.ValueBalance(a))
}

func TestBook_Reserve(t *testing.T) {
	b := NewBook(10)
	a := addr(0x01)

	require.NoError(t, b.Transfer(a, 4))
	assert.Equal(t, uint32(6), b.Reserve())
	assert.Equal(t, uint32(4), b.UnitBalance(a))

	assert.ErrorIs(t, b.Transfer(a, 7), ErrInsufficientReserve)
	assert.Equal(t, uint32(6), b.Reserve())
}

func TestBook_Ownership(t *testing.T) {
	b := NewBook(0)
	holder := addr(0x01)
	acquired := time.Unix(1_700_000_000, 0)

	_, err := b.OwnerOf(7)
	assert.ErrorIs(t, err, ErrUnknownIdentifier)

	b.SetOwner(7, holder, acquired)
	own, err := b.OwnerOf(7)
	require.NoError(t, err)
	assert.Equal(t, holder, own.Holder)
	assert.Equal(t, acquired, own.AcquiredAt)
}

func TestBook_Rejecting(t *testing.T) {
	b := NewBook(5)
	a := addr(0x01)

	b.SetRejecting(true)
	assert.ErrorIs(t, b.Mint(a, 1), ErrTransferRejected)
	assert.ErrorIs(t, b.Transfer(a, 1), ErrTransferRejected)
	assert.ErrorIs(t, b.Send(a, 1), ErrTransferRejected)

	b.SetRejecting(false)
	assert.NoError(t, b.Mint(a, 1))
}
