// Package ledger models the external execution substrate the sale and claim
// engines run on: account addresses, the per-call context (originator, direct
// caller, attached value, ledger time), and the narrow collaborator interfaces
// through which units and value leave the engine.
//
// The substrate serializes every state-changing call, so engine code never
// needs locks of its own; a Call is the engine's only window into "now".
package ledger

import (
	"encoding/hex"
	"fmt"
	"time"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
)

// AddressLen is the length of an account address in bytes.
const AddressLen = 20

// Address identifies an account on the ledger: HASH160 of a compressed
// secp256k1 public key.
type Address [AddressLen]byte

// AddressFromPublicKey derives the address for a public key:
// RIPEMD160(SHA256(compressed pubkey)).
func AddressFromPublicKey(pub *ec.PublicKey) Address {
	var addr Address
	copy(addr[:], bsvhash.Hash160(pub.Compressed()))
	return addr
}

// AddressFromHex parses a 40-character hex string into an Address.
func AddressFromHex(s string) (Address, error) {
	var addr Address
	b, err := hex.DecodeString(s)
	if err != nil {
		return addr, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if len(b) != AddressLen {
		return addr, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidAddress, AddressLen, len(b))
	}
	copy(addr[:], b)
	return addr, nil
}

// String returns the hex encoding of the address.
func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// IsZero reports whether the address is the all-zero address.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Call carries the context of a single serialized ledger call.
//
// Origin is the account that initiated the transaction; Caller is the direct
// invoker, which differs from Origin when the call was routed through an
// intermediary. Value is the payment attached to the call and Time is the
// ledger's clock at execution.
type Call struct {
	Origin Address
	Caller Address
	Value  uint64
	Time   time.Time
}

// Direct reports whether the call came straight from the originating account
// rather than through an intermediary.
func (c *Call) Direct() bool {
	return c.Origin == c.Caller
}

// Ownership records the current holder of a token identifier and the ledger
// time at which the holder acquired it.
type Ownership struct {
	Holder     Address
	AcquiredAt time.Time
}

// UnitMinter issues newly created units to an account.
type UnitMinter interface {
	Mint(to Address, quantity uint32) error
}

// UnitTransferor moves already-issued claim units out of a reserve.
type UnitTransferor interface {
	Transfer(to Address, quantity uint32) error
}

// ValueTransferor sends ledger value to an account.
type ValueTransferor interface {
	Send(to Address, amount uint64) error
}

// OwnerRegistry resolves the ownership record of a token identifier.
type OwnerRegistry interface {
	OwnerOf(id uint32) (Ownership, error)
}
