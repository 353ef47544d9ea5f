// Package capability implements off-chain-issued authorization tokens: a
// SHA-256 digest binding an account to a phase tag (and optionally a
// quantity), signed by one administrator-controlled secp256k1 key.
//
// Capabilities carry no nonce and no expiry. Replay protection for one-shot
// phases comes from the consuming flag in the entitlement ledger, not from the
// signature itself.
package capability

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"

	"github.com/dropforge/dropcore-go/ledger"
)

// Tag identifies the restricted action a capability authorizes.
type Tag string

// Phase tags covered by capability signatures.
const (
	TagAuction   Tag = "AUCTION"
	TagWhitelist Tag = "WHITELIST"
	TagPublic    Tag = "PUBLIC"
	TagFraction  Tag = "FRACTION"
)

// Digest computes the signing digest for (account, tag):
// SHA256(address || tag bytes).
func Digest(account ledger.Address, tag Tag) []byte {
	h := sha256.New()
	h.Write(account[:])
	h.Write([]byte(tag))
	return h.Sum(nil)
}

// QuantityDigest computes the signing digest for (account, tag, quantity):
// SHA256(address || tag bytes || quantity as 4-byte big-endian).
func QuantityDigest(account ledger.Address, tag Tag, quantity uint32) []byte {
	var q [4]byte
	binary.BigEndian.PutUint32(q[:], quantity)
	h := sha256.New()
	h.Write(account[:])
	h.Write([]byte(tag))
	h.Write(q[:])
	return h.Sum(nil)
}

// Sign produces a DER-encoded signature over digest with the issuer key.
func Sign(priv *ec.PrivateKey, digest []byte) ([]byte, error) {
	if priv == nil {
		return nil, fmt.Errorf("%w: private key", ErrNilKey)
	}
	sig, err := priv.Sign(digest)
	if err != nil {
		return nil, fmt.Errorf("capability: sign digest: %w", err)
	}
	return sig.Serialize(), nil
}

// Verifier checks capability signatures against the configured signer key.
type Verifier struct {
	signer *ec.PublicKey
}

// NewVerifier creates a verifier bound to the administrator signing key.
func NewVerifier(signer *ec.PublicKey) (*Verifier, error) {
	if signer == nil {
		return nil, fmt.Errorf("%w: signer", ErrNilKey)
	}
	return &Verifier{signer: signer}, nil
}

// SetSigner replaces the signing key. Previously issued capabilities become
// invalid the moment the key rotates.
func (v *Verifier) SetSigner(signer *ec.PublicKey) error {
	if signer == nil {
		return fmt.Errorf("%w: signer", ErrNilKey)
	}
	v.signer = signer
	return nil
}

// Signer returns the currently configured signing key.
func (v *Verifier) Signer() *ec.PublicKey {
	return v.signer
}

// Verify checks that sigDER is a valid signature over digest by the
// configured signer key.
func (v *Verifier) Verify(digest, sigDER []byte) error {
	if v.signer == nil {
		return ErrNoSigner
	}
	if len(sigDER) == 0 {
		return fmt.Errorf("%w: empty signature", ErrMalformedSignature)
	}
	sig, err := ec.ParseDERSignature(sigDER)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedSignature, err)
	}
	if !sig.Verify(digest, v.signer) {
		return ErrSignatureInvalid
	}
	return nil
}
