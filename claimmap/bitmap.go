// Package claimmap enforces a global one-time-claim guarantee over a dense
// identifier space: one bit per token identifier, all initialized to
// available, cleared exactly once on claim and never reset.
package claimmap

import (
	"fmt"
	"math/bits"
)

const wordBits = 64

// Bitmap is a fixed-size availability vector. A set bit means the identifier
// is still claimable; clearing is monotone.
type Bitmap struct {
	size  uint32
	words []uint64
}

// NewBitmap creates a bitmap of size identifiers, all available. Paying the
// full initialization cost up front keeps each later claim to a single word
// write.
func NewBitmap(size uint32) (*Bitmap, error) {
	if size == 0 {
		return nil, ErrEmptyBitmap
	}
	words := make([]uint64, (int(size)+wordBits-1)/wordBits)
	for i := range words {
		words[i] = ^uint64(0)
	}
	// Clear the padding bits past size in the last word.
	if rem := size % wordBits; rem != 0 {
		words[len(words)-1] = (uint64(1) << rem) - 1
	}
	return &Bitmap{size: size, words: words}, nil
}

// Size returns the number of addressable identifiers.
func (b *Bitmap) Size() uint32 {
	return b.size
}

// Available reports whether id is still claimable.
func (b *Bitmap) Available(id uint32) (bool, error) {
	if id >= b.size {
		return false, fmt.Errorf("%w: id %d, size %d", ErrIdentifierRange, id, b.size)
	}
	return b.words[id/wordBits]&(uint64(1)<<(id%wordBits)) != 0, nil
}

// Claim clears the bit for id. Returns ErrAlreadyClaimed if it was already
// cleared.
func (b *Bitmap) Claim(id uint32) error {
	avail, err := b.Available(id)
	if err != nil {
		return err
	}
	if !avail {
		return fmt.Errorf("%w: id %d", ErrAlreadyClaimed, id)
	}
	b.words[id/wordBits] &^= uint64(1) << (id % wordBits)
	return nil
}

// restore re-sets the bit for id. Only used to unwind a batch whose outbound
// transfer was rejected; committed claims are never restored.
func (b *Bitmap) restore(id uint32) {
	b.words[id/wordBits] |= uint64(1) << (id % wordBits)
}

// AvailableCount returns the number of identifiers still claimable.
func (b *Bitmap) AvailableCount() uint32 {
	var n uint32
	for _, w := range b.words {
		n += uint32(bits.OnesCount64(w))
	}
	return n
}
