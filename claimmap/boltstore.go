package claimmap

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

var (
	bucketClaims = []byte("claim_words")

	keySize  = []byte("size")
	keyWords = []byte("words")
)

// BoltSnapshot persists bitmap state in bbolt so a restarted process resumes
// with the same availability vector.
type BoltSnapshot struct {
	db *bbolt.DB
}

// OpenBoltSnapshot opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltSnapshot(dbPath string) (*BoltSnapshot, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("claimmap: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("claimmap: open bolt db: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketClaims)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("claimmap: create bucket: %w", err)
	}
	return &BoltSnapshot{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltSnapshot) Close() error { return s.db.Close() }

// Save persists the bitmap's size and words.
func (s *BoltSnapshot) Save(bm *Bitmap) error {
	sizeBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(sizeBuf, bm.size)

	wordBuf := make([]byte, 8*len(bm.words))
	for i, w := range bm.words {
		binary.BigEndian.PutUint64(wordBuf[8*i:], w)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketClaims)
		if err := b.Put(keySize, sizeBuf); err != nil {
			return fmt.Errorf("claimmap: put size: %w", err)
		}
		if err := b.Put(keyWords, wordBuf); err != nil {
			return fmt.Errorf("claimmap: put words: %w", err)
		}
		return nil
	})
}

// Load reconstructs a persisted bitmap. Returns ErrNoSnapshot if nothing has
// been saved yet.
func (s *BoltSnapshot) Load() (*Bitmap, error) {
	var bm *Bitmap
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketClaims)
		sizeBuf := b.Get(keySize)
		wordBuf := b.Get(keyWords)
		if sizeBuf == nil || wordBuf == nil {
			return ErrNoSnapshot
		}
		if len(sizeBuf) != 4 {
			return fmt.Errorf("%w: size field %d bytes", ErrCorruptSnapshot, len(sizeBuf))
		}
		size := binary.BigEndian.Uint32(sizeBuf)
		wantWords := (int(size) + wordBits - 1) / wordBits
		if len(wordBuf) != 8*wantWords {
			return fmt.Errorf("%w: %d word bytes for size %d", ErrCorruptSnapshot, len(wordBuf), size)
		}
		words := make([]uint64, wantWords)
		for i := range words {
			words[i] = binary.BigEndian.Uint64(wordBuf[8*i:])
		}
		bm = &Bitmap{size: size, words: words}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bm, nil
}
