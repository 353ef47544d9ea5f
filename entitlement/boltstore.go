package entitlement

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/dropforge/dropcore-go/ledger"
)

var (
	bucketRecords    = []byte("entitlements")
	bucketCheckpoint = []byte("sale_checkpoint")

	checkpointKey = []byte("current")
)

// Checkpoint is a persisted snapshot of the sale controller's scalar state,
// saved alongside the entitlement records so a restarted process resumes
// with identical counters.
type Checkpoint struct {
	Phase           uint8
	TotalMinted     uint32
	AuctionMinted   uint32
	SettlementPrice uint64
	Settled         bool
	AuctionStart    int64 // Unix seconds; meaningful only when StartSet
	StartSet        bool
}

// BoltStore is a bbolt-backed Store.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("entitlement: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("entitlement: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketRecords, bucketCheckpoint} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("boltstore: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("entitlement: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// encodeGob serializes a value using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

// Get retrieves the record for an account. Accounts never written return
// the zero Record.
func (s *BoltStore) Get(account ledger.Address) (Record, error) {
	var rec Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketRecords).Get(account[:])
		if data == nil {
			return nil
		}
		if err := decodeGob(data, &rec); err != nil {
			return fmt.Errorf("boltstore: decode record: %w", err)
		}
		return nil
	})
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Put stores the record for an account.
func (s *BoltStore) Put(account ledger.Address, rec Record) error {
	data, err := encodeGob(rec)
	if err != nil {
		return fmt.Errorf("boltstore: encode record: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketRecords).Put(account[:], data); err != nil {
			return fmt.Errorf("boltstore: put record: %w", err)
		}
		return nil
	})
}

// ForEach visits every stored record.
func (s *BoltStore) ForEach(fn func(account ledger.Address, rec Record) error) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRecords).ForEach(func(k, v []byte) error {
			if len(k) != ledger.AddressLen {
				return fmt.Errorf("%w: key length %d", ErrCorruptRecord, len(k))
			}
			var addr ledger.Address
			copy(addr[:], k)
			var rec Record
			if err := decodeGob(v, &rec); err != nil {
				return fmt.Errorf("%w: %w", ErrCorruptRecord, err)
			}
			return fn(addr, rec)
		})
	})
}

// PutCheckpoint stores the sale controller snapshot.
func (s *BoltStore) PutCheckpoint(cp Checkpoint) error {
	data, err := encodeGob(cp)
	if err != nil {
		return fmt.Errorf("boltstore: encode checkpoint: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketCheckpoint).Put(checkpointKey, data); err != nil {
			return fmt.Errorf("boltstore: put checkpoint: %w", err)
		}
		return nil
	})
}

// GetCheckpoint retrieves the sale controller snapshot.
func (s *BoltStore) GetCheckpoint() (Checkpoint, error) {
	var cp Checkpoint
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketCheckpoint).Get(checkpointKey)
		if data == nil {
			return ErrNoCheckpoint
		}
		if err := decodeGob(data, &cp); err != nil {
			return fmt.Errorf("boltstore: decode checkpoint: %w", err)
		}
		return nil
	})
	if err != nil {
		return Checkpoint{}, err
	}
	return cp, nil
}
