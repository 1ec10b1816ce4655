// Package bbolt implements the ports.CheckCache interface using bbolt
// (embedded B+ tree). One bucket holds per-file check entries keyed by
// project-relative path. Writes are transactional, so a crash mid-write
// cannot corrupt previously committed entries.
package bbolt

import (
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/rlox-lang/rlox/internal/ports"
)

var bucketChecks = []byte("checks")

// Store implements ports.CheckCache backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load retrieves the entry for a file path.
// Returns nil, nil if the path has never been checked.
func (s *Store) Load(path string) (*ports.CheckEntry, error) {
	var data []byte

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketChecks)
		if b == nil {
			return nil
		}
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		if v := b.Get([]byte(path)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if data == nil {
		return nil, nil
	}

	entry, err := decodeEntry(data)
	if err != nil {
		return nil, fmt.Errorf("entry %q: %w", path, err)
	}
	return entry, nil
}

// Save stores the entry for a file path, replacing any previous entry.
func (s *Store) Save(path string, entry *ports.CheckEntry) error {
	if entry == nil {
		return fmt.Errorf("nil entry")
	}

	data := encodeEntry(entry)
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketChecks)
		if err != nil {
			return err
		}
		return b.Put([]byte(path), data)
	})
}

// Delete removes the entry for a file path.
// Idempotent: deleting a nonexistent path is not an error.
func (s *Store) Delete(path string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketChecks)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(path))
	})
}

// Wipe removes every entry.
// Idempotent: wiping an empty store is not an error.
func (s *Store) Wipe() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		err := tx.DeleteBucket(bucketChecks)
		if errors.Is(err, bolt.ErrBucketNotFound) {
			return nil
		}
		return err
	})
}
