package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/nhle/studytrack/internal/model"
)

const boltBucket = "studytrack"

// BoltStore implements the Store interface on a bbolt key-value file.
type BoltStore struct {
	db     *bolt.DB
	bucket []byte
}

var _ Store = (*BoltStore)(nil)

// NewBoltStore opens (or creates) the bbolt file at path and ensures the
// snapshot bucket exists.
func NewBoltStore(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt db: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &BoltStore{db: db, bucket: []byte(boltBucket)}, nil
}

// Close closes the bolt file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Load reads the snapshot entries from the bucket.
func (s *BoltStore) Load(ctx context.Context) (*model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries := make(map[string][]byte)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).ForEach(func(k, v []byte) error {
			// Values are only valid inside the transaction.
			entries[string(k)] = append([]byte(nil), v...)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("reading bucket: %w", err)
	}
	return decodeSnapshot(entries)
}

// Save writes all entries in one bolt transaction.
func (s *BoltStore) Save(ctx context.Context, snap model.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entries, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		for key, value := range entries {
			if value == nil {
				if err := b.Delete([]byte(key)); err != nil {
					return fmt.Errorf("deleting entry %s: %w", key, err)
				}
				continue
			}
			if err := b.Put([]byte(key), value); err != nil {
				return fmt.Errorf("writing entry %s: %w", key, err)
			}
		}
		return nil
	})
}
