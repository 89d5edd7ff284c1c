package assets

import (
	"errors"
	"fmt"
	"os"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	AnimationsBucket = "animations"
	SheetsBucket     = "sheets"
)

// BoltSource reads animation and sheet records from a packed resource file.
type BoltSource struct {
	db *bolt.DB
}

// OpenBolt opens an existing resource file read-only.
func OpenBolt(path string) (*BoltSource, error) {
	// bbolt creates missing files even when opening read-only.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", path, err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", path, err)
	}
	return &BoltSource{db: db}, nil
}

func (s *BoltSource) Close() error {
	return s.db.Close()
}

// Records returns every animation in key order.
func (s *BoltSource) Records() ([]Record, error) {
	return s.bucket(AnimationsBucket)
}

// Sheets returns every packed sheet image in key order.
func (s *BoltSource) Sheets() ([]Record, error) {
	return s.bucket(SheetsBucket)
}

func (s *BoltSource) bucket(name string) ([]Record, error) {
	var out []Record
	err := s.db.View(func(tx *bolt.Tx) error {
		buck := tx.Bucket([]byte(name))
		if buck == nil {
			return fmt.Errorf("the %s bucket not found", name)
		}
		return buck.ForEach(func(k, v []byte) error {
			// k and v are only valid for the life of the transaction.
			out = append(out, Record{Name: string(k), Contents: append([]byte(nil), v...)})
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", name, err)
	}
	return out, nil
}

// Pack writes animations and sheets into the resource file at path, replacing
// whatever those buckets held before.
func Pack(path string, animations, sheets []Record) error {
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return fmt.Errorf("assets: open %s: %w", path, err)
	}
	defer db.Close()

	return db.Update(func(tx *bolt.Tx) error {
		if err := putAll(tx, AnimationsBucket, animations); err != nil {
			return err
		}
		return putAll(tx, SheetsBucket, sheets)
	})
}

func putAll(tx *bolt.Tx, name string, records []Record) error {
	if err := tx.DeleteBucket([]byte(name)); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
		return fmt.Errorf("assets: clear %s: %w", name, err)
	}
	buck, err := tx.CreateBucket([]byte(name))
	if err != nil {
		return fmt.Errorf("assets: create %s: %w", name, err)
	}
	for _, r := range records {
		if r.Name == "" {
			return fmt.Errorf("assets: %s record with empty name", name)
		}
		if err := buck.Put([]byte(r.Name), r.Contents); err != nil {
			return fmt.Errorf("assets: put %s/%s: %w", name, r.Name, err)
		}
	}
	return nil
}
