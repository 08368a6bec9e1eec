// Package store provides a BoltDB-backed history of host snapshots.
package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
	bolt "go.etcd.io/bbolt"

	"toolbox/internal/sysinfo"
)

var snapshotsBucket = []byte("snapshots")

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("snapshot not found")

// Record is one stored snapshot.
type Record struct {
	ID       uint64            `msgpack:"id" json:"id"`
	SavedAt  time.Time         `msgpack:"saved_at" json:"saved_at"`
	Snapshot *sysinfo.Snapshot `msgpack:"snapshot" json:"snapshot"`
}

// Store wraps a bbolt database of msgpack-encoded records keyed by sequence.
type Store struct {
	db  *bolt.DB
	mu  sync.RWMutex
	log zerolog.Logger
}

// New opens or creates a BoltDB file at the given path.
func New(path string, log zerolog.Logger) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	// Ensure the snapshots bucket exists
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(snapshotsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating snapshots bucket: %w", err)
	}

	return &Store{db: db, log: log}, nil
}

// Open creates the parent directory of path when needed and opens the store.
func Open(path string, log zerolog.Logger) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
	}
	return New(path, log)
}

// Close closes the underlying BoltDB.
func (s *Store) Close() error {
	return s.db.Close()
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// Save appends snap and returns its ID. IDs increase monotonically.
func (s *Store) Save(snap *sysinfo.Snapshot) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(snapshotsBucket)

		seq, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("allocating id: %w", err)
		}
		id = seq

		data, err := msgpack.Marshal(&Record{ID: id, SavedAt: time.Now(), Snapshot: snap})
		if err != nil {
			return fmt.Errorf("marshaling snapshot: %w", err)
		}
		return b.Put(itob(id), data)
	})
	if err != nil {
		return 0, err
	}

	s.log.Debug().
		Uint64("id", id).
		Str("node", snap.Platform.Node).
		Msg("Snapshot saved")
	return id, nil
}

// Get returns the record with the given ID.
func (s *Store) Get(id uint64) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var record Record
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(snapshotsBucket)
		if b == nil {
			return fmt.Errorf("id %d: %w", id, ErrNotFound)
		}
		v := b.Get(itob(id))
		if v == nil {
			return fmt.Errorf("id %d: %w", id, ErrNotFound)
		}
		if err := msgpack.Unmarshal(v, &record); err != nil {
			return fmt.Errorf("unmarshaling snapshot %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns up to limit records, newest first. A limit <= 0 returns all.
func (s *Store) List(limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []Record
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(snapshotsBucket)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(records) >= limit {
				break
			}
			var record Record
			if err := msgpack.Unmarshal(v, &record); err != nil {
				s.log.Warn().Err(err).Uint64("id", binary.BigEndian.Uint64(k)).Msg("Skipping corrupt record")
				continue
			}
			records = append(records, record)
		}
		return nil
	})
	return records, err
}

// Prune deletes all but the newest keep records and returns how many were removed.
func (s *Store) Prune(keep int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keep < 0 {
		keep = 0
	}

	removed := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(snapshotsBucket)
		c := b.Cursor()

		// Collect first: deleting under a moving cursor skips keys.
		var stale [][]byte
		seen := 0
		for k, _ := c.Last(); k != nil; k, _ = c.Prev() {
			seen++
			if seen > keep {
				stale = append(stale, append([]byte(nil), k...))
			}
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Msg("Database error during prune")
		return 0, err
	}

	if removed > 0 {
		s.log.Info().
			Int("removed", removed).
			Int("kept", keep).
			Msg("Old snapshots pruned")
	}
	return removed, nil
}

// File reads the store at Path, holding the database open only for the
// duration of each call so another process can keep saving to it.
type File struct {
	Path string
	Log  zerolog.Logger
}

func (f File) open() (*Store, error) {
	db, err := bolt.Open(f.Path, 0600, &bolt.Options{ReadOnly: true, Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", f.Path, err)
	}
	return &Store{db: db, log: f.Log}, nil
}

func (f File) exists() bool {
	_, err := os.Stat(f.Path)
	return !errors.Is(err, fs.ErrNotExist)
}

// List behaves like Store.List. A missing file holds no records.
func (f File) List(limit int) ([]Record, error) {
	if !f.exists() {
		return nil, nil
	}
	s, err := f.open()
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.List(limit)
}

// Get behaves like Store.Get.
func (f File) Get(id uint64) (*Record, error) {
	if !f.exists() {
		return nil, fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	s, err := f.open()
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.Get(id)
}
