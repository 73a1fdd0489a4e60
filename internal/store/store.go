package store

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketLocal = []byte("local")
)

// DBFileName is the database file created inside the data directory
const DBFileName = "marquee.db"

// LocalStore implements domain.KeyValueStore using BoltDB.
type LocalStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// Open opens (or creates) the store under dataDir.
// An empty dataDir yields a memory-only store.
func Open(dataDir string) (*LocalStore, error) {
	if dataDir == "" {
		// Memory-only mode (no persistence)
		return &LocalStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketLocal)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &LocalStore{db: db, cache: make(map[string][]byte)}, nil
}

// Close releases the database file lock
func (s *LocalStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Persistent reports whether writes reach disk
func (s *LocalStore) Persistent() bool {
	return s.db != nil
}

// Get returns a copy of the value stored under key
func (s *LocalStore) Get(key string) ([]byte, bool) {
	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return clone(data), true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketLocal)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			// bolt values are only valid inside the transaction
			data = clone(v)
		}
		return nil
	})

	if data == nil {
		return nil, false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	return clone(data), true
}

// Set overwrites the value stored under key
func (s *LocalStore) Set(key string, value []byte) error {
	data := clone(value)

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketLocal)
		return b.Put([]byte(key), data)
	})
}

// Delete removes key from the store
func (s *LocalStore) Delete(key string) error {
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketLocal)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

// Keys lists every stored key in byte order
func (s *LocalStore) Keys() []string {
	if s.db == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		keys := make([]string, 0, len(s.cache))
		for k := range s.cache {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		return keys
	}

	var keys []string
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketLocal)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
