// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// ErrMiss is returned by DiskStore.Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// DiskStore persists JSON values in BadgerDB with a per-key TTL, so cached
// catalog lookups survive restarts.
type DiskStore struct {
	db       *badger.DB
	prefix   string
	inMemory bool
}

// OpenDiskStore opens (or creates) a badger database at path. An empty path
// opens an in-memory database, which tests use.
func OpenDiskStore(path, prefix string) (*DiskStore, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}
	return &DiskStore{db: db, prefix: prefix, inMemory: path == ""}, nil
}

// Get decodes the value stored under key into out.
func (s *DiskStore) Get(key string, out any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(s.prefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrMiss
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
}

// Set stores value under key for ttl.
func (s *DiskStore) Set(key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(s.prefix+key), data).WithTTL(ttl)
		return txn.SetEntry(e)
	})
}

// Delete removes key. Missing keys are not an error.
func (s *DiskStore) Delete(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(s.prefix + key))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete %s: %w", key, err)
		}
		return nil
	})
}

// Count returns the number of live keys under the store prefix.
func (s *DiskStore) Count() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(s.prefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// RunGC reclaims value log space until badger reports nothing to rewrite.
// In-memory stores have no value log and return nil.
func (s *DiskStore) RunGC(discardRatio float64) error {
	if s.inMemory {
		return nil
	}
	for {
		err := s.db.RunValueLogGC(discardRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

// Close closes the underlying database.
func (s *DiskStore) Close() error {
	return s.db.Close()
}
