// Package storage implements the durable key-value store behind the cache and the queue.
package storage

import (
	"errors"
	"os"

	"github.com/dgraph-io/badger/v4"
	"go.trai.ch/cellar/internal/core/domain"
	"go.trai.ch/zerr"
)

// Badger implements ports.Storage on an embedded badger database.
type Badger struct {
	db *badger.DB
}

// NewBadger opens (or creates) a badger database at path.
// When inMemory is set the path is ignored and nothing touches disk.
func NewBadger(path string, inMemory bool) (*Badger, error) {
	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, domain.DirPerm); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrStorageOpenFailed.Error()), "path", path)
		}
		opts = badger.DefaultOptions(path).WithSyncWrites(true)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStorageOpenFailed.Error()), "path", path)
	}
	return &Badger{db: db}, nil
}

// Get returns the value stored under key, or nil, nil when absent.
func (b *Badger) Get(key string) ([]byte, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStorageFailure.Error()), "key", key)
	}
	return value, nil
}

// Set stores value under key.
func (b *Badger) Set(key string, value []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStorageFailure.Error()), "key", key)
	}
	return nil
}

// Remove deletes key.
func (b *Badger) Remove(key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStorageFailure.Error()), "key", key)
	}
	return nil
}

// Keys lists the keys starting with prefix.
func (b *Badger) Keys(prefix string) ([]string, error) {
	var keys []string
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStorageFailure.Error()), "prefix", prefix)
	}
	return keys, nil
}

// Close flushes and closes the database.
func (b *Badger) Close() error {
	if err := b.db.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrStorageCloseFailed.Error())
	}
	return nil
}
