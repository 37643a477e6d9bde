// Package storage persists catalog schemas and table data in an embedded
// key-value store. Keys are "<table>.schema" and "<table>.data"; values are
// the codec-encoded forms of the schema and the full row list.
package storage

import (
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
)

const (
	schemaSuffix = ".schema"
	dataSuffix   = ".data"
)

// SchemaKey returns the store key holding a table's schema.
func SchemaKey(table string) string { return table + schemaSuffix }

// DataKey returns the store key holding a table's row list.
func DataKey(table string) string { return table + dataSuffix }

// SplitKey classifies a store key: the table name and whether the entry is a
// schema or a data record. ok is false for any other key.
func SplitKey(key string) (table string, isSchema bool, ok bool) {
	if n := len(key) - len(schemaSuffix); n > 0 && key[n:] == schemaSuffix {
		return key[:n], true, true
	}
	if n := len(key) - len(dataSuffix); n > 0 && key[n:] == dataSuffix {
		return key[:n], false, true
	}
	return "", false, false
}

// Store is the process-wide handle to the embedded badger database. It is
// opened once at startup and must be closed on every exit path.
type Store struct {
	db *badger.DB
}

// Open opens (creating if necessary) the badger database at dir. Badger's
// own logging is silenced; the REPL owns the terminal.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("storage: open %q: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// Put stores value under key, overwriting any previous entry.
func (s *Store) Put(key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("storage: put %q: %w", key, err)
	}
	return nil
}

// Get returns the value stored under key, or ok=false when absent.
func (s *Store) Get(key string) (value []byte, ok bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		ok = true
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, false, fmt.Errorf("storage: get %q: %w", key, err)
	}
	return value, ok, nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("storage: delete %q: %w", key, err)
	}
	return nil
}

// ForEach calls fn for every key/value pair in key order. A non-nil error
// from fn stops the scan and is returned.
func (s *Store) ForEach(fn func(key string, value []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := fn(string(item.KeyCopy(nil)), value); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
