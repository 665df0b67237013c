package library

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
)

// badgerDatabase wrapper a badger database.
type badgerDatabase struct {
	db *badger.DB
}

// openBadger open a badger database in the directory path.
// If not exist, then create a new database.
func openBadger(path string, noSync bool) (*badgerDatabase, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	opts.SyncWrites = !noSync

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("openBadger: %v", err)
	}
	return &badgerDatabase{db: db}, nil
}

func (db *badgerDatabase) Has(key []byte) (has bool, err error) {
	err = db.db.View(func(txn *badger.Txn) error {
		has, err = badgerHas(txn, key)
		return err
	})
	return
}

// Get gets the value for the given key.
// Note that if the key is not exist, then return nil value and nil error.
func (db *badgerDatabase) Get(key []byte) (value []byte, err error) {
	err = db.db.View(func(txn *badger.Txn) error {
		value, err = badgerGet(txn, key)
		return err
	})
	return
}

func (db *badgerDatabase) Put(key []byte, value []byte) error {
	return db.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// Delete deletes the value for the given key.
// Delete will not returns error if key doesn't exist.
func (db *badgerDatabase) Delete(key []byte) error {
	return db.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// Keys returns every key that starts with prefix.
func (db *badgerDatabase) Keys(prefix []byte) (keys [][]byte, err error) {
	err = db.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix

		iter := txn.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		return nil
	})
	return
}

func (db *badgerDatabase) Close() error {
	return db.db.Close()
}

// OpenTransaction opens a read-write badger transaction.
// Conflicting transactions fail on Commit with badger.ErrConflict.
func (db *badgerDatabase) OpenTransaction() (Transaction, error) {
	return &badgerTransaction{txn: db.db.NewTransaction(true)}, nil
}

// badgerTransaction wrapper a badger read-write transaction.
type badgerTransaction struct {
	txn *badger.Txn
}

func (t *badgerTransaction) Has(key []byte) (has bool, err error) {
	return badgerHas(t.txn, key)
}

func (t *badgerTransaction) Get(key []byte) (value []byte, err error) {
	return badgerGet(t.txn, key)
}

func (t *badgerTransaction) Put(key []byte, value []byte) error {
	// badger keeps the slices until commit.
	return t.txn.Set(bytes.Clone(key), bytes.Clone(value))
}

func (t *badgerTransaction) Delete(key []byte) error {
	return t.txn.Delete(bytes.Clone(key))
}

func (t *badgerTransaction) Commit() error {
	return t.txn.Commit()
}

// Discard discards the transaction.
// It is noop after Commit.
func (t *badgerTransaction) Discard() {
	t.txn.Discard()
}

func badgerHas(txn *badger.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}

func badgerGet(txn *badger.Txn, key []byte) ([]byte, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}
