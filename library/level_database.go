package library

import (
	"bytes"
	"fmt"

	"github.com/df-mc/goleveldb/leveldb"
	"github.com/df-mc/goleveldb/leveldb/util"
)

// levelDatabase wrapper a level database,
// and expose some useful functions.
type levelDatabase struct {
	ldb *leveldb.DB
}

// openLevel open a level database whose at path.
// If not exist, then create a new database.
func openLevel(path string) (*levelDatabase, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("openLevel: %v", err)
	}
	return &levelDatabase{ldb: db}, nil
}

// Has returns true if the DB does contains the given key.
//
// It is safe to modify the contents of the argument after Has returns.
func (db *levelDatabase) Has(key []byte) (has bool, err error) {
	return db.ldb.Has(key, nil)
}

// Get gets the value for the given key.
//
// The returned slice is its own copy, it is safe to modify the contents
// of the returned slice.
// It is safe to modify the contents of the argument after Get returns.
//
// Note that if the key is not exist, then return nil value and nil error.
func (db *levelDatabase) Get(key []byte) (value []byte, err error) {
	value, err = db.ldb.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, nil
	}
	return
}

// Put sets the value for the given key. It overwrites any previous value
// for that key; a DB is not a multi-map.
//
// It is safe to modify the contents of the arguments after Put returns but not
// before.
func (db *levelDatabase) Put(key []byte, value []byte) error {
	return db.ldb.Put(key, value, nil)
}

// Delete deletes the value for the given key. Delete will not returns error if
// key doesn't exist.
//
// It is safe to modify the contents of the arguments after Delete returns but
// not before.
func (db *levelDatabase) Delete(key []byte) error {
	return db.ldb.Delete(key, nil)
}

// Keys returns every key that starts with prefix.
func (db *levelDatabase) Keys(prefix []byte) (keys [][]byte, err error) {
	iter := db.ldb.NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()

	for iter.Next() {
		keys = append(keys, bytes.Clone(iter.Key()))
	}
	return keys, iter.Error()
}

// Close closes the DB. This will also releases any outstanding snapshot,
// abort any in-flight compaction and discard open transaction.
//
// It is valid to call Close multiple times. Other methods should not be
// called after the DB has been closed.
func (db *levelDatabase) Close() error {
	return db.ldb.Close()
}

// OpenTransaction opens an atomic DB transaction. Only one transaction can be
// opened at a time. Subsequent call to Write and OpenTransaction will be blocked
// until in-flight transaction is committed or discarded.
//
// The transaction must be closed once done, either by committing or discarding
// the transaction.
// Closing the DB will discard open transaction.
func (db *levelDatabase) OpenTransaction() (Transaction, error) {
	t, err := db.ldb.OpenTransaction()
	if err != nil {
		return nil, err
	}
	return &levelTransaction{t: t}, nil
}

// levelTransaction wrapper a level transaction,
// and expose some useful functions.
type levelTransaction struct {
	t *leveldb.Transaction
}

func (t *levelTransaction) Has(key []byte) (has bool, err error) {
	return t.t.Has(key, nil)
}

// Get is Get of levelDatabase but inside the transaction.
func (t *levelTransaction) Get(key []byte) (value []byte, err error) {
	value, err = t.t.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, nil
	}
	return
}

func (t *levelTransaction) Put(key []byte, value []byte) error {
	return t.t.Put(key, value, nil)
}

func (t *levelTransaction) Delete(key []byte) error {
	return t.t.Delete(key, nil)
}

// Commit commits the transaction. If error is not nil, then the transaction is
// not committed, it can then either be retried or discarded.
func (t *levelTransaction) Commit() error {
	return t.t.Commit()
}

// Discard discards the transaction.
// This method is noop if transaction is already closed (either committed or
// discarded)
func (t *levelTransaction) Discard() {
	t.t.Discard()
}
