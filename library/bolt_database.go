package library

import (
	"bytes"
	"fmt"

	"go.etcd.io/bbolt"
)

// boltDatabase wrapper a bbolt database, and keep
// all the keys in one bucket.
type boltDatabase struct {
	bdb *bbolt.DB
}

// openBolt open a bbolt database whose at path.
// If not exist, then create a new database.
//
// When noGrowSync is true, skips the truncate call when growing the database.
// Setting this to true is only safe on non-ext3/ext4 systems.
// Skipping truncation avoids preallocation of hard drive space and
// bypasses a truncate() and fsync() syscall on remapping.
//   - See also: https://github.com/boltdb/bolt/issues/284
//
// Setting the NoSync flag will cause the database to skip fsync()
// calls after each commit. This can be useful when bulk loading data
// into a database and you can restart the bulk load in the event of
// a system failure or database corruption. Do not set this flag for
// normal use.
func openBolt(path string, noGrowSync bool, noSync bool) (*boltDatabase, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{
		FreelistType: bbolt.FreelistMapType,
		NoGrowSync:   noGrowSync,
		NoSync:       noSync,
	})
	if err != nil {
		return nil, fmt.Errorf("openBolt: %v", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists(DatabaseRootKey)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("openBolt: %v", err)
	}

	return &boltDatabase{bdb: db}, nil
}

// Has returns true if the DB does contains the given key.
func (db *boltDatabase) Has(key []byte) (has bool, err error) {
	err = db.bdb.View(func(tx *bbolt.Tx) error {
		has = tx.Bucket(DatabaseRootKey).Get(key) != nil
		return nil
	})
	return
}

// Get gets the value for the given key.
// The returned slice is its own copy.
//
// Note that if the key is not exist, then return nil value and nil error.
func (db *boltDatabase) Get(key []byte) (value []byte, err error) {
	err = db.bdb.View(func(tx *bbolt.Tx) error {
		value = bytes.Clone(tx.Bucket(DatabaseRootKey).Get(key))
		return nil
	})
	return
}

// Put sets the value for the given key.
// It overwrites any previous value for that key.
func (db *boltDatabase) Put(key []byte, value []byte) error {
	return db.bdb.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(DatabaseRootKey).Put(key, value)
	})
}

// Delete deletes the value for the given key.
// Delete will not returns error if key doesn't exist.
func (db *boltDatabase) Delete(key []byte) error {
	return db.bdb.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(DatabaseRootKey).Delete(key)
	})
}

// Keys returns every key that starts with prefix.
func (db *boltDatabase) Keys(prefix []byte) (keys [][]byte, err error) {
	err = db.bdb.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(DatabaseRootKey).Cursor()
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			keys = append(keys, bytes.Clone(k))
		}
		return nil
	})
	return
}

// Close releases all database resources.
func (db *boltDatabase) Close() error {
	return db.bdb.Close()
}

// OpenTransaction starts a read-write bbolt transaction.
// bbolt allows one of them at a time, so this blocks while
// another one is open.
func (db *boltDatabase) OpenTransaction() (Transaction, error) {
	tx, err := db.bdb.Begin(true)
	if err != nil {
		return nil, err
	}
	return &boltTransaction{tx: tx, bucket: tx.Bucket(DatabaseRootKey)}, nil
}

// boltTransaction wrapper a bbolt read-write transaction.
type boltTransaction struct {
	tx     *bbolt.Tx
	bucket *bbolt.Bucket
}

func (t *boltTransaction) Has(key []byte) (has bool, err error) {
	return t.bucket.Get(key) != nil, nil
}

func (t *boltTransaction) Get(key []byte) (value []byte, err error) {
	return bytes.Clone(t.bucket.Get(key)), nil
}

func (t *boltTransaction) Put(key []byte, value []byte) error {
	return t.bucket.Put(key, value)
}

func (t *boltTransaction) Delete(key []byte) error {
	return t.bucket.Delete(key)
}

func (t *boltTransaction) Commit() error {
	return t.tx.Commit()
}

// Discard rolls the transaction back.
// It is noop if the transaction is already closed.
func (t *boltTransaction) Discard() {
	_ = t.tx.Rollback()
}
