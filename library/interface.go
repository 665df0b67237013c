package library

// DatabaseOperation represents some basic
// operation that a key-value database should
// be implement.
type DatabaseOperation interface {
	Delete(key []byte) error
	Get(key []byte) (value []byte, err error)
	Has(key []byte) (has bool, err error)
	Put(key []byte, value []byte) error
}

// Transaction represents a read-write transaction.
// It must be closed once done, either by committing
// or discarding it.
type Transaction interface {
	DatabaseOperation
	Commit() error
	Discard()
}

// DB represent to a key-value database
// that implements some basic funtions.
type DB interface {
	DatabaseOperation
	// OpenTransaction opens an atomic transaction. Only one read-write
	// transaction can be opened at a time, and subsequent calls block
	// until the in-flight one is committed or discarded.
	OpenTransaction() (Transaction, error)
	// Keys returns every key that starts with prefix, in
	// ascending byte order.
	Keys(prefix []byte) (keys [][]byte, err error)
	Close() error
}
