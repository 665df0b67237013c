package library

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/pterm/pterm"
)

var (
	// ErrNotFound means no structure is stored under the name.
	ErrNotFound = errors.New("structure not found")
	// ErrCorrupted means a stored record does not decode, or
	// decodes to bytes that do not match its checksum.
	ErrCorrupted = errors.New("structure record corrupted")
	// ErrClosed means the library was closed.
	ErrClosed = errors.New("library closed")
	// ErrInvalidName means the structure name is empty.
	ErrInvalidName = errors.New("invalid structure name")
)

// Backend names a key-value store a library can live in.
type Backend string

const (
	// BackendBolt keeps the library in a single bbolt file.
	BackendBolt Backend = "bolt"
	// BackendLevelDB keeps the library in a leveldb directory.
	BackendLevelDB Backend = "leveldb"
	// BackendBadger keeps the library in a badger directory.
	BackendBadger Backend = "badger"
)

// Options controls how Open opens a library.
type Options struct {
	// Backend defaults to BackendBolt.
	Backend Backend
	// NoGrowSync and NoSync are passed to bbolt; NoSync also
	// turns off synchronous writes of badger.
	//
	// THIS IS UNSAFE. PLEASE USE WITH CAUTION.
	NoGrowSync bool
	NoSync     bool
	// Logger receives debug and warning messages.
	// Nothing is logged when it is nil.
	Logger *pterm.Logger
}

// Library is a named store of structure exports.
//
// Single operations are atomic. Read-modify-write cycles must
// go through Edit, or hold the lease returned by Require, so that
// only one writer works on a structure at a time.
type Library struct {
	db     DB
	leases *leases
	logger *pterm.Logger

	// mu is held for reading around every read of db and for
	// writing around every write transaction and db.Close.
	// Serial writes keep the structure count consistent on
	// every backend.
	mu     sync.RWMutex
	closed bool
}

// Open opens the library at path, creating it if it does not exist.
// path is a file for BackendBolt and a directory otherwise.
func Open(path string, options Options) (result *Library, err error) {
	logger := options.Logger
	if logger == nil {
		logger = pterm.DefaultLogger.WithWriter(io.Discard).WithLevel(pterm.LogLevelDisabled)
	}

	var db DB
	switch options.Backend {
	case BackendBolt, "":
		db, err = openBolt(path, options.NoGrowSync, options.NoSync)
	case BackendLevelDB:
		db, err = openLevel(path)
	case BackendBadger:
		db, err = openBadger(path, options.NoSync)
	default:
		return nil, fmt.Errorf("Open: unknown backend %q", options.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("Open: %v", err)
	}

	logger.Debug("library opened", logger.Args("path", path, "backend", string(options.Backend)))
	return &Library{
		db:     db,
		leases: newLeases(),
		logger: logger,
	}, nil
}

// Require leases the structure named name, so that only one goroutine
// edits it at a time. It blocks while another goroutine holds the lease,
// and fails with ErrClosed once Close was called.
//
// Calling release gives the lease back. Calling it again does nothing.
func (l *Library) Require(name string) (release func(), err error) {
	release, err = l.leases.acquire(name)
	if err != nil {
		return nil, fmt.Errorf("Require: %w", err)
	}
	return release, nil
}

// Close closes the library. It waits until every lease is
// released before closing the database. Calling Close again,
// even concurrently, does nothing.
func (l *Library) Close() error {
	pending, first := l.leases.shutdown()
	if !first {
		return nil
	}
	if len(pending) > 0 {
		l.logger.Debug("waiting for structures in use", l.logger.Args("count", len(pending)))
	}
	for _, done := range pending {
		<-done
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	if err := l.db.Close(); err != nil {
		return fmt.Errorf("Close: %v", err)
	}
	return nil
}
