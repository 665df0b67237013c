package library

import (
	"fmt"
	"strings"

	"github.com/TriM-Organization/bedrock-structure-editor/structure"
)

// Has reports whether a structure is stored under name.
func (l *Library) Has(name string) (has bool, err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return false, fmt.Errorf("Has: %w", ErrClosed)
	}
	has, err = l.db.Has(structureKey(name))
	if err != nil {
		return false, fmt.Errorf("Has: %v", err)
	}
	return has, nil
}

// Get returns the export stored under name, after checking it
// against its checksum.
func (l *Library) Get(name string) (data []byte, err error) {
	_, data, err = l.get(name)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return data, nil
}

func (l *Library) get(name string) (entry Entry, data []byte, err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return entry, nil, ErrClosed
	}

	record, err := l.db.Get(structureKey(name))
	if err != nil {
		return entry, nil, err
	}
	if record == nil {
		return entry, nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	entry, data, err = decodeRecord(name, record)
	if err != nil {
		l.logger.Warn("stored structure is corrupted", l.logger.Args("name", name, "error", err))
		return entry, nil, err
	}
	return entry, data, nil
}

// Document returns the structure stored under name as a document.
func (l *Library) Document(name string) (*structure.Document, error) {
	data, err := l.Get(name)
	if err != nil {
		return nil, fmt.Errorf("Document: %w", err)
	}
	doc, err := structure.Import(data)
	if err != nil {
		return nil, fmt.Errorf("Document: %w", err)
	}
	return doc, nil
}

// Stat returns the description of the structure stored under name,
// without decompressing it.
func (l *Library) Stat(name string) (result Entry, err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return result, fmt.Errorf("Stat: %w", ErrClosed)
	}

	record, err := l.db.Get(structureKey(name))
	if err != nil {
		return result, fmt.Errorf("Stat: %v", err)
	}
	if record == nil {
		return result, fmt.Errorf("Stat: %w: %q", ErrNotFound, name)
	}

	result, err = decodeHeader(name, record)
	if err != nil {
		return result, fmt.Errorf("Stat: %w", err)
	}
	return result, nil
}

// List describes every stored structure, ordered by name.
//
// Time complexity: O(n), n=count of stored structures.
func (l *Library) List() (result []Entry, err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return nil, fmt.Errorf("List: %w", ErrClosed)
	}

	keys, err := l.db.Keys([]byte(KeyStructurePrefix))
	if err != nil {
		return nil, fmt.Errorf("List: %v", err)
	}

	for _, key := range keys {
		name := strings.TrimPrefix(string(key), KeyStructurePrefix)

		record, err := l.db.Get(key)
		if err != nil {
			return nil, fmt.Errorf("List: %v", err)
		}
		// Deleted after Keys returned.
		if record == nil {
			continue
		}

		entry, err := decodeHeader(name, record)
		if err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		result = append(result, entry)
	}

	return result, nil
}

// Names returns the names of every stored structure in order.
func (l *Library) Names() (result []string, err error) {
	entries, err := l.List()
	if err != nil {
		return nil, fmt.Errorf("Names: %w", err)
	}
	for _, value := range entries {
		result = append(result, value.Name)
	}
	return result, nil
}

// Count returns how many structures are stored.
func (l *Library) Count() (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return 0, fmt.Errorf("Count: %w", ErrClosed)
	}

	count, err := l.db.Get([]byte(KeyStructureCount))
	if err != nil {
		return 0, fmt.Errorf("Count: %v", err)
	}
	result, err := decodeCount(count)
	if err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return int(result), nil
}
