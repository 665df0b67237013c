package library

import (
	"fmt"
	"time"

	"github.com/TriM-Organization/bedrock-structure-editor/structure"
	"github.com/google/uuid"
)

// Put stores the export data under name, replacing what was stored
// there before. data must import and validate as a structure, so a
// broken file never reaches the library.
func (l *Library) Put(name string, data []byte) (result Entry, err error) {
	if name == "" {
		return result, fmt.Errorf("Put: %w", ErrInvalidName)
	}
	result, err = l.validateAndPut(name, data)
	if err != nil {
		return result, fmt.Errorf("Put: %w", err)
	}
	return result, nil
}

func (l *Library) validateAndPut(name string, data []byte) (result Entry, err error) {
	doc, err := structure.Import(data)
	if err != nil {
		return result, err
	}
	if err = doc.Validate(); err != nil {
		return result, err
	}
	return l.put(name, data)
}

func (l *Library) put(name string, data []byte) (result Entry, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return result, ErrClosed
	}

	tx, err := l.db.OpenTransaction()
	if err != nil {
		return result, err
	}
	defer tx.Discard()

	result = Entry{Name: name, StoredAt: time.Now()}

	key := structureKey(name)
	old, err := tx.Get(key)
	if err != nil {
		return result, err
	}

	if old != nil {
		header, err := decodeHeader(name, old)
		if err == nil {
			result.ID = header.ID
		} else {
			l.logger.Warn("overwriting corrupted record", l.logger.Args("name", name, "error", err))
		}
	} else if err = addCount(tx, 1); err != nil {
		return result, err
	}

	if result.ID == uuid.Nil {
		if result.ID, err = uuid.NewRandom(); err != nil {
			return result, err
		}
	}

	record, err := encodeRecord(result, data)
	if err != nil {
		return result, err
	}
	if err = tx.Put(key, record); err != nil {
		return result, err
	}
	if err = tx.Commit(); err != nil {
		return result, err
	}

	result, err = decodeHeader(name, record)
	if err != nil {
		return result, err
	}

	l.logger.Debug("structure stored", l.logger.Args(
		"name", name,
		"id", result.ID.String(),
		"size", result.Size,
		"stored_size", result.StoredSize,
	))
	return result, nil
}

// Delete removes the structure stored under name.
func (l *Library) Delete(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return fmt.Errorf("Delete: %w", ErrClosed)
	}

	tx, err := l.db.OpenTransaction()
	if err != nil {
		return fmt.Errorf("Delete: %v", err)
	}
	defer tx.Discard()

	key := structureKey(name)
	has, err := tx.Has(key)
	if err != nil {
		return fmt.Errorf("Delete: %v", err)
	}
	if !has {
		return fmt.Errorf("Delete: %w: %q", ErrNotFound, name)
	}

	if err = addCount(tx, -1); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if err = tx.Delete(key); err != nil {
		return fmt.Errorf("Delete: %v", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("Delete: %v", err)
	}

	l.logger.Debug("structure deleted", l.logger.Args("name", name))
	return nil
}
