package library

import (
	"encoding/binary"
	"fmt"
	"math"
)

// decodeCount reads the value of KeyStructureCount.
// A missing value means nothing was ever stored.
func decodeCount(value []byte) (uint32, error) {
	switch len(value) {
	case 0:
		return 0, nil
	case 4:
		return binary.LittleEndian.Uint32(value), nil
	}
	return 0, fmt.Errorf("%w: structure count has %d bytes", ErrCorrupted, len(value))
}

// addCount moves the structure count kept in tx by delta.
func addCount(tx Transaction, delta int32) error {
	value, err := tx.Get([]byte(KeyStructureCount))
	if err != nil {
		return err
	}
	count, err := decodeCount(value)
	if err != nil {
		return err
	}

	next := int64(count) + int64(delta)
	if next < 0 || next > math.MaxUint32 {
		return fmt.Errorf("%w: structure count %d cannot move by %d", ErrCorrupted, count, delta)
	}
	return tx.Put([]byte(KeyStructureCount), binary.LittleEndian.AppendUint32(nil, uint32(next)))
}
