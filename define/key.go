package define

import (
	"fmt"
	"strconv"
	"strings"
)

// ObjectKind tells blocks and entities apart.
type ObjectKind uint8

const (
	ObjectBlock ObjectKind = iota + 1
	ObjectEntity
)

func (k ObjectKind) String() string {
	switch k {
	case ObjectBlock:
		return "block"
	case ObjectEntity:
		return "entity"
	}
	return fmt.Sprintf("ObjectKind(%d)", uint8(k))
}

// Key identifies one block voxel or one entity of a document.
// It is a tagged union: Pos is only meaningful for blocks and
// Ordinal only for entities.
//
// Keys are derived from coordinates and ordinals alone, so the
// same voxel gets the same key on every scan.
type Key struct {
	Kind    ObjectKind
	Pos     BlockPos
	Ordinal int
}

// BlockKey returns the key of the voxel at pos.
func BlockKey(pos BlockPos) Key {
	return Key{Kind: ObjectBlock, Pos: pos}
}

// EntityKey returns the key of the entity at ordinal.
func EntityKey(ordinal int) Key {
	return Key{Kind: ObjectEntity, Ordinal: ordinal}
}

// String projects the key to the id that user interfaces and
// renderers exchange: block_<x>_<y>_<z> or entity_<n>.
func (k Key) String() string {
	switch k.Kind {
	case ObjectBlock:
		return fmt.Sprintf("block_%d_%d_%d", k.Pos[0], k.Pos[1], k.Pos[2])
	case ObjectEntity:
		return fmt.Sprintf("entity_%d", k.Ordinal)
	}
	return "unknown"
}

// ParseKey is the inverse of Key.String. Only the canonical
// form is accepted: no signs, no leading zeros.
func ParseKey(id string) (result Key, err error) {
	result, err = parseKey(id)
	if err != nil {
		return Key{}, err
	}
	if result.String() != id {
		return Key{}, fmt.Errorf("ParseKey: %w: %q is not canonical", ErrOutOfRange, id)
	}
	return result, nil
}

func parseKey(id string) (Key, error) {
	parts := strings.Split(id, "_")

	switch {
	case parts[0] == "block" && len(parts) == 4:
		var pos BlockPos
		for i := range 3 {
			value, err := strconv.ParseInt(parts[i+1], 10, 32)
			if err != nil {
				return Key{}, fmt.Errorf("ParseKey: %w: bad coordinate in %q", ErrOutOfRange, id)
			}
			pos[i] = int32(value)
		}
		return BlockKey(pos), nil

	case parts[0] == "entity" && len(parts) == 2:
		ordinal, err := strconv.Atoi(parts[1])
		if err != nil || ordinal < 0 {
			return Key{}, fmt.Errorf("ParseKey: %w: bad ordinal in %q", ErrOutOfRange, id)
		}
		return EntityKey(ordinal), nil
	}

	return Key{}, fmt.Errorf("ParseKey: %w: %q is not a block or entity id", ErrOutOfRange, id)
}
