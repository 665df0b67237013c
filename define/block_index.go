package define

import "fmt"

// PositionToOffset returns the index of pos in a block index layer of
// a grid whose extent is size.
//
// X varies fastest, then Z, then Y:
//
//	offset = x + z*sizeX + y*sizeX*sizeZ
//
// Every reader and writer of a layer must agree on this ordering,
// otherwise spatial lookups silently hit the wrong voxel.
func PositionToOffset(pos BlockPos, size Size) (int, error) {
	if !size.Contains(pos) {
		return 0, fmt.Errorf("PositionToOffset: %w: position %v is outside %v", ErrOutOfRange, pos, size)
	}
	x, y, z := int(pos[0]), int(pos[1]), int(pos[2])
	sx, sz := int(size[0]), int(size[2])
	return x + z*sx + y*sx*sz, nil
}

// OffsetToPosition is the inverse of PositionToOffset.
func OffsetToPosition(offset int, size Size) (BlockPos, error) {
	if offset < 0 || offset >= size.Volume() {
		return BlockPos{}, fmt.Errorf("OffsetToPosition: %w: offset %d is outside [0, %d)", ErrOutOfRange, offset, size.Volume())
	}
	sx, sz := int(size[0]), int(size[2])
	return BlockPos{
		int32(offset % sx),
		int32(offset / (sx * sz)),
		int32((offset % (sx * sz)) / sx),
	}, nil
}
