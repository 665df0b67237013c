package define

import "fmt"

// AirIndex is the value a block index layer holds for a voxel
// that has no block.
const AirIndex int32 = -1

type (
	// BlockMatrix is one block index layer: for every voxel in
	// offset order, either AirIndex or an index into the palette.
	BlockMatrix []int32
	// SingleBlockDiff represents a single voxel whose palette index changed.
	SingleBlockDiff struct {
		Offset       int
		NewPaletteID int32
	}
	// DiffMatrix holds the changes that turn one layer into another.
	DiffMatrix []SingleBlockDiff
)

// NewBlockMatrix creates a layer of volume voxels that is full of air.
func NewBlockMatrix(volume int) BlockMatrix {
	result := make(BlockMatrix, volume)
	for i := range result {
		result[i] = AirIndex
	}
	return result
}

// BlockMatrixIsEmpty checks the given block matrix holds no voxel at all.
func BlockMatrixIsEmpty(matrix BlockMatrix) bool {
	return len(matrix) == 0
}

// BlockDifference computes the difference between older and newer.
// Both layers describe the same grid; when one is shorter the missing
// tail is treated as air.
// Time complexity: O(n), n=max(len(older), len(newer)).
func BlockDifference(older BlockMatrix, newer BlockMatrix) DiffMatrix {
	var result DiffMatrix

	for i := range max(len(older), len(newer)) {
		oldID, newID := AirIndex, AirIndex
		if i < len(older) {
			oldID = older[i]
		}
		if i < len(newer) {
			newID = newer[i]
		}
		if newID != oldID {
			result = append(result, SingleBlockDiff{
				Offset:       i,
				NewPaletteID: newID,
			})
		}
	}

	return result
}

// BlockRestore uses old and diff to compute the newer layer.
// old is not modified; the returned layer is a new one of the
// same length. An offset outside old fails with ErrOutOfRange.
// Time complexity: O(n+l), n=len(old), l=len(diff).
func BlockRestore(old BlockMatrix, diff DiffMatrix) (BlockMatrix, error) {
	result := make(BlockMatrix, len(old))
	copy(result, old)

	for _, value := range diff {
		if value.Offset < 0 || value.Offset >= len(result) {
			return nil, fmt.Errorf("BlockRestore: %w: offset %d of %d", ErrOutOfRange, value.Offset, len(result))
		}
		result[value.Offset] = value.NewPaletteID
	}

	return result, nil
}
