package define

import "fmt"

type (
	// Layers represents all block index layers of a structure.
	// Layer 0 is the primary layer, and layer 1 usually holds the
	// water that waterlogged blocks sit in.
	Layers []BlockMatrix
	// LayersDiff represents the difference for all layers
	// between two documents of the same size.
	LayersDiff []DiffMatrix
)

// Layer get the block matrix which in layer.
// If not exist, then create empty layer, as well as
// all layers between the current highest layer
// and the new highest layer.
func (l *Layers) Layer(layer int) BlockMatrix {
	for layer >= len(*l) {
		*l = append(*l, nil)
	}
	return (*l)[layer]
}

// Layer get the difference block matrix which in layer.
// If not exist, then create empty layer, as well as all layers
// between the current highest layer and the new highest layer.
func (d *LayersDiff) Layer(layer int) DiffMatrix {
	for layer >= len(*d) {
		*d = append(*d, nil)
	}
	return (*d)[layer]
}

// LayerDifference computes the difference between older and newer.
// Time complexity: O(L×n), n = max(len(older), len(newer)).
// L is the average length of each layer.
func LayerDifference(older Layers, newer Layers) LayersDiff {
	var result LayersDiff

	for i := range max(len(older), len(newer)) {
		_ = result.Layer(i)
	}

	for i := range result {
		result[i] = BlockDifference(older.Layer(i), newer.Layer(i))
	}

	return result
}

// LayerRestore use old and diff to compute the newer layers of a
// grid holding volume voxels. A layer that only diff has starts as
// air. Every layer of old must hold volume entries
// (ErrSchemaMismatch), and every offset must be below volume
// (ErrOutOfRange).
// Time complexity: O(L×n), n = volume, L = count of layers.
func LayerRestore(old Layers, diff LayersDiff, volume int) (result Layers, err error) {
	result = make(Layers, max(len(old), len(diff)))

	for i := range result {
		base := NewBlockMatrix(volume)
		if i < len(old) && old[i] != nil {
			base = old[i]
		}
		if len(base) != volume {
			return nil, fmt.Errorf("LayerRestore: %w: layer %d has %d entries, want %d", ErrSchemaMismatch, i, len(base), volume)
		}

		var changes DiffMatrix
		if i < len(diff) {
			changes = diff[i]
		}
		if result[i], err = BlockRestore(base, changes); err != nil {
			return nil, fmt.Errorf("LayerRestore: layer %d: %w", i, err)
		}
	}

	return result, nil
}

// LayerNoChange reports diff is empty or not.
func LayerNoChange(diff LayersDiff) bool {
	for _, value := range diff {
		if len(value) > 0 {
			return false
		}
	}
	return true
}
