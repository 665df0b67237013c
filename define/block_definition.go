package define

import (
	"github.com/TriM-Organization/bedrock-structure-editor/nbt"
	"github.com/TriM-Organization/bedrock-world-operator/block"
)

// BlockDefinition is one entry of the block palette, optionally
// merged with the block entity data that block_position_data
// stores under the same palette index.
type BlockDefinition struct {
	// PaletteIndex is the position of this entry in the palette.
	PaletteIndex int32
	// Name is the namespaced identifier, e.g. minecraft:chest.
	Name string
	// States maps state names to their byte, int or string value.
	States *nbt.Compound
	// Version is the block format version the entry was saved with.
	Version int32
	// BlockEntityData is nil when the palette entry has no data.
	BlockEntityData *nbt.Compound
}

// StatesMap returns the block states in the plain Go form that
// bedrock-world-operator and gophertunnel work with.
func (b BlockDefinition) StatesMap() map[string]any {
	return nbt.CompoundToGo(b.States)
}

// RuntimeID looks the definition up in the block registry of
// bedrock-world-operator. found is false for blocks the registry
// does not know, such as blocks from a newer game version.
func (b BlockDefinition) RuntimeID() (runtimeID uint32, found bool) {
	return block.StateToRuntimeID(b.Name, b.StatesMap())
}
