package structure

// Field paths of a structure document, as dotted
// paths from the root compound.
const (
	PathFormatVersion     = "format_version"
	PathSize              = "size"
	PathWorldOrigin       = "structure_world_origin"
	PathStructure         = "structure"
	PathBlockIndices      = "structure.block_indices"
	PathEntities          = "structure.entities"
	PathPalette           = "structure.palette"
	PathDefaultPalette    = "structure.palette.default"
	PathBlockPalette      = "structure.palette.default.block_palette"
	PathBlockPositionData = "structure.palette.default.block_position_data"
)

// Names of the fields inside one palette entry,
// one position data entry and one entity.
const (
	fieldName            = "name"
	fieldStates          = "states"
	fieldVersion         = "version"
	fieldBlockEntityData = "block_entity_data"
	fieldIdentifier      = "identifier"
	fieldPos             = "Pos"
	fieldRotation        = "Rotation"
	fieldUniqueID        = "UniqueID"
	fieldDefinitions     = "definitions"
)

// DefaultFormatVersion is the format_version the game writes.
const DefaultFormatVersion = 1
