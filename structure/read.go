package structure

import (
	"fmt"
	"strconv"

	"github.com/TriM-Organization/bedrock-structure-editor/define"
	"github.com/TriM-Organization/bedrock-structure-editor/nbt"
	"github.com/go-gl/mathgl/mgl32"
)

// FormatVersion returns format_version.
func (d *Document) FormatVersion() (int32, error) {
	version, err := requiredField[nbt.Int](d, PathFormatVersion)
	if err != nil {
		return 0, fmt.Errorf("FormatVersion: %w", err)
	}
	return int32(version), nil
}

// Size returns the extent of the voxel grid.
func (d *Document) Size() (define.Size, error) {
	triple, err := d.intTriple(PathSize)
	if err != nil {
		return define.Size{}, fmt.Errorf("Size: %w", err)
	}
	return define.Size(triple), nil
}

// WorldOrigin returns the world position the structure was saved from.
func (d *Document) WorldOrigin() (define.Origin, error) {
	triple, err := d.intTriple(PathWorldOrigin)
	if err != nil {
		return define.Origin{}, fmt.Errorf("WorldOrigin: %w", err)
	}
	return define.Origin(triple), nil
}

// intTriple reads three integers stored either as a List of Int
// or as an IntArray.
func (d *Document) intTriple(path string) (result [3]int32, err error) {
	tag, found, err := d.lookup(path)
	if err != nil {
		return result, err
	}
	if !found {
		return result, fmt.Errorf("%w: %s is missing", define.ErrSchemaMismatch, path)
	}

	switch value := tag.(type) {
	case nbt.IntArray:
		if len(value) != 3 {
			return result, fmt.Errorf("%w: %s has %d elements, want 3", define.ErrSchemaMismatch, path, len(value))
		}
		copy(result[:], value)
	case *nbt.List:
		ints, err := listInts(value, path)
		if err != nil {
			return result, err
		}
		if len(ints) != 3 {
			return result, fmt.Errorf("%w: %s has %d elements, want 3", define.ErrSchemaMismatch, path, len(ints))
		}
		copy(result[:], ints)
	default:
		return result, mismatch(path, tag, nbt.KindList)
	}

	return result, nil
}

// listOf converts the elements of l to T. An empty list may
// declare any element kind.
func listOf[T nbt.Tag](l *nbt.List, path string) ([]T, error) {
	var zero T
	if l.Len() > 0 && l.ElemKind != zero.Kind() {
		return nil, fmt.Errorf("%w: %s holds %v, want %v", define.ErrSchemaMismatch, path, l.ElemKind, zero.Kind())
	}

	result := make([]T, l.Len())
	for i, value := range l.Elems {
		elem, ok := value.(T)
		if !ok {
			return nil, mismatch(fmt.Sprintf("%s[%d]", path, i), value, zero.Kind())
		}
		result[i] = elem
	}
	return result, nil
}

func listInts(l *nbt.List, path string) ([]int32, error) {
	ints, err := listOf[nbt.Int](l, path)
	if err != nil {
		return nil, err
	}
	result := make([]int32, len(ints))
	for i, value := range ints {
		result[i] = int32(value)
	}
	return result, nil
}

func listFloats(l *nbt.List, path string) ([]float32, error) {
	floats, err := listOf[nbt.Float](l, path)
	if err != nil {
		return nil, err
	}
	result := make([]float32, len(floats))
	for i, value := range floats {
		result[i] = float32(value)
	}
	return result, nil
}

func (d *Document) layerList() ([]*nbt.List, error) {
	layers, err := requiredField[*nbt.List](d, PathBlockIndices)
	if err != nil {
		return nil, err
	}
	return listOf[*nbt.List](layers, PathBlockIndices)
}

// LayerCount returns how many block index layers the document has.
func (d *Document) LayerCount() (int, error) {
	layers, err := d.layerList()
	if err != nil {
		return 0, fmt.Errorf("LayerCount: %w", err)
	}
	return len(layers), nil
}

// BlockIndices returns a copy of the block index layer at layer.
// The length is not checked against the size here; see Validate.
func (d *Document) BlockIndices(layer int) (define.BlockMatrix, error) {
	layers, err := d.layerList()
	if err != nil {
		return nil, fmt.Errorf("BlockIndices: %w", err)
	}
	if layer < 0 || layer >= len(layers) {
		return nil, fmt.Errorf("BlockIndices: %w: layer %d of %d", define.ErrOutOfRange, layer, len(layers))
	}

	ints, err := listInts(layers[layer], fmt.Sprintf("%s[%d]", PathBlockIndices, layer))
	if err != nil {
		return nil, fmt.Errorf("BlockIndices: %w", err)
	}
	return define.BlockMatrix(ints), nil
}

// Layers returns a copy of every block index layer.
func (d *Document) Layers() (define.Layers, error) {
	count, err := d.LayerCount()
	if err != nil {
		return nil, fmt.Errorf("Layers: %w", err)
	}

	result := make(define.Layers, count)
	for i := range result {
		if result[i], err = d.BlockIndices(i); err != nil {
			return nil, fmt.Errorf("Layers: %w", err)
		}
	}
	return result, nil
}

// PaletteLen returns the number of palette entries without
// converting them.
func (d *Document) PaletteLen() (int, error) {
	palette, err := requiredField[*nbt.List](d, PathBlockPalette)
	if err != nil {
		return 0, fmt.Errorf("PaletteLen: %w", err)
	}
	return palette.Len(), nil
}

// BlockPalette returns the palette in order. A palette entry must
// have a name; states and version read as empty and 0 when absent.
// BlockEntityData is left nil; the coordinate index merges it in.
func (d *Document) BlockPalette() ([]define.BlockDefinition, error) {
	palette, err := requiredField[*nbt.List](d, PathBlockPalette)
	if err != nil {
		return nil, fmt.Errorf("BlockPalette: %w", err)
	}
	entries, err := listOf[*nbt.Compound](palette, PathBlockPalette)
	if err != nil {
		return nil, fmt.Errorf("BlockPalette: %w", err)
	}

	result := make([]define.BlockDefinition, len(entries))
	for i, entry := range entries {
		path := fmt.Sprintf("%s[%d]", PathBlockPalette, i)
		if result[i], err = blockDefinition(entry, int32(i), path); err != nil {
			return nil, fmt.Errorf("BlockPalette: %w", err)
		}
	}
	return result, nil
}

func blockDefinition(entry *nbt.Compound, paletteIndex int32, path string) (result define.BlockDefinition, err error) {
	result.PaletteIndex = paletteIndex

	name, found, err := childField[nbt.String](entry, fieldName, path)
	if err != nil {
		return result, err
	}
	if !found {
		return result, fmt.Errorf("%w: %s.%s is missing", define.ErrSchemaMismatch, path, fieldName)
	}
	result.Name = string(name)

	states, found, err := childField[*nbt.Compound](entry, fieldStates, path)
	if err != nil {
		return result, err
	}
	if !found {
		states = nbt.NewCompound()
	}
	result.States = states

	version, _, err := childField[nbt.Int](entry, fieldVersion, path)
	if err != nil {
		return result, err
	}
	result.Version = int32(version)

	return result, nil
}

// BlockPositionData returns the block entity data of every palette
// index that has some. The mapping is empty when the document has
// no block_position_data, or when no entry carries block_entity_data.
func (d *Document) BlockPositionData() (map[int32]*nbt.Compound, error) {
	data, found, err := optionalField[*nbt.Compound](d, PathBlockPositionData)
	if err != nil {
		return nil, fmt.Errorf("BlockPositionData: %w", err)
	}

	result := make(map[int32]*nbt.Compound)
	if !found {
		return result, nil
	}

	for _, entry := range data.Entries() {
		path := PathBlockPositionData + "." + entry.Name

		index, err := strconv.ParseInt(entry.Name, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("BlockPositionData: %w: %s is not a palette index", define.ErrSchemaMismatch, path)
		}
		compound, ok := entry.Tag.(*nbt.Compound)
		if !ok {
			return nil, fmt.Errorf("BlockPositionData: %w", mismatch(path, entry.Tag, nbt.KindCompound))
		}

		blockEntityData, found, err := childField[*nbt.Compound](compound, fieldBlockEntityData, path)
		if err != nil {
			return nil, fmt.Errorf("BlockPositionData: %w", err)
		}
		if found {
			result[int32(index)] = blockEntityData
		}
	}

	return result, nil
}

// BlockEntityData returns the block entity data stored for
// paletteIndex, or nil when there is none.
func (d *Document) BlockEntityData(paletteIndex int32) (*nbt.Compound, error) {
	data, err := d.BlockPositionData()
	if err != nil {
		return nil, fmt.Errorf("BlockEntityData: %w", err)
	}
	return data[paletteIndex], nil
}

func (d *Document) entityList() ([]*nbt.Compound, error) {
	entities, found, err := optionalField[*nbt.List](d, PathEntities)
	if err != nil || !found {
		return nil, err
	}
	return listOf[*nbt.Compound](entities, PathEntities)
}

// EntityCount returns the length of the entity list.
func (d *Document) EntityCount() (int, error) {
	entities, err := d.entityList()
	if err != nil {
		return 0, fmt.Errorf("EntityCount: %w", err)
	}
	return len(entities), nil
}

// Entities returns every entity in list order.
// A document without an entity list has no entities.
func (d *Document) Entities() ([]define.EntityRecord, error) {
	entities, err := d.entityList()
	if err != nil {
		return nil, fmt.Errorf("Entities: %w", err)
	}

	result := make([]define.EntityRecord, len(entities))
	for i, entity := range entities {
		if result[i], err = entityRecord(entity, i); err != nil {
			return nil, fmt.Errorf("Entities: %w", err)
		}
	}
	return result, nil
}

// Entity returns the entity at ordinal.
func (d *Document) Entity(ordinal int) (define.EntityRecord, error) {
	entities, err := d.entityList()
	if err != nil {
		return define.EntityRecord{}, fmt.Errorf("Entity: %w", err)
	}
	if ordinal < 0 || ordinal >= len(entities) {
		return define.EntityRecord{}, fmt.Errorf("Entity: %w: ordinal %d of %d", define.ErrOutOfRange, ordinal, len(entities))
	}

	result, err := entityRecord(entities[ordinal], ordinal)
	if err != nil {
		return define.EntityRecord{}, fmt.Errorf("Entity: %w", err)
	}
	return result, nil
}

func entityRecord(entity *nbt.Compound, ordinal int) (result define.EntityRecord, err error) {
	path := fmt.Sprintf("%s[%d]", PathEntities, ordinal)
	result.Ordinal = ordinal
	result.Fields = entity

	identifier, found, err := childField[nbt.String](entity, fieldIdentifier, path)
	if err != nil {
		return result, err
	}
	if !found {
		return result, fmt.Errorf("%w: %s.%s is missing", define.ErrSchemaMismatch, path, fieldIdentifier)
	}
	result.Identifier = string(identifier)

	pos, err := floatField(entity, fieldPos, path, 3)
	if err != nil {
		return result, err
	}
	result.Position = mgl32.Vec3{pos[0], pos[1], pos[2]}

	rotation, err := floatField(entity, fieldRotation, path, 2)
	if err != nil {
		return result, err
	}
	result.Rotation = mgl32.Vec2{rotation[0], rotation[1]}

	uniqueID, found, err := childField[nbt.Long](entity, fieldUniqueID, path)
	if err != nil {
		return result, err
	}
	result.UniqueID, result.HasUniqueID = int64(uniqueID), found

	definitions, found, err := childField[*nbt.List](entity, fieldDefinitions, path)
	if err != nil {
		return result, err
	}
	if found {
		strs, err := listOf[nbt.String](definitions, path+"."+fieldDefinitions)
		if err != nil {
			return result, err
		}
		for _, value := range strs {
			result.Definitions = append(result.Definitions, string(value))
		}
	}

	return result, nil
}

// floatField reads a List of Float that has at least minLen elements.
func floatField(c *nbt.Compound, name string, path string, minLen int) ([]float32, error) {
	l, found, err := childField[*nbt.List](c, name, path)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s.%s is missing", define.ErrSchemaMismatch, path, name)
	}
	floats, err := listFloats(l, path+"."+name)
	if err != nil {
		return nil, err
	}
	if len(floats) < minLen {
		return nil, fmt.Errorf("%w: %s.%s has %d elements, want %d", define.ErrSchemaMismatch, path, name, len(floats), minLen)
	}
	return floats, nil
}
