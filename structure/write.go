package structure

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/TriM-Organization/bedrock-structure-editor/define"
	"github.com/TriM-Organization/bedrock-structure-editor/nbt"
)

// SetPath stores tag under the dotted path. Every compound on the
// way must already exist; only the last element is created or
// replaced.
//
// SetPath and the typed setters below do not keep the document
// consistent. Growing size without growing the block index layers,
// for example, gives a document that Validate rejects.
func (d *Document) SetPath(path string, tag nbt.Tag) error {
	if path == "" {
		return fmt.Errorf("SetPath: %w: empty path", define.ErrSchemaMismatch)
	}
	if tag == nil {
		return fmt.Errorf("SetPath: nil tag for %s", path)
	}

	parent := d.root
	parts := strings.Split(path, ".")
	if len(parts) > 1 {
		parentPath := strings.Join(parts[:len(parts)-1], ".")
		compound, err := requiredField[*nbt.Compound](d, parentPath)
		if err != nil {
			return fmt.Errorf("SetPath: %w", err)
		}
		parent = compound
	}

	parent.Set(parts[len(parts)-1], tag)
	return nil
}

// SetSize stores size as a List of Int, which is what the game writes.
func (d *Document) SetSize(size define.Size) error {
	if err := d.SetPath(PathSize, intList(size[:])); err != nil {
		return fmt.Errorf("SetSize: %w", err)
	}
	return nil
}

// SetWorldOrigin stores origin as a List of Int.
func (d *Document) SetWorldOrigin(origin define.Origin) error {
	if err := d.SetPath(PathWorldOrigin, intList(origin[:])); err != nil {
		return fmt.Errorf("SetWorldOrigin: %w", err)
	}
	return nil
}

// SetBlockIndices replaces the block index layer at layer.
// layer may be equal to the layer count, which appends a layer.
func (d *Document) SetBlockIndices(layer int, indices define.BlockMatrix) error {
	layers, found, err := optionalField[*nbt.List](d, PathBlockIndices)
	if err != nil {
		return fmt.Errorf("SetBlockIndices: %w", err)
	}
	if !found {
		layers = nbt.NewList(nbt.KindList)
		if err = d.SetPath(PathBlockIndices, layers); err != nil {
			return fmt.Errorf("SetBlockIndices: %w", err)
		}
	}
	if layers.Len() > 0 && layers.ElemKind != nbt.KindList {
		return fmt.Errorf("SetBlockIndices: %w", mismatch(PathBlockIndices, layers, nbt.KindList))
	}
	if layer < 0 || layer > layers.Len() {
		return fmt.Errorf("SetBlockIndices: %w: layer %d of %d", define.ErrOutOfRange, layer, layers.Len())
	}

	elem := intList(indices)
	if layer == layers.Len() {
		layers.ElemKind = nbt.KindList
		layers.Elems = append(layers.Elems, elem)
		return nil
	}
	layers.Elems[layer] = elem
	return nil
}

// SetBlockPalette replaces the palette with defs, in order.
// PaletteIndex of each definition is ignored, as is BlockEntityData;
// use SetBlockEntityData for the latter.
func (d *Document) SetBlockPalette(defs []define.BlockDefinition) error {
	palette := nbt.NewList(nbt.KindCompound)
	for _, def := range defs {
		states := def.States
		if states == nil {
			states = nbt.NewCompound()
		}
		_ = palette.Append(nbt.NewCompound().
			Set(fieldName, nbt.String(def.Name)).
			Set(fieldStates, states).
			Set(fieldVersion, nbt.Int(def.Version)))
	}

	if err := d.SetPath(PathBlockPalette, palette); err != nil {
		return fmt.Errorf("SetBlockPalette: %w", err)
	}
	return nil
}

// SetBlockEntityData stores data as the block entity data of
// paletteIndex. A nil data removes it. Other fields of the position
// data entry, such as tick queues, are kept.
func (d *Document) SetBlockEntityData(paletteIndex int32, data *nbt.Compound) error {
	positionData, found, err := optionalField[*nbt.Compound](d, PathBlockPositionData)
	if err != nil {
		return fmt.Errorf("SetBlockEntityData: %w", err)
	}
	if !found {
		if data == nil {
			return nil
		}
		positionData = nbt.NewCompound()
		if err = d.SetPath(PathBlockPositionData, positionData); err != nil {
			return fmt.Errorf("SetBlockEntityData: %w", err)
		}
	}

	key := strconv.Itoa(int(paletteIndex))
	entry, found, err := childField[*nbt.Compound](positionData, key, PathBlockPositionData)
	if err != nil {
		return fmt.Errorf("SetBlockEntityData: %w", err)
	}

	switch {
	case data == nil && found:
		entry.Delete(fieldBlockEntityData)
		if entry.Len() == 0 {
			positionData.Delete(key)
		}
	case data != nil && found:
		entry.Set(fieldBlockEntityData, data)
	case data != nil:
		positionData.Set(key, nbt.NewCompound().Set(fieldBlockEntityData, data))
	}
	return nil
}

// SetEntities replaces the entity list. Each entity starts from a
// shallow copy of its Fields, and then gets identifier, Pos,
// Rotation, UniqueID and definitions written from the record.
func (d *Document) SetEntities(entities []define.EntityRecord) error {
	list := nbt.NewList(nbt.KindCompound)
	for _, entity := range entities {
		_ = list.Append(entityCompound(entity))
	}

	if err := d.SetPath(PathEntities, list); err != nil {
		return fmt.Errorf("SetEntities: %w", err)
	}
	return nil
}

func entityCompound(entity define.EntityRecord) *nbt.Compound {
	result := nbt.NewCompound()
	if entity.Fields != nil {
		for _, value := range entity.Fields.Entries() {
			result.Set(value.Name, value.Tag)
		}
	}

	result.Set(fieldIdentifier, nbt.String(entity.Identifier))
	result.Set(fieldPos, floatList(entity.Position[:]))
	result.Set(fieldRotation, floatList(entity.Rotation[:]))

	if entity.HasUniqueID {
		result.Set(fieldUniqueID, nbt.Long(entity.UniqueID))
	} else {
		result.Delete(fieldUniqueID)
	}

	if len(entity.Definitions) > 0 {
		definitions := nbt.NewList(nbt.KindString)
		for _, value := range entity.Definitions {
			_ = definitions.Append(nbt.String(value))
		}
		result.Set(fieldDefinitions, definitions)
	}

	return result
}
