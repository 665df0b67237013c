package index

import (
	"fmt"

	"github.com/TriM-Organization/bedrock-structure-editor/define"
	"github.com/TriM-Organization/bedrock-structure-editor/nbt"
	"github.com/TriM-Organization/bedrock-structure-editor/structure"
	"github.com/go-gl/mathgl/mgl32"
)

// Resolver answers block lookups against one document.
// It reads the size, the palette and the position data once,
// so it is the one to use for many lookups in a row.
//
// A Resolver reflects the document at the time it was made.
// Make a new one after the document is edited.
type Resolver struct {
	doc          *structure.Document
	size         define.Size
	palette      []define.BlockDefinition
	positionData map[int32]*nbt.Compound
	layers       map[int]define.BlockMatrix
}

// NewResolver reads what block lookups need from doc.
func NewResolver(doc *structure.Document) (*Resolver, error) {
	size, err := doc.Size()
	if err != nil {
		return nil, fmt.Errorf("NewResolver: %w", err)
	}
	palette, err := doc.BlockPalette()
	if err != nil {
		return nil, fmt.Errorf("NewResolver: %w", err)
	}
	positionData, err := doc.BlockPositionData()
	if err != nil {
		return nil, fmt.Errorf("NewResolver: %w", err)
	}

	return &Resolver{
		doc:          doc,
		size:         size,
		palette:      palette,
		positionData: positionData,
		layers:       make(map[int]define.BlockMatrix),
	}, nil
}

// Size returns the size of the document.
func (r *Resolver) Size() define.Size {
	return r.size
}

// Layer returns the block index layer at layer, checked against
// the size of the document.
func (r *Resolver) Layer(layer int) (define.BlockMatrix, error) {
	if indices, ok := r.layers[layer]; ok {
		return indices, nil
	}

	indices, err := r.doc.BlockIndices(layer)
	if err != nil {
		return nil, fmt.Errorf("Layer: %w", err)
	}
	if len(indices) != r.size.Volume() {
		return nil, fmt.Errorf("Layer: %w: layer %d has %d entries, size %v needs %d", define.ErrSchemaMismatch, layer, len(indices), r.size, r.size.Volume())
	}

	r.layers[layer] = indices
	return indices, nil
}

// Definition returns the palette entry at paletteIndex merged with
// its block entity data. The result is a copy.
func (r *Resolver) Definition(paletteIndex int32) (*define.BlockDefinition, error) {
	if paletteIndex < 0 || int(paletteIndex) >= len(r.palette) {
		return nil, fmt.Errorf("Definition: %w: index %d, palette has %d entries", define.ErrPaletteIndexOutOfRange, paletteIndex, len(r.palette))
	}

	result := r.palette[paletteIndex]
	result.BlockEntityData = r.positionData[paletteIndex]
	return &result, nil
}

// Block resolves the voxel at pos in the given layer.
// The result is nil, with no error, when the voxel is air.
func (r *Resolver) Block(layer int, pos define.BlockPos) (*define.BlockDefinition, error) {
	indices, err := r.Layer(layer)
	if err != nil {
		return nil, fmt.Errorf("Block: %w", err)
	}
	offset, err := define.PositionToOffset(pos, r.size)
	if err != nil {
		return nil, fmt.Errorf("Block: %w", err)
	}

	paletteIndex := indices[offset]
	if paletteIndex == define.AirIndex {
		return nil, nil
	}

	result, err := r.Definition(paletteIndex)
	if err != nil {
		return nil, fmt.Errorf("Block: %w at %v", err, pos)
	}
	return result, nil
}

// ResolveBlock resolves the voxel at pos in the primary layer.
// The result is nil, with no error, when the voxel is air.
func ResolveBlock(doc *structure.Document, pos define.BlockPos) (*define.BlockDefinition, error) {
	return ResolveBlockInLayer(doc, 0, pos)
}

// ResolveBlockInLayer is ResolveBlock for any layer, for example
// layer 1 that holds the water of waterlogged blocks.
func ResolveBlockInLayer(doc *structure.Document, layer int, pos define.BlockPos) (*define.BlockDefinition, error) {
	r, err := NewResolver(doc)
	if err != nil {
		return nil, fmt.Errorf("ResolveBlockInLayer: %w", err)
	}
	result, err := r.Block(layer, pos)
	if err != nil {
		return nil, fmt.Errorf("ResolveBlockInLayer: %w", err)
	}
	return result, nil
}

// ResolveEntity returns the entity at ordinal.
func ResolveEntity(doc *structure.Document, ordinal int) (define.EntityRecord, error) {
	result, err := doc.Entity(ordinal)
	if err != nil {
		return define.EntityRecord{}, fmt.Errorf("ResolveEntity: %w", err)
	}
	return result, nil
}

// EntityLocalPosition returns the position of the entity at ordinal
// in the space of the voxel grid.
func EntityLocalPosition(doc *structure.Document, ordinal int) (result mgl32.Vec3, err error) {
	entity, err := ResolveEntity(doc, ordinal)
	if err != nil {
		return result, fmt.Errorf("EntityLocalPosition: %w", err)
	}
	origin, err := doc.WorldOrigin()
	if err != nil {
		return result, fmt.Errorf("EntityLocalPosition: %w", err)
	}
	return entity.LocalPosition(origin), nil
}
