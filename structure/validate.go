package structure

import (
	"fmt"

	"github.com/TriM-Organization/bedrock-structure-editor/define"
)

// Validate checks that the document is consistent: every block
// index layer has exactly one entry per voxel, and every entry is
// either air or a valid palette index. It also checks that the
// palette, the position data and the entity list can be read.
func (d *Document) Validate() error {
	size, err := d.Size()
	if err != nil {
		return fmt.Errorf("Validate: %w", err)
	}
	if _, err = d.WorldOrigin(); err != nil {
		return fmt.Errorf("Validate: %w", err)
	}

	palette, err := d.BlockPalette()
	if err != nil {
		return fmt.Errorf("Validate: %w", err)
	}
	if _, err = d.BlockPositionData(); err != nil {
		return fmt.Errorf("Validate: %w", err)
	}
	if _, err = d.Entities(); err != nil {
		return fmt.Errorf("Validate: %w", err)
	}

	layers, err := d.Layers()
	if err != nil {
		return fmt.Errorf("Validate: %w", err)
	}
	for i, layer := range layers {
		if err = CheckLayer(layer, size, len(palette)); err != nil {
			return fmt.Errorf("Validate: layer %d: %w", i, err)
		}
	}

	return nil
}

// CheckLayer checks one block index layer against the size
// and the palette length of its document.
func CheckLayer(layer define.BlockMatrix, size define.Size, paletteLen int) error {
	if len(layer) != size.Volume() {
		return fmt.Errorf("CheckLayer: %w: %d entries for %v, want %d", define.ErrSchemaMismatch, len(layer), size, size.Volume())
	}
	for offset, value := range layer {
		if value < define.AirIndex || int(value) >= paletteLen {
			return fmt.Errorf("CheckLayer: %w: index %d at offset %d, palette has %d entries", define.ErrPaletteIndexOutOfRange, value, offset, paletteLen)
		}
	}
	return nil
}
