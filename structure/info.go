package structure

import (
	"fmt"

	"github.com/TriM-Organization/bedrock-structure-editor/define"
)

// Info is a summary of a document.
type Info struct {
	FormatVersion int32
	Size          define.Size
	WorldOrigin   define.Origin
	PaletteLen    int
	LayerCount    int
	EntityCount   int
	// UnknownBlocks lists, in palette order, the block names the
	// block registry has no runtime ID for. These blocks still
	// round-trip but cannot be placed into a world as they are.
	UnknownBlocks []string
}

// Info summarises the document.
func (d *Document) Info() (result Info, err error) {
	if result.FormatVersion, err = d.FormatVersion(); err != nil {
		return result, fmt.Errorf("Info: %w", err)
	}
	if result.Size, err = d.Size(); err != nil {
		return result, fmt.Errorf("Info: %w", err)
	}
	if result.WorldOrigin, err = d.WorldOrigin(); err != nil {
		return result, fmt.Errorf("Info: %w", err)
	}
	if result.LayerCount, err = d.LayerCount(); err != nil {
		return result, fmt.Errorf("Info: %w", err)
	}
	if result.EntityCount, err = d.EntityCount(); err != nil {
		return result, fmt.Errorf("Info: %w", err)
	}

	palette, err := d.BlockPalette()
	if err != nil {
		return result, fmt.Errorf("Info: %w", err)
	}
	result.PaletteLen = len(palette)

	for _, value := range palette {
		if _, found := value.RuntimeID(); !found {
			result.UnknownBlocks = append(result.UnknownBlocks, value.Name)
		}
	}

	return result, nil
}
