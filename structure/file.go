package structure

import (
	"fmt"
	"strings"

	"github.com/TriM-Organization/bedrock-structure-editor/nbt"
)

// Extension is the file name suffix of exported structures.
const Extension = ".mcstructure"

// Import decodes a structure file. The optional 8-byte preamble is
// skipped, the rest must be one little-endian root compound, and
// nothing may follow it. Import never returns a partial document.
func Import(data []byte) (*Document, error) {
	root, err := nbt.Decode(nbt.SkipPreamble(data), nbt.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("Import: %w", err)
	}

	doc, err := FromTag(root)
	if err != nil {
		return nil, fmt.Errorf("Import: %w", err)
	}
	return doc, nil
}

// Export encodes doc little-endian without any preamble
// or compression.
func Export(doc *Document) ([]byte, error) {
	data, err := nbt.Encode(doc.NamedTag(), nbt.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("Export: %w", err)
	}
	return data, nil
}

// HasExtension reports whether name ends with Extension.
// The comparison is case-sensitive, so house.MCSTRUCTURE does not count.
func HasExtension(name string) bool {
	return strings.HasSuffix(name, Extension)
}

// EnsureExtension returns name with Extension appended
// unless it already has it.
func EnsureExtension(name string) string {
	if HasExtension(name) {
		return name
	}
	return name + Extension
}
