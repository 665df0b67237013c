package define

import "errors"

var (
	// ErrSchemaMismatch means the tag tree decoded fine, but a field
	// the structure format requires is absent or of the wrong kind.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrOutOfRange means a coordinate, offset, layer or ordinal is
	// outside the bounds of the document.
	ErrOutOfRange = errors.New("out of range")
	// ErrPaletteIndexOutOfRange means a voxel refers to a palette entry
	// that does not exist, so the document is inconsistent.
	ErrPaletteIndexOutOfRange = errors.New("palette index out of range")
)
