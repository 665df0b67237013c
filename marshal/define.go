package marshal

const (
	MatrixStateEmpty uint8 = iota
	MatrixStateNotEmpty
)

// Layer diff files start with this magic, a format version and
// the size of the grid as three little endian int32.
var layersDiffMagic = [4]byte{'M', 'C', 'L', 'D'}

const (
	layersDiffVersion    uint8 = 1
	layersDiffHeaderSize       = 4 + 1 + 3*4
)

// Patches start with this magic. It is followed by the
// xxhash of the older and the newer export.
var patchMagic = [4]byte{'M', 'C', 'S', 'P'}

const patchHeaderSize = 4 + 8 + 8
