package library

// DatabaseRootKey is the bbolt bucket that holds every key.
var DatabaseRootKey = []byte("structure_library")

const (
	// KeyStructurePrefix + name holds the record of that structure.
	KeyStructurePrefix = "s:"
	// KeyStructureCount holds how many structures are stored,
	// as a little endian uint32.
	KeyStructureCount = "structure_count"
)

// structureKey returns the key of the record of name.
func structureKey(name string) []byte {
	return []byte(KeyStructurePrefix + name)
}
