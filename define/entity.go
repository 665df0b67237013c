package define

import (
	"github.com/TriM-Organization/bedrock-structure-editor/nbt"
	"github.com/go-gl/mathgl/mgl32"
)

// EntityRecord is one element of the entity list of a structure.
// Entities have no key of their own, so they are addressed by
// Ordinal, their position in that list.
type EntityRecord struct {
	Ordinal    int
	Identifier string
	// Position is the absolute world position (Pos).
	Position mgl32.Vec3
	// Rotation is the yaw and pitch (Rotation).
	Rotation mgl32.Vec2

	UniqueID    int64
	HasUniqueID bool
	Definitions []string

	// Fields is the whole entity compound, including inventory
	// slots, attributes and anything else the game wrote.
	Fields *nbt.Compound
}

// LocalPosition returns the position of this entity relative to
// the voxel grid of a structure saved at origin.
func (e EntityRecord) LocalPosition(origin Origin) mgl32.Vec3 {
	return e.Position.Sub(origin.Vec3())
}
