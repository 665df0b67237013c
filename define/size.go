package define

import "github.com/go-gl/mathgl/mgl32"

type (
	// Size is the extent of the voxel grid along x, y and z.
	Size [3]int32
	// Origin is the world position the structure was saved from.
	// Entity positions are absolute, so subtracting Origin puts
	// them into grid-local space.
	Origin [3]int32
	// BlockPos is a grid-local voxel coordinate.
	BlockPos [3]int32
)

// X returns the extent along the X axis.
func (s Size) X() int32 { return s[0] }

// Y returns the extent along the Y axis.
func (s Size) Y() int32 { return s[1] }

// Z returns the extent along the Z axis.
func (s Size) Z() int32 { return s[2] }

// Volume returns sizeX*sizeY*sizeZ, which is also the length every
// block index layer must have. A negative extent yields 0.
func (s Size) Volume() int {
	if s[0] < 0 || s[1] < 0 || s[2] < 0 {
		return 0
	}
	return int(int64(s[0]) * int64(s[1]) * int64(s[2]))
}

// Contains reports whether pos lies inside the grid.
func (s Size) Contains(pos BlockPos) bool {
	for i := range 3 {
		if pos[i] < 0 || pos[i] >= s[i] {
			return false
		}
	}
	return true
}

// Center returns the centre of the grid, which is what a
// camera should look at to frame the whole structure.
func (s Size) Center() mgl32.Vec3 {
	return mgl32.Vec3{float32(s[0]) / 2, float32(s[1]) / 2, float32(s[2]) / 2}
}

// Vec3 returns o as a float vector.
func (o Origin) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(o[0]), float32(o[1]), float32(o[2])}
}

// X returns the X-axis coordinate of this block.
func (p BlockPos) X() int32 { return p[0] }

// Y returns the Y-axis coordinate of this block.
func (p BlockPos) Y() int32 { return p[1] }

// Z returns the Z-axis coordinate of this block.
func (p BlockPos) Z() int32 { return p[2] }

// Center returns the centre of the unit cube at p.
func (p BlockPos) Center() mgl32.Vec3 {
	return mgl32.Vec3{float32(p[0]) + 0.5, float32(p[1]) + 0.5, float32(p[2]) + 0.5}
}
