package vmath

import "fmt"

// Coord is an integer voxel coordinate
// Comparable, usable directly as a map key
type Coord struct {
	X, Y, Z int
}

// Unit steps on the vertical axis
var (
	Up   = Coord{0, 0, 1}
	Down = Coord{0, 0, -1}
)

// C3 creates a Coord from components
func C3(x, y, z int) Coord {
	return Coord{X: x, Y: y, Z: z}
}

func (c Coord) Add(o Coord) Coord {
	return Coord{c.X + o.X, c.Y + o.Y, c.Z + o.Z}
}

func (c Coord) Sub(o Coord) Coord {
	return Coord{c.X - o.X, c.Y - o.Y, c.Z - o.Z}
}

// IsZero reports whether all components are zero
func (c Coord) IsZero() bool {
	return c.X == 0 && c.Y == 0 && c.Z == 0
}

// IsVertical reports a pure Z displacement
func (c Coord) IsVertical() bool {
	return c.X == 0 && c.Y == 0 && c.Z != 0
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}
