package grid

import (
	"log"

	"github.com/lixenwraith/rewind/entity"
	"github.com/lixenwraith/rewind/vmath"
)

// Grid is a dense 3D voxel lookup holding at most one occupant per cell
type Grid struct {
	Width  int
	Length int
	Height int
	cells  []entity.ID // 1D array: index = x + y*Width + z*Width*Length
}

// NewGrid creates an empty grid, non-positive dimensions yield a zero-cell grid
func NewGrid(width, length, height int) *Grid {
	if width < 0 || length < 0 || height < 0 {
		width, length, height = 0, 0, 0
	}
	return &Grid{
		Width:  width,
		Length: length,
		Height: height,
		cells:  make([]entity.ID, width*length*height),
	}
}

// InBounds reports whether c addresses a cell. O(1), no logging
func (g *Grid) InBounds(c vmath.Coord) bool {
	return c.X >= 0 && c.X < g.Width &&
		c.Y >= 0 && c.Y < g.Length &&
		c.Z >= 0 && c.Z < g.Height
}

// Index returns the flat cell index, -1 if out of bounds
func (g *Grid) Index(c vmath.Coord) int {
	if !g.InBounds(c) {
		return -1
	}
	return c.X + c.Y*g.Width + c.Z*g.Width*g.Length
}

// QueryAt returns the occupant of c, 0 if empty
// Out of bounds returns 0 and logs
func (g *Grid) QueryAt(c vmath.Coord) entity.ID {
	idx := g.Index(c)
	if idx < 0 {
		log.Printf("grid: query out of bounds %v (size %dx%dx%d)", c, g.Width, g.Length, g.Height)
		return 0
	}
	return g.cells[idx]
}

// SetAt stores id at c, 0 clears the cell
// Out of bounds is a no-op and logs
func (g *Grid) SetAt(c vmath.Coord, id entity.ID) {
	idx := g.Index(c)
	if idx < 0 {
		log.Printf("grid: set out of bounds %v id=%d (size %dx%dx%d)", c, id, g.Width, g.Length, g.Height)
		return
	}
	g.cells[idx] = id
}

// Empty reports an in-bounds, unoccupied cell
func (g *Grid) Empty(c vmath.Coord) bool {
	idx := g.Index(c)
	return idx >= 0 && g.cells[idx] == 0
}

// Occupied visits every non-empty cell in index order
func (g *Grid) Occupied(fn func(c vmath.Coord, id entity.ID)) {
	plane := g.Width * g.Length
	for i, id := range g.cells {
		if id == 0 {
			continue
		}
		z := i / plane
		rem := i % plane
		fn(vmath.Coord{X: rem % g.Width, Y: rem / g.Width, Z: z}, id)
	}
}

// Count returns the number of occupied cells
func (g *Grid) Count() int {
	n := 0
	for _, id := range g.cells {
		if id != 0 {
			n++
		}
	}
	return n
}

// Clear empties every cell
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = 0
	}
}
