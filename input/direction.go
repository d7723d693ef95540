package input

import "github.com/lixenwraith/rewind/vmath"

// Direction is the logical turn input
type Direction uint8

const (
	None Direction = iota
	W
	S
	A
	D
	Pass
)

var directionNames = [...]string{"NONE", "W", "S", "A", "D", "PASS"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "INVALID"
}

// Delta returns the grid displacement of one step
// W/S walk the Y axis, A/D walk the X axis, PASS and NONE stand still
func (d Direction) Delta() vmath.Coord {
	switch d {
	case W:
		return vmath.Coord{Y: 1}
	case S:
		return vmath.Coord{Y: -1}
	case A:
		return vmath.Coord{X: 1}
	case D:
		return vmath.Coord{X: -1}
	default:
		return vmath.Coord{}
	}
}

// IsMove reports a WASD direction
func (d Direction) IsMove() bool {
	return d >= W && d <= D
}

// Keys is the held state of the four movement keys, one bit per direction
type Keys uint8

const (
	KeyW Keys = 1 << iota
	KeyS
	KeyA
	KeyD
)

var keyOrder = [...]struct {
	bit Keys
	dir Direction
}{
	{KeyW, W},
	{KeyS, S},
	{KeyA, A},
	{KeyD, D},
}

// KeyFor maps a movement direction to its held bit, 0 otherwise
func KeyFor(d Direction) Keys {
	for _, k := range keyOrder {
		if k.dir == d {
			return k.bit
		}
	}
	return 0
}
