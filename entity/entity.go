package entity

import (
	"github.com/lixenwraith/rewind/vmath"
)

// ID identifies an entity within one simulation, 0 is the empty cell
type ID uint32

// Kind tags the entity variant
type Kind uint8

const (
	KindBlock Kind = iota
	KindPlayer
	KindSuperposition
)

func (k Kind) String() string {
	switch k {
	case KindBlock:
		return "block"
	case KindPlayer:
		return "player"
	case KindSuperposition:
		return "superposition"
	default:
		return "unknown"
	}
}

// Entity is anything placed on the grid
// Exactly one variant payload is non-nil for players and superpositions
type Entity struct {
	ID    ID
	Kind  Kind
	Pos   vmath.Coord
	Flags Flags

	// Hidden entities do not occupy a grid cell
	Hidden bool
	// Fallen entities left the world and are non-interactive
	Fallen bool

	Player *PlayerState
	Super  *SuperState
}

// PlayerState is the payload of KindPlayer
type PlayerState struct {
	// Superposition this echo is merged into, 0 when independent
	Superposition ID
	// Separated is set when the echo split from its superposition this turn
	Separated bool
	// Origin is the timeline in which this echo received live input
	Origin int
}

// SuperState is the payload of KindSuperposition
type SuperState struct {
	// Members ordered oldest echo first
	Members []ID
	// Previous is the superposition this one split from during the current turn
	Previous ID
}

// Has reports whether all bits of f are set
func (e *Entity) Has(f Flags) bool {
	return e.Flags&f == f
}

func (e *Entity) Set(f Flags) {
	e.Flags |= f
}

func (e *Entity) Clear(f Flags) {
	e.Flags &^= f
}

// Moveable reports whether the entity can be pushed or carried
func (e *Entity) Moveable() bool {
	if e.Fallen || e.Hidden {
		return false
	}
	return e.Has(FlagMoveable)
}

func (e *Entity) IsPlayer() bool {
	return e.Kind == KindPlayer
}

func (e *Entity) IsSuperposition() bool {
	return e.Kind == KindSuperposition
}

// SuperpositionOf returns the superposition the entity moves as, 0 if none
func (e *Entity) SuperpositionOf() ID {
	switch e.Kind {
	case KindPlayer:
		return e.Player.Superposition
	case KindSuperposition:
		return e.ID
	default:
		return 0
	}
}

// HasMember reports superposition membership
func (e *Entity) HasMember(id ID) bool {
	if e.Kind != KindSuperposition {
		return false
	}
	for _, m := range e.Super.Members {
		if m == id {
			return true
		}
	}
	return false
}
