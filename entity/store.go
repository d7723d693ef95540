package entity

import (
	"github.com/lixenwraith/rewind/vmath"
)

// Store owns every entity of a simulation
// IDs are dense and allocated sequentially starting at 1
type Store struct {
	entities []*Entity // index = ID, slot 0 unused
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		entities: make([]*Entity, 1, 64),
	}
}

func (s *Store) create(kind Kind, pos vmath.Coord, flags Flags) *Entity {
	e := &Entity{
		ID:    ID(len(s.entities)),
		Kind:  kind,
		Pos:   pos,
		Flags: flags,
	}
	s.entities = append(s.entities, e)
	return e
}

// NewBlock creates a static or moveable block
func (s *Store) NewBlock(pos vmath.Coord, flags Flags) *Entity {
	return s.create(KindBlock, pos, flags)
}

// NewPlayer creates an echo whose live-input timeline is origin
func (s *Store) NewPlayer(pos vmath.Coord, origin int) *Entity {
	e := s.create(KindPlayer, pos, FlagMoveable)
	e.Player = &PlayerState{Origin: origin}
	return e
}

// NewSuperposition creates a hidden, memberless superposition
func (s *Store) NewSuperposition() *Entity {
	e := s.create(KindSuperposition, vmath.Coord{}, FlagMoveable)
	e.Hidden = true
	e.Super = &SuperState{}
	return e
}

// Get returns nil for 0 or unknown IDs
func (s *Store) Get(id ID) *Entity {
	if id == 0 || int(id) >= len(s.entities) {
		return nil
	}
	return s.entities[id]
}

// Len returns the number of allocated entities
func (s *Store) Len() int {
	return len(s.entities) - 1
}

// Each visits entities in ID order
func (s *Store) Each(fn func(e *Entity)) {
	for _, e := range s.entities[1:] {
		fn(e)
	}
}

// Players returns echoes in spawn order, oldest first
func (s *Store) Players() []*Entity {
	return s.ofKind(KindPlayer)
}

// Superpositions returns all superposition instances, hidden ones included
func (s *Store) Superpositions() []*Entity {
	return s.ofKind(KindSuperposition)
}

func (s *Store) ofKind(k Kind) []*Entity {
	var out []*Entity
	for _, e := range s.entities[1:] {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}
