package sim

import (
	"errors"
	"fmt"
	"log"

	"github.com/lixenwraith/rewind/entity"
	"github.com/lixenwraith/rewind/grid"
	"github.com/lixenwraith/rewind/level"
	"github.com/lixenwraith/rewind/parameter"
	"github.com/lixenwraith/rewind/timeline"
	"github.com/lixenwraith/rewind/vmath"
)

var (
	ErrOptions      = errors.New("invalid simulation options")
	ErrStartBlocked = errors.New("start cell is not empty")
)

// Options configures world bounds
type Options struct {
	// FloorZ is the lowest occupiable Z, falling below it removes the entity
	FloorZ int
	// Headroom is the number of empty levels above the loaded level, at least 1
	Headroom int
}

// DefaultOptions returns the parameter defaults
func DefaultOptions() Options {
	return Options{
		FloorZ:   parameter.DefaultFloorZ,
		Headroom: parameter.DefaultHeadroom,
	}
}

type crateHome struct {
	id   entity.ID
	home vmath.Coord
}

// pendingSite holds units ejected from one superposition that have not yet left its cell
type pendingSite struct {
	at     vmath.Coord
	origin entity.ID
	units  []*entity.Entity
}

// Simulation owns the grid, entities and timelines of one level session
// Not safe for concurrent use
type Simulation struct {
	level *level.Level
	opts  Options

	grid    *grid.Grid
	store   *entity.Store
	history *timeline.History
	current *entity.Entity
	crates  []crateHome

	rewindQueue []entity.ID
	won         bool

	// Per-turn scratch
	sites     []*pendingSite
	pendingAt map[entity.ID]vmath.Coord
	out       *Outcome
}

// New builds a simulation from a parsed level
func New(lv *level.Level, opts Options) (*Simulation, error) {
	if lv == nil {
		return nil, fmt.Errorf("%w: nil level", ErrOptions)
	}
	if opts.Headroom < 1 {
		return nil, fmt.Errorf("%w: headroom %d < 1", ErrOptions, opts.Headroom)
	}
	height := lv.Height + opts.Headroom
	if opts.FloorZ < 0 || opts.FloorZ >= height {
		return nil, fmt.Errorf("%w: floor %d outside [0,%d)", ErrOptions, opts.FloorZ, height)
	}
	if lv.At(lv.Start) != level.CodeEmpty {
		return nil, fmt.Errorf("%w: %v", ErrStartBlocked, lv.Start)
	}

	s := &Simulation{
		level: lv,
		opts:  opts,
	}
	s.build()
	return s, nil
}

// build populates a fresh world from the level
func (s *Simulation) build() {
	lv := s.level
	s.grid = grid.NewGrid(lv.Width, lv.Length, lv.Height+s.opts.Headroom)
	s.store = entity.NewStore()
	s.history = timeline.NewHistory()
	s.crates = s.crates[:0]
	s.rewindQueue = s.rewindQueue[:0]
	s.won = false

	lv.Each(func(c vmath.Coord, code level.Code) {
		var flags entity.Flags
		switch code {
		case level.CodeStart:
			flags = entity.FlagStart
		case level.CodeGoal:
			flags = entity.FlagGoal
		case level.CodeRewind:
			flags = entity.FlagRewind
		case level.CodeCrate:
			flags = entity.FlagMoveable
		}
		e := s.store.NewBlock(c, flags)
		s.grid.SetAt(c, e.ID)
		if code == level.CodeCrate {
			s.crates = append(s.crates, crateHome{id: e.ID, home: c})
		}
	})

	s.current = s.spawnCurrent(0)
	s.grid.SetAt(s.current.Pos, s.current.ID)
}

func (s *Simulation) spawnCurrent(origin int) *entity.Entity {
	p := s.store.NewPlayer(s.level.Start, origin)
	p.Set(entity.FlagCurrentPlayer)
	return p
}

// Restart discards every echo and timeline and rebuilds the level state
func (s *Simulation) Restart() {
	s.build()
	log.Printf("sim: restarted level %dx%dx%d", s.level.Width, s.level.Length, s.level.Height)
}

// SpawnBlock places a block on an empty cell, for tests and editors
func (s *Simulation) SpawnBlock(c vmath.Coord, flags entity.Flags) (*entity.Entity, error) {
	if !s.grid.Empty(c) {
		return nil, fmt.Errorf("cannot spawn block at %v: cell occupied or out of bounds", c)
	}
	e := s.store.NewBlock(c, flags)
	s.grid.SetAt(c, e.ID)
	if flags&entity.FlagMoveable != 0 {
		s.crates = append(s.crates, crateHome{id: e.ID, home: c})
	}
	return e, nil
}

func (s *Simulation) Grid() *grid.Grid {
	return s.grid
}

func (s *Simulation) Store() *entity.Store {
	return s.store
}

func (s *Simulation) History() *timeline.History {
	return s.history
}

func (s *Simulation) Level() *level.Level {
	return s.level
}

// Entity returns nil for unknown IDs
func (s *Simulation) Entity(id entity.ID) *entity.Entity {
	return s.store.Get(id)
}

// CurrentPlayer returns the echo receiving live input
func (s *Simulation) CurrentPlayer() *entity.Entity {
	return s.current
}

// TurnCounter is the number of turns resolved in the current timeline
func (s *Simulation) TurnCounter() int {
	return s.history.TurnCounter()
}

// TimelineIndex is the timeline counter, 0 before the first rewind
func (s *Simulation) TimelineIndex() int {
	return s.history.CurrentIndex()
}

// Won reports that the goal was reached
func (s *Simulation) Won() bool {
	return s.won
}

// Start is the spawn cell
func (s *Simulation) Start() vmath.Coord {
	return s.level.Start
}

func (s *Simulation) FloorZ() int {
	return s.opts.FloorZ
}

// LiveEchoes returns every non-fallen player, oldest first, current player last
func (s *Simulation) LiveEchoes() []*entity.Entity {
	var out []*entity.Entity
	for _, p := range s.store.Players() {
		if !p.Fallen {
			out = append(out, p)
		}
	}
	return out
}

// UnitOf returns the entity a player moves as: its superposition when merged, else itself
func (s *Simulation) UnitOf(p *entity.Entity) *entity.Entity {
	if p.IsPlayer() && p.Player.Superposition != 0 {
		if sup := s.store.Get(p.Player.Superposition); sup != nil {
			return sup
		}
	}
	return p
}
