package anim

import (
	"log"
	"time"

	"github.com/lixenwraith/rewind/entity"
	"github.com/lixenwraith/rewind/parameter"
	"github.com/lixenwraith/rewind/timeline"
	"github.com/lixenwraith/rewind/vmath"
)

// Options configures playback timing
type Options struct {
	// Horizontal is the duration of one horizontal cell transition
	Horizontal time.Duration
	// Vertical is the duration of one falling cell transition
	Vertical time.Duration
	// MergeDisjoint plays adjacent subturns together when their cells do not intersect
	MergeDisjoint bool
}

// DefaultOptions returns the parameter defaults
func DefaultOptions() Options {
	return Options{
		Horizontal: parameter.HorizontalMoveDuration,
		Vertical:   parameter.VerticalMoveDuration,
	}
}

// Group is a set of tracks that play concurrently
type Group struct {
	Echoes []entity.ID
	Tracks []*Track
}

func (g *Group) done() bool {
	for _, tr := range g.Tracks {
		if !tr.done {
			return false
		}
	}
	return true
}

// Sequencer plays a resolved turn as sequential groups, newest subturn first
// Advanced by Update with frame delta time, single-threaded
type Sequencer struct {
	opts   Options
	groups []*Group
	active int
	speed  float64

	running       bool
	finishPending bool

	// OnProgress receives every position update of an active track
	OnProgress func(id entity.ID, pos vmath.Vec3F)
	// OnFinished fires once when the last group completes
	OnFinished func()
}

// NewSequencer creates an idle sequencer
func NewSequencer(opts Options) *Sequencer {
	return &Sequencer{
		opts:  opts,
		speed: parameter.DefaultSpeedMultiplier,
	}
}

// Start builds playback groups from turn and begins playing
// A turn without displacement completes on the next Update
func (s *Sequencer) Start(turn *timeline.Turn) {
	if s.running {
		log.Printf("anim: start while running, dropping group %d/%d", s.active, len(s.groups))
	}

	s.groups = s.groups[:0]
	s.active = 0
	if turn != nil {
		for i := len(turn.SubTurns) - 1; i >= 0; i-- {
			st := &turn.SubTurns[i]
			if st.Empty() {
				continue
			}
			g := &Group{Echoes: []entity.ID{st.Echo}}
			for _, id := range st.Order {
				g.Tracks = append(g.Tracks, newTrack(id, st.From[id], st.Paths[id]))
			}
			s.groups = append(s.groups, g)
		}
	}
	if s.opts.MergeDisjoint {
		s.groups = mergeDisjoint(s.groups)
	}

	s.running = true
	s.finishPending = len(s.groups) == 0
}

// Update advances the active group by dt scaled by the speed multiplier
func (s *Sequencer) Update(dt time.Duration) {
	if !s.running {
		return
	}
	if s.finishPending {
		s.finish()
		return
	}

	scaled := time.Duration(float64(dt) * s.speed)
	g := s.groups[s.active]
	for _, tr := range g.Tracks {
		if tr.done {
			continue
		}
		tr.advance(scaled, s.opts.Horizontal, s.opts.Vertical)
		if s.OnProgress != nil {
			s.OnProgress(tr.Entity, tr.Position(s.opts.Horizontal, s.opts.Vertical))
		}
	}

	if g.done() {
		s.active++
		if s.active >= len(s.groups) {
			s.finish()
		}
	}
}

func (s *Sequencer) finish() {
	s.running = false
	s.finishPending = false
	s.groups = s.groups[:0]
	s.active = 0
	if s.OnFinished != nil {
		s.OnFinished()
	}
}

// Cancel drops the playing turn without firing OnFinished
func (s *Sequencer) Cancel() {
	s.running = false
	s.finishPending = false
	s.groups = s.groups[:0]
	s.active = 0
}

// Running reports playback in progress
func (s *Sequencer) Running() bool {
	return s.running
}

// Progress returns the active group index and the group count
func (s *Sequencer) Progress() (active, total int) {
	return s.active, len(s.groups)
}

// SetSpeed sets the playback multiplier, clamped to the debug range
func (s *Sequencer) SetSpeed(mult float64) {
	if mult < parameter.MinSpeedMultiplier {
		mult = parameter.MinSpeedMultiplier
	}
	if mult > parameter.MaxSpeedMultiplier {
		mult = parameter.MaxSpeedMultiplier
	}
	s.speed = mult
}

func (s *Sequencer) Speed() float64 {
	return s.speed
}

// Positions reports every tracked entity of the playing turn
// Entities waiting for a later group sit at their start cell, finished ones at their final cell
func (s *Sequencer) Positions() map[entity.ID]vmath.Vec3F {
	out := make(map[entity.ID]vmath.Vec3F)
	if !s.running {
		return out
	}

	// Earliest unfinished group containing the entity wins
	for i := len(s.groups) - 1; i >= s.active; i-- {
		for _, tr := range s.groups[i].Tracks {
			if i == s.active {
				out[tr.Entity] = tr.Position(s.opts.Horizontal, s.opts.Vertical)
			} else {
				out[tr.Entity] = vmath.V3FFromCoord(tr.From)
			}
		}
	}
	// Otherwise the latest finished group
	for i := s.active - 1; i >= 0; i-- {
		for _, tr := range s.groups[i].Tracks {
			if _, ok := out[tr.Entity]; !ok {
				out[tr.Entity] = vmath.V3FFromCoord(tr.Final())
			}
		}
	}
	return out
}

// mergeDisjoint folds each group into its predecessor when neither cells nor entities overlap
func mergeDisjoint(groups []*Group) []*Group {
	var merged []*Group
	var cells map[vmath.Coord]bool
	var ids map[entity.ID]bool

	for _, g := range groups {
		if len(merged) > 0 && disjoint(g, cells, ids) {
			last := merged[len(merged)-1]
			last.Echoes = append(last.Echoes, g.Echoes...)
			last.Tracks = append(last.Tracks, g.Tracks...)
		} else {
			merged = append(merged, g)
			cells = make(map[vmath.Coord]bool)
			ids = make(map[entity.ID]bool)
		}
		for _, tr := range g.Tracks {
			ids[tr.Entity] = true
			for _, c := range tr.cells() {
				cells[c] = true
			}
		}
	}
	return merged
}

func disjoint(g *Group, cells map[vmath.Coord]bool, ids map[entity.ID]bool) bool {
	for _, tr := range g.Tracks {
		if ids[tr.Entity] {
			return false
		}
		for _, c := range tr.cells() {
			if cells[c] {
				return false
			}
		}
	}
	return true
}
