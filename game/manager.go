package game

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/rewind/anim"
	"github.com/lixenwraith/rewind/entity"
	"github.com/lixenwraith/rewind/event"
	"github.com/lixenwraith/rewind/input"
	"github.com/lixenwraith/rewind/parameter"
	"github.com/lixenwraith/rewind/sim"
	"github.com/lixenwraith/rewind/status"
	"github.com/lixenwraith/rewind/vmath"
)

// Phase is the manager's coarse play state
type Phase uint8

const (
	PhaseReady Phase = iota
	PhaseAnimating
	PhaseWon
	PhaseFallen
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseAnimating:
		return "animating"
	case PhaseWon:
		return "goal reached"
	case PhaseFallen:
		return "fell, press r"
	default:
		return "unknown"
	}
}

// Options configures input buffering and playback
type Options struct {
	// Grace is how recent buffered input must be at turn end to be consumed
	Grace time.Duration
	Anim  anim.Options
	// Speed is the initial playback multiplier
	Speed float64
}

// DefaultOptions returns the parameter defaults
func DefaultOptions() Options {
	return Options{
		Grace: parameter.InputGraceWindow,
		Anim:  anim.DefaultOptions(),
		Speed: parameter.DefaultSpeedMultiplier,
	}
}

// metrics caches registry pointers written every update
type metrics struct {
	timeline *atomic.Int64
	turn     *atomic.Int64
	echoes   *atomic.Int64
	turns    *atomic.Int64
	rejected *atomic.Int64
	rewinds  *atomic.Int64
	speed    *status.Float
	won      *atomic.Bool
	debug    *atomic.Bool
	state    *status.Text
}

func newMetrics(reg *status.Registry) metrics {
	return metrics{
		timeline: reg.Ints.Get(status.KeyTimeline),
		turn:     reg.Ints.Get(status.KeyTurn),
		echoes:   reg.Ints.Get(status.KeyEchoes),
		turns:    reg.Ints.Get(status.KeyTurns),
		rejected: reg.Ints.Get(status.KeyRejected),
		rewinds:  reg.Ints.Get(status.KeyRewinds),
		speed:    reg.Floats.Get(status.KeySpeed),
		won:      reg.Bools.Get(status.KeyWon),
		debug:    reg.Bools.Get(status.KeyDebug),
		state:    reg.Strings.Get(status.KeyState),
	}
}

// Manager orchestrates input, turn resolution, playback and rewind
// Single-threaded: every method runs on the game loop goroutine
type Manager struct {
	sim   *sim.Simulation
	seq   *anim.Sequencer
	input *input.Adapter
	bus   *event.Bus
	reg   *status.Registry
	clock Clock
	opts  Options
	stats metrics

	// Single-slot buffer for input arriving mid-animation, last writer wins
	buffered   input.Direction
	bufferedAt time.Time

	playing input.Direction
	message string
}

// NewManager wires the adapter, sequencer and bus around a simulation
func NewManager(s *sim.Simulation, in *input.Adapter, bus *event.Bus, reg *status.Registry, clock Clock, opts Options) *Manager {
	m := &Manager{
		sim:   s,
		seq:   anim.NewSequencer(opts.Anim),
		input: in,
		bus:   bus,
		reg:   reg,
		clock: clock,
		opts:  opts,
		stats: newMetrics(reg),
	}
	m.seq.SetSpeed(opts.Speed)

	m.seq.OnFinished = m.onTurnEnd
	m.seq.OnProgress = m.onProgress
	in.OnChanged = m.HandleInput
	in.OnPass = func() { m.HandleInput(input.Pass) }
	bus.SetStamp(func() (int, int) {
		return s.TimelineIndex(), s.TurnCounter()
	})

	m.refresh()
	return m
}

// HandleInput receives the newest logical direction from the adapter
// Ignored while a rewind is pending or debugging; buffered while animating
func (m *Manager) HandleInput(dir input.Direction) {
	if dir == input.None {
		return
	}
	if m.sim.RewindQueued() || m.input.Debugging() {
		return
	}
	if m.seq.Running() {
		m.buffered = dir
		m.bufferedAt = m.clock.Now()
		return
	}
	m.processTurn(dir)
}

// processTurn resolves dir and starts its playback
func (m *Manager) processTurn(dir input.Direction) {
	out := m.sim.ResolveTurn(dir)

	switch out.Status {
	case sim.StatusIdle:
		return

	case sim.StatusRejected:
		m.stats.rejected.Add(1)
		m.message = "rejected: " + out.Reason.String()
		m.bus.Emit(event.GameEvent{
			Type:    event.EventTurnRejected,
			Entity:  m.sim.CurrentPlayer().ID,
			Payload: m.turnPayload(dir, out),
		})
		m.refresh()
		return
	}

	m.stats.turns.Add(1)
	m.message = ""
	m.playing = dir

	m.bus.Emit(event.GameEvent{
		Type:    event.EventTurnStarted,
		Entity:  m.sim.CurrentPlayer().ID,
		Payload: m.turnPayload(dir, out),
	})
	for _, id := range out.Fallen {
		e := m.sim.Entity(id)
		m.bus.Emit(event.GameEvent{
			Type:     event.EventEntityFell,
			Entity:   id,
			Position: vmath.V3FFromCoord(e.Pos),
		})
	}
	if out.GoalReached {
		m.bus.Emit(event.GameEvent{
			Type:     event.EventGoalReached,
			Entity:   m.sim.CurrentPlayer().ID,
			Position: vmath.V3FFromCoord(m.sim.UnitOf(m.sim.CurrentPlayer()).Pos),
		})
	}

	m.seq.Start(out.Turn)
	m.refresh()
}

func (m *Manager) turnPayload(dir input.Direction, out sim.Outcome) *event.TurnPayload {
	p := &event.TurnPayload{
		Direction: dir,
		Echoes:    len(m.sim.LiveEchoes()),
	}
	if out.Turn != nil {
		p.Moved = out.Turn.Moved()
	}
	if out.Status == sim.StatusRejected {
		p.Reason = out.Reason.String()
	}
	return p
}

func (m *Manager) onProgress(id entity.ID, pos vmath.Vec3F) {
	if !m.bus.HasHandlers(event.EventAnimationProgress) {
		return
	}
	active, total := m.seq.Progress()
	m.bus.Emit(event.GameEvent{
		Type:     event.EventAnimationProgress,
		Entity:   id,
		Position: pos,
		Payload: &event.ProgressPayload{
			Group:  active,
			Groups: total,
			Speed:  m.seq.Speed(),
		},
	})
}

// onTurnEnd runs when playback of the last turn completes
// A queued rewind takes precedence over any pending input
func (m *Manager) onTurnEnd() {
	m.bus.Emit(event.GameEvent{
		Type:    event.EventTurnEnded,
		Entity:  m.sim.CurrentPlayer().ID,
		Payload: &event.TurnPayload{Direction: m.playing, Echoes: len(m.sim.LiveEchoes())},
	})
	m.playing = input.None

	if m.sim.RewindQueued() {
		m.rewind()
		return
	}

	if m.sim.Won() {
		m.clearBuffer()
		m.refresh()
		return
	}

	next := input.None
	if m.buffered != input.None && m.clock.Now().Sub(m.bufferedAt) <= m.opts.Grace {
		next = m.buffered
	} else if !m.input.StackEmpty() {
		next = m.input.Newest()
	}
	m.clearBuffer()

	if next == input.None || m.input.Debugging() {
		m.refresh()
		return
	}
	m.processTurn(next)
}

func (m *Manager) rewind() {
	from := m.sim.TimelineIndex()
	m.sim.DoRewind()
	m.clearBuffer()
	m.stats.rewinds.Add(1)
	m.message = "rewound"
	log.Printf("game: rewind %d -> %d", from, m.sim.TimelineIndex())

	m.bus.Emit(event.GameEvent{
		Type:     event.EventRewindTriggered,
		Entity:   m.sim.CurrentPlayer().ID,
		Position: vmath.V3FFromCoord(m.sim.Start()),
		Payload: &event.RewindPayload{
			FromTimeline: from,
			Echoes:       len(m.sim.LiveEchoes()),
		},
	})
	m.refresh()
}

func (m *Manager) clearBuffer() {
	m.buffered = input.None
	m.bufferedAt = time.Time{}
}

// Update advances playback by the frame delta
func (m *Manager) Update(dt time.Duration) {
	m.seq.Update(dt)
}

// Restart discards all timelines and rebuilds the level state
func (m *Manager) Restart() {
	m.seq.Cancel()
	m.sim.Restart()
	m.input.Reset()
	m.clearBuffer()
	m.playing = input.None
	m.message = "restarted"
	m.stats.turns.Store(0)
	m.stats.rejected.Store(0)
	m.stats.rewinds.Store(0)
	log.Printf("game: restart")

	m.bus.Emit(event.GameEvent{
		Type:     event.EventRestarted,
		Entity:   m.sim.CurrentPlayer().ID,
		Position: vmath.V3FFromCoord(m.sim.Start()),
	})
	m.refresh()
}

// ToggleDebug flips the adapter's debugging flag and drops buffered input
func (m *Manager) ToggleDebug() bool {
	on := m.input.ToggleDebugging()
	if on {
		m.clearBuffer()
	}
	m.refresh()
	return on
}

// AdjustSpeed scales playback speed one step up or down, only while debugging
func (m *Manager) AdjustSpeed(up bool) bool {
	if !m.input.Debugging() {
		return false
	}
	speed := m.seq.Speed()
	if up {
		speed *= parameter.SpeedMultiplierStep
	} else {
		speed /= parameter.SpeedMultiplierStep
	}
	m.seq.SetSpeed(speed)
	m.refresh()
	return true
}

// Phase reports the coarse play state
func (m *Manager) Phase() Phase {
	switch {
	case m.seq.Running():
		return PhaseAnimating
	case m.sim.Won():
		return PhaseWon
	case m.sim.CurrentPlayer().Fallen:
		return PhaseFallen
	default:
		return PhaseReady
	}
}

// Positions returns interpolated positions of entities in the playing turn
func (m *Manager) Positions() map[entity.ID]vmath.Vec3F {
	return m.seq.Positions()
}

func (m *Manager) Sim() *sim.Simulation {
	return m.sim
}

func (m *Manager) Bus() *event.Bus {
	return m.bus
}

func (m *Manager) Status() *status.Registry {
	return m.reg
}

func (m *Manager) Speed() float64 {
	return m.seq.Speed()
}

// Buffered returns the single-slot input buffer
func (m *Manager) Buffered() input.Direction {
	return m.buffered
}

func (m *Manager) refresh() {
	m.stats.timeline.Store(int64(m.sim.TimelineIndex()))
	m.stats.turn.Store(int64(m.sim.TurnCounter()))
	m.stats.echoes.Store(int64(len(m.sim.LiveEchoes())))
	m.stats.speed.Store(m.seq.Speed())
	m.stats.won.Store(m.sim.Won())
	m.stats.debug.Store(m.input.Debugging())

	state := m.Phase().String()
	if m.message != "" && m.Phase() == PhaseReady {
		state = m.message
	}
	if m.input.Debugging() {
		state = "debug " + state
	}
	m.stats.state.Store(state)
}
