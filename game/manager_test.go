package game

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/rewind/event"
	"github.com/lixenwraith/rewind/input"
	"github.com/lixenwraith/rewind/level"
	"github.com/lixenwraith/rewind/sim"
	"github.com/lixenwraith/rewind/status"
	"github.com/lixenwraith/rewind/vmath"
)

// open5 is a 5x5 floor with the start tile in the middle, spawn (2,2,1)
const open5 = "5,5,1\n" +
	"11111\n" +
	"11111\n" +
	"11211\n" +
	"11111\n" +
	"11111\n"

// rewind3 has a rewind tile directly W of the start tile
const rewind3 = "3,3,1\n" +
	"111\n" +
	"124\n" +
	"111\n"

// goal3 has a goal tile directly W of the start tile
const goal3 = "3,3,1\n" +
	"111\n" +
	"123\n" +
	"111\n"

// hole3 has a hole directly W of the start tile
const hole3 = "3,3,1\n" +
	"111\n" +
	"120\n" +
	"111\n"

// wall3 has a wall beside the spawn cell, W of the start
const wall3 = "3,3,2\n" +
	"111\n" +
	"121\n" +
	"111\n" +
	"000\n" +
	"001\n" +
	"000\n"

// longTime outlasts any single turn's playback
const longTime = 10 * time.Second

type fixture struct {
	m      *Manager
	in     *input.Adapter
	clock  *MockClock
	events []event.GameEvent
}

func newFixture(t *testing.T, src string) *fixture {
	t.Helper()
	lv, err := level.Parse(strings.NewReader(src))
	require.NoError(t, err)
	s, err := sim.New(lv, sim.DefaultOptions())
	require.NoError(t, err)

	f := &fixture{
		in:    input.NewAdapter(),
		clock: NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	bus := event.NewBus()
	f.m = NewManager(s, f.in, bus, status.NewRegistry(), f.clock, DefaultOptions())
	bus.Subscribe(func(ev event.GameEvent) {
		f.events = append(f.events, ev)
	}, event.AllTypes()...)
	return f
}

func (f *fixture) count(et event.EventType) int {
	n := 0
	for _, ev := range f.events {
		if ev.Type == et {
			n++
		}
	}
	return n
}

func (f *fixture) types() []event.EventType {
	var out []event.EventType
	for _, ev := range f.events {
		if ev.Type != event.EventAnimationProgress {
			out = append(out, ev.Type)
		}
	}
	return out
}

func TestManager_TapResolvesAndAnimates(t *testing.T) {
	f := newFixture(t, open5)
	s := f.m.Sim()

	f.in.Tap(input.W)

	assert.Equal(t, 1, s.TurnCounter())
	assert.Equal(t, PhaseAnimating, f.m.Phase())
	assert.Equal(t, []event.EventType{event.EventTurnStarted}, f.types())

	pos := f.m.Positions()
	require.Contains(t, pos, s.CurrentPlayer().ID)
	assert.Equal(t, vmath.Vec3F{X: 2, Y: 2, Z: 1}, pos[s.CurrentPlayer().ID])

	f.m.Update(longTime)
	assert.Equal(t, PhaseReady, f.m.Phase())
	assert.Equal(t, vmath.C3(2, 3, 1), s.CurrentPlayer().Pos)
	assert.Equal(t, []event.EventType{event.EventTurnStarted, event.EventTurnEnded}, f.types())
	assert.Positive(t, f.count(event.EventAnimationProgress))
}

func TestManager_NoneIsIdempotent(t *testing.T) {
	f := newFixture(t, open5)
	s := f.m.Sim()
	before := s.CurrentPlayer().Pos

	f.m.HandleInput(input.None)
	f.m.Update(longTime)

	assert.Equal(t, 0, s.TurnCounter())
	assert.Equal(t, before, s.CurrentPlayer().Pos)
	assert.Empty(t, f.events)
	assert.Equal(t, PhaseReady, f.m.Phase())
}

func TestManager_RewindRunsExactlyOnce(t *testing.T) {
	f := newFixture(t, rewind3)
	s := f.m.Sim()

	f.in.Tap(input.W)
	require.True(t, s.RewindQueued())

	// Input while a rewind is pending is dropped, not buffered
	f.in.Tap(input.S)
	assert.Equal(t, input.None, f.m.Buffered())

	f.m.Update(longTime)
	assert.Equal(t, 1, f.count(event.EventRewindTriggered))
	assert.False(t, s.RewindQueued())
	assert.Equal(t, 1, s.TimelineIndex())
	assert.Equal(t, 0, s.TurnCounter())
	assert.Len(t, s.LiveEchoes(), 2)

	f.m.Update(longTime)
	f.m.Update(longTime)
	assert.Equal(t, 1, f.count(event.EventRewindTriggered))
	assert.Equal(t, []event.EventType{
		event.EventTurnStarted,
		event.EventTurnEnded,
		event.EventRewindTriggered,
	}, f.types())

	var rw *event.RewindPayload
	for _, ev := range f.events {
		if ev.Type == event.EventRewindTriggered {
			rw = ev.Payload.(*event.RewindPayload)
		}
	}
	require.NotNil(t, rw)
	assert.Equal(t, 0, rw.FromTimeline)
	assert.Equal(t, 2, rw.Echoes)

	v, _ := f.m.Status().Lookup(status.KeyRewinds)
	assert.Equal(t, "1", v)
}

func TestManager_BufferedInputWithinGrace(t *testing.T) {
	f := newFixture(t, open5)
	s := f.m.Sim()

	f.in.Tap(input.W)
	f.m.Update(150 * time.Millisecond)
	f.in.Tap(input.A)
	assert.Equal(t, input.A, f.m.Buffered())
	assert.Equal(t, 1, s.TurnCounter(), "buffered, not resolved")

	f.clock.Advance(DefaultOptions().Grace / 2)
	f.m.Update(longTime)

	assert.Equal(t, 2, s.TurnCounter())
	assert.Equal(t, PhaseAnimating, f.m.Phase())
	assert.Equal(t, input.None, f.m.Buffered())

	f.m.Update(longTime)
	assert.Equal(t, vmath.C3(3, 3, 1), s.CurrentPlayer().Pos)
}

func TestManager_StaleBufferDropped(t *testing.T) {
	f := newFixture(t, open5)
	s := f.m.Sim()

	f.in.Tap(input.W)
	f.in.Tap(input.A)
	f.in.Tap(input.D)
	assert.Equal(t, input.D, f.m.Buffered(), "last writer wins")

	f.clock.Advance(DefaultOptions().Grace + time.Millisecond)
	f.m.Update(longTime)

	assert.Equal(t, 1, s.TurnCounter())
	assert.Equal(t, PhaseReady, f.m.Phase())
	assert.Equal(t, input.None, f.m.Buffered())
}

func TestManager_HeldKeyRepeats(t *testing.T) {
	f := newFixture(t, open5)
	s := f.m.Sim()

	f.in.Press(input.W)
	assert.Equal(t, 1, s.TurnCounter())

	// Turn end falls back to the held stack
	f.m.Update(longTime)
	assert.Equal(t, 2, s.TurnCounter())

	f.in.Release(input.W)
	f.m.Update(longTime)
	assert.Equal(t, 2, s.TurnCounter())
	assert.Equal(t, vmath.C3(2, 4, 1), s.CurrentPlayer().Pos)
	assert.Equal(t, PhaseReady, f.m.Phase())
}

func TestManager_PassKey(t *testing.T) {
	f := newFixture(t, open5)
	s := f.m.Sim()
	before := s.CurrentPlayer().Pos

	f.in.Tap(input.Pass)

	assert.Equal(t, 1, s.TurnCounter())
	f.m.Update(longTime)
	assert.Equal(t, before, s.CurrentPlayer().Pos)
	assert.Equal(t, 1, f.count(event.EventTurnEnded))
}

func TestManager_RejectedTurn(t *testing.T) {
	f := newFixture(t, wall3)
	s := f.m.Sim()

	f.in.Tap(input.W)

	assert.Equal(t, 0, s.TurnCounter())
	assert.Equal(t, PhaseReady, f.m.Phase())
	require.Equal(t, []event.EventType{event.EventTurnRejected}, f.types())
	p := f.events[0].Payload.(*event.TurnPayload)
	assert.Equal(t, input.W, p.Direction)
	assert.Equal(t, "blocked", p.Reason)

	v, _ := f.m.Status().Lookup(status.KeyRejected)
	assert.Equal(t, "1", v)
	v, _ = f.m.Status().Lookup(status.KeyState)
	assert.Equal(t, "rejected: blocked", v)
}

func TestManager_DebuggingSuspendsTurns(t *testing.T) {
	f := newFixture(t, open5)
	s := f.m.Sim()

	assert.False(t, f.m.AdjustSpeed(true), "speed locked outside debug")
	require.True(t, f.m.ToggleDebug())

	f.in.Tap(input.W)
	assert.Equal(t, 0, s.TurnCounter())

	assert.True(t, f.m.AdjustSpeed(true))
	assert.Equal(t, 2.0, f.m.Speed())
	for i := 0; i < 10; i++ {
		f.m.AdjustSpeed(false)
	}
	assert.Equal(t, 0.25, f.m.Speed())

	v, _ := f.m.Status().Lookup(status.KeyDebug)
	assert.Equal(t, "true", v)

	require.False(t, f.m.ToggleDebug())
	f.in.Tap(input.W)
	assert.Equal(t, 1, s.TurnCounter())
}

func TestManager_GoalStopsPlay(t *testing.T) {
	f := newFixture(t, goal3)
	s := f.m.Sim()

	f.in.Tap(input.W)
	assert.Equal(t, 1, f.count(event.EventGoalReached))
	f.in.Tap(input.S)
	f.m.Update(longTime)

	assert.Equal(t, PhaseWon, f.m.Phase())
	assert.Equal(t, 1, s.TurnCounter())

	f.in.Tap(input.S)
	assert.Equal(t, 1, f.count(event.EventTurnRejected))
	assert.Equal(t, PhaseWon, f.m.Phase())
}

func TestManager_FallThenRestart(t *testing.T) {
	f := newFixture(t, hole3)
	s := f.m.Sim()
	first := s.CurrentPlayer()

	f.in.Tap(input.W)
	assert.Equal(t, 1, f.count(event.EventEntityFell))
	f.m.Update(longTime)
	assert.Equal(t, PhaseFallen, f.m.Phase())

	f.m.Restart()

	assert.Equal(t, 1, f.count(event.EventRestarted))
	assert.Equal(t, PhaseReady, f.m.Phase())
	assert.Equal(t, 0, s.TurnCounter())
	assert.Equal(t, 0, s.TimelineIndex())
	assert.False(t, s.CurrentPlayer().Fallen)
	assert.NotSame(t, first, s.CurrentPlayer())
	assert.Equal(t, s.Start(), s.CurrentPlayer().Pos)
}

func TestManager_RestartMidAnimation(t *testing.T) {
	f := newFixture(t, open5)

	f.in.Tap(input.W)
	f.m.Update(100 * time.Millisecond)
	f.m.Restart()

	assert.Equal(t, PhaseReady, f.m.Phase())
	assert.Empty(t, f.m.Positions())
	f.m.Update(longTime)
	assert.Equal(t, 0, f.count(event.EventTurnEnded))
}

func TestManager_EventsStamped(t *testing.T) {
	f := newFixture(t, rewind3)

	f.in.Tap(input.W)
	f.m.Update(longTime)

	for _, ev := range f.events {
		assert.Equal(t, f.m.Bus().Session(), ev.Session)
	}
	started := f.events[0]
	require.Equal(t, event.EventTurnStarted, started.Type)
	assert.Equal(t, 0, started.Timeline)
	assert.Equal(t, 1, started.Turn)

	last := f.events[len(f.events)-1]
	require.Equal(t, event.EventRewindTriggered, last.Type)
	assert.Equal(t, 1, last.Timeline)
	assert.Equal(t, 0, last.Turn)
}
