package anim

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/rewind/entity"
	"github.com/lixenwraith/rewind/input"
	"github.com/lixenwraith/rewind/timeline"
	"github.com/lixenwraith/rewind/vmath"
)

const (
	h = 300 * time.Millisecond
	v = 100 * time.Millisecond
)

func testOptions() Options {
	return Options{Horizontal: h, Vertical: v}
}

// twoEchoTurn: echo 1 (oldest) steps W, echo 2 (current) steps A then falls one cell
func twoEchoTurn() *timeline.Turn {
	older := timeline.NewSubTurn(1, input.W)
	older.Record(1, vmath.C3(0, 0, 1), vmath.C3(0, 1, 1))

	newer := timeline.NewSubTurn(2, input.A)
	newer.Record(2, vmath.C3(3, 3, 2), vmath.C3(4, 3, 2))
	newer.Record(2, vmath.C3(4, 3, 2), vmath.C3(4, 3, 1))

	return &timeline.Turn{SubTurns: []timeline.SubTurn{older, newer}}
}

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestSequencer_NewestGroupFirst(t *testing.T) {
	s := NewSequencer(testOptions())
	s.Start(twoEchoTurn())
	require.True(t, s.Running())

	active, total := s.Progress()
	assert.Equal(t, 0, active)
	assert.Equal(t, 2, total)

	// Halfway through the newest echo's horizontal step, the older echo waits at its start
	s.Update(150 * time.Millisecond)
	pos := s.Positions()
	if diff := cmp.Diff(vmath.Vec3F{X: 3.5, Y: 3, Z: 2}, pos[2], approx); diff != "" {
		t.Errorf("echo 2 position (-want +got):\n%s", diff)
	}
	assert.Equal(t, vmath.Vec3F{X: 0, Y: 0, Z: 1}, pos[1])
}

func TestSequencer_VerticalTransitionsAreShorter(t *testing.T) {
	s := NewSequencer(testOptions())
	s.Start(twoEchoTurn())

	// 300ms horizontal + 50ms into the 100ms fall
	s.Update(350 * time.Millisecond)
	pos := s.Positions()
	if diff := cmp.Diff(vmath.Vec3F{X: 4, Y: 3, Z: 1.5}, pos[2], approx); diff != "" {
		t.Errorf("falling position (-want +got):\n%s", diff)
	}

	s.Update(50 * time.Millisecond)
	active, _ := s.Progress()
	assert.Equal(t, 1, active, "first group complete after 400ms")
}

func TestSequencer_FinishFiresOnce(t *testing.T) {
	s := NewSequencer(testOptions())
	finished := 0
	s.OnFinished = func() { finished++ }
	s.Start(twoEchoTurn())

	for i := 0; i < 100; i++ {
		s.Update(16 * time.Millisecond)
	}

	assert.Equal(t, 1, finished)
	assert.False(t, s.Running())
	assert.Empty(t, s.Positions())
}

func TestSequencer_GroupsRunSequentially(t *testing.T) {
	s := NewSequencer(testOptions())
	s.Start(twoEchoTurn())

	// A huge step finishes only the active group
	s.Update(10 * time.Second)
	active, _ := s.Progress()
	assert.Equal(t, 1, active)
	assert.True(t, s.Running())

	pos := s.Positions()
	assert.Equal(t, vmath.Vec3F{X: 4, Y: 3, Z: 1}, pos[2], "finished entity at its final cell")
	assert.Equal(t, vmath.Vec3F{X: 0, Y: 0, Z: 1}, pos[1])

	s.Update(10 * time.Second)
	assert.False(t, s.Running())
}

func TestSequencer_EmptyTurnFinishesOnNextUpdate(t *testing.T) {
	s := NewSequencer(testOptions())
	finished := 0
	s.OnFinished = func() { finished++ }

	turn := &timeline.Turn{SubTurns: []timeline.SubTurn{timeline.NewSubTurn(1, input.Pass)}}
	s.Start(turn)
	assert.Equal(t, 0, finished, "never synchronous in Start")
	assert.True(t, s.Running())

	s.Update(0)
	assert.Equal(t, 1, finished)
	assert.False(t, s.Running())
}

func TestSequencer_ConcurrentWithinGroup(t *testing.T) {
	st := timeline.NewSubTurn(1, input.W)
	st.Record(2, vmath.C3(0, 1, 1), vmath.C3(0, 2, 1))
	st.Record(1, vmath.C3(0, 0, 1), vmath.C3(0, 1, 1))
	turn := &timeline.Turn{SubTurns: []timeline.SubTurn{st}}

	var progressed []entity.ID
	s := NewSequencer(testOptions())
	s.OnProgress = func(id entity.ID, _ vmath.Vec3F) { progressed = append(progressed, id) }
	s.Start(turn)

	s.Update(150 * time.Millisecond)
	assert.Equal(t, []entity.ID{2, 1}, progressed, "pushed entity and pusher move in the same frame")

	pos := s.Positions()
	if diff := cmp.Diff(vmath.Vec3F{X: 0, Y: 1.5, Z: 1}, pos[2], approx); diff != "" {
		t.Errorf("crate (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(vmath.Vec3F{X: 0, Y: 0.5, Z: 1}, pos[1], approx); diff != "" {
		t.Errorf("pusher (-want +got):\n%s", diff)
	}
}

func TestSequencer_SpeedMultiplier(t *testing.T) {
	s := NewSequencer(testOptions())
	s.SetSpeed(2)
	assert.Equal(t, 2.0, s.Speed())

	s.Start(twoEchoTurn())
	s.Update(75 * time.Millisecond)
	if diff := cmp.Diff(vmath.Vec3F{X: 3.5, Y: 3, Z: 2}, s.Positions()[2], approx); diff != "" {
		t.Errorf("double speed position (-want +got):\n%s", diff)
	}

	s.SetSpeed(100)
	assert.Equal(t, 4.0, s.Speed(), "clamped to max")
	s.SetSpeed(0)
	assert.Equal(t, 0.25, s.Speed(), "clamped to min")
}

func TestSequencer_MergeDisjoint(t *testing.T) {
	opts := testOptions()
	opts.MergeDisjoint = true
	s := NewSequencer(opts)
	s.Start(twoEchoTurn())

	_, total := s.Progress()
	assert.Equal(t, 1, total, "non-intersecting subturns play together")

	s.Update(150 * time.Millisecond)
	pos := s.Positions()
	if diff := cmp.Diff(vmath.Vec3F{X: 0, Y: 0.5, Z: 1}, pos[1], approx); diff != "" {
		t.Errorf("older echo (-want +got):\n%s", diff)
	}
}

func TestSequencer_MergeDisjointKeepsIntersectingApart(t *testing.T) {
	a := timeline.NewSubTurn(1, input.W)
	a.Record(1, vmath.C3(0, 0, 1), vmath.C3(0, 1, 1))
	b := timeline.NewSubTurn(2, input.S)
	b.Record(2, vmath.C3(0, 2, 1), vmath.C3(0, 1, 1))

	opts := testOptions()
	opts.MergeDisjoint = true
	s := NewSequencer(opts)
	s.Start(&timeline.Turn{SubTurns: []timeline.SubTurn{a, b}})

	_, total := s.Progress()
	assert.Equal(t, 2, total)
}

func TestTrack_LeftoverCarriesAcrossTransitions(t *testing.T) {
	tr := newTrack(1, vmath.C3(0, 0, 3), []vmath.Coord{
		vmath.C3(0, 0, 2), vmath.C3(0, 0, 1), vmath.C3(0, 0, 0),
	})

	tr.advance(250*time.Millisecond, h, v)
	assert.False(t, tr.Done())
	if diff := cmp.Diff(vmath.Vec3F{Z: 0.5}, tr.Position(h, v), approx); diff != "" {
		t.Errorf("position (-want +got):\n%s", diff)
	}

	tr.advance(50*time.Millisecond, h, v)
	assert.True(t, tr.Done())
	assert.Equal(t, vmath.C3(0, 0, 0), tr.Final())
}

func TestSequencer_CancelSkipsFinished(t *testing.T) {
	s := NewSequencer(Options{Horizontal: h, Vertical: v})
	finished := 0
	s.OnFinished = func() { finished++ }

	s.Start(twoEchoTurn())
	s.Update(h / 2)
	s.Cancel()

	assert.False(t, s.Running())
	assert.Empty(t, s.Positions())
	s.Update(10 * time.Second)
	assert.Equal(t, 0, finished)
}
