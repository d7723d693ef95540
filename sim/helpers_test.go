package sim

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/rewind/entity"
	"github.com/lixenwraith/rewind/level"
	"github.com/lixenwraith/rewind/vmath"
)

// Level sources are z-major: each layer lists Width rows of Length codes

// flat3 is a 3x3 floor with the start tile in the middle, spawn (1,1,1)
const flat3 = "3,3,1\n" +
	"111\n" +
	"121\n" +
	"111\n"

// open5 is a 5x5 floor with the start tile in the middle, spawn (2,2,1)
const open5 = "5,5,1\n" +
	"11111\n" +
	"11111\n" +
	"11211\n" +
	"11111\n" +
	"11111\n"

func newSim(t *testing.T, src string) *Simulation {
	t.Helper()
	lv, err := level.Parse(strings.NewReader(src))
	require.NoError(t, err)
	s, err := New(lv, DefaultOptions())
	require.NoError(t, err)
	return s
}

type worldSnapshot struct {
	Cells    map[vmath.Coord]entity.ID
	Entities []entity.Entity
	Turns    int
	Timeline int
}

func snapshot(s *Simulation) worldSnapshot {
	snap := worldSnapshot{
		Cells:    make(map[vmath.Coord]entity.ID),
		Turns:    s.TurnCounter(),
		Timeline: s.TimelineIndex(),
	}
	s.Grid().Occupied(func(c vmath.Coord, id entity.ID) {
		snap.Cells[c] = id
	})
	s.Store().Each(func(e *entity.Entity) {
		cp := *e
		if e.Player != nil {
			ps := *e.Player
			cp.Player = &ps
		}
		if e.Super != nil {
			ss := *e.Super
			ss.Members = append([]entity.ID(nil), e.Super.Members...)
			cp.Super = &ss
		}
		snap.Entities = append(snap.Entities, cp)
	})
	return snap
}

// checkGrid verifies that every entity in the grid sits where it thinks it is
// and that no visible, live entity is missing from the grid
func checkGrid(t *testing.T, s *Simulation) {
	t.Helper()
	seen := make(map[entity.ID]bool)
	s.Grid().Occupied(func(c vmath.Coord, id entity.ID) {
		e := s.Entity(id)
		require.NotNil(t, e, "unknown id %d at %v", id, c)
		require.Equal(t, c, e.Pos, "entity %d grid cell mismatch", id)
		require.False(t, seen[id], "entity %d in two cells", id)
		seen[id] = true
	})
	s.Store().Each(func(e *entity.Entity) {
		if e.Hidden || e.Fallen {
			require.False(t, seen[e.ID], "hidden or fallen entity %d occupies a cell", e.ID)
			return
		}
		require.True(t, seen[e.ID], "visible entity %d (%s) missing from grid", e.ID, e.Kind)
	})
}

func stringsReader(s string) *strings.Reader {
	return strings.NewReader(s)
}
