package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/rewind/entity"
	"github.com/lixenwraith/rewind/parameter"
	"github.com/lixenwraith/rewind/sim"
	"github.com/lixenwraith/rewind/status"
	"github.com/lixenwraith/rewind/vmath"
)

const helpLine = "wasd/arrows move  space pass  r restart  tab debug  q quit"

// Renderer draws a top-down projection of the world
// Each column shows its topmost visible occupant
type Renderer struct {
	screen tcell.Screen
}

// NewRenderer creates a renderer on an initialized screen
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// column is the topmost occupant seen from above
type column struct {
	e *entity.Entity
	z int
}

// Project maps a grid column to its screen cell
// Higher Y is up, higher X is left
func Project(g vmath.Coord, width, length int) (x, y int) {
	x = parameter.LeftMargin + (width-1-g.X)*parameter.CellWidth
	y = parameter.TopMargin + (length - 1 - g.Y)
	return x, y
}

// Draw renders the world, animated positions override grid cells
func (r *Renderer) Draw(s *sim.Simulation, positions map[entity.ID]vmath.Vec3F, reg *status.Registry) {
	r.screen.Clear()
	bg := tcell.StyleDefault.Background(RgbBackground)
	r.screen.Fill(' ', bg)

	g := s.Grid()
	cols := r.columns(s, positions)

	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Length; y++ {
			sx, sy := Project(vmath.C3(x, y, 0), g.Width, g.Length)
			col, ok := cols[[2]int{x, y}]
			if !ok {
				r.screen.SetContent(sx, sy, parameter.GlyphEmpty, nil, bg.Foreground(RgbEmpty))
				continue
			}
			ch, fg := glyph(col.e)
			if ch == parameter.GlyphWall {
				fg = shade(RgbWallLow, RgbWallHigh, col.z, g.Height)
			}
			style := bg.Foreground(fg)
			r.screen.SetContent(sx, sy, ch, nil, style)
			if parameter.CellWidth > 1 && ch == parameter.GlyphWall {
				r.screen.SetContent(sx+1, sy, ch, nil, style)
			}
		}
	}

	r.drawTitle(s, bg)
	r.drawHUD(reg, g.Length, bg)
	r.screen.Show()
}

// columns resolves the topmost occupant per (x,y)
// Animating entities are drawn at their rounded interpolated position
func (r *Renderer) columns(s *sim.Simulation, positions map[entity.ID]vmath.Vec3F) map[[2]int]column {
	out := make(map[[2]int]column)
	put := func(e *entity.Entity, c vmath.Coord) {
		key := [2]int{c.X, c.Y}
		if prev, ok := out[key]; ok && prev.z > c.Z {
			return
		}
		out[key] = column{e: e, z: c.Z}
	}

	s.Grid().Occupied(func(c vmath.Coord, id entity.ID) {
		if _, moving := positions[id]; moving {
			return
		}
		if e := s.Entity(id); e != nil && !e.Hidden {
			put(e, c)
		}
	})
	for id, pos := range positions {
		e := s.Entity(id)
		if e == nil {
			continue
		}
		c := vmath.V3FRound(pos)
		if !s.Grid().InBounds(c) {
			continue
		}
		put(e, c)
	}
	return out
}

// glyph picks the rune and color for an entity
func glyph(e *entity.Entity) (rune, tcell.Color) {
	switch e.Kind {
	case entity.KindPlayer:
		if e.Has(entity.FlagCurrentPlayer) {
			return parameter.GlyphPlayer, RgbPlayer
		}
		return parameter.GlyphEcho, RgbEcho
	case entity.KindSuperposition:
		return parameter.GlyphSuperposition, RgbSuper
	}

	switch {
	case e.Has(entity.FlagGoal):
		return parameter.GlyphGoal, RgbGoal
	case e.Has(entity.FlagRewind):
		return parameter.GlyphRewind, RgbRewind
	case e.Has(entity.FlagStart):
		return parameter.GlyphStart, RgbStart
	case e.Has(entity.FlagMoveable):
		return parameter.GlyphCrate, RgbCrate
	default:
		return parameter.GlyphWall, RgbWallHigh
	}
}

func (r *Renderer) drawTitle(s *sim.Simulation, bg tcell.Style) {
	title := fmt.Sprintf("rewind  %dx%dx%d", s.Level().Width, s.Level().Length, s.Level().Height)
	r.text(parameter.LeftMargin, 0, title, bg.Foreground(RgbStatusBar).Bold(true))
}

func (r *Renderer) drawHUD(reg *status.Registry, length int, bg tcell.Style) {
	if reg == nil {
		return
	}
	y := parameter.TopMargin + length + 1

	var parts []string
	state := ""
	for _, e := range reg.Entries() {
		if e.Key == status.KeyState {
			state = e.Value
			continue
		}
		parts = append(parts, e.Key+" "+e.Value)
	}
	r.text(parameter.LeftMargin, y, strings.Join(parts, "  "), bg.Foreground(RgbStatusBar))

	stateStyle := bg.Foreground(RgbStatusBar)
	if strings.Contains(state, "rejected") || strings.Contains(state, "fell") {
		stateStyle = bg.Foreground(RgbAlert)
	}
	r.text(parameter.LeftMargin, y+1, state, stateStyle)
	r.text(parameter.LeftMargin, y+2, helpLine, bg.Foreground(RgbHelp))
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}
