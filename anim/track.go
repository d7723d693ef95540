package anim

import (
	"time"

	"github.com/lixenwraith/rewind/entity"
	"github.com/lixenwraith/rewind/vmath"
)

// Track plays one entity's path one cell transition at a time
type Track struct {
	Entity entity.ID
	From   vmath.Coord
	Path   []vmath.Coord

	step    int           // transition in progress, index into Path
	elapsed time.Duration // within the current transition
	done    bool
}

func newTrack(id entity.ID, from vmath.Coord, path []vmath.Coord) *Track {
	p := make([]vmath.Coord, len(path))
	copy(p, path)
	return &Track{
		Entity: id,
		From:   from,
		Path:   p,
		done:   len(p) == 0,
	}
}

// Done reports the full path was played
func (tr *Track) Done() bool {
	return tr.done
}

// segment returns the endpoints of the current transition
func (tr *Track) segment() (from, to vmath.Coord) {
	if tr.step == 0 {
		return tr.From, tr.Path[0]
	}
	return tr.Path[tr.step-1], tr.Path[tr.step]
}

// Final is the last cell of the path
func (tr *Track) Final() vmath.Coord {
	if len(tr.Path) == 0 {
		return tr.From
	}
	return tr.Path[len(tr.Path)-1]
}

func (tr *Track) duration(horizontal, vertical time.Duration) time.Duration {
	from, to := tr.segment()
	if to.Sub(from).IsVertical() {
		return vertical
	}
	return horizontal
}

// advance consumes dt, carrying leftover time into following transitions
func (tr *Track) advance(dt, horizontal, vertical time.Duration) {
	for !tr.done {
		remaining := tr.duration(horizontal, vertical) - tr.elapsed
		if dt < remaining {
			tr.elapsed += dt
			return
		}
		dt -= remaining
		tr.step++
		tr.elapsed = 0
		if tr.step >= len(tr.Path) {
			tr.done = true
		}
	}
}

// Position is the interpolated position at the current progress
func (tr *Track) Position(horizontal, vertical time.Duration) vmath.Vec3F {
	if tr.done {
		return vmath.V3FFromCoord(tr.Final())
	}
	from, to := tr.segment()
	d := tr.duration(horizontal, vertical)
	t := 1.0
	if d > 0 {
		t = float64(tr.elapsed) / float64(d)
	}
	return vmath.V3FLerp(vmath.V3FFromCoord(from), vmath.V3FFromCoord(to), t)
}

// cells returns every cell the track touches
func (tr *Track) cells() []vmath.Coord {
	return append([]vmath.Coord{tr.From}, tr.Path...)
}
