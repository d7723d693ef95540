package sim

import (
	"log"
	"sort"

	"github.com/lixenwraith/rewind/entity"
	"github.com/lixenwraith/rewind/timeline"
	"github.com/lixenwraith/rewind/vmath"
)

// split ejects every member whose move diverges from its superposition
// The partition holding the oldest member keeps the superposition, other partitions leave
// as lone echoes or as pooled superpositions pointing back at it
// Ejected units wait at the superposition's cell, outside the grid, until they move
func (s *Simulation) split(turn *timeline.Turn) {
	for _, sup := range s.store.Superpositions() {
		if sup.Hidden || len(sup.Super.Members) < 2 {
			continue
		}
		groups := s.partition(sup, turn)
		if len(groups) == 1 {
			continue
		}

		at := sup.Pos
		if s.grid.QueryAt(at) == sup.ID {
			s.grid.SetAt(at, 0)
		}
		site := &pendingSite{at: at, origin: sup.ID}

		for _, g := range groups[1:] {
			var unit *entity.Entity
			if len(g) >= 2 {
				unit = s.acquire()
				unit.Pos = at
				s.assign(unit, g)
				unit.Super.Previous = sup.ID
			} else {
				unit = s.eject(g[0], at)
			}
			s.markCollapsed(turn, g)
			site.units = append(site.units, unit)
			s.pendingAt[unit.ID] = at
		}

		keep := groups[0]
		if len(keep) >= 2 {
			s.assign(sup, keep)
			site.units = append(site.units, sup)
			s.pendingAt[sup.ID] = at
		} else {
			s.release(sup)
			lone := s.eject(keep[0], at)
			s.markCollapsed(turn, keep)
			site.units = append(site.units, lone)
			s.pendingAt[lone.ID] = at
		}

		log.Printf("sim: superposition %d split into %d groups at %v", sup.ID, len(groups), at)
		s.sites = append(s.sites, site)
	}
}

// partition groups members by this turn's move, the oldest member's group first
func (s *Simulation) partition(sup *entity.Entity, turn *timeline.Turn) [][]*entity.Entity {
	var groups [][]*entity.Entity
	index := make(map[vmath.Coord]int)
	for _, id := range sup.Super.Members {
		var move vmath.Coord
		if st := turn.SubTurnOf(id); st != nil {
			move = st.Move
		}
		gi, ok := index[move]
		if !ok {
			gi = len(groups)
			index[move] = gi
			groups = append(groups, nil)
		}
		groups[gi] = append(groups[gi], s.store.Get(id))
	}
	return groups
}

func (s *Simulation) markCollapsed(turn *timeline.Turn, players []*entity.Entity) {
	for _, p := range players {
		p.Player.Separated = true
		if st := turn.SubTurnOf(p.ID); st != nil {
			st.Collapsed = true
		}
	}
}

// placePending returns units that never left their split cell to the grid
// Units still sharing the cell moved identically (not at all) and merge
func (s *Simulation) placePending(turn *timeline.Turn) {
	for _, site := range s.sites {
		var stay []*entity.Entity
		for _, u := range site.units {
			if _, ok := s.pendingAt[u.ID]; ok && !u.Fallen && !u.Hidden {
				stay = append(stay, u)
			}
		}
		if len(stay) == 0 {
			continue
		}

		unit := s.mergeAt(site, stay)
		delete(s.pendingAt, unit.ID)

		target := site.at
		for !s.grid.Empty(target) {
			target = target.Add(vmath.Up)
			if !s.grid.InBounds(target) {
				log.Printf("sim: no free cell above %v for %s %d", site.at, unit.Kind, unit.ID)
				target = site.at
				break
			}
		}

		st := turn.SubTurnOf(s.newestMember(unit))
		s.grid.SetAt(target, unit.ID)
		s.setPos(unit, target)
		if target != site.at {
			st.Record(unit.ID, site.at, target)
		}
		s.settle(st, unit)
	}
}

// mergeAt folds co-located units into one
// A single echo stands alone, two or more share a superposition,
// preferring the split origin, then any superposition present, then the pool
func (s *Simulation) mergeAt(site *pendingSite, units []*entity.Entity) *entity.Entity {
	var echoes []*entity.Entity
	var supers []*entity.Entity
	for _, u := range units {
		delete(s.pendingAt, u.ID)
		if u.IsSuperposition() {
			supers = append(supers, u)
			for _, id := range u.Super.Members {
				echoes = append(echoes, s.store.Get(id))
			}
		} else {
			echoes = append(echoes, u)
		}
	}
	sort.Slice(echoes, func(i, j int) bool { return echoes[i].ID < echoes[j].ID })

	if len(echoes) == 1 {
		for _, sup := range supers {
			s.release(sup)
		}
		return s.eject(echoes[0], site.at)
	}

	var host *entity.Entity
	for _, sup := range supers {
		if sup.ID == site.origin {
			host = sup
		}
	}
	if host == nil && len(supers) > 0 {
		host = supers[0]
	}
	for _, sup := range supers {
		if sup != host {
			s.release(sup)
		}
	}
	if host == nil {
		host = s.acquire()
	}

	host.Pos = site.at
	s.assign(host, echoes)
	for _, p := range echoes {
		p.Player.Separated = false
	}
	return host
}

// acquire returns a vacated hidden superposition, allocating when the pool is empty
func (s *Simulation) acquire() *entity.Entity {
	for _, sup := range s.store.Superpositions() {
		if sup.Hidden && len(sup.Super.Members) == 0 {
			return sup
		}
	}
	return s.store.NewSuperposition()
}

// assign makes players the members of sup, oldest first
func (s *Simulation) assign(sup *entity.Entity, players []*entity.Entity) {
	ids := make([]entity.ID, 0, len(players))
	for _, p := range players {
		if s.grid.QueryAt(p.Pos) == p.ID {
			s.grid.SetAt(p.Pos, 0)
		}
		p.Player.Superposition = sup.ID
		p.Set(entity.FlagSuper)
		p.Hidden = true
		p.Pos = sup.Pos
		ids = append(ids, p.ID)
	}
	sup.Super.Members = ids
	sup.Hidden = false
	sup.Fallen = false
}

// release hides sup and frees its cell, members are left untouched
func (s *Simulation) release(sup *entity.Entity) {
	if !sup.Hidden && s.grid.InBounds(sup.Pos) && s.grid.QueryAt(sup.Pos) == sup.ID {
		s.grid.SetAt(sup.Pos, 0)
	}
	delete(s.pendingAt, sup.ID)
	sup.Super.Members = nil
	sup.Hidden = true
}

// eject makes p an independent echo at c, outside the grid
func (s *Simulation) eject(p *entity.Entity, c vmath.Coord) *entity.Entity {
	p.Player.Superposition = 0
	p.Clear(entity.FlagSuper)
	p.Hidden = false
	p.Pos = c
	return p
}

// newestMember is the echo whose subturn drives unit
func (s *Simulation) newestMember(unit *entity.Entity) entity.ID {
	if !unit.IsSuperposition() || len(unit.Super.Members) == 0 {
		return unit.ID
	}
	newest := unit.Super.Members[0]
	for _, id := range unit.Super.Members[1:] {
		if id > newest {
			newest = id
		}
	}
	return newest
}

// Superpositions returns the visible superpositions
func (s *Simulation) Superpositions() []*entity.Entity {
	var out []*entity.Entity
	for _, sup := range s.store.Superpositions() {
		if !sup.Hidden {
			out = append(out, sup)
		}
	}
	return out
}
