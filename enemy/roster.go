package enemy

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lixenwraith/void-ranks/core"
	"github.com/lixenwraith/void-ranks/formation"
	"github.com/lixenwraith/void-ranks/parameter"
	"github.com/lixenwraith/void-ranks/vmath"
)

var (
	ErrUnknownEnemy      = errors.New("unknown enemy")
	ErrIllegalTransition = errors.New("illegal mode transition")
	ErrMissingFormation  = errors.New("owning formation not found")
)

// FormationLookup resolves a formation identity to the live formation
// Returns nil when the formation has been torn down
type FormationLookup func(id uuid.UUID) *formation.Formation

// Roster is the fixed-capacity enemy arena
// Iteration is in arena index order; freed cells are reused lowest-first
type Roster struct {
	cells [parameter.MaxEnemies]Enemy
	used  [parameter.MaxEnemies]bool
	index map[core.Entity]int
	count int

	alloc   *core.EntityAllocator
	lookup  FormationLookup
	logger  *slog.Logger
	dropped int
}

// NewRoster creates an empty roster drawing IDs from alloc
func NewRoster(alloc *core.EntityAllocator, logger *slog.Logger) *Roster {
	if alloc == nil {
		alloc = &core.EntityAllocator{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Roster{
		index:  make(map[core.Entity]int, parameter.MaxEnemies),
		alloc:  alloc,
		logger: logger,
	}
}

// SetFormationLookup installs the resolver used by Breakout and Destroy
func (r *Roster) SetFormationLookup(fn FormationLookup) {
	r.lookup = fn
}

// Spawn places a new enemy; returns false and logs when the arena is full
// or no mode is given
func (r *Roster) Spawn(pos, vel vmath.Vec2, kind Kind, mode Mode) (*Enemy, bool) {
	if mode == nil {
		r.logger.Warn("enemy spawn rejected", "reason", "no mode", "kind", kind.String())
		return nil, false
	}
	if r.count >= parameter.MaxEnemies {
		r.dropped++
		r.logger.Warn("enemy spawn dropped", "reason", "roster full", "capacity", parameter.MaxEnemies, "kind", kind.String())
		return nil, false
	}
	i := 0
	for r.used[i] {
		i++
	}
	id := r.alloc.Next()
	r.cells[i] = Enemy{ID: id, Kind: kind, Mode: mode}
	r.cells[i].Pos = pos
	r.cells[i].Vel = vel
	r.used[i] = true
	r.index[id] = i
	r.count++
	return &r.cells[i], true
}

// Get returns the enemy with id, nil if absent
func (r *Roster) Get(id core.Entity) *Enemy {
	i, ok := r.index[id]
	if !ok {
		return nil
	}
	return &r.cells[i]
}

// Remove frees the arena cell of id; the caller is responsible for any slot
func (r *Roster) Remove(id core.Entity) bool {
	i, ok := r.index[id]
	if !ok {
		return false
	}
	r.used[i] = false
	r.cells[i] = Enemy{}
	delete(r.index, id)
	r.count--
	return true
}

// Each visits every enemy, destroyed ones included, in arena order
func (r *Roster) Each(fn func(e *Enemy)) {
	for i := range r.cells {
		if r.used[i] {
			fn(&r.cells[i])
		}
	}
}

// Len returns the number of enemies held, destroyed ones included
func (r *Roster) Len() int { return r.count }

// Live returns the number of enemies not yet destroyed
func (r *Roster) Live() int {
	n := 0
	r.Each(func(e *Enemy) {
		if e.Alive() {
			n++
		}
	})
	return n
}

// CountMode returns the number of enemies in mode k
func (r *Roster) CountMode(k ModeKind) int {
	n := 0
	r.Each(func(e *Enemy) {
		if e.ModeKind() == k {
			n++
		}
	})
	return n
}

// Dropped returns the number of spawns rejected for capacity
func (r *Roster) Dropped() int { return r.dropped }

// SlotChanged keeps an InFormation back-reference in step with refill moves
func (r *Roster) SlotChanged(id core.Entity, to formation.SlotRef) {
	e := r.Get(id)
	if e == nil {
		return
	}
	if m, ok := e.Mode.(InFormation); ok {
		m.Slot = to
		e.Mode = m
	}
}

func (r *Roster) formationOf(m InFormation) (*formation.Formation, error) {
	if r.lookup == nil {
		return nil, ErrMissingFormation
	}
	f := r.lookup(m.FormationID)
	if f == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingFormation, m.FormationID)
	}
	return f, nil
}

// Breakout moves a formation-bound enemy to free flight
// The slot is released and its refill cascade completes before the mode changes
func (r *Roster) Breakout(id core.Entity) error {
	e := r.Get(id)
	if e == nil {
		return fmt.Errorf("%w: %d", ErrUnknownEnemy, id)
	}
	m, ok := e.Mode.(InFormation)
	if !ok {
		return fmt.Errorf("%w: breakout from %s", ErrIllegalTransition, e.ModeKind())
	}
	f, err := r.formationOf(m)
	if err != nil {
		return err
	}
	if _, _, err := f.Vacate(m.Slot); err != nil {
		return fmt.Errorf("release slot %v: %w", m.Slot, err)
	}
	free, vel := m.Breakout(e.Vel, f.Velocity())
	// Dive toward the player side of the screen
	vel.Y += parameter.BreakoutSpeed
	e.Mode = free
	e.Vel = vel
	e.Age = 0
	e.Offscreen = 0
	return nil
}

// Destroy ends an enemy; a formation-bound enemy's slot is vacated synchronously first
// Destroying an already destroyed enemy is a no-op
func (r *Roster) Destroy(id core.Entity, cause Cause) error {
	e := r.Get(id)
	if e == nil {
		return fmt.Errorf("%w: %d", ErrUnknownEnemy, id)
	}
	switch m := e.Mode.(type) {
	case InFormation:
		f, err := r.formationOf(m)
		if err != nil {
			// Owning formation already torn down: nothing left to vacate
			if !errors.Is(err, ErrMissingFormation) {
				return err
			}
		} else if _, _, err := f.Vacate(m.Slot); err != nil {
			return fmt.Errorf("vacate slot %v: %w", m.Slot, err)
		}
		e.Mode = m.Destroy(cause)
	case FreeFlight:
		e.Mode = m.Destroy(cause)
	case AttackRun:
		e.Mode = m.Destroy(cause)
	case Destroyed:
		return nil
	}
	e.Vel = vmath.Vec2{}
	return nil
}

// Sweep removes destroyed enemies and returns their IDs in arena order
func (r *Roster) Sweep() []core.Entity {
	var out []core.Entity
	for i := range r.cells {
		if r.used[i] && !r.cells[i].Alive() {
			out = append(out, r.cells[i].ID)
		}
	}
	for _, id := range out {
		r.Remove(id)
	}
	return out
}

// Clear removes every enemy without touching formations (level teardown)
func (r *Roster) Clear() int {
	n := r.count
	for i := range r.cells {
		r.cells[i] = Enemy{}
		r.used[i] = false
	}
	clear(r.index)
	r.count = 0
	return n
}
