// Package formation owns the rank/slot grid enemies fly in and the rules
// that pull rear occupants forward when a slot empties.
//
// Rank 0 is the front rank, nearest the player. Capacities are fixed
// (parameter.MaxFormationRanks x parameter.MaxSlotsPerRank) so slot access
// never allocates during play. Occupants are stored as core.Entity values;
// the formation never owns the enemies it references.
package formation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/lixenwraith/void-ranks/core"
	"github.com/lixenwraith/void-ranks/parameter"
	"github.com/lixenwraith/void-ranks/physics"
	"github.com/lixenwraith/void-ranks/vmath"
)

// SlotRef addresses one slot of a formation
type SlotRef struct {
	Rank int
	Slot int
}

func (r SlotRef) String() string {
	return fmt.Sprintf("%d:%d", r.Rank, r.Slot)
}

// Move records one occupant transfer of a refill cascade
type Move struct {
	Occupant core.Entity
	From     SlotRef
	To       SlotRef
}

// SlotObserver is told synchronously when an occupant changes slot
// It keeps the occupant's own back-reference in step with the grid
type SlotObserver interface {
	SlotChanged(id core.Entity, to SlotRef)
}

// SpawnFunc creates the initial occupant of a slot
// Returning false leaves the slot empty (roster exhausted)
type SpawnFunc func(ref SlotRef) (core.Entity, bool)

type slot struct {
	occupant core.Entity
	fillFrom [parameter.NrFillFromRanks]SlotRef
	fillLen  uint8
}

type rank struct {
	slots [parameter.MaxSlotsPerRank]slot
}

// Formation is a fixed-capacity grid of ranks x slots with a shared drift velocity
type Formation struct {
	ID uuid.UUID

	ranks        [parameter.MaxFormationRanks]rank
	rankCount    int
	slotsPerRank int
	occupied     int

	origin   vmath.Vec2 // Center of the front rank
	spacing  vmath.Vec2 // Column and rank pitch in cells
	velocity vmath.Vec2
	bounds   physics.Bounds
	bounded  bool

	observer SlotObserver
}

// New creates an empty formation anchored at origin
func New(origin, spacing vmath.Vec2) *Formation {
	return &Formation{
		ID:      uuid.New(),
		origin:  origin,
		spacing: spacing,
	}
}

// SetObserver installs the occupant back-reference hook
func (f *Formation) SetObserver(o SlotObserver) {
	f.observer = o
}

// SetBounds limits horizontal drift; the formation reflects off the edges
func (f *Formation) SetBounds(b physics.Bounds) {
	f.bounds = b
	f.bounded = true
}

// Populate builds rankCount x slotsPerRank slots, installs the fill-from rule and
// assigns initial occupants through spawn (nil spawn leaves the grid empty)
// Rules are fully validated before any occupant is spawned; cycles are
// reported before shallow sources so a looping table names the loop
func (f *Formation) Populate(rankCount, slotsPerRank int, rule FillRule, spawn SpawnFunc) error {
	if rankCount < 1 || rankCount > parameter.MaxFormationRanks {
		return fmt.Errorf("%w: %d ranks (max %d)", ErrCapacity, rankCount, parameter.MaxFormationRanks)
	}
	if slotsPerRank < 1 || slotsPerRank > parameter.MaxSlotsPerRank {
		return fmt.Errorf("%w: %d slots per rank (max %d)", ErrCapacity, slotsPerRank, parameter.MaxSlotsPerRank)
	}
	if rule == nil {
		rule = RuleNone
	}

	var ranks [parameter.MaxFormationRanks]rank
	for r := 0; r < rankCount; r++ {
		for s := 0; s < slotsPerRank; s++ {
			ref := SlotRef{Rank: r, Slot: s}
			sources := rule(ref, rankCount, slotsPerRank)
			if len(sources) > parameter.NrFillFromRanks {
				return &RuleError{Slot: ref, Source: sources[parameter.NrFillFromRanks], Err: ErrFillFromTooMany}
			}
			sl := &ranks[r].slots[s]
			for i, src := range sources {
				if src.Rank < 0 || src.Rank >= rankCount || src.Slot < 0 || src.Slot >= slotsPerRank {
					return &RuleError{Slot: ref, Source: src, Err: ErrFillFromRange}
				}
				if src == ref {
					return &RuleError{Slot: ref, Source: src, Err: ErrFillFromSelf}
				}
				sl.fillFrom[i] = src
			}
			sl.fillLen = uint8(len(sources))
		}
	}

	if err := checkAcyclic(&ranks, rankCount, slotsPerRank); err != nil {
		return err
	}
	if err := checkDepth(&ranks, rankCount, slotsPerRank); err != nil {
		return err
	}

	f.ranks = ranks
	f.rankCount = rankCount
	f.slotsPerRank = slotsPerRank
	f.occupied = 0

	if spawn == nil {
		return nil
	}
	for r := 0; r < rankCount; r++ {
		for s := 0; s < slotsPerRank; s++ {
			ref := SlotRef{Rank: r, Slot: s}
			id, ok := spawn(ref)
			if !ok || id == core.EntityNone {
				continue
			}
			f.ranks[r].slots[s].occupant = id
			f.occupied++
		}
	}
	return nil
}

// checkDepth requires every source to sit in a deeper rank than its slot,
// bounding any cascade by the rank count
func checkDepth(ranks *[parameter.MaxFormationRanks]rank, rankCount, slotsPerRank int) error {
	for r := 0; r < rankCount; r++ {
		for s := 0; s < slotsPerRank; s++ {
			sl := &ranks[r].slots[s]
			for _, src := range sl.fillFrom[:sl.fillLen] {
				if src.Rank <= r {
					return &RuleError{Slot: SlotRef{Rank: r, Slot: s}, Source: src, Err: ErrFillFromRank}
				}
			}
		}
	}
	return nil
}

// checkAcyclic rejects fill-from graphs containing a cycle (iterative DFS, white/grey/black)
func checkAcyclic(ranks *[parameter.MaxFormationRanks]rank, rankCount, slotsPerRank int) error {
	const (
		white = iota
		grey
		black
	)
	var color [parameter.MaxFormationRanks][parameter.MaxSlotsPerRank]uint8

	type frame struct {
		ref  SlotRef
		next int
	}
	stack := make([]frame, 0, rankCount*slotsPerRank)

	for r := 0; r < rankCount; r++ {
		for s := 0; s < slotsPerRank; s++ {
			if color[r][s] != white {
				continue
			}
			color[r][s] = grey
			stack = append(stack[:0], frame{ref: SlotRef{r, s}})

			for len(stack) > 0 {
				top := &stack[len(stack)-1]
				sl := &ranks[top.ref.Rank].slots[top.ref.Slot]
				if top.next >= int(sl.fillLen) {
					color[top.ref.Rank][top.ref.Slot] = black
					stack = stack[:len(stack)-1]
					continue
				}
				src := sl.fillFrom[top.next]
				top.next++
				switch color[src.Rank][src.Slot] {
				case grey:
					return &RuleError{Slot: top.ref, Source: src, Err: ErrFillFromCycle}
				case white:
					color[src.Rank][src.Slot] = grey
					stack = append(stack, frame{ref: src})
				}
			}
		}
	}
	return nil
}

func (f *Formation) inRange(ref SlotRef) bool {
	return ref.Rank >= 0 && ref.Rank < f.rankCount && ref.Slot >= 0 && ref.Slot < f.slotsPerRank
}

func (f *Formation) at(ref SlotRef) *slot {
	return &f.ranks[ref.Rank].slots[ref.Slot]
}

// Release clears a slot's occupant and refills it from its fill-from sources
// Releasing an empty slot is a no-op. The returned moves are in cascade order
func (f *Formation) Release(rankIndex, slotIndex int) (core.Entity, []Move, error) {
	ref := SlotRef{Rank: rankIndex, Slot: slotIndex}
	if !f.inRange(ref) {
		return core.EntityNone, nil, fmt.Errorf("%w: %v", ErrSlotRange, ref)
	}
	sl := f.at(ref)
	id := sl.occupant
	if id == core.EntityNone {
		return core.EntityNone, nil, nil
	}
	sl.occupant = core.EntityNone
	f.occupied--
	return id, f.refill(ref), nil
}

// Vacate releases the slot at ref; used when the occupant is destroyed
func (f *Formation) Vacate(ref SlotRef) (core.Entity, []Move, error) {
	return f.Release(ref.Rank, ref.Slot)
}

// refill runs the cascade starting at a vacant slot
// Each step moves the first occupied source (list order) forward and continues
// at the source it emptied; acyclic rules guarantee termination
func (f *Formation) refill(vacant SlotRef) []Move {
	var moves []Move
	for {
		dst := f.at(vacant)
		from, ok := f.firstOccupied(dst)
		if !ok {
			return moves
		}
		src := f.at(from)
		id := src.occupant
		dst.occupant = id
		src.occupant = core.EntityNone
		moves = append(moves, Move{Occupant: id, From: from, To: vacant})
		if f.observer != nil {
			f.observer.SlotChanged(id, vacant)
		}
		vacant = from
	}
}

func (f *Formation) firstOccupied(sl *slot) (SlotRef, bool) {
	for i := 0; i < int(sl.fillLen); i++ {
		src := sl.fillFrom[i]
		if f.at(src).occupant != core.EntityNone {
			return src, true
		}
	}
	return SlotRef{}, false
}

// Place puts an externally spawned occupant into an empty slot
func (f *Formation) Place(ref SlotRef, id core.Entity) error {
	if !f.inRange(ref) {
		return fmt.Errorf("%w: %v", ErrSlotRange, ref)
	}
	sl := f.at(ref)
	if sl.occupant != core.EntityNone {
		return fmt.Errorf("%w: %v", ErrSlotOccupied, ref)
	}
	if id == core.EntityNone {
		return nil
	}
	sl.occupant = id
	f.occupied++
	return nil
}

// Clear drops every occupant without refilling and returns them in rank-major order
func (f *Formation) Clear() []core.Entity {
	out := make([]core.Entity, 0, f.occupied)
	f.Each(func(ref SlotRef, id core.Entity) {
		out = append(out, id)
		f.at(ref).occupant = core.EntityNone
	})
	f.occupied = 0
	return out
}

// IsEmpty reports whether every slot in every rank is unoccupied
func (f *Formation) IsEmpty() bool { return f.occupied == 0 }

// Occupied returns the number of occupied slots
func (f *Formation) Occupied() int { return f.occupied }

// Ranks returns the populated rank count
func (f *Formation) Ranks() int { return f.rankCount }

// SlotsPerRank returns the populated slot count per rank
func (f *Formation) SlotsPerRank() int { return f.slotsPerRank }

// Occupant returns the entity in a slot, EntityNone if empty or out of range
func (f *Formation) Occupant(ref SlotRef) core.Entity {
	if !f.inRange(ref) {
		return core.EntityNone
	}
	return f.at(ref).occupant
}

// FillFrom returns a copy of a slot's fill-from list
func (f *Formation) FillFrom(ref SlotRef) []SlotRef {
	if !f.inRange(ref) {
		return nil
	}
	sl := f.at(ref)
	out := make([]SlotRef, sl.fillLen)
	copy(out, sl.fillFrom[:sl.fillLen])
	return out
}

// Find returns the slot holding id
func (f *Formation) Find(id core.Entity) (SlotRef, bool) {
	if id == core.EntityNone {
		return SlotRef{}, false
	}
	for r := 0; r < f.rankCount; r++ {
		for s := 0; s < f.slotsPerRank; s++ {
			if f.ranks[r].slots[s].occupant == id {
				return SlotRef{Rank: r, Slot: s}, true
			}
		}
	}
	return SlotRef{}, false
}

// Each visits occupied slots in rank-major, slot-minor order
func (f *Formation) Each(fn func(ref SlotRef, id core.Entity)) {
	for r := 0; r < f.rankCount; r++ {
		for s := 0; s < f.slotsPerRank; s++ {
			if id := f.ranks[r].slots[s].occupant; id != core.EntityNone {
				fn(SlotRef{Rank: r, Slot: s}, id)
			}
		}
	}
}

// OccupiedRefs lists occupied slots in Each order
func (f *Formation) OccupiedRefs() []SlotRef {
	out := make([]SlotRef, 0, f.occupied)
	f.Each(func(ref SlotRef, _ core.Entity) { out = append(out, ref) })
	return out
}

// Velocity is the shared drift applied to every formation-bound enemy each tick
func (f *Formation) Velocity() vmath.Vec2 { return f.velocity }

// SetVelocity replaces the shared drift
func (f *Formation) SetVelocity(v vmath.Vec2) { f.velocity = v }

// Origin returns the center of the front rank
func (f *Formation) Origin() vmath.Vec2 { return f.origin }

// SlotPosition returns the world anchor of a slot
// Ranks stack upward (toward negative Y) from the front rank
func (f *Formation) SlotPosition(ref SlotRef) vmath.Vec2 {
	// Column offset centered on origin: (2*slot - (n-1)) / 2 columns
	col := vmath.FromInt(2*ref.Slot-(f.slotsPerRank-1)) / 2
	return vmath.Vec2{
		X: f.origin.X + vmath.Mul(col, f.spacing.X),
		Y: f.origin.Y - vmath.Mul(vmath.FromInt(ref.Rank), f.spacing.Y),
	}
}

// halfWidth is the distance from origin to the outermost column
func (f *Formation) halfWidth() int64 {
	return vmath.Mul(vmath.FromInt(f.slotsPerRank-1), f.spacing.X) / 2
}

// Drift advances the origin by the shared velocity over dt (Q32.32 seconds)
// With bounds set, the grid reflects horizontally at the edges; returns true on reflection
func (f *Formation) Drift(dt int64) bool {
	f.origin = f.origin.Add(f.velocity.Scale(dt))
	if !f.bounded {
		return false
	}
	hw := f.halfWidth()
	if left := f.bounds.Min.X + hw; f.origin.X < left {
		f.origin.X = left
		f.velocity.X = vmath.Abs(f.velocity.X)
		return true
	}
	if right := f.bounds.Max.X - hw - 1; f.origin.X > right {
		f.origin.X = right
		f.velocity.X = -vmath.Abs(f.velocity.X)
		return true
	}
	return false
}
