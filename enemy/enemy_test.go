package enemy

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/void-ranks/core"
	"github.com/lixenwraith/void-ranks/formation"
	"github.com/lixenwraith/void-ranks/parameter"
	"github.com/lixenwraith/void-ranks/physics"
	"github.com/lixenwraith/void-ranks/vmath"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// rankedSetup populates a formation whose occupants live in a fresh roster
func rankedSetup(t *testing.T, ranks, slots int, drift vmath.Vec2) (*Roster, *formation.Formation) {
	t.Helper()
	r := NewRoster(nil, quietLogger())
	f := formation.New(vmath.VInt(40, 12), vmath.VInt(4, 2))
	f.SetVelocity(drift)
	f.SetObserver(r)
	r.SetFormationLookup(func(id uuid.UUID) *formation.Formation {
		if id == f.ID {
			return f
		}
		return nil
	})
	err := f.Populate(ranks, slots, formation.RuleBehind, func(ref formation.SlotRef) (core.Entity, bool) {
		e, ok := r.Spawn(f.SlotPosition(ref), vmath.Vec2{}, KindRanked, InFormation{FormationID: f.ID, Slot: ref})
		if !ok {
			return core.EntityNone, false
		}
		return e.ID, true
	})
	if err != nil {
		t.Fatalf("Populate failed: %v", err)
	}
	return r, f
}

func TestBreakoutVelocityRule(t *testing.T) {
	tests := []struct {
		name  string
		enemy float64
		drift float64
		want  float64
	}{
		{"same sign flips", 3, 2, -3},
		{"opposite sign kept", -3, 2, -3},
		{"both negative flips", -3, -2, 3},
		{"positive under negative drift kept", 3, -2, 3},
		{"stationary enemy stays zero", 0, 2, 0},
		{"stationary drift counts non-negative", 3, 0, -3},
		{"negative under stationary drift kept", -3, 0, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BreakoutVelocity(vmath.V(tt.enemy, 1), vmath.V(tt.drift, 0))
			if got.X != vmath.FromFloat(tt.want) {
				t.Errorf("Expected Ve.x %v, got %v", tt.want, vmath.ToFloat(got.X))
			}
			if got.Y != vmath.FromFloat(1) {
				t.Errorf("Expected Ve.y untouched, got %v", vmath.ToFloat(got.Y))
			}
		})
	}
}

func TestRosterBreakoutReleasesSlotFirst(t *testing.T) {
	r, f := rankedSetup(t, 2, 2, vmath.VInt(2, 0))

	front := f.Occupant(formation.SlotRef{Rank: 0, Slot: 0})
	behind := f.Occupant(formation.SlotRef{Rank: 1, Slot: 0})
	r.Get(front).Vel = vmath.VInt(3, 0)

	if err := r.Breakout(front); err != nil {
		t.Fatalf("Breakout failed: %v", err)
	}

	e := r.Get(front)
	if e.ModeKind() != ModeFree {
		t.Errorf("Expected FREE after breakout, got %s", e.ModeKind())
	}
	if e.Vel.X != vmath.FromInt(-3) {
		t.Errorf("Expected Ve.x -3 after breakout, got %f", vmath.ToFloat(e.Vel.X))
	}
	if _, ok := f.Find(front); ok {
		t.Error("Expected broken-out enemy to hold no slot")
	}
	if got := f.Occupant(formation.SlotRef{Rank: 0, Slot: 0}); got != behind {
		t.Errorf("Expected slot refilled by %d, got %d", behind, got)
	}
	m, ok := r.Get(behind).Mode.(InFormation)
	if !ok || m.Slot != (formation.SlotRef{Rank: 0, Slot: 0}) {
		t.Errorf("Expected refilled enemy back-reference 0:0, got %+v", r.Get(behind).Mode)
	}

	if err := r.Breakout(front); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("Expected ErrIllegalTransition breaking out a free enemy, got %v", err)
	}
	if err := r.Breakout(9999); !errors.Is(err, ErrUnknownEnemy) {
		t.Errorf("Expected ErrUnknownEnemy, got %v", err)
	}
}

func TestDestroyClearsSlotSynchronously(t *testing.T) {
	r, f := rankedSetup(t, 1, 3, vmath.Vec2{})

	ids := []core.Entity{}
	f.Each(func(_ formation.SlotRef, id core.Entity) { ids = append(ids, id) })

	for i, id := range ids {
		if err := r.Destroy(id, CauseShot); err != nil {
			t.Fatalf("Destroy failed: %v", err)
		}
		if _, ok := f.Find(id); ok {
			t.Errorf("Expected slot of %d cleared at destruction", id)
		}
		if f.Occupied() != len(ids)-i-1 {
			t.Errorf("Expected %d occupied, got %d", len(ids)-i-1, f.Occupied())
		}
	}
	if !f.IsEmpty() {
		t.Error("Expected empty formation after destroying every occupant")
	}

	// Destroyed is terminal: a second destroy is a no-op and breakout is illegal
	if err := r.Destroy(ids[0], CauseShot); err != nil {
		t.Errorf("Expected no-op destroy, got %v", err)
	}
	if err := r.Breakout(ids[0]); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("Expected ErrIllegalTransition from DESTROYED, got %v", err)
	}

	swept := r.Sweep()
	if len(swept) != 3 || r.Len() != 0 {
		t.Errorf("Expected 3 swept and empty roster, got %v and %d", swept, r.Len())
	}
}

func TestDestroyAfterFormationTeardown(t *testing.T) {
	r := NewRoster(nil, quietLogger())
	r.SetFormationLookup(func(uuid.UUID) *formation.Formation { return nil })
	e, _ := r.Spawn(vmath.Vec2{}, vmath.Vec2{}, KindRanked, InFormation{FormationID: uuid.New()})

	if err := r.Destroy(e.ID, CauseTeardown); err != nil {
		t.Fatalf("Expected destroy of orphan to succeed, got %v", err)
	}
	if r.Get(e.ID).Alive() {
		t.Error("Expected orphan destroyed")
	}
}

func TestRosterCapacity(t *testing.T) {
	r := NewRoster(nil, quietLogger())
	for i := 0; i < parameter.MaxEnemies; i++ {
		if _, ok := r.Spawn(vmath.Vec2{}, vmath.Vec2{}, KindRaider, FreeFlight{}); !ok {
			t.Fatalf("Expected spawn %d to succeed", i)
		}
	}
	if _, ok := r.Spawn(vmath.Vec2{}, vmath.Vec2{}, KindRaider, FreeFlight{}); ok {
		t.Fatal("Expected spawn beyond capacity to be dropped")
	}
	if r.Dropped() != 1 {
		t.Errorf("Expected 1 dropped spawn, got %d", r.Dropped())
	}

	// Freed cells are reused
	var first core.Entity
	r.Each(func(e *Enemy) {
		if first == core.EntityNone {
			first = e.ID
		}
	})
	r.Remove(first)
	if _, ok := r.Spawn(vmath.Vec2{}, vmath.Vec2{}, KindRaider, FreeFlight{}); !ok {
		t.Error("Expected spawn into freed cell")
	}
}

func TestSpawnWithoutModeRejected(t *testing.T) {
	r := NewRoster(nil, quietLogger())
	if e, ok := r.Spawn(vmath.Vec2{}, vmath.Vec2{}, KindRaider, nil); ok || e != nil {
		t.Fatal("Expected spawn without a mode rejected")
	}
	if r.Len() != 0 {
		t.Errorf("Expected empty roster, got %d", r.Len())
	}
	if r.Dropped() != 0 {
		t.Errorf("Expected capacity drops untouched, got %d", r.Dropped())
	}
}

func TestFormationEnemiesFollowDrift(t *testing.T) {
	r, f := rankedSetup(t, 1, 1, vmath.VInt(4, 0))
	id := f.Occupant(formation.SlotRef{})
	brain := NewBrain(1)
	s := &Surroundings{Bounds: physics.NewBounds(80, 40)}

	for i := 0; i < 10; i++ {
		f.Drift(vmath.FromDuration(50 * time.Millisecond))
		r.Update(50*time.Millisecond, s, brain)
	}

	e := r.Get(id)
	anchor := f.SlotPosition(formation.SlotRef{})
	if d := e.Pos.Sub(anchor).Len(); d > vmath.FromFloat(0.5) {
		t.Errorf("Expected enemy near its anchor, off by %f", vmath.ToFloat(d))
	}
	if e.ModeKind() != ModeFormation {
		t.Errorf("Expected enemy never to leave formation on its own, got %s", e.ModeKind())
	}
}

func TestFreeEnemyAttacksAndDisengages(t *testing.T) {
	r := NewRoster(nil, quietLogger())
	e, _ := r.Spawn(vmath.VInt(40, 10), vmath.Vec2{}, KindRaider, FreeFlight{})
	id := e.ID
	brain := NewBrain(7)
	s := &Surroundings{
		Player:       vmath.VInt(40, 30),
		PlayerAlive:  true,
		Bounds:       physics.NewBounds(80, 40),
		AttackChance: vmath.Scale,
	}

	step := 50 * time.Millisecond
	attacked := false
	for elapsed := time.Duration(0); elapsed < parameter.FreeDwell+step; elapsed += step {
		r.Update(step, s, brain)
		if r.Get(id).ModeKind() == ModeAttacking {
			attacked = true
			break
		}
	}
	if !attacked {
		t.Fatal("Expected attack after the free dwell with certain chance")
	}

	run := r.Get(id).Mode.(AttackRun)
	if run.Target != s.Player {
		t.Errorf("Expected target captured at player position, got %v", run.Target)
	}

	for elapsed := time.Duration(0); elapsed <= parameter.AttackDuration; elapsed += step {
		r.Update(step, s, brain)
	}
	if r.Get(id).ModeKind() != ModeFree {
		t.Errorf("Expected FREE after the attack window, got %s", r.Get(id).ModeKind())
	}
}

func TestNoAttackWhenPlayerDead(t *testing.T) {
	r := NewRoster(nil, quietLogger())
	e, _ := r.Spawn(vmath.VInt(40, 10), vmath.Vec2{}, KindRaider, FreeFlight{})
	s := &Surroundings{Player: vmath.VInt(40, 30), Bounds: physics.NewBounds(80, 40), AttackChance: vmath.Scale}
	brain := NewBrain(3)

	for i := 0; i < 100; i++ {
		r.Update(50*time.Millisecond, s, brain)
		if got := r.Get(e.ID).ModeKind(); got == ModeAttacking {
			t.Fatal("Expected no attack with the player dead")
		}
	}
}

func TestOffscreenDespawn(t *testing.T) {
	r := NewRoster(nil, quietLogger())
	e, _ := r.Spawn(vmath.VInt(40, 100), vmath.Vec2{}, KindRaider, FreeFlight{})
	s := &Surroundings{Bounds: physics.NewBounds(80, 40)}
	brain := NewBrain(5)

	step := 100 * time.Millisecond
	for elapsed := time.Duration(0); elapsed < parameter.OffscreenTimeout; elapsed += step {
		if !r.Get(e.ID).Alive() {
			t.Fatalf("Expected enemy alive before timeout, died at %v", elapsed)
		}
		r.Update(step, s, brain)
	}

	got := r.Get(e.ID)
	if got.Alive() {
		t.Fatal("Expected enemy despawned after off-screen timeout")
	}
	if got.Mode.(Destroyed).Cause != CauseDespawn {
		t.Errorf("Expected CauseDespawn, got %v", got.Mode.(Destroyed).Cause)
	}
}
