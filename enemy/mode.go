package enemy

import (
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/void-ranks/formation"
	"github.com/lixenwraith/void-ranks/vmath"
)

// ModeKind tags the concrete Mode
type ModeKind uint8

const (
	ModeFormation ModeKind = iota
	ModeFree
	ModeAttacking
	ModeDestroyed
)

func (k ModeKind) String() string {
	switch k {
	case ModeFormation:
		return "FORMATION"
	case ModeFree:
		return "FREE"
	case ModeAttacking:
		return "ATTACKING"
	case ModeDestroyed:
		return "DESTROYED"
	default:
		return "UNKNOWN"
	}
}

// Cause records why an enemy was destroyed
type Cause uint8

const (
	CauseShot Cause = iota
	CauseCollision
	CauseDespawn
	CauseExpired
	CauseTeardown
)

func (c Cause) String() string {
	switch c {
	case CauseShot:
		return "shot"
	case CauseCollision:
		return "collision"
	case CauseDespawn:
		return "despawn"
	case CauseExpired:
		return "expired"
	case CauseTeardown:
		return "teardown"
	default:
		return "unknown"
	}
}

// Mode is the closed set of AI states
// Only the four types below implement it; transitions exist as methods on the
// source state, so an edge absent from the graph cannot be expressed
type Mode interface {
	Kind() ModeKind
	sealed()
}

// InFormation occupies exactly one slot of one formation
type InFormation struct {
	FormationID uuid.UUID
	Slot        formation.SlotRef
}

// FreeFlight is independent flight after breakout or a free spawn
type FreeFlight struct {
	Elapsed time.Duration // Time since entering free flight, reset after each attack roll
}

// AttackRun is a time-boxed dive toward a point captured at attack start
type AttackRun struct {
	Remaining time.Duration
	Target    vmath.Vec2
}

// Destroyed is terminal
type Destroyed struct {
	Cause Cause
}

func (InFormation) Kind() ModeKind { return ModeFormation }
func (FreeFlight) Kind() ModeKind  { return ModeFree }
func (AttackRun) Kind() ModeKind   { return ModeAttacking }
func (Destroyed) Kind() ModeKind   { return ModeDestroyed }

func (InFormation) sealed() {}
func (FreeFlight) sealed()  {}
func (AttackRun) sealed()   {}
func (Destroyed) sealed()   {}

// Breakout leaves the formation; the slot must already be released
// Returns the new mode and the breakout velocity derived from vel and the formation drift
func (InFormation) Breakout(vel, formationVel vmath.Vec2) (FreeFlight, vmath.Vec2) {
	return FreeFlight{}, BreakoutVelocity(vel, formationVel)
}

// Destroy ends a formation-bound enemy; the slot must already be vacated
func (InFormation) Destroy(c Cause) Destroyed { return Destroyed{Cause: c} }

// Attack starts a dive toward target lasting d
func (FreeFlight) Attack(target vmath.Vec2, d time.Duration) AttackRun {
	return AttackRun{Remaining: d, Target: target}
}

func (FreeFlight) Destroy(c Cause) Destroyed { return Destroyed{Cause: c} }

// Disengage returns to free flight after the attack window
func (AttackRun) Disengage() FreeFlight { return FreeFlight{} }

func (AttackRun) Destroy(c Cause) Destroyed { return Destroyed{Cause: c} }

// BreakoutVelocity applies the breakaway rule: when the enemy's horizontal
// velocity has the same sign as the formation's, it is inverted
// Zero counts as non-negative on both sides, so a stationary enemy under a
// non-negative drift "matches" and its (zero) velocity is negated to zero
func BreakoutVelocity(vel, formationVel vmath.Vec2) vmath.Vec2 {
	if vmath.Sign(vel.X) == vmath.Sign(formationVel.X) {
		vel.X = -vel.X
	}
	return vel
}
