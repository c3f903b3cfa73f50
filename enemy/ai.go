package enemy

import (
	"time"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/lixenwraith/void-ranks/parameter"
	"github.com/lixenwraith/void-ranks/physics"
	"github.com/lixenwraith/void-ranks/vmath"
)

// Surroundings is the read-only view the AI pass needs from the simulation
type Surroundings struct {
	Player      vmath.Vec2
	PlayerAlive bool
	Bounds      physics.Bounds

	// AttackChance is the per-roll attack probability (Q32.32, Scale = always)
	AttackChance int64
}

// Brain holds the deterministic sources driving free-flight decisions
type Brain struct {
	noise opensimplex.Noise
	rng   *vmath.FastRand
}

// NewBrain seeds wander noise and the attack-roll generator
func NewBrain(seed int64) *Brain {
	return &Brain{
		noise: opensimplex.NewNormalized(seed),
		rng:   vmath.NewFastRand(uint64(seed)),
	}
}

// wander returns the lateral steering for an enemy at elapsed seconds, in [-1, 1]
func (b *Brain) wander(e *Enemy) float64 {
	t := e.Age.Seconds() * parameter.WanderFrequencyFloat
	return b.noise.Eval2(float64(e.ID)*7.31, t)*2 - 1
}

// Update runs one AI step for every live enemy in arena order
// Formation refills must already be complete for this tick
func (r *Roster) Update(dt time.Duration, s *Surroundings, b *Brain) {
	dtF := vmath.FromDuration(dt)
	r.Each(func(e *Enemy) {
		if !e.Alive() {
			return
		}
		e.Age += dt

		switch m := e.Mode.(type) {
		case InFormation:
			r.updateFormation(e, m, dtF)
			return
		case FreeFlight:
			r.updateFree(e, m, dt, dtF, s, b)
		case AttackRun:
			r.updateAttack(e, m, dt, dtF)
		}

		if !e.Alive() {
			return
		}
		r.checkDespawn(e, dt, s.Bounds)
	})
}

// updateFormation follows the slot anchor: pos += (Vf + Ve) * dt
// Ve is the individual correction toward the anchor, Vf the shared drift
func (r *Roster) updateFormation(e *Enemy, m InFormation, dt int64) {
	f, err := r.formationOf(m)
	if err != nil {
		// Owner vanished without teardown; the enemy cannot hold a slot anymore
		r.logger.Warn("formation enemy orphaned", "id", e.ID, "error", err)
		e.Mode = FreeFlight{}
		return
	}
	anchor := f.SlotPosition(m.Slot)
	e.Vel = physics.Seek(e.Pos, anchor, parameter.SlotSeekGain, parameter.SlotSeekSpeed)
	e.Pos = e.Pos.Add(f.Velocity().Add(e.Vel).Scale(dt))
}

func (r *Roster) updateFree(e *Enemy, m FreeFlight, dt time.Duration, dtF int64, s *Surroundings, b *Brain) {
	steer := vmath.FromFloat(b.wander(e))
	e.Vel.X += vmath.Mul(vmath.Mul(steer, parameter.WanderAccel), dtF)
	physics.CapSpeed(&e.Kinetic, parameter.FreeMaxSpeed)
	physics.Integrate(&e.Kinetic, dtF)

	m.Elapsed += dt
	if m.Elapsed < parameter.FreeDwell {
		e.Mode = m
		return
	}

	// Dwell over: roll once, then dwell again on a miss
	if s.PlayerAlive && s.Player.Sub(e.Pos).Len() <= parameter.AttackRange && b.rng.Chance(s.AttackChance) {
		e.Mode = m.Attack(s.Player, parameter.AttackDuration)
		return
	}
	m.Elapsed = 0
	e.Mode = m
}

func (r *Roster) updateAttack(e *Enemy, m AttackRun, dt time.Duration, dtF int64) {
	// Keep heading once the captured point is reached
	if m.Target.Sub(e.Pos).Len() > vmath.Scale {
		e.Vel = physics.Toward(e.Pos, m.Target, parameter.AttackSpeed)
	}
	physics.Integrate(&e.Kinetic, dtF)

	m.Remaining -= dt
	if m.Remaining <= 0 {
		e.Mode = m.Disengage()
		return
	}
	e.Mode = m
}

// checkDespawn destroys free enemies that stayed off-screen or outlived their lifetime
func (r *Roster) checkDespawn(e *Enemy, dt time.Duration, b physics.Bounds) {
	if b.Contains(e.Pos) {
		e.Offscreen = 0
	} else {
		e.Offscreen += dt
	}

	// Only free and attacking enemies reach here; Destroy cannot fail for
	// a live enemy that holds no slot
	switch {
	case e.Offscreen >= parameter.OffscreenTimeout:
		_ = r.Destroy(e.ID, CauseDespawn)
	case parameter.EnemyLifetime > 0 && e.Age >= parameter.EnemyLifetime:
		_ = r.Destroy(e.ID, CauseExpired)
	}
}
