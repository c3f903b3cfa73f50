package physics

import (
	"time"

	"github.com/lixenwraith/void-ranks/parameter"
	"github.com/lixenwraith/void-ranks/vmath"
)

// Well is a gravity attractor ("black hole") pulling the player ship
// Falloff is inverse-square: a = Strength / max(d, epsilon)²
type Well struct {
	Kinetic

	Strength int64         // Acceleration at unit distance (Q32.32 cells/sec²)
	Radius   int64         // Effective radius (Q32.32 cells), 0 = unbounded
	Lifetime time.Duration // 0 = persists for the level
	Age      time.Duration
	Active   bool
}

// NewWell creates an active well; negative strength or radius clamp to 0
func NewWell(pos, vel vmath.Vec2, strength, radius int64, lifetime time.Duration) Well {
	if strength < 0 {
		strength = 0
	}
	if radius < 0 {
		radius = 0
	}
	if lifetime < 0 {
		lifetime = 0
	}
	return Well{
		Kinetic:  Kinetic{Pos: pos, Vel: vel},
		Strength: strength,
		Radius:   radius,
		Lifetime: lifetime,
		Active:   true,
	}
}

// Pull returns the acceleration this well exerts on a body at target
func (w *Well) Pull(target vmath.Vec2) vmath.Vec2 {
	if !w.Active {
		return vmath.Vec2{}
	}
	d := w.Pos.Sub(target)
	distSq := d.LenSq()
	if w.Radius > 0 && distSq > vmath.Mul(w.Radius, w.Radius) {
		return vmath.Vec2{}
	}

	dist := vmath.Sqrt(distSq)
	if dist < parameter.WellEpsilon {
		dist = parameter.WellEpsilon
	}
	mag := vmath.Div(w.Strength, vmath.Mul(dist, dist))

	// Coincident body: no direction, no force
	return d.Normalize().Scale(mag)
}

// Step ages the well, expires it past its lifetime and drifts it inside bounds
func (w *Well) Step(dt time.Duration, b Bounds) {
	if !w.Active {
		return
	}
	w.Age += dt
	if w.Lifetime > 0 && w.Age >= w.Lifetime {
		w.Active = false
		return
	}
	if !w.Vel.IsZero() {
		Integrate(&w.Kinetic, vmath.FromDuration(dt))
		ReflectBounds(&w.Kinetic, b)
	}
}

// Accumulate sums the pull of every active well on a body at target
func Accumulate(wells []Well, target vmath.Vec2) vmath.Vec2 {
	var sum vmath.Vec2
	for i := range wells {
		sum = sum.Add(wells[i].Pull(target))
	}
	return sum
}

// ApplyGravity adds the accumulated pull to the body's velocity once
// Position is never modified; returns the applied acceleration
func ApplyGravity(k *Kinetic, wells []Well, dt int64) vmath.Vec2 {
	acc := Accumulate(wells, k.Pos)
	k.Vel = k.Vel.Add(acc.Scale(dt))
	return acc
}

// ActiveCount returns the number of wells still exerting force
func ActiveCount(wells []Well) int {
	n := 0
	for i := range wells {
		if wells[i].Active {
			n++
		}
	}
	return n
}
